package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/pkg/date"
)

func sampleRows(t *testing.T) (date.Date, []record.ReferralRow) {
	t.Helper()
	day, err := date.Parse("2025-11-03")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	dob, err := date.Parse("1990-05-20")
	if err != nil {
		t.Fatalf("parse dob: %v", err)
	}
	sex := "F"
	illness := "cataract"
	duration := "6 months"
	reason := "Requires specialist assessment."
	return day, []record.ReferralRow{
		{
			PatientName:  "Alice Chan",
			Sex:          &sex,
			DateOfBirth:  &dob,
			QueueNo:      "2A",
			ReferralDate: &day,
			ReferralType: "Optometrist",
			Illness:      &illness,
			Duration:     &duration,
			Reason:       &reason,
		},
		{
			PatientName:  "Bona Sok",
			QueueNo:      "3",
			ReferralDate: &day,
			ReferralType: "Dentist",
		},
	}
}

func TestReferralsWorkbook(t *testing.T) {
	day, rows := sampleRows(t)

	body, err := ReferralsWorkbook(day, rows)
	if err != nil {
		t.Fatalf("render workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheet := "Referrals " + day.String()
	got, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(got))
	}
	if got[0][0] != "Patient Name" || got[0][6] != "Reason" {
		t.Errorf("unexpected header row: %v", got[0])
	}
	if got[1][0] != "Alice Chan" || got[1][1] != "2A" || got[1][3] != "Optometrist" {
		t.Errorf("unexpected first row: %v", got[1])
	}
	if got[2][0] != "Bona Sok" {
		t.Errorf("unexpected second row: %v", got[2])
	}
}

func TestReferralLetters(t *testing.T) {
	_, rows := sampleRows(t)

	body, err := ReferralLetters(rows)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Errorf("output is not a PDF, starts with %q", body[:8])
	}
	if len(body) < 1000 {
		t.Errorf("suspiciously small pdf: %d bytes", len(body))
	}
}

func TestYearsSince(t *testing.T) {
	now := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		birth string
		want  int
	}{
		{"1990-05-20", 35},
		{"1990-11-03", 35},
		{"1990-11-04", 34},
		{"2025-11-03", 0},
		{"2026-01-01", 0},
	}
	for _, tc := range cases {
		birth, err := time.Parse("2006-01-02", tc.birth)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.birth, err)
		}
		if got := yearsSince(birth, now); got != tc.want {
			t.Errorf("yearsSince(%s) = %d, want %d", tc.birth, got, tc.want)
		}
	}
}
