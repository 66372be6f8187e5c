package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/pkg/date"
)

// ReferralLetters renders one referral letter per page.
func ReferralLetters(rows []record.ReferralRow) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)

	for _, r := range rows {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 20)
		pdf.Cell(0, 10, "Referral Letter")
		pdf.Ln(16)

		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 7, "Date: "+dateString(r.ReferralDate))
		pdf.Ln(14)

		pdf.Cell(0, 7, "To whom it may concern,")
		pdf.Ln(14)

		lines := []string{
			"Patient Name: " + r.PatientName,
			"Gender: " + orNA(r.Sex),
			"Age: " + ageString(r.DateOfBirth),
			"Address: " + orNA(r.Address),
		}
		for _, line := range lines {
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}
		pdf.Ln(8)

		pdf.MultiCell(0, 7, fmt.Sprintf(
			"The patient above has been suffering from %s for %s.",
			orNA(r.Illness), orNA(r.Duration)), "", "L", false)
		pdf.Ln(8)

		pdf.MultiCell(0, 7, "Reason for referral:\n"+orEmpty(r.Reason), "", "L", false)
		pdf.Ln(10)

		pdf.Cell(0, 7, "Thank you.")
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Referring Doctor: "+r.ReferralType)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func ageString(dob *date.Date) string {
	if dob == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", yearsSince(dob.Time(), time.Now()))
}

func yearsSince(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
