// Package export renders the referrals-by-date report as an Excel workbook
// or a printable PDF of referral letters.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/pkg/date"
)

var referralHeaders = []string{
	"Patient Name",
	"Queue No.",
	"Referral Date",
	"Referral Type",
	"Illness",
	"Duration",
	"Reason",
}

var referralWidths = []float64{25, 15, 15, 20, 25, 20, 50}

// ReferralsWorkbook renders one worksheet with a header row and one row per
// referral, ordered the way the repository returned them.
func ReferralsWorkbook(day date.Date, rows []record.ReferralRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Referrals " + day.String()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range referralHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, referralWidths[col]); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		values := []any{
			r.PatientName,
			r.QueueNo,
			dateString(r.ReferralDate),
			r.ReferralType,
			orEmpty(r.Illness),
			orEmpty(r.Duration),
			orEmpty(r.Reason),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateString(d *date.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
