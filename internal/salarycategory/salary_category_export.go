package salarycategory

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	historySheet    = "Sheet1"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var historyHeadings = []string{
	"Agreement",
	"Category",
	"Effective Date",
	"Kind",
	"Previous Salary",
	"New Salary",
	"Percentage",
	"User",
	"Note",
	"Recorded At",
}

// WriteHistoryXLSX renders salary history rows as a single-sheet workbook.
func WriteHistoryXLSX(w io.Writer, rows []HistoryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range historyHeadings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(historySheet, cell, h); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(historySheet, "A", "J", 18)

	for i, r := range rows {
		pct := ""
		if r.PercentageApplied != nil {
			pct = r.PercentageApplied.String()
		}
		user := ""
		if r.ActingUsername != nil {
			user = *r.ActingUsername
		}
		values := []any{
			r.AgreementID,
			r.CategoryName,
			r.EffectiveDate.Format(dateLayout),
			r.UpdateKind,
			r.PreviousSalary.InexactFloat64(),
			r.NewSalary.InexactFloat64(),
			pct,
			user,
			r.Note,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}
