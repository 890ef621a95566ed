// Package export renders already authorized record lists. Nothing here checks
// visibility; callers pass only records the principal may see.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeZIP  = "application/zip"
)

const sheetName = "Records"

var headings = []string{"Serial", "Status", "Treatment Date", "Employee", "Postal Account", "Amount", "Reimbursement", "Notes"}

func row(r domain.Record) []string {
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}
	return []string{
		fmt.Sprint(r.Serial),
		string(r.Status),
		r.TreatmentDate.Format("2006-01-02"),
		r.EmployeeName,
		r.PostalAccount,
		r.Amount.StringFixed(2),
		r.ReimbursementAmount.StringFixed(2),
		notes,
	}
}

// CSV renders records with a heading row.
func CSV(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headings); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX renders records as a single-sheet workbook with a totals row.
func XLSX(title string, records []domain.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}

	header := make([]any, len(headings))
	for i, h := range headings {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		return nil, err
	}

	total, reimbursed := decimal.Zero, decimal.Zero
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		values := []any{
			r.Serial,
			string(r.Status),
			r.TreatmentDate.Format("2006-01-02"),
			r.EmployeeName,
			r.PostalAccount,
			r.Amount.InexactFloat64(),
			r.ReimbursementAmount.InexactFloat64(),
			notes,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
		total = total.Add(r.Amount)
		reimbursed = reimbursed.Add(r.ReimbursementAmount)
	}

	totalCell, err := excelize.CoordinatesToCellName(5, len(records)+3)
	if err != nil {
		return nil, err
	}
	totals := []any{"Total", total.InexactFloat64(), reimbursed.InexactFloat64()}
	if err := f.SetSheetRow(sheetName, totalCell, &totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// Sheet is one category's records inside a region archive.
type Sheet struct {
	Category domain.Category
	Records  []domain.Record
}

// SheetFilename names a category workbook inside a region archive.
func SheetFilename(category domain.Category, regionCode int) string {
	name := category.DisplayName
	if name == "" {
		name = category.Name
	}
	return fmt.Sprintf("%s - Wilaya %d.xlsx", sanitizeFilename(name), regionCode)
}

// RegionZIP bundles one workbook per sheet that has records.
func RegionZIP(region domain.Region, sheets []Sheet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, s := range sheets {
		if len(s.Records) == 0 {
			continue
		}
		title := fmt.Sprintf("%s - %s (%d)", s.Category.DisplayName, region.Name, region.Code)
		content, err := XLSX(title, s.Records)
		if err != nil {
			return nil, err
		}
		w, err := zw.Create(SheetFilename(s.Category, region.Code))
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeFilename drops path separators and characters most file systems reject.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, s)
}
