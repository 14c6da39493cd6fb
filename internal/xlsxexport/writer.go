// Package xlsxexport renders a priced quote as an Excel workbook for the
// fulfillment team.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"certiquote/internal/domain"
	"certiquote/internal/service"
)

const sheetName = "Line Items"

var headers = []string{
	"Document", "Billable Pages", "Tier Multiplier", "Unit Rate",
	"Pages Amount", "Certification", "Certification Fee", "Line Total",
}

// Write renders the summary's line items to w as an xlsx workbook with a
// totals block under the table.
func Write(w io.Writer, summary *service.QuoteSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	row := 2
	for _, item := range summary.LineItems {
		if err := writeItem(f, row, item); err != nil {
			return err
		}
		row++
	}

	row++
	totals := [][2]interface{}{
		{"Subtotal", summary.Subtotal},
		{fmt.Sprintf("Tax (%s)", summary.Currency), summary.Tax},
		{"Total", summary.Total},
	}
	for _, t := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(len(headers)-1, row)
		valueCell, _ := excelize.CoordinatesToCellName(len(headers), row)
		if err := f.SetCellValue(sheetName, labelCell, t[0]); err != nil {
			return fmt.Errorf("xlsx totals: %w", err)
		}
		if err := f.SetCellValue(sheetName, valueCell, t[1]); err != nil {
			return fmt.Errorf("xlsx totals: %w", err)
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeItem(f *excelize.File, row int, item domain.SubOrder) error {
	tierMult := 1.0
	if item.LanguageTierMultiplier != nil {
		tierMult = *item.LanguageTierMultiplier
	}
	certName := ""
	if item.CertificationTypeName != nil {
		certName = *item.CertificationTypeName
	}
	values := []interface{}{
		item.DocumentLabel, item.BillablePages, tierMult, item.UnitRate,
		item.AmountPages, certName, item.CertificationAmount, item.LineTotal,
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("xlsx row %d: %w", row, err)
		}
	}
	return nil
}
