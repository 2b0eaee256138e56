package quoteexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"rfpflow/internal/domain"
)

// SheetName is the worksheet holding the quote.
const SheetName = "Quote"

// WriteXLSX writes the quote as a single-sheet workbook. Amounts are stored as
// numbers rounded to two decimals.
func WriteXLSX(out io.Writer, technical *domain.TechnicalData, pricing *domain.PricingData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("quoteexport.WriteXLSX: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("quoteexport.WriteXLSX: header: %w", err)
	}

	rowNum := 2
	for i := range pricing.Breakdown {
		line := &pricing.Breakdown[i]
		row := []interface{}{
			itemName(technical, line.SKU),
			line.SKU,
			line.Quantity,
			float64(line.UnitCost.Rounded()),
			float64(line.ProfitMargin.Rounded()),
			float64(line.Tax.Rounded()),
			float64(line.FinalUnitPrice.Rounded()),
			float64(line.LineTotal.Rounded()),
			pricing.Currency,
		}
		if err := f.SetSheetRow(SheetName, cell(rowNum), &row); err != nil {
			return fmt.Errorf("quoteexport.WriteXLSX: row %d: %w", rowNum, err)
		}
		rowNum++
	}

	total := []interface{}{"Grand Total", "", "", "", "", "", "", float64(pricing.TotalCost.Rounded()), pricing.Currency}
	if err := f.SetSheetRow(SheetName, cell(rowNum), &total); err != nil {
		return fmt.Errorf("quoteexport.WriteXLSX: total: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("quoteexport.WriteXLSX: %w", err)
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("quoteexport.WriteXLSX: write: %w", err)
	}
	return nil
}

func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}
