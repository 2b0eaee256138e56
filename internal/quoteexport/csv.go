// Package quoteexport renders a priced quote as CSV or an XLSX workbook.
package quoteexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rfpflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the quote header row.
var columns = []string{
	"Item",
	"SKU",
	"Quantity",
	"Unit Cost",
	"Profit Margin",
	"Tax",
	"Final Unit Price",
	"Line Total",
	"Currency",
}

// Writer wraps csv.Writer for exporting a quote as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteQuote writes one row per price line followed by a grand total row.
func (w *Writer) WriteQuote(technical *domain.TechnicalData, pricing *domain.PricingData) error {
	for _, row := range quoteRows(technical, pricing) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return w.csv.Write(totalRow(pricing))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete quote, BOM included, to out.
func WriteCSV(out io.Writer, technical *domain.TechnicalData, pricing *domain.PricingData) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteQuote(technical, pricing); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func quoteRows(technical *domain.TechnicalData, pricing *domain.PricingData) [][]string {
	rows := make([][]string, 0, len(pricing.Breakdown))
	for i := range pricing.Breakdown {
		rows = append(rows, lineToRow(technical, &pricing.Breakdown[i], pricing.Currency))
	}
	return rows
}

// lineToRow converts a price line into a row matching columns.
func lineToRow(technical *domain.TechnicalData, line *domain.PriceLine, currency string) []string {
	return []string{
		itemName(technical, line.SKU),
		line.SKU,
		strconv.Itoa(line.Quantity),
		formatMoney(line.UnitCost),
		formatMoney(line.ProfitMargin),
		formatMoney(line.Tax),
		formatMoney(line.FinalUnitPrice),
		formatMoney(line.LineTotal),
		currency,
	}
}

func totalRow(pricing *domain.PricingData) []string {
	row := make([]string, len(columns))
	row[0] = "Grand Total"
	row[7] = formatMoney(pricing.TotalCost)
	row[8] = pricing.Currency
	return row
}

func itemName(technical *domain.TechnicalData, sku string) string {
	if technical != nil {
		for _, m := range technical.MatchedSKUs {
			if m.MatchedSKU == sku {
				return m.Item
			}
		}
	}
	return sku
}

func formatMoney(v domain.Amount) string {
	return v.String()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a proposal title for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "quote"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_title}_{YYYY-MM-DD}.{ext}
func BuildFilename(title, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(title), at.Format("2006-01-02"), ext)
}
