package quoteexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfpflow/internal/domain"
)

func sampleQuote() (*domain.TechnicalData, *domain.PricingData) {
	technical := &domain.TechnicalData{
		OverallMatchPercent: 100,
		MatchedSKUs: []domain.MatchResult{
			{Item: "Laptop", MatchedSKU: "LAP-001", MatchPercent: 90, Quantity: 2},
			{Item: "Office 365", MatchedSKU: "SW-O365", MatchPercent: 100, Quantity: 10},
		},
	}
	pricing := &domain.PricingData{
		Currency: "INR",
		Breakdown: []domain.PriceLine{
			{SKU: "LAP-001", UnitCost: 1000, ProfitMargin: 100, Tax: 55, FinalUnitPrice: 1155, Quantity: 2, LineTotal: 2310},
			{SKU: "SW-O365", UnitCost: 100, ProfitMargin: 25, Tax: 6.25, FinalUnitPrice: 131.25, Quantity: 10, LineTotal: 1312.5},
		},
		TotalCost:    3622.5,
		PreciseTotal: 3622.5,
	}
	return technical, pricing
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 9)
	assert.Equal(t, "Item", row[0])
	assert.Equal(t, "Line Total", row[7])
	assert.Equal(t, "Currency", row[8])
}

func TestWriteQuote(t *testing.T) {
	technical, pricing := sampleQuote()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteQuote(technical, pricing))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Laptop", "LAP-001", "2", "1000.00", "100.00", "55.00", "1155.00", "2310.00", "INR"}, rows[0])
	assert.Equal(t, []string{"Office 365", "SW-O365", "10", "100.00", "25.00", "6.25", "131.25", "1312.50", "INR"}, rows[1])
	assert.Equal(t, "Grand Total", rows[2][0])
	assert.Equal(t, "3622.50", rows[2][7])
}

func TestWriteQuote_UnknownSKUFallsBackToSKU(t *testing.T) {
	pricing := &domain.PricingData{
		Currency:  "INR",
		Breakdown: []domain.PriceLine{{SKU: "X-1", Quantity: 1}},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteQuote(nil, pricing))
	w.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "X-1", rows[0][0])
}

func TestWriteCSV_StartsWithBOM(t *testing.T) {
	technical, pricing := sampleQuote()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, technical, pricing))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Supply of IT Hardware", "Supply_of_IT_Hardware"},
		{"ITH/2024-17: Laptops!!", "ITH_2024-17_Laptops"},
		{"___", "quote"},
		{"", "quote"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.input))
		})
	}

	long := bytes.Repeat([]byte("a"), 150)
	assert.Len(t, SanitizeFilename(string(long)), 100)
}

func TestBuildFilename(t *testing.T) {
	at := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Manual_Text_Input_2024-06-15.xlsx", BuildFilename(domain.ManualInputTitle, "xlsx", at))
}
