package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rfpflow/internal/domain"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"55000", 55000, false},
		{" ₹1,25,000.50 ", 125000.5, false},
		{"$0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCost(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseRows_FromWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]interface{}{
		{"SKU", "Name", "Category", "Base Cost", "Description"},
		{"PRN-001", "Laser Printer", "Hardware", 12000, "Mono laser"},
		{},
		{"", "No SKU", "Hardware", 10},
		{"UPS-001", "UPS 1kVA", "Power", "n/a"},
		{"SW-010", "Backup Suite", "Software", "4,500"},
		{"CBL-009", "Patch Cable", "", 150},
	}
	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)

	products, errs := parseRows(rows)

	require.Len(t, products, 2)
	assert.Equal(t, "PRN-001", products[0].SKU)
	assert.Equal(t, 12000.0, products[0].BaseCost)
	assert.Equal(t, "Mono laser", products[0].Description)
	assert.Equal(t, "SW-010", products[1].SKU)
	assert.Equal(t, 4500.0, products[1].BaseCost)

	require.Len(t, errs, 3)
	assert.Equal(t, 4, errs[0].row)
	assert.True(t, errors.Is(errs[0].err, domain.ErrInvalidProduct))
	assert.Equal(t, 5, errs[1].row)
	assert.Equal(t, 7, errs[2].row)
	assert.True(t, errors.Is(errs[2].err, domain.ErrInvalidProduct))
}
