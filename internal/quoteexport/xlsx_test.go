package quoteexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	technical, pricing := sampleQuote()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, technical, pricing))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Item", rows[0][0])
	assert.Equal(t, "Laptop", rows[1][0])
	assert.Equal(t, "LAP-001", rows[1][1])
	assert.Equal(t, "2", rows[1][2])
	assert.Equal(t, "2310", rows[1][7])
	assert.Equal(t, "Office 365", rows[2][0])
	assert.Equal(t, "Grand Total", rows[3][0])
	assert.Equal(t, "3622.5", rows[3][7])
	assert.Equal(t, "INR", rows[3][8])
}
