package market

import (
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowCells(t *testing.T) {
	row := Row{
		Name:           "Bitcoin",
		Symbol:         "btc",
		CurrentPrice:   decimal.RequireFromString("64000.5"),
		MarketCap:      decimal.RequireFromString("1260000000000"),
		Volume24h:      decimal.RequireFromString("31000000000"),
		PriceChange24h: decimal.NewNullDecimal(decimal.RequireFromString("-1.25")),
	}

	cells := row.Cells()
	require.Len(t, cells, len(Columns))
	assert.Equal(t, "Bitcoin", cells[0])
	assert.Equal(t, "btc", cells[1])
	assert.Equal(t, 64000.5, cells[2])
	assert.Equal(t, 1.26e12, cells[3])
	assert.Equal(t, 3.1e10, cells[4])
	assert.Equal(t, -1.25, cells[5])
}

func TestRowCellsNullChange(t *testing.T) {
	row := Row{Name: "Tether", Symbol: "usdt"}
	assert.Nil(t, row.Cells()[5])
}

func TestTableEmpty(t *testing.T) {
	var table Table
	assert.True(t, table.IsEmpty())
	assert.Equal(t, 0, table.Len())
	assert.False(t, Table{{Name: "x"}}.IsEmpty())
}

func TestErrorsUnwrap(t *testing.T) {
	fetchErr := NewFetchError("request", io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(fetchErr, io.ErrUnexpectedEOF))
	assert.Contains(t, fetchErr.Error(), "fetch request")

	exportErr := NewExportError("crypto_data.xlsx", io.ErrShortWrite)
	var target *ExportError
	require.True(t, errors.As(error(exportErr), &target))
	assert.Equal(t, "crypto_data.xlsx", target.Path)
	assert.True(t, errors.Is(exportErr, io.ErrShortWrite))
}
