package market_summary

import (
	"bytes"
	"errors"
	"testing"

	"crypto-market-reporter/internal/types/market"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(name string, price, capital float64, change *float64) market.Row {
	r := market.Row{
		Name:         name,
		Symbol:       name[:1],
		CurrentPrice: decimal.NewFromFloat(price),
		MarketCap:    decimal.NewFromFloat(capital),
		Volume24h:    decimal.NewFromInt(1),
	}
	if change != nil {
		r.PriceChange24h = decimal.NewNullDecimal(decimal.NewFromFloat(*change))
	}
	return r
}

func pct(v float64) *float64 { return &v }

func names(rows []market.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestAnalyzeEmptyTable(t *testing.T) {
	for _, table := range []market.Table{nil, {}} {
		report, err := Analyze(table)
		assert.Nil(t, report)
		assert.True(t, errors.Is(err, market.ErrNoData))
	}
}

func TestTopFewerThanFive(t *testing.T) {
	table := market.Table{
		row("Alpha", 1, 10, pct(0)),
		row("Beta", 1, 30, pct(0)),
		row("Gamma", 1, 20, pct(0)),
	}

	report, err := Analyze(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Gamma", "Alpha"}, names(report.Top))
}

func TestTopFiveWithTies(t *testing.T) {
	table := market.Table{
		row("A", 1, 100, pct(0)),
		row("B", 1, 500, pct(0)),
		row("C", 1, 300, pct(0)),
		row("D", 1, 300, pct(0)),
		row("E", 1, 50, pct(0)),
		row("F", 1, 300, pct(0)),
		row("G", 1, 700, pct(0)),
		row("H", 1, 100, pct(0)),
	}

	report, err := Analyze(table)
	require.NoError(t, err)
	require.Len(t, report.Top, 5)
	assert.Equal(t, []string{"G", "B", "C", "D", "F"}, names(report.Top))

	// каждая выбранная строка не меньше любой невыбранной
	minSelected := report.Top[len(report.Top)-1].MarketCap
	for _, r := range table {
		selected := false
		for _, top := range report.Top {
			if top.Name == r.Name {
				selected = true
			}
		}
		if !selected {
			assert.True(t, minSelected.GreaterThanOrEqual(r.MarketCap), r.Name)
		}
	}

	// исходная таблица не переставлена
	assert.Equal(t, "A", table[0].Name)
}

func TestMeanPrice(t *testing.T) {
	table := market.Table{
		row("A", 100, 3, pct(1)),
		row("B", 200, 2, pct(1)),
		row("C", 300, 1, pct(1)),
	}

	report, err := Analyze(table)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, report.MeanPrice, 1e-9)
	assert.Equal(t, 3, report.Count)
}

func TestChangeExtremesFirstOccurrence(t *testing.T) {
	table := market.Table{
		row("First", 1, 1, pct(-2)),
		row("Up1", 1, 1, pct(5)),
		row("Down1", 1, 1, pct(-7)),
		row("Up2", 1, 1, pct(5)),
		row("Down2", 1, 1, pct(-7)),
	}

	report, err := Analyze(table)
	require.NoError(t, err)
	require.NotNil(t, report.HighestChange)
	require.NotNil(t, report.LowestChange)
	assert.Equal(t, "Up1", report.HighestChange.Name)
	assert.Equal(t, "Down1", report.LowestChange.Name)
}

func TestChangeExtremesSkipNull(t *testing.T) {
	table := market.Table{
		row("NoChange", 1, 1, nil),
		row("Only", 1, 1, pct(-1.5)),
	}

	report, err := Analyze(table)
	require.NoError(t, err)
	assert.Equal(t, "Only", report.HighestChange.Name)
	assert.Equal(t, "Only", report.LowestChange.Name)
}

func TestChangeExtremesAllNull(t *testing.T) {
	report, err := Analyze(market.Table{row("X", 1, 1, nil)})
	require.NoError(t, err)
	assert.Nil(t, report.HighestChange)
	assert.Nil(t, report.LowestChange)
}

func TestRender(t *testing.T) {
	table := market.Table{
		row("Bitcoin", 100, 1000, pct(5)),
		row("Ethereum", 200, 500, pct(-3.456)),
		row("Tether", 300, 100, pct(0.1)),
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, table))
	out := buf.String()

	assert.Contains(t, out, "--- Market Analysis ---")
	assert.Contains(t, out, "Top 3 Cryptocurrencies:")
	assert.Contains(t, out, " 1. Bitcoin")
	assert.Contains(t, out, "Average price of top 3 cryptocurrencies: $200.00")
	assert.Contains(t, out, "Highest 24h % change: Bitcoin (5.00%)")
	assert.Contains(t, out, "Lowest 24h % change: Ethereum (-3.46%)")
}

func TestRenderAllNullChanges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, market.Table{row("X", 1, 1, nil)}))
	assert.Contains(t, buf.String(), "Highest 24h % change: n/a")
}

func TestPrintReportNoData(t *testing.T) {
	var buf bytes.Buffer
	err := PrintReport(&buf, nil)

	assert.True(t, errors.Is(err, market.ErrNoData))
	assert.Equal(t, NoDataMessage+"\n", buf.String())
}
