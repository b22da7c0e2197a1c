// internal/core/domain/analysis/market_summary/formatter.go
package market_summary

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"crypto-market-reporter/internal/types/market"
)

// NoDataMessage печатается, когда анализировать нечего
const NoDataMessage = "No data available for analysis."

// Render выводит отчет в читаемом виде
func (r *Report) Render(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("\n--- Market Analysis ---\n")
	fmt.Fprintf(&sb, "Top %d Cryptocurrencies:\n", len(r.Top))
	fmt.Fprintf(&sb, "   %-24s %s\n", market.Columns[0], market.Columns[3])
	for i, row := range r.Top {
		fmt.Fprintf(&sb, "%2d. %-24s %s\n", i+1, row.Name, row.MarketCap.String())
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Average price of top %d cryptocurrencies: $%.2f\n", r.Count, r.MeanPrice)
	fmt.Fprintf(&sb, "Highest 24h %% change: %s\n", formatChange(r.HighestChange))
	fmt.Fprintf(&sb, "Lowest 24h %% change: %s\n\n", formatChange(r.LowestChange))

	_, err := io.WriteString(w, sb.String())
	return err
}

// formatChange — "<name> (<pct>%)"
func formatChange(row *market.Row) string {
	if row == nil || !row.PriceChange24h.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%s (%s%%)", row.Name, row.PriceChange24h.Decimal.StringFixed(2))
}

// PrintReport анализирует таблицу и печатает результат.
// Пустая таблица дает NoDataMessage и market.ErrNoData.
func PrintReport(w io.Writer, table market.Table) error {
	report, err := Analyze(table)
	if errors.Is(err, market.ErrNoData) {
		fmt.Fprintln(w, NoDataMessage)
		return err
	}
	if err != nil {
		return err
	}
	return report.Render(w)
}
