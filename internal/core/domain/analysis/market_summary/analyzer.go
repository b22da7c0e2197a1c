// internal/core/domain/analysis/market_summary/analyzer.go
package market_summary

import (
	"sort"

	"crypto-market-reporter/internal/types/market"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Analyze строит сводку по таблице.
// Для пустой таблицы возвращает market.ErrNoData и ничего не считает.
func Analyze(table market.Table) (*Report, error) {
	if table.IsEmpty() {
		return nil, market.ErrNoData
	}

	report := &Report{
		Count:     table.Len(),
		Top:       topByMarketCap(table, topN),
		MeanPrice: meanPrice(table),
	}
	report.HighestChange, report.LowestChange = changeExtremes(table)

	return report, nil
}

// topByMarketCap — стабильная сортировка по убыванию капитализации,
// при равенстве сохраняется исходный порядок
func topByMarketCap(table market.Table, n int) []market.Row {
	sorted := make([]market.Row, len(table))
	copy(sorted, table)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MarketCap.GreaterThan(sorted[j].MarketCap)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func meanPrice(table market.Table) float64 {
	prices := make([]float64, len(table))
	for i, row := range table {
		prices[i] = row.CurrentPrice.InexactFloat64()
	}
	return stat.Mean(prices, nil)
}

// changeExtremes ищет первые по позиции строки с max/min изменением.
// Строки без значения пропускаются.
func changeExtremes(table market.Table) (highest, lowest *market.Row) {
	changes := make([]float64, 0, len(table))
	positions := make([]int, 0, len(table))

	for i, row := range table {
		if !row.PriceChange24h.Valid {
			continue
		}
		changes = append(changes, row.PriceChange24h.Decimal.InexactFloat64())
		positions = append(positions, i)
	}

	if len(changes) == 0 {
		return nil, nil
	}

	// MaxIdx/MinIdx возвращают первый индекс среди равных
	hi := table[positions[floats.MaxIdx(changes)]]
	lo := table[positions[floats.MinIdx(changes)]]
	return &hi, &lo
}
