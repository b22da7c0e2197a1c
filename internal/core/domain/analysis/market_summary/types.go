// internal/core/domain/analysis/market_summary/types.go
package market_summary

import "crypto-market-reporter/internal/types/market"

// topN — сколько монет попадает в топ по капитализации
const topN = 5

// Report — сводка по таблице одного цикла
type Report struct {
	Count     int          // количество строк в таблице
	Top       []market.Row // до topN строк, капитализация по убыванию
	MeanPrice float64      // средняя текущая цена

	// Первые по порядку строки с максимальным/минимальным изменением за 24ч.
	// nil, если ни у одной строки изменение не заполнено.
	HighestChange *market.Row
	LowestChange  *market.Row
}
