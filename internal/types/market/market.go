// internal/types/market/market.go
package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetName - имя единственного листа отчета
const SheetName = "Live Data"

// Columns - заголовки колонок отчета в порядке вывода
var Columns = []string{
	"CryptoCurrency Name",
	"Symbol",
	"Current Price (USD)",
	"Market Capitalization",
	"24h Trading Volume",
	"Price Change % (24h)",
}

// Row - снимок одной монеты на момент запроса
type Row struct {
	Name           string              `json:"name"`
	Symbol         string              `json:"symbol"`
	CurrentPrice   decimal.Decimal     `json:"current_price"`
	MarketCap      decimal.Decimal     `json:"market_cap"`
	Volume24h      decimal.Decimal     `json:"total_volume"`
	PriceChange24h decimal.NullDecimal `json:"price_change_percentage_24h"`
}

// Cells возвращает значения строки в порядке Columns.
// Пустое изменение за 24ч отдается как nil.
func (r Row) Cells() []interface{} {
	var change interface{}
	if r.PriceChange24h.Valid {
		change = r.PriceChange24h.Decimal.InexactFloat64()
	}

	return []interface{}{
		r.Name,
		r.Symbol,
		r.CurrentPrice.InexactFloat64(),
		r.MarketCap.InexactFloat64(),
		r.Volume24h.InexactFloat64(),
		change,
	}
}

// Table - упорядоченный набор строк одного цикла, порядок как у источника
type Table []Row

// Len возвращает количество строк (nil-безопасно)
func (t Table) Len() int {
	return len(t)
}

// IsEmpty true если данных нет
func (t Table) IsEmpty() bool {
	return len(t) == 0
}

// Snapshot - последняя выгруженная таблица с идентификатором цикла
type Snapshot struct {
	CycleID string    `json:"cycle_id"`
	TakenAt time.Time `json:"taken_at"`
	Rows    Table     `json:"rows"`
}
