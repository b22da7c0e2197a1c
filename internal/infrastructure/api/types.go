// internal/infrastructure/api/types.go
package api

import (
	"context"

	"crypto-market-reporter/internal/types/market"
)

// MarketsClient интерфейс для клиентов агрегаторов рыночных данных
type MarketsClient interface {
	FetchMarkets(ctx context.Context) (market.Table, error)
	Name() string
}
