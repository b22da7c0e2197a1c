// application/pipeline/types.go
package pipeline

import (
	"context"
	"time"

	"crypto-market-reporter/internal/types/market"
)

// Fetcher источник таблицы рынка
type Fetcher interface {
	FetchMarkets(ctx context.Context) (market.Table, error)
}

// Exporter целевой файл отчета
type Exporter interface {
	Export(table market.Table, path string) error
}

// SnapshotMirror дополнительная копия последней выгрузки (Redis)
type SnapshotMirror interface {
	SaveSnapshot(ctx context.Context, snapshot market.Snapshot) error
}

// PipelineStats статистика пайплайна
type PipelineStats struct {
	CyclesRun      int64     `json:"cycles_run"`
	Exports        int64     `json:"exports"`
	FetchFailures  int64     `json:"fetch_failures"`
	ExportFailures int64     `json:"export_failures"`
	MirrorFailures int64     `json:"mirror_failures"`
	LastSuccess    time.Time `json:"last_success"`
}
