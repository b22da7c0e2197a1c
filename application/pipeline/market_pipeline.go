// application/pipeline/market_pipeline.go
package pipeline

import (
	"context"
	"io"
	"sync"
	"time"

	"crypto-market-reporter/internal/core/domain/analysis/market_summary"
	"crypto-market-reporter/internal/types/market"
	"crypto-market-reporter/pkg/logger"

	"github.com/google/uuid"
)

// MarketPipeline связывает получение, анализ и выгрузку одного цикла
type MarketPipeline struct {
	fetcher    Fetcher
	exporter   Exporter
	mirror     SnapshotMirror
	report     io.Writer
	outputPath string
	now        func() time.Time

	stats PipelineStats
	mu    sync.RWMutex
}

// NewMarketPipeline создает пайплайн; отчет анализа пишется в report
func NewMarketPipeline(fetcher Fetcher, exporter Exporter, outputPath string, report io.Writer) *MarketPipeline {
	return &MarketPipeline{
		fetcher:    fetcher,
		exporter:   exporter,
		report:     report,
		outputPath: outputPath,
		now:        time.Now,
	}
}

// WithMirror подключает зеркало последнего снимка
func (p *MarketPipeline) WithMirror(mirror SnapshotMirror) *MarketPipeline {
	p.mirror = mirror
	return p
}

// RunInitial — стартовый цикл: получение, анализ, выгрузка
func (p *MarketPipeline) RunInitial(ctx context.Context) error {
	return p.runCycle(ctx, true)
}

// RunCycle — периодический цикл: получение и выгрузка, без анализа
func (p *MarketPipeline) RunCycle(ctx context.Context) error {
	return p.runCycle(ctx, false)
}

func (p *MarketPipeline) runCycle(ctx context.Context, analyze bool) error {
	cycleID := uuid.NewString()
	log := logger.WithField("cycle", cycleID)

	p.mu.Lock()
	p.stats.CyclesRun++
	p.mu.Unlock()

	table, err := p.fetcher.FetchMarkets(ctx)
	if err != nil {
		p.incr(&p.stats.FetchFailures)
		log.Errorf("Error fetching data: %v", err)
		return err
	}

	if analyze {
		// ErrNoData уже напечатан как текст, цикл продолжается
		if err := market_summary.PrintReport(p.report, table); err != nil {
			log.Debugf("analysis skipped: %v", err)
		}
	}

	if err := p.exporter.Export(table, p.outputPath); err != nil {
		p.incr(&p.stats.ExportFailures)
		log.Errorf("Error updating Excel: %v", err)
		return err
	}

	takenAt := p.now()
	p.mu.Lock()
	p.stats.Exports++
	p.stats.LastSuccess = takenAt
	p.mu.Unlock()

	if p.mirror != nil {
		snapshot := market.Snapshot{CycleID: cycleID, TakenAt: takenAt, Rows: table}
		if err := p.mirror.SaveSnapshot(ctx, snapshot); err != nil {
			p.incr(&p.stats.MirrorFailures)
			log.Warnf("⚠️ Snapshot mirror update failed: %v", err)
		}
	}

	log.Debugf("cycle finished: %d rows", table.Len())
	return nil
}

func (p *MarketPipeline) incr(counter *int64) {
	p.mu.Lock()
	*counter++
	p.mu.Unlock()
}

// Stats возвращает копию статистики
func (p *MarketPipeline) Stats() PipelineStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}
