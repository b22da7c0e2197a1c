// application/bootstrap/app.go
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"crypto-market-reporter/application/pipeline"
	"crypto-market-reporter/application/scheduler"
	"crypto-market-reporter/internal/infrastructure/api"
	"crypto-market-reporter/internal/infrastructure/api/coingecko"
	rediscache "crypto-market-reporter/internal/infrastructure/cache/redis"
	"crypto-market-reporter/internal/infrastructure/config"
	"crypto-market-reporter/internal/infrastructure/export/excel"
	"crypto-market-reporter/pkg/logger"
)

// UpdateJobName имя периодической задачи выгрузки
const UpdateJobName = "update_excel"

// Application собранное приложение: пайплайн, планировщик и опциональный Redis
type Application struct {
	config    *config.Config
	pipeline  *pipeline.MarketPipeline
	scheduler *scheduler.Scheduler
	redis     *rediscache.RedisService
}

// AppBuilder строит приложение
type AppBuilder struct {
	config  *config.Config
	report  io.Writer
	fetcher api.MarketsClient
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.config = cfg
	return b
}

// WithReport задает поток для текстового отчета анализа
func (b *AppBuilder) WithReport(w io.Writer) *AppBuilder {
	b.report = w
	return b
}

// WithFetcher подменяет источник данных (по умолчанию CoinGecko)
func (b *AppBuilder) WithFetcher(f api.MarketsClient) *AppBuilder {
	b.fetcher = f
	return b
}

// Build собирает компоненты. Redis подключается только если включен
// и доступен; недоступный Redis не мешает запуску.
func (b *AppBuilder) Build(ctx context.Context) (*Application, error) {
	if b.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if b.report == nil {
		b.report = io.Discard
	}
	if b.fetcher == nil {
		b.fetcher = coingecko.NewClient(b.config.Markets)
	}
	logger.Info("📡 Market data source: %s", b.fetcher.Name())

	p := pipeline.NewMarketPipeline(b.fetcher, excel.NewExporter(), b.config.OutputFile, b.report)

	app := &Application{
		config:    b.config,
		pipeline:  p,
		scheduler: scheduler.New(),
	}

	if b.config.Redis.Enabled {
		rs := rediscache.NewRedisService(b.config.Redis)
		if err := rs.Start(ctx); err != nil {
			logger.Warn("⚠️ Redis недоступен, зеркало снимков отключено: %v", err)
		} else {
			app.redis = rs
			p.WithMirror(rs.SnapshotStore())
		}
	}

	app.scheduler.Register(&scheduler.Job{
		Name:        UpdateJobName,
		Description: "Fetch markets and rewrite the spreadsheet",
		Schedule:    scheduler.Every(b.config.UpdateInterval),
		Handler:     p.RunCycle,
	})

	return app, nil
}

// Pipeline возвращает пайплайн приложения
func (app *Application) Pipeline() *pipeline.MarketPipeline {
	return app.pipeline
}

// Scheduler возвращает планировщик приложения
func (app *Application) Scheduler() *scheduler.Scheduler {
	return app.scheduler
}

// Redis возвращает сервис Redis или nil, если зеркало не подключено
func (app *Application) Redis() *rediscache.RedisService {
	return app.redis
}

// Run выполняет стартовый цикл с анализом, затем обновляет файл по
// расписанию до отмены ctx. Ошибка стартового цикла не останавливает опрос.
func (app *Application) Run(ctx context.Context) error {
	if err := app.pipeline.RunInitial(ctx); err != nil {
		logger.Warn("⚠️ Initial cycle failed, live updates continue: %v", err)
	}

	fmt.Printf("\nLive updating started (every %s). Press Ctrl+C to stop.\n", app.config.UpdateInterval)

	return app.scheduler.Run(ctx)
}

// Stop освобождает ресурсы и печатает итоговую статистику
func (app *Application) Stop() {
	stats := app.pipeline.Stats()
	logger.Info("📊 Cycles: %d, exports: %d, fetch failures: %d, export failures: %d",
		stats.CyclesRun, stats.Exports, stats.FetchFailures, stats.ExportFailures)

	if app.redis != nil {
		if err := app.redis.Stop(); err != nil {
			logger.Warn("⚠️ Redis stop: %v", err)
		}
	}
}
