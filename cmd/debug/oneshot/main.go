// cmd/debug/oneshot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crypto-market-reporter/application/bootstrap"
	"crypto-market-reporter/internal/infrastructure/config"
	"crypto-market-reporter/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// Один стартовый цикл (получение, анализ, выгрузка) без расписания
func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitGlobal("", logger.LevelDebug, true); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Debug("🔧 Oneshot: %s -> %s", cfg.Markets.URL, cfg.OutputFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewAppBuilder().
		WithConfig(cfg).
		WithReport(os.Stdout).
		Build(ctx)
	if err != nil {
		logger.Error("❌ Ошибка сборки приложения: %v", err)
		os.Exit(1)
	}
	defer app.Stop()

	if err := app.Pipeline().RunInitial(ctx); err != nil {
		logger.Error("❌ Cycle failed: %v", err)
		os.Exit(1)
	}

	rs := app.Redis()
	if rs == nil {
		return
	}

	snapshot, err := rs.SnapshotStore().LoadSnapshot(ctx)
	switch {
	case errors.Is(err, redis.Nil):
		logger.Warn("⚠️ No snapshot in Redis yet")
	case err != nil:
		logger.Warn("⚠️ Redis read failed: %v", err)
	default:
		logger.Info("📦 Redis snapshot %s: %d rows at %s",
			snapshot.CycleID, len(snapshot.Rows), snapshot.TakenAt.Format("2006-01-02 15:04:05"))
	}
}
