// cmd/reporter/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crypto-market-reporter/application/bootstrap"
	"crypto-market-reporter/internal/infrastructure/config"
	"crypto-market-reporter/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	logPath := ""
	if cfg.Logging.ToFile {
		logPath = cfg.Logging.File
	}
	if err := logger.InitGlobal(logPath, cfg.Logging.Level, cfg.Logging.DebugMode); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("🚀 Crypto market reporter %s (%s)", cfg.Version, cfg.Environment)
	cfg.PrintSummary()

	// Ctrl+C и SIGTERM - штатное завершение
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

	if err := app.Run(ctx); err != nil {
		logger.Error("❌ %v", err)
		return
	}

	fmt.Println("\nStopped live updating.")
}
