// /internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"crypto-market-reporter/pkg/logger"

	"github.com/joho/godotenv"
)

// ============================================
// КОНФИГУРАЦИЯ ИСТОЧНИКА ДАННЫХ
// ============================================

// MarketsConfig - параметры запроса к /coins/markets
type MarketsConfig struct {
	URL        string `mapstructure:"COINGECKO_MARKETS_URL"`
	VsCurrency string `mapstructure:"VS_CURRENCY"`
	Order      string `mapstructure:"MARKETS_ORDER"`
	PerPage    int    `mapstructure:"MARKETS_PER_PAGE"`
	Page       int    `mapstructure:"MARKETS_PAGE"`
	Sparkline  bool   `mapstructure:"MARKETS_SPARKLINE"`

	// 0 - без таймаута, как у http.Client по умолчанию
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	UserAgent   string        `mapstructure:"HTTP_USER_AGENT"`
}

// RedisConfig конфигурация Redis для зеркала последнего снимка
type RedisConfig struct {
	Enabled     bool          `mapstructure:"REDIS_ENABLED"`
	Host        string        `mapstructure:"REDIS_HOST"`     // localhost
	Port        int           `mapstructure:"REDIS_PORT"`     // 6379
	Password    string        `mapstructure:"REDIS_PASSWORD"` // пустой или пароль
	DB          int           `mapstructure:"REDIS_DB"`       // 0
	KeyPrefix   string        `mapstructure:"REDIS_KEY_PREFIX"`
	SnapshotTTL time.Duration `mapstructure:"REDIS_SNAPSHOT_TTL"`
	DialTimeout time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
}

// Addr возвращает host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ============================================
// ОСНОВНАЯ КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ
// ============================================

// Config - основная структура конфигурации
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	Markets MarketsConfig `mapstructure:",squash"`

	// ======================
	// ВЫГРУЗКА
	// ======================
	OutputFile     string        `mapstructure:"OUTPUT_FILE"`
	UpdateInterval time.Duration `mapstructure:"UPDATE_INTERVAL"`

	Redis RedisConfig `mapstructure:",squash"`

	// ======================
	// ЛОГИРОВАНИЕ
	// ======================
	Logging struct {
		Level     string `mapstructure:"LOG_LEVEL"`
		File      string `mapstructure:"LOG_FILE"`
		ToFile    bool   `mapstructure:"LOG_TO_FILE,omitempty"`
		DebugMode bool   `mapstructure:"DEBUG_MODE,omitempty"`
	} `mapstructure:",squash"`
}

// Значения по умолчанию
const (
	DefaultMarketsURL     = "https://api.coingecko.com/api/v3/coins/markets"
	DefaultOutputFile     = "crypto_data.xlsx"
	DefaultUpdateInterval = 2 * time.Minute
	maxPerPage            = 250
)

// ============================================
// ЗАГРУЗКА КОНФИГУРАЦИИ
// ============================================

// LoadConfig загружает конфигурацию из .env файла и переменных окружения
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Printf("⚠️  Config file not found, using environment variables\n")
		}
	}

	cfg := &Config{}

	cfg.Environment = getEnv("ENVIRONMENT", "production")
	cfg.Version = getEnv("VERSION", "1.0.0")

	// ======================
	// ИСТОЧНИК ДАННЫХ
	// ======================
	cfg.Markets.URL = getEnv("COINGECKO_MARKETS_URL", DefaultMarketsURL)
	cfg.Markets.VsCurrency = getEnv("VS_CURRENCY", "usd")
	cfg.Markets.Order = getEnv("MARKETS_ORDER", "market_cap_desc")
	cfg.Markets.PerPage = getEnvInt("MARKETS_PER_PAGE", 50)
	cfg.Markets.Page = getEnvInt("MARKETS_PAGE", 1)
	cfg.Markets.Sparkline = getEnvBool("MARKETS_SPARKLINE", false)
	cfg.Markets.HTTPTimeout = getEnvDuration("HTTP_TIMEOUT", 0)
	cfg.Markets.UserAgent = getEnv("HTTP_USER_AGENT", "CryptoMarketReporter/1.0")

	// ======================
	// ВЫГРУЗКА
	// ======================
	cfg.OutputFile = getEnv("OUTPUT_FILE", DefaultOutputFile)
	cfg.UpdateInterval = getEnvDuration("UPDATE_INTERVAL", DefaultUpdateInterval)

	// ======================
	// REDIS
	// ======================
	cfg.Redis.Enabled = getEnvBool("REDIS_ENABLED", false)
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnvInt("REDIS_PORT", 6379)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)
	cfg.Redis.KeyPrefix = getEnv("REDIS_KEY_PREFIX", "cryptoreport:")
	cfg.Redis.SnapshotTTL = getEnvDuration("REDIS_SNAPSHOT_TTL", 10*time.Minute)
	cfg.Redis.DialTimeout = getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)

	// ======================
	// ЛОГИРОВАНИЕ
	// ======================
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")
	cfg.Logging.File = getEnv("LOG_FILE", "logs/reporter.log")
	cfg.Logging.ToFile = getEnvBool("LOG_TO_FILE", false)
	cfg.Logging.DebugMode = getEnvBool("DEBUG_MODE", false)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate проверяет значения конфигурации
func (c *Config) validate() error {
	if strings.TrimSpace(c.Markets.URL) == "" {
		return fmt.Errorf("COINGECKO_MARKETS_URL is required")
	}
	if c.Markets.PerPage < 1 || c.Markets.PerPage > maxPerPage {
		return fmt.Errorf("MARKETS_PER_PAGE must be between 1 and %d, got %d", maxPerPage, c.Markets.PerPage)
	}
	if c.Markets.Page < 1 {
		return fmt.Errorf("MARKETS_PAGE must be positive, got %d", c.Markets.Page)
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("UPDATE_INTERVAL must be positive, got %s", c.UpdateInterval)
	}
	if !strings.EqualFold(extension(c.OutputFile), ".xlsx") {
		return fmt.Errorf("OUTPUT_FILE must be an .xlsx file, got %q", c.OutputFile)
	}
	if c.Redis.Enabled && c.Redis.SnapshotTTL < 0 {
		return fmt.Errorf("REDIS_SNAPSHOT_TTL must not be negative")
	}
	return nil
}

// PrintSummary выводит эффективную конфигурацию
func (c *Config) PrintSummary() {
	logger.Info("🔧 Configuration (%s, v%s):", c.Environment, c.Version)
	logger.Info("   • Source: %s", c.Markets.URL)
	logger.Info("   • Query: vs_currency=%s order=%s per_page=%d page=%d sparkline=%t",
		c.Markets.VsCurrency, c.Markets.Order, c.Markets.PerPage, c.Markets.Page, c.Markets.Sparkline)
	logger.Info("   • Output: %s", c.OutputFile)
	logger.Info("   • Update interval: %s", c.UpdateInterval)
	if c.Redis.Enabled {
		logger.Info("   • Redis snapshot: %s (DB %d, TTL %s)", c.Redis.Addr(), c.Redis.DB, c.Redis.SnapshotTTL)
	} else {
		logger.Info("   • Redis snapshot: disabled")
	}
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// ============================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func extension(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}
