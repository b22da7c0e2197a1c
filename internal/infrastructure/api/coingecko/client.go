// internal/infrastructure/api/coingecko/client.go
package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"crypto-market-reporter/internal/infrastructure/api"
	"crypto-market-reporter/internal/infrastructure/config"
	"crypto-market-reporter/internal/types/market"
	"crypto-market-reporter/pkg/logger"

	"github.com/shopspring/decimal"
)

// Ключи ответа /coins/markets
const (
	keyName          = "name"
	keySymbol        = "symbol"
	keyCurrentPrice  = "current_price"
	keyMarketCap     = "market_cap"
	keyTotalVolume   = "total_volume"
	keyPriceChange24 = "price_change_percentage_24h"
)

var requiredKeys = []string{
	keyName, keySymbol, keyCurrentPrice, keyMarketCap, keyTotalVolume, keyPriceChange24,
}

var _ api.MarketsClient = (*Client)(nil)

// Client - клиент для CoinGecko /coins/markets
type Client struct {
	cfg        config.MarketsConfig
	httpClient *http.Client
}

// NewClient создает клиента; таймаут берется из конфигурации (0 - без таймаута)
func NewClient(cfg config.MarketsConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// NewClientWithHTTP создает клиента с готовым http.Client
func NewClientWithHTTP(cfg config.MarketsConfig, httpClient *http.Client) *Client {
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Name возвращает имя источника
func (c *Client) Name() string {
	return "coingecko"
}

// FetchMarkets выполняет один GET и возвращает таблицу в порядке источника.
// Любая ошибка возвращается как *market.FetchError.
func (c *Client) FetchMarkets(ctx context.Context) (market.Table, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, market.NewFetchError("build url", err)
	}

	body, err := c.makeRequest(ctx, endpoint)
	if err != nil {
		return nil, market.NewFetchError("request", err)
	}

	table, err := parseMarkets(body)
	if err != nil {
		return nil, market.NewFetchError("parse", err)
	}

	logger.Debug("📥 [CoinGecko] Получено %d записей", len(table))
	return table, nil
}

// endpoint собирает URL с фиксированными параметрами запроса
func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("vs_currency", c.cfg.VsCurrency)
	q.Set("order", c.cfg.Order)
	q.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	q.Set("page", strconv.Itoa(c.cfg.Page))
	q.Set("sparkline", strconv.FormatBool(c.cfg.Sparkline))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// makeRequest выполняет HTTP запрос
func (c *Client) makeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("coingecko API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// parseMarkets разбирает массив объектов и проецирует шесть полей
func parseMarkets(body []byte) (market.Table, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	table := make(market.Table, 0, len(records))
	for i, record := range records {
		row, err := projectRow(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		table = append(table, row)
	}

	return table, nil
}

func projectRow(record map[string]json.RawMessage) (market.Row, error) {
	if record == nil {
		return market.Row{}, fmt.Errorf("record is null")
	}
	for _, key := range requiredKeys {
		if _, ok := record[key]; !ok {
			return market.Row{}, fmt.Errorf("missing key %q", key)
		}
	}

	var row market.Row
	var err error

	if row.Name, err = decodeString(record, keyName); err != nil {
		return row, err
	}
	if row.Symbol, err = decodeString(record, keySymbol); err != nil {
		return row, err
	}
	if row.CurrentPrice, err = decodeDecimal(record, keyCurrentPrice); err != nil {
		return row, err
	}
	if row.MarketCap, err = decodeDecimal(record, keyMarketCap); err != nil {
		return row, err
	}
	if row.Volume24h, err = decodeDecimal(record, keyTotalVolume); err != nil {
		return row, err
	}

	// Изменение за 24ч единственное поле, которое может быть null
	raw := record[keyPriceChange24]
	if !isNull(raw) {
		var change decimal.Decimal
		if err := json.Unmarshal(raw, &change); err != nil {
			return row, fmt.Errorf("field %q: %w", keyPriceChange24, err)
		}
		row.PriceChange24h = decimal.NewNullDecimal(change)
	}

	return row, nil
}

func decodeString(record map[string]json.RawMessage, key string) (string, error) {
	raw := record[key]
	if isNull(raw) {
		return "", fmt.Errorf("field %q is null", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return s, nil
}

func decodeDecimal(record map[string]json.RawMessage, key string) (decimal.Decimal, error) {
	raw := record[key]
	if isNull(raw) {
		return decimal.Zero, fmt.Errorf("field %q is null", key)
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero, fmt.Errorf("field %q: %w", key, err)
	}
	return d, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
