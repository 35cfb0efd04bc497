// internal/rates/client.go
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"usdt-exchange-bot/internal/types"
)

// ErrRateUnavailable - не удалось получить валидный курс от внешнего источника.
// Любая причина (транспорт, не-2xx, битый JSON, нет пары, null цены) сводится к ней
var ErrRateUnavailable = errors.New("rate source unavailable")

// RateSource - внешний источник bid/ask по торговой паре
type RateSource interface {
	FetchRate(ctx context.Context) (types.RawRate, error)
}

// RapiraClient - клиент для работы с API Rapira
type RapiraClient struct {
	httpClient *http.Client
	baseURL    string
	pair       string
}

// rapiraRatesResponse - ответ /open/market/rates
type rapiraRatesResponse struct {
	Data []struct {
		Symbol   string   `json:"symbol"`
		BidPrice *float64 `json:"bidPrice"`
		AskPrice *float64 `json:"askPrice"`
	} `json:"data"`
}

// NewRapiraClient создает новый клиент источника курсов
func NewRapiraClient(baseURL, pair string, timeout time.Duration) *RapiraClient {
	return &RapiraClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		pair:       pair,
	}
}

// FetchRate запрашивает текущие bid/ask по настроенной паре
func (c *RapiraClient) FetchRate(ctx context.Context) (types.RawRate, error) {
	url := c.baseURL + "/open/market/rates"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.RawRate{}, fmt.Errorf("%w: build request: %v", ErrRateUnavailable, err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.RawRate{}, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.RawRate{}, fmt.Errorf("%w: read body: %v", ErrRateUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.RawRate{}, fmt.Errorf("%w: status %s", ErrRateUnavailable, resp.Status)
	}

	var ratesResp rapiraRatesResponse
	if err := json.Unmarshal(body, &ratesResp); err != nil {
		return types.RawRate{}, fmt.Errorf("%w: parse body: %v", ErrRateUnavailable, err)
	}

	for _, item := range ratesResp.Data {
		if item.Symbol != c.pair {
			continue
		}
		if item.BidPrice == nil || item.AskPrice == nil {
			return types.RawRate{}, fmt.Errorf("%w: pair %s has null price", ErrRateUnavailable, c.pair)
		}
		return types.RawRate{
			BidPrice: *item.BidPrice,
			AskPrice: *item.AskPrice,
		}, nil
	}

	return types.RawRate{}, fmt.Errorf("%w: pair %s not found", ErrRateUnavailable, c.pair)
}
