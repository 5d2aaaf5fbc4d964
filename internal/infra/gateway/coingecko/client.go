// Package coingecko is the HTTP gateway to the public CoinGecko API,
// used for historical price charts.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/history"
	apperrors "github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/shared/errors"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	requestTimeout = 15 * time.Second

	// CoinGecko asks public-API consumers to identify themselves.
	userAgent = "eurocoin-portfolio/1.0"
)

// Client is an HTTP client for the CoinGecko API. Calls are unauthenticated
// and single-attempt.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new CoinGecko API client
func NewClient(log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  log.WithField("component", "coingecko"),
	}
}

// SetBaseURL overrides the default base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// MarketChart fetches the price series for a coin over the given day range.
// Samples with fewer than two numeric fields are dropped; millisecond epochs
// are converted to UTC timestamps. Ordering is left to the caller.
func (c *Client) MarketChart(ctx context.Context, coinID, currency string, days int) ([]history.PricePoint, error) {
	params := url.Values{}
	params.Set("vs_currency", currency)
	params.Set("days", strconv.Itoa(days))

	reqURL := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(coinID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.Unexpected(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("market data API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("API error",
			"coin_id", coinID, "status_code", resp.StatusCode, "body", string(body))
		return nil, apperrors.UpstreamUnavailable(
			fmt.Sprintf("market data API returned status %d", resp.StatusCode), nil)
	}

	var payload struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("undecodable response", "coin_id", coinID, "error", err)
		return nil, apperrors.MalformedResponse("market data API response not decodable", err)
	}

	points := make([]history.PricePoint, 0, len(payload.Prices))
	for _, sample := range payload.Prices {
		if len(sample) < 2 {
			continue
		}
		points = append(points, history.PricePoint{
			At:    time.UnixMilli(int64(sample[0])).UTC(),
			Price: decimal.NewFromFloat(sample[1]),
		})
	}

	c.logger.Debug("market chart fetched",
		"coin_id", coinID, "days", days, "points", len(points),
		"duration_ms", time.Since(start).Milliseconds())
	return points, nil
}
