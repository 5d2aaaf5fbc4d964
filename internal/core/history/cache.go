// Package history serves historical price series from CoinGecko behind a
// bucketed-TTL in-process cache.
package history

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/shared/errors"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

// PricePoint is one chart sample.
type PricePoint struct {
	At    time.Time       `json:"at"`
	Price decimal.Decimal `json:"price"`
}

// ChartSource fetches a market chart for a CoinGecko coin id. Points may
// arrive unordered; malformed samples are already dropped by the gateway.
type ChartSource interface {
	MarketChart(ctx context.Context, coinID, currency string, days int) ([]PricePoint, error)
}

// Series is a cached, presentation-ready price history.
type Series struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Days          int             `json:"days"`
	Points        []PricePoint    `json:"points"`
	Current       decimal.Decimal `json:"current"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	CachedUntil   time.Time       `json:"cached_until"`
}

// View is the history result handed to the presentation layer.
type View struct {
	Series Series `json:"series"`
	Error  string `json:"error,omitempty"`
}

// Success reports whether the view carries data rather than an error.
func (v View) Success() bool { return v.Error == "" }

type seriesKey struct {
	Symbol   string
	Days     int
	Currency string
}

// Cache is a best-effort series cache: a stale check followed by a refetch
// is not atomic, so concurrent readers may both refetch the same key and the
// last writer wins.
type Cache struct {
	source ChartSource
	logger *logger.Logger

	mu      sync.RWMutex
	entries map[seriesKey]*Series

	now func() time.Time
}

// NewCache creates an empty history cache over the given chart source.
func NewCache(source ChartSource, log *logger.Logger) *Cache {
	return &Cache{
		source:  source,
		logger:  log.WithField("component", "history"),
		entries: make(map[seriesKey]*Series),
		now:     time.Now,
	}
}

// PriceHistory returns the price series for symbol over the requested day
// range, serving from cache while the entry is live. Failures are never
// cached.
func (c *Cache) PriceHistory(ctx context.Context, symbol string, days int, currency string) View {
	if currency == "" {
		currency = "eur"
	}
	key := seriesKey{
		Symbol:   strings.ToUpper(symbol),
		Days:     days,
		Currency: strings.ToLower(currency),
	}

	if cached := c.lookup(key); cached != nil {
		return View{Series: *cached}
	}

	coinID, ok := IDFor(key.Symbol)
	if !ok {
		return View{Error: apperrors.UnsupportedSymbol(key.Symbol).Message}
	}

	points, err := c.source.MarketChart(ctx, coinID, key.Currency, days)
	if err != nil {
		c.logger.Warn("market chart fetch failed",
			"symbol", key.Symbol, "coin_id", coinID, "days", days, "error", err)
		return View{Error: apperrors.Describe(err)}
	}

	series := buildSeries(key, points, c.now().Add(ttlFor(days)))

	c.mu.Lock()
	c.entries[key] = series
	c.mu.Unlock()

	return View{Series: *series}
}

func (c *Cache) lookup(key seriesKey) *Series {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.CachedUntil) {
		return nil
	}
	return entry
}

// ttlFor buckets the cache lifetime by requested day range: short windows
// move fast and expire quickly, long windows barely change.
func ttlFor(days int) time.Duration {
	switch days {
	case 1:
		return 5 * time.Minute
	case 7:
		return 15 * time.Minute
	case 30:
		return 30 * time.Minute
	default:
		return 60 * time.Minute
	}
}

func buildSeries(key seriesKey, points []PricePoint, cachedUntil time.Time) *Series {
	sort.Slice(points, func(i, j int) bool {
		return points[i].At.Before(points[j].At)
	})

	series := &Series{
		Symbol:      key.Symbol,
		Name:        DisplayName(key.Symbol),
		Currency:    key.Currency,
		Days:        key.Days,
		Points:      points,
		CachedUntil: cachedUntil,
	}

	if len(points) == 0 {
		return series
	}

	first := points[0].Price
	series.Current = points[len(points)-1].Price
	series.High = points[0].Price
	series.Low = points[0].Price
	for _, p := range points[1:] {
		if p.Price.GreaterThan(series.High) {
			series.High = p.Price
		}
		if p.Price.LessThan(series.Low) {
			series.Low = p.Price
		}
	}

	// Guard against a zero first price; ChangePercent stays zero then.
	if !first.IsZero() {
		series.ChangePercent = series.Current.Sub(first).
			Div(first).
			Mul(decimal.NewFromInt(100))
	}

	return series
}
