// Package market caches the full Bitpanda ticker snapshot and answers price
// lookups against it. The snapshot is replaced wholesale on refresh and is
// considered live for 30 seconds.
package market

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/shared/errors"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/numeric"
)

// ReferenceCurrency is the fiat currency all portfolio totals are
// expressed in.
const ReferenceCurrency = "EUR"

const snapshotTTL = 30 * time.Second

// TickerSource fetches the raw ticker map: symbol -> currency -> price
// string. Implemented by the Bitpanda gateway client.
type TickerSource interface {
	Ticker(ctx context.Context) (map[string]map[string]string, error)
}

// Entry is one symbol's per-currency prices.
type Entry struct {
	Symbol string                     `json:"symbol"`
	Prices map[string]decimal.Decimal `json:"prices"`
}

// Snapshot is a single atomically-replaced capture of all current prices.
type Snapshot struct {
	Entries    []Entry // sorted descending by reference-currency price
	BySymbol   map[string]map[string]decimal.Decimal
	CapturedAt time.Time
}

// TickerView is the presentation-ready ticker result.
type TickerView struct {
	Prices     []Entry   `json:"prices"`
	CapturedAt time.Time `json:"captured_at"`
	Error      string    `json:"error,omitempty"`
}

// Success reports whether the view carries data rather than an error.
func (v TickerView) Success() bool { return v.Error == "" }

// SnapshotCache holds the latest ticker snapshot. The stale check followed
// by a refresh is deliberately not atomic: two concurrent readers observing
// staleness may both refetch, and the last writer wins. The pointer swap
// itself is synchronized.
type SnapshotCache struct {
	source TickerSource
	logger *logger.Logger

	mu   sync.RWMutex
	snap *Snapshot

	ttl time.Duration
	now func() time.Time
}

// NewSnapshotCache creates an empty cache over the given ticker source.
func NewSnapshotCache(source TickerSource, log *logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		source: source,
		logger: log.WithField("component", "market"),
		ttl:    snapshotTTL,
		now:    time.Now,
	}
}

// Refresh fetches the full ticker, replaces the cached snapshot and returns
// the fresh view. On failure the previous snapshot is left untouched and an
// error view is returned.
func (c *SnapshotCache) Refresh(ctx context.Context) TickerView {
	raw, err := c.source.Ticker(ctx)
	if err != nil {
		c.logger.Warn("ticker refresh failed", "error", err)
		return TickerView{Error: apperrors.Describe(err)}
	}

	snap := buildSnapshot(raw, c.now().UTC())

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	return TickerView{Prices: snap.Entries, CapturedAt: snap.CapturedAt}
}

// PriceOf returns the price of symbol in the given currency (reference
// currency when empty). A missing or stale snapshot triggers a synchronous
// refresh first; an absent symbol prices at zero.
func (c *SnapshotCache) PriceOf(ctx context.Context, symbol, currency string) decimal.Decimal {
	if currency == "" {
		currency = ReferenceCurrency
	}

	snap := c.current()
	if snap == nil || c.now().Sub(snap.CapturedAt) >= c.ttl {
		c.Refresh(ctx)
		snap = c.current()
	}
	if snap == nil {
		return decimal.Zero
	}

	prices, ok := snap.BySymbol[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero
	}
	price, ok := prices[strings.ToUpper(currency)]
	if !ok {
		return decimal.Zero
	}
	return price
}

func (c *SnapshotCache) current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func buildSnapshot(raw map[string]map[string]string, capturedAt time.Time) *Snapshot {
	bySymbol := make(map[string]map[string]decimal.Decimal, len(raw))
	entries := make([]Entry, 0, len(raw))

	for symbol, currencies := range raw {
		prices := make(map[string]decimal.Decimal, len(currencies))
		for code, value := range currencies {
			prices[strings.ToUpper(code)] = numeric.Parse(value)
		}
		upper := strings.ToUpper(symbol)
		bySymbol[upper] = prices
		entries = append(entries, Entry{Symbol: upper, Prices: prices})
	}

	sort.Slice(entries, func(i, j int) bool {
		pi := entries[i].Prices[ReferenceCurrency]
		pj := entries[j].Prices[ReferenceCurrency]
		if pi.Equal(pj) {
			return entries[i].Symbol < entries[j].Symbol
		}
		return pi.GreaterThan(pj)
	})

	return &Snapshot{
		Entries:    entries,
		BySymbol:   bySymbol,
		CapturedAt: capturedAt,
	}
}
