package history

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

type fakeChartSource struct {
	calls  int
	coinID string
	points []PricePoint
	err    error
}

func (f *fakeChartSource) MarketChart(ctx context.Context, coinID, currency string, days int) ([]PricePoint, error) {
	f.calls++
	f.coinID = coinID
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

func day1Points(base time.Time) []PricePoint {
	// Deliberately unordered; the cache sorts ascending.
	return []PricePoint{
		{At: base.Add(2 * time.Hour), Price: decimal.NewFromInt(52000)},
		{At: base, Price: decimal.NewFromInt(50000)},
		{At: base.Add(time.Hour), Price: decimal.NewFromInt(48000)},
	}
}

func newTestCache(source ChartSource) *Cache {
	return NewCache(source, logger.New("development", io.Discard))
}

func TestCache_PriceHistory(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeChartSource{points: day1Points(base)}
	cache := newTestCache(source)

	view := cache.PriceHistory(context.Background(), "btc", 1, "eur")
	require.True(t, view.Success())
	assert.Equal(t, "bitcoin", source.coinID)

	s := view.Series
	assert.Equal(t, "BTC", s.Symbol)
	assert.Equal(t, "Bitcoin", s.Name)
	assert.Equal(t, "eur", s.Currency)
	assert.Equal(t, 1, s.Days)

	// Sorted ascending by time
	require.Len(t, s.Points, 3)
	assert.True(t, s.Points[0].At.Before(s.Points[1].At))
	assert.True(t, s.Points[1].At.Before(s.Points[2].At))

	assert.True(t, s.Current.Equal(decimal.NewFromInt(52000)), "current = last point")
	assert.True(t, s.High.Equal(decimal.NewFromInt(52000)))
	assert.True(t, s.Low.Equal(decimal.NewFromInt(48000)))
	// (52000 - 50000) / 50000 * 100 = 4
	assert.True(t, s.ChangePercent.Equal(decimal.NewFromInt(4)), "got %s", s.ChangePercent)
}

func TestCache_PriceHistoryCached(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeChartSource{points: day1Points(base)}
	cache := newTestCache(source)

	clock := base
	cache.now = func() time.Time { return clock }

	cache.PriceHistory(context.Background(), "BTC", 1, "eur")
	assert.Equal(t, 1, source.calls)

	// Within the 5-minute bucket for days=1: served from cache
	clock = clock.Add(4 * time.Minute)
	cache.PriceHistory(context.Background(), "BTC", 1, "eur")
	assert.Equal(t, 1, source.calls)

	// Different key fetches independently
	cache.PriceHistory(context.Background(), "BTC", 7, "eur")
	assert.Equal(t, 2, source.calls)

	// Past the bucket: refetched
	clock = clock.Add(2 * time.Minute)
	cache.PriceHistory(context.Background(), "BTC", 1, "eur")
	assert.Equal(t, 3, source.calls)
}

func TestCache_UnsupportedSymbol(t *testing.T) {
	source := &fakeChartSource{}
	cache := newTestCache(source)

	view := cache.PriceHistory(context.Background(), "NOTACOIN", 1, "eur")
	assert.False(t, view.Success())
	assert.Contains(t, view.Error, "not supported")
	assert.Equal(t, 0, source.calls, "no fetch for unmapped symbols")
}

func TestCache_FetchFailureNotCached(t *testing.T) {
	source := &fakeChartSource{err: errors.New("upstream down")}
	cache := newTestCache(source)

	view := cache.PriceHistory(context.Background(), "BTC", 1, "eur")
	assert.False(t, view.Success())

	// The failure was not negatively cached: next call attempts again
	source.err = nil
	source.points = day1Points(time.Now().UTC())
	view = cache.PriceHistory(context.Background(), "BTC", 1, "eur")
	assert.True(t, view.Success())
	assert.Equal(t, 2, source.calls)
}

func TestCache_ZeroFirstPrice(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeChartSource{points: []PricePoint{
		{At: base, Price: decimal.Zero},
		{At: base.Add(time.Hour), Price: decimal.NewFromInt(100)},
	}}
	cache := newTestCache(source)

	view := cache.PriceHistory(context.Background(), "BTC", 1, "eur")
	require.True(t, view.Success())
	assert.True(t, view.Series.ChangePercent.IsZero(), "no division by a zero first price")
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ttlFor(1))
	assert.Equal(t, 15*time.Minute, ttlFor(7))
	assert.Equal(t, 30*time.Minute, ttlFor(30))
	assert.Equal(t, 60*time.Minute, ttlFor(365))
	assert.Equal(t, 60*time.Minute, ttlFor(14))
}
