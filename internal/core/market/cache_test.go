package market

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

type fakeTickerSource struct {
	calls int
	data  map[string]map[string]string
	err   error
}

func (f *fakeTickerSource) Ticker(ctx context.Context) (map[string]map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func testTicker() map[string]map[string]string {
	return map[string]map[string]string{
		"BTC": {"EUR": "50000", "USD": "54000"},
		"ETH": {"EUR": "3000", "USD": "3240"},
		"ADA": {"EUR": "0.45", "USD": "0.49"},
	}
}

func newTestCache(source TickerSource) *SnapshotCache {
	return NewSnapshotCache(source, logger.New("development", io.Discard))
}

func TestSnapshotCache_Refresh(t *testing.T) {
	source := &fakeTickerSource{data: testTicker()}
	cache := newTestCache(source)

	view := cache.Refresh(context.Background())
	require.True(t, view.Success())
	require.Len(t, view.Prices, 3)

	// Sorted descending by EUR price
	assert.Equal(t, "BTC", view.Prices[0].Symbol)
	assert.Equal(t, "ETH", view.Prices[1].Symbol)
	assert.Equal(t, "ADA", view.Prices[2].Symbol)
	assert.True(t, view.Prices[0].Prices["EUR"].Equal(decimal.NewFromInt(50000)))
	assert.False(t, view.CapturedAt.IsZero())
}

func TestSnapshotCache_RefreshFailureKeepsSnapshot(t *testing.T) {
	source := &fakeTickerSource{data: testTicker()}
	cache := newTestCache(source)

	require.True(t, cache.Refresh(context.Background()).Success())

	source.err = errors.New("connection refused")
	view := cache.Refresh(context.Background())
	assert.False(t, view.Success())
	assert.NotEmpty(t, view.Error)

	// Previous snapshot still answers lookups without another fetch
	source.err = nil
	price := cache.PriceOf(context.Background(), "BTC", "")
	assert.True(t, price.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 2, source.calls)
}

func TestSnapshotCache_PriceOfWithinTTL(t *testing.T) {
	source := &fakeTickerSource{data: testTicker()}
	cache := newTestCache(source)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	first := cache.PriceOf(context.Background(), "BTC", "")
	assert.Equal(t, 1, source.calls)

	// 20s later: still live, no second fetch, identical value
	clock = clock.Add(20 * time.Second)
	second := cache.PriceOf(context.Background(), "BTC", "")
	assert.Equal(t, 1, source.calls)
	assert.True(t, first.Equal(second))

	// Past the 30s window: exactly one more fetch
	clock = clock.Add(15 * time.Second)
	cache.PriceOf(context.Background(), "BTC", "")
	assert.Equal(t, 2, source.calls)
}

func TestSnapshotCache_PriceOf(t *testing.T) {
	source := &fakeTickerSource{data: testTicker()}
	cache := newTestCache(source)
	ctx := context.Background()

	t.Run("case-insensitive symbol", func(t *testing.T) {
		assert.True(t, cache.PriceOf(ctx, "btc", "").Equal(decimal.NewFromInt(50000)))
	})

	t.Run("explicit currency", func(t *testing.T) {
		assert.True(t, cache.PriceOf(ctx, "BTC", "USD").Equal(decimal.NewFromInt(54000)))
	})

	t.Run("unknown symbol prices at zero", func(t *testing.T) {
		assert.True(t, cache.PriceOf(ctx, "NOTACOIN", "").IsZero())
	})

	t.Run("unknown currency prices at zero", func(t *testing.T) {
		assert.True(t, cache.PriceOf(ctx, "BTC", "JPY").IsZero())
	})
}

func TestSnapshotCache_PriceOfAllFetchesFail(t *testing.T) {
	source := &fakeTickerSource{err: errors.New("down")}
	cache := newTestCache(source)

	price := cache.PriceOf(context.Background(), "BTC", "")
	assert.True(t, price.IsZero())
}

func TestBuildSnapshot_MalformedPricesCoerceToZero(t *testing.T) {
	raw := map[string]map[string]string{
		"XXX": {"EUR": "not-a-number", "USD": ""},
	}
	snap := buildSnapshot(raw, time.Now())
	assert.True(t, snap.BySymbol["XXX"]["EUR"].IsZero())
	assert.True(t, snap.BySymbol["XXX"]["USD"].IsZero())
}
