package bitpanda_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/credential"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/portfolio"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/infra/gateway/bitpanda"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, key string) *bitpanda.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := bitpanda.NewClient(credential.NewStore(key), testLogger())
	client.SetBaseURL(server.URL)
	return client
}

func TestClient_APIKeyHeader(t *testing.T) {
	var receivedKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		receivedKey = r.Header.Get("X-API-KEY")
		w.Write([]byte(`{"data":[]}`))
	}, "secret-123")

	_, err := client.ListCryptoWallets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret-123", receivedKey)
}

func TestClient_ListCryptoWallets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"type":"wallet","id":"w1","attributes":{"cryptocoin_id":"1","cryptocoin_symbol":"btc","balance":"0.5","is_default":true,"name":"BTC Wallet","pending_transactions_count":1,"deleted":false}},
			{"type":"wallet","id":"w2","attributes":{"cryptocoin_id":"5","cryptocoin_symbol":"eth","balance":"12.0","name":"ETH Wallet","deleted":false}},
			{"type":"wallet","id":"w3","attributes":{"cryptocoin_id":"3","cryptocoin_symbol":"ltc","balance":"0.0","name":"LTC Wallet","deleted":false}},
			{"type":"wallet","id":"w4","attributes":{"cryptocoin_id":"7","cryptocoin_symbol":"ada","balance":"100","name":"Old","deleted":true}}
		]}`))
	}, "key")

	wallets, err := client.ListCryptoWallets(context.Background())
	require.NoError(t, err)

	// Zero-balance and deleted wallets dropped; sorted descending by balance
	require.Len(t, wallets, 2)
	assert.Equal(t, "ETH", wallets[0].Symbol)
	assert.Equal(t, "BTC", wallets[1].Symbol)
	assert.Equal(t, portfolio.CategoryCrypto, wallets[0].Category)
	assert.True(t, wallets[1].Balance.Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, wallets[1].IsDefault)
	assert.Equal(t, 1, wallets[1].PendingCount)
}

func TestClient_ListFiatWallets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fiatwallets", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"type":"fiat_wallet","id":"f1","attributes":{"fiat_id":"1","fiat_symbol":"EUR","balance":"250.50","name":"EUR Wallet","pending_transactions_count":"0"}},
			{"type":"fiat_wallet","id":"f2","attributes":{"fiat_id":"2","fiat_symbol":"USD","balance":"1000","name":"USD Wallet"}}
		]}`))
	}, "key")

	wallets, err := client.ListFiatWallets(context.Background())
	require.NoError(t, err)

	require.Len(t, wallets, 2)
	assert.Equal(t, "USD", wallets[0].Symbol, "sorted descending by balance")
	assert.Equal(t, "EUR", wallets[1].Symbol)
	assert.Equal(t, portfolio.CategoryFiat, wallets[0].Category)
	// Fiat wallets with zero balance stay listed
	assert.True(t, wallets[1].Balance.Equal(decimal.NewFromFloat(250.50)))
}

func TestClient_ListTrades_QueryConstruction(t *testing.T) {
	var query string
	handler := func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}

	t.Run("absent filters omitted", func(t *testing.T) {
		client := newTestClient(t, handler, "key")
		_, err := client.ListTrades(context.Background(), portfolio.TradeQuery{})
		require.NoError(t, err)
		assert.Equal(t, "page_size=25", query)
	})

	t.Run("supplied filters included", func(t *testing.T) {
		client := newTestClient(t, handler, "key")
		_, err := client.ListTrades(context.Background(), portfolio.TradeQuery{
			Side: "buy", Cursor: "abc", PageSize: 10,
		})
		require.NoError(t, err)
		assert.Contains(t, query, "type=buy")
		assert.Contains(t, query, "cursor=abc")
		assert.Contains(t, query, "page_size=10")
	})
}

func TestClient_ListTrades(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"type":"trade","id":"t1","attributes":{"status":"finished","type":"buy","amount_fiat":"100.00","amount_cryptocoin":"0.002","price":"50000","is_swap":false,"time":{"date_iso8601":"2024-03-01T12:00:00+01:00","unix":"1709290800"}}}
		],"meta":{"total_count":152,"next_cursor":"xyz","page_size":25}}`))
	}, "key")

	page, err := client.ListTrades(context.Background(), portfolio.TradeQuery{})
	require.NoError(t, err)

	assert.Equal(t, 152, page.TotalCount)
	assert.Equal(t, "xyz", page.NextCursor)
	require.Len(t, page.Items, 1)

	trade := page.Items[0]
	assert.Equal(t, "t1", trade.ID)
	assert.Equal(t, "buy", trade.Side)
	assert.Equal(t, "finished", trade.Status)
	assert.True(t, trade.FiatAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, trade.Price.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, int64(1709290800), trade.OccurredAt.Unix())
}

func TestClient_ListCryptoTransactions(t *testing.T) {
	var path, query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		w.Write([]byte(`{"data":[
			{"type":"transaction","id":"tx1","attributes":{"amount":"0.1","fee":"0.0001","confirmations":6,"tx_id":"0xdeadbeef","cryptocoin_symbol":"BTC","status":"finished","type":"withdrawal","time":{"unix":"1709290800"}}}
		]}`))
	}, "key")

	txs, err := client.ListCryptoTransactions(context.Background(), portfolio.TransactionQuery{
		Kind: "withdrawal", Status: "finished", PageSize: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "/wallets/transactions", path)
	assert.Contains(t, query, "type=withdrawal")
	assert.Contains(t, query, "status=finished")
	assert.Contains(t, query, "page_size=5")

	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, portfolio.CategoryCrypto, tx.Category)
	assert.Equal(t, "BTC", tx.Symbol)
	assert.Equal(t, "0xdeadbeef", tx.TxHash)
	assert.Equal(t, 6, tx.Confirmations)
	assert.True(t, tx.Fee.Equal(decimal.NewFromFloat(0.0001)))
}

func TestClient_ListFiatTransactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fiatwallets/transactions", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"type":"fiat_wallet_transaction","id":"ftx1","attributes":{"fiat_id":"1","amount":"500","fee":"0","type":"deposit","status":"finished","time":{"unix":"1709290800"}}}
		]}`))
	}, "key")

	txs, err := client.ListFiatTransactions(context.Background(), portfolio.TransactionQuery{})
	require.NoError(t, err)

	require.Len(t, txs, 1)
	assert.Equal(t, portfolio.CategoryFiat, txs[0].Category)
	assert.Equal(t, "EUR", txs[0].Symbol, "fiat transactions carry the reference currency")
	assert.Empty(t, txs[0].TxHash)
}

func TestClient_ValidateKey(t *testing.T) {
	t.Run("well-formed empty response is valid", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		}, "key")
		assert.True(t, client.ValidateKey(context.Background()))
	})

	t.Run("unauthorized is invalid", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, "bad-key")
		assert.False(t, client.ValidateKey(context.Background()))
	})

	t.Run("undecodable body is invalid", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}, "key")
		assert.False(t, client.ValidateKey(context.Background()))
	})
}

func TestClient_Ticker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ticker", r.URL.Path)
		w.Write([]byte(`{"BTC":{"EUR":"50000.12","USD":"54000.00"},"ETH":{"EUR":"3000.00"}}`))
	}, "")

	raw, err := client.Ticker(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "50000.12", raw["BTC"]["EUR"])
	assert.Equal(t, "3000.00", raw["ETH"]["EUR"])
}

func TestClient_UpstreamErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, "key")

		_, err := client.ListCryptoWallets(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":`))
		}, "key")

		_, err := client.ListTrades(context.Background(), portfolio.TradeQuery{})
		require.Error(t, err)
	})
}
