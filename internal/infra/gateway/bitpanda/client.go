// Package bitpanda is the HTTP gateway to the Bitpanda account/trading API
// and its public ticker endpoint.
package bitpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/credential"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/market"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/portfolio"
	apperrors "github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/shared/errors"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/numeric"
)

const (
	defaultBaseURL = "https://api.bitpanda.com/v1"
	headerAPIKey   = "X-API-KEY"
	requestTimeout = 15 * time.Second
)

// Client is an HTTP client for the Bitpanda REST API. Every call is a
// single attempt; there is no retry policy.
type Client struct {
	keys       *credential.Store
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new Bitpanda API client reading its key from keys.
func NewClient(keys *credential.Store, log *logger.Logger) *Client {
	return &Client{
		keys: keys,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  log.WithField("component", "bitpanda"),
	}
}

// SetBaseURL overrides the default base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.Unexpected(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if key := c.keys.Key(); strings.TrimSpace(key) != "" {
		req.Header.Set(headerAPIKey, key)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.UpstreamUnavailable("portfolio API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("API error",
			"path", path, "status_code", resp.StatusCode, "body", string(body))
		return apperrors.UpstreamUnavailable(
			fmt.Sprintf("portfolio API returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("undecodable response", "path", path, "error", err)
		return apperrors.MalformedResponse("portfolio API response not decodable", err)
	}

	c.logger.Debug("API response",
		"path", path, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// ListCryptoWallets fetches crypto wallets, dropping deleted and
// zero-balance entries and sorting descending by balance.
func (c *Client) ListCryptoWallets(ctx context.Context) ([]portfolio.Wallet, error) {
	var env envelope
	if err := c.get(ctx, "/wallets", nil, &env); err != nil {
		return nil, err
	}

	wallets := make([]portfolio.Wallet, 0, len(env.Data))
	for _, res := range env.Data {
		var attrs walletAttributes
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			c.logger.Warn("skipping undecodable wallet", "id", res.ID, "error", err)
			continue
		}
		if attrs.Deleted {
			continue
		}
		balance := numeric.Parse(attrs.Balance)
		if balance.Sign() <= 0 {
			continue
		}
		wallets = append(wallets, portfolio.Wallet{
			ID:           res.ID,
			Category:     portfolio.CategoryCrypto,
			Symbol:       strings.ToUpper(attrs.CryptocoinSymbol),
			Name:         attrs.Name,
			Balance:      balance,
			PendingCount: int(attrs.PendingTransactionsCount),
			IsDefault:    attrs.IsDefault,
		})
	}

	sortWalletsByBalance(wallets)
	return wallets, nil
}

// ListFiatWallets fetches fiat wallets sorted descending by balance.
func (c *Client) ListFiatWallets(ctx context.Context) ([]portfolio.Wallet, error) {
	var env envelope
	if err := c.get(ctx, "/fiatwallets", nil, &env); err != nil {
		return nil, err
	}

	wallets := make([]portfolio.Wallet, 0, len(env.Data))
	for _, res := range env.Data {
		var attrs fiatWalletAttributes
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			c.logger.Warn("skipping undecodable fiat wallet", "id", res.ID, "error", err)
			continue
		}
		wallets = append(wallets, portfolio.Wallet{
			ID:           res.ID,
			Category:     portfolio.CategoryFiat,
			Symbol:       strings.ToUpper(attrs.FiatSymbol),
			Name:         attrs.Name,
			Balance:      numeric.Parse(attrs.Balance),
			PendingCount: int(attrs.PendingTransactionsCount),
		})
	}

	sortWalletsByBalance(wallets)
	return wallets, nil
}

// ListTrades fetches one page of trades. Absent filters are omitted from
// the query, not sent empty.
func (c *Client) ListTrades(ctx context.Context, q portfolio.TradeQuery) (portfolio.TradePage, error) {
	params := url.Values{}
	if q.Side != "" {
		params.Set("type", q.Side)
	}
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	params.Set("page_size", strconv.Itoa(pageSizeOrDefault(q.PageSize)))

	var env envelope
	if err := c.get(ctx, "/trades", params, &env); err != nil {
		return portfolio.TradePage{}, err
	}

	page := portfolio.TradePage{Items: make([]portfolio.Trade, 0, len(env.Data))}
	for _, res := range env.Data {
		var attrs tradeAttributes
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			c.logger.Warn("skipping undecodable trade", "id", res.ID, "error", err)
			continue
		}
		page.Items = append(page.Items, portfolio.Trade{
			ID:           res.ID,
			Side:         attrs.Type,
			Status:       attrs.Status,
			CryptoAmount: numeric.Parse(attrs.AmountCryptocoin),
			FiatAmount:   numeric.Parse(attrs.AmountFiat),
			Price:        numeric.Parse(attrs.Price),
			IsSwap:       attrs.IsSwap,
			OccurredAt:   attrs.Time.Time(),
		})
	}
	if env.Meta != nil {
		page.TotalCount = int(env.Meta.TotalCount)
		page.NextCursor = env.Meta.NextCursor
	}
	return page, nil
}

// ListCryptoTransactions fetches one page of crypto wallet transactions.
func (c *Client) ListCryptoTransactions(ctx context.Context, q portfolio.TransactionQuery) ([]portfolio.Transaction, error) {
	var env envelope
	if err := c.get(ctx, "/wallets/transactions", transactionParams(q), &env); err != nil {
		return nil, err
	}

	txs := make([]portfolio.Transaction, 0, len(env.Data))
	for _, res := range env.Data {
		var attrs cryptoTransactionAttributes
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			c.logger.Warn("skipping undecodable transaction", "id", res.ID, "error", err)
			continue
		}
		symbol := strings.ToUpper(attrs.CryptocoinSymbol)
		if symbol == "" {
			symbol = attrs.CryptocoinID
		}
		txs = append(txs, portfolio.Transaction{
			ID:            res.ID,
			Category:      portfolio.CategoryCrypto,
			Kind:          attrs.Type,
			Status:        attrs.Status,
			Symbol:        symbol,
			Amount:        numeric.Parse(attrs.Amount),
			Fee:           numeric.Parse(attrs.Fee),
			TxHash:        attrs.TxID,
			Confirmations: int(attrs.Confirmations),
			OccurredAt:    attrs.Time.Time(),
		})
	}
	return txs, nil
}

// ListFiatTransactions fetches one page of fiat wallet transactions. The
// symbol is fixed to the reference currency; multi-fiat resolution does not
// happen at this layer.
func (c *Client) ListFiatTransactions(ctx context.Context, q portfolio.TransactionQuery) ([]portfolio.Transaction, error) {
	var env envelope
	if err := c.get(ctx, "/fiatwallets/transactions", transactionParams(q), &env); err != nil {
		return nil, err
	}

	txs := make([]portfolio.Transaction, 0, len(env.Data))
	for _, res := range env.Data {
		var attrs fiatTransactionAttributes
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			c.logger.Warn("skipping undecodable fiat transaction", "id", res.ID, "error", err)
			continue
		}
		txs = append(txs, portfolio.Transaction{
			ID:         res.ID,
			Category:   portfolio.CategoryFiat,
			Kind:       attrs.Type,
			Status:     attrs.Status,
			Symbol:     market.ReferenceCurrency,
			Amount:     numeric.Parse(attrs.Amount),
			Fee:        numeric.Parse(attrs.Fee),
			OccurredAt: attrs.Time.Time(),
		})
	}
	return txs, nil
}

// ValidateKey attempts the cheapest authenticated call and reports whether
// a well-formed response came back. Any failure, network or parse, is false.
func (c *Client) ValidateKey(ctx context.Context) bool {
	params := url.Values{}
	params.Set("page_size", "1")

	var env envelope
	if err := c.get(ctx, "/trades", params, &env); err != nil {
		c.logger.Warn("key validation failed", "error", err)
		return false
	}
	return true
}

// Ticker fetches the public full-market ticker: symbol -> currency ->
// price string. No key is required.
func (c *Client) Ticker(ctx context.Context) (map[string]map[string]string, error) {
	var raw map[string]map[string]string
	if err := c.get(ctx, "/ticker", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func transactionParams(q portfolio.TransactionQuery) url.Values {
	params := url.Values{}
	if q.Kind != "" {
		params.Set("type", q.Kind)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	params.Set("page_size", strconv.Itoa(pageSizeOrDefault(q.PageSize)))
	return params
}

func pageSizeOrDefault(size int) int {
	if size <= 0 {
		return portfolio.DefaultPageSize
	}
	return size
}

func sortWalletsByBalance(wallets []portfolio.Wallet) {
	sort.Slice(wallets, func(i, j int) bool {
		if wallets[i].Balance.Equal(wallets[j].Balance) {
			return wallets[i].Symbol < wallets[j].Symbol
		}
		return wallets[i].Balance.GreaterThan(wallets[j].Balance)
	})
}
