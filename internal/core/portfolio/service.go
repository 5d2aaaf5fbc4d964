package portfolio

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/credential"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/core/market"
	apperrors "github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/internal/shared/errors"
	"github.com/jacksonstrongae86-ctrl/Eurocoin-bitpanda-test/pkg/logger"
)

// Service aggregates the portfolio API and the market snapshot cache into
// presentation-ready views. All failures surface as view error strings;
// nothing escapes as a panic.
type Service struct {
	keys   *credential.Store
	api    API
	market *market.SnapshotCache
	logger *logger.Logger
}

// NewService creates a new aggregation service.
func NewService(keys *credential.Store, api API, snapshots *market.SnapshotCache, log *logger.Logger) *Service {
	return &Service{
		keys:   keys,
		api:    api,
		market: snapshots,
		logger: log.WithField("component", "portfolio"),
	}
}

// GetTicker refreshes and returns the full ticker view.
func (s *Service) GetTicker(ctx context.Context) market.TickerView {
	return s.market.Refresh(ctx)
}

// GetWallets fetches crypto wallets, fiat wallets and the ticker snapshot
// concurrently, then values every wallet in EUR and sums the portfolio
// total. Valuation begins only after all three fetches have finished.
func (s *Service) GetWallets(ctx context.Context) WalletsView {
	if !s.keys.HasKey() {
		return WalletsView{Error: apperrors.MissingAPIKey().Message}
	}

	var (
		crypto []Wallet
		fiat   []Wallet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wallets, err := s.api.ListCryptoWallets(gctx)
		crypto = wallets
		return err
	})
	g.Go(func() error {
		wallets, err := s.api.ListFiatWallets(gctx)
		fiat = wallets
		return err
	})
	g.Go(func() error {
		if view := s.market.Refresh(gctx); !view.Success() {
			return apperrors.New(apperrors.ErrCodeUpstreamUnavailable, view.Error)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("wallet aggregation failed", "error", err)
		return WalletsView{HasAPIKey: true, Error: apperrors.Describe(err)}
	}

	total := decimal.Zero
	for i := range crypto {
		price := s.market.PriceOf(ctx, crypto[i].Symbol, market.ReferenceCurrency)
		crypto[i].Value = crypto[i].Balance.Mul(price)
		total = total.Add(crypto[i].Value)
	}
	for i := range fiat {
		// Non-reference fiat currencies are not converted and value at zero.
		if strings.EqualFold(fiat[i].Symbol, market.ReferenceCurrency) {
			fiat[i].Value = fiat[i].Balance
		} else {
			fiat[i].Value = decimal.Zero
		}
		total = total.Add(fiat[i].Value)
	}

	return WalletsView{
		HasAPIKey:     true,
		CryptoWallets: crypto,
		FiatWallets:   fiat,
		TotalValue:    total,
	}
}

// GetTrades returns one page of trades matching the query.
func (s *Service) GetTrades(ctx context.Context, q TradeQuery) TradesView {
	if !s.keys.HasKey() {
		return TradesView{Error: apperrors.MissingAPIKey().Message}
	}

	page, err := s.api.ListTrades(ctx, q)
	if err != nil {
		s.logger.Warn("trade listing failed", "error", err)
		return TradesView{HasAPIKey: true, Error: apperrors.Describe(err)}
	}

	return TradesView{
		HasAPIKey:  true,
		Trades:     page.Items,
		TotalCount: page.TotalCount,
		NextCursor: page.NextCursor,
	}
}

// GetTransactions returns transactions for the given category: "crypto",
// "fiat", or "all". The "all" case fetches both streams concurrently,
// merges them sorted descending by occurrence time and truncates the merged
// list to the page size.
func (s *Service) GetTransactions(ctx context.Context, category string, q TransactionQuery) TransactionsView {
	if !s.keys.HasKey() {
		return TransactionsView{Error: apperrors.MissingAPIKey().Message}
	}

	var (
		txs []Transaction
		err error
	)

	switch strings.ToLower(category) {
	case string(CategoryCrypto):
		txs, err = s.api.ListCryptoTransactions(ctx, q)
	case string(CategoryFiat):
		txs, err = s.api.ListFiatTransactions(ctx, q)
	default:
		txs, err = s.mergedTransactions(ctx, q)
	}
	if err != nil {
		s.logger.Warn("transaction listing failed", "category", category, "error", err)
		return TransactionsView{HasAPIKey: true, Error: apperrors.Describe(err)}
	}

	sortTransactionsDesc(txs)
	return TransactionsView{HasAPIKey: true, Transactions: txs}
}

// mergedTransactions fans out to both transaction streams and truncates the
// combined result. Each source is paginated independently upstream, so the
// merged page can under-return relative to the requested size.
func (s *Service) mergedTransactions(ctx context.Context, q TransactionQuery) ([]Transaction, error) {
	var cryptoTxs, fiatTxs []Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.api.ListCryptoTransactions(gctx, q)
		cryptoTxs = txs
		return err
	})
	g.Go(func() error {
		txs, err := s.api.ListFiatTransactions(gctx, q)
		fiatTxs = txs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Transaction, 0, len(cryptoTxs)+len(fiatTxs))
	merged = append(merged, cryptoTxs...)
	merged = append(merged, fiatTxs...)
	sortTransactionsDesc(merged)

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if len(merged) > size {
		merged = merged[:size]
	}
	return merged, nil
}

// TotalValue returns only the aggregate EUR sum from GetWallets.
func (s *Service) TotalValue(ctx context.Context) decimal.Decimal {
	return s.GetWallets(ctx).TotalValue
}

// ValidateKey checks the configured key against the API. Without a key it
// returns false immediately, with no network call.
func (s *Service) ValidateKey(ctx context.Context) bool {
	if !s.keys.HasKey() {
		return false
	}
	return s.api.ValidateKey(ctx)
}

func sortTransactionsDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].OccurredAt.After(txs[j].OccurredAt)
	})
}
