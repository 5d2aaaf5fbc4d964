package portfolio

import "context"

// API is the upstream account/trading surface the aggregator consumes.
// Implemented by the Bitpanda gateway client; mocked in tests.
type API interface {
	// ListCryptoWallets returns non-deleted crypto wallets with a positive
	// balance, sorted descending by balance.
	ListCryptoWallets(ctx context.Context) ([]Wallet, error)

	// ListFiatWallets returns fiat wallets sorted descending by balance.
	ListFiatWallets(ctx context.Context) ([]Wallet, error)

	// ListTrades returns one page of trades matching the query.
	ListTrades(ctx context.Context, q TradeQuery) (TradePage, error)

	// ListCryptoTransactions returns one page of crypto-side transactions.
	ListCryptoTransactions(ctx context.Context, q TransactionQuery) ([]Transaction, error)

	// ListFiatTransactions returns one page of fiat-side transactions.
	ListFiatTransactions(ctx context.Context, q TransactionQuery) ([]Transaction, error)

	// ValidateKey performs the cheapest authenticated call and reports
	// whether it produced a well-formed response.
	ValidateKey(ctx context.Context) bool
}
