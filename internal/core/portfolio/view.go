package portfolio

import "github.com/shopspring/decimal"

// WalletsView is the valued wallet listing handed to the presentation layer.
type WalletsView struct {
	HasAPIKey     bool            `json:"has_api_key"`
	CryptoWallets []Wallet        `json:"crypto_wallets"`
	FiatWallets   []Wallet        `json:"fiat_wallets"`
	TotalValue    decimal.Decimal `json:"total_value_eur"`
	Error         string          `json:"error,omitempty"`
}

// Success reports whether the view carries data rather than an error.
func (v WalletsView) Success() bool { return v.Error == "" }

// TradesView is one page of trades.
type TradesView struct {
	HasAPIKey  bool    `json:"has_api_key"`
	Trades     []Trade `json:"trades"`
	TotalCount int     `json:"total_count"`
	NextCursor string  `json:"next_cursor,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Success reports whether the view carries data rather than an error.
func (v TradesView) Success() bool { return v.Error == "" }

// TransactionsView is a merged, time-ordered transaction listing.
type TransactionsView struct {
	HasAPIKey    bool          `json:"has_api_key"`
	Transactions []Transaction `json:"transactions"`
	Error        string        `json:"error,omitempty"`
}

// Success reports whether the view carries data rather than an error.
func (v TransactionsView) Success() bool { return v.Error == "" }
