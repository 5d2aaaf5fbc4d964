package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category tags wallets and transactions as crypto- or fiat-side.
type Category string

const (
	CategoryCrypto Category = "crypto"
	CategoryFiat   Category = "fiat"
)

// DefaultPageSize is applied whenever a caller does not supply one.
const DefaultPageSize = 25

// Wallet represents a single Bitpanda wallet, crypto or fiat.
// Value is populated only after a price lookup; before valuation it is zero.
type Wallet struct {
	ID           string          `json:"id"`
	Category     Category        `json:"category"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	Value        decimal.Decimal `json:"value_eur"`
	PendingCount int             `json:"pending_count"`
	IsDefault    bool            `json:"is_default"`
}

// Trade represents a completed or pending buy/sell.
type Trade struct {
	ID           string          `json:"id"`
	Side         string          `json:"side"` // buy | sell
	Status       string          `json:"status"`
	CryptoAmount decimal.Decimal `json:"crypto_amount"`
	FiatAmount   decimal.Decimal `json:"fiat_amount"`
	Price        decimal.Decimal `json:"price"`
	IsSwap       bool            `json:"is_swap"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// TradePage is one page of trades plus the upstream pagination metadata.
type TradePage struct {
	Items      []Trade `json:"items"`
	TotalCount int     `json:"total_count"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// Transaction is the tagged union over crypto and fiat transactions. The
// Category field discriminates; fiat transactions carry no chain hash or
// confirmation count and have Symbol fixed to the reference currency.
type Transaction struct {
	ID            string          `json:"id"`
	Category      Category        `json:"category"`
	Kind          string          `json:"kind"` // deposit, withdrawal, buy, sell, transfer, refund
	Status        string          `json:"status"`
	Symbol        string          `json:"symbol"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	TxHash        string          `json:"tx_hash,omitempty"`
	Confirmations int             `json:"confirmations,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// TradeQuery carries the optional filters for a trade listing. Zero values
// mean "not supplied" and are omitted from the upstream request.
type TradeQuery struct {
	Side     string
	Cursor   string
	PageSize int
}

// TransactionQuery carries the optional filters for a transaction listing.
type TransactionQuery struct {
	Kind     string
	Status   string
	Cursor   string
	PageSize int
}
