package bitpanda

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// envelope is the JSON:API-style response shape shared by all Bitpanda
// listing endpoints.
type envelope struct {
	Data []resource `json:"data"`
	Meta *meta      `json:"meta,omitempty"`
}

// resource wraps a single entity with its type and id.
type resource struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

// meta carries pagination metadata.
type meta struct {
	TotalCount flexInt `json:"total_count"`
	NextCursor string  `json:"next_cursor"`
	PageSize   flexInt `json:"page_size"`
}

// flexInt decodes integers that the API serves sometimes bare, sometimes
// quoted.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// timeAttr is the nested time object on trades and transactions.
type timeAttr struct {
	ISO8601 string `json:"date_iso8601"`
	Unix    string `json:"unix"`
}

// Time converts the attribute to a UTC timestamp, preferring the unix
// epoch field and falling back to the ISO form. Unparsable values resolve
// to the zero time.
func (t timeAttr) Time() time.Time {
	if t.Unix != "" {
		if secs, err := strconv.ParseInt(t.Unix, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC()
		}
	}
	if t.ISO8601 != "" {
		if parsed, err := time.Parse(time.RFC3339, t.ISO8601); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

type walletAttributes struct {
	CryptocoinID             string  `json:"cryptocoin_id"`
	CryptocoinSymbol         string  `json:"cryptocoin_symbol"`
	Balance                  string  `json:"balance"`
	IsDefault                bool    `json:"is_default"`
	Name                     string  `json:"name"`
	PendingTransactionsCount flexInt `json:"pending_transactions_count"`
	Deleted                  bool    `json:"deleted"`
}

type fiatWalletAttributes struct {
	FiatID                   string  `json:"fiat_id"`
	FiatSymbol               string  `json:"fiat_symbol"`
	Balance                  string  `json:"balance"`
	Name                     string  `json:"name"`
	PendingTransactionsCount flexInt `json:"pending_transactions_count"`
}

type tradeAttributes struct {
	Status           string   `json:"status"`
	Type             string   `json:"type"` // buy | sell
	CryptocoinID     string   `json:"cryptocoin_id"`
	FiatID           string   `json:"fiat_id"`
	AmountFiat       string   `json:"amount_fiat"`
	AmountCryptocoin string   `json:"amount_cryptocoin"`
	Price            string   `json:"price"`
	IsSwap           bool     `json:"is_swap"`
	Time             timeAttr `json:"time"`
}

type cryptoTransactionAttributes struct {
	Amount           string   `json:"amount"`
	Fee              string   `json:"fee"`
	Confirmations    flexInt  `json:"confirmations"`
	TxID             string   `json:"tx_id"`
	CryptocoinID     string   `json:"cryptocoin_id"`
	CryptocoinSymbol string   `json:"cryptocoin_symbol"`
	Status           string   `json:"status"`
	Type             string   `json:"type"`
	Time             timeAttr `json:"time"`
}

type fiatTransactionAttributes struct {
	FiatID string   `json:"fiat_id"`
	Amount string   `json:"amount"`
	Fee    string   `json:"fee"`
	Type   string   `json:"type"`
	Status string   `json:"status"`
	Time   timeAttr `json:"time"`
}
