package history

import "strings"

// coinInfo pairs a CoinGecko id with a display name.
type coinInfo struct {
	ID   string
	Name string
}

// coinBySymbol is the static symbol mapping, loaded once and never mutated.
// Only symbols listed here can be charted.
var coinBySymbol = map[string]coinInfo{
	"BTC":   {"bitcoin", "Bitcoin"},
	"ETH":   {"ethereum", "Ethereum"},
	"XRP":   {"ripple", "XRP"},
	"ADA":   {"cardano", "Cardano"},
	"SOL":   {"solana", "Solana"},
	"DOT":   {"polkadot", "Polkadot"},
	"DOGE":  {"dogecoin", "Dogecoin"},
	"LTC":   {"litecoin", "Litecoin"},
	"BCH":   {"bitcoin-cash", "Bitcoin Cash"},
	"LINK":  {"chainlink", "Chainlink"},
	"XLM":   {"stellar", "Stellar"},
	"UNI":   {"uniswap", "Uniswap"},
	"MATIC": {"matic-network", "Polygon"},
	"AVAX":  {"avalanche-2", "Avalanche"},
	"ATOM":  {"cosmos", "Cosmos"},
	"ALGO":  {"algorand", "Algorand"},
	"VET":   {"vechain", "VeChain"},
	"TRX":   {"tron", "TRON"},
	"EOS":   {"eos", "EOS"},
	"XTZ":   {"tezos", "Tezos"},
	"AAVE":  {"aave", "Aave"},
	"MKR":   {"maker", "Maker"},
	"COMP":  {"compound-governance-token", "Compound"},
	"SNX":   {"havven", "Synthetix"},
	"SUSHI": {"sushi", "SushiSwap"},
	"YFI":   {"yearn-finance", "yearn.finance"},
	"CRV":   {"curve-dao-token", "Curve DAO"},
	"BAT":   {"basic-attention-token", "Basic Attention Token"},
	"ZRX":   {"0x", "0x"},
	"OMG":   {"omisego", "OMG Network"},
	"ENJ":   {"enjincoin", "Enjin Coin"},
	"MANA":  {"decentraland", "Decentraland"},
	"SAND":  {"the-sandbox", "The Sandbox"},
	"GRT":   {"the-graph", "The Graph"},
	"SHIB":  {"shiba-inu", "Shiba Inu"},
	"NEAR":  {"near", "NEAR Protocol"},
	"FTM":   {"fantom", "Fantom"},
	"FIL":   {"filecoin", "Filecoin"},
}

// IDFor resolves a symbol to its CoinGecko id, case-insensitively.
func IDFor(symbol string) (string, bool) {
	info, ok := coinBySymbol[strings.ToUpper(symbol)]
	if !ok {
		return "", false
	}
	return info.ID, true
}

// DisplayName resolves a symbol to its human-readable coin name,
// falling back to the uppercased symbol for unmapped entries.
func DisplayName(symbol string) string {
	if info, ok := coinBySymbol[strings.ToUpper(symbol)]; ok {
		return info.Name
	}
	return strings.ToUpper(symbol)
}
