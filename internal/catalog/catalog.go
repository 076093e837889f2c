package catalog

import "strings"

// Fixed catalog the parser, compiler, and API all honor.
const (
	Chain   = "solana"
	Project = "kamino"

	// Earliest date covered by the lending_positions fact table.
	SupportedStartDate = "2025-06-01"
)

// Token describes one supported lending token.
type Token struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Mint   string `json:"mint"`
}

// Tokens is the fixed set of tokens the fact table exposes.
var Tokens = []Token{
	{Symbol: "USDC", Name: "USD Coin", Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
	{Symbol: "SOL", Name: "Wrapped SOL", Mint: "So11111111111111111111111111111111111111112"},
	{Symbol: "USDG", Name: "Global Dollar", Mint: "2u1tszSeqZ3qBWF3uNGPFc8TzMk2tdiwknnRMWGWjGWH"},
	{Symbol: "PYUSD", Name: "PayPal USD", Mint: "2b1kV6DkPAnxd5ixfnxCpjxmKwqjjaYmCZfHsFu24GXo"},
	{Symbol: "cash", Name: "Cash", Mint: "CASHVDm2wsJXfhj6VWxb7GiMdoLc17Du7paH4bNr5woT"},
	{Symbol: "USDT", Name: "Tether USD", Mint: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"},
	{Symbol: "USDS", Name: "USDS", Mint: "USDSwr9ApdHk5bvJKMjzff41FfuX8bSxdKcR81vTwcA"},
	{Symbol: "usd1", Name: "World Liberty Financial USD", Mint: "USD1ttGY1N17NEEHLmELoaybftRBUSErhqYiQzvEmuB"},
	{Symbol: "AUSD", Name: "Agora Dollar", Mint: "AUSDkB6qJe3yTgZacCwjkPnsQmpDt5vnUP2msLNBvory"},
}

// Symbols returns the supported token symbols in catalog order.
func Symbols() []string {
	out := make([]string, 0, len(Tokens))
	for _, t := range Tokens {
		out = append(out, t.Symbol)
	}
	return out
}

// Lookup returns the catalog entry for a symbol, matching case-insensitively.
func Lookup(symbol string) (Token, bool) {
	for _, t := range Tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return Token{}, false
}

// IsSupported reports whether a symbol is part of the fixed catalog.
func IsSupported(symbol string) bool {
	_, ok := Lookup(symbol)
	return ok
}
