package models

// PositionRow is a single wallet-token-date-protocol observation from the
// lending_positions fact table. Rows are read-only facts: the pipeline
// aggregates them in memory while building one report and never writes
// them back.
type PositionRow struct {
	Date            string  `json:"date"`
	Address         string  `json:"address"`
	Project         string  `json:"project"`
	Protocol        string  `json:"protocol"`
	Symbol          string  `json:"symbol"`
	Balance         float64 `json:"balance"`
	USDBalance      float64 `json:"usd_balance"`
	USDExchangeRate float64 `json:"usd_exchange_rate"`
	LendingID       string  `json:"lending_id"`
	Mint            string  `json:"mint"`
	TokenName       string  `json:"token_name"`
}
