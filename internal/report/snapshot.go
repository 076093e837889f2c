package report

import (
	"fmt"
	"strings"

	"github.com/adil-farooq/solana-lending-agent/internal/catalog"
	"github.com/adil-farooq/solana-lending-agent/internal/models"
)

// Snapshot formats holdings at a single date: one row per returned position
// plus the total portfolio value. Duplicate symbol rows (e.g. the same token
// lent under two markets) each contribute to the total.
func Snapshot(rows []models.PositionRow, address, date string) string {
	if len(rows) == 0 {
		return fmt.Sprintf(
			"No active lending positions found for %s on %s. The wallet may have held no open positions, or the date may be outside the supported range (%s onward).\n",
			ShortAddress(address), date, catalog.SupportedStartDate)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Lending Snapshot — %s — %s\n\n", ShortAddress(address), date)
	b.WriteString("| Token | Balance | USD Value | Price |\n")
	b.WriteString("|-------|---------|-----------|-------|\n")

	total := 0.0
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			r.Symbol, Amount(r.Balance), USD(r.USDBalance), USD(r.USDExchangeRate))
		total += r.USDBalance
	}

	fmt.Fprintf(&b, "\n**Total Portfolio Value:** %s\n", USD(total))
	b.WriteString(sourceNote)
	return b.String()
}
