package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adil-farooq/solana-lending-agent/internal/models"
)

// Range formats holdings across a closed date interval as one time-series
// table per token symbol, followed by a period summary. A symbol's row for a
// date exists only when the query returned data for that (date, symbol) pair;
// missing dates are never forward-filled or interpolated.
func Range(rows []models.PositionRow, address, startDate, endDate string) string {
	if len(rows) == 0 {
		return fmt.Sprintf(
			"No lending positions found for %s between %s and %s.\n",
			ShortAddress(address), startDate, endDate)
	}

	type cell struct {
		balance float64
		usd     float64
	}

	// date -> symbol -> aggregated cell; duplicate (date, symbol) rows
	// (multiple markets) are summed.
	byDate := make(map[string]map[string]*cell)
	bySymbol := make(map[string]map[string]*cell)
	for _, r := range rows {
		d := DateOnly(r.Date)
		if byDate[d] == nil {
			byDate[d] = make(map[string]*cell)
		}
		if byDate[d][r.Symbol] == nil {
			byDate[d][r.Symbol] = &cell{}
		}
		byDate[d][r.Symbol].balance += r.Balance
		byDate[d][r.Symbol].usd += r.USDBalance

		if bySymbol[r.Symbol] == nil {
			bySymbol[r.Symbol] = make(map[string]*cell)
		}
		bySymbol[r.Symbol][d] = byDate[d][r.Symbol]
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	symbols := make([]string, 0, len(bySymbol))
	for s := range bySymbol {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	var b strings.Builder
	fmt.Fprintf(&b, "## Lending History — %s — %s to %s\n", ShortAddress(address), startDate, endDate)

	for _, sym := range symbols {
		fmt.Fprintf(&b, "\n### %s\n\n", sym)
		b.WriteString("| Date | Balance | USD Value |\n")
		b.WriteString("|------|---------|-----------|\n")
		for _, d := range dates {
			c, ok := bySymbol[sym][d]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", d, Amount(c.balance), USD(c.usd))
		}
	}

	dailyTotal := func(d string) float64 {
		total := 0.0
		for _, c := range byDate[d] {
			total += c.usd
		}
		return total
	}
	first, last := dates[0], dates[len(dates)-1]
	startTotal, endTotal := dailyTotal(first), dailyTotal(last)

	b.WriteString("\n### Period Summary\n\n")
	fmt.Fprintf(&b, "- Total on %s: %s\n", first, USD(startTotal))
	fmt.Fprintf(&b, "- Total on %s: %s\n", last, USD(endTotal))
	fmt.Fprintf(&b, "- Change: %s (%s)\n", SignedUSD(endTotal-startTotal), PercentChange(startTotal, endTotal))
	b.WriteString(sourceNote)
	return b.String()
}
