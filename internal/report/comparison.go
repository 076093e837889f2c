package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adil-farooq/solana-lending-agent/internal/models"
)

// Comparison contrasts holdings at exactly two dates, per token and in
// aggregate. The table covers the union of symbols present on either date: a
// token held on only one side shows as zero on the other.
func Comparison(rows []models.PositionRow, address, date1, date2 string) string {
	if len(rows) == 0 {
		return fmt.Sprintf(
			"No lending positions found for %s on %s or %s.\n",
			ShortAddress(address), date1, date2)
	}

	type side struct {
		balance float64
		usd     float64
	}
	left := make(map[string]*side)  // positions on date1
	right := make(map[string]*side) // positions on date2

	for _, r := range rows {
		var target map[string]*side
		switch DateOnly(r.Date) {
		case date1:
			target = left
		case date2:
			target = right
		default:
			continue
		}
		if target[r.Symbol] == nil {
			target[r.Symbol] = &side{}
		}
		target[r.Symbol].balance += r.Balance
		target[r.Symbol].usd += r.USDBalance
	}

	union := make(map[string]struct{}, len(left)+len(right))
	for s := range left {
		union[s] = struct{}{}
	}
	for s := range right {
		union[s] = struct{}{}
	}
	symbols := make([]string, 0, len(union))
	for s := range union {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	var b strings.Builder
	fmt.Fprintf(&b, "## Lending Comparison — %s — %s vs %s\n\n", ShortAddress(address), date1, date2)
	fmt.Fprintf(&b, "| Token | Balance (%s) | USD (%s) | Balance (%s) | USD (%s) | Change | %% Change |\n",
		date1, date1, date2, date2)
	b.WriteString("|-------|---------|---------|---------|---------|--------|----------|\n")

	var total1, total2 float64
	for _, sym := range symbols {
		var s1, s2 side
		if c := left[sym]; c != nil {
			s1 = *c
		}
		if c := right[sym]; c != nil {
			s2 = *c
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			sym, Amount(s1.balance), USD(s1.usd), Amount(s2.balance), USD(s2.usd),
			SignedUSD(s2.usd-s1.usd), PercentChange(s1.usd, s2.usd))
		total1 += s1.usd
		total2 += s2.usd
	}

	b.WriteString("\n### Portfolio Change\n\n")
	fmt.Fprintf(&b, "- Total on %s: %s\n", date1, USD(total1))
	fmt.Fprintf(&b, "- Total on %s: %s\n", date2, USD(total2))
	fmt.Fprintf(&b, "- Change: %s (%s)\n", SignedUSD(total2-total1), PercentChange(total1, total2))
	b.WriteString(sourceNote)
	return b.String()
}
