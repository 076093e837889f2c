package report

import (
	"fmt"
	"strings"
)

// USD renders a dollar amount with magnitude abbreviation. Two decimal
// places throughout: currency display, not a raw quantity.
func USD(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.2fK", v/1_000)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// Amount renders a token balance: 4 decimals when scaled, 6 unscaled.
func Amount(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.4fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.4fK", v/1_000)
	default:
		return fmt.Sprintf("%.6f", v)
	}
}

// SignedUSD renders a delta with an explicit sign.
func SignedUSD(v float64) string {
	if v < 0 {
		return "-" + USD(-v)
	}
	return "+" + USD(v)
}

// PercentChange renders (current-previous)/previous as a signed percentage
// with 2 decimals. A zero starting value yields "N/A" rather than an
// undefined or infinite ratio.
func PercentChange(previous, current float64) string {
	if previous == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", (current-previous)/previous*100)
}

// DateOnly strips any time component from a row's date field.
func DateOnly(s string) string {
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}

// ShortAddress renders a wallet address as its first and last 4 characters.
// Full addresses never appear in report headings.
func ShortAddress(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}
