package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adil-farooq/solana-lending-agent/internal/models"
)

// section extracts one "### <name>" block from a report for isolated asserts.
func section(t *testing.T, out, name string) string {
	t.Helper()
	marker := "### " + name + "\n"
	i := strings.Index(out, marker)
	require.GreaterOrEqual(t, i, 0, "section %q not found", name)
	rest := out[i+len(marker):]
	if j := strings.Index(rest, "### "); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func TestRange_EmptyRowsExplains(t *testing.T) {
	out := Range(nil, testAddress, "2025-09-01", "2025-09-30")
	assert.Contains(t, out, "No lending positions found")
	assert.NotContains(t, out, "|")
}

func TestRange_MissingMiddleDateIsNotFabricated(t *testing.T) {
	rows := []models.PositionRow{
		position("2025-09-01 00:00:00", "USDC", 100, 100, 1),
		position("2025-09-01 00:00:00", "SOL", 1, 200, 200),
		position("2025-09-02 00:00:00", "USDC", 110, 110, 1),
		// SOL has no row on 2025-09-02.
		position("2025-09-03 00:00:00", "USDC", 120, 120, 1),
		position("2025-09-03 00:00:00", "SOL", 1, 210, 210),
	}
	out := Range(rows, testAddress, "2025-09-01", "2025-09-03")

	sol := section(t, out, "SOL")
	assert.Contains(t, sol, "| 2025-09-01 |")
	assert.NotContains(t, sol, "| 2025-09-02 |", "missing date must not be filled in")
	assert.Contains(t, sol, "| 2025-09-03 |")

	usdc := section(t, out, "USDC")
	assert.Contains(t, usdc, "| 2025-09-02 |")
}

func TestRange_PeriodSummary(t *testing.T) {
	rows := []models.PositionRow{
		position("2025-09-01 00:00:00", "USDC", 100, 100, 1),
		position("2025-09-01 00:00:00", "SOL", 1, 100, 100),
		position("2025-09-30 00:00:00", "USDC", 100, 150, 1.5),
		position("2025-09-30 00:00:00", "SOL", 1, 150, 150),
	}
	out := Range(rows, testAddress, "2025-09-01", "2025-09-30")

	summary := section(t, out, "Period Summary")
	assert.Contains(t, summary, "Total on 2025-09-01: $200.00")
	assert.Contains(t, summary, "Total on 2025-09-30: $300.00")
	assert.Contains(t, summary, "Change: +$100.00 (+50.00%)")
}

func TestRange_ZeroStartTotalYieldsNA(t *testing.T) {
	rows := []models.PositionRow{
		position("2025-09-01 00:00:00", "USDC", 100, 0, 0), // dust with no USD value
		position("2025-09-30 00:00:00", "USDC", 100, 150, 1.5),
	}
	out := Range(rows, testAddress, "2025-09-01", "2025-09-30")
	assert.Contains(t, out, "(N/A)")
}

func TestRange_DuplicateDateSymbolRowsAreSummed(t *testing.T) {
	rows := []models.PositionRow{
		position("2025-09-01 00:00:00", "USDC", 100, 100, 1),
		position("2025-09-01 00:00:00", "USDC", 50, 50, 1),
	}
	out := Range(rows, testAddress, "2025-09-01", "2025-09-01")

	usdc := section(t, out, "USDC")
	assert.Contains(t, usdc, "| 2025-09-01 | 150.000000 | $150.00 |")
	assert.Equal(t, 1, strings.Count(usdc, "| 2025-09-01 |"))
}

func TestRange_HeadingUsesShortAddress(t *testing.T) {
	rows := []models.PositionRow{position("2025-09-01 00:00:00", "USDC", 1, 1, 1)}
	out := Range(rows, testAddress, "2025-09-01", "2025-09-30")
	assert.Contains(t, out, "## Lending History — 9WzD...AWWM — 2025-09-01 to 2025-09-30")
	assert.NotContains(t, out, testAddress)
}
