package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adil-farooq/solana-lending-agent/internal/models"
)

const testAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func position(date, symbol string, balance, usd, rate float64) models.PositionRow {
	return models.PositionRow{
		Date:            date,
		Address:         testAddress,
		Project:         "kamino",
		Protocol:        "kamino-lend",
		Symbol:          symbol,
		Balance:         balance,
		USDBalance:      usd,
		USDExchangeRate: rate,
	}
}

func TestSnapshot_EmptyRowsExplains(t *testing.T) {
	out := Snapshot(nil, testAddress, "2025-09-30")
	assert.Contains(t, out, "No active lending positions")
	assert.Contains(t, out, "9WzD...AWWM")
	assert.Contains(t, out, "2025-09-30")
	assert.NotContains(t, out, "|", "empty result must not render a table")
}

func TestSnapshot_Table(t *testing.T) {
	rows := []models.PositionRow{
		position("2025-09-30 00:00:00", "USDC", 1500, 1500, 1.0),
		position("2025-09-30 00:00:00", "SOL", 10, 2000, 200),
	}
	out := Snapshot(rows, testAddress, "2025-09-30")

	assert.Contains(t, out, "## Lending Snapshot — 9WzD...AWWM — 2025-09-30")
	assert.Contains(t, out, "| Token | Balance | USD Value | Price |")
	assert.Contains(t, out, "| USDC | 1.5000K | $1.50K | $1.00 |")
	assert.Contains(t, out, "| SOL | 10.000000 | $2.00K | $200.00 |")
	assert.Contains(t, out, "**Total Portfolio Value:** $3.50K")
	assert.Contains(t, out, "solana.lending_positions")
}

func TestSnapshot_DuplicateSymbolsBothCountTowardTotal(t *testing.T) {
	// Same token lent in two markets appears as two rows; both contribute.
	rows := []models.PositionRow{
		position("2025-09-30 00:00:00", "USDC", 100, 100, 1.0),
		position("2025-09-30 00:00:00", "USDC", 200, 200, 1.0),
	}
	out := Snapshot(rows, testAddress, "2025-09-30")

	assert.Contains(t, out, "**Total Portfolio Value:** $300.00")
	assert.Equal(t, 2, strings.Count(out, "| USDC |"))
}

func TestSnapshot_FullAddressNeverShown(t *testing.T) {
	rows := []models.PositionRow{position("2025-09-30 00:00:00", "USDC", 1, 1, 1)}
	out := Snapshot(rows, testAddress, "2025-09-30")
	assert.NotContains(t, out, testAddress)
}
