package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUSD_MagnitudeAbbreviation(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1_500_000, "$1.50M"},
		{2_500, "$2.50K"},
		{42.5, "$42.50"},
		{1_000_000, "$1.00M"},
		{1_000, "$1.00K"},
		{999.994, "$999.99"},
		{0, "$0.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, USD(tc.in), "USD(%v)", tc.in)
	}
}

func TestAmount_Precision(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1_500_000, "1.5000M"},
		{2_500, "2.5000K"},
		{42.5, "42.500000"},
		{0.123456789, "0.123457"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Amount(tc.in), "Amount(%v)", tc.in)
	}
}

func TestSignedUSD(t *testing.T) {
	assert.Equal(t, "+$50.00", SignedUSD(50))
	assert.Equal(t, "-$50.00", SignedUSD(-50))
	assert.Equal(t, "+$1.50M", SignedUSD(1_500_000))
	assert.Equal(t, "+$0.00", SignedUSD(0))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, "+50.00%", PercentChange(100, 150))
	assert.Equal(t, "-50.00%", PercentChange(100, 50))
	assert.Equal(t, "+0.00%", PercentChange(100, 100))

	// Zero starting value never produces an infinite ratio.
	assert.Equal(t, "N/A", PercentChange(0, 100))
	assert.Equal(t, "N/A", PercentChange(0, 0))
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t, "2025-09-30", DateOnly("2025-09-30 00:00:00"))
	assert.Equal(t, "2025-09-30", DateOnly("2025-09-30T12:34:56Z"))
	assert.Equal(t, "2025-09-30", DateOnly("2025-09-30"))
	assert.Equal(t, "", DateOnly(""))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "9WzD...AWWM", ShortAddress("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"))
	assert.Equal(t, "short", ShortAddress("short"))
}
