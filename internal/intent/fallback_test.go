package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func parseFallback(t *testing.T, utterance string) Intent {
	t.Helper()
	in, err := FallbackParser{}.Parse(context.Background(), utterance)
	require.NoError(t, err)
	return in
}

func TestFallbackParser_Help(t *testing.T) {
	cases := []string{
		"help",
		"Help me please",
		"what can you do?",
		"hi",
		"hello",
		"Hello",
		"  HELP  ",
	}
	for _, utterance := range cases {
		in := parseFallback(t, utterance)
		assert.Equal(t, KindHelp, in.Kind, "utterance %q", utterance)
	}
}

func TestFallbackParser_MissingAddress(t *testing.T) {
	cases := []string{
		"what did my wallet hold on 2025-09-30?",
		"show me positions",
		"short58string",
	}
	for _, utterance := range cases {
		in := parseFallback(t, utterance)
		assert.Equal(t, KindError, in.Kind, "utterance %q", utterance)
		assert.Contains(t, in.Message, ExampleAddress)
	}
}

func TestFallbackParser_MissingDate(t *testing.T) {
	in := parseFallback(t, "What did "+testAddress+" hold?")
	assert.Equal(t, KindError, in.Kind)
	assert.Contains(t, in.Message, "date")
}

func TestFallbackParser_Snapshot(t *testing.T) {
	in := parseFallback(t, "What did "+testAddress+" hold on 2025-09-30?")
	assert.Equal(t, KindSnapshot, in.Kind)
	assert.Equal(t, testAddress, in.Address)
	assert.Equal(t, "2025-09-30", in.Date)
}

func TestFallbackParser_Comparison_LiteralDateOrder(t *testing.T) {
	in := parseFallback(t, "Compare "+testAddress+" on 2025-09-30 vs 2025-12-31")
	require.Equal(t, KindComparison, in.Kind)
	assert.Equal(t, "2025-09-30", in.Date1)
	assert.Equal(t, "2025-12-31", in.Date2)

	// Dates keep their order of appearance, not chronological order.
	in = parseFallback(t, "Compare "+testAddress+" on 2025-12-31 vs 2025-09-30")
	require.Equal(t, KindComparison, in.Kind)
	assert.Equal(t, "2025-12-31", in.Date1)
	assert.Equal(t, "2025-09-30", in.Date2)
}

func TestFallbackParser_ComparisonTriggers(t *testing.T) {
	for _, trigger := range []string{"compare", "vs", "versus"} {
		in := parseFallback(t, testAddress+" 2025-09-30 "+trigger+" 2025-10-31")
		assert.Equal(t, KindComparison, in.Kind, "trigger %q", trigger)
	}
}

func TestFallbackParser_Range(t *testing.T) {
	in := parseFallback(t, "Show history for "+testAddress+" from 2025-09-01 to 2025-09-30")
	require.Equal(t, KindRange, in.Kind)
	assert.Equal(t, testAddress, in.Address)
	assert.Equal(t, "2025-09-01", in.StartDate)
	assert.Equal(t, "2025-09-30", in.EndDate)
}

func TestFallbackParser_RangeTriggers(t *testing.T) {
	for _, trigger := range []string{"history", "range", "between"} {
		in := parseFallback(t, testAddress+" "+trigger+" 2025-09-01 2025-09-30")
		assert.Equal(t, KindRange, in.Kind, "trigger %q", trigger)
	}
}

func TestFallbackParser_TriggerWithSingleDateFallsBackToSnapshot(t *testing.T) {
	// A comparison trigger with only one date cannot be a comparison.
	in := parseFallback(t, "compare "+testAddress+" on 2025-09-30")
	assert.Equal(t, KindSnapshot, in.Kind)
	assert.Equal(t, "2025-09-30", in.Date)
}

func TestFallbackParser_ComparisonWinsOverRange(t *testing.T) {
	// Both trigger families present: comparison is evaluated first.
	in := parseFallback(t, "compare the history of "+testAddress+" 2025-09-01 vs 2025-09-30")
	assert.Equal(t, KindComparison, in.Kind)
}

func TestFallbackParser_AddressEmbeddedInText(t *testing.T) {
	in := parseFallback(t, "balances wallet:"+testAddress+", date 2025-09-30 please")
	require.Equal(t, KindSnapshot, in.Kind)
	assert.Equal(t, testAddress, in.Address)
}
