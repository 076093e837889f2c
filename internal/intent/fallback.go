package intent

import (
	"context"
	"regexp"
	"strings"
)

// FallbackParser is the deterministic pattern-matching parser used whenever
// the LLM path is unavailable or returns something unusable. It never fails:
// unparseable input resolves to a help or error intent.
type FallbackParser struct{}

var (
	// Base58 alphabet (no 0, O, I, l), the length band of Solana addresses.
	addressRe = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]{32,44}`)
	dateRe    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	comparisonTriggers = []string{"compare", "vs", "versus"}
	rangeTriggers      = []string{"from", "history", "range", "between"}
)

// Parse implements Parser. The trigger evaluation order is fixed:
// help, comparison, range, snapshot.
func (FallbackParser) Parse(_ context.Context, utterance string) (Intent, error) {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	if isHelpRequest(lower) {
		return Intent{Kind: KindHelp}, nil
	}

	address := addressRe.FindString(utterance)
	if address == "" {
		return missingAddress(), nil
	}

	// Dates keep their left-to-right order of appearance. Users writing
	// dates out of chronological order get them applied as written.
	dates := dateRe.FindAllString(utterance, -1)

	switch {
	case containsAny(lower, comparisonTriggers) && len(dates) >= 2:
		return Intent{Kind: KindComparison, Address: address, Date1: dates[0], Date2: dates[1]}, nil
	case containsAny(lower, rangeTriggers) && len(dates) >= 2:
		return Intent{Kind: KindRange, Address: address, StartDate: dates[0], EndDate: dates[1]}, nil
	case len(dates) >= 1:
		return Intent{Kind: KindSnapshot, Address: address, Date: dates[0]}, nil
	default:
		return missingDate(), nil
	}
}

func isHelpRequest(lower string) bool {
	if lower == "hi" || lower == "hello" {
		return true
	}
	return strings.Contains(lower, "help") || strings.Contains(lower, "what can you")
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
