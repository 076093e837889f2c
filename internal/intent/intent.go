package intent

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Kind discriminates the Intent union. Exactly one kind is active per request.
type Kind string

const (
	KindSnapshot   Kind = "snapshot"
	KindRange      Kind = "range"
	KindComparison Kind = "comparison"
	KindHelp       Kind = "help"
	KindError      Kind = "error"
)

// Intent is the structured form of a user question. Kind selects which fields
// are meaningful; a data-bearing intent that is missing required fields never
// survives Validate.
type Intent struct {
	Kind      Kind   `json:"kind"`
	Address   string `json:"address,omitempty"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Date1     string `json:"date1,omitempty"`
	Date2     string `json:"date2,omitempty"`
	Protocol  string `json:"protocol,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ExampleAddress is used in guidance messages shown to the user.
const ExampleAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

// Errorf builds an error intent with a formatted guidance message.
func Errorf(format string, args ...any) Intent {
	return Intent{Kind: KindError, Message: fmt.Sprintf(format, args...)}
}

// CanonicalAddress normalizes a wallet address to its canonical base58 form
// when it decodes as a Solana public key. Anything else passes through
// untouched; format validation stays the fact table's concern.
func CanonicalAddress(s string) string {
	if s == "" {
		return s
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return s
	}
	return pk.String()
}

// Normalize trims and lower-cases the fields that have a canonical form.
func (in Intent) Normalize() Intent {
	in.Address = CanonicalAddress(strings.TrimSpace(in.Address))
	in.Protocol = strings.ToLower(strings.TrimSpace(in.Protocol))
	return in
}

// Validate rejects partially-populated data-bearing intents by converting them
// to error intents with a concrete guidance message. The query compiler never
// sees an incomplete intent.
func (in Intent) Validate() Intent {
	switch in.Kind {
	case KindSnapshot:
		if in.Address == "" {
			return missingAddress()
		}
		if in.Date == "" {
			return missingDate()
		}
	case KindRange:
		if in.Address == "" {
			return missingAddress()
		}
		if in.StartDate == "" || in.EndDate == "" {
			return Errorf("A range query needs a start and an end date. Try: \"Show history for %s from 2025-09-01 to 2025-09-30\".", ExampleAddress)
		}
	case KindComparison:
		if in.Address == "" {
			return missingAddress()
		}
		if in.Date1 == "" || in.Date2 == "" {
			return Errorf("A comparison needs two dates. Try: \"Compare %s on 2025-09-30 vs 2025-12-31\".", ExampleAddress)
		}
	case KindHelp, KindError:
	default:
		return Errorf("I didn't understand that request. Ask for \"help\" to see what I can do.")
	}
	return in
}

func missingAddress() Intent {
	return Errorf("I couldn't find a wallet address in your question. Include one, e.g. \"What did %s hold on 2025-09-30?\".", ExampleAddress)
}

func missingDate() Intent {
	return Errorf("I couldn't find a date in your question. Use YYYY-MM-DD, e.g. \"What did %s hold on 2025-09-30?\".", ExampleAddress)
}
