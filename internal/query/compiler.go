package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/adil-farooq/solana-lending-agent/internal/intent"
)

// Table is the single fact table every compiled query targets.
const Table = "solana.lending_positions"

// columnList is the fixed PositionRow column set, identical across all kinds.
const columnList = "date, address, project, protocol, symbol, balance, usd_balance, usd_exchange_rate, lending_id, mint, token_name"

// Row caps per intent kind.
const (
	snapshotLimit   = 50
	rangeLimit      = 500
	comparisonLimit = 100
)

// Compiled is an opaque query string plus the intent kind that produced it.
// It is carried through to the response for display and export, never re-parsed.
type Compiled struct {
	SQL  string
	Kind intent.Kind
}

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	protocolPattern = regexp.MustCompile(`^[a-z0-9._-]+$`)
)

// Compile maps a validated data-bearing intent into SQL against the fact
// table. Values are interpolated as literals, so every value is constrained
// to a safe character class first; anything outside it is a compile error.
func Compile(in intent.Intent) (Compiled, error) {
	switch in.Kind {
	case intent.KindSnapshot, intent.KindRange, intent.KindComparison:
	default:
		return Compiled{}, fmt.Errorf("intent kind %q is not queryable", in.Kind)
	}

	if err := checkAddress(in.Address); err != nil {
		return Compiled{}, err
	}
	protocolFilter, err := protocolClause(in.Protocol)
	if err != nil {
		return Compiled{}, err
	}

	var dateFilter, ordering string
	var limit int
	switch in.Kind {
	case intent.KindSnapshot:
		if err := checkDates(in.Date); err != nil {
			return Compiled{}, err
		}
		dateFilter = fmt.Sprintf("toDate(date) = '%s'", in.Date)
		ordering = "usd_balance DESC"
		limit = snapshotLimit
	case intent.KindRange:
		if err := checkDates(in.StartDate, in.EndDate); err != nil {
			return Compiled{}, err
		}
		dateFilter = fmt.Sprintf("toDate(date) BETWEEN '%s' AND '%s'", in.StartDate, in.EndDate)
		ordering = "date ASC, usd_balance DESC"
		limit = rangeLimit
	case intent.KindComparison:
		if err := checkDates(in.Date1, in.Date2); err != nil {
			return Compiled{}, err
		}
		dateFilter = fmt.Sprintf("toDate(date) IN ('%s', '%s')", in.Date1, in.Date2)
		ordering = "date ASC, usd_balance DESC"
		limit = comparisonLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s\nFROM %s\n", columnList, Table)
	fmt.Fprintf(&b, "WHERE address = '%s'\n  AND balance > 0\n  AND %s", in.Address, dateFilter)
	if protocolFilter != "" {
		fmt.Fprintf(&b, "\n  AND %s", protocolFilter)
	}
	fmt.Fprintf(&b, "\nORDER BY %s\nLIMIT %d", ordering, limit)

	return Compiled{SQL: b.String(), Kind: in.Kind}, nil
}

// checkAddress constrains the address to the base58 character class and the
// Solana address length band before it is interpolated as a literal.
func checkAddress(addr string) error {
	if len(addr) < 32 || len(addr) > 44 {
		return fmt.Errorf("wallet address must be 32-44 characters, got %d", len(addr))
	}
	if _, err := base58.Decode(addr); err != nil {
		return fmt.Errorf("wallet address is not valid base58: %w", err)
	}
	return nil
}

func checkDates(dates ...string) error {
	for _, d := range dates {
		if !datePattern.MatchString(d) {
			return fmt.Errorf("date %q is not in YYYY-MM-DD form", d)
		}
	}
	return nil
}

// protocolClause returns the protocol equality filter, or "" when no protocol
// was specified (match any protocol).
func protocolClause(protocol string) (string, error) {
	if protocol == "" {
		return "", nil
	}
	if !protocolPattern.MatchString(protocol) {
		return "", fmt.Errorf("protocol %q contains unsupported characters", protocol)
	}
	return fmt.Sprintf("lower(protocol) = '%s'", protocol), nil
}
