package agent

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/adil-farooq/solana-lending-agent/internal/cache"
	"github.com/adil-farooq/solana-lending-agent/internal/intent"
	"github.com/adil-farooq/solana-lending-agent/internal/models"
	"github.com/adil-farooq/solana-lending-agent/internal/query"
	"github.com/adil-farooq/solana-lending-agent/internal/report"
)

// RowQuerier executes compiled SQL against the lending_positions fact table.
type RowQuerier interface {
	Query(ctx context.Context, sqlText string) ([]models.PositionRow, error)
}

// Config holds the collaborators the pipeline is wired with.
type Config struct {
	Parser    intent.Parser
	Warehouse RowQuerier
	Rates     *cache.RateCache // optional
	Logger    *logrus.Logger
}

// Agent runs the full pipeline for one utterance: parse, compile, execute,
// format. It holds no per-request state between calls.
type Agent struct {
	parser    intent.Parser
	warehouse RowQuerier
	rates     *cache.RateCache
	logger    *logrus.Logger
}

// AskResult is the structured result of one Ask call. SQL is populated only
// for the data-bearing intent kinds.
type AskResult struct {
	Report string
	Kind   intent.Kind
	SQL    string
	Rows   int
}

// New creates an Agent. Parser and Warehouse are required.
func New(cfg Config) (*Agent, error) {
	if cfg.Parser == nil {
		return nil, fmt.Errorf("parser is required")
	}
	if cfg.Warehouse == nil {
		return nil, fmt.Errorf("warehouse is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Agent{
		parser:    cfg.Parser,
		warehouse: cfg.Warehouse,
		rates:     cfg.Rates,
		logger:    cfg.Logger,
	}, nil
}

// Ask answers one natural-language question. Every recoverable condition
// comes back as a normal result carrying a help or error report; only a
// warehouse failure is returned as a Go error.
func (a *Agent) Ask(ctx context.Context, utterance string) (*AskResult, error) {
	in, err := a.parser.Parse(ctx, utterance)
	if err != nil {
		// The chain parser ends in the deterministic fallback, which never
		// fails; this is a defensive guard for exotic parser wirings.
		a.logger.WithError(err).Warn("intent parsing failed")
		in = intent.Errorf("I couldn't understand that request.")
	}
	in = in.Normalize().Validate()

	switch in.Kind {
	case intent.KindHelp:
		return &AskResult{Report: report.Help(), Kind: intent.KindHelp}, nil
	case intent.KindError:
		return &AskResult{Report: report.Error(in.Message), Kind: intent.KindError}, nil
	}

	compiled, err := query.Compile(in)
	if err != nil {
		a.logger.WithError(err).WithField("kind", in.Kind).Warn("query compilation rejected intent")
		return &AskResult{
			Report: report.Error(fmt.Sprintf("I couldn't build a query from that request: %v.", err)),
			Kind:   intent.KindError,
		}, nil
	}

	rows, err := a.warehouse.Query(ctx, compiled.SQL)
	if err != nil {
		return nil, fmt.Errorf("lending data query failed: %w", err)
	}

	var text string
	switch in.Kind {
	case intent.KindSnapshot:
		text = report.Snapshot(rows, in.Address, in.Date)
	case intent.KindRange:
		text = report.Range(rows, in.Address, in.StartDate, in.EndDate)
	case intent.KindComparison:
		text = report.Comparison(rows, in.Address, in.Date1, in.Date2)
	default:
		// Unreachable: Compile already rejected non-data kinds.
		return &AskResult{Report: report.Error(""), Kind: intent.KindError}, nil
	}

	if a.rates != nil {
		if err := a.rates.UpdateFromRows(ctx, rows); err != nil {
			a.logger.WithError(err).Warn("failed to update exchange rate cache")
		}
	}

	a.logger.WithFields(logrus.Fields{
		"kind": in.Kind,
		"rows": len(rows),
	}).Info("answered lending question")

	return &AskResult{Report: text, Kind: in.Kind, SQL: compiled.SQL, Rows: len(rows)}, nil
}
