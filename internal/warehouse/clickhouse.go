package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/sirupsen/logrus"

	"github.com/adil-farooq/solana-lending-agent/internal/models"
)

// Config holds connection settings for the analytical warehouse.
type Config struct {
	Addr     string
	Database string
	Username string
	Password string

	Logger *logrus.Logger
}

// Client executes compiled queries against the lending_positions fact table
// in ClickHouse. It is the one external call whose failure is propagated to
// the caller: there is no deterministic substitute for query execution.
type Client struct {
	db     *sql.DB
	logger *logrus.Logger
}

// New creates a warehouse client using the stdlib database/sql wrapper.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	db := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	cfg.Logger.WithFields(logrus.Fields{
		"addr":     cfg.Addr,
		"database": cfg.Database,
	}).Info("connected to ClickHouse warehouse")

	return &Client{db: db, logger: cfg.Logger}, nil
}

// Query runs one compiled SELECT and scans the fixed PositionRow column set.
func (c *Client) Query(ctx context.Context, sqlText string) ([]models.PositionRow, error) {
	rows, err := c.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	if len(cols) != 11 {
		return nil, fmt.Errorf("unexpected column count %d from warehouse", len(cols))
	}

	var out []models.PositionRow
	for rows.Next() {
		var r models.PositionRow
		var ts time.Time
		if err := rows.Scan(
			&ts, &r.Address, &r.Project, &r.Protocol, &r.Symbol,
			&r.Balance, &r.USDBalance, &r.USDExchangeRate,
			&r.LendingID, &r.Mint, &r.TokenName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.Date = ts.UTC().Format("2006-01-02 15:04:05")
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	c.logger.WithField("rows", len(out)).Debug("warehouse query completed")
	return out, nil
}

// Ping checks that the warehouse is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	if c.db != nil {
		c.logger.Debug("closing warehouse connection")
		return c.db.Close()
	}
	return nil
}
