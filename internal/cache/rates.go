package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/adil-farooq/solana-lending-agent/internal/models"
	"github.com/adil-farooq/solana-lending-agent/internal/report"
)

// ErrNotFound is returned when no rate has been observed for a symbol yet.
var ErrNotFound = errors.New("rate not found")

const rateKeyPrefix = "rates:"

// RateCache keeps the most recently observed USD exchange rate per token
// symbol in Redis. It is populated write-through from query results and read
// by the /v1/rates endpoint; it holds no conversation state.
type RateCache struct {
	client redis.Cmdable
	logger *logrus.Logger
}

// NewRateCache wraps an existing Redis client.
func NewRateCache(client redis.Cmdable, logger *logrus.Logger) *RateCache {
	if logger == nil {
		logger = logrus.New()
	}
	return &RateCache{client: client, logger: logger}
}

// Set stores the latest USD exchange rate for a symbol.
func (c *RateCache) Set(ctx context.Context, symbol string, rate float64) error {
	key := rateKeyPrefix + symbol
	if err := c.client.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), 0).Err(); err != nil {
		return fmt.Errorf("set rate %s: %w", symbol, err)
	}
	return nil
}

// Get returns the last observed USD exchange rate for a symbol.
func (c *RateCache) Get(ctx context.Context, symbol string) (float64, error) {
	val, err := c.client.Get(ctx, rateKeyPrefix+symbol).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get rate %s: %w", symbol, err)
	}
	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse rate %s: %w", symbol, err)
	}
	return rate, nil
}

// UpdateFromRows write-through-updates the cache with the newest exchange
// rate per symbol found in a result set. Best effort: the caller logs and
// ignores failures.
func (c *RateCache) UpdateFromRows(ctx context.Context, rows []models.PositionRow) error {
	type observation struct {
		date string
		rate float64
	}
	latest := make(map[string]observation)
	for _, r := range rows {
		d := report.DateOnly(r.Date)
		if cur, ok := latest[r.Symbol]; !ok || d > cur.date {
			latest[r.Symbol] = observation{date: d, rate: r.USDExchangeRate}
		}
	}
	if len(latest) == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	for sym, obs := range latest {
		pipe.Set(ctx, rateKeyPrefix+sym, strconv.FormatFloat(obs.rate, 'f', -1, 64), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update rates: %w", err)
	}

	c.logger.WithField("symbols", len(latest)).Debug("updated exchange rate cache")
	return nil
}
