package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/adil-farooq/solana-lending-agent/internal/agent"
	"github.com/adil-farooq/solana-lending-agent/internal/cache"
	"github.com/adil-farooq/solana-lending-agent/internal/catalog"
	"github.com/adil-farooq/solana-lending-agent/internal/flags"
	"github.com/adil-farooq/solana-lending-agent/internal/report"
)

// Handlers contains all dependencies for API endpoint handlers.
type Handlers struct {
	Agent   *agent.Agent     // query pipeline
	Rates   *cache.RateCache // optional exchange rate cache
	Flags   *flags.Store     // optional runtime flags store
	DevMode bool             // detailed error responses in development
	Logger  *logrus.Logger
}

func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health is a simple health check endpoint.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// Query answers a natural-language lending question with a Markdown report.
// Pipeline errors come back as normal responses with an error intent kind;
// only a warehouse failure produces an elevated status.
func (h *Handlers) Query(c echo.Context) error {
	res, status, err := h.ask(c)
	if err != nil {
		return h.err(c, status, "lending data service unavailable", map[string]any{"err": err.Error()})
	}
	if res == nil {
		return nil // ask already wrote the response
	}
	return c.JSON(http.StatusOK, res)
}

// QueryCSV answers the same question but returns the report's tables as CSV,
// for the export surface.
func (h *Handlers) QueryCSV(c echo.Context) error {
	res, status, err := h.ask(c)
	if err != nil {
		return h.err(c, status, "lending data service unavailable", map[string]any{"err": err.Error()})
	}
	if res == nil {
		return nil
	}
	csvText := report.ExtractCSV(res.Report)
	return c.Blob(http.StatusOK, "text/csv", []byte(csvText))
}

// ask runs the shared bind/validate/Ask sequence. A nil result with nil error
// means a bad-request response was already written.
func (h *Handlers) ask(c echo.Context) (*QueryResponse, int, error) {
	if h.Agent == nil {
		_ = h.err(c, http.StatusServiceUnavailable, "query pipeline is not configured", nil)
		return nil, 0, nil
	}

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		_ = h.err(c, http.StatusBadRequest, "invalid json", nil)
		return nil, 0, nil
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		_ = h.err(c, http.StatusBadRequest, "question is required", map[string]any{"question": "required"})
		return nil, 0, nil
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 45*time.Second)
	defer cancel()

	start := time.Now()
	res, err := h.Agent.Ask(ctx, req.Question)
	if err != nil {
		h.Logger.WithError(err).Error("query execution failed")
		return nil, http.StatusBadGateway, err
	}

	return &QueryResponse{
		Report:     res.Report,
		IntentKind: string(res.Kind),
		SQL:        res.SQL,
		Rows:       res.Rows,
		TookMs:     time.Since(start).Milliseconds(),
	}, 0, nil
}

// Tokens lists the fixed token catalog.
func (h *Handlers) Tokens(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"chain":      catalog.Chain,
		"project":    catalog.Project,
		"start_date": catalog.SupportedStartDate,
		"tokens":     catalog.Tokens,
	})
}

// Rate returns the last observed USD exchange rate for a catalog token.
func (h *Handlers) Rate(c echo.Context) error {
	if h.Rates == nil {
		return h.err(c, http.StatusServiceUnavailable, "rate cache is not configured", nil)
	}

	symbol := strings.TrimSpace(c.Param("symbol"))
	tok, ok := catalog.Lookup(symbol)
	if !ok {
		return h.err(c, http.StatusNotFound, "unsupported token", map[string]any{"symbol": symbol})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	rate, err := h.Rates.Get(ctx, tok.Symbol)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return h.err(c, http.StatusNotFound, "no rate observed yet", nil)
		}
		return h.err(c, http.StatusInternalServerError, "failed to get rate", nil)
	}
	return c.JSON(http.StatusOK, RateResponse{Symbol: tok.Symbol, Rate: rate})
}

// FlagsUpsert creates or updates a runtime flag.
func (h *Handlers) FlagsUpsert(c echo.Context) error {
	if h.Flags == nil {
		return h.err(c, http.StatusServiceUnavailable, "flags store is not configured", nil)
	}
	var req FlagUpsertRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	if err := flags.ValidateKey(req.Key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	out, err := h.Flags.Upsert(ctx, req.Key, req.Value)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to upsert flag", nil)
	}
	return c.JSON(http.StatusOK, out)
}

// FlagsUpdate updates an existing runtime flag.
func (h *Handlers) FlagsUpdate(c echo.Context) error {
	if h.Flags == nil {
		return h.err(c, http.StatusServiceUnavailable, "flags store is not configured", nil)
	}
	key := c.Param("key")
	if err := flags.ValidateKey(key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}
	var req FlagUpdateRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	out, err := h.Flags.Upsert(ctx, key, req.Value)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to update flag", nil)
	}
	return c.JSON(http.StatusOK, out)
}

// FlagsGet retrieves a runtime flag by key.
func (h *Handlers) FlagsGet(c echo.Context) error {
	if h.Flags == nil {
		return h.err(c, http.StatusServiceUnavailable, "flags store is not configured", nil)
	}
	key := c.Param("key")
	if err := flags.ValidateKey(key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	out, err := h.Flags.Get(ctx, key)
	if err != nil {
		if errors.Is(err, flags.ErrNotFound) {
			return h.err(c, http.StatusNotFound, "flag not found", nil)
		}
		return h.err(c, http.StatusInternalServerError, "failed to get flag", nil)
	}
	return c.JSON(http.StatusOK, out)
}

// FlagsList returns all runtime flags.
func (h *Handlers) FlagsList(c echo.Context) error {
	if h.Flags == nil {
		return h.err(c, http.StatusServiceUnavailable, "flags store is not configured", nil)
	}
	ctx, cancel := h.withTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Flags.List(ctx)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to list flags", nil)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// FlagsDelete removes a runtime flag.
func (h *Handlers) FlagsDelete(c echo.Context) error {
	if h.Flags == nil {
		return h.err(c, http.StatusServiceUnavailable, "flags store is not configured", nil)
	}
	key := c.Param("key")
	if err := flags.ValidateKey(key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.Flags.Delete(ctx, key); err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to delete flag", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
