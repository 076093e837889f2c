package server

// ErrorResponse is the standardized JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details any    `json:"details,omitempty"` // dev mode only
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// QueryRequest is a natural-language question about lending positions.
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse carries the formatted report, the resolved intent kind, and
// the compiled SQL for transparency. SQL is absent for help/error kinds.
type QueryResponse struct {
	Report     string `json:"report"`
	IntentKind string `json:"intent_kind"`
	SQL        string `json:"sql,omitempty"`
	Rows       int    `json:"rows"`
	TookMs     int64  `json:"took_ms"`
}

// RateResponse is the last observed USD exchange rate for a token.
type RateResponse struct {
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// FlagUpsertRequest creates or updates a runtime flag.
type FlagUpsertRequest struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// FlagUpdateRequest updates an existing runtime flag.
type FlagUpdateRequest struct {
	Value bool `json:"value"`
}
