package intent

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Parser turns a free-text utterance into a structured intent.
type Parser interface {
	Parse(ctx context.Context, utterance string) (Intent, error)
}

// ChainParser tries a best-effort primary parser and falls back to a
// deterministic one on any failure signal. The fallback decision is based on
// errors only, never on inspecting the returned intent kind.
type ChainParser struct {
	Primary  Parser // optional; skipped when nil
	Fallback Parser
	Logger   *logrus.Logger

	// PrimaryEnabled gates the primary parser at runtime (feature flag).
	// A nil func means always enabled.
	PrimaryEnabled func(ctx context.Context) bool
}

// Parse implements Parser. Primary-path failures are logged and swallowed;
// the end user never sees them.
func (c *ChainParser) Parse(ctx context.Context, utterance string) (Intent, error) {
	if c.Primary != nil && (c.PrimaryEnabled == nil || c.PrimaryEnabled(ctx)) {
		in, err := c.Primary.Parse(ctx, utterance)
		if err == nil {
			return in, nil
		}
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("primary intent parser failed, using deterministic fallback")
		}
	}
	return c.Fallback.Parse(ctx, utterance)
}
