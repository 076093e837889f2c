package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMConfig holds configuration for the LLM-backed parser.
type LLMConfig struct {
	// OpenRouter / LLM settings.
	OpenRouterAPIKey string
	// Model name as understood by OpenRouter, e.g. "openai/gpt-4.1-mini".
	Model string

	Logger *logrus.Logger
}

// LLMParser is the best-effort primary parser. Any transport or decode
// failure is returned as an error so the caller can fall back; it is never
// surfaced to the end user.
type LLMParser struct {
	llm    llms.Model
	logger *logrus.Logger
}

// NewLLMParser creates an LLM parser backed by OpenRouter's OpenAI-compatible API.
func NewLLMParser(cfg LLMConfig) (*LLMParser, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if cfg.Model == "" {
		cfg.Model = "openai/gpt-4.1-mini"
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenRouterAPIKey),
		openai.WithBaseURL("https://openrouter.ai/api/v1"),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter LLM: %w", err)
	}

	cfg.Logger.WithField("model", cfg.Model).Info("initialized LLM intent parser")

	return &LLMParser{llm: llm, logger: cfg.Logger}, nil
}

// Parse implements Parser.
func (p *LLMParser) Parse(ctx context.Context, utterance string) (Intent, error) {
	resp, err := llms.GenerateFromSinglePrompt(
		ctx,
		p.llm,
		buildPrompt(utterance),
		llms.WithMaxTokens(256),
	)
	if err != nil {
		return Intent{}, fmt.Errorf("LLM intent generation failed: %w", err)
	}

	in, err := decodeIntent(resp)
	if err != nil {
		return Intent{}, err
	}

	p.logger.WithField("kind", in.Kind).Debug("parsed intent from LLM reply")
	return in.Normalize(), nil
}

// decodeIntent parses the LLM reply strictly as one JSON object matching the
// intent union. Code fences are tolerated; anything else is a decode error.
func decodeIntent(reply string) (Intent, error) {
	s := stripFences(reply)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return Intent{}, fmt.Errorf("LLM reply is not a single JSON object")
	}

	var in Intent
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Intent{}, fmt.Errorf("failed to decode LLM intent: %w", err)
	}

	switch in.Kind {
	case KindSnapshot, KindRange, KindComparison, KindHelp, KindError:
	default:
		return Intent{}, fmt.Errorf("LLM returned unknown intent kind %q", in.Kind)
	}
	return in, nil
}

// stripFences removes a surrounding ``` block, with or without a language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		if strings.HasPrefix(strings.ToLower(s), "json") {
			s = s[4:]
		}
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
