// Package advisor asks a language model for financial advice about a
// summary or a period report and decodes its structured JSON reply.
package advisor

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"finanzas/internal/aggregator"
	"finanzas/internal/config"
	apperrors "finanzas/internal/errors"
	"finanzas/internal/logger"
)

// Provider sends a prompt to a model and returns the raw text of its reply.
type Provider interface {
	// Name returns the provider's display name.
	Name() string

	// Generate returns the model's reply to prompt. Errors are AppErrors
	// with one of the advisor codes.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Recommendation is one suggested product or action.
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	RiskLevel   string `json:"riskLevel"`
}

// SnapshotAdvice is the reply to a whole-history summary.
type SnapshotAdvice struct {
	Analysis        string           `json:"analysis"`
	SavingsTarget   string           `json:"savingsTarget"`
	Recommendations []Recommendation `json:"recommendations"`
	Alert           string           `json:"alert"`
}

// PeriodAdvice is the reply to a period report.
type PeriodAdvice struct {
	Summary         string `json:"summary"`
	ExpenseAnalysis string `json:"expenseAnalysis"`
	InvestmentTip   string `json:"investmentTip"`
	ActionItem      string `json:"actionItem"`
}

// Client turns aggregates into prompts and replies into advice.
type Client struct {
	provider Provider
}

// NewClient wraps p. A nil provider yields a client whose calls fail with
// ErrAdvisorNotConfigured.
func NewClient(p Provider) *Client {
	return &Client{provider: p}
}

// New builds a client from configuration. An empty model selects the
// provider's default. Without an API key no provider is created and nothing
// is ever sent over the network.
func New(cfg *config.Config, httpClient *http.Client) *Client {
	if cfg.AdvisorAPIKey == "" {
		logger.Get().Warn("Advisor API key not set, advisory endpoints are disabled")
		return NewClient(nil)
	}

	var p Provider
	model := cfg.AdvisorModel
	switch strings.ToLower(cfg.AdvisorProvider) {
	case "openai":
		if model == "" {
			model = DefaultOpenAIModel
		}
		p = NewOpenAIProvider(httpClient, cfg.AdvisorAPIKey, model, cfg.AdvisorBaseURL)
	default:
		if model == "" {
			model = DefaultGeminiModel
		}
		p = NewGeminiProvider(httpClient, cfg.AdvisorAPIKey, model, cfg.AdvisorBaseURL)
	}
	logger.Get().Infow("Advisor configured", "provider", p.Name(), "model", model)
	return NewClient(p)
}

// Configured reports whether the client has a provider.
func (c *Client) Configured() bool {
	return c.provider != nil
}

// SnapshotAdvice asks for an assessment of the user's overall position.
func (c *Client) SnapshotAdvice(ctx context.Context, summary aggregator.Summary, userName string) (*SnapshotAdvice, error) {
	var advice SnapshotAdvice
	if err := c.ask(ctx, SnapshotPrompt(summary, userName), &advice); err != nil {
		return nil, err
	}
	if advice.Analysis == "" || advice.SavingsTarget == "" {
		return nil, apperrors.WithMessage(apperrors.ErrAdvisorParse, "The advisory reply is missing required fields")
	}
	if advice.Recommendations == nil {
		advice.Recommendations = []Recommendation{}
	}
	return &advice, nil
}

// PeriodAdvice asks for an assessment of one reporting period.
func (c *Client) PeriodAdvice(ctx context.Context, report aggregator.PeriodReport) (*PeriodAdvice, error) {
	var advice PeriodAdvice
	if err := c.ask(ctx, PeriodPrompt(report), &advice); err != nil {
		return nil, err
	}
	if advice.Summary == "" || advice.ActionItem == "" {
		return nil, apperrors.WithMessage(apperrors.ErrAdvisorParse, "The advisory reply is missing required fields")
	}
	return &advice, nil
}

func (c *Client) ask(ctx context.Context, prompt string, out interface{}) error {
	if c.provider == nil {
		return apperrors.ErrAdvisorNotConfigured
	}

	text, err := c.provider.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Errorw("Advisor request failed", "provider", c.provider.Name(), "error", err)
		return err
	}

	text = stripFence(text)
	if text == "" {
		return apperrors.WithMessage(apperrors.ErrAdvisorParse, "The advisory service returned an empty reply")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		logger.Get().Warnw("Advisor reply is not valid JSON", "provider", c.provider.Name(), "error", err)
		return apperrors.Wrap(apperrors.ErrAdvisorParse, err)
	}
	return nil
}

// stripFence removes a surrounding markdown code fence, which some models
// add even when asked for bare JSON.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
