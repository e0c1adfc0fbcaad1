package advisor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	apperrors "finanzas/internal/errors"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// GeminiProvider calls the Gemini generateContent REST endpoint.
type GeminiProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
	model      string
}

// NewGeminiProvider creates a provider for model. An empty baseURL selects
// the public endpoint.
func NewGeminiProvider(httpClient *http.Client, apiKey, model, baseURL string) *GeminiProvider {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// Name returns the provider's display name.
func (p *GeminiProvider) Name() string { return "Gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt as a single user turn and returns the first
// candidate's text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			Temperature:      0.7,
		},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("encoding gemini request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, url.PathEscape(p.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorService, fmt.Errorf("building gemini request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorService, fmt.Errorf("gemini http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorService, fmt.Errorf("reading gemini response: %w", err))
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", apperrors.Wrap(
			apperrors.WithMessage(apperrors.ErrAdvisorModelNotFound,
				fmt.Sprintf("The advisory model %s is not available for this API key", p.model)),
			fmt.Errorf("gemini: model %s not found", p.model),
		)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("Error %d", resp.StatusCode)
		var apiErr geminiErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return "", apperrors.Wrap(
			apperrors.WithMessage(apperrors.ErrAdvisorService, msg),
			fmt.Errorf("gemini: unexpected status %d", resp.StatusCode),
		)
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorParse, fmt.Errorf("decoding gemini response: %w", err))
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", apperrors.WithMessage(apperrors.ErrAdvisorParse, "The advisory service returned no answer")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
