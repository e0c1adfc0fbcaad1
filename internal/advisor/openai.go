package advisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	apperrors "finanzas/internal/errors"
)

// DefaultOpenAIModel is used when no model is configured for OpenAI.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider calls any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for model. An empty baseURL selects
// the public OpenAI endpoint.
func NewOpenAIProvider(httpClient *http.Client, apiKey, model, baseURL string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name returns the provider's display name.
func (p *OpenAIProvider) Name() string { return "OpenAI" }

// Generate sends prompt as a single user message and requests a JSON object
// reply.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", translateOpenAIError(p.model, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apperrors.WithMessage(apperrors.ErrAdvisorParse, "The advisory service returned no answer")
	}
	return resp.Choices[0].Message.Content, nil
}

func translateOpenAIError(model string, err error) error {
	status, msg := 0, err.Error()

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status, msg = apiErr.HTTPStatusCode, apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusNotFound {
		return apperrors.Wrap(
			apperrors.WithMessage(apperrors.ErrAdvisorModelNotFound,
				fmt.Sprintf("The advisory model %s is not available for this API key", model)),
			err,
		)
	}
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrAdvisorService, msg), err)
}
