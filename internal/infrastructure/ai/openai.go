package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/naming"
	"github.com/doeshing/termnamer/internal/ports"
)

// openRouterHeaders identify the application to OpenRouter's rankings.
var openRouterHeaders = map[string]string{
	"HTTP-Referer": "https://github.com/doeshing/termnamer",
	"X-Title":      "termnamer",
}

// chatClient serves OpenAI-compatible chat completion APIs (OpenAI itself
// and OpenRouter).
type chatClient struct {
	settings settings
	client   *openai.Client
}

func newChatClient(s settings, httpClient *http.Client, headers map[string]string) ports.GenerationClient {
	config := openai.DefaultConfig(s.apiKey)
	config.BaseURL = s.endpoint
	config.HTTPClient = withHeaders(httpClient, headers)
	return &chatClient{
		settings: s,
		client:   openai.NewClientWithConfig(config),
	}
}

func (c *chatClient) Name() string {
	return string(c.settings.kind)
}

func (c *chatClient) Model() string {
	return c.settings.model
}

func (c *chatClient) GenerateName(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	prompt := naming.BuildPrompt(req.Commands, req.Language)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.settings.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.Instruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt.Input},
		},
		MaxTokens:   c.settings.maxTokens,
		Temperature: float32(c.settings.temperature),
	})
	if err != nil {
		return domain.GenerationResult{}, c.wrapError(err)
	}

	var raw string
	if len(resp.Choices) > 0 {
		raw = resp.Choices[0].Message.Content
	}

	var usage *domain.TokenUsage
	if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 || resp.Usage.TotalTokens > 0 {
		usage = &domain.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return domain.GenerationResult{
		Name:  naming.CleanName(raw, req.Language),
		Model: c.settings.model,
		Usage: usage,
	}, nil
}

func (c *chatClient) wrapError(err error) error {
	genErr := &domain.GenerationError{Provider: c.Name(), Cause: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		genErr.Status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		genErr.Status = reqErr.HTTPStatusCode
	}
	return genErr
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	return t.base.RoundTrip(req)
}

func withHeaders(client *http.Client, headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return client
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *client
	wrapped.Transport = &headerTransport{base: base, headers: headers}
	return &wrapped
}
