package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/naming"
	"github.com/doeshing/termnamer/internal/ports"
)

// httpProvider talks to backends whose wire format is not OpenAI-compatible.
type httpProvider struct {
	settings   settings
	httpClient *http.Client
	adapter    providerAdapter
}

// providerAdapter captures the per-backend request and response shapes.
type providerAdapter struct {
	path          string
	modelTag      func(settings) string
	buildRequest  func(settings, domain.Prompt) ([]byte, error)
	parseResponse func([]byte) (string, *domain.TokenUsage, error)
	setHeaders    func(*http.Request, settings)
}

func newHTTPProvider(s settings, client *http.Client, adapter providerAdapter) ports.GenerationClient {
	return &httpProvider{
		settings:   s,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return string(p.settings.kind)
}

func (p *httpProvider) Model() string {
	if p.adapter.modelTag != nil {
		return p.adapter.modelTag(p.settings)
	}
	return p.settings.model
}

func (p *httpProvider) GenerateName(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	prompt := naming.BuildPrompt(req.Commands, req.Language)

	requestBody, err := p.adapter.buildRequest(p.settings, prompt)
	if err != nil {
		return domain.GenerationResult{}, p.fail(0, fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.settings.endpoint+p.adapter.path, bytes.NewReader(requestBody))
	if err != nil {
		return domain.GenerationResult{}, p.fail(0, err)
	}
	httpReq.Header.Set("content-type", "application/json")
	if p.adapter.setHeaders != nil {
		p.adapter.setHeaders(httpReq, p.settings)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return domain.GenerationResult{}, p.fail(0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GenerationResult{}, p.fail(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cause := errors.New(resp.Status)
		if text := snippet(body); text != "" {
			cause = fmt.Errorf("%s: %s", resp.Status, text)
		}
		return domain.GenerationResult{}, p.fail(resp.StatusCode, cause)
	}

	raw, usage, err := p.adapter.parseResponse(body)
	if err != nil {
		return domain.GenerationResult{}, p.fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	return domain.GenerationResult{
		Name:  naming.CleanName(raw, req.Language),
		Model: p.Model(),
		Usage: usage,
	}, nil
}

func (p *httpProvider) fail(status int, cause error) error {
	return &domain.GenerationError{Provider: p.Name(), Status: status, Cause: cause}
}
