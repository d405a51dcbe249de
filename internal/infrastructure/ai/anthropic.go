package ai

import (
	"encoding/json"
	"net/http"

	"github.com/doeshing/termnamer/internal/domain"
)

const anthropicVersion = "2023-06-01"

func anthropicAdapter() providerAdapter {
	return providerAdapter{
		path:          "/v1/messages",
		buildRequest:  buildAnthropicRequest,
		parseResponse: parseAnthropicResponse,
		setHeaders:    setAnthropicHeaders,
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func buildAnthropicRequest(s settings, prompt domain.Prompt) ([]byte, error) {
	request := anthropicRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    prompt.Instruction,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt.Input},
		},
	}
	if s.temperature > 0 {
		temperature := s.temperature
		request.Temperature = &temperature
	}
	return json.Marshal(request)
}

func parseAnthropicResponse(body []byte) (string, *domain.TokenUsage, error) {
	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", nil, err
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "" || block.Type == "text" {
			text = block.Text
			break
		}
	}

	var usage *domain.TokenUsage
	if response.Usage != nil {
		usage = &domain.TokenUsage{
			PromptTokens:     response.Usage.InputTokens,
			CompletionTokens: response.Usage.OutputTokens,
			TotalTokens:      response.Usage.InputTokens + response.Usage.OutputTokens,
		}
	}
	return text, usage, nil
}

func setAnthropicHeaders(req *http.Request, s settings) {
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
}
