package ai

import (
	"encoding/json"

	"github.com/doeshing/termnamer/internal/domain"
)

func ollamaAdapter() providerAdapter {
	return providerAdapter{
		path:          "/api/generate",
		modelTag:      func(s settings) string { return "ollama/" + s.model },
		buildRequest:  buildOllamaRequest,
		parseResponse: parseOllamaResponse,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

func buildOllamaRequest(s settings, prompt domain.Prompt) ([]byte, error) {
	return json.Marshal(ollamaRequest{
		Model:  s.model,
		System: prompt.Instruction,
		Prompt: prompt.Input,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  s.maxTokens,
			Temperature: s.temperature,
		},
	})
}

// parseOllamaResponse reports usage only when the daemon sent a count.
func parseOllamaResponse(body []byte) (string, *domain.TokenUsage, error) {
	var response ollamaResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", nil, err
	}

	var usage *domain.TokenUsage
	if response.PromptEvalCount > 0 || response.EvalCount > 0 {
		usage = &domain.TokenUsage{
			PromptTokens:     response.PromptEvalCount,
			CompletionTokens: response.EvalCount,
			TotalTokens:      response.PromptEvalCount + response.EvalCount,
		}
	}
	return response.Response, usage, nil
}
