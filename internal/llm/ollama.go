package llm

import (
	"context"
	"fmt"
	"net/http"
)

// OllamaClient talks to a local Ollama server through /api/generate
type OllamaClient struct {
	model   string
	backend *httpBackend
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	NumCtx      int     `json:"num_ctx"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response *string       `json:"response"`
	Error    *backendError `json:"error"`
}

// NewOllamaClient creates a client for the Ollama server at baseURL
func NewOllamaClient(baseURL, model string, httpClient *http.Client) *OllamaClient {
	return &OllamaClient{
		model: model,
		backend: &httpBackend{
			provider: "ollama",
			baseURL:  baseURL,
			client:   httpClient,
		},
	}
}

// Name returns the provider name
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Generate sends the full prompt text and returns the sanitized completion
func (c *OllamaClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	req := ollamaRequest{
		Model:  c.model,
		Prompt: prompt.Text(),
		Stream: false,
		Options: ollamaOptions{
			Temperature: Temperature,
			NumPredict:  MaxTokens,
			NumCtx:      ContextWindow,
		},
	}

	status, body, err := c.backend.post(ctx, "/api/generate", req)
	if err != nil {
		return "", err
	}

	var reply ollamaResponse
	if err := c.backend.decodeReply(status, body, &reply); err != nil {
		return "", err
	}
	if reply.Error.present() {
		return "", newError(KindBackendError, c.Name(), status, reply.Error.Message, nil)
	}
	if !isSuccess(status) {
		return "", newError(KindBackendError, c.Name(), status, fmt.Sprintf("HTTP %d", status), nil)
	}
	if reply.Response == nil {
		return "", newError(KindEmptyCompletion, c.Name(), status, "reply has no response field", nil)
	}

	message := SanitizeCompletion(*reply.Response)
	if message == "" {
		return "", newError(KindEmptyCompletion, c.Name(), status, "response is empty", nil)
	}
	return message, nil
}
