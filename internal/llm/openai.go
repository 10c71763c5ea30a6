package llm

import (
	"context"
	"fmt"
	"net/http"
)

// OpenAIClient talks to any backend implementing the OpenAI chat completions API
type OpenAIClient struct {
	name    string
	model   string
	backend *httpBackend
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *backendError `json:"error"`
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
// The bearer header is only sent when apiKey is non-empty.
func NewOpenAIClient(name, baseURL, model, apiKey string, httpClient *http.Client) *OpenAIClient {
	backend := &httpBackend{
		provider: name,
		baseURL:  baseURL,
		client:   httpClient,
	}
	if apiKey != "" {
		backend.beforeRequest = func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		}
	}
	return &OpenAIClient{name: name, model: model, backend: backend}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return c.name
}

// Generate sends the system + user conversation and returns the sanitized completion
func (c *OpenAIClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	msgs := prompt.Messages()
	req := chatRequest{
		Model:       c.model,
		Messages:    make([]chatMessage, 0, len(msgs)),
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	status, body, err := c.backend.post(ctx, "/chat/completions", req)
	if err != nil {
		return "", err
	}

	var reply chatResponse
	if err := c.backend.decodeReply(status, body, &reply); err != nil {
		return "", err
	}
	if reply.Error.present() {
		return "", newError(KindBackendError, c.name, status, reply.Error.Message, nil)
	}
	if !isSuccess(status) {
		return "", newError(KindBackendError, c.name, status, fmt.Sprintf("HTTP %d", status), nil)
	}
	if len(reply.Choices) == 0 || reply.Choices[0].Message.Content == nil {
		return "", newError(KindEmptyCompletion, c.name, status, "reply has no message content", nil)
	}

	message := SanitizeCompletion(*reply.Choices[0].Message.Content)
	if message == "" {
		return "", newError(KindEmptyCompletion, c.name, status, "message content is empty", nil)
	}
	return message, nil
}
