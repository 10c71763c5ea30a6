package llm

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Prompt is the assembled request content a Client sends to its backend
type Prompt interface {
	// Text returns the full prompt as one document
	Text() string

	// Messages returns the prompt as a system + user conversation
	Messages() []*schema.Message
}

// Client generates a commit message from a Prompt
type Client interface {
	// Name returns the provider name
	Name() string

	// Generate sends the prompt and returns the sanitized completion
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Sampling parameters shared by every backend
const (
	Temperature   = 0.2
	MaxTokens     = 400
	ContextWindow = 8192
)
