package agent

import (
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

// PromptPayload is the assembled content of one generation attempt.
// It is immutable once built.
type PromptPayload struct {
	Instructions  string
	ChangeSummary string
	DiffText      string // possibly truncated, notice included
	UserContext   string
	Truncated     bool
}

// BuildPayload assembles a payload, cutting the diff to maxDiffChars
// characters when maxDiffChars is positive.
func BuildPayload(instructions, changeSummary, diffText string, maxDiffChars int, userContext string) *PromptPayload {
	p := &PromptPayload{
		Instructions:  instructions,
		ChangeSummary: changeSummary,
		DiffText:      diffText,
		UserContext:   strings.TrimSpace(userContext),
	}

	if maxDiffChars > 0 && utf8.RuneCountInString(diffText) > maxDiffChars {
		runes := []rune(diffText)
		p.DiffText = string(runes[:maxDiffChars]) + TruncationNotice
		p.Truncated = true
	}

	return p
}

// Text renders the payload in its fixed order: instructions, change summary,
// diff, optional user context, closing instruction.
func (p *PromptPayload) Text() string {
	var b strings.Builder

	b.WriteString(p.Instructions)
	b.WriteString("\n\n")
	b.WriteString(p.ChangeSummary)
	b.WriteString("\n\n")
	b.WriteString(DiffHeader)
	b.WriteString("\n")
	b.WriteString(p.DiffText)

	if p.UserContext != "" {
		b.WriteString("\n\n")
		b.WriteString(ContextHeader)
		b.WriteString("\n")
		b.WriteString(p.UserContext)
	}

	b.WriteString("\n\n")
	b.WriteString(ClosingInstruction)

	return b.String()
}

// Messages renders the payload as a system + user conversation
func (p *PromptPayload) Messages() []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(SystemMessage),
		schema.UserMessage(p.Text()),
	}
}
