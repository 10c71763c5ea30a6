package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huimingz/aicommit/internal/git"
	"github.com/huimingz/aicommit/internal/llm"
	"github.com/huimingz/aicommit/internal/log"
	"github.com/huimingz/aicommit/internal/ui"
)

// ErrNoStagedChanges is returned by Inspect when nothing is staged
var ErrNoStagedChanges = errors.New("no staged changes found")

// CommitRequest represents a request to generate a commit message
type CommitRequest struct {
	Context string // User-provided context (optional)
}

// StagedChanges is what the repository reports about the staging area
type StagedChanges struct {
	Status  []git.FileStatus
	Stats   []git.FileStat
	Diff    string
	Summary string
}

// CommitResponse represents the generated commit message
type CommitResponse struct {
	Message      string        // Sanitized commit message
	Conventional bool          // Whether the message passed the format check
	Truncated    bool          // Whether the diff was cut before sending
	Duration     time.Duration // Time spent waiting on the backend
}

// CommitAgentOptions contains configuration for CommitAgent
type CommitAgentOptions struct {
	GitExecutor     git.Executor      // Git executor for reading staged changes
	Client          llm.Client        // Backend client for generating messages
	Instructions    string            // Instructions text (default: DefaultInstructions)
	Excludes        []string          // Path patterns left out of summary and diff
	MaxDiffChars    int               // Diff truncation limit, <= 0 disables
	RelaxValidation bool              // Only require a colon in the message
	Printer         *ui.StreamPrinter // Stream printer for output (optional)
	Output          io.Writer         // Output writer (used if Printer is nil)
	Debug           bool              // Enable debug mode
}

// Validate validates the options and sets defaults
func (o *CommitAgentOptions) Validate() error {
	if o.GitExecutor == nil {
		return fmt.Errorf("git executor is required")
	}
	if o.Client == nil {
		return fmt.Errorf("LLM client is required")
	}
	if o.Instructions == "" {
		o.Instructions = DefaultInstructions
	}
	return nil
}

// getPrinter returns the printer or creates a default one
func (o *CommitAgentOptions) getPrinter() *ui.StreamPrinter {
	if o.Printer != nil {
		return o.Printer
	}
	if o.Output != nil {
		return ui.NewStreamPrinter(o.Output, ui.WithVerbose(o.Debug))
	}
	return nil
}

// CommitAgent handles commit message generation
type CommitAgent struct {
	opts    CommitAgentOptions
	printer *ui.StreamPrinter
}

// NewCommitAgent creates a new CommitAgent instance
func NewCommitAgent(opts CommitAgentOptions) (*CommitAgent, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &CommitAgent{
		opts:    opts,
		printer: opts.getPrinter(),
	}, nil
}

// Inspect reads the staging area once. Regenerations reuse the result.
func (a *CommitAgent) Inspect(ctx context.Context) (*StagedChanges, error) {
	a.printProgress("Reading staged changes...")

	status, err := a.opts.GitExecutor.StagedStatus(ctx, a.opts.Excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged status: %w", err)
	}
	if len(status) == 0 {
		return nil, ErrNoStagedChanges
	}

	stats, err := a.opts.GitExecutor.StagedNumstat(ctx, a.opts.Excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged numstat: %w", err)
	}

	diff, err := a.opts.GitExecutor.StagedDiff(ctx, a.opts.Excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged changes: %w", err)
	}

	changes := &StagedChanges{
		Status:  status,
		Stats:   stats,
		Diff:    diff,
		Summary: BuildChangeSummary(status, stats),
	}
	log.Debug("Staged: %d files, diff %d bytes", len(status), len(diff))
	return changes, nil
}

// BuildPayload assembles the prompt for one attempt
func (a *CommitAgent) BuildPayload(changes *StagedChanges, req CommitRequest) *PromptPayload {
	return BuildPayload(a.opts.Instructions, changes.Summary, changes.Diff, a.opts.MaxDiffChars, req.Context)
}

// GenerateCommitMessage runs one attempt: build the prompt, call the backend,
// classify the result. Every call is independent of earlier attempts.
func (a *CommitAgent) GenerateCommitMessage(ctx context.Context, changes *StagedChanges, req CommitRequest) (*CommitResponse, error) {
	if changes == nil {
		return nil, ErrNoStagedChanges
	}

	payload := a.BuildPayload(changes, req)
	if payload.Truncated {
		a.printWarning(fmt.Sprintf("Diff truncated to %d characters (max_diff_chars)", a.opts.MaxDiffChars))
	}
	if req.Context != "" {
		a.printInfo(fmt.Sprintf("Context: %s", req.Context))
	}

	a.printProgress(fmt.Sprintf("Generating commit message with %s...", a.opts.Client.Name()))

	start := time.Now()
	message, err := a.opts.Client.Generate(ctx, payload)
	duration := time.Since(start)
	log.DebugDuration("Generation", duration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate commit message: %w", err)
	}

	resp := &CommitResponse{
		Message:      message,
		Conventional: ValidateMessage(message, a.opts.RelaxValidation),
		Truncated:    payload.Truncated,
		Duration:     duration,
	}
	if a.printer != nil {
		_ = a.printer.PrintStats(&ui.ExecutionStats{StartTime: start, EndTime: start.Add(duration)})
	}
	return resp, nil
}

func (a *CommitAgent) printProgress(msg string) {
	if a.printer != nil {
		_ = a.printer.PrintProgress(msg)
	}
	log.Debug("%s", msg)
}

func (a *CommitAgent) printInfo(msg string) {
	if a.printer != nil {
		_ = a.printer.PrintInfo(msg)
	}
}

func (a *CommitAgent) printWarning(msg string) {
	if a.printer != nil {
		_ = a.printer.PrintWarning(msg)
		return
	}
	log.Warn("%s", msg)
}
