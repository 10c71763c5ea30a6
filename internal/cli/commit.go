package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huimingz/aicommit/internal/agent"
	"github.com/huimingz/aicommit/internal/config"
	"github.com/huimingz/aicommit/internal/git"
	"github.com/huimingz/aicommit/internal/llm"
	"github.com/huimingz/aicommit/internal/log"
	"github.com/huimingz/aicommit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	commitContext      string
	commitAutoYes      bool
	commitDryRun       bool
	commitInstructions string
	commitExcludes     []string

	// workDir is the repository the command runs in; empty means the current directory
	workDir string
)

// Choices offered after each generated message
const (
	actionCommit = iota
	actionRegenerate
	actionRegenerateWithContext
	actionQuit
)

var nextActions = []string{
	"Commit with this message",
	"Regenerate",
	"Regenerate with extra context",
	"Quit without committing",
}

func init() {
	rootCmd.Flags().StringVarP(&commitContext, "context", "c", "", "Additional context to help the model write a better message")
	rootCmd.Flags().BoolVarP(&commitAutoYes, "yes", "y", false, "Commit the first generated message without prompting")
	rootCmd.Flags().BoolVar(&commitDryRun, "dry-run", false, "Print the generated message without committing")
	rootCmd.Flags().StringVar(&commitInstructions, "instructions", "", "Instructions file (default: instructions.md next to the config file)")
	rootCmd.Flags().StringSliceVar(&commitExcludes, "exclude", nil, "Additional path patterns to leave out of the diff")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	store, cfg, err := resolveConfig(cmd)
	if err != nil {
		if errors.Is(err, config.ErrIncomplete) {
			fmt.Fprintln(out, "aicommit is not configured yet.")
			fmt.Fprintln(out, "\nTo get started, run:")
			fmt.Fprintln(out, "  aicommit configure")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Debug("Using model: %s (provider: %s)", cfg.Model, cfg.Provider)

	instructions, source, err := agent.ResolveInstructions(commitInstructions, filepath.Join(store.Dir(), agent.InstructionsFileName))
	if err != nil {
		return err
	}
	log.Debug("Using instructions: %s", source)

	dir := workDir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	gitExec := git.NewExecutor(dir)
	if !gitExec.IsRepository(ctx) {
		return fmt.Errorf("%s is not inside a git repository", dir)
	}

	client, err := llm.NewProviderFactory().Create(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	log.Debug("LLM client created successfully")

	printer := ui.NewStreamPrinter(out, ui.WithVerbose(log.IsDebugMode()), ui.WithColor(!noColor))

	excludes := append(append([]string{}, git.DefaultExcludes...), commitExcludes...)
	commitAgent, err := agent.NewCommitAgent(agent.CommitAgentOptions{
		GitExecutor:     gitExec,
		Client:          client,
		Instructions:    instructions,
		Excludes:        excludes,
		MaxDiffChars:    cfg.MaxDiffChars,
		RelaxValidation: cfg.RelaxValidation,
		Printer:         printer,
		Output:          out,
		Debug:           log.IsDebugMode(),
	})
	if err != nil {
		return fmt.Errorf("failed to create commit agent: %w", err)
	}

	changes, err := commitAgent.Inspect(ctx)
	if err != nil {
		if errors.Is(err, agent.ErrNoStagedChanges) {
			fmt.Fprintln(out, "No staged changes found.")
			fmt.Fprintln(out, "\nTo stage changes, use:")
			fmt.Fprintln(out, "  git add <file>")
			fmt.Fprintln(out, "  git add -A")
			return nil
		}
		return err
	}

	req := agent.CommitRequest{Context: commitContext}
	for {
		response, err := commitAgent.GenerateCommitMessage(ctx, changes, req)
		if err != nil {
			retry, promptErr := offerRetry(err, printer, in, out)
			if promptErr != nil || !retry {
				return err
			}
			continue
		}

		if err := ui.ShowCommitMessage(response.Message, response.Conventional, out); err != nil {
			return err
		}

		if commitDryRun {
			return nil
		}
		if commitAutoYes {
			return createCommit(ctx, gitExec, response.Message, printer)
		}

		fmt.Fprintln(out)
		choice, err := ui.SelectOption("What would you like to do?", nextActions, actionCommit, in, out)
		if err != nil {
			return err
		}

		switch choice {
		case actionCommit:
			return createCommit(ctx, gitExec, response.Message, printer)
		case actionRegenerate:
			continue
		case actionRegenerateWithContext:
			extra, err := askContext(req.Context, in, out)
			if err != nil {
				return err
			}
			req.Context = extra
		default:
			fmt.Fprintln(out, "Commit cancelled.")
			return nil
		}
	}
}

// offerRetry reports a failed attempt and asks whether to try again.
// Only retryable failures in an interactive run are offered a retry.
func offerRetry(err error, printer *ui.StreamPrinter, in io.Reader, out io.Writer) (bool, error) {
	if commitAutoYes || commitDryRun || !llm.IsRetryable(err) {
		return false, nil
	}
	_ = printer.PrintError(err.Error())
	return ui.ConfirmWithDefault("Try again?", true, in, out)
}

// askContext prompts for extra context. Empty input keeps the current one.
func askContext(current string, in io.Reader, out io.Writer) (string, error) {
	prompt := &ui.LinePrompt{
		Prompt:  "Extra context for the model:",
		Hint:    "Describe what the change is for. Press Enter when finished.",
		Default: current,
		Examples: []string{
			"fixes the login timeout reported in #42",
			"this is a refactor, no behavior change",
		},
	}
	text, err := prompt.Show(in, out)
	if errors.Is(err, ui.ErrEmptyInput) {
		return current, nil
	}
	return text, err
}

func createCommit(ctx context.Context, gitExec git.Executor, message string, printer *ui.StreamPrinter) error {
	if err := gitExec.Commit(ctx, message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	_ = printer.Newline()
	_ = printer.PrintSuccess("Commit created successfully!")
	return nil
}
