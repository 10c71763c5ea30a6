package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huimingz/aicommit/internal/config"
	"github.com/huimingz/aicommit/internal/ui"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	configureAPIKey string
	configureForce  bool
)

// configureFlags are the flags that switch configure to non-interactive mode
var configureFlags = []string{"provider", "model", "base-url", "api-key", "max-diff-chars", "relax", "write-back"}

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"init"},
	Short:   "Save provider, model and API key settings",
	Long: `Write the settings file used by every later run.

Without flags the command asks for each value interactively. With flags
only the given values change and the rest of the file is kept.

Examples:
  aicommit configure
  aicommit configure --provider ollama --model llama3.1
  aicommit configure --provider openai --api-key sk-... --max-diff-chars 30000`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&configureAPIKey, "api-key", "", "API key to store for the provider")
	configureCmd.Flags().BoolVarP(&configureForce, "force", "f", false, "Replace existing settings without asking")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	store, err := newStore()
	if err != nil {
		return fmt.Errorf("failed to locate config: %w", err)
	}

	prev, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var settings *config.Settings
	if flagsChanged(cmd, configureFlags...) {
		settings, err = settingsFromFlags(cmd, prev)
	} else {
		if store.Exists() && !configureForce {
			replace, err := ui.Confirm(fmt.Sprintf("Settings already exist at %s. Replace them?", store.Path()), in, out)
			if err != nil {
				return err
			}
			if !replace {
				fmt.Fprintln(out, "Configuration unchanged.")
				return nil
			}
			fmt.Fprintln(out)
		}
		settings, err = settingsFromPrompts(prev, in, out)
	}
	if err != nil {
		return err
	}

	if err := store.Save(settings, time.Now()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "✅ Configuration saved: %s\n", store.Path())
	warnMissingKey(settings, out)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Stage your changes with 'git add'")
	fmt.Fprintln(out, "  2. Run 'aicommit' to generate a commit message")
	return nil
}

func flagsChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// settingsFromFlags applies the given flags on top of prev.
// Switching provider resets model and base URL unless they are given too.
func settingsFromFlags(cmd *cobra.Command, prev *config.Settings) (*config.Settings, error) {
	s := *prev
	flags := cmd.Flags()

	if flags.Changed("provider") {
		p := config.ParseProvider(flagProvider)
		if p != config.ParseProvider(prev.Provider) {
			s.Model = p.DefaultModel()
			s.BaseURL = ""
			s.APIKey = ""
		}
		s.Provider = p.String()
	}
	if flags.Changed("model") {
		s.Model = strings.TrimSpace(flagModel)
	}
	if flags.Changed("base-url") {
		s.BaseURL = strings.TrimSpace(flagBaseURL)
	}
	if flags.Changed("api-key") {
		s.APIKey = strings.TrimSpace(configureAPIKey)
	}
	if flags.Changed("max-diff-chars") {
		s.MaxDiffChars = flagMaxDiffChars
	}
	if flags.Changed("relax") {
		s.Relax = flagRelax
	}
	if flags.Changed("write-back") {
		s.WriteBack = flagWriteBack
	}

	if err := validateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// settingsFromPrompts walks through every value, offering the current one as default
func settingsFromPrompts(prev *config.Settings, in io.Reader, out io.Writer) (*config.Settings, error) {
	s := *prev
	current := config.ParseProvider(prev.Provider)

	providers := config.SupportedProviders()
	names := make([]string, len(providers))
	defaultIndex := 0
	for i, p := range providers {
		names[i] = p.String()
		if p == current {
			defaultIndex = i
		}
	}

	choice, err := ui.SelectOption("Select a provider:", names, defaultIndex, in, out)
	if err != nil {
		return nil, err
	}
	provider := providers[choice]
	sameProvider := provider == current
	s.Provider = provider.String()
	fmt.Fprintln(out)

	modelDefault := provider.DefaultModel()
	if sameProvider && prev.Model != "" {
		modelDefault = prev.Model
	}
	if s.Model, err = askValue(&ui.LinePrompt{Prompt: "Model:", Default: modelDefault}, in, out); err != nil {
		return nil, err
	}

	if provider.Variant() == config.VariantOpenAICompatible {
		hint := "Leave empty to keep the stored key."
		if env := provider.APIKeyEnv(); env != "" {
			hint = fmt.Sprintf("Leave empty to keep the stored key or use $%s.", env)
		}
		key, err := askValue(&ui.LinePrompt{Prompt: "API key:", Hint: hint, Mask: true}, in, out)
		if err != nil {
			return nil, err
		}
		switch {
		case key != "":
			s.APIKey = key
		case !sameProvider:
			s.APIKey = ""
		}
	} else {
		s.APIKey = ""
	}

	urlPrompt := &ui.LinePrompt{Prompt: "Base URL:"}
	if def := provider.DefaultBaseURL(""); def != "" {
		urlPrompt.Hint = fmt.Sprintf("Leave empty for %s.", def)
	}
	if sameProvider {
		urlPrompt.Default = prev.BaseURL
	}
	if s.BaseURL, err = askValue(urlPrompt, in, out); err != nil {
		return nil, err
	}

	limit := prev.MaxDiffChars
	if limit == 0 && !sameProvider {
		limit = config.DefaultMaxDiffChars
	}
	raw, err := askValue(&ui.LinePrompt{
		Prompt:  "Max diff characters:",
		Hint:    "The diff is cut after this many characters. 0 disables truncation.",
		Default: strconv.Itoa(limit),
	}, in, out)
	if err != nil {
		return nil, err
	}
	if s.MaxDiffChars, err = cast.ToIntE(raw); err != nil {
		return nil, fmt.Errorf("max diff characters must be a number, got %q", raw)
	}

	if err := validateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// askValue shows a prompt; empty input without a default yields ""
func askValue(prompt *ui.LinePrompt, in io.Reader, out io.Writer) (string, error) {
	value, err := prompt.Show(in, out)
	if errors.Is(err, ui.ErrEmptyInput) {
		return "", nil
	}
	fmt.Fprintln(out)
	return value, err
}

func validateSettings(s *config.Settings) error {
	p := config.ParseProvider(s.Provider)
	if !p.Known() {
		return fmt.Errorf("unknown provider %q, run 'aicommit providers' to list the supported ones", s.Provider)
	}
	if s.Model == "" {
		return fmt.Errorf("a model is required for provider %s", p)
	}
	if p.DefaultBaseURL("") == "" && s.BaseURL == "" {
		return fmt.Errorf("a base URL is required for provider %s", p)
	}
	if s.MaxDiffChars < 0 {
		return fmt.Errorf("max diff characters cannot be negative")
	}
	return nil
}

// warnMissingKey points at the key variable when a hosted provider has no stored key
func warnMissingKey(s *config.Settings, out io.Writer) {
	p := config.ParseProvider(s.Provider)
	if !p.RequiresAPIKey() || s.APIKey != "" {
		return
	}
	env := p.APIKeyEnv()
	if os.Getenv(env) != "" || os.Getenv(config.EnvPrefix+"_API_KEY") != "" {
		return
	}
	color.New(color.FgYellow).Fprintf(out, "⚠️  No API key stored for %s. Set $%s or run 'aicommit configure --api-key <key>'.\n", p, env)
}
