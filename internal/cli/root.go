package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/huimingz/aicommit/internal/config"
	"github.com/huimingz/aicommit/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Global flags
	debugMode  bool
	noColor    bool
	configFile string

	// Override flags, bound to the same keys as the AICOMMIT_* variables
	flagProvider     string
	flagModel        string
	flagBaseURL      string
	flagMaxDiffChars int
	flagRelax        bool
	flagWriteBack    bool

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// overrideFlags maps flag names to override keys
var overrideFlags = map[string]string{
	"provider":       config.KeyProvider,
	"model":          config.KeyModel,
	"base-url":       config.KeyBaseURL,
	"max-diff-chars": config.KeyMaxDiffChars,
	"relax":          config.KeyRelax,
	"debug":          config.KeyDebug,
	"write-back":     config.KeyWriteBack,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aicommit",
	Short: "Generate commit messages for staged changes with an LLM",
	Long: `aicommit reads your staged changes, asks a language model for a
Conventional Commits message and lets you commit, regenerate or quit.

Supported backends: OpenAI, Groq, Mistral, Google, OpenRouter, any
OpenAI-compatible endpoint, and a local Ollama server.

Run "aicommit configure" once to pick a provider and model.
Use "aicommit [command] --help" for more information about a command.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error("%v", err)
	}
	return err
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

// newStore opens the settings store at --config or the default location
func newStore() (*config.Store, error) {
	if configFile != "" {
		return config.NewStore(configFile), nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path), nil
}

// loadOverrides collects overrides from the environment and the flags of cmd.
// Flags the user did not pass leave the environment value in place.
func loadOverrides(cmd *cobra.Command) (config.OverrideSet, error) {
	v := viper.New()
	if err := config.BindEnv(v); err != nil {
		return config.OverrideSet{}, err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := overrideFlags[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return config.OverrideSet{}, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	return config.OverridesFromViper(v), nil
}

// resolveConfig loads settings, applies overrides and enables debug output
func resolveConfig(cmd *cobra.Command) (*config.Store, *config.RuntimeConfig, error) {
	store, err := newStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate config: %w", err)
	}

	overrides, err := loadOverrides(cmd)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.NewResolver(store).Resolve(overrides)
	if err != nil {
		return store, nil, err
	}

	if cfg.Debug && !log.IsDebugMode() {
		log.SetDebugMode(true)
		log.Debug("Debug mode enabled by configuration")
	}
	log.DebugConfig("Configuration", cfg.Masked())

	return store, cfg, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ~/.config/aicommit/config.json)")

	// Overrides for this run only, unless --write-back is set
	rootCmd.PersistentFlags().StringVarP(&flagProvider, "provider", "p", "", "LLM provider to use (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "LLM model to use (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxDiffChars, "max-diff-chars", 0, "Truncate the diff after this many characters, 0 disables (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagRelax, "relax", false, "Only require a colon in the generated message")
	rootCmd.PersistentFlags().BoolVar(&flagWriteBack, "write-back", false, "Persist the resolved configuration")
}
