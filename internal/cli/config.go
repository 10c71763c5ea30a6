package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/huimingz/aicommit/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the settings file",
	Long:  `Commands for showing the resolved configuration and where it is stored.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Show the configuration a run would use: the settings file merged with
AICOMMIT_* environment variables and command-line overrides. The API key is masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		store, err := newStore()
		if err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
		persisted, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		overrides, err := loadOverrides(cmd)
		if err != nil {
			return err
		}

		// Resolve without the store so showing never writes back
		cfg, err := config.Resolve(persisted, overrides)
		if err != nil {
			return fmt.Errorf("failed to resolve config: %w", err)
		}
		masked := cfg.Masked()

		bold := color.New(color.Bold)
		cyan := color.New(color.FgCyan)

		bold.Fprintln(out, "Resolved Configuration:")
		fmt.Fprintln(out)
		cyan.Fprintf(out, "  Provider:       %s (%s)\n", masked.Provider, masked.Provider.Variant())
		cyan.Fprintf(out, "  Model:          %s\n", masked.Model)
		cyan.Fprintf(out, "  Base URL:       %s\n", masked.BaseURL)
		if masked.APIKey != "" {
			cyan.Fprintf(out, "  API key:        %s\n", masked.APIKey)
		} else {
			cyan.Fprintln(out, "  API key:        (none)")
		}
		cyan.Fprintf(out, "  Max diff chars: %d\n", masked.MaxDiffChars)
		cyan.Fprintf(out, "  Relax:          %t\n", masked.RelaxValidation)
		cyan.Fprintf(out, "  Debug:          %t\n", masked.Debug)
		cyan.Fprintf(out, "  Write back:     %t\n", masked.WriteBack)
		fmt.Fprintln(out)

		if store.Exists() {
			fmt.Fprintf(out, "Settings file: %s\n", store.Path())
		} else {
			fmt.Fprintf(out, "Settings file: %s (not created yet)\n", store.Path())
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), store.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
