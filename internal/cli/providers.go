package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/huimingz/aicommit/internal/config"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported LLM providers",
	Long: `List every provider aicommit can talk to, with its wire protocol,
default base URL, API key variable and suggested model.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var current config.Provider
		if store, err := newStore(); err == nil {
			if settings, err := store.Load(); err == nil {
				current = config.ParseProvider(settings.Provider)
			}
		}

		bold := color.New(color.Bold)
		green := color.New(color.FgGreen)
		cyan := color.New(color.FgCyan)

		bold.Fprintln(out, "Supported Providers:")
		fmt.Fprintln(out)

		for _, p := range config.SupportedProviders() {
			if p == current {
				green.Fprintf(out, "  ✓ %s (configured)\n", p)
			} else {
				fmt.Fprintf(out, "    %s\n", p)
			}

			cyan.Fprintf(out, "      Protocol: %s\n", p.Variant())
			if url := p.DefaultBaseURL(""); url != "" {
				cyan.Fprintf(out, "      Base URL: %s\n", url)
			} else {
				cyan.Fprintln(out, "      Base URL: (required)")
			}
			if env := p.APIKeyEnv(); env != "" {
				cyan.Fprintf(out, "      API key:  $%s\n", env)
			}
			if model := p.DefaultModel(); model != "" {
				cyan.Fprintf(out, "      Model:    %s\n", model)
			}
			fmt.Fprintln(out)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
