package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "randomiser",
		Short: "Recipe randomiser - shuffle crafting recipes without breaking progression",
		Long: `Randomiser rewrites the crafting recipes of a survival game so that every
item stays obtainable. Items enter logic checkpoint by checkpoint and each
recipe only draws ingredients that are already reachable.

Results are stored as versioned artifacts so a run can be restored later.

Examples:
  randomiser randomise --seed 1234
  randomiser randomise --spawn Random --fish
  randomiser restore
  randomiser show --item Knife
  randomiser export --output result.json
  randomiser artifact list
  randomiser config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: config.yaml in ., ./configs or /etc/randomiser)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewRandomiseCommand())
	rootCmd.AddCommand(NewRestoreCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewArtifactCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
