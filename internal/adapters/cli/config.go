package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect randomiser configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (RR_* prefix, e.g. RR_RANDOMISER_SEED)
2. Config file (config.yaml)
3. Default values

Example:
  randomiser config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			fmt.Fprintln(out, "Randomiser Configuration")
			fmt.Fprintln(out, "========================")

			r := cfg.Randomiser
			seed := fmt.Sprintf("%d", r.Seed)
			if r.Seed == 0 {
				seed = "(derived from clock)"
			}
			fmt.Fprintln(out, "\nRandomiser:")
			fmt.Fprintf(out, "  Seed:             %s\n", seed)
			fmt.Fprintf(out, "  Spawn Point:      %s\n", r.SpawnPoint)
			fmt.Fprintf(out, "  Use Fish:         %v\n", r.UseFish)
			fmt.Fprintf(out, "  Use Seeds:        %v\n", r.UseSeeds)
			fmt.Fprintf(out, "  Databoxes:        %s\n", r.Databoxes)
			fmt.Fprintf(out, "  Max Iterations:   %d\n", r.MaxIterations)
			if len(r.ExtraCategories) > 0 {
				fmt.Fprintf(out, "  Extra Categories: %v\n", r.ExtraCategories)
			}

			taxonomy := catalogue.DefaultTaxonomy().WithCraftable(r.ExtraCategories...)
			checkpoints, warnings := checkpointsFromConfig(r.Checkpoints, taxonomy)
			fmt.Fprintln(out, "\nCheckpoints:")
			for _, cp := range checkpoints {
				depth := fmt.Sprintf("%d", cp.MaxDepth)
				if !cp.Bounded() {
					depth = "unbounded"
				}
				fmt.Fprintf(out, "  %-10s max depth %-9s unlocks %v\n", cp.Name, depth, cp.Unlocks)
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "  Warning: %v\n", w)
			}
			fmt.Fprintf(out, "  Node bounds:      %v\n", progression.NodeBounds(checkpoints))

			fmt.Fprintln(out, "\nData Files:")
			fmt.Fprintf(out, "  Catalogue:        %s\n", cfg.Data.Catalogue)
			fmt.Fprintf(out, "  Wrecks:           %s\n", cfg.Data.Wrecks)
			fmt.Fprintf(out, "  Spawn Regions:    %s\n", cfg.Data.Regions)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %v\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Namespace:        %s\n", cfg.Metrics.Namespace)
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.Textfile)
			}

			return nil
		},
	}
}
