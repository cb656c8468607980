package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/application/randomiser"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

// NewRandomiseCommand creates the randomise command
func NewRandomiseCommand() *cobra.Command {
	var (
		seed          int64
		spawnChoice   string
		useFish       bool
		useSeeds      bool
		databoxes     string
		noSave        bool
		printArtifact bool
	)

	cmd := &cobra.Command{
		Use:   "randomise",
		Short: "Run a fresh randomisation pass",
		Long: `Run a fresh randomisation pass and store the result as an artifact.

Flags override the matching configuration settings. A seed of 0 derives the
seed from the clock; the chosen seed is recorded in the result.

Examples:
  randomiser randomise
  randomiser randomise --seed 1234 --spawn Random
  randomiser randomise --fish --seeds --databoxes vanilla
  randomiser randomise --no-save --print-artifact`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := setupApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			request := a.randomiseCommand()
			flags := cmd.Flags()
			if flags.Changed("seed") {
				request.Seed = seed
			}
			if flags.Changed("spawn") {
				request.SpawnChoice = spawnChoice
			}
			if flags.Changed("fish") {
				request.UseFish = useFish
			}
			if flags.Changed("seeds") {
				request.UseSeeds = useSeeds
			}
			if flags.Changed("databoxes") {
				if databoxes != "shuffle" && databoxes != "vanilla" {
					return fmt.Errorf("--databoxes must be shuffle or vanilla, got %q", databoxes)
				}
				request.ShuffleDataboxes = databoxes == "shuffle"
			}
			request.Persist = !noSave

			resp, err := a.mediator.Send(ctx, &request)
			if err != nil {
				return err
			}
			response, ok := resp.(*randomiser.RandomiseResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}

			out := cmd.OutOrStdout()
			printResultSummary(out, response.Result, response.ArtifactID)
			printReport(out, response.Report)
			if printArtifact {
				fmt.Fprintf(out, "\nArtifact:\n%s\n", response.Encoded)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed of the pass (0 = derive from clock)")
	cmd.Flags().StringVar(&spawnChoice, "spawn", "", "Spawn point: Vanilla, Random, Void or a biome name")
	cmd.Flags().BoolVar(&useFish, "fish", false, "Allow fish as raw material substitutes")
	cmd.Flags().BoolVar(&useSeeds, "seeds", false, "Allow seeds as raw material substitutes")
	cmd.Flags().StringVar(&databoxes, "databoxes", "", "Databox handling: shuffle or vanilla")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the result as an artifact")
	cmd.Flags().BoolVar(&printArtifact, "print-artifact", false, "Print the encoded artifact")

	return cmd
}

// printResultSummary writes the headline facts of a result
func printResultSummary(out io.Writer, res *result.Result, artifactID string) {
	fmt.Fprintln(out, "Randomisation Result")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "  Seed:             %d\n", res.Seed)
	fmt.Fprintf(out, "  Spawn Choice:     %s\n", res.SpawnChoice)
	if start := res.StartPoint(); start != nil {
		fmt.Fprintf(out, "  Start Point:      %s\n", start)
	} else {
		fmt.Fprintf(out, "  Start Point:      (vanilla)\n")
	}
	fmt.Fprintf(out, "  Recipes:          %d\n", res.Len())
	fmt.Fprintf(out, "  Databoxes:        %d\n", len(res.Databoxes()))
	fmt.Fprintf(out, "  Format Version:   %d\n", res.Version)
	if artifactID != "" {
		fmt.Fprintf(out, "  Artifact ID:      %s\n", artifactID)
	}
}

// printReport writes the pass report: checkpoints, warnings and the items that
// kept their vanilla recipe
func printReport(out io.Writer, report *progression.Report) {
	if report == nil {
		return
	}

	fmt.Fprintln(out, "\nCheckpoints:")
	for _, cp := range report.Checkpoints {
		depth := fmt.Sprintf("%d", cp.MaxDepth)
		if cp.MaxDepth == progression.Unbounded {
			depth = "unbounded"
		}
		capNote := ""
		if cp.CapReached {
			capNote = " (iteration cap reached)"
		}
		fmt.Fprintf(out, "  %-10s depth=%-9s rounds=%-3d admitted=%-4d randomised=%d%s\n",
			cp.Name, depth, cp.Iterations, cp.Admitted, cp.Randomised, capNote)
	}

	fmt.Fprintf(out, "\nAdmitted: %d  Randomised: %d  Substitutions: %d  Warnings: %d\n",
		report.Admitted, report.Randomised, report.Substitutions, len(report.Warnings))

	if len(report.Unintegrated) > 0 {
		fmt.Fprintf(out, "\nNot integrated into logic (%d):\n", len(report.Unintegrated))
		for _, u := range report.Unintegrated {
			if u.Detail != "" {
				fmt.Fprintf(out, "  %-24s %s (%s)\n", u.Item, u.Reason, u.Detail)
			} else {
				fmt.Fprintf(out, "  %-24s %s\n", u.Item, u.Reason)
			}
		}
	}
}
