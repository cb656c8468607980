package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-randomiser/internal/application/randomiser"
)

// NewRestoreCommand creates the restore command
func NewRestoreCommand() *cobra.Command {
	var artifactID string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a stored result, or randomise again if it is unusable",
		Long: `Restore the latest stored artifact, or the one given by --artifact.

An artifact that is missing, corrupt or written by another format version
is not used: a fresh pass runs with the current configuration instead.

Examples:
  randomiser restore
  randomiser restore --artifact seed-1234-1a2b3c4d`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := setupApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.mediator.Send(ctx, &randomiser.RestoreCommand{
				ArtifactID: artifactID,
				Randomise:  a.randomiseCommand(),
			})
			if err != nil {
				return err
			}
			response, ok := resp.(*randomiser.RestoreResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}

			out := cmd.OutOrStdout()
			if response.Restored {
				fmt.Fprintln(out, "✓ Restored stored result")
			} else {
				fmt.Fprintf(out, "⚠ Stored result unusable (%v), ran a fresh pass\n", response.FallbackReason)
			}
			fmt.Fprintln(out)
			printResultSummary(out, response.Result, response.ArtifactID)
			printReport(out, response.Report)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactID, "artifact", "", "Artifact ID to restore (default: latest)")

	return cmd
}
