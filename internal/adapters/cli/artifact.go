package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-randomiser/internal/application/randomiser"
)

// NewArtifactCommand creates the artifact command with subcommands
func NewArtifactCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Manage stored artifacts",
		Long: `Manage stored result artifacts.

An artifact is the base64 encoding of a result. It carries its format
version, so artifacts from another version are detected instead of misread.

Examples:
  randomiser artifact list
  randomiser artifact get seed-1234-1a2b3c4d
  randomiser artifact decode <encoded>`,
	}

	cmd.AddCommand(newArtifactListCommand())
	cmd.AddCommand(newArtifactGetCommand())
	cmd.AddCommand(newArtifactDecodeCommand())

	return cmd
}

func newArtifactListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored artifacts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := setupApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			artifacts, err := a.repo.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(artifacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No artifacts stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSEED\tSPAWN\tVERSION\tCREATED")
			for _, artifact := range artifacts {
				fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n",
					artifact.ID,
					artifact.Seed,
					artifact.SpawnChoice,
					artifact.Version,
					artifact.CreatedAt.Format("2006-01-02 15:04:05"),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of artifacts to list")

	return cmd
}

func newArtifactGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <artifact-id>",
		Short: "Print the encoded form of a stored artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := setupApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			artifact, err := a.repo.FindByID(ctx, args[0])
			if err != nil {
				return err
			}
			if artifact == nil {
				return fmt.Errorf("artifact %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.Encoded)
			return nil
		},
	}
}

func newArtifactDecodeCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "decode [encoded]",
		Short: "Decode an artifact string and summarise it",
		Long: `Decode an artifact given as an argument or read from --file and print a
summary. Version mismatches and corrupt input are reported as errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded := ""
			switch {
			case len(args) == 1:
				encoded = args[0]
			case file != "":
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				encoded = string(raw)
			default:
				return fmt.Errorf("pass the encoded artifact or --file")
			}

			a, ctx, err := setupApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.mediator.Send(ctx, &randomiser.DecodeArtifactQuery{Encoded: strings.TrimSpace(encoded)})
			if err != nil {
				return err
			}
			decoded, ok := resp.(*randomiser.DecodeArtifactResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}

			printResultSummary(cmd.OutOrStdout(), decoded.Result, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the artifact from a file")

	return cmd
}
