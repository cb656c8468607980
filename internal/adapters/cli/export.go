package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// exportDocument is the JSON shape handed to the game integration
type exportDocument struct {
	ArtifactID  string          `json:"artifact_id"`
	Version     int             `json:"version"`
	Seed        int64           `json:"seed"`
	SpawnChoice string          `json:"spawn_choice"`
	StartPoint  *exportVector   `json:"start_point"`
	Recipes     []exportRecipe  `json:"recipes"`
	Databoxes   []exportDatabox `json:"databoxes"`
}

type exportVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type exportIngredient struct {
	Item   string `json:"item"`
	Amount int    `json:"amount"`
}

type exportRecipe struct {
	Item          string             `json:"item"`
	Category      string             `json:"category"`
	Node          int                `json:"node"`
	Ingredients   []exportIngredient `json:"ingredients"`
	Prerequisites []string           `json:"prerequisites,omitempty"`
	CraftAmount   int                `json:"craft_amount"`
	LinkedItems   []string           `json:"linked_items,omitempty"`
	Value         int                `json:"value,omitempty"`
	MaxUses       int                `json:"max_uses,omitempty"`
	Blueprint     *exportBlueprint   `json:"blueprint,omitempty"`
}

// exportBlueprint is the vanilla unlock data of a recipe's item, passed
// through so the game integration can keep blueprints obtainable
type exportBlueprint struct {
	Fragment         string   `json:"fragment,omitempty"`
	Databox          bool     `json:"databox"`
	UnlockConditions []string `json:"unlock_conditions,omitempty"`
	UnlockDepth      int      `json:"unlock_depth"`
}

type exportDatabox struct {
	Item        string       `json:"item"`
	Coordinates exportVector `json:"coordinates"`
	Region      string       `json:"region"`
	Tools       []string     `json:"tools,omitempty"`
}

func toExportVector(v shared.Vector) exportVector {
	return exportVector{X: v.X, Y: v.Y, Z: v.Z}
}

func toExportBlueprint(bp *catalogue.Blueprint) *exportBlueprint {
	if bp == nil {
		return nil
	}
	out := &exportBlueprint{
		Fragment:    string(bp.Fragment),
		Databox:     bp.Databox,
		UnlockDepth: bp.UnlockDepth,
	}
	for _, c := range bp.UnlockConditions {
		out.UnlockConditions = append(out.UnlockConditions, string(c))
	}
	return out
}

// newExportDocument converts a result into its JSON shape. Item value, max
// uses and blueprint data come from the catalogue, when one is given.
func newExportDocument(artifactID string, res *result.Result, cat *catalogue.Catalogue) exportDocument {
	doc := exportDocument{
		ArtifactID:  artifactID,
		Version:     res.Version,
		Seed:        res.Seed,
		SpawnChoice: res.SpawnChoice,
		Recipes:     make([]exportRecipe, 0, res.Len()),
		Databoxes:   make([]exportDatabox, 0, len(res.Databoxes())),
	}
	if start := res.StartPoint(); start != nil {
		v := toExportVector(*start)
		doc.StartPoint = &v
	}

	for _, recipe := range res.Recipes() {
		r := exportRecipe{
			Item:        string(recipe.Item),
			Category:    string(recipe.Category),
			Node:        int(recipe.Node),
			Ingredients: make([]exportIngredient, len(recipe.Ingredients)),
			CraftAmount: recipe.CraftAmount,
		}
		for i, ing := range recipe.Ingredients {
			r.Ingredients[i] = exportIngredient{Item: string(ing.Item), Amount: ing.Amount}
		}
		for _, p := range recipe.Prerequisites {
			r.Prerequisites = append(r.Prerequisites, string(p))
		}
		for _, l := range recipe.LinkedItems {
			r.LinkedItems = append(r.LinkedItems, string(l))
		}
		if cat != nil {
			if item, ok := cat.Get(recipe.Item); ok {
				r.Value = item.Value
				r.MaxUses = item.MaxUses
				r.Blueprint = toExportBlueprint(item.Blueprint)
			}
		}
		doc.Recipes = append(doc.Recipes, r)
	}

	for _, box := range res.Databoxes() {
		d := exportDatabox{
			Item:        string(box.Item),
			Coordinates: toExportVector(box.Coordinates),
			Region:      box.Region,
		}
		for _, tool := range box.Tools {
			d.Tools = append(d.Tools, string(tool))
		}
		doc.Databoxes = append(doc.Databoxes, d)
	}

	return doc
}

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		artifactID string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored result as JSON",
		Long: `Export a stored result as JSON for the game integration.

Examples:
  randomiser export
  randomiser export --artifact seed-1234-1a2b3c4d --output result.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := setupApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			artifact, res, err := a.loadResult(ctx, artifactID)
			if err != nil {
				return err
			}

			cat, err := a.source.LoadCatalogue(ctx)
			if err != nil {
				return fmt.Errorf("failed to load catalogue: %w", err)
			}

			body, err := json.MarshalIndent(newExportDocument(artifact.ID, res, cat), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return nil
			}
			if err := os.WriteFile(output, append(body, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d recipes to %s\n", res.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactID, "artifact", "", "Artifact ID (default: latest)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
