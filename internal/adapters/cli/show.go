package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	var (
		artifactID string
		item       string
		depth      int
		noColor    bool
		emojis     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the recipes of a stored result",
		Long: `Show the randomised recipes of a stored result.

Without --item every recipe is listed. With --item the recipe is expanded
into a tree down to raw materials.

Examples:
  randomiser show
  randomiser show --item Knife
  randomiser show --item Seamoth --depth 2 --artifact seed-1234-1a2b3c4d`,
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

			out := cmd.OutOrStdout()
			formatter := NewTreeFormatter(!noColor, emojis)

			if item != "" {
				id := catalogue.ItemID(item)
				recipe, ok := res.Recipe(id)
				if !ok {
					return fmt.Errorf("%s has no randomised recipe in artifact %s", item, artifact.ID)
				}
				tree := BuildRecipeTree(res, id, depth)
				fmt.Fprint(out, formatter.FormatRecipeDetails(recipe))
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatTree(tree))
				fmt.Fprintln(out, formatter.FormatTreeSummary(tree))
				return nil
			}

			printResultSummary(out, res, artifact.ID)
			fmt.Fprintln(out)
			printRecipes(out, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactID, "artifact", "", "Artifact ID (default: latest)")
	cmd.Flags().StringVar(&item, "item", "", "Show the recipe tree of one item")
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum tree depth (0 = unlimited)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&emojis, "emoji", false, "Use emoji markers in the tree")

	return cmd
}

// printRecipes lists every recipe on one line, sorted by item id
func printRecipes(out io.Writer, res *result.Result) {
	fmt.Fprintf(out, "%-28s %-20s %s\n", "ITEM", "CATEGORY", "INGREDIENTS")
	for _, recipe := range res.Recipes() {
		ingredients := ""
		for i, ing := range recipe.Ingredients {
			if i > 0 {
				ingredients += ", "
			}
			ingredients += fmt.Sprintf("%s x%d", ing.Item, ing.Amount)
		}
		fmt.Fprintf(out, "%-28s %-20s %s\n", recipe.Item, recipe.Category, ingredients)
	}
}
