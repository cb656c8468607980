package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

func buildTreeResult(t *testing.T) *result.Result {
	t.Helper()
	res := result.New(7, "Vanilla")
	require.NoError(t, res.Put(result.RandomizedRecipe{
		Item:        "Glass",
		Category:    catalogue.CategoryBasicMaterials,
		Ingredients: []catalogue.Ingredient{{Item: "Quartz", Amount: 2}},
		CraftAmount: 1,
	}))
	require.NoError(t, res.Put(result.RandomizedRecipe{
		Item:        "Knife",
		Category:    catalogue.CategoryTools,
		Ingredients: []catalogue.Ingredient{{Item: "Glass", Amount: 1}, {Item: "Titanium", Amount: 1}},
		CraftAmount: 1,
	}))
	require.NoError(t, res.Put(result.RandomizedRecipe{
		Item:          "HeatBlade",
		Category:      catalogue.CategoryTools,
		Prerequisites: []catalogue.ItemID{"Knife"},
		Ingredients:   []catalogue.Ingredient{{Item: "Knife", Amount: 1}, {Item: "Copper", Amount: 3}},
		CraftAmount:   1,
	}))
	return res
}

func TestBuildRecipeTree_ExpandsCraftedIngredients(t *testing.T) {
	// Arrange
	res := buildTreeResult(t)

	// Act
	tree := BuildRecipeTree(res, "HeatBlade", 0)

	// Assert
	require.Len(t, tree.Children, 2)
	assert.True(t, tree.Children[0].Upgrade)
	assert.True(t, tree.Children[0].Crafted)
	assert.False(t, tree.Children[1].Crafted)
	assert.Equal(t, 6, tree.CountNodes())
	assert.Equal(t, 4, tree.TotalDepth())
}

func TestBuildRecipeTree_DepthLimit(t *testing.T) {
	// Act
	tree := BuildRecipeTree(buildTreeResult(t), "HeatBlade", 1)

	// Assert
	assert.Equal(t, 3, tree.CountNodes())
	assert.Empty(t, tree.Children[0].Children)
}

func TestBuildRecipeTree_MarksRepeatedItems(t *testing.T) {
	// Arrange
	res := result.New(1, "Vanilla")
	require.NoError(t, res.Put(result.RandomizedRecipe{Item: "A", Ingredients: []catalogue.Ingredient{{Item: "B", Amount: 1}}}))
	require.NoError(t, res.Put(result.RandomizedRecipe{Item: "B", Ingredients: []catalogue.Ingredient{{Item: "A", Amount: 1}}}))

	// Act
	tree := BuildRecipeTree(res, "A", 0)

	// Assert
	require.Len(t, tree.Children, 1)
	require.Len(t, tree.Children[0].Children, 1)
	assert.True(t, tree.Children[0].Children[0].Repeated)
}

func TestTreeFormatter_FormatTree(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(false, false)
	tree := BuildRecipeTree(buildTreeResult(t), "Knife", 0)

	// Act
	out := formatter.FormatTree(tree)

	// Assert
	expected := "" +
		"[C] Knife\n" +
		"├── [C] Glass\n" +
		"│   └── [R] Quartz x2\n" +
		"└── [R] Titanium\n"
	assert.Equal(t, expected, out)
}

func TestTreeFormatter_Summary(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(false, false)
	tree := BuildRecipeTree(buildTreeResult(t), "Knife", 0)

	// Act
	summary := formatter.FormatTreeSummary(tree)

	// Assert
	assert.Equal(t, "Tree: 4 nodes (2 crafted, 2 raw), depth=3", summary)
	assert.Equal(t, "No recipe tree", formatter.FormatTreeSummary(nil))
	assert.Equal(t, "(empty tree)", formatter.FormatTree(nil))
}

func TestTreeFormatter_RecipeDetails(t *testing.T) {
	// Arrange
	formatter := NewTreeFormatter(true, true)
	recipe, _ := buildTreeResult(t).Recipe("HeatBlade")

	// Act
	out := formatter.FormatRecipeDetails(recipe)

	// Assert
	assert.Contains(t, out, "Item:          HeatBlade\n")
	assert.Contains(t, out, "Upgrades:      Knife\n")
	assert.Contains(t, out, "  2. Copper x3\n")
}
