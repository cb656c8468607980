package csvdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

const sampleCatalogue = `ItemID,Category,Depth,Prerequisites,Value,MaxUses,BlueprintUnlock,BlueprintDepth,Ingredients,CraftAmount,LinkedItems,Node
Titanium,RawMaterials,0,,5,,,,,,,
Quartz,RawMaterials,0,,5,,,,,,,
Kyanite,RawMaterials,1400,,40,,,,,,,Node4
Glass,BasicMaterials,0,,10,,,,Quartz:2,,,
Knife,Tools,0,,20,,KnifeFragment;Databox,50,Silicone:1;Titanium:1,1,,
HeatBlade,Tools,300,Knife,30,,Knife,,Knife:1;Battery:1,1,,
Lubricant,AdvancedMaterials,100,,8,,,,CreepvineSeed:1,2,Titanium;Glass,None
`

func parseCatalogue(t *testing.T, body string, bounds ...int) (*catalogue.Catalogue, []error) {
	t.Helper()
	reader := NewCatalogueReader("", catalogue.DefaultTaxonomy(), bounds)
	cat, warnings, err := reader.Parse(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	return cat, warnings
}

func TestCatalogueReader_ParsesRowsInOrder(t *testing.T) {
	// Act
	cat, warnings := parseCatalogue(t, sampleCatalogue, 100, 300, 900)

	// Assert
	assert.Empty(t, warnings)
	require.Equal(t, 7, cat.Len())
	ids := make([]catalogue.ItemID, 0, cat.Len())
	for _, item := range cat.Items() {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []catalogue.ItemID{"Titanium", "Quartz", "Kyanite", "Glass", "Knife", "HeatBlade", "Lubricant"}, ids)
}

func TestCatalogueReader_ParsesColumns(t *testing.T) {
	// Act
	cat, _ := parseCatalogue(t, sampleCatalogue, 100, 300, 900)

	// Assert
	heat, ok := cat.Get("HeatBlade")
	require.True(t, ok)
	assert.Equal(t, catalogue.CategoryTools, heat.Category)
	assert.Equal(t, 300, heat.Depth)
	assert.Equal(t, []catalogue.ItemID{"Knife"}, heat.Prerequisites)
	assert.Equal(t, []catalogue.Ingredient{{Item: "Knife", Amount: 1}, {Item: "Battery", Amount: 1}}, heat.Recipe.Ingredients)
	assert.Equal(t, catalogue.Node(2), heat.Node, "derived from depth 300")

	knife, _ := cat.Get("Knife")
	require.NotNil(t, knife.Blueprint)
	assert.Equal(t, catalogue.ItemID("KnifeFragment"), knife.Blueprint.Fragment)
	assert.True(t, knife.Blueprint.Databox)
	assert.Equal(t, 50, knife.Blueprint.UnlockDepth)

	glass, _ := cat.Get("Glass")
	assert.Equal(t, 1, glass.Recipe.CraftAmount, "defaults to one when the recipe has ingredients")

	lube, _ := cat.Get("Lubricant")
	assert.Equal(t, 2, lube.Recipe.CraftAmount)
	assert.Equal(t, []catalogue.ItemID{"Titanium", "Glass"}, lube.Recipe.LinkedItems)
	assert.Equal(t, catalogue.NodeNone, lube.Node)

	kyanite, _ := cat.Get("Kyanite")
	assert.Equal(t, catalogue.Node(4), kyanite.Node)
	assert.Nil(t, kyanite.Blueprint)
}

func TestCatalogueReader_SkipsMalformedRows(t *testing.T) {
	// Arrange
	body := `TechType,Category,Depth,Prerequisites,Value,MaxUses,BlueprintUnlock,BlueprintDepth,Ingredients,CraftAmount,LinkedItems,Node
Titanium,RawMaterials,0,,5,,,,,,,
Broken,RawMaterials,deep,,5,,,,,,,
TooShort,RawMaterials,0
BadAmount,Tools,0,,5,,,,Titanium:x,,,
,Tools,0,,5,,,,,,,
Copper,RawMaterials,50,,5,,,,,,,
`

	// Act
	cat, warnings := parseCatalogue(t, body)

	// Assert
	assert.Equal(t, 2, cat.Len())
	require.Len(t, warnings, 4)
	var rowErr *shared.RowParseError
	require.True(t, errors.As(warnings[0], &rowErr))
	assert.Equal(t, 3, rowErr.Line)
}

func TestCatalogueReader_UnknownCategoryFallsBackToNone(t *testing.T) {
	// Arrange
	body := "Gizmo,Gadgets,0,,,,,,Titanium:1,,,\nTitanium,RawMaterials,0,,,,,,,,,\n"

	// Act
	cat, warnings := parseCatalogue(t, body)

	// Assert
	gizmo, ok := cat.Get("Gizmo")
	require.True(t, ok)
	assert.Equal(t, catalogue.CategoryNone, gizmo.Category)
	require.Len(t, warnings, 1)
	var unknown *catalogue.UnknownCategoryTag
	require.ErrorAs(t, warnings[0], &unknown)
	assert.Equal(t, "Gadgets", unknown.Tag)
}

func TestCatalogueReader_ExtraCategoriesAreCraftable(t *testing.T) {
	// Arrange
	taxonomy := catalogue.DefaultTaxonomy().WithCraftable("Gadgets")
	reader := NewCatalogueReader("", taxonomy, nil)

	// Act
	cat, warnings, err := reader.Parse(context.Background(), strings.NewReader("Gizmo,Gadgets,0,,,,,,Titanium:1,,,\n"))

	// Assert
	require.NoError(t, err)
	assert.Empty(t, warnings)
	gizmo, _ := cat.Get("Gizmo")
	assert.Equal(t, catalogue.Category("Gadgets"), gizmo.Category)
	assert.Equal(t, catalogue.KindCraftable, cat.KindOf(gizmo))
}

func TestCatalogueReader_EmptyFileIsDataLoadError(t *testing.T) {
	// Arrange
	reader := NewCatalogueReader("", nil, nil)

	// Act
	_, _, err := reader.Parse(context.Background(), strings.NewReader("ItemID,Category\n"))

	// Assert
	var loadErr *shared.DataLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestCatalogueReader_MissingFileIsDataLoadError(t *testing.T) {
	// Arrange
	reader := NewCatalogueReader(filepath.Join(t.TempDir(), "missing.csv"), nil, nil)

	// Act
	_, _, err := reader.Read(context.Background())

	// Assert
	var loadErr *shared.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "catalogue", loadErr.Source)
}

func TestFileSource_LoadsAllThreeFiles(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}
	source := NewFileSource(
		write("recipes.csv", sampleCatalogue),
		write("wrecks.csv", sampleWrecks),
		write("starts.yaml", "biomes:\n  SafeShallows:\n    - {min_x: 0, max_x: 10, min_z: 0, max_z: 10, y: 0}\n"),
		nil, []int{100, 300},
	)
	ctx := context.Background()

	// Act
	cat, catErr := source.LoadCatalogue(ctx)
	boxes, boxErr := source.LoadDataboxes(ctx)
	regions, regionErr := source.LoadRegions(ctx)

	// Assert
	require.NoError(t, catErr)
	require.NoError(t, boxErr)
	require.NoError(t, regionErr)
	assert.Equal(t, 7, cat.Len())
	assert.Len(t, boxes, 3)
	assert.Len(t, regions.Biomes(), 1)
}
