package logic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

func ing(id catalogue.ItemID, amount int) catalogue.Ingredient {
	return catalogue.Ingredient{Item: id, Amount: amount}
}

// smallCatalogue models a shallow progression: raw materials, one basic
// material, a tool and its upgrade, plus a late item.
func smallCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()

	items := []*catalogue.Item{
		{ID: "Titanium", Category: catalogue.CategoryRawMaterials, Depth: 0, Node: 1},
		{ID: "Quartz", Category: catalogue.CategoryRawMaterials, Depth: 0, Node: 1},
		{ID: "Copper", Category: catalogue.CategoryRawMaterials, Depth: 50, Node: 1},
		{ID: "Kyanite", Category: catalogue.CategoryRawMaterials, Depth: 1400, Node: 4},
		{ID: "Peeper", Category: catalogue.CategoryFish, Depth: 0, Node: 1},
		{ID: "CreepvineSeed", Category: catalogue.CategorySeeds, Depth: 0, Node: 1},
		{ID: "KnifeFragment", Category: catalogue.CategoryFragments, Depth: 0, Node: 1},
		{ID: "Glass", Category: catalogue.CategoryBasicMaterials, Depth: 0, Node: 1,
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{ing("Quartz", 2)}, CraftAmount: 1}},
		{ID: "Knife", Category: catalogue.CategoryTools, Depth: 0, Node: 1,
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{ing("Titanium", 1), ing("Quartz", 1)}, CraftAmount: 1}},
		{ID: "HeatBlade", Category: catalogue.CategoryTools, Depth: 50, Node: 1, Prerequisites: []catalogue.ItemID{"Knife"},
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{ing("Knife", 1), ing("Copper", 1)}, CraftAmount: 1}},
		{ID: "Scanner", Category: catalogue.CategoryTools, Depth: 0, Node: 1,
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{ing("Titanium", 1)}, CraftAmount: 1}},
		{ID: "DualTool", Category: catalogue.CategoryTools, Depth: 60, Node: 1, Prerequisites: []catalogue.ItemID{"Knife", "Scanner"},
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{ing("Knife", 1), ing("Scanner", 1), ing("Titanium", 2)}, CraftAmount: 1}},
		{ID: "PlasteelIngot", Category: catalogue.CategoryAdvancedMaterials, Depth: 1400, Node: 4,
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{ing("Kyanite", 2)}, CraftAmount: 1}},
	}

	cat, err := catalogue.New(items, nil)
	require.NoError(t, err)
	return cat
}

func ids(items []*catalogue.Item) []catalogue.ItemID {
	out := make([]catalogue.ItemID, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
