package helpers

import (
	"strconv"
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

// CatalogueBuilder assembles small catalogues for tests in load order
type CatalogueBuilder struct {
	items    []*catalogue.Item
	taxonomy *catalogue.Taxonomy
}

// NewCatalogueBuilder starts an empty catalogue with the default taxonomy
func NewCatalogueBuilder() *CatalogueBuilder {
	return &CatalogueBuilder{taxonomy: catalogue.DefaultTaxonomy()}
}

// WithCategories adds extra craftable category tags
func (b *CatalogueBuilder) WithCategories(extra ...string) *CatalogueBuilder {
	b.taxonomy = b.taxonomy.WithCraftable(extra...)
	return b
}

// Item appends an item. Ingredients use the "Item:Amount" notation; a bare
// item id means an amount of 1.
func (b *CatalogueBuilder) Item(id string, category catalogue.Category, depth int, node catalogue.Node, ingredients ...string) *CatalogueBuilder {
	item := &catalogue.Item{
		ID:       catalogue.ItemID(id),
		Category: category,
		Depth:    depth,
		Node:     node,
	}
	for _, entry := range ingredients {
		item.Recipe.Ingredients = append(item.Recipe.Ingredients, ParseIngredient(entry))
	}
	if len(item.Recipe.Ingredients) > 0 {
		item.Recipe.CraftAmount = 1
	}
	b.items = append(b.items, item)
	return b
}

// Upgrade appends an item whose first ingredients are its prerequisites
func (b *CatalogueBuilder) Upgrade(id string, category catalogue.Category, depth int, node catalogue.Node, prerequisites []string, ingredients ...string) *CatalogueBuilder {
	all := append(append([]string{}, prerequisites...), ingredients...)
	b.Item(id, category, depth, node, all...)
	item := b.items[len(b.items)-1]
	for _, p := range prerequisites {
		item.Prerequisites = append(item.Prerequisites, catalogue.ItemID(p))
	}
	return b
}

// Build creates the catalogue
func (b *CatalogueBuilder) Build() (*catalogue.Catalogue, error) {
	return catalogue.New(b.items, b.taxonomy)
}

// ParseIngredient parses "Item:Amount" or a bare item id
func ParseIngredient(entry string) catalogue.Ingredient {
	id, amount, found := strings.Cut(strings.TrimSpace(entry), ":")
	n := 1
	if found {
		if parsed, err := strconv.Atoi(strings.TrimSpace(amount)); err == nil {
			n = parsed
		}
	}
	return catalogue.Ingredient{Item: catalogue.ItemID(strings.TrimSpace(id)), Amount: n}
}
