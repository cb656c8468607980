package result

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// RandomizedRecipe is the randomised crafting data of one item
type RandomizedRecipe struct {
	Item          catalogue.ItemID
	Ingredients   []catalogue.Ingredient
	Category      catalogue.Category
	Node          catalogue.Node
	Prerequisites []catalogue.ItemID
	CraftAmount   int
	LinkedItems   []catalogue.ItemID
}

// NewRandomizedRecipe starts a randomised recipe as a copy of the item's
// vanilla recipe.
func NewRandomizedRecipe(item *catalogue.Item) RandomizedRecipe {
	return RandomizedRecipe{
		Item:          item.ID,
		Ingredients:   cloneIngredients(item.Recipe.Ingredients),
		Category:      item.Category,
		Node:          item.Node,
		Prerequisites: cloneIDs(item.Prerequisites),
		CraftAmount:   item.Recipe.CraftAmount,
		LinkedItems:   cloneIDs(item.Recipe.LinkedItems),
	}
}

// NonPrerequisiteIngredients returns the ingredients that are not upgrade slots.
func (r RandomizedRecipe) NonPrerequisiteIngredients() []catalogue.Ingredient {
	if len(r.Ingredients) <= len(r.Prerequisites) {
		return nil
	}
	return r.Ingredients[len(r.Prerequisites):]
}

// Result is the outcome of one randomisation pass.
//
// A Result is created empty, populated by the pass, frozen, then encoded.
// Each item's recipe may be recorded once. Once frozen every mutation fails.
type Result struct {
	Version     int
	Seed        int64
	SpawnChoice string

	recipes    map[catalogue.ItemID]RandomizedRecipe
	databoxes  []databox.Databox
	startPoint *shared.Vector
	frozen     bool
}

// New creates an empty result for a pass with the given seed.
func New(seed int64, spawnChoice string) *Result {
	return &Result{
		Version:     CurrentVersion,
		Seed:        seed,
		SpawnChoice: spawnChoice,
		recipes:     make(map[catalogue.ItemID]RandomizedRecipe),
	}
}

// Put records the randomised recipe of an item.
func (r *Result) Put(recipe RandomizedRecipe) error {
	if r.frozen {
		return ErrFrozen
	}
	if _, exists := r.recipes[recipe.Item]; exists {
		return fmt.Errorf("recipe for %s already randomised", recipe.Item)
	}
	r.recipes[recipe.Item] = recipe
	return nil
}

// Remove reverts an item to its vanilla recipe by dropping its entry.
func (r *Result) Remove(id catalogue.ItemID) error {
	if r.frozen {
		return ErrFrozen
	}
	delete(r.recipes, id)
	return nil
}

// Recipe returns the randomised recipe of an item, if any
func (r *Result) Recipe(id catalogue.ItemID) (RandomizedRecipe, bool) {
	recipe, ok := r.recipes[id]
	return recipe, ok
}

// Has reports whether the item has been randomised.
func (r *Result) Has(id catalogue.ItemID) bool {
	_, ok := r.recipes[id]
	return ok
}

// Len returns the number of randomised recipes.
func (r *Result) Len() int {
	return len(r.recipes)
}

// Recipes returns every randomised recipe sorted by item id.
func (r *Result) Recipes() []RandomizedRecipe {
	out := make([]RandomizedRecipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, recipe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}

// SetDataboxes records the shuffled databox placements.
func (r *Result) SetDataboxes(boxes []databox.Databox) error {
	if r.frozen {
		return ErrFrozen
	}
	r.databoxes = boxes
	return nil
}

// Databoxes returns the databox placements in location order.
func (r *Result) Databoxes() []databox.Databox {
	return r.databoxes
}

// SetStartPoint records the chosen spawn position. Nil keeps the vanilla start.
func (r *Result) SetStartPoint(point *shared.Vector) error {
	if r.frozen {
		return ErrFrozen
	}
	r.startPoint = point
	return nil
}

// StartPoint returns the chosen spawn position, nil for vanilla.
func (r *Result) StartPoint() *shared.Vector {
	return r.startPoint
}

// Freeze makes the result read-only.
func (r *Result) Freeze() {
	r.frozen = true
}

// Frozen reports whether the result is read-only
func (r *Result) Frozen() bool {
	return r.frozen
}

func cloneIngredients(in []catalogue.Ingredient) []catalogue.Ingredient {
	if len(in) == 0 {
		return nil
	}
	out := make([]catalogue.Ingredient, len(in))
	copy(out, in)
	return out
}

func cloneIDs(in []catalogue.ItemID) []catalogue.ItemID {
	if len(in) == 0 {
		return nil
	}
	out := make([]catalogue.ItemID, len(in))
	copy(out, in)
	return out
}
