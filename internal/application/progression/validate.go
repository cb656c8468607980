package progression

import (
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

// validate reverts randomised recipes until every non-prerequisite ingredient
// was reachable when its owner was randomised and the recipe graph has no
// cycle. Offenders are removed one at
// a time, unreachable ingredients first, in item id order.
func (d *Driver) validate(pass *Pass) (map[catalogue.ItemID]UnintegratedItem, error) {
	reverted := make(map[catalogue.ItemID]UnintegratedItem)
	for {
		entry, found := d.findUnreachable(pass)
		if !found {
			entry, found = d.findCycle(pass)
		}
		if !found {
			return reverted, nil
		}
		if err := pass.Result.Remove(entry.Item); err != nil {
			return nil, err
		}
		reverted[entry.Item] = entry
	}
}

// findUnreachable looks for a randomised recipe with an ingredient that was not
// in logic by the checkpoint its owner was randomised at, or that sits at a
// later node than its owner. Both happen when a slot had no candidate and kept
// its vanilla ingredient.
func (d *Driver) findUnreachable(pass *Pass) (UnintegratedItem, bool) {
	for _, recipe := range pass.Result.Recipes() {
		for _, ingredient := range recipe.NonPrerequisiteIngredients() {
			used, known := d.catalogue.Get(ingredient.Item)
			if !known || !pass.reachableBy(ingredient.Item, recipe.Item) || used.Node > recipe.Node {
				return UnintegratedItem{
					Item:   recipe.Item,
					Reason: ReasonUnreachableIngredient,
					Detail: string(ingredient.Item),
				}, true
			}
		}
	}
	return UnintegratedItem{}, false
}

const (
	unvisited = iota
	visiting
	done
)

// findCycle runs a DFS over the effective recipe graph: randomised recipes
// where present, vanilla recipes otherwise. The randomised item nearest the
// closing edge of the first cycle found is the offender. Cycles made of
// vanilla recipes only are ignored since reverting cannot remove them.
func (d *Driver) findCycle(pass *Pass) (UnintegratedItem, bool) {
	state := make(map[catalogue.ItemID]int)
	var path []catalogue.ItemID
	var offender catalogue.ItemID

	edges := func(id catalogue.ItemID) []catalogue.ItemID {
		var ingredients []catalogue.Ingredient
		if recipe, ok := pass.Result.Recipe(id); ok {
			ingredients = recipe.Ingredients
		} else if item, ok := d.catalogue.Get(id); ok {
			ingredients = item.Recipe.Ingredients
		}
		out := make([]catalogue.ItemID, len(ingredients))
		for i, ingredient := range ingredients {
			out[i] = ingredient.Item
		}
		return out
	}

	var visit func(id catalogue.ItemID) bool
	visit = func(id catalogue.ItemID) bool {
		state[id] = visiting
		path = append(path, id)
		for _, next := range edges(id) {
			switch state[next] {
			case visiting:
				for i := len(path) - 1; i >= 0; i-- {
					if pass.Result.Has(path[i]) && offender == "" {
						offender = path[i]
					}
					if path[i] == next {
						break
					}
				}
				if offender != "" {
					return true
				}
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return false
	}

	for _, recipe := range pass.Result.Recipes() {
		if state[recipe.Item] != unvisited {
			continue
		}
		if visit(recipe.Item) {
			return UnintegratedItem{Item: offender, Reason: ReasonCycle}, true
		}
	}
	return UnintegratedItem{}, false
}
