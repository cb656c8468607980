package logic

import (
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// ReachableSet answers membership queries against the items currently in logic.
type ReachableSet interface {
	Contains(id catalogue.ItemID) bool
}

// SubstitutionOptions widens the pool of raw material replacements
type SubstitutionOptions struct {
	UseFish  bool
	UseSeeds bool
}

// Substitutor rewrites recipes by swapping each ingredient for a random item
// of the same category that does not sit later in progression than the item
// being crafted.
type Substitutor struct {
	catalogue *catalogue.Catalogue
	options   SubstitutionOptions
}

// NewSubstitutor creates a substitution engine over the catalogue
func NewSubstitutor(cat *catalogue.Catalogue, options SubstitutionOptions) *Substitutor {
	return &Substitutor{catalogue: cat, options: options}
}

// Substitute produces the randomised recipe of item.
//
// Per ingredient slot:
//  1. upgrade slots (one per prerequisite, at the front) are copied as-is;
//  2. the candidate categories are the original ingredient's category, widened
//     with Fish and/or Seeds for raw materials when enabled;
//  3. candidates must have node <= item's node, depth <= depthLimit, be in
//     reachable (when non-nil), and must not be the item itself;
//  4. one candidate is drawn uniformly; with none the original ingredient stays
//     and a NoCandidateFound warning is returned.
//
// Amounts, craft amount and linked items are never changed.
func (s *Substitutor) Substitute(
	item *catalogue.Item,
	reachable ReachableSet,
	depthLimit int,
	rng *shared.RNG,
) (result.RandomizedRecipe, []*NoCandidateFound) {
	recipe := result.NewRandomizedRecipe(item)
	var warnings []*NoCandidateFound

	for slot, ingredient := range item.Recipe.Ingredients {
		if item.IsUpgradeSlot(slot) {
			continue
		}

		original, known := s.catalogue.Get(ingredient.Item)
		if !known {
			warnings = append(warnings, &NoCandidateFound{
				Item:       item.ID,
				Slot:       slot,
				Ingredient: ingredient.Item,
				Reason:     "ingredient is not in the catalogue",
			})
			continue
		}

		candidates := s.candidates(item, original.Category, reachable, depthLimit)
		if len(candidates) == 0 {
			warnings = append(warnings, &NoCandidateFound{
				Item:       item.ID,
				Slot:       slot,
				Ingredient: ingredient.Item,
				Reason:     "no reachable item of a matching category",
			})
			continue
		}

		pick := candidates[rng.Intn(len(candidates))]
		recipe.Ingredients[slot].Item = pick.ID
	}

	return recipe, warnings
}

// CandidateCategories returns the categories an ingredient of the given
// category may be replaced with, in draw order.
func (s *Substitutor) CandidateCategories(category catalogue.Category) []catalogue.Category {
	categories := []catalogue.Category{category}
	if category != catalogue.CategoryRawMaterials {
		return categories
	}
	if s.options.UseFish {
		categories = append(categories, catalogue.CategoryFish)
	}
	if s.options.UseSeeds {
		categories = append(categories, catalogue.CategorySeeds)
	}
	return categories
}

func (s *Substitutor) candidates(
	owner *catalogue.Item,
	category catalogue.Category,
	reachable ReachableSet,
	depthLimit int,
) []*catalogue.Item {
	out := make([]*catalogue.Item, 0)
	for _, c := range s.CandidateCategories(category) {
		for _, candidate := range s.catalogue.ByCategory(c) {
			if candidate.ID == owner.ID || candidate.Node > owner.Node || candidate.Depth > depthLimit {
				continue
			}
			if reachable != nil && !reachable.Contains(candidate.ID) {
				continue
			}
			out = append(out, candidate)
		}
	}
	return out
}
