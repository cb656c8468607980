package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/logic"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

// Module is one randomisation feature plugged into the driver.
//
// RandomiseOutOfLoop runs once before the first checkpoint, in module
// registration order. RandomiseEntity is called for every admitted item whose
// category the module claims and reports whether it recorded anything.
type Module interface {
	Name() string
	Claims() []catalogue.Category
	RandomiseOutOfLoop(ctx context.Context, pass *Pass) error
	RandomiseEntity(ctx context.Context, pass *Pass, item *catalogue.Item) (bool, error)
}

// Pass is the state of one randomisation pass, exclusively owned by it.
type Pass struct {
	Catalogue *catalogue.Catalogue
	Tracker   *logic.Tracker
	RNG       *shared.RNG
	Result    *result.Result
	Report    *Report

	checkpoint Checkpoint
	stage      int

	// checkpoint index at which each item entered logic, and at which each
	// craftable was handed to its module
	admittedAt   map[catalogue.ItemID]int
	randomisedAt map[catalogue.ItemID]int
}

// Checkpoint returns the checkpoint being processed.
func (p *Pass) Checkpoint() Checkpoint {
	return p.checkpoint
}

// reachableBy reports whether id was in logic no later than the checkpoint at
// which owner was randomised.
func (p *Pass) reachableBy(id, owner catalogue.ItemID) bool {
	admitted, ok := p.admittedAt[id]
	if !ok {
		return false
	}
	randomised, ok := p.randomisedAt[owner]
	return !ok || admitted <= randomised
}

// RecipeModule randomises the ingredients of craftable items.
type RecipeModule struct {
	claims      []catalogue.Category
	substitutor *logic.Substitutor
}

// NewRecipeModule creates the recipe module claiming every craftable category
// of the catalogue's taxonomy.
func NewRecipeModule(cat *catalogue.Catalogue, options logic.SubstitutionOptions) *RecipeModule {
	return &RecipeModule{
		claims:      cat.Taxonomy().Craftable(),
		substitutor: logic.NewSubstitutor(cat, options),
	}
}

func (m *RecipeModule) Name() string { return "recipes" }

func (m *RecipeModule) Claims() []catalogue.Category { return m.claims }

func (m *RecipeModule) RandomiseOutOfLoop(ctx context.Context, pass *Pass) error { return nil }

// RandomiseEntity substitutes the item's ingredients with reachable items no
// deeper than the current checkpoint.
func (m *RecipeModule) RandomiseEntity(ctx context.Context, pass *Pass, item *catalogue.Item) (bool, error) {
	logger := common.LoggerFromContext(ctx)

	recipe, warnings := m.substitutor.Substitute(item, pass.Tracker, pass.checkpoint.MaxDepth, pass.RNG)
	for _, w := range warnings {
		pass.Report.Warn(w)
		logger.Log(common.LevelDebug, "Ingredient kept", map[string]interface{}{
			"item":       string(w.Item),
			"slot":       w.Slot,
			"ingredient": string(w.Ingredient),
			"reason":     w.Reason,
		})
	}

	if err := pass.Result.Put(recipe); err != nil {
		return false, fmt.Errorf("failed to record recipe of %s: %w", item.ID, err)
	}

	for slot, ingredient := range recipe.Ingredients {
		if ingredient.Item != item.Recipe.Ingredients[slot].Item {
			pass.Report.Substitutions++
		}
	}
	return true, nil
}

// SpawnModule picks the randomised start point.
type SpawnModule struct {
	selector *spawn.Selector
	choice   string
}

// NewSpawnModule creates the spawn module for the configured spawn choice
func NewSpawnModule(selector *spawn.Selector, choice string) *SpawnModule {
	return &SpawnModule{selector: selector, choice: choice}
}

func (m *SpawnModule) Name() string { return "spawn" }

func (m *SpawnModule) Claims() []catalogue.Category { return nil }

// RandomiseOutOfLoop selects the start point. An unknown biome is a warning:
// the fallback coordinate is recorded instead.
func (m *SpawnModule) RandomiseOutOfLoop(ctx context.Context, pass *Pass) error {
	point, err := m.selector.Select(m.choice, pass.RNG)
	if err != nil {
		var unknown *spawn.UnknownBiome
		if !errors.As(err, &unknown) {
			return fmt.Errorf("failed to select start point: %w", err)
		}
		pass.Report.Warn(err)
		common.LoggerFromContext(ctx).Log(common.LevelWarning, "Unknown spawn biome, using fallback", map[string]interface{}{
			"choice":     unknown.Choice,
			"suggestion": unknown.Suggestion,
		})
	}
	return pass.Result.SetStartPoint(point)
}

func (m *SpawnModule) RandomiseEntity(ctx context.Context, pass *Pass, item *catalogue.Item) (bool, error) {
	return false, nil
}

// DataboxModule shuffles blueprint databoxes across their locations.
type DataboxModule struct {
	boxes []databox.Databox
}

// NewDataboxModule creates the databox module over the vanilla placements
func NewDataboxModule(boxes []databox.Databox) *DataboxModule {
	return &DataboxModule{boxes: boxes}
}

func (m *DataboxModule) Name() string { return "databoxes" }

func (m *DataboxModule) Claims() []catalogue.Category { return nil }

func (m *DataboxModule) RandomiseOutOfLoop(ctx context.Context, pass *Pass) error {
	if len(m.boxes) == 0 {
		return nil
	}

	shuffled, unresolved := databox.Shuffle(m.boxes, pass.RNG)
	for _, box := range unresolved {
		pass.Report.Warn(fmt.Errorf("databox at %s holds %s behind its own tool requirement", box.Coordinates, box.Item))
	}
	return pass.Result.SetDataboxes(shuffled)
}

func (m *DataboxModule) RandomiseEntity(ctx context.Context, pass *Pass, item *catalogue.Item) (bool, error) {
	return false, nil
}
