package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/andrescamacho/recipe-randomiser/internal/adapters/persistence"
	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/application/randomiser"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/database"
	"github.com/andrescamacho/recipe-randomiser/test/helpers"
)

var passTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var unintegratedReasons = map[string]string{
	"never admitted":         progression.ReasonNeverAdmitted,
	"not randomised":         progression.ReasonNotRandomised,
	"unreachable ingredient": progression.ReasonUnreachableIngredient,
	"cycle":                  progression.ReasonCycle,
}

type randomiserContext struct {
	builder      *helpers.CatalogueBuilder
	hasCatalogue bool
	regions      spawn.Regions
	databoxes    []databox.Databox
	checkpoints  []progression.Checkpoint
	spawnChoice  string
	useFish      bool

	db       *gorm.DB
	repo     *persistence.GormArtifactRepository
	mediator common.Mediator

	passes   []*randomiser.RandomiseResponse
	restored *randomiser.RestoreResponse
	err      error
}

func (rc *randomiserContext) reset() {
	if rc.db != nil {
		_ = database.Close(rc.db)
	}
	rc.builder = helpers.NewCatalogueBuilder()
	rc.hasCatalogue = false
	rc.regions = spawn.Regions{}
	rc.databoxes = nil
	rc.checkpoints = nil
	rc.spawnChoice = "Vanilla"
	rc.useFish = false
	rc.db = nil
	rc.repo = nil
	rc.mediator = nil
	rc.passes = nil
	rc.restored = nil
	rc.err = nil
}

// ensureMediator builds the catalogue and wires the mediator against an
// in-memory artifact store. It runs once per scenario.
func (rc *randomiserContext) ensureMediator() error {
	if rc.mediator != nil {
		return nil
	}
	if err := rc.ensureStore(); err != nil {
		return err
	}

	source := &helpers.StaticSource{
		Databoxes: rc.databoxes,
		Regions:   rc.regions,
	}
	if rc.hasCatalogue {
		cat, err := rc.builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build catalogue: %w", err)
		}
		source.Catalogue = cat
	}

	m, err := randomiser.NewMediator(source, rc.repo, nil, shared.NewMockClock(passTime))
	if err != nil {
		return err
	}
	rc.mediator = m
	return nil
}

func (rc *randomiserContext) ensureStore() error {
	if rc.repo != nil {
		return nil
	}
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open artifact store: %w", err)
	}
	rc.db = db
	rc.repo = persistence.NewGormArtifactRepository(db)
	return nil
}

func (rc *randomiserContext) command(seed int64) randomiser.RandomiseCommand {
	return randomiser.RandomiseCommand{
		Seed:             seed,
		SpawnChoice:      rc.spawnChoice,
		UseFish:          rc.useFish,
		ShuffleDataboxes: len(rc.databoxes) > 0,
		Checkpoints:      rc.checkpoints,
		Persist:          true,
	}
}

func (rc *randomiserContext) lastResult() (*result.Result, error) {
	if rc.restored != nil {
		return rc.restored.Result, nil
	}
	if len(rc.passes) == 0 {
		if rc.err != nil {
			return nil, fmt.Errorf("no result, pass failed: %w", rc.err)
		}
		return nil, fmt.Errorf("no pass has run")
	}
	return rc.passes[len(rc.passes)-1].Result, nil
}

func (rc *randomiserContext) lastReport() (*progression.Report, error) {
	if rc.restored != nil && rc.restored.Report != nil {
		return rc.restored.Report, nil
	}
	if len(rc.passes) == 0 {
		return nil, fmt.Errorf("no pass has run")
	}
	return rc.passes[len(rc.passes)-1].Report, nil
}

// columns maps header names of a table to their cell index
func columns(table *godog.Table) map[string]int {
	index := make(map[string]int)
	if len(table.Rows) == 0 {
		return index
	}
	for i, c := range table.Rows[0].Cells {
		index[strings.TrimSpace(c.Value)] = i
	}
	return index
}

func cell(table *godog.Table, row int, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(table.Rows[row].Cells) {
		return ""
	}
	return strings.TrimSpace(table.Rows[row].Cells[i].Value)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Given steps

func (rc *randomiserContext) aCatalogueWithItems(table *godog.Table) error {
	index := columns(table)
	for i := range table.Rows {
		if i == 0 {
			continue
		}
		depth, err := strconv.Atoi(cell(table, i, index, "depth"))
		if err != nil {
			return fmt.Errorf("row %d: invalid depth: %w", i, err)
		}
		node, err := strconv.Atoi(cell(table, i, index, "node"))
		if err != nil {
			return fmt.Errorf("row %d: invalid node: %w", i, err)
		}
		id := cell(table, i, index, "item")
		category := catalogue.Category(cell(table, i, index, "category"))
		ingredients := splitList(cell(table, i, index, "ingredients"))
		prerequisites := splitList(cell(table, i, index, "prerequisites"))

		if len(prerequisites) > 0 {
			rc.builder.Upgrade(id, category, depth, catalogue.Node(node), prerequisites, ingredients...)
		} else {
			rc.builder.Item(id, category, depth, catalogue.Node(node), ingredients...)
		}
	}
	rc.hasCatalogue = true
	return nil
}

func (rc *randomiserContext) anEmptyCatalogue() error {
	rc.hasCatalogue = false
	return nil
}

func (rc *randomiserContext) theSpawnRegions(table *godog.Table) error {
	index := columns(table)
	for i := range table.Rows {
		if i == 0 {
			continue
		}
		var bounds [4]int
		for j, name := range []string{"min_x", "max_x", "min_z", "max_z"} {
			n, err := strconv.Atoi(cell(table, i, index, name))
			if err != nil {
				return fmt.Errorf("row %d: invalid %s: %w", i, name, err)
			}
			bounds[j] = n
		}
		y, err := strconv.ParseFloat(cell(table, i, index, "y"), 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid y: %w", i, err)
		}
		biome := spawn.Biome(cell(table, i, index, "biome"))
		rc.regions[biome] = append(rc.regions[biome], spawn.Region{
			MinX:     bounds[0],
			MaxX:     bounds[1],
			MinZ:     bounds[2],
			MaxZ:     bounds[3],
			SurfaceY: y,
		})
	}
	return nil
}

func (rc *randomiserContext) theDataboxes(table *godog.Table) error {
	index := columns(table)
	for i := range table.Rows {
		if i == 0 {
			continue
		}
		var coords [3]float64
		for j, name := range []string{"x", "y", "z"} {
			f, err := strconv.ParseFloat(cell(table, i, index, name), 64)
			if err != nil {
				return fmt.Errorf("row %d: invalid %s: %w", i, name, err)
			}
			coords[j] = f
		}
		box := databox.Databox{
			Item:        catalogue.ItemID(cell(table, i, index, "item")),
			Coordinates: shared.NewVector(coords[0], coords[1], coords[2]),
		}
		for _, tool := range splitList(cell(table, i, index, "tools")) {
			box.Tools = append(box.Tools, catalogue.ItemID(tool))
		}
		rc.databoxes = append(rc.databoxes, box)
	}
	return nil
}

func (rc *randomiserContext) theCheckpoints(table *godog.Table) error {
	index := columns(table)
	for i := range table.Rows {
		if i == 0 {
			continue
		}
		maxDepth := progression.Unbounded
		if raw := cell(table, i, index, "max_depth"); !strings.EqualFold(raw, "unbounded") {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("row %d: invalid max_depth: %w", i, err)
			}
			maxDepth = n
		}
		rc.checkpoints = append(rc.checkpoints, progression.Checkpoint{
			Name:     cell(table, i, index, "name"),
			MaxDepth: maxDepth,
		})
	}
	return nil
}

func (rc *randomiserContext) theSpawnChoiceIs(choice string) error {
	rc.spawnChoice = choice
	return nil
}

func (rc *randomiserContext) fishMayBeUsedAsIngredients() error {
	rc.useFish = true
	return nil
}

func (rc *randomiserContext) aStoredArtifactWithFormatVersion(version int) error {
	if err := rc.ensureStore(); err != nil {
		return err
	}
	stored := result.New(3, "Vanilla")
	stored.Version = version
	stored.Freeze()
	encoded, err := result.Encode(stored)
	if err != nil {
		return err
	}
	return rc.repo.Save(context.Background(), &result.Artifact{
		ID:          fmt.Sprintf("seed-3-v%d", version),
		Seed:        3,
		SpawnChoice: "Vanilla",
		Version:     version,
		Encoded:     encoded,
		CreatedAt:   passTime.Add(-24 * time.Hour),
	})
}

// When steps

func (rc *randomiserContext) iRandomiseWithSeed(seed int64) error {
	if err := rc.ensureMediator(); err != nil {
		return err
	}
	cmd := rc.command(seed)
	resp, err := rc.mediator.Send(context.Background(), &cmd)
	if err != nil {
		rc.err = err
		return nil
	}
	rc.passes = append(rc.passes, resp.(*randomiser.RandomiseResponse))
	return nil
}

func (rc *randomiserContext) iRestoreTheLatestArtifact() error {
	if err := rc.ensureMediator(); err != nil {
		return err
	}
	resp, err := rc.mediator.Send(context.Background(), &randomiser.RestoreCommand{
		Randomise: rc.command(77),
	})
	if err != nil {
		rc.err = err
		return nil
	}
	rc.restored = resp.(*randomiser.RestoreResponse)
	return nil
}

// Then steps

func (rc *randomiserContext) thePassShouldSucceed() error {
	if rc.err != nil {
		return fmt.Errorf("expected success, got: %w", rc.err)
	}
	return nil
}

func (rc *randomiserContext) thePassShouldFailWithADataLoadError() error {
	var loadErr *shared.DataLoadError
	if !errors.As(rc.err, &loadErr) {
		return fmt.Errorf("expected a data load error, got: %v", rc.err)
	}
	return nil
}

func (rc *randomiserContext) shouldHaveARandomisedRecipe(item string) error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	if !res.Has(catalogue.ItemID(item)) {
		return fmt.Errorf("expected %s to have a randomised recipe", item)
	}
	return nil
}

func (rc *randomiserContext) shouldKeepItsVanillaRecipe(item string) error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	if res.Has(catalogue.ItemID(item)) {
		return fmt.Errorf("expected %s to keep its vanilla recipe", item)
	}
	return nil
}

func (rc *randomiserContext) everyIngredientShouldBeOneOf(item, allowed string) error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	recipe, ok := res.Recipe(catalogue.ItemID(item))
	if !ok {
		return fmt.Errorf("%s has no randomised recipe", item)
	}
	legal := make(map[catalogue.ItemID]bool)
	for _, id := range splitList(allowed) {
		legal[catalogue.ItemID(id)] = true
	}
	for _, ingredient := range recipe.Ingredients {
		if !legal[ingredient.Item] {
			return fmt.Errorf("%s uses %s, expected one of %s", item, ingredient.Item, allowed)
		}
	}
	return nil
}

func (rc *randomiserContext) shouldBeReportedAsUnintegrated(item, reason string) error {
	report, err := rc.lastReport()
	if err != nil {
		return err
	}
	want, ok := unintegratedReasons[reason]
	if !ok {
		return fmt.Errorf("unknown reason %q", reason)
	}
	for _, u := range report.Unintegrated {
		if u.Item == catalogue.ItemID(item) {
			if u.Reason != want {
				return fmt.Errorf("%s unintegrated with %q, expected %q", item, u.Reason, want)
			}
			return nil
		}
	}
	return fmt.Errorf("%s was not reported as unintegrated", item)
}

func (rc *randomiserContext) nothingShouldBeUnintegrated() error {
	report, err := rc.lastReport()
	if err != nil {
		return err
	}
	if len(report.Unintegrated) > 0 {
		return fmt.Errorf("expected no unintegrated items, got %d", len(report.Unintegrated))
	}
	return nil
}

func (rc *randomiserContext) theStartPointShouldBe(x, y, z float64) error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	point := res.StartPoint()
	if point == nil {
		return fmt.Errorf("expected start point (%g, %g, %g), got none", x, y, z)
	}
	if !point.Equals(shared.NewVector(x, y, z)) {
		return fmt.Errorf("expected start point (%g, %g, %g), got %v", x, y, z, *point)
	}
	return nil
}

func (rc *randomiserContext) theStartPointShouldBeInside(biome string) error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	point := res.StartPoint()
	if point == nil {
		return fmt.Errorf("expected a start point inside %s, got none", biome)
	}
	for _, region := range rc.regions[spawn.Biome(biome)] {
		if point.X >= float64(region.MinX) && point.X <= float64(region.MaxX) &&
			point.Z >= float64(region.MinZ) && point.Z <= float64(region.MaxZ) &&
			point.Y == region.SurfaceY {
			return nil
		}
	}
	return fmt.Errorf("start point %v lies outside %s", *point, biome)
}

func (rc *randomiserContext) thereShouldBeNoStartPoint() error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	if res.StartPoint() != nil {
		return fmt.Errorf("expected no start point, got %v", *res.StartPoint())
	}
	return nil
}

func (rc *randomiserContext) theReportShouldWarnAboutAnUnknownBiome() error {
	report, err := rc.lastReport()
	if err != nil {
		return err
	}
	var unknown *spawn.UnknownBiome
	for _, w := range report.Warnings {
		if errors.As(w, &unknown) {
			return nil
		}
	}
	return fmt.Errorf("expected an unknown biome warning, got %v", report.Warnings)
}

func (rc *randomiserContext) noDataboxShouldHoldTheBlueprintOfItsOwnTool() error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	if len(res.Databoxes()) != len(rc.databoxes) {
		return fmt.Errorf("expected %d databoxes, got %d", len(rc.databoxes), len(res.Databoxes()))
	}
	for _, box := range res.Databoxes() {
		if box.SelfLocked() {
			return fmt.Errorf("databox at %v holds %s which it needs to open", box.Coordinates, box.Item)
		}
	}
	return nil
}

func (rc *randomiserContext) bothPassesShouldProduceTheSameArtifact() error {
	if len(rc.passes) < 2 {
		return fmt.Errorf("expected two passes, got %d", len(rc.passes))
	}
	first, second := rc.passes[len(rc.passes)-2], rc.passes[len(rc.passes)-1]
	if first.Encoded != second.Encoded {
		return fmt.Errorf("artifacts differ")
	}
	if first.ArtifactID == second.ArtifactID {
		return fmt.Errorf("expected each pass to be stored under its own id")
	}
	return nil
}

func (rc *randomiserContext) theStoredResultShouldBeRestored() error {
	if rc.err != nil {
		return rc.err
	}
	if rc.restored == nil || !rc.restored.Restored {
		return fmt.Errorf("expected the stored result to be restored")
	}
	return nil
}

func (rc *randomiserContext) theRestoredResultShouldHaveSeed(seed int64) error {
	res, err := rc.lastResult()
	if err != nil {
		return err
	}
	if res.Seed != seed {
		return fmt.Errorf("expected seed %d, got %d", seed, res.Seed)
	}
	return nil
}

func (rc *randomiserContext) aFreshPassShouldRunBecauseOfAVersionMismatch() error {
	if err := rc.expectFallback(); err != nil {
		return err
	}
	var mismatch *result.VersionMismatchError
	if !errors.As(rc.restored.FallbackReason, &mismatch) {
		return fmt.Errorf("expected a version mismatch, got %v", rc.restored.FallbackReason)
	}
	if mismatch.Expected != result.CurrentVersion {
		return fmt.Errorf("expected version %d in mismatch, got %d", result.CurrentVersion, mismatch.Expected)
	}
	return nil
}

func (rc *randomiserContext) aFreshPassShouldRunBecauseNoArtifactWasStored() error {
	if err := rc.expectFallback(); err != nil {
		return err
	}
	if !errors.Is(rc.restored.FallbackReason, randomiser.ErrNoArtifact) {
		return fmt.Errorf("expected no stored artifact, got %v", rc.restored.FallbackReason)
	}
	return nil
}

func (rc *randomiserContext) expectFallback() error {
	if rc.err != nil {
		return rc.err
	}
	if rc.restored == nil {
		return fmt.Errorf("restore did not run")
	}
	if rc.restored.Restored {
		return fmt.Errorf("expected a fresh pass, the stored result was restored")
	}
	return nil
}

func (rc *randomiserContext) artifactsShouldBeStored(count int) error {
	if err := rc.ensureStore(); err != nil {
		return err
	}
	artifacts, err := rc.repo.List(context.Background(), 0)
	if err != nil {
		return err
	}
	if len(artifacts) != count {
		return fmt.Errorf("expected %d stored artifacts, got %d", count, len(artifacts))
	}
	return nil
}

// InitializeRandomiserScenario registers the randomiser step definitions
func InitializeRandomiserScenario(ctx *godog.ScenarioContext) {
	rc := &randomiserContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	// Game data
	ctx.Step(`^a catalogue with items:$`, rc.aCatalogueWithItems)
	ctx.Step(`^an empty catalogue$`, rc.anEmptyCatalogue)
	ctx.Step(`^the spawn regions:$`, rc.theSpawnRegions)
	ctx.Step(`^the databoxes:$`, rc.theDataboxes)
	ctx.Step(`^the checkpoints:$`, rc.theCheckpoints)
	ctx.Step(`^the spawn choice is "([^"]*)"$`, rc.theSpawnChoiceIs)
	ctx.Step(`^fish may be used as ingredients$`, rc.fishMayBeUsedAsIngredients)
	ctx.Step(`^a stored artifact with format version (\d+)$`, rc.aStoredArtifactWithFormatVersion)

	// Actions
	ctx.Step(`^I randomise with seed (-?\d+)$`, rc.iRandomiseWithSeed)
	ctx.Step(`^I restore the latest artifact$`, rc.iRestoreTheLatestArtifact)

	// Pass outcome
	ctx.Step(`^the pass should succeed$`, rc.thePassShouldSucceed)
	ctx.Step(`^the pass should fail with a data load error$`, rc.thePassShouldFailWithADataLoadError)
	ctx.Step(`^"([^"]*)" should have a randomised recipe$`, rc.shouldHaveARandomisedRecipe)
	ctx.Step(`^"([^"]*)" should keep its vanilla recipe$`, rc.shouldKeepItsVanillaRecipe)
	ctx.Step(`^every ingredient of "([^"]*)" should be one of "([^"]*)"$`, rc.everyIngredientShouldBeOneOf)
	ctx.Step(`^"([^"]*)" should be reported as unintegrated because of "([^"]*)"$`, rc.shouldBeReportedAsUnintegrated)
	ctx.Step(`^nothing should be reported as unintegrated$`, rc.nothingShouldBeUnintegrated)

	// Spawn and databoxes
	ctx.Step(`^the start point should be \((-?[\d.]+), (-?[\d.]+), (-?[\d.]+)\)$`, rc.theStartPointShouldBe)
	ctx.Step(`^the start point should be inside "([^"]*)"$`, rc.theStartPointShouldBeInside)
	ctx.Step(`^there should be no start point$`, rc.thereShouldBeNoStartPoint)
	ctx.Step(`^the report should warn about an unknown biome$`, rc.theReportShouldWarnAboutAnUnknownBiome)
	ctx.Step(`^no databox should hold the blueprint of its own tool$`, rc.noDataboxShouldHoldTheBlueprintOfItsOwnTool)

	// Artifacts
	ctx.Step(`^both passes should produce the same artifact$`, rc.bothPassesShouldProduceTheSameArtifact)
	ctx.Step(`^the stored result should be restored$`, rc.theStoredResultShouldBeRestored)
	ctx.Step(`^the restored result should have seed (\d+)$`, rc.theRestoredResultShouldHaveSeed)
	ctx.Step(`^a fresh pass should run because of a version mismatch$`, rc.aFreshPassShouldRunBecauseOfAVersionMismatch)
	ctx.Step(`^a fresh pass should run because no artifact was stored$`, rc.aFreshPassShouldRunBecauseNoArtifactWasStored)
	ctx.Step(`^(\d+) artifacts? should be stored$`, rc.artifactsShouldBeStored)
}
