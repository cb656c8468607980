package progression

import (
	"context"
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/logic"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// DefaultMaxIterations caps the admission loop of a single checkpoint.
const DefaultMaxIterations = 64

// DriverConfig tunes the progression driver.
type DriverConfig struct {
	Checkpoints   []Checkpoint
	MaxIterations int
}

// Driver runs randomisation passes over a catalogue.
//
// A pass is single-threaded and deterministic for a seed. RNG draws happen in
// this order: out-of-loop modules in registration order, then every entity
// draw by checkpoint, catalogue order and ingredient slot.
type Driver struct {
	catalogue     *catalogue.Catalogue
	checkpoints   []Checkpoint
	maxIterations int
	modules       []Module
	listeners     []logic.EnterLogicListener
}

// NewDriver creates a driver. Zero config values select the defaults.
func NewDriver(cat *catalogue.Catalogue, cfg DriverConfig, modules ...Module) *Driver {
	checkpoints := cfg.Checkpoints
	if len(checkpoints) == 0 {
		checkpoints = DefaultCheckpoints()
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	return &Driver{
		catalogue:     cat,
		checkpoints:   checkpoints,
		maxIterations: maxIterations,
		modules:       modules,
	}
}

// OnEnterLogic registers a listener attached to the tracker of every pass.
func (d *Driver) OnEnterLogic(listener logic.EnterLogicListener) {
	if listener != nil {
		d.listeners = append(d.listeners, listener)
	}
}

// Run executes one pass. The returned result is frozen.
//
// An empty or missing catalogue aborts with a *shared.DataLoadError and no
// result. A module error aborts the pass the same way.
func (d *Driver) Run(ctx context.Context, seed int64, spawnChoice string) (*result.Result, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if d.catalogue == nil || d.catalogue.Len() == 0 {
		return nil, nil, shared.NewDataLoadError("catalogue", "catalogue is empty", nil)
	}

	logger := common.LoggerFromContext(ctx)
	pass := &Pass{
		Catalogue: d.catalogue,
		Tracker:   logic.NewTracker(d.catalogue),
		RNG:       shared.NewRNG(seed),
		Result:    result.New(seed, spawnChoice),
		Report:    &Report{Seed: seed},

		admittedAt:   make(map[catalogue.ItemID]int),
		randomisedAt: make(map[catalogue.ItemID]int),
	}

	var chained []*catalogue.Item
	pass.Tracker.OnEnterLogic(func(item *catalogue.Item) {
		pass.admittedAt[item.ID] = pass.stage
		chained = append(chained, item)
	})
	for _, listener := range d.listeners {
		pass.Tracker.OnEnterLogic(listener)
	}

	claims := d.claims()

	for _, m := range d.modules {
		if err := m.RandomiseOutOfLoop(ctx, pass); err != nil {
			return nil, nil, fmt.Errorf("module %s failed: %w", m.Name(), err)
		}
	}

	natural := d.catalogue.Taxonomy().Natural()
	legal := legalCraftables(d.checkpoints, d.catalogue.Taxonomy())
	attempted := make(map[catalogue.ItemID]bool)

	for i, checkpoint := range d.checkpoints {
		pass.checkpoint = checkpoint
		pass.stage = i
		summary := CheckpointReport{Name: checkpoint.Name, MaxDepth: checkpoint.MaxDepth}
		sizeBefore := pass.Tracker.Size()
		randomisedBefore := pass.Result.Len()

		for {
			if summary.Iterations >= d.maxIterations {
				summary.CapReached = true
				logger.Log(common.LevelWarning, "Checkpoint iteration cap reached", map[string]interface{}{
					"checkpoint": checkpoint.Name,
					"iterations": summary.Iterations,
				})
				break
			}
			summary.Iterations++

			added := pass.Tracker.AdmitByFilter(natural, checkpoint.MaxDepth)
			if pass.Tracker.AdmitWhereSatisfied(legal[i], checkpoint.MaxDepth) {
				added = true
			}
			for len(chained) > 0 {
				entered := chained[0]
				chained = chained[1:]
				if pass.Tracker.AdmitByPrerequisite(legal[i], checkpoint.MaxDepth, entered.ID, false) {
					added = true
				}
			}

			if err := d.randomiseAdmitted(ctx, pass, claims, attempted); err != nil {
				return nil, nil, err
			}

			if !added {
				break
			}
		}

		summary.Admitted = pass.Tracker.Size() - sizeBefore
		summary.Randomised = pass.Result.Len() - randomisedBefore
		pass.Report.Checkpoints = append(pass.Report.Checkpoints, summary)

		logger.Log(common.LevelInfo, "Checkpoint complete", map[string]interface{}{
			"checkpoint": checkpoint.Name,
			"iterations": summary.Iterations,
			"admitted":   summary.Admitted,
			"randomised": summary.Randomised,
			"reachable":  pass.Tracker.Size(),
		})
	}

	reverted, err := d.validate(pass)
	if err != nil {
		return nil, nil, err
	}
	d.collectUnintegrated(pass, claims, reverted)

	pass.Report.Admitted = pass.Tracker.Size()
	pass.Report.Randomised = pass.Result.Len()
	pass.Result.Freeze()

	logger.Log(common.LevelInfo, "Randomisation pass complete", map[string]interface{}{
		"seed":         seed,
		"randomised":   pass.Report.Randomised,
		"unintegrated": len(pass.Report.Unintegrated),
		"warnings":     len(pass.Report.Warnings),
	})

	return pass.Result, pass.Report, nil
}

// claims maps each category to the first registered module claiming it.
func (d *Driver) claims() map[catalogue.Category]Module {
	out := make(map[catalogue.Category]Module)
	for _, m := range d.modules {
		for _, category := range m.Claims() {
			if _, taken := out[category]; !taken {
				out[category] = m
			}
		}
	}
	return out
}

// randomiseAdmitted hands every admitted craftable not yet attempted to the
// module claiming its category, in catalogue order.
func (d *Driver) randomiseAdmitted(ctx context.Context, pass *Pass, claims map[catalogue.Category]Module, attempted map[catalogue.ItemID]bool) error {
	for _, item := range pass.Tracker.AllCraftable() {
		if attempted[item.ID] || !pass.Tracker.Contains(item.ID) {
			continue
		}
		m, ok := claims[item.Category]
		if !ok {
			continue
		}
		attempted[item.ID] = true

		recorded, err := m.RandomiseEntity(ctx, pass, item)
		if err != nil {
			return fmt.Errorf("module %s failed on %s: %w", m.Name(), item.ID, err)
		}
		if recorded {
			pass.randomisedAt[item.ID] = pass.stage
		}
	}
	return nil
}

func (d *Driver) collectUnintegrated(pass *Pass, claims map[catalogue.Category]Module, reverted map[catalogue.ItemID]UnintegratedItem) {
	for _, item := range pass.Tracker.AllCraftable() {
		if _, ok := claims[item.Category]; !ok || pass.Result.Has(item.ID) {
			continue
		}

		entry, wasReverted := reverted[item.ID]
		switch {
		case wasReverted:
		case !pass.Tracker.Contains(item.ID):
			entry = UnintegratedItem{Item: item.ID, Reason: ReasonNeverAdmitted}
		default:
			entry = UnintegratedItem{Item: item.ID, Reason: ReasonNotRandomised}
		}
		pass.Report.Unintegrated = append(pass.Report.Unintegrated, entry)
	}
}
