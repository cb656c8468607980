package randomiser

import (
	"context"
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/logic"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
	"github.com/andrescamacho/recipe-randomiser/pkg/utils"
)

// RandomiseCommand runs a fresh randomisation pass.
// A zero Seed asks for a clock-derived seed, which is recorded in the result.
type RandomiseCommand struct {
	Seed             int64
	SpawnChoice      string
	UseFish          bool
	UseSeeds         bool
	ShuffleDataboxes bool
	Checkpoints      []progression.Checkpoint
	MaxIterations    int
	Persist          bool
}

// RandomiseResponse carries the frozen result of a pass
type RandomiseResponse struct {
	Result     *result.Result
	Report     *progression.Report
	Encoded    string
	ArtifactID string
}

// RandomiseHandler executes RandomiseCommand.
//
// Workflow:
// 1. Load catalogue, databoxes and spawn regions concurrently
// 2. Run the progression driver with the spawn, databox and recipe modules
// 3. Encode the result and, when asked, persist it as an artifact
type RandomiseHandler struct {
	source  DataSource
	repo    result.ArtifactRepository
	metrics PassMetrics
	clock   shared.Clock
}

// NewRandomiseHandler creates a new randomise handler. repo and metrics may be nil.
func NewRandomiseHandler(
	source DataSource,
	repo result.ArtifactRepository,
	metrics PassMetrics,
	clock shared.Clock,
) *RandomiseHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RandomiseHandler{
		source:  source,
		repo:    repo,
		metrics: metrics,
		clock:   clock,
	}
}

// Handle executes the randomise command
func (h *RandomiseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RandomiseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	logger := common.LoggerFromContext(ctx)

	seed := cmd.Seed
	if seed == 0 {
		seed = shared.SeedFromClock(h.clock)
		logger.Log(common.LevelInfo, "Generated seed", map[string]interface{}{
			"seed": seed,
		})
	}

	data, err := LoadGameData(ctx, h.source, cmd.ShuffleDataboxes)
	if err != nil {
		return nil, err
	}

	modules := []progression.Module{
		progression.NewSpawnModule(spawn.NewSelector(data.Regions), cmd.SpawnChoice),
	}
	if cmd.ShuffleDataboxes {
		modules = append(modules, progression.NewDataboxModule(data.Databoxes))
	}
	modules = append(modules, progression.NewRecipeModule(data.Catalogue, logic.SubstitutionOptions{
		UseFish:  cmd.UseFish,
		UseSeeds: cmd.UseSeeds,
	}))

	driver := progression.NewDriver(data.Catalogue, progression.DriverConfig{
		Checkpoints:   cmd.Checkpoints,
		MaxIterations: cmd.MaxIterations,
	}, modules...)
	if h.metrics != nil {
		driver.OnEnterLogic(h.metrics.ItemEntered)
	}

	res, report, err := driver.Run(ctx, seed, cmd.SpawnChoice)
	if err != nil {
		return nil, fmt.Errorf("randomisation pass failed: %w", err)
	}
	if h.metrics != nil {
		h.metrics.RecordPass(report)
	}

	for _, u := range report.Unintegrated {
		logger.Log(common.LevelWarning, "Could not be integrated into logic", map[string]interface{}{
			"item":   string(u.Item),
			"reason": u.Reason,
			"detail": u.Detail,
		})
	}

	encoded, err := result.Encode(res)
	if err != nil {
		return nil, err
	}

	response := &RandomiseResponse{
		Result:  res,
		Report:  report,
		Encoded: encoded,
	}

	if cmd.Persist && h.repo != nil {
		artifact := &result.Artifact{
			ID:          utils.GenerateArtifactID(seed),
			Seed:        seed,
			SpawnChoice: cmd.SpawnChoice,
			Version:     res.Version,
			Encoded:     encoded,
			CreatedAt:   h.clock.Now(),
		}
		if err := h.repo.Save(ctx, artifact); err != nil {
			return nil, fmt.Errorf("failed to save artifact: %w", err)
		}
		response.ArtifactID = artifact.ID
		logger.Log(common.LevelInfo, "Artifact saved", map[string]interface{}{
			"artifact_id": artifact.ID,
			"seed":        seed,
		})
	}

	return response, nil
}
