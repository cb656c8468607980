package randomiser_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/application/randomiser"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

type stubSource struct {
	catalogueErr error
	databoxErr   error
}

func (s *stubSource) LoadCatalogue(ctx context.Context) (*catalogue.Catalogue, error) {
	if s.catalogueErr != nil {
		return nil, s.catalogueErr
	}
	return catalogue.New([]*catalogue.Item{
		{ID: "Titanium", Category: catalogue.CategoryRawMaterials, Node: 1},
		{ID: "Quartz", Category: catalogue.CategoryRawMaterials, Node: 1},
		{ID: "Glass", Category: catalogue.CategoryBasicMaterials, Node: 1,
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{{Item: "Quartz", Amount: 2}}, CraftAmount: 1}},
		{ID: "Knife", Category: catalogue.CategoryTools, Node: 1,
			Recipe: catalogue.Recipe{Ingredients: []catalogue.Ingredient{{Item: "Titanium", Amount: 1}, {Item: "Glass", Amount: 1}}, CraftAmount: 1}},
	}, nil)
}

func (s *stubSource) LoadDataboxes(ctx context.Context) ([]databox.Databox, error) {
	if s.databoxErr != nil {
		return nil, s.databoxErr
	}
	return []databox.Databox{
		{Item: "Knife", Coordinates: shared.NewVector(1, -10, 2)},
		{Item: "Glass", Coordinates: shared.NewVector(3, -20, 4), Tools: []catalogue.ItemID{"Knife"}},
	}, nil
}

func (s *stubSource) LoadRegions(ctx context.Context) (spawn.Regions, error) {
	return spawn.Regions{"SafeShallows": {{MinX: -5, MaxX: 5, MinZ: -5, MaxZ: 5}}}, nil
}

type memoryRepo struct {
	artifacts []*result.Artifact
}

func (r *memoryRepo) Save(ctx context.Context, artifact *result.Artifact) error {
	r.artifacts = append(r.artifacts, artifact)
	return nil
}

func (r *memoryRepo) Latest(ctx context.Context) (*result.Artifact, error) {
	if len(r.artifacts) == 0 {
		return nil, nil
	}
	return r.artifacts[len(r.artifacts)-1], nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*result.Artifact, error) {
	for _, a := range r.artifacts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) List(ctx context.Context, limit int) ([]*result.Artifact, error) {
	out := append([]*result.Artifact(nil), r.artifacts...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type countingMetrics struct {
	entered int
	passes  int
}

func (m *countingMetrics) ItemEntered(item *catalogue.Item) { m.entered++ }
func (m *countingMetrics) RecordPass(report *progression.Report) { m.passes++ }

func newMediator(t *testing.T, source randomiser.DataSource, repo result.ArtifactRepository, metrics randomiser.PassMetrics) common.Mediator {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	m, err := randomiser.NewMediator(source, repo, metrics, clock)
	require.NoError(t, err)
	return m
}

func TestRandomise_PersistsArtifact(t *testing.T) {
	// Arrange
	repo := &memoryRepo{}
	metrics := &countingMetrics{}
	m := newMediator(t, &stubSource{}, repo, metrics)

	// Act
	resp, err := m.Send(context.Background(), &randomiser.RandomiseCommand{
		Seed:             99,
		SpawnChoice:      "SafeShallows",
		ShuffleDataboxes: true,
		Persist:          true,
	})

	// Assert
	require.NoError(t, err)
	out := resp.(*randomiser.RandomiseResponse)
	assert.Equal(t, int64(99), out.Result.Seed)
	assert.NotNil(t, out.Result.StartPoint())
	assert.Len(t, out.Result.Databoxes(), 2)
	require.Len(t, repo.artifacts, 1)
	assert.Equal(t, out.ArtifactID, repo.artifacts[0].ID)
	assert.Equal(t, out.Encoded, repo.artifacts[0].Encoded)
	assert.Equal(t, 4, metrics.entered)
	assert.Equal(t, 1, metrics.passes)
}

func TestRandomise_ZeroSeedIsDerivedAndRecorded(t *testing.T) {
	m := newMediator(t, &stubSource{}, nil, nil)

	resp, err := m.Send(context.Background(), &randomiser.RandomiseCommand{SpawnChoice: "Vanilla"})

	require.NoError(t, err)
	out := resp.(*randomiser.RandomiseResponse)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixNano(), out.Result.Seed)
	assert.Nil(t, out.Result.StartPoint())
}

func TestRandomise_SameSeedSameArtifact(t *testing.T) {
	m := newMediator(t, &stubSource{}, nil, nil)
	cmd := &randomiser.RandomiseCommand{Seed: 5, SpawnChoice: "Random", ShuffleDataboxes: true}

	first, err := m.Send(context.Background(), cmd)
	require.NoError(t, err)
	second, err := m.Send(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, first.(*randomiser.RandomiseResponse).Encoded, second.(*randomiser.RandomiseResponse).Encoded)
}

func TestRandomise_DataLoadErrorIsFatal(t *testing.T) {
	loadErr := shared.NewDataLoadError("catalogue", "file missing", nil)
	m := newMediator(t, &stubSource{catalogueErr: loadErr}, nil, nil)

	resp, err := m.Send(context.Background(), &randomiser.RandomiseCommand{Seed: 1})

	assert.Nil(t, resp)
	var target *shared.DataLoadError
	assert.True(t, errors.As(err, &target))
}

func TestRandomise_VanillaDataboxesSkipWreckData(t *testing.T) {
	// Arrange
	source := &stubSource{databoxErr: errors.New("open wreckInformation.csv: no such file or directory")}
	m := newMediator(t, source, nil, nil)

	// Act
	resp, err := m.Send(context.Background(), &randomiser.RandomiseCommand{Seed: 5, SpawnChoice: "Vanilla"})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, resp.(*randomiser.RandomiseResponse).Result.Databoxes())
}

func TestRandomise_ShuffledDataboxesNeedWreckData(t *testing.T) {
	// Arrange
	source := &stubSource{databoxErr: errors.New("open wreckInformation.csv: no such file or directory")}
	m := newMediator(t, source, nil, nil)

	// Act
	_, err := m.Send(context.Background(), &randomiser.RandomiseCommand{Seed: 5, SpawnChoice: "Vanilla", ShuffleDataboxes: true})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load databoxes")
}

func TestRestore_UsesStoredArtifact(t *testing.T) {
	repo := &memoryRepo{}
	m := newMediator(t, &stubSource{}, repo, nil)
	_, err := m.Send(context.Background(), &randomiser.RandomiseCommand{Seed: 8, Persist: true})
	require.NoError(t, err)

	resp, err := m.Send(context.Background(), &randomiser.RestoreCommand{
		Randomise: randomiser.RandomiseCommand{Seed: 1234},
	})

	require.NoError(t, err)
	out := resp.(*randomiser.RestoreResponse)
	assert.True(t, out.Restored)
	assert.Equal(t, int64(8), out.Result.Seed)
	assert.Len(t, repo.artifacts, 1)
}

func TestRestore_FallsBackOnVersionMismatch(t *testing.T) {
	// Arrange: a stored artifact written by engine version 1
	stale := result.New(3, "Vanilla")
	stale.Version = 1
	encoded, err := result.Encode(stale)
	require.NoError(t, err)
	repo := &memoryRepo{artifacts: []*result.Artifact{{ID: "seed-3-deadbeef", Seed: 3, Version: 1, Encoded: encoded}}}
	m := newMediator(t, &stubSource{}, repo, nil)

	// Act
	resp, err := m.Send(context.Background(), &randomiser.RestoreCommand{
		Randomise: randomiser.RandomiseCommand{Seed: 77, Persist: true},
	})

	// Assert
	require.NoError(t, err)
	out := resp.(*randomiser.RestoreResponse)
	assert.False(t, out.Restored)
	var mismatch *result.VersionMismatchError
	require.True(t, errors.As(out.FallbackReason, &mismatch))
	assert.Equal(t, 1, mismatch.Actual)
	assert.Equal(t, int64(77), out.Result.Seed)
	assert.Equal(t, encoded, repo.artifacts[0].Encoded, "stored artifact must be left untouched")
	assert.Len(t, repo.artifacts, 2)
}

func TestRestore_FallsBackWhenNothingStored(t *testing.T) {
	m := newMediator(t, &stubSource{}, &memoryRepo{}, nil)

	resp, err := m.Send(context.Background(), &randomiser.RestoreCommand{
		Randomise: randomiser.RandomiseCommand{Seed: 2},
	})

	require.NoError(t, err)
	out := resp.(*randomiser.RestoreResponse)
	assert.False(t, out.Restored)
	assert.ErrorIs(t, out.FallbackReason, randomiser.ErrNoArtifact)
	assert.NotNil(t, out.Report)
}

func TestDecodeArtifact_RejectsCorruptInput(t *testing.T) {
	m := newMediator(t, &stubSource{}, nil, nil)

	_, err := m.Send(context.Background(), &randomiser.DecodeArtifactQuery{Encoded: "***"})

	var corrupt *result.EncodeDecodeError
	assert.True(t, errors.As(err, &corrupt))
}
