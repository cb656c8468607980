package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

// GormArtifactRepository implements result.ArtifactRepository using GORM
type GormArtifactRepository struct {
	db *gorm.DB
}

// NewGormArtifactRepository creates a new GORM artifact repository
func NewGormArtifactRepository(db *gorm.DB) *GormArtifactRepository {
	return &GormArtifactRepository{db: db}
}

// Save persists an artifact. Saving an existing id overwrites it.
func (r *GormArtifactRepository) Save(ctx context.Context, artifact *result.Artifact) error {
	if artifact == nil || artifact.ID == "" {
		return fmt.Errorf("artifact id is required")
	}

	model := artifactToModel(artifact)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

// Latest returns the most recently created artifact, or nil when none exist
func (r *GormArtifactRepository) Latest(ctx context.Context) (*result.Artifact, error) {
	var model SeedArtifactModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest artifact: %w", err)
	}
	return modelToArtifact(&model), nil
}

// FindByID retrieves an artifact by id, or nil when it does not exist
func (r *GormArtifactRepository) FindByID(ctx context.Context, id string) (*result.Artifact, error) {
	var model SeedArtifactModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find artifact: %w", err)
	}
	return modelToArtifact(&model), nil
}

// List returns artifacts newest first. A limit of 0 returns all of them.
func (r *GormArtifactRepository) List(ctx context.Context, limit int) ([]*result.Artifact, error) {
	var models []SeedArtifactModel
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	artifacts := make([]*result.Artifact, 0, len(models))
	for i := range models {
		artifacts = append(artifacts, modelToArtifact(&models[i]))
	}
	return artifacts, nil
}

func artifactToModel(a *result.Artifact) *SeedArtifactModel {
	return &SeedArtifactModel{
		ID:          a.ID,
		Seed:        a.Seed,
		SpawnChoice: a.SpawnChoice,
		Version:     a.Version,
		Encoded:     a.Encoded,
		CreatedAt:   a.CreatedAt,
	}
}

func modelToArtifact(m *SeedArtifactModel) *result.Artifact {
	return &result.Artifact{
		ID:          m.ID,
		Seed:        m.Seed,
		SpawnChoice: m.SpawnChoice,
		Version:     m.Version,
		Encoded:     m.Encoded,
		CreatedAt:   m.CreatedAt,
	}
}
