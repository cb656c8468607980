package result

import (
	"context"
	"time"
)

// Artifact is a stored, encoded result.
type Artifact struct {
	ID          string
	Seed        int64
	SpawnChoice string
	Version     int
	Encoded     string
	CreatedAt   time.Time
}

// ArtifactRepository persists encoded results.
// Latest and FindByID return (nil, nil) when nothing matches.
type ArtifactRepository interface {
	Save(ctx context.Context, artifact *Artifact) error
	Latest(ctx context.Context) (*Artifact, error)
	FindByID(ctx context.Context, id string) (*Artifact, error)
	List(ctx context.Context, limit int) ([]*Artifact, error)
}
