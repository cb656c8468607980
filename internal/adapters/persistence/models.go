package persistence

import "time"

// SeedArtifactModel represents the seed_artifacts table
type SeedArtifactModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Seed        int64     `gorm:"column:seed;not null;index"`
	SpawnChoice string    `gorm:"column:spawn_choice"`
	Version     int       `gorm:"column:version;not null"`
	Encoded     string    `gorm:"column:encoded;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index"`
}

func (SeedArtifactModel) TableName() string {
	return "seed_artifacts"
}
