package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSetDefaults_FillsEmptyConfig(t *testing.T) {
	// Arrange
	cfg := &Config{}

	// Act
	SetDefaults(cfg)

	// Assert
	assert.Equal(t, "Vanilla", cfg.Randomiser.SpawnPoint)
	assert.Equal(t, "shuffle", cfg.Randomiser.Databoxes)
	assert.Equal(t, 64, cfg.Randomiser.MaxIterations)
	assert.Equal(t, "data/recipeInformation.csv", cfg.Data.Catalogue)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "randomiser", cfg.Metrics.Namespace)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	// Arrange
	cfg := &Config{Randomiser: RandomiserConfig{SpawnPoint: "Random", MaxIterations: 3}}

	// Act
	SetDefaults(cfg)

	// Assert
	assert.Equal(t, "Random", cfg.Randomiser.SpawnPoint)
	assert.Equal(t, 3, cfg.Randomiser.MaxIterations)
}

func TestValidateConfig_RejectsBlankSpawnPoint(t *testing.T) {
	// Arrange
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Randomiser.SpawnPoint = "   "

	// Act
	err := ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "randomiser.spawn_point: failed spawnchoice")
}

func TestValidateConfig_RejectsUnknownDataboxMode(t *testing.T) {
	// Arrange
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Randomiser.Databoxes = "scatter"

	// Act
	err := ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "randomiser.databoxes: failed oneof=shuffle vanilla")
}

func TestValidateConfig_RequiresCheckpointName(t *testing.T) {
	// Arrange
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Randomiser.Checkpoints = []CheckpointConfig{{MaxDepth: 100}}

	// Act
	err := ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "randomiser.checkpoints[0].name: failed required")
}

func TestValidateConfig_FileOutputNeedsPath(t *testing.T) {
	// Arrange
	cfg := &Config{}
	SetDefaults(cfg)
	cfg.Logging.Output = "file"

	// Act
	err := ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.file_path")
}

func TestLoadConfig_ReadsYAMLFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
randomiser:
  seed: 1234
  spawn_point: Random
  use_fish: true
  databoxes: vanilla
  extra_categories: [Cyclops]
  checkpoints:
    - name: shallow
      max_depth: 100
    - name: endgame
      unbounded: true
      unlocks: [Rocket]
logging:
  level: debug
`)

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Randomiser.Seed)
	assert.Equal(t, "Random", cfg.Randomiser.SpawnPoint)
	assert.True(t, cfg.Randomiser.UseFish)
	assert.False(t, cfg.Randomiser.UseSeeds)
	assert.Equal(t, "vanilla", cfg.Randomiser.Databoxes)
	assert.Equal(t, []string{"Cyclops"}, cfg.Randomiser.ExtraCategories)
	require.Len(t, cfg.Randomiser.Checkpoints, 2)
	assert.Equal(t, 100, cfg.Randomiser.Checkpoints[0].MaxDepth)
	assert.True(t, cfg.Randomiser.Checkpoints[1].Unbounded)
	assert.Equal(t, []string{"Rocket"}, cfg.Randomiser.Checkpoints[1].Unlocks)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 64, cfg.Randomiser.MaxIterations)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "randomiser:\n  seed: 1\n")
	t.Setenv("RR_RANDOMISER_SEED", "99")
	t.Setenv("RR_RANDOMISER_SPAWN_POINT", "Void")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Randomiser.Seed)
	assert.Equal(t, "Void", cfg.Randomiser.SpawnPoint)
}

func TestLoadConfig_InvalidFileIsRejected(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "randomiser:\n  databoxes: sideways\n")

	// Act
	_, err := LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "randomiser:\n  databoxes: sideways\n")

	// Act
	cfg := LoadConfigOrDefault(path)

	// Assert
	assert.Equal(t, "shuffle", cfg.Randomiser.Databoxes)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	fields := DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "rr", Password: "pw", Name: "randomiser", SSLMode: "disable"}
	withURL := fields
	withURL.URL = "postgresql://rr:pw@db:5432/randomiser"

	assert.Equal(t, "host=db port=5432 user=rr password=pw dbname=randomiser sslmode=disable", fields.DSN())
	assert.Equal(t, withURL.URL, withURL.DSN())
}

func TestDatabaseConfig_FileBacked(t *testing.T) {
	assert.True(t, DatabaseConfig{Type: "sqlite", Path: "randomiser.db"}.FileBacked())
	assert.False(t, DatabaseConfig{Type: "sqlite", Path: SQLiteMemory}.FileBacked())
	assert.False(t, DatabaseConfig{Type: "sqlite"}.FileBacked())
	assert.False(t, DatabaseConfig{Type: "postgres", Path: "randomiser.db"}.FileBacked())
}
