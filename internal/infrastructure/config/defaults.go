package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Randomiser defaults
	if cfg.Randomiser.SpawnPoint == "" {
		cfg.Randomiser.SpawnPoint = "Vanilla"
	}
	if cfg.Randomiser.Databoxes == "" {
		cfg.Randomiser.Databoxes = "shuffle"
	}
	if cfg.Randomiser.MaxIterations == 0 {
		cfg.Randomiser.MaxIterations = 64
	}

	// Data defaults
	if cfg.Data.Catalogue == "" {
		cfg.Data.Catalogue = "data/recipeInformation.csv"
	}
	if cfg.Data.Wrecks == "" {
		cfg.Data.Wrecks = "data/wreckInformation.csv"
	}
	if cfg.Data.Regions == "" {
		cfg.Data.Regions = "data/alternateStarts.yaml"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "randomiser.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "randomiser"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "randomiser"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = LogToStderr
	}

	// Metrics defaults
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "randomiser"
	}
}
