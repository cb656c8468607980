package config

// RandomiserConfig holds the options of a randomisation pass
type RandomiserConfig struct {
	// Seed of the pass; 0 picks a clock-derived seed
	Seed int64 `mapstructure:"seed"`

	// Spawn point choice: "Vanilla", "Random", "Void" or a biome name
	SpawnPoint string `mapstructure:"spawn_point" validate:"spawnchoice"`

	// Allow fish to replace raw materials in recipes
	UseFish bool `mapstructure:"use_fish"`

	// Allow seeds to replace raw materials in recipes
	UseSeeds bool `mapstructure:"use_seeds"`

	// Databox handling: "shuffle" or "vanilla"
	Databoxes string `mapstructure:"databoxes" validate:"required,oneof=shuffle vanilla"`

	// Safety cap of admission rounds per checkpoint
	MaxIterations int `mapstructure:"max_iterations" validate:"min=1"`

	// Extra craftable category tags accepted in the catalogue
	ExtraCategories []string `mapstructure:"extra_categories"`

	// Progression checkpoints; empty selects the built-in list
	Checkpoints []CheckpointConfig `mapstructure:"checkpoints" validate:"dive"`
}

// CheckpointConfig describes one progression checkpoint
type CheckpointConfig struct {
	Name string `mapstructure:"name" validate:"required"`

	// Deepest item depth admitted; ignored when Unbounded is set
	MaxDepth int `mapstructure:"max_depth" validate:"min=0"`

	Unbounded bool `mapstructure:"unbounded"`

	// Craftable categories that only become legal from this checkpoint on
	Unlocks []string `mapstructure:"unlocks"`
}

// DataConfig holds the paths of the game data files
type DataConfig struct {
	Catalogue string `mapstructure:"catalogue" validate:"required"`
	Wrecks    string `mapstructure:"wrecks"`
	Regions   string `mapstructure:"regions"`
}
