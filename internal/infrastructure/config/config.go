package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is everything the CLI reads from config.yaml, RR_* variables and
// the flags layered on top of them.
type Config struct {
	Randomiser RandomiserConfig `mapstructure:"randomiser"`
	Data       DataConfig       `mapstructure:"data"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// LoadConfig reads configPath, or config.yaml from the usual directories when
// it is empty. RR_ variables override the file and SetDefaults fills what
// neither sets. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range []string{".", "./configs", "/etc/randomiser"} {
			v.AddConfigPath(dir)
		}
	} else {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix("RR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is the conventional name hosting platforms export
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	SetDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// bindEnv registers the keys that have no default in a config file so that
// AutomaticEnv can find them during Unmarshal.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"randomiser.seed",
		"randomiser.spawn_point",
		"randomiser.use_fish",
		"randomiser.use_seeds",
		"randomiser.databoxes",
		"randomiser.max_iterations",
		"data.catalogue",
		"data.wrecks",
		"data.regions",
		"database.type",
		"database.path",
		"logging.level",
		"logging.format",
		"logging.output",
		"metrics.enabled",
		"metrics.textfile",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// LoadConfigOrDefault is LoadConfig, falling back to pure defaults when the
// configuration cannot be loaded
func LoadConfigOrDefault(configPath string) *Config {
	if cfg, err := LoadConfig(configPath); err == nil {
		return cfg
	}
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}
