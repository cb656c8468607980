package config

// MetricsConfig holds pass metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Namespace prefixes every metric name
	Namespace string `mapstructure:"namespace"`

	// Textfile receives the metrics in Prometheus text format after each
	// pass, for the node exporter textfile collector. Empty disables writing.
	Textfile string `mapstructure:"textfile"`
}
