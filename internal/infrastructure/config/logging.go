package config

// Log destinations accepted by logging.output
const (
	LogToStdout = "stdout"
	LogToStderr = "stderr"
	LogToFile   = "file"
)

// LoggingConfig controls the pass log. Logs default to stderr so that
// "randomise --print-artifact" and "export" keep stdout clean.
type LoggingConfig struct {
	Level    string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format   string `mapstructure:"format" validate:"required,oneof=json text"`
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`
}

// WritesToFile reports whether log lines go to FilePath
func (c LoggingConfig) WritesToFile() bool {
	return c.Output == LogToFile
}
