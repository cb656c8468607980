package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/config"
)

// LogEntry is one recorded log line
type LogEntry struct {
	Timestamp time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Message   string                 `json:"msg"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

var levelRank = map[string]int{
	common.LevelDebug:   0,
	common.LevelInfo:    1,
	common.LevelWarning: 2,
	common.LevelError:   3,
}

// ParseLevel maps a config level name onto a logger level
func ParseLevel(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return common.LevelDebug, nil
	case "info", "":
		return common.LevelInfo, nil
	case "warn", "warning":
		return common.LevelWarning, nil
	case "error":
		return common.LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", name)
}

// StreamLogger writes log lines to a stream and keeps them in memory.
// Entries below the minimum level are dropped.
type StreamLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel string
	json     bool
	clock    shared.Clock
	entries  []LogEntry
}

// NewStreamLogger creates a logger writing to out. format is "text" or "json".
func NewStreamLogger(out io.Writer, minLevel, format string, clock shared.Clock) *StreamLogger {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if _, ok := levelRank[minLevel]; !ok {
		minLevel = common.LevelInfo
	}
	return &StreamLogger{
		out:      out,
		minLevel: minLevel,
		json:     format == "json",
		clock:    clock,
	}
}

// Log implements common.Logger
func (l *StreamLogger) Log(level, message string, metadata map[string]interface{}) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: l.clock.Now(),
		Level:     level,
		Message:   message,
		Metadata:  metadata,
	}
	l.entries = append(l.entries, entry)

	if l.out == nil {
		return
	}
	if l.json {
		line, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, "[%s] ERROR: failed to encode log entry: %v\n", entry.Timestamp.Format(time.RFC3339), err)
			return
		}
		fmt.Fprintln(l.out, string(line))
		return
	}
	fmt.Fprintf(l.out, "[%s] %s: %s%s\n",
		entry.Timestamp.Format(time.RFC3339),
		level,
		message,
		formatMetadata(metadata),
	)
}

// Entries returns the recorded entries, optionally filtered by level
func (l *StreamLogger) Entries(level *string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := make([]LogEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		if level != nil && entry.Level != *level {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// formatMetadata renders metadata as sorted key=value pairs
func formatMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	return b.String()
}

// NewFromConfig builds a logger for the configured output. The returned close
// function releases the log file, if any.
func NewFromConfig(cfg config.LoggingConfig) (*StreamLogger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.WritesToFile() {
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return NewStreamLogger(f, level, cfg.Format, nil), f.Close, nil
	}

	out := os.Stderr
	if cfg.Output == config.LogToStdout {
		out = os.Stdout
	}
	return NewStreamLogger(out, level, cfg.Format, nil), func() error { return nil }, nil
}
