package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/infrastructure/config"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestStreamLogger_TextFormat(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, common.LevelInfo, "text", shared.NewMockClock(fixedTime))

	// Act
	logger.Log(common.LevelWarning, "Could not be integrated into logic", map[string]interface{}{
		"reason": "cycle",
		"item":   "Lubricant",
	})

	// Assert
	assert.Equal(t,
		"[2024-05-01T12:00:00Z] WARNING: Could not be integrated into logic item=Lubricant reason=cycle\n",
		buf.String())
}

func TestStreamLogger_DropsEntriesBelowMinimumLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, common.LevelWarning, "text", nil)

	// Act
	logger.Log(common.LevelDebug, "noise", nil)
	logger.Log(common.LevelInfo, "noise", nil)
	logger.Log(common.LevelError, "kept", nil)

	// Assert
	entries := logger.Entries(nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestStreamLogger_JSONFormat(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := NewStreamLogger(&buf, common.LevelDebug, "json", shared.NewMockClock(fixedTime))

	// Act
	logger.Log(common.LevelInfo, "Generated seed", map[string]interface{}{"seed": 42})

	// Assert
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "INFO", decoded["level"])
	assert.Equal(t, "Generated seed", decoded["msg"])
	assert.Equal(t, float64(42), decoded["metadata"].(map[string]interface{})["seed"])
}

func TestStreamLogger_EntriesFilterByLevel(t *testing.T) {
	// Arrange
	logger := NewStreamLogger(nil, common.LevelDebug, "text", nil)
	logger.Log(common.LevelInfo, "a", nil)
	logger.Log(common.LevelWarning, "b", nil)
	warning := common.LevelWarning

	// Act
	entries := logger.Entries(&warning)

	// Assert
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Message)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"debug", common.LevelDebug, false},
		{"INFO", common.LevelInfo, false},
		{"warn", common.LevelWarning, false},
		{"error", common.LevelError, false},
		{"loud", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFromConfig_FileOutput(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "randomiser.log")
	cfg := config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path}

	// Act
	logger, closeFn, err := NewFromConfig(cfg)
	require.NoError(t, err)
	logger.Log(common.LevelInfo, "written", nil)
	require.NoError(t, closeFn())

	// Assert
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "INFO: written")
}
