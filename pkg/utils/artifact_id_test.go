package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateArtifactID_Format(t *testing.T) {
	id := GenerateArtifactID(42)

	assert.Regexp(t, regexp.MustCompile(`^seed-42-[0-9a-f]{8}$`), id)
}

func TestGenerateArtifactID_IsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateArtifactID(1)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
