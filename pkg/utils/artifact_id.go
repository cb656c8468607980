package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateArtifactID creates a human-readable id for a stored seed artifact.
// Format: seed-{seed}-{8charHexUUID}
//
// Example:
//   - Input: seed=42
//   - Output: "seed-42-a3f8e2b1"
//
// Negative seeds keep their sign, e.g. "seed--7-0c1d2e3f".
func GenerateArtifactID(seed int64) string {
	return fmt.Sprintf("seed-%d-%s", seed, generateShortUUID())
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	// Remove hyphens and take first 8 characters
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
