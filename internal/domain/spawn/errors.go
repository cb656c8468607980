package spawn

import "fmt"

// UnknownBiome is a soft warning: the configured spawn choice names no known
// biome and the fallback coordinate was used.
type UnknownBiome struct {
	Choice     string
	Suggestion string
}

func (e *UnknownBiome) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown spawn biome %q (did you mean %q?)", e.Choice, e.Suggestion)
	}
	return fmt.Sprintf("unknown spawn biome %q", e.Choice)
}
