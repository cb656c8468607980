package spawn

import (
	"fmt"
	"sort"
	"strings"
)

// Biome names a spawn area, e.g. "SafeShallows".
type Biome string

// BiomeNone is the biome without spawn regions. Choosing it yields the
// fallback coordinate.
const BiomeNone Biome = "None"

// Special spawn choices.
const (
	ChoiceVanillaPrefix = "Vanilla"
	ChoiceRandom        = "Random"
	ChoiceVoid          = "Void"
)

// aliases map configuration names that differ from the region file's keys
var aliases = map[string]Biome{
	"bulbzone":        "KooshZone",
	"floating island": "FloatingIsland",
	"void":            BiomeNone,
}

// Region is an axis-aligned rectangle a player may spawn in, at a fixed height.
type Region struct {
	MinX     int     `yaml:"min_x"`
	MaxX     int     `yaml:"max_x"`
	MinZ     int     `yaml:"min_z"`
	MaxZ     int     `yaml:"max_z"`
	SurfaceY float64 `yaml:"y"`
}

func (r Region) String() string {
	return fmt.Sprintf("x[%d,%d] z[%d,%d] y=%g", r.MinX, r.MaxX, r.MinZ, r.MaxZ, r.SurfaceY)
}

// Regions lists the spawn rectangles of each biome.
type Regions map[Biome][]Region

// Biomes returns the biomes that have at least one region, sorted by name.
func (r Regions) Biomes() []Biome {
	biomes := make([]Biome, 0, len(r))
	for biome, boxes := range r {
		if biome == BiomeNone || len(boxes) == 0 {
			continue
		}
		biomes = append(biomes, biome)
	}
	sort.Slice(biomes, func(i, j int) bool { return biomes[i] < biomes[j] })
	return biomes
}

// Resolve maps a configured name onto a biome of the region set. Aliases are
// applied first, then names are compared case-insensitively.
func (r Regions) Resolve(name string) (Biome, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		return alias, true
	}
	for biome := range r {
		if strings.ToLower(string(biome)) == key {
			return biome, true
		}
	}
	return "", false
}
