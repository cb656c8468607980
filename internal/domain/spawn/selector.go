package spawn

import (
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// Fallback is the start point used for the void and for unknown biomes.
var Fallback = shared.NewVector(0, 0, 0)

// Selector picks a randomised start point from the spawn regions.
type Selector struct {
	regions Regions
}

// NewSelector creates a selector over the given regions
func NewSelector(regions Regions) *Selector {
	if regions == nil {
		regions = Regions{}
	}
	return &Selector{regions: regions}
}

// Select resolves the spawn choice into a start point.
//
// Choices starting with "Vanilla" return nil: the game's own start is kept.
// "Random" draws a biome uniformly from the sorted biome names. A biome
// without regions, "Void" included, yields Fallback. An unknown name yields
// Fallback together with an *UnknownBiome warning.
//
// RNG draws happen in this order: biome (Random only), region index, X, Z.
func (s *Selector) Select(choice string, rng *shared.RNG) (*shared.Vector, error) {
	if strings.HasPrefix(choice, ChoiceVanillaPrefix) {
		return nil, nil
	}

	var biome Biome
	if strings.EqualFold(choice, ChoiceRandom) {
		biomes := s.regions.Biomes()
		if len(biomes) == 0 {
			return fallback(), nil
		}
		biome = biomes[rng.Intn(len(biomes))]
	} else {
		resolved, ok := s.regions.Resolve(choice)
		if !ok {
			return fallback(), &UnknownBiome{Choice: choice, Suggestion: s.suggest(choice)}
		}
		biome = resolved
	}

	boxes := s.regions[biome]
	if len(boxes) == 0 {
		return fallback(), nil
	}

	box := boxes[rng.Intn(len(boxes))]
	x := rng.IntRange(box.MinX, box.MaxX)
	z := rng.IntRange(box.MinZ, box.MaxZ)
	point := shared.NewVector(float64(x), box.SurfaceY, float64(z))
	return &point, nil
}

func (s *Selector) suggest(choice string) string {
	names := []string{ChoiceRandom, ChoiceVoid}
	for _, biome := range s.regions.Biomes() {
		names = append(names, string(biome))
	}
	return shared.Suggest(choice, names)
}

func fallback() *shared.Vector {
	v := Fallback
	return &v
}
