package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

func TestRNG_SameSeedSameSequence(t *testing.T) {
	a := shared.NewRNG(1234)
	b := shared.NewRNG(1234)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, int64(50), a.Position())
}

func TestRNG_IntRangeIsInclusive(t *testing.T) {
	rng := shared.NewRNG(9)
	seen := make(map[int]bool)

	for i := 0; i < 500; i++ {
		v := rng.IntRange(3, 1)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestRNG_ShuffleCountsDraws(t *testing.T) {
	rng := shared.NewRNG(5)
	values := []int{1, 2, 3, 4, 5}

	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, values)
	assert.Equal(t, int64(4), rng.Position())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"SafeShallows", "KelpForest", "GrassyPlateaus"}

	assert.Equal(t, "KelpForest", shared.Suggest("kelpforrest", candidates))
	assert.Equal(t, "", shared.Suggest("Atlantis", candidates))
	assert.Equal(t, "", shared.Suggest("", candidates))
}

func TestVector_EqualsWithinTolerance(t *testing.T) {
	a := shared.NewVector(1, 2, 3)

	assert.True(t, a.Equals(shared.NewVector(1.2, 2, 2.9)))
	assert.False(t, a.Equals(shared.NewVector(2, 2, 3)))
	assert.Equal(t, "(1, 2, 3)", a.String())
}

func TestSeedFromClock(t *testing.T) {
	clock := shared.NewMockClock(time.Unix(0, 0))
	assert.Equal(t, int64(1), shared.SeedFromClock(clock))

	clock.Advance(time.Second)
	assert.Equal(t, int64(time.Second), shared.SeedFromClock(clock))
}
