package progression

import (
	"math"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

// Unbounded is the max depth of a checkpoint without a depth limit.
const Unbounded = math.MaxInt32

// Checkpoint is one progression stage. Items up to MaxDepth may enter logic
// while the checkpoint is processed. Unlocks lists craftable categories that
// only become legal from this checkpoint on.
type Checkpoint struct {
	Name     string
	MaxDepth int
	Unlocks  []catalogue.Category
}

// Bounded reports whether the checkpoint limits depth.
func (c Checkpoint) Bounded() bool {
	return c.MaxDepth < Unbounded
}

// DefaultCheckpoints returns the stock progression: shallow, mid, deep, abyss
// and an unbounded endgame, which alone allows rocket parts.
func DefaultCheckpoints() []Checkpoint {
	return []Checkpoint{
		{Name: "shallow", MaxDepth: 100},
		{Name: "mid", MaxDepth: 300},
		{Name: "deep", MaxDepth: 900},
		{Name: "abyss", MaxDepth: 1700},
		{Name: "endgame", MaxDepth: Unbounded, Unlocks: []catalogue.Category{catalogue.CategoryRocket}},
	}
}

// NodeBounds returns the max depths of the bounded checkpoints, in order.
// Used to derive item nodes from depth.
func NodeBounds(checkpoints []Checkpoint) []int {
	bounds := make([]int, 0, len(checkpoints))
	for _, c := range checkpoints {
		if c.Bounded() {
			bounds = append(bounds, c.MaxDepth)
		}
	}
	return bounds
}

// legalCraftables returns, for each checkpoint, the craftable categories that
// may be admitted there in taxonomy order.
func legalCraftables(checkpoints []Checkpoint, taxonomy *catalogue.Taxonomy) [][]catalogue.Category {
	unlockedAt := make(map[catalogue.Category]int)
	for i, c := range checkpoints {
		for _, category := range c.Unlocks {
			if _, seen := unlockedAt[category]; !seen {
				unlockedAt[category] = i
			}
		}
	}

	out := make([][]catalogue.Category, len(checkpoints))
	for i := range checkpoints {
		for _, category := range taxonomy.Craftable() {
			if at, gated := unlockedAt[category]; gated && at > i {
				continue
			}
			out[i] = append(out[i], category)
		}
	}
	return out
}
