package progression

import (
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

// Unintegrated reasons.
const (
	ReasonNeverAdmitted         = "never admitted by any checkpoint"
	ReasonNotRandomised         = "admitted but no module randomised it"
	ReasonUnreachableIngredient = "reverted: ingredient is not reachable"
	ReasonCycle                 = "reverted: recipe takes part in a cycle"
)

// UnintegratedItem is an item that kept its vanilla recipe because it could
// not be integrated into logic.
type UnintegratedItem struct {
	Item   catalogue.ItemID
	Reason string
	Detail string
}

// CheckpointReport summarises one checkpoint of a pass.
type CheckpointReport struct {
	Name       string
	MaxDepth   int
	Iterations int
	Admitted   int
	Randomised int
	CapReached bool
}

// Report describes the outcome of a pass. Every field is informational; a
// pass with warnings and unintegrated items still produced a valid result.
type Report struct {
	Seed          int64
	Admitted      int
	Randomised    int
	Substitutions int
	Warnings      []error
	Unintegrated  []UnintegratedItem
	Checkpoints   []CheckpointReport
}

// Warn records a soft warning.
func (r *Report) Warn(err error) {
	if err != nil {
		r.Warnings = append(r.Warnings, err)
	}
}

// IsUnintegrated reports whether the item is listed as unintegrated.
func (r *Report) IsUnintegrated(id catalogue.ItemID) bool {
	for _, u := range r.Unintegrated {
		if u.Item == id {
			return true
		}
	}
	return false
}
