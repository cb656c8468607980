package logic

import (
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

// NoCandidateFound is a soft warning: an ingredient slot had no legal
// replacement and kept its original ingredient.
type NoCandidateFound struct {
	Item       catalogue.ItemID
	Slot       int
	Ingredient catalogue.ItemID
	Reason     string
}

func (e *NoCandidateFound) Error() string {
	return fmt.Sprintf("no replacement for %s in slot %d of %s: %s", e.Ingredient, e.Slot, e.Item, e.Reason)
}
