package databox

import (
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// Databox is a world-placed object that grants a blueprint when opened.
// Coordinates, region and tool requirements belong to the location; Item is
// what the location unlocks.
type Databox struct {
	Item        catalogue.ItemID
	Coordinates shared.Vector
	Region      string
	Tools       []catalogue.ItemID
}

// RequiresTool reports whether opening the box needs the given tool.
func (d Databox) RequiresTool(tool catalogue.ItemID) bool {
	for _, t := range d.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// SelfLocked reports whether the box holds the blueprint of a tool needed to
// open it, which would make that blueprint unobtainable.
func (d Databox) SelfLocked() bool {
	return d.RequiresTool(d.Item)
}

// Shuffle redistributes the unlocked blueprints across the databox locations.
//
// The contents are permuted with the RNG, then every self-locked box swaps
// contents with the first box that needs no tools and whose content is not
// one of the self-locked box's tools. Boxes that cannot be repaired are
// returned as unresolved. The input slice is not modified.
func Shuffle(boxes []Databox, rng *shared.RNG) (shuffled []Databox, unresolved []Databox) {
	shuffled = make([]Databox, len(boxes))
	for i, box := range boxes {
		shuffled[i] = box
		shuffled[i].Tools = cloneTools(box.Tools)
	}

	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i].Item, shuffled[j].Item = shuffled[j].Item, shuffled[i].Item
	})

	for i := range shuffled {
		if !shuffled[i].SelfLocked() {
			continue
		}
		swapped := false
		for j := range shuffled {
			if j == i || len(shuffled[j].Tools) > 0 || shuffled[i].RequiresTool(shuffled[j].Item) {
				continue
			}
			shuffled[i].Item, shuffled[j].Item = shuffled[j].Item, shuffled[i].Item
			swapped = true
			break
		}
		if !swapped {
			unresolved = append(unresolved, shuffled[i])
		}
	}

	return shuffled, unresolved
}

func cloneTools(tools []catalogue.ItemID) []catalogue.ItemID {
	if len(tools) == 0 {
		return nil
	}
	out := make([]catalogue.ItemID, len(tools))
	copy(out, tools)
	return out
}
