package catalogue

import "fmt"

// ItemID is the stable identifier of an item, e.g. "TitaniumIngot".
type ItemID string

// Node is a coarse progression milestone. Nodes are ordered: an item may only
// use ingredients whose node is not greater than its own.
type Node int

// NodeNone marks an item outside every milestone. It orders before all others.
const NodeNone Node = 0

func (n Node) String() string {
	if n == NodeNone {
		return "None"
	}
	return fmt.Sprintf("Node%d", int(n))
}

// DeriveNode maps a progression depth onto a node given the ordered max depths
// of the progression checkpoints. The result is the 1-based index of the first
// bound that is not below the depth; depths beyond every bound land on the
// node after the last bound.
func DeriveNode(depth int, bounds []int) Node {
	for i, bound := range bounds {
		if depth <= bound {
			return Node(i + 1)
		}
	}
	return Node(len(bounds) + 1)
}

// Ingredient is one slot of a recipe.
type Ingredient struct {
	Item   ItemID
	Amount int
}

// Recipe is the vanilla crafting data of an item.
type Recipe struct {
	Ingredients []Ingredient
	CraftAmount int
	LinkedItems []ItemID
}

// Blueprint describes how an item's blueprint is unlocked in the vanilla game.
type Blueprint struct {
	UnlockConditions []ItemID
	Fragment         ItemID
	Databox          bool
	UnlockDepth      int
}

// Item is one entry of the catalogue.
type Item struct {
	ID            ItemID
	Category      Category
	Depth         int
	Node          Node
	Prerequisites []ItemID
	Recipe        Recipe
	Value         int
	MaxUses       int
	Blueprint     *Blueprint
}

// HasPrerequisites reports whether the item is an upgrade of something else.
func (i *Item) HasPrerequisites() bool {
	return len(i.Prerequisites) > 0
}

// IsUpgradeSlot reports whether the ingredient at the given position holds the
// item being upgraded. Upgraded items always come first in a recipe, one slot
// per prerequisite.
func (i *Item) IsUpgradeSlot(slot int) bool {
	return slot < len(i.Prerequisites)
}

// HasPrerequisite reports whether id is among the item's prerequisites.
func (i *Item) HasPrerequisite(id ItemID) bool {
	for _, p := range i.Prerequisites {
		if p == id {
			return true
		}
	}
	return false
}

func (i *Item) String() string {
	return string(i.ID)
}
