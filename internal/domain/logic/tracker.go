package logic

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

// EnterLogicListener is notified once per item, at the moment it first
// becomes reachable.
type EnterLogicListener func(item *catalogue.Item)

// Tracker owns the set of items that are currently reachable ("in logic").
//
// The set only grows. Membership checks are hash lookups; the admission log
// keeps the order in which items entered so that iteration is deterministic.
type Tracker struct {
	catalogue *catalogue.Catalogue
	inLogic   mapset.Set[catalogue.ItemID]
	admitted  []*catalogue.Item
	listeners []EnterLogicListener
}

// NewTracker creates an empty tracker over the catalogue
func NewTracker(cat *catalogue.Catalogue) *Tracker {
	return &Tracker{
		catalogue: cat,
		inLogic:   mapset.New[catalogue.ItemID](),
		admitted:  make([]*catalogue.Item, 0, cat.Len()),
	}
}

// OnEnterLogic registers a listener. Listeners run synchronously, in
// registration order.
func (t *Tracker) OnEnterLogic(listener EnterLogicListener) {
	if listener != nil {
		t.listeners = append(t.listeners, listener)
	}
}

// Admit marks items as reachable.
// Returns true if any item was not reachable before. Nil items are ignored.
func (t *Tracker) Admit(items ...*catalogue.Item) bool {
	anyAdded := false
	for _, item := range items {
		if item == nil || t.inLogic.Has(item.ID) {
			continue
		}
		t.inLogic.Put(item.ID)
		t.admitted = append(t.admitted, item)
		anyAdded = true

		for _, listener := range t.listeners {
			listener(item)
		}
	}
	return anyAdded
}

// AdmitByFilter admits every item of the given categories whose depth does
// not exceed maxDepth.
func (t *Tracker) AdmitByFilter(categories []catalogue.Category, maxDepth int) bool {
	return t.Admit(t.collect(categories, maxDepth, nil)...)
}

// AdmitByPrerequisite admits every item of the given categories up to maxDepth
// whose one and only prerequisite is the given item.
//
// With invert set it instead admits items that do NOT require the given item,
// which includes items without any prerequisites. Without invert, items with
// no prerequisites never match.
func (t *Tracker) AdmitByPrerequisite(categories []catalogue.Category, maxDepth int, prerequisite catalogue.ItemID, invert bool) bool {
	var match func(*catalogue.Item) bool
	if invert {
		match = func(i *catalogue.Item) bool {
			return !i.HasPrerequisites() || !i.HasPrerequisite(prerequisite)
		}
	} else {
		match = func(i *catalogue.Item) bool {
			return len(i.Prerequisites) == 1 && i.Prerequisites[0] == prerequisite
		}
	}
	return t.Admit(t.collect(categories, maxDepth, match)...)
}

// AdmitWhereSatisfied admits every item of the given categories up to maxDepth
// whose prerequisites are all reachable already. Items without prerequisites
// are always satisfied.
func (t *Tracker) AdmitWhereSatisfied(categories []catalogue.Category, maxDepth int) bool {
	return t.Admit(t.collect(categories, maxDepth, func(i *catalogue.Item) bool {
		for _, p := range i.Prerequisites {
			if !t.inLogic.Has(p) {
				return false
			}
		}
		return true
	})...)
}

// collect gathers candidates in category order, then load order, skipping
// anything already reachable.
func (t *Tracker) collect(categories []catalogue.Category, maxDepth int, match func(*catalogue.Item) bool) []*catalogue.Item {
	out := make([]*catalogue.Item, 0)
	seen := mapset.New[catalogue.Category]()
	for _, category := range categories {
		if seen.Has(category) {
			continue
		}
		seen.Put(category)

		for _, item := range t.catalogue.ByCategory(category) {
			if item.Depth > maxDepth || t.inLogic.Has(item.ID) {
				continue
			}
			if match != nil && !match(item) {
				continue
			}
			out = append(out, item)
		}
	}
	return out
}

// Contains reports whether the item is reachable.
func (t *Tracker) Contains(id catalogue.ItemID) bool {
	return t.inLogic.Has(id)
}

// ContainsKind reports whether the item is reachable and of the given kind.
func (t *Tracker) ContainsKind(id catalogue.ItemID, kind catalogue.Kind) bool {
	if !t.inLogic.Has(id) {
		return false
	}
	item, ok := t.catalogue.Get(id)
	return ok && t.catalogue.KindOf(item) == kind
}

// Size returns the number of reachable items.
func (t *Tracker) Size() int {
	return t.inLogic.Size()
}

// Reachable returns the reachable items in admission order.
func (t *Tracker) Reachable() []*catalogue.Item {
	out := make([]*catalogue.Item, len(t.admitted))
	copy(out, t.admitted)
	return out
}

// AllCraftable returns every catalogue item that can be crafted, in load
// order. The driver walks it to hand admitted items to their module.
func (t *Tracker) AllCraftable() []*catalogue.Item {
	return t.catalogue.Craftables()
}

// AllFragmentLike returns every catalogue item that is a fragment. Passes do
// not randomise fragments; this is a query for hosts placing them.
func (t *Tracker) AllFragmentLike() []*catalogue.Item {
	return t.catalogue.Filter(func(i *catalogue.Item) bool {
		return t.catalogue.KindOf(i) == catalogue.KindFragment
	})
}

// AllRawMaterialsWithNoPrerequisites returns the raw materials available at or
// above maxDepth that do not depend on anything else. Hosts use it to list what
// a fresh start can gather.
func (t *Tracker) AllRawMaterialsWithNoPrerequisites(maxDepth int) []*catalogue.Item {
	return t.catalogue.Filter(func(i *catalogue.Item) bool {
		return i.Category == catalogue.CategoryRawMaterials && i.Depth <= maxDepth && !i.HasPrerequisites()
	})
}
