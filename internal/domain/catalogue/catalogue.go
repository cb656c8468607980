package catalogue

import (
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// Catalogue is the immutable, load-ordered collection of every item known to
// a randomisation pass.
type Catalogue struct {
	items      []*Item
	byID       map[ItemID]*Item
	byCategory map[Category][]*Item
	taxonomy   *Taxonomy
}

// New indexes the given items. Nil entries are ignored. An empty catalogue or
// a duplicate id is a *shared.DataLoadError.
func New(items []*Item, taxonomy *Taxonomy) (*Catalogue, error) {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}

	c := &Catalogue{
		items:      make([]*Item, 0, len(items)),
		byID:       make(map[ItemID]*Item, len(items)),
		byCategory: make(map[Category][]*Item),
		taxonomy:   taxonomy,
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		if _, exists := c.byID[item.ID]; exists {
			return nil, shared.NewDataLoadError("catalogue", "invalid item list", &ErrDuplicateItem{ID: item.ID})
		}
		c.items = append(c.items, item)
		c.byID[item.ID] = item
		c.byCategory[item.Category] = append(c.byCategory[item.Category], item)
	}

	if len(c.items) == 0 {
		return nil, shared.NewDataLoadError("catalogue", "no items", nil)
	}

	return c, nil
}

// Taxonomy returns the category tags the catalogue was built with
func (c *Catalogue) Taxonomy() *Taxonomy { return c.taxonomy }

// Len returns the number of items
func (c *Catalogue) Len() int { return len(c.items) }

// Items returns every item in load order.
func (c *Catalogue) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up an item by id.
func (c *Catalogue) Get(id ItemID) (*Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ByCategory returns the items of one category in load order. The returned
// slice must not be modified.
func (c *Catalogue) ByCategory(category Category) []*Item {
	return c.byCategory[category]
}

// Filter returns the items matching the predicate in load order.
func (c *Catalogue) Filter(match func(*Item) bool) []*Item {
	out := make([]*Item, 0)
	for _, item := range c.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Craftables returns every item whose category is craftable, in load order.
func (c *Catalogue) Craftables() []*Item {
	return c.Filter(func(i *Item) bool { return c.taxonomy.IsCraftable(i.Category) })
}

// KindOf classifies an item by its category.
func (c *Catalogue) KindOf(item *Item) Kind {
	return c.taxonomy.Kind(item.Category)
}
