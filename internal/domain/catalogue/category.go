package catalogue

import (
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// Category tags an item with its broad role in progression.
type Category string

const (
	CategoryNone                Category = "None"
	CategoryFish                Category = "Fish"
	CategorySeeds               Category = "Seeds"
	CategoryRawMaterials        Category = "RawMaterials"
	CategoryFragments           Category = "Fragments"
	CategoryBasicMaterials      Category = "BasicMaterials"
	CategoryAdvancedMaterials   Category = "AdvancedMaterials"
	CategoryElectronics         Category = "Electronics"
	CategoryTools               Category = "Tools"
	CategoryEquipment           Category = "Equipment"
	CategoryTablets             Category = "Tablets"
	CategoryDeployables         Category = "Deployables"
	CategoryScannerRoom         Category = "ScannerRoom"
	CategoryVehicles            Category = "Vehicles"
	CategoryVehicleUpgrades     Category = "VehicleUpgrades"
	CategoryWorkBenchUpgrades   Category = "WorkBenchUpgrades"
	CategoryRocket              Category = "Rocket"
	CategoryTorpedos            Category = "Torpedos"
	CategoryBaseBasePieces      Category = "BaseBasePieces"
	CategoryBaseExternalModules Category = "BaseExternalModules"
	CategoryBaseInternalModules Category = "BaseInternalModules"
	CategoryBaseInternalPieces  Category = "BaseInternalPieces"
	CategoryBaseGenerators      Category = "BaseGenerators"
)

// Kind is a coarse grouping of categories used for filtered membership checks.
type Kind int

const (
	KindOther Kind = iota
	KindRawMaterial
	KindBiological
	KindFragment
	KindCraftable
)

func (k Kind) String() string {
	switch k {
	case KindRawMaterial:
		return "raw-material"
	case KindBiological:
		return "biological"
	case KindFragment:
		return "fragment"
	case KindCraftable:
		return "craftable"
	default:
		return "other"
	}
}

// Taxonomy is the finite set of category tags known to a catalogue, in a
// fixed order. Every tag that is not one of the natural (non-craftable) tags
// is craftable.
type Taxonomy struct {
	order  []Category
	byName map[string]Category
}

var naturalKinds = map[Category]Kind{
	CategoryNone:         KindOther,
	CategoryFish:         KindBiological,
	CategorySeeds:        KindBiological,
	CategoryRawMaterials: KindRawMaterial,
	CategoryFragments:    KindFragment,
}

// DefaultTaxonomy returns the stock category tags.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(
		CategoryNone,
		CategoryFish,
		CategorySeeds,
		CategoryRawMaterials,
		CategoryFragments,
		CategoryBasicMaterials,
		CategoryAdvancedMaterials,
		CategoryElectronics,
		CategoryTools,
		CategoryEquipment,
		CategoryTablets,
		CategoryDeployables,
		CategoryScannerRoom,
		CategoryVehicles,
		CategoryVehicleUpgrades,
		CategoryWorkBenchUpgrades,
		CategoryRocket,
		CategoryTorpedos,
		CategoryBaseBasePieces,
		CategoryBaseExternalModules,
		CategoryBaseInternalModules,
		CategoryBaseInternalPieces,
		CategoryBaseGenerators,
	)
}

// NewTaxonomy builds a taxonomy from the given tags. Duplicates are ignored.
func NewTaxonomy(categories ...Category) *Taxonomy {
	t := &Taxonomy{byName: make(map[string]Category)}
	for _, c := range categories {
		t.add(c)
	}
	return t
}

// WithCraftable returns a copy of the taxonomy extended by extra craftable tags.
func (t *Taxonomy) WithCraftable(extra ...string) *Taxonomy {
	out := NewTaxonomy(t.order...)
	for _, name := range extra {
		out.add(Category(strings.TrimSpace(name)))
	}
	return out
}

func (t *Taxonomy) add(c Category) {
	if c == "" {
		return
	}
	key := strings.ToLower(string(c))
	if _, exists := t.byName[key]; exists {
		return
	}
	t.byName[key] = c
	t.order = append(t.order, c)
}

// Parse resolves a tag case-insensitively. An unknown tag resolves to
// CategoryNone together with an *UnknownCategoryTag describing the problem.
func (t *Taxonomy) Parse(tag string) (Category, error) {
	trimmed := strings.TrimSpace(tag)
	if c, ok := t.byName[strings.ToLower(trimmed)]; ok {
		return c, nil
	}

	names := make([]string, len(t.order))
	for i, c := range t.order {
		names[i] = string(c)
	}
	return CategoryNone, &UnknownCategoryTag{
		Tag:        trimmed,
		Suggestion: shared.Suggest(trimmed, names),
	}
}

// Known reports whether the tag belongs to this taxonomy.
func (t *Taxonomy) Known(c Category) bool {
	_, ok := t.byName[strings.ToLower(string(c))]
	return ok
}

// Kind classifies a category.
func (t *Taxonomy) Kind(c Category) Kind {
	if k, natural := naturalKinds[c]; natural {
		return k
	}
	if !t.Known(c) {
		return KindOther
	}
	return KindCraftable
}

// IsCraftable reports whether items of this category have recipes that may be randomised.
func (t *Taxonomy) IsCraftable(c Category) bool {
	return t.Kind(c) == KindCraftable
}

// All returns every tag in taxonomy order.
func (t *Taxonomy) All() []Category {
	out := make([]Category, len(t.order))
	copy(out, t.order)
	return out
}

// Craftable returns the craftable tags in taxonomy order.
func (t *Taxonomy) Craftable() []Category {
	out := make([]Category, 0, len(t.order))
	for _, c := range t.order {
		if t.IsCraftable(c) {
			out = append(out, c)
		}
	}
	return out
}

// Natural returns the tags of things found in the world rather than crafted,
// excluding CategoryNone.
func (t *Taxonomy) Natural() []Category {
	out := make([]Category, 0, len(naturalKinds))
	for _, c := range t.order {
		if k, natural := naturalKinds[c]; natural && k != KindOther {
			out = append(out, c)
		}
	}
	return out
}
