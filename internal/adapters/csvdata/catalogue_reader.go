package csvdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
)

const catalogueColumns = 12

// Catalogue columns
const (
	colItemID = iota
	colCategory
	colDepth
	colPrerequisites
	colValue
	colMaxUses
	colBlueprintUnlock
	colBlueprintDepth
	colIngredients
	colCraftAmount
	colLinkedItems
	colNode
)

// CatalogueReader parses the item catalogue CSV
type CatalogueReader struct {
	path       string
	taxonomy   *catalogue.Taxonomy
	nodeBounds []int
}

// NewCatalogueReader creates a reader for the file at path. Items without a
// node column get a node derived from their depth and nodeBounds.
func NewCatalogueReader(path string, taxonomy *catalogue.Taxonomy, nodeBounds []int) *CatalogueReader {
	if taxonomy == nil {
		taxonomy = catalogue.DefaultTaxonomy()
	}
	return &CatalogueReader{
		path:       path,
		taxonomy:   taxonomy,
		nodeBounds: nodeBounds,
	}
}

// Read loads the catalogue from disk
func (r *CatalogueReader) Read(ctx context.Context) (*catalogue.Catalogue, []error, error) {
	f, err := openSource("catalogue", r.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return r.Parse(ctx, f)
}

// Parse builds a catalogue from CSV rows. The returned warnings hold every
// skipped row and every unknown category tag.
func (r *CatalogueReader) Parse(ctx context.Context, in io.Reader) (*catalogue.Catalogue, []error, error) {
	logger := common.LoggerFromContext(ctx)

	var (
		items    []*catalogue.Item
		warnings []error
	)

	rowWarnings, err := readRows(ctx, "catalogue", in, catalogueColumns, func(fields []string) error {
		item, categoryErr, err := r.parseItem(fields)
		if err != nil {
			return err
		}
		if categoryErr != nil {
			warnings = append(warnings, categoryErr)
			logger.Log(common.LevelWarning, categoryErr.Error(), map[string]interface{}{
				"item":     string(item.ID),
				"fallback": string(catalogue.CategoryNone),
			})
		}
		items = append(items, item)
		return nil
	})
	warnings = append(rowWarnings, warnings...)
	if err != nil {
		return nil, warnings, err
	}

	cat, err := catalogue.New(items, r.taxonomy)
	if err != nil {
		return nil, warnings, err
	}

	logger.Log(common.LevelDebug, "Catalogue loaded", map[string]interface{}{
		"items":   cat.Len(),
		"skipped": len(warnings),
	})
	return cat, warnings, nil
}

// parseItem converts one row. An unknown category is not fatal for the row:
// it is returned separately and the item falls back to CategoryNone.
func (r *CatalogueReader) parseItem(fields []string) (*catalogue.Item, error, error) {
	id := strings.TrimSpace(fields[colItemID])
	if id == "" {
		return nil, nil, errors.New("item id is empty")
	}

	item := &catalogue.Item{ID: catalogue.ItemID(id)}

	var categoryErr error
	item.Category = catalogue.CategoryNone
	if strings.TrimSpace(fields[colCategory]) != "" {
		item.Category, categoryErr = r.taxonomy.Parse(fields[colCategory])
	}

	var err error
	if item.Depth, err = optionalInt("depth", fields[colDepth]); err != nil {
		return nil, nil, err
	}
	item.Prerequisites = toItemIDs(splitList(fields[colPrerequisites]))
	if item.Value, err = optionalInt("value", fields[colValue]); err != nil {
		return nil, nil, err
	}
	if item.MaxUses, err = optionalInt("max uses", fields[colMaxUses]); err != nil {
		return nil, nil, err
	}
	if item.Blueprint, err = parseBlueprint(fields[colBlueprintUnlock], fields[colBlueprintDepth]); err != nil {
		return nil, nil, err
	}
	if item.Recipe.Ingredients, err = parseIngredients(fields[colIngredients]); err != nil {
		return nil, nil, err
	}
	if item.Recipe.CraftAmount, err = optionalInt("craft amount", fields[colCraftAmount]); err != nil {
		return nil, nil, err
	}
	if item.Recipe.CraftAmount == 0 && len(item.Recipe.Ingredients) > 0 {
		item.Recipe.CraftAmount = 1
	}
	item.Recipe.LinkedItems = toItemIDs(splitList(fields[colLinkedItems]))
	if item.Node, err = r.parseNode(fields[colNode], item.Depth); err != nil {
		return nil, nil, err
	}

	return item, categoryErr, nil
}

// parseNode accepts "None", "Node3" or "3". An empty cell derives the node
// from the item's depth.
func (r *CatalogueReader) parseNode(cell string, depth int) (catalogue.Node, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return catalogue.DeriveNode(depth, r.nodeBounds), nil
	}
	if strings.EqualFold(cell, "none") {
		return catalogue.NodeNone, nil
	}
	digits := cell
	if len(cell) > 4 && strings.EqualFold(cell[:4], "node") {
		digits = cell[4:]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return catalogue.NodeNone, fmt.Errorf("invalid node %q", cell)
	}
	return catalogue.Node(n), nil
}

// parseIngredients reads "Item:Amount;Item:Amount". A missing amount means 1.
func parseIngredients(cell string) ([]catalogue.Ingredient, error) {
	entries := splitList(cell)
	if len(entries) == 0 {
		return nil, nil
	}

	out := make([]catalogue.Ingredient, 0, len(entries))
	for _, entry := range entries {
		id, amount, hasAmount := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("ingredient %q has no item", entry)
		}
		n := 1
		if hasAmount {
			parsed, err := strconv.Atoi(strings.TrimSpace(amount))
			if err != nil || parsed <= 0 {
				return nil, fmt.Errorf("invalid amount in ingredient %q", entry)
			}
			n = parsed
		}
		out = append(out, catalogue.Ingredient{Item: catalogue.ItemID(id), Amount: n})
	}
	return out, nil
}

// parseBlueprint splits the unlock conditions into fragment, databox flag and
// plain item conditions. No conditions and no depth means no blueprint data.
func parseBlueprint(unlockCell, depthCell string) (*catalogue.Blueprint, error) {
	depth, err := optionalInt("blueprint depth", depthCell)
	if err != nil {
		return nil, err
	}
	conditions := splitList(unlockCell)
	if len(conditions) == 0 && depth == 0 {
		return nil, nil
	}

	bp := &catalogue.Blueprint{UnlockDepth: depth}
	for _, c := range conditions {
		lower := strings.ToLower(c)
		switch {
		case strings.Contains(lower, "fragment"):
			bp.Fragment = catalogue.ItemID(c)
		case strings.Contains(lower, "databox"):
			bp.Databox = true
		default:
			bp.UnlockConditions = append(bp.UnlockConditions, catalogue.ItemID(c))
		}
	}
	return bp, nil
}

func toItemIDs(ids []string) []catalogue.ItemID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]catalogue.ItemID, len(ids))
	for i, id := range ids {
		out[i] = catalogue.ItemID(id)
	}
	return out
}
