package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

// RecipeNode is one ingredient in a rendered recipe tree
type RecipeNode struct {
	Item     catalogue.ItemID
	Amount   int
	Crafted  bool // the item has a recipe in the result
	Upgrade  bool // the slot holds the item being upgraded
	Repeated bool // already expanded higher up the same branch
	Children []*RecipeNode
}

// BuildRecipeTree expands the recipe of id through the result. Ingredients
// without a recipe in the result are leaves. maxDepth <= 0 means no limit.
func BuildRecipeTree(res *result.Result, id catalogue.ItemID, maxDepth int) *RecipeNode {
	if res == nil {
		return nil
	}
	root := &RecipeNode{Item: id, Amount: 1}
	expand(res, root, map[catalogue.ItemID]bool{}, 0, maxDepth)
	return root
}

func expand(res *result.Result, node *RecipeNode, onPath map[catalogue.ItemID]bool, depth, maxDepth int) {
	recipe, ok := res.Recipe(node.Item)
	if !ok {
		return
	}
	node.Crafted = true
	if onPath[node.Item] {
		node.Repeated = true
		return
	}
	if maxDepth > 0 && depth >= maxDepth {
		return
	}

	onPath[node.Item] = true
	defer delete(onPath, node.Item)

	for slot, ing := range recipe.Ingredients {
		child := &RecipeNode{
			Item:    ing.Item,
			Amount:  ing.Amount,
			Upgrade: slot < len(recipe.Prerequisites),
		}
		expand(res, child, onPath, depth+1, maxDepth)
		node.Children = append(node.Children, child)
	}
}

// CountNodes returns the number of nodes in the tree
func (n *RecipeNode) CountNodes() int {
	count := 1
	for _, child := range n.Children {
		count += child.CountNodes()
	}
	return count
}

// TotalDepth returns the number of levels below and including n
func (n *RecipeNode) TotalDepth() int {
	deepest := 0
	for _, child := range n.Children {
		if d := child.TotalDepth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// TreeFormatter renders recipe trees for the terminal
type TreeFormatter struct {
	useColors bool
	useEmojis bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors, useEmojis bool) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
		useEmojis: useEmojis,
	}
}

// FormatTree renders a recipe tree with box-drawing guides
func (f *TreeFormatter) FormatTree(root *RecipeNode) string {
	if root == nil {
		return "(empty tree)"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

func (f *TreeFormatter) formatNode(builder *strings.Builder, node *RecipeNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	amount := ""
	if !isRoot && node.Amount > 1 {
		amount = fmt.Sprintf(" x%d", node.Amount)
	}

	marker := ""
	if node.Upgrade {
		marker = " (upgrade)"
	}
	if node.Repeated {
		marker += " (repeated)"
	}

	builder.WriteString(fmt.Sprintf("%s%s %s%s%s%s%s\n",
		linePrefix,
		f.getKindIcon(node),
		f.getColor(node),
		node.Item,
		f.colorReset(),
		amount,
		marker,
	))

	if len(node.Children) > 0 {
		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}

		for i, child := range node.Children {
			f.formatNode(builder, child, childPrefix, i == len(node.Children)-1, false)
		}
	}
}

func (f *TreeFormatter) getKindIcon(node *RecipeNode) string {
	if !f.useEmojis {
		if node.Crafted {
			return "[C]"
		}
		return "[R]"
	}

	if node.Crafted {
		return "🔧"
	}
	return "🪨"
}

// getColor returns the ANSI color of a node
func (f *TreeFormatter) getColor(node *RecipeNode) string {
	if !f.useColors {
		return ""
	}

	switch {
	case node.Upgrade:
		return "\033[33m" // Yellow
	case node.Crafted:
		return "\033[32m" // Green
	default:
		return ""
	}
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatTreeSummary creates a compact summary of the tree
func (f *TreeFormatter) FormatTreeSummary(root *RecipeNode) string {
	if root == nil {
		return "No recipe tree"
	}

	crafted := 0
	var walk func(n *RecipeNode)
	walk = func(n *RecipeNode) {
		if n.Crafted {
			crafted++
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)

	total := root.CountNodes()
	return fmt.Sprintf("Tree: %d nodes (%d crafted, %d raw), depth=%d",
		total, crafted, total-crafted, root.TotalDepth())
}

// FormatRecipeDetails describes a single randomised recipe
func (f *TreeFormatter) FormatRecipeDetails(recipe result.RandomizedRecipe) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Item:          %s\n", recipe.Item))
	builder.WriteString(fmt.Sprintf("Category:      %s\n", recipe.Category))
	builder.WriteString(fmt.Sprintf("Node:          %s\n", recipe.Node))
	builder.WriteString(fmt.Sprintf("Craft Amount:  %d\n", recipe.CraftAmount))

	if len(recipe.Prerequisites) > 0 {
		builder.WriteString(fmt.Sprintf("Upgrades:      %s\n", joinIDs(recipe.Prerequisites)))
	}
	if len(recipe.LinkedItems) > 0 {
		builder.WriteString(fmt.Sprintf("Linked Items:  %s\n", joinIDs(recipe.LinkedItems)))
	}

	builder.WriteString(fmt.Sprintf("Ingredients:   %d\n", len(recipe.Ingredients)))
	for i, ing := range recipe.Ingredients {
		builder.WriteString(fmt.Sprintf("  %d. %s x%d\n", i+1, ing.Item, ing.Amount))
	}

	return builder.String()
}

func joinIDs(ids []catalogue.ItemID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
