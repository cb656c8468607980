package catalogue

import "fmt"

// UnknownCategoryTag indicates a data file or configuration named a category
// tag outside the taxonomy. Callers fall back to CategoryNone and warn.
type UnknownCategoryTag struct {
	Tag        string
	Suggestion string
}

func (e *UnknownCategoryTag) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown category tag %q (did you mean %q?)", e.Tag, e.Suggestion)
	}
	return fmt.Sprintf("unknown category tag %q", e.Tag)
}

// ErrDuplicateItem indicates two records share an item id
type ErrDuplicateItem struct {
	ID ItemID
}

func (e *ErrDuplicateItem) Error() string {
	return fmt.Sprintf("duplicate item id: %s", e.ID)
}
