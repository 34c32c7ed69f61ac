// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// CategoryKind classifies what a category is for. Income-kind categories are
// excluded from budget targeting; the kind replaces the old convention of
// special-casing categories by name.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindNeutral CategoryKind = "neutral"
)

// IsValid reports whether the category kind is a known value.
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindIncome || k == CategoryKindExpense || k == CategoryKindNeutral
}

// DefaultCategoryColor is the display color used when none is provided.
const DefaultCategoryColor = "hsl(231, 48%, 48%)"

// DefaultCategoryIcon is the icon used when none is provided.
const DefaultCategoryIcon = IconTag

// Category represents a user-defined grouping for transactions, carrying a
// display icon and color. The ID is the record key in the document store.
type Category struct {
	ID    string       `json:"-"`
	Name  string       `json:"name"`
	Icon  CategoryIcon `json:"icon"`
	Color string       `json:"color"`
	Kind  CategoryKind `json:"kind"`
}

// NewCategory creates a new Category entity with a fresh record id.
// Defaulting of icon and color is applied in the use case layer before calling
// this constructor.
func NewCategory(name string, icon CategoryIcon, color string, kind CategoryKind) *Category {
	return &Category{
		ID:    uuid.NewString(),
		Name:  name,
		Icon:  icon,
		Color: color,
		Kind:  kind,
	}
}
