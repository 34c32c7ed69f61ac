package dto

import (
	"github.com/pocketledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
	Kind  string `json:"kind,omitempty" binding:"omitempty,oneof=expense income neutral"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
	Kind  string `json:"kind,omitempty" binding:"omitempty,oneof=expense income neutral"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Kind  string `json:"kind"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// DeleteCategoryResponse reports the cascade a category removal triggered.
type DeleteCategoryResponse struct {
	DeletedTransactions int             `json:"deleted_transactions"`
	DeletedBudgetGoals  int             `json:"deleted_budget_goals"`
	Summary             SummaryResponse `json:"summary"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Icon:  string(category.Icon),
		Color: category.Color,
		Kind:  string(category.Kind),
	}
}

// ToCategoryListResponse converts domain categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, category := range categories {
		out.Categories = append(out.Categories, ToCategoryResponse(category))
	}
	return out
}
