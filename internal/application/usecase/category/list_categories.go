package category

import (
	"context"
	"sort"

	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Session *session.Session
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase reads the category mirror.
type ListCategoriesUseCase struct{}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase() *ListCategoriesUseCase {
	return &ListCategoriesUseCase{}
}

// Execute returns the mirrored categories in stable name order.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories := input.Session.Categories()
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return &ListCategoriesOutput{Categories: categories}, nil
}
