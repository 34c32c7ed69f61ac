// Package category contains category-related use cases. Categories are the
// reference data of the ledger: transactions and budget goals point at them,
// and removal cascades through both referencing collections.
package category

import (
	"context"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// AddCategoryInput represents the input for category creation.
type AddCategoryInput struct {
	Session *session.Session
	Name    string
	Icon    entity.CategoryIcon
	Color   string
	Kind    entity.CategoryKind
}

// AddCategoryOutput represents the output of category creation.
type AddCategoryOutput struct {
	Category *entity.Category
}

// AddCategoryUseCase handles category creation logic.
type AddCategoryUseCase struct {
	store adapter.RemoteStore
}

// NewAddCategoryUseCase creates a new AddCategoryUseCase instance.
func NewAddCategoryUseCase(store adapter.RemoteStore) *AddCategoryUseCase {
	return &AddCategoryUseCase{store: store}
}

// Execute creates the category. Omitted icon, color and kind fall back to the
// defaults rather than failing.
func (uc *AddCategoryUseCase) Execute(ctx context.Context, input AddCategoryInput) (*AddCategoryOutput, error) {
	if err := validateCategoryFields(input.Name, input.Icon, input.Kind); err != nil {
		return nil, err
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	kind := input.Kind
	if kind == "" {
		kind = entity.CategoryKindExpense
	}

	category := entity.NewCategory(input.Name, icon, color, kind)
	userID := input.Session.UserID()
	if err := uc.store.Set(ctx, session.CategoryPath(userID, category.ID), category); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to write category", err)
	}
	return &AddCategoryOutput{Category: category}, nil
}

func validateCategoryFields(name string, icon entity.CategoryIcon, kind entity.CategoryKind) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeEmptyCategoryName,
			"name cannot be empty",
			domainerror.ErrEmptyCategoryName,
		)
	}
	if icon != "" && !icon.IsValid() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryIcon,
			"unsupported icon identifier",
			domainerror.ErrInvalidCategoryIcon,
		)
	}
	if kind != "" && !kind.IsValid() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKind,
			"kind must be 'income', 'expense' or 'neutral'",
			domainerror.ErrInvalidCategoryKind,
		)
	}
	return nil
}
