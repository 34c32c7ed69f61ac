package category

import (
	"context"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category replacement.
type UpdateCategoryInput struct {
	Session *session.Session
	ID      string
	Name    string
	Icon    entity.CategoryIcon
	Color   string
	Kind    entity.CategoryKind
}

// UpdateCategoryOutput represents the output of category replacement.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category replacement logic.
type UpdateCategoryUseCase struct {
	store adapter.RemoteStore
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(store adapter.RemoteStore) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{store: store}
}

// Execute rewrites the category record. References from transactions and
// budget goals are by id, so renames need no cascade.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if err := validateCategoryFields(input.Name, input.Icon, input.Kind); err != nil {
		return nil, err
	}

	existing, ok := input.Session.CategoryByID(input.ID)
	if !ok {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	updated := &entity.Category{
		ID:    input.ID,
		Name:  input.Name,
		Icon:  input.Icon,
		Color: input.Color,
		Kind:  input.Kind,
	}
	if updated.Icon == "" {
		updated.Icon = existing.Icon
	}
	if updated.Color == "" {
		updated.Color = existing.Color
	}
	if updated.Kind == "" {
		updated.Kind = existing.Kind
	}

	userID := input.Session.UserID()
	if err := uc.store.Set(ctx, session.CategoryPath(userID, updated.ID), updated); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to write category", err)
	}
	return &UpdateCategoryOutput{Category: updated}, nil
}
