// Package summary contains the aggregate read and repair use cases.
package summary

import (
	"context"

	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for reading the summary.
type GetSummaryInput struct {
	Session *session.Session
}

// GetSummaryOutput represents the output of reading the summary.
type GetSummaryOutput struct {
	Summary entity.Summary
}

// GetSummaryUseCase reads the mirrored summary.
type GetSummaryUseCase struct{}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase() *GetSummaryUseCase {
	return &GetSummaryUseCase{}
}

// Execute returns the summary from the local mirror.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	return &GetSummaryOutput{Summary: input.Session.Summary()}, nil
}
