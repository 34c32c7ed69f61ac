package summary

import (
	"context"
	"log/slog"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/calc"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// RecomputeSummaryInput represents the input for summary repair.
type RecomputeSummaryInput struct {
	Session *session.Session
}

// RecomputeSummaryOutput reports the repaired summary and whether the stored
// value had drifted from the transaction log.
type RecomputeSummaryOutput struct {
	Summary entity.Summary
	Drifted bool
}

// RecomputeSummaryUseCase rebuilds the summary from the full transaction set.
// Incremental deltas are exposed to lost updates when two writers interleave
// their read-modify-write cycles; this pass is the repair for that drift.
type RecomputeSummaryUseCase struct {
	store adapter.RemoteStore
}

// NewRecomputeSummaryUseCase creates a new RecomputeSummaryUseCase instance.
func NewRecomputeSummaryUseCase(store adapter.RemoteStore) *RecomputeSummaryUseCase {
	return &RecomputeSummaryUseCase{store: store}
}

// Execute recomputes the summary from the remote transaction collection and
// writes it back only when it differs from the stored record.
func (uc *RecomputeSummaryUseCase) Execute(ctx context.Context, input RecomputeSummaryInput) (*RecomputeSummaryOutput, error) {
	userID := input.Session.UserID()

	stored, err := session.FetchSummary(ctx, uc.store, userID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read summary", err)
	}

	// Rebuild from the store, not the session mirror: the mirror may not
	// have seen every committed write yet, and repairing from a stale
	// mirror would overwrite a correct summary.
	transactions, err := session.FetchTransactions(ctx, uc.store, userID)
	if err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteRead, "failed to read transactions", err)
	}

	recomputed := calc.RecomputeSummary(transactions)
	if stored.TotalIncome.Equal(recomputed.TotalIncome) &&
		stored.TotalExpenses.Equal(recomputed.TotalExpenses) &&
		stored.CurrentBalance.Equal(recomputed.CurrentBalance) {
		return &RecomputeSummaryOutput{Summary: stored, Drifted: false}, nil
	}

	slog.Warn("Summary drift detected, repairing",
		"user_id", userID,
		"stored_balance", stored.CurrentBalance,
		"recomputed_balance", recomputed.CurrentBalance,
	)
	if err := uc.store.Set(ctx, session.SummaryPath(userID), recomputed); err != nil {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeRemoteWrite, "failed to write summary", err)
	}
	return &RecomputeSummaryOutput{Summary: recomputed, Drifted: true}, nil
}
