package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/session"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	UserID       uuid.UUID
	RefreshToken string
}

// LogoutUserUseCase handles user logout logic. Logout revokes the refresh
// token and tears the sync session down, dropping every mirror and live
// subscription for the user.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	sessions     *session.Manager
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, sessions *session.Manager) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService, sessions: sessions}
}

// Execute performs the user logout. Token revocation failures are logged,
// not surfaced: the session teardown must happen regardless.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if input.RefreshToken != "" {
		if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
			slog.Warn("Failed to invalidate refresh token on logout", "user_id", input.UserID, "error", err)
		}
	}
	uc.sessions.Teardown(input.UserID.String())
	return nil
}
