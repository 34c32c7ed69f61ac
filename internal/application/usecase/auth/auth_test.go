package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pocketledger/backend/internal/application/session"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/persistence"
)

type authFixture struct {
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
	sessions *session.Manager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := persistence.NewMemoryStore()
	userRepo := persistence.NewUserRepository(store)
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour, persistence.NewMemoryTokenRepository())
	sessions := session.NewManager(store, nil, nil)
	t.Cleanup(sessions.Shutdown)

	return &authFixture{
		register: NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		login:    NewLoginUserUseCase(userRepo, passwordService, tokenService, sessions),
		refresh:  NewRefreshTokenUseCase(tokenService),
		logout:   NewLogoutUserUseCase(tokenService, sessions),
		sessions: sessions,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.register.Execute(ctx, RegisterUserInput{
		Email: "user@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatal("registration returned empty tokens")
	}

	logged, err := f.login.Execute(ctx, LoginUserInput{
		Email: "user@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.User.ID != registered.User.ID {
		t.Fatal("login resolved a different user")
	}

	// Login opens the sync session.
	sess, ok := f.sessions.Get(registered.User.ID.String())
	if !ok {
		t.Fatal("no session opened on login")
	}
	if sess.State() != session.StateSynced {
		t.Fatalf("session state = %q, want synced", sess.State())
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if _, err := f.register.Execute(ctx, RegisterUserInput{Email: "not-an-email", Password: "correct-horse"}); !errors.Is(err, domainerror.ErrInvalidEmail) {
		t.Fatalf("bad email error = %v", err)
	}
	if _, err := f.register.Execute(ctx, RegisterUserInput{Email: "user@example.com", Password: "short"}); !errors.Is(err, domainerror.ErrWeakPassword) {
		t.Fatalf("weak password error = %v", err)
	}

	if _, err := f.register.Execute(ctx, RegisterUserInput{Email: "user@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.register.Execute(ctx, RegisterUserInput{Email: "user@example.com", Password: "correct-horse"}); !errors.Is(err, domainerror.ErrEmailAlreadyRegistered) {
		t.Fatalf("duplicate email error = %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if _, err := f.register.Execute(ctx, RegisterUserInput{Email: "user@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := f.login.Execute(ctx, LoginUserInput{Email: "user@example.com", Password: "wrong"}); !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v", err)
	}
	if _, err := f.login.Execute(ctx, LoginUserInput{Email: "ghost@example.com", Password: "correct-horse"}); !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Fatalf("unknown email error = %v", err)
	}
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.register.Execute(ctx, RegisterUserInput{Email: "user@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rotated, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == registered.RefreshToken {
		t.Fatal("refresh token not rotated")
	}

	// The consumed token must not be replayable.
	if _, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken}); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Fatalf("replay error = %v", err)
	}
}

func TestLogoutTearsDownSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.register.Execute(ctx, RegisterUserInput{Email: "user@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.login.Execute(ctx, LoginUserInput{Email: "user@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := f.logout.Execute(ctx, LogoutUserInput{
		UserID:       registered.User.ID,
		RefreshToken: registered.RefreshToken,
	}); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, ok := f.sessions.Get(registered.User.ID.String()); ok {
		t.Fatal("session survived logout")
	}
}
