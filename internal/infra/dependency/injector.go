// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/application/session"
	"github.com/pocketledger/backend/internal/application/usecase/auth"
	"github.com/pocketledger/backend/internal/application/usecase/budget"
	"github.com/pocketledger/backend/internal/application/usecase/category"
	"github.com/pocketledger/backend/internal/application/usecase/payment"
	"github.com/pocketledger/backend/internal/application/usecase/summary"
	"github.com/pocketledger/backend/internal/application/usecase/transaction"
	"github.com/pocketledger/backend/internal/infra/server/router"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
	"github.com/pocketledger/backend/internal/integration/notify"
	integrationpayment "github.com/pocketledger/backend/internal/integration/payment"
	"github.com/pocketledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Store    adapter.RemoteStore
	Sessions *session.Manager
	Router   *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case the store and the refresh token
// registry fall back to in-process memory.
func NewInjector(cfg *config.Config, redisClient *redis.Client) *Injector {
	var store adapter.RemoteStore
	var tokenRepo persistence.TokenRepository
	if redisClient != nil {
		store = persistence.NewRedisStore(redisClient)
		tokenRepo = persistence.NewRedisTokenRepository(redisClient)
	} else {
		store = persistence.NewMemoryStore()
		tokenRepo = persistence.NewMemoryTokenRepository()
	}

	userRepo := persistence.NewUserRepository(store)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)

	var notifier adapter.AlertNotifier
	if cfg.Alerts.Enabled && cfg.Alerts.ResendAPIKey != "" {
		notifier = notify.NewResendNotifier(cfg.Alerts.ResendAPIKey, cfg.Alerts.FromName, cfg.Alerts.FromEmail)
	}
	sessions := session.NewManager(store, notifier, nil)

	paymentService := integrationpayment.NewStripeService(cfg.Stripe.SecretKey)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, sessions)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, sessions)

	// Transaction use cases
	addTransactionUseCase := transaction.NewAddTransactionUseCase(store)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(store)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(store)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase()
	addCategoryUseCase := category.NewAddCategoryUseCase(store)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(store)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(store)

	// Budget use cases
	listBudgetGoalsUseCase := budget.NewListBudgetGoalsUseCase()
	addBudgetGoalUseCase := budget.NewAddBudgetGoalUseCase(store)
	updateBudgetGoalUseCase := budget.NewUpdateBudgetGoalUseCase(store)
	deleteBudgetGoalUseCase := budget.NewDeleteBudgetGoalUseCase(store)

	// Summary use cases
	getSummaryUseCase := summary.NewGetSummaryUseCase()
	recomputeSummaryUseCase := summary.NewRecomputeSummaryUseCase(store)

	// Payment use case
	createPaymentIntentUseCase := payment.NewCreatePaymentIntentUseCase(paymentService, cfg.Stripe.DefaultCurrency)

	healthController := controller.NewHealthController(func() bool {
		if redisClient == nil {
			return true
		}
		ctx, cancel := storePingContext()
		defer cancel()
		return redisClient.Ping(ctx).Err() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)
	transactionController := controller.NewTransactionController(
		addTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		addCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	budgetController := controller.NewBudgetController(
		listBudgetGoalsUseCase,
		addBudgetGoalUseCase,
		updateBudgetGoalUseCase,
		deleteBudgetGoalUseCase,
	)
	summaryController := controller.NewSummaryController(
		getSummaryUseCase,
		recomputeSummaryUseCase,
	)
	paymentController := controller.NewPaymentController(createPaymentIntentUseCase)

	// Higher login rate limits in test environments to keep suites stable
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, sessions)

	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		categoryController,
		budgetController,
		summaryController,
		paymentController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
		Router:   r,
	}
}

func storePingContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
