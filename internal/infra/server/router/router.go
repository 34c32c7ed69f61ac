// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	budgetController      *controller.BudgetController
	summaryController     *controller.SummaryController
	paymentController     *controller.PaymentController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	budgetController *controller.BudgetController,
	summaryController *controller.SummaryController,
	paymentController *controller.PaymentController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		transactionController: transactionController,
		categoryController:    categoryController,
		budgetController:      budgetController,
		summaryController:     summaryController,
		paymentController:     paymentController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		// Data routes run behind the sync session: the middleware opens the
		// user's mirrors on first use and hands the session to the handlers.
		data := v1.Group("")
		data.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireSession())
		{
			transactions := data.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PUT("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}

			categories := data.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PUT("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}

			budgets := data.Group("/budgets")
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.PUT("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}

			data.GET("/summary", r.summaryController.Get)
			data.POST("/summary/recompute", r.summaryController.Recompute)
		}

		payments := v1.Group("/payments")
		payments.Use(r.authMiddleware.Authenticate())
		{
			payments.POST("/intent", r.paymentController.CreateIntent)
		}
	}
}
