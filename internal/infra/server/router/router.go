// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/integration/entrypoint/controller"
	"github.com/spendsync/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	expenseController   *controller.ExpenseController
	recurringController *controller.RecurringController
	budgetController    *controller.BudgetController
	currencyController  *controller.CurrencyController
	jobController       *controller.JobController
	rateLimiter         *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// Controllers groups the HTTP handlers served by the router. Any nil
// controller leaves its routes unregistered.
type Controllers struct {
	Health    *controller.HealthController
	Expense   *controller.ExpenseController
	Recurring *controller.RecurringController
	Budget    *controller.BudgetController
	Currency  *controller.CurrencyController
	Job       *controller.JobController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    controllers.Health,
		expenseController:   controllers.Expense,
		recurringController: controllers.Recurring,
		budgetController:    controllers.Budget,
		currencyController:  controllers.Currency,
		jobController:       controllers.Job,
		rateLimiter:         rateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), requestLogger())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	if r.healthController != nil {
		r.engine.GET("/health", r.healthController.Check)
	}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}
	if r.authMiddleware == nil {
		return
	}
	v1.Use(r.authMiddleware.Authenticate())

	if r.expenseController != nil {
		expenses := v1.Group("/expenses")
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.expenseController.Create)
			expenses.PUT("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
		}
	}

	if r.budgetController != nil {
		budget := v1.Group("/budget")
		{
			budget.POST("", r.budgetController.Set)
			budget.GET("/monthly", r.budgetController.ListMonthly)
			budget.PUT("/monthly/:month", r.budgetController.SetMonthly)
			budget.GET("/summary", r.budgetController.Summary)
			budget.GET("/savings", r.budgetController.Savings)
			budget.GET("/history", r.budgetController.History)
			budget.GET("/group", r.budgetController.Group)
		}
	}

	if r.recurringController != nil {
		recurring := v1.Group("/recurring")
		{
			recurring.GET("", r.recurringController.List)
			recurring.POST("", r.recurringController.Create)
			recurring.DELETE("/:id", r.recurringController.Delete)
		}
	}

	if r.currencyController != nil {
		v1.GET("/currency/rate", r.currencyController.Rate)
	}

	if r.jobController != nil {
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.RequireAdmin())
		{
			admin.GET("/jobs", r.jobController.List)
			admin.POST("/jobs/:job", r.jobController.Run)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
