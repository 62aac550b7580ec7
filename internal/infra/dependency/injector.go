// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/spendsync/backend/config"
	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/application/usecase/alert"
	"github.com/spendsync/backend/internal/application/usecase/budget"
	currencyuc "github.com/spendsync/backend/internal/application/usecase/currency"
	"github.com/spendsync/backend/internal/application/usecase/expense"
	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/application/usecase/recurring"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/infra/scheduler"
	"github.com/spendsync/backend/internal/infra/server/router"
	"github.com/spendsync/backend/internal/integration/adapters"
	"github.com/spendsync/backend/internal/integration/currency"
	"github.com/spendsync/backend/internal/integration/discord"
	"github.com/spendsync/backend/internal/integration/email"
	"github.com/spendsync/backend/internal/integration/email/templates"
	"github.com/spendsync/backend/internal/integration/entrypoint/controller"
	"github.com/spendsync/backend/internal/integration/entrypoint/middleware"
	"github.com/spendsync/backend/internal/integration/persistence"
)

// Options carries the externally created clients. Redis and Discord may be
// nil, in which case rates are not cached and notifications are not
// delivered.
type Options struct {
	Clock         adapter.Clock
	Redis         *redis.Client
	Discord       discord.Session
	EmailSender   adapter.EmailSender
	RateFetcher   currency.RateFetcher
	DBHealthCheck func() bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Clock     adapter.Clock
	Router    *router.Router
	Scheduler *scheduler.Scheduler
	// EmailWorker is nil when no email sender is configured.
	EmailWorker *email.Worker

	RunJob       *job.RunJobUseCase
	RunDaily     *job.RunDailyUseCase
	ListRuns     *job.ListRunsUseCase
	Summary      *budget.GetSummaryUseCase
	TokenService adapter.TokenService
	Formatter    adapter.MoneyFormatter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	loc := cfg.Scheduler.Location()
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock(loc)
	}

	// Create repositories
	expenseRepo := persistence.NewExpenseRepository(db)
	recurringRepo := persistence.NewRecurringExpenseRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	runRepo := persistence.NewJobRunRepository(db)
	emailQueue := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	notifier := discord.NewNotifier(opts.Discord)

	fetcher := opts.RateFetcher
	if fetcher == nil {
		fetcher = currency.NewFrankfurterClient(cfg.Currency.RateURL, cfg.Currency.RequestTimeout)
	}
	rateProvider := currency.NewCachedProvider(fetcher, opts.Redis, clock, currency.ProviderConfig{
		TTL:          cfg.Currency.CacheTTL,
		FallbackRate: cfg.Currency.FallbackRate,
	})
	formatter := currency.NewFormatter(rateProvider, cfg.Currency.BaseCurrency, cfg.Currency.DisplayCurrency)

	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.Admin.IsAdmin, clock)

	var reports adapter.EmailService
	var worker *email.Worker
	if opts.EmailSender != nil {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		if cfg.Email.OpsRecipient != "" {
			reports = email.NewService(emailQueue, clock, cfg.Email.OpsRecipient)
		} else {
			slog.Warn("OPS_REPORT_EMAIL not set, job failure reports disabled")
		}
		worker = email.NewWorker(emailQueue, opts.EmailSender, renderer, clock, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
			Retention:    email.DefaultWorkerConfig().Retention,
		})
	}

	// Create ledger use cases
	loader := budget.NewLedgerLoader(budgetRepo, expenseRepo)
	createExpense := expense.NewCreateExpenseUseCase(expenseRepo, budgetRepo, clock)
	summary := budget.NewGetSummaryUseCase(loader, clock)

	// Create job passes
	passes := map[entity.JobName]job.Pass{
		entity.JobRecurring:     recurring.NewGenerateRecurringUseCase(recurringRepo, createExpense, clock),
		entity.JobBudgetAlerts:  alert.NewCheckAlertsUseCase(budgetRepo, loader, notifier, formatter, clock),
		entity.JobResetReminder: alert.NewResetReminderUseCase(budgetRepo, notifier, clock),
		entity.JobUpcomingBills: recurring.NewNotifyUpcomingUseCase(recurringRepo, notifier, formatter, clock),
	}
	runJob := job.NewRunJobUseCase(passes, runRepo, reports, clock)
	runDaily := job.NewRunDailyUseCase(runJob)
	listRuns := job.NewListRunsUseCase(runRepo)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(opts.DBHealthCheck, listRuns),
		Expense: controller.NewExpenseController(
			expense.NewListExpensesUseCase(expenseRepo, clock),
			createExpense,
			expense.NewUpdateExpenseUseCase(expenseRepo, clock),
			expense.NewDeleteExpenseUseCase(expenseRepo),
		),
		Recurring: controller.NewRecurringController(
			recurring.NewListRecurringUseCase(recurringRepo),
			recurring.NewCreateRecurringUseCase(recurringRepo),
			recurring.NewDeleteRecurringUseCase(recurringRepo),
		),
		Budget: controller.NewBudgetController(controller.BudgetUseCases{
			Summary:     summary,
			Savings:     budget.NewGetSavingsUseCase(loader, clock),
			History:     budget.NewGetHistoryUseCase(loader, clock),
			Group:       budget.NewGetGroupSummaryUseCase(loader, clock),
			Set:         budget.NewSetBudgetUseCase(budgetRepo),
			SetMonthly:  budget.NewSetMonthlyBudgetUseCase(budgetRepo),
			ListMonthly: budget.NewListMonthlyBudgetsUseCase(budgetRepo),
		}, formatter),
		Currency: controller.NewCurrencyController(
			currencyuc.NewGetRateUseCase(rateProvider, cfg.Currency.BaseCurrency, cfg.Currency.DisplayCurrency),
		),
		Job: controller.NewJobController(runJob, runDaily, listRuns),
	}

	// Create middleware
	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitMax, cfg.Server.RateLimitWindow)
	if opts.Redis != nil {
		rateLimiter = middleware.NewRedisRateLimiter(opts.Redis, cfg.Server.RateLimitMax, cfg.Server.RateLimitWindow)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(controllers, rateLimiter, authMiddleware)

	sched := scheduler.New(runJob, runDaily, scheduler.Config{
		Location:         loc,
		DailySpec:        cfg.Scheduler.DailySpec,
		HourlySpec:       cfg.Scheduler.HourlySpec,
		RunAlertsOnStart: cfg.Scheduler.RunAlertsOnStart,
	})

	return &Injector{
		Config:       cfg,
		DB:           db,
		Clock:        clock,
		Router:       r,
		Scheduler:    sched,
		EmailWorker:  worker,
		RunJob:       runJob,
		RunDaily:     runDaily,
		ListRuns:     listRuns,
		Summary:      summary,
		TokenService: tokenService,
		Formatter:    formatter,
	}, nil
}

// NewRedisClient connects to Redis. It returns nil without error when the URL
// is empty; a configured but unreachable server is an error.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
