//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/config"
	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/infra/dependency"
	"github.com/spendsync/backend/internal/integration/email"
	"github.com/spendsync/backend/internal/integration/persistence"
	"github.com/spendsync/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	adminUserID   = "admin"
	opsRecipient  = "ops@spendsync.test"
)

type testContext struct {
	server   *httptest.Server
	client   *http.Client
	injector *dependency.Injector
	headers  map[string]string
	response *response

	db       *mock.Db
	timeMock *mock.Time
	discord  *mock.Discord
	rateAPI  *mock.RateAPI
	mailer   *email.MockEmailSender

	expenseRepo   adapter.ExpenseRepository
	recurringRepo adapter.RecurringExpenseRepository
	budgetRepo    adapter.BudgetRepository

	accessToken string
	lastID      string
}

type response struct {
	status int
	body   any
}

var rateAPI *mock.RateAPI

// InitializeTestSuite sets up resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		rateAPI = mock.NewRateAPI()
	})

	ctx.AfterSuite(func() {
		if rateAPI != nil {
			rateAPI.Close()
		}
	})
}

// InitializeScenario wires a fresh application for each scenario on top of
// the shared store.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	registerSteps(ctx, test)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.lastID = ""

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	redisClient, _ := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return err
	}

	t.rateAPI = rateAPI
	t.rateAPI.Reset()
	t.rateAPI.SetRate("IDR", 16000)

	t.timeMock = mock.NewTime()
	t.timeMock.SetCurrentTime(time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	t.discord = mock.NewDiscord()
	t.mailer = email.NewMockEmailSender()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Admin.UserIDs = []string{adminUserID}
	cfg.Scheduler.Timezone = "UTC"
	cfg.Currency.BaseCurrency = "USD"
	cfg.Currency.DisplayCurrency = "IDR"
	cfg.Currency.RateURL = t.rateAPI.GetUrl()
	cfg.Currency.FallbackRate = 15000
	cfg.Email.OpsRecipient = opsRecipient

	injector, err := dependency.NewInjector(cfg, t.db.DbConn, dependency.Options{
		Clock:         t.timeMock,
		Redis:         redisClient,
		Discord:       t.discord,
		EmailSender:   t.mailer,
		DBHealthCheck: func() bool { return true },
	})
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	t.injector = injector
	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

	t.expenseRepo = persistence.NewExpenseRepository(t.db.DbConn)
	t.recurringRepo = persistence.NewRecurringExpenseRepository(t.db.DbConn)
	t.budgetRepo = persistence.NewBudgetRepository(t.db.DbConn)

	return nil
}
