package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/integration/entrypoint/controller"
	"github.com/spendsync/backend/internal/integration/entrypoint/middleware"
)

type rejectAll struct{}

func (rejectAll) IssueAccessToken(context.Context, string, string) (string, error) {
	return "", errors.New("not supported")
}

func (rejectAll) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("invalid")
}

func serve(engine http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.1.1.1:5000"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsNotRateLimited(t *testing.T) {
	r := NewRouter(Controllers{
		Health: controller.NewHealthController(func() bool { return true }, nil),
	}, middleware.NewRateLimiter(1, time.Minute), middleware.NewAuthMiddleware(rejectAll{}))
	engine := r.Setup("test")

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
	}
}

func TestRouter_APIRequiresTokenAndIsRateLimited(t *testing.T) {
	r := NewRouter(Controllers{
		Expense: &controller.ExpenseController{},
		Job:     &controller.JobController{},
	}, middleware.NewRateLimiter(2, time.Minute), middleware.NewAuthMiddleware(rejectAll{}))
	engine := r.Setup("test")

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/expenses").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/admin/jobs/daily").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodGet, "/api/v1/expenses").Code)
}

func TestRouter_UnwiredControllersHaveNoRoutes(t *testing.T) {
	engine := NewRouter(Controllers{}, nil, middleware.NewAuthMiddleware(rejectAll{})).Setup("test")

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/recurring").Code)
}
