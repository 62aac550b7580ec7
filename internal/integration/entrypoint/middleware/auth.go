// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated Discord user ID.
	UserIDKey ContextKey = "user_id"
	// UsernameKey is the context key for the authenticated display name.
	UsernameKey ContextKey = "username"
	// IsAdminKey is the context key for the admin flag.
	IsAdminKey ContextKey = "is_admin"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortAuth(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			abortAuth(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}
		if token = strings.TrimSpace(token); token == "" {
			abortAuth(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, domainerror.ErrExpiredToken) {
				code = domainerror.ErrCodeExpiredToken
			}
			abortAuth(c, "Invalid or expired token", code)
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UsernameKey), claims.Username)
		c.Set(string(IsAdminKey), claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin rejects callers without admin rights. It must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok || !identity.IsAdmin {
			abortAuth(c, "Admin access required", domainerror.ErrCodeForbidden)
			return
		}
		c.Next()
	}
}

// AuthStatus maps an auth code to its HTTP status.
func AuthStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusUnauthorized
}

func abortAuth(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.JSON(AuthStatus(code), dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
	c.Abort()
}

// GetIdentityFromContext extracts the authenticated caller from the Gin context.
func GetIdentityFromContext(c *gin.Context) (Identity, bool) {
	userID := c.GetString(string(UserIDKey))
	if userID == "" {
		return Identity{}, false
	}
	return Identity{
		UserID:   userID,
		Username: c.GetString(string(UsernameKey)),
		IsAdmin:  c.GetBool(string(IsAdminKey)),
	}, true
}
