// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

const (
	defaultAccessTokenDuration = 24 * time.Hour
	tokenIssuer                = "spendsync"
)

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret   []byte
	duration time.Duration
	isAdmin  func(userID string) bool
	clock    adapter.Clock
}

// NewTokenService creates a new token service instance. isAdmin is consulted
// on every validation so admin rights follow the current configuration.
func NewTokenService(secret string, duration time.Duration, isAdmin func(userID string) bool, clock adapter.Clock) adapter.TokenService {
	if duration <= 0 {
		duration = defaultAccessTokenDuration
	}
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
		isAdmin:  isAdmin,
		clock:    clock,
	}
}

// IssueAccessToken signs a token for the given Discord identity.
func (s *tokenService) IssueAccessToken(_ context.Context, userID, username string) (string, error) {
	if userID == "" {
		return "", domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "cannot issue token", domainerror.ErrMissingUserID)
	}

	now := s.clock.Now().UTC()
	claims := CustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", domainerror.ErrMissingUserID)
	}

	return &adapter.TokenClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		IsAdmin:   s.isAdmin(claims.UserID),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *tokenService) parseJWT(tokenString string) (*CustomClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.clock.Now),
	)

	token, err := parser.ParseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "token has expired", domainerror.ErrExpiredToken)
		}
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err))
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", domainerror.ErrInvalidToken)
	}
	return claims, nil
}
