package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/config"
	"github.com/lexirev/lexirev/internal/platform/logger"
)

// TokenVerifier validates access tokens and extracts the user they were
// issued for.
type TokenVerifier interface {
	// VerifyToken validates the token string and returns the user ID it
	// carries. Returns ErrInvalidToken, ErrExpiredToken, or
	// ErrTokenNotYetValid on failure.
	VerifyToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// hmacTokenVerifier validates tokens signed with HMAC-SHA256.
type hmacTokenVerifier struct {
	signingKey []byte
	timeFunc   func() time.Time
	clockSkew  time.Duration
}

// tokenClaims mirrors the claim layout the identity system issues.
type tokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenVerifier implements TokenVerifier interface
var _ TokenVerifier = (*hmacTokenVerifier)(nil)

// NewTokenVerifier creates a TokenVerifier from the auth configuration.
func NewTokenVerifier(cfg config.AuthConfig) (TokenVerifier, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacTokenVerifier{
		signingKey: []byte(cfg.JWTSecret),
		timeFunc:   time.Now,
		// Allow minor clock drift between the issuer and this service.
		clockSkew: 2 * time.Minute,
	}, nil
}

// VerifyToken implements TokenVerifier.VerifyToken.
func (v *hmacTokenVerifier) VerifyToken(
	ctx context.Context,
	tokenString string,
) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	now := v.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return uuid.Nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", "error", err)
			return uuid.Nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed", "error", err)
			return uuid.Nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if claims.UserID == uuid.Nil {
		log.Debug("token validation failed: missing user ID claim")
		return uuid.Nil, ErrInvalidToken
	}

	return claims.UserID, nil
}
