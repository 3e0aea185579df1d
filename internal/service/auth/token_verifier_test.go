package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lexirev/lexirev/internal/config"
	"github.com/lexirev/lexirev/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-thats-at-least-32-chars-long"

func newVerifier(t *testing.T) auth.TokenVerifier {
	t.Helper()

	verifier, err := auth.NewTokenVerifier(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	return verifier
}

// signToken issues a token the way the surrounding identity system does.
func signToken(t *testing.T, secret string, userID uuid.UUID, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uid": userID.String(),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewTokenVerifierRejectsShortSecret(t *testing.T) {
	_, err := auth.NewTokenVerifier(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestVerifyToken(t *testing.T) {
	verifier := newVerifier(t)
	userID := uuid.New()
	now := time.Now()

	tokenString := signToken(t, testSecret, userID, now, now.Add(time.Hour))

	got, err := verifier.VerifyToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyTokenExpired(t *testing.T) {
	verifier := newVerifier(t)
	now := time.Now()

	// Expired well beyond the clock-skew leeway.
	tokenString := signToken(t, testSecret, uuid.New(), now.Add(-2*time.Hour), now.Add(-time.Hour))

	_, err := verifier.VerifyToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestVerifyTokenWrongSignature(t *testing.T) {
	verifier := newVerifier(t)
	now := time.Now()

	otherSecret := "a-different-secret-also-32-characters-plus"
	tokenString := signToken(t, otherSecret, uuid.New(), now, now.Add(time.Hour))

	_, err := verifier.VerifyToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenMalformed(t *testing.T) {
	verifier := newVerifier(t)

	_, err := verifier.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenNotYetValid(t *testing.T) {
	verifier := newVerifier(t)
	now := time.Now()

	claims := jwt.MapClaims{
		"uid": uuid.New().String(),
		"nbf": now.Add(time.Hour).Unix(),
		"exp": now.Add(2 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), signed)
	assert.ErrorIs(t, err, auth.ErrTokenNotYetValid)
}

func TestVerifyTokenMissingUserClaim(t *testing.T) {
	verifier := newVerifier(t)
	now := time.Now()

	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenWrongAlgorithm(t *testing.T) {
	verifier := newVerifier(t)

	// alg=none tokens must never pass.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid": uuid.New().String(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
