// Package auth validates the JWT bearer tokens issued by the surrounding
// identity system. Token issuance lives elsewhere; this engine only needs
// to resolve a token to a user ID.
package auth

import "errors"

var (
	// ErrInvalidToken indicates the token is malformed, carries an invalid
	// signature, or otherwise failed validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid indicates the token's not-before is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")
)
