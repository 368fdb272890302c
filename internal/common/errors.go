// Package common defines shared constants and sentinel errors used across
// client and server layers of EduCloud. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Startup errors.
	ErrConfiguration = errors.New("configuration error")

	// Per-call envelope errors. The request never leaves the client.
	ErrEncryption = errors.New("encryption error")
	ErrValidation = errors.New("validation error")

	// Per-call transport and server outcome errors.
	ErrNetwork      = errors.New("network error")
	ErrAuthRejected = errors.New("authentication rejected")

	// Local persistence errors. ErrStorageCorruption is treated as a cache miss.
	ErrStorage           = errors.New("storage error")
	ErrStorageCorruption = errors.New("stored value cannot be decrypted")

	// Repository-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrorUserExists = errors.New("user already exists")

	// Returned by the dev server for both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token errors (dev server).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")

	// Replay guard errors (dev server).
	ErrNonceMissing  = errors.New("nonce missing")
	ErrNonceMismatch = errors.New("nonce header does not match body")
	ErrNonceExpired  = errors.New("nonce outside accepted window")
	ErrNonceReplayed = errors.New("nonce already used")
)
