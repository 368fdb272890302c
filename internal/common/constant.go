// Package common contains shared constants and sentinel errors used across
// EduCloud client and development server components.
package common

// HTTP header names used on the auth wire contract.
const (
	NonceHeaderName         = "X-Nonce"
	RequestIDHeaderName     = "X-Request-ID"
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// Persistent storage keys. Plain keys hold unencrypted copies kept for readers
// that predate the vault; vault keys hold encrypted blobs.
const (
	PlainTokenKey = "token"
	PlainUserKey  = "user"
	VaultTokenKey = "auth_token"
	VaultUserKey  = "user_data"
)

// SessionKeys lists every key owned by a session, plain and vault.
var SessionKeys = []string{VaultTokenKey, VaultUserKey, PlainTokenKey, PlainUserKey}
