package store

import "context"

// Credential store keys.
const (
	KeyUserToken       = "userToken"
	KeyThemePreference = "themePreference"
)

// CredentialStore is durable device-local key-value storage for the session
// token and the cached display preference. Get returns "" (not an error) for
// an absent key. Implementations must be safe for concurrent use; token and
// preference are written by a single writer each and never race on one key.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
