package session

import (
	"context"

	"clinica/models"
	"clinica/store"
)

// SessionService is the single source of truth for who is signed in, with
// what role, under what display preference. All session mutation funnels
// through it; no other component writes session state.
type SessionService interface {
	// Bootstrap restores persisted state on process start. It transitions
	// the session to ready exactly once and must complete before anything
	// gated on session state runs.
	Bootstrap(ctx context.Context) models.Session

	// SignIn persists the token, derives the role and reconciles the
	// display preference with the server (server wins, failures swallowed).
	SignIn(ctx context.Context, token string) (models.Session, error)

	// LoginWithPassword exchanges credentials for a token, then signs in.
	LoginWithPassword(ctx context.Context, email, password string) (models.Session, error)

	// SignOut clears the persisted token. It never fails from the caller's
	// perspective.
	SignOut(ctx context.Context)

	// SetPreference applies the value optimistically (local + cache first,
	// then write-through); a failed write-through rolls the value back.
	SetPreference(ctx context.Context, p models.Preference) error
	TogglePreference(ctx context.Context) error

	Snapshot() models.Session
}

// PreferenceAPI is the slice of the remote API the session manager needs.
type PreferenceAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Store store.CredentialStore
	API   PreferenceAPI

	// DevicePreference is the device-level fallback used when no preference
	// has been cached yet.
	DevicePreference models.Preference

	state sessionState
}
