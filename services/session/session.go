package session

import (
	"context"
	"errors"
	"sync"

	"clinica/models"
	"clinica/store"
	"clinica/utils"

	"go.uber.org/zap"
)

// ErrUndecodableToken is returned when a token offered to SignIn carries no
// readable claims. The session never enters a half-authenticated state: a
// token the client cannot derive a role from is not accepted.
var ErrUndecodableToken = errors.New("session: token claims could not be decoded")

type sessionState struct {
	mu           sync.Mutex
	session      models.Session
	bootstrapped bool
}

// NewSessionService wires a session manager over the given store and API.
func NewSessionService(st store.CredentialStore, api PreferenceAPI) *DefaultSessionService {
	return &DefaultSessionService{
		Store:            st,
		API:              api,
		DevicePreference: models.PreferenceLight,
	}
}

func (s *DefaultSessionService) Bootstrap(ctx context.Context) models.Session {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.bootstrapped {
		return s.state.session
	}

	logger := utils.GetLogger()
	sess := models.Session{Phase: models.PhaseRestoring}

	token, err := s.Store.Get(ctx, store.KeyUserToken)
	if err != nil {
		// Storage failure degrades to unauthenticated.
		logger.Warn("Bootstrap: failed to read persisted token", zap.Error(err))
		token = ""
	}

	if token != "" {
		claims, err := utils.DecodeTokenClaims(token)
		if err != nil {
			// A persisted token the client cannot decode is treated as
			// corrupt: remove it and come up unauthenticated rather than
			// keeping a token with no role attached.
			logger.Warn("Bootstrap: persisted token undecodable, clearing it", zap.Error(err))
			if rmErr := s.Store.Remove(ctx, store.KeyUserToken); rmErr != nil {
				logger.Warn("Bootstrap: failed to clear corrupt token", zap.Error(rmErr))
			}
		} else {
			sess.Token = token
			sess.UserID = claims.Subject
			sess.Role = claims.Role
		}
	}

	sess.Preference = s.loadCachedPreference(ctx)
	sess.Phase = models.PhaseReady

	s.state.session = sess
	s.state.bootstrapped = true
	logger.Info("Session restored",
		zap.Bool("authenticated", sess.Authenticated()),
		zap.String("role", string(sess.Role)),
		zap.String("preference", string(sess.Preference)))
	return sess
}

func (s *DefaultSessionService) loadCachedPreference(ctx context.Context) models.Preference {
	cached, err := s.Store.Get(ctx, store.KeyThemePreference)
	if err != nil {
		utils.GetLogger().Warn("Failed to read cached preference", zap.Error(err))
	}
	switch models.Preference(cached) {
	case models.PreferenceLight, models.PreferenceDark:
		return models.Preference(cached)
	}
	if s.DevicePreference == models.PreferenceDark {
		return models.PreferenceDark
	}
	return models.PreferenceLight
}

func (s *DefaultSessionService) SignIn(ctx context.Context, token string) (models.Session, error) {
	logger := utils.GetLogger()

	claims, err := utils.DecodeTokenClaims(token)
	if err != nil {
		logger.Warn("SignIn: rejected undecodable token", zap.Error(err))
		return s.Snapshot(), ErrUndecodableToken
	}

	if err := s.Store.Set(ctx, store.KeyUserToken, token); err != nil {
		// The session still works in memory for this run; it just won't
		// survive a restart.
		logger.Warn("SignIn: failed to persist token", zap.Error(err))
	}

	s.state.mu.Lock()
	s.state.session.Token = token
	s.state.session.UserID = claims.Subject
	s.state.session.Role = claims.Role
	s.state.mu.Unlock()

	logger.Info("Signed in", zap.String("userId", claims.Subject), zap.String("role", string(claims.Role)))

	// Post-login preference reconciliation: the server value wins. Sign-in
	// must not fail because this sync failed.
	s.reconcilePreference(ctx)

	return s.readSession(), nil
}

func (s *DefaultSessionService) LoginWithPassword(ctx context.Context, email, password string) (models.Session, error) {
	token, err := s.API.Login(ctx, email, password)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.SignIn(ctx, token)
}

func (s *DefaultSessionService) reconcilePreference(ctx context.Context) {
	logger := utils.GetLogger()

	settings, err := s.API.GetSettings(ctx)
	if err != nil {
		logger.Warn("Preference sync after sign-in failed", zap.Error(err))
		return
	}

	remote := models.PreferenceFromSettings(settings)

	s.state.mu.Lock()
	current := s.state.session.Preference
	if remote != current {
		s.state.session.Preference = remote
	}
	s.state.mu.Unlock()

	if remote != current {
		if err := s.Store.Set(ctx, store.KeyThemePreference, string(remote)); err != nil {
			logger.Warn("Failed to cache reconciled preference", zap.Error(err))
		}
		logger.Info("Preference reconciled from server", zap.String("preference", string(remote)))
	}
}

func (s *DefaultSessionService) SignOut(ctx context.Context) {
	if err := s.Store.Remove(ctx, store.KeyUserToken); err != nil {
		// Sign-out always succeeds from the caller's perspective.
		utils.GetLogger().Warn("SignOut: failed to remove persisted token", zap.Error(err))
	}

	s.state.mu.Lock()
	s.state.session.Token = ""
	s.state.session.UserID = ""
	s.state.session.Role = models.RoleNone
	s.state.mu.Unlock()

	utils.GetLogger().Info("Signed out")
}

// HandleAuthFailure is registered as the API client's auth-failure hook:
// any 401/403 from the backend forces a sign-out.
func (s *DefaultSessionService) HandleAuthFailure() {
	if !s.Snapshot().Authenticated() {
		return
	}
	s.SignOut(context.Background())
}

func (s *DefaultSessionService) Snapshot() models.Session {
	return s.readSession()
}

func (s *DefaultSessionService) readSession() models.Session {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.session
}
