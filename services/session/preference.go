package session

import (
	"context"

	"clinica/models"
	"clinica/store"
	"clinica/utils"

	"go.uber.org/zap"
)

// SetPreference applies the new value optimistically: the in-memory value and
// the cache change first so callers see zero latency, then the value is
// written through to the server. A failed write-through restores the
// pre-change value in both places, so the reported preference after a failed
// call equals the value before it.
func (s *DefaultSessionService) SetPreference(ctx context.Context, p models.Preference) error {
	logger := utils.GetLogger()

	s.state.mu.Lock()
	prev := s.state.session.Preference
	if prev == p {
		s.state.mu.Unlock()
		return nil
	}
	s.state.session.Preference = p
	s.state.mu.Unlock()

	if err := s.Store.Set(ctx, store.KeyThemePreference, string(p)); err != nil {
		logger.Warn("Failed to cache preference", zap.Error(err))
	}

	if err := s.API.UpdateSettings(ctx, models.SettingsFromPreference(p)); err != nil {
		logger.Warn("Preference write-through failed, rolling back",
			zap.String("attempted", string(p)), zap.Error(err))

		s.state.mu.Lock()
		s.state.session.Preference = prev
		s.state.mu.Unlock()

		if cacheErr := s.Store.Set(ctx, store.KeyThemePreference, string(prev)); cacheErr != nil {
			logger.Warn("Failed to restore cached preference", zap.Error(cacheErr))
		}
		return err
	}

	logger.Debug("Preference updated", zap.String("preference", string(p)))
	return nil
}

// TogglePreference flips between light and dark with the same
// optimistic-update/rollback contract as SetPreference.
func (s *DefaultSessionService) TogglePreference(ctx context.Context) error {
	return s.SetPreference(ctx, s.Snapshot().Preference.Toggled())
}
