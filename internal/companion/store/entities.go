package store

import (
	"context"
	"time"

	"github.com/magielabs/companion/internal/companion/models"
)

// UserData returns the account metadata record, or a freshly stamped
// default when the slot is absent or unreadable.
func (s *Store) UserData(ctx context.Context) (models.AccountMeta, error) {
	meta := models.AccountMeta{CreatedAt: s.now(), LastVisit: s.now()}
	_, err := s.getJSON(ctx, keyUserData, &meta)
	return meta, err
}

// UpdateUserData shallow-merges the patch over the stored record and
// refreshes LastVisit.
func (s *Store) UpdateUserData(ctx context.Context, patch models.AccountMetaPatch) (models.AccountMeta, error) {
	current, err := s.UserData(ctx)
	if err != nil {
		return models.AccountMeta{}, err
	}

	updated := current.Apply(patch)
	updated.LastVisit = s.now()

	if err := setJSON(ctx, s.repo(), keyUserData, updated); err != nil {
		return models.AccountMeta{}, err
	}
	return updated, nil
}

// Primer returns the stored primer, or the empty default.
func (s *Store) Primer(ctx context.Context) (models.Primer, error) {
	primer := models.DefaultPrimer()
	_, err := s.getJSON(ctx, keyPrimer, &primer)
	return primer, err
}

// SavePrimer shallow-merges the patch over the stored primer. UpdatedAt is
// refreshed on every save; CreatedAt is set on the first save and never
// changes afterwards.
func (s *Store) SavePrimer(ctx context.Context, patch models.PrimerPatch) (models.Primer, error) {
	current, err := s.Primer(ctx)
	if err != nil {
		return models.Primer{}, err
	}

	updated := current.Apply(patch)
	now := s.now()
	updated.UpdatedAt = &now
	if updated.CreatedAt == nil {
		updated.CreatedAt = &now
	}

	if err := setJSON(ctx, s.repo(), keyPrimer, updated); err != nil {
		return models.Primer{}, err
	}
	return updated, nil
}

// ReplacePrimer overwrites the local primer entirely. Used when a remote
// read is authoritative (load-on-sign-in) and on import.
func (s *Store) ReplacePrimer(ctx context.Context, primer models.Primer) error {
	return setJSON(ctx, s.repo(), keyPrimer, primer)
}

// Sessions returns the session list, newest first.
func (s *Store) Sessions(ctx context.Context) ([]models.Session, error) {
	sessions := []models.Session{}
	_, err := s.getJSON(ctx, keySessions, &sessions)
	return sessions, err
}

// AddSession prepends a new session to the list. The ID is minted from
// wall-clock milliseconds; a later remote load replaces it with the
// server-assigned one.
func (s *Store) AddSession(ctx context.Context, sessionType models.SessionType, note string) (models.Session, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return models.Session{}, err
	}

	now := s.now()
	session := models.Session{
		ID:        now.UnixMilli(),
		Timestamp: now,
		Type:      sessionType,
		Note:      note,
	}

	sessions = append([]models.Session{session}, sessions...)
	if err := setJSON(ctx, s.repo(), keySessions, sessions); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// UpdateSession shallow-merges the patch over the session with the given
// id. Returns nil when no such session exists.
func (s *Store) UpdateSession(ctx context.Context, id int64, patch models.SessionPatch) (*models.Session, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		sessions[i] = sessions[i].Apply(patch)
		if err := setJSON(ctx, s.repo(), keySessions, sessions); err != nil {
			return nil, err
		}
		updated := sessions[i]
		return &updated, nil
	}
	return nil, nil
}

// ReplaceSessions overwrites the local session list entirely.
func (s *Store) ReplaceSessions(ctx context.Context, sessions []models.Session) error {
	if sessions == nil {
		sessions = []models.Session{}
	}
	return setJSON(ctx, s.repo(), keySessions, sessions)
}

// Settings returns the stored settings, or defaults.
func (s *Store) Settings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()
	_, err := s.getJSON(ctx, keySettings, &settings)
	return settings, err
}

// UpdateSettings shallow-merges the patch over the stored settings.
func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	current, err := s.Settings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	updated := current.Apply(patch)
	if err := setJSON(ctx, s.repo(), keySettings, updated); err != nil {
		return models.Settings{}, err
	}
	return updated, nil
}

// ReplaceSettings overwrites the local settings entirely.
func (s *Store) ReplaceSettings(ctx context.Context, settings models.Settings) error {
	return setJSON(ctx, s.repo(), keySettings, settings)
}

// ReplaceUserData overwrites the account metadata entirely. Only import
// uses this; regular mutation goes through UpdateUserData.
func (s *Store) ReplaceUserData(ctx context.Context, meta models.AccountMeta) error {
	return setJSON(ctx, s.repo(), keyUserData, meta)
}

// sessionAnchor returns the earliest known activity timestamp: the older
// of the primer creation time and the oldest session. Zero time when none.
func (s *Store) sessionAnchor(ctx context.Context) (time.Time, error) {
	var anchor time.Time

	primer, err := s.Primer(ctx)
	if err != nil {
		return anchor, err
	}
	if primer.CreatedAt != nil {
		anchor = *primer.CreatedAt
	}

	sessions, err := s.Sessions(ctx)
	if err != nil {
		return anchor, err
	}
	if n := len(sessions); n > 0 {
		oldest := sessions[n-1].Timestamp
		if anchor.IsZero() || oldest.Before(anchor) {
			anchor = oldest
		}
	}

	return anchor, nil
}
