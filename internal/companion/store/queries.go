package store

import (
	"context"
	"math"
)

// SessionCount returns the number of logged sessions.
func (s *Store) SessionCount(ctx context.Context) (int, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

// DaysPracticing returns the elapsed whole days (rounded up) since the
// earliest of the primer creation time and the oldest session. Returns 0
// when no anchor date exists.
func (s *Store) DaysPracticing(ctx context.Context) (int, error) {
	anchor, err := s.sessionAnchor(ctx)
	if err != nil {
		return 0, err
	}
	if anchor.IsZero() {
		return 0, nil
	}

	elapsed := s.now().Sub(anchor)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24)), nil
}

// HasPrimer reports whether a primer with both a name and an intro exists.
func (s *Store) HasPrimer(ctx context.Context) (bool, error) {
	primer, err := s.Primer(ctx)
	if err != nil {
		return false, err
	}
	return primer.HasContent(), nil
}

// IsOnboardingComplete reports the authoritative onboarding flag from the
// account metadata record.
func (s *Store) IsOnboardingComplete(ctx context.Context) (bool, error) {
	meta, err := s.UserData(ctx)
	if err != nil {
		return false, err
	}
	return meta.OnboardingComplete, nil
}
