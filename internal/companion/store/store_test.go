package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/magielabs/companion/internal/companion/models"
	"github.com/magielabs/companion/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "companion.db")
	s, err := Open(context.Background(), dsn, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_SeedsDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meta, err := s.UserData(ctx)
	require.NoError(t, err)
	require.False(t, meta.OnboardingComplete)
	require.False(t, meta.CreatedAt.IsZero())

	primer, err := s.Primer(ctx)
	require.NoError(t, err)
	require.False(t, primer.HasContent())
	require.Nil(t, primer.CreatedAt)

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	require.True(t, settings.ShowCrisisBanner)
}

func TestSavePrimer_MergeAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }

	saved, err := s.SavePrimer(ctx, models.PrimerPatch{
		Name:  models.Ptr("River"),
		Intro: models.Ptr("Hello"),
	})
	require.NoError(t, err)
	require.Equal(t, "River", saved.Name)
	require.NotNil(t, saved.CreatedAt)
	require.Equal(t, first, *saved.CreatedAt)
	require.Equal(t, first, *saved.UpdatedAt)

	second := first.Add(48 * time.Hour)
	s.now = func() time.Time { return second }

	saved, err = s.SavePrimer(ctx, models.PrimerPatch{Goals: models.Ptr("breathe")})
	require.NoError(t, err)

	// Only the patched key changed, UpdatedAt refreshed, CreatedAt pinned.
	require.Equal(t, "River", saved.Name)
	require.Equal(t, "Hello", saved.Intro)
	require.Equal(t, "breathe", saved.Goals)
	require.Equal(t, first, *saved.CreatedAt)
	require.Equal(t, second, *saved.UpdatedAt)

	roundTrip, err := s.Primer(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, roundTrip)
}

func TestHasPrimer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	has, err := s.HasPrimer(ctx)
	require.NoError(t, err)
	require.False(t, has)

	_, err = s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River")})
	require.NoError(t, err)
	has, err = s.HasPrimer(ctx)
	require.NoError(t, err)
	require.False(t, has, "name alone is not a primer")

	_, err = s.SavePrimer(ctx, models.PrimerPatch{Intro: models.Ptr("Hi")})
	require.NoError(t, err)
	has, err = s.HasPrimer(ctx)
	require.NoError(t, err)
	require.True(t, has)
}

func TestAddSession_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	first, err := s.AddSession(ctx, models.SessionTypeSession, "first")
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Hour) }
	second, err := s.AddSession(ctx, models.SessionTypeSession, "second")
	require.NoError(t, err)

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, second.ID, sessions[0].ID)
	require.Equal(t, first.ID, sessions[1].ID)

	count, err := s.SessionCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestUpdateSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddSession(ctx, models.SessionTypeSession, "started")
	require.NoError(t, err)

	updated, err := s.UpdateSession(ctx, created.ID, models.SessionPatch{Note: models.Ptr("reflected")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "reflected", updated.Note)
	require.Equal(t, created.Timestamp, updated.Timestamp)

	missing, err := s.UpdateSession(ctx, created.ID+1, models.SessionPatch{Note: models.Ptr("x")})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDaysPracticing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	days, err := s.DaysPracticing(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, days, "no anchor date yet")

	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }
	_, err = s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River"), Intro: models.Ptr("Hi")})
	require.NoError(t, err)

	s.now = func() time.Time { return created.AddDate(0, 0, 3) }
	days, err = s.DaysPracticing(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, days)
}

func TestDaysPracticing_OldestSessionWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sessionTime := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return sessionTime }
	_, err := s.AddSession(ctx, models.SessionTypeSession, "early bird")
	require.NoError(t, err)

	s.now = func() time.Time { return sessionTime.Add(24 * time.Hour) }
	_, err = s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River"), Intro: models.Ptr("Hi")})
	require.NoError(t, err)

	s.now = func() time.Time { return sessionTime.Add(48 * time.Hour) }
	days, err := s.DaysPracticing(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, days, "anchor is the session, not the younger primer")
}

func TestCorruptRecordFallsBackToDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River"), Intro: models.Ptr("Hi")})
	require.NoError(t, err)

	require.NoError(t, s.repo().set(ctx, keyPrimer, []byte(`{not json`)))

	primer, err := s.Primer(ctx)
	require.NoError(t, err)
	require.Equal(t, models.DefaultPrimer(), primer)
}

func TestTypeCorruptRecordFallsBackToDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Valid JSON whose field types don't match the record. Decoding fails
	// partway through; none of the decoded fields may leak out.
	require.NoError(t, s.repo().set(ctx, keyPrimer, []byte(`{"name":"River","intro":"Hi","themes":12}`)))

	primer, err := s.Primer(ctx)
	require.NoError(t, err)
	require.Equal(t, models.DefaultPrimer(), primer)
}

func TestClearAll_ResetsEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River"), Intro: models.Ptr("Hi")})
	require.NoError(t, err)
	_, err = s.AddSession(ctx, models.SessionTypeSession, "x")
	require.NoError(t, err)
	_, err = s.UpdateSettings(ctx, models.SettingsPatch{ShowCrisisBanner: models.Ptr(false)})
	require.NoError(t, err)
	_, err = s.UpdateUserData(ctx, models.AccountMetaPatch{OnboardingComplete: models.Ptr(true)})
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	primer, err := s.Primer(ctx)
	require.NoError(t, err)
	require.False(t, primer.HasContent())

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	require.True(t, settings.ShowCrisisBanner)

	complete, err := s.IsOnboardingComplete(ctx)
	require.NoError(t, err)
	require.False(t, complete)
}

func TestDeviceID_StableAndSurvivesClearAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.DeviceID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	again, err := s.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, id, again)

	require.NoError(t, s.ClearAll(ctx))
	after, err := s.DeviceID(ctx)
	require.NoError(t, err)
	require.Equal(t, id, after)
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River"), Intro: models.Ptr("Hi")})
	require.NoError(t, err)
	_, err = s.AddSession(ctx, models.SessionTypeSession, "first")
	require.NoError(t, err)
	_, err = s.UpdateSettings(ctx, models.SettingsPatch{UserName: models.Ptr("River")})
	require.NoError(t, err)

	doc, err := s.Export(ctx)
	require.NoError(t, err)
	require.False(t, doc.ExportedAt.IsZero())

	require.NoError(t, s.Import(ctx, doc))

	after, err := s.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, doc.Primer, after.Primer)
	require.Equal(t, doc.Sessions, after.Sessions)
	require.Equal(t, doc.Settings, after.Settings)
	require.Equal(t, doc.UserData, after.UserData)
}

func TestImport_PartialLeavesOthersUntouched(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SavePrimer(ctx, models.PrimerPatch{Name: models.Ptr("River"), Intro: models.Ptr("Hi")})
	require.NoError(t, err)
	_, err = s.AddSession(ctx, models.SessionTypeSession, "keep me")
	require.NoError(t, err)

	imported := models.Settings{ShowCrisisBanner: false, UserName: "Sage"}
	require.NoError(t, s.Import(ctx, models.Export{Settings: &imported}))

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, imported, settings)

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "sessions absent from the document stay put")

	primer, err := s.Primer(ctx)
	require.NoError(t, err)
	require.Equal(t, "River", primer.Name)
}

func TestImport_FreshExportOverwritesSessions(t *testing.T) {
	ctx := context.Background()

	// A fresh store exports an empty session list; after a JSON round trip
	// that list must still read as present, so importing it clears any
	// sessions the target store holds.
	fresh := newTestStore(t)
	doc, err := fresh.Export(ctx)
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded models.Export
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Sessions)

	s := newTestStore(t)
	_, err = s.AddSession(ctx, models.SessionTypeSession, "old note")
	require.NoError(t, err)

	require.NoError(t, s.Import(ctx, decoded))

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)
}
