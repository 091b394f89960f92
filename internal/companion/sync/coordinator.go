// Package sync orchestrates the local store and the remote client per
// entity. The policy is local-first: local writes always happen and are
// the operation's durable success signal; remote writes are best-effort
// and their failures are logged and swallowed; a remote read on sign-in
// replaces the local cache wholesale. The coordinator owns no entity
// state of its own.
package sync

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/magielabs/companion/internal/companion/identity"
	"github.com/magielabs/companion/internal/companion/models"
	"github.com/magielabs/companion/internal/companion/remote"
	"github.com/magielabs/companion/internal/companion/store"
	"github.com/magielabs/companion/internal/logging"
)

// RemoteClient is the remote surface the coordinator drives. Implemented
// by *remote.Client; tests substitute fakes.
type RemoteClient interface {
	FetchPrimer(ctx context.Context, sess *identity.Session) (*models.Primer, error)
	UpsertPrimer(ctx context.Context, sess *identity.Session, primer models.Primer) error
	FetchSessions(ctx context.Context, sess *identity.Session) ([]models.Session, error)
	InsertSession(ctx context.Context, sess *identity.Session, session models.Session) error
	FetchSettings(ctx context.Context, sess *identity.Session) (*models.Settings, error)
	UpsertSettings(ctx context.Context, sess *identity.Session, settings models.Settings) error
	SignOut(ctx context.Context, sess *identity.Session) error
}

// Coordinator composes the local store with the remote client. remote may
// be nil, in which case every operation runs purely locally.
type Coordinator struct {
	store  *store.Store
	remote RemoteClient
	log    logging.Logger

	// epoch guards against a stale in-flight load writing into a store
	// that was cleared by sign-out while the fetch was running.
	epoch atomic.Int64
}

func New(st *store.Store, rc RemoteClient, log logging.Logger) *Coordinator {
	return &Coordinator{store: st, remote: rc, log: log}
}

func (c *Coordinator) online(sess *identity.Session) bool {
	return c.remote != nil && sess.Active()
}

// LoadAll pulls the user's primer, sessions, and settings from the
// backend and replaces the local copies with whatever is found; entities
// absent remotely leave the local copy untouched so it can seed the
// backend on the next save. Remote failures degrade to keeping local
// state. Finally the account is marked onboarded, as a signed-in account
// has by definition been through onboarding.
func (c *Coordinator) LoadAll(ctx context.Context, sess *identity.Session) error {
	if !c.online(sess) {
		return nil
	}
	epoch := c.epoch.Load()

	if primer, err := c.remote.FetchPrimer(ctx, sess); err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			c.log.Warn(ctx, "remote primer load failed, keeping local copy", "error", err)
		}
	} else if primer != nil && c.epoch.Load() == epoch {
		if err := c.store.ReplacePrimer(ctx, *primer); err != nil {
			return err
		}
	}

	if sessions, err := c.remote.FetchSessions(ctx, sess); err != nil {
		c.log.Warn(ctx, "remote sessions load failed, keeping local copy", "error", err)
	} else if sessions != nil && c.epoch.Load() == epoch {
		if err := c.store.ReplaceSessions(ctx, sessions); err != nil {
			return err
		}
	}

	if settings, err := c.remote.FetchSettings(ctx, sess); err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			c.log.Warn(ctx, "remote settings load failed, keeping local copy", "error", err)
		}
	} else if settings != nil && c.epoch.Load() == epoch {
		if err := c.store.ReplaceSettings(ctx, *settings); err != nil {
			return err
		}
	}

	if c.epoch.Load() != epoch {
		c.log.Debug(ctx, "discarding stale load, signed out mid-flight")
		return nil
	}

	_, err := c.store.UpdateUserData(ctx, models.AccountMetaPatch{
		OnboardingComplete: models.Ptr(true),
	})
	return err
}

// SavePrimer writes the patch locally, then mirrors the merged primer to
// the backend best-effort.
func (c *Coordinator) SavePrimer(ctx context.Context, sess *identity.Session, patch models.PrimerPatch) (models.Primer, error) {
	saved, err := c.store.SavePrimer(ctx, patch)
	if err != nil {
		return models.Primer{}, err
	}

	if c.online(sess) {
		if err := c.remote.UpsertPrimer(ctx, sess, saved); err != nil {
			c.log.Warn(ctx, "remote primer sync failed", "error", err)
		}
	}
	return saved, nil
}

// AddSession logs the session locally, then mirrors it to the backend
// best-effort.
func (c *Coordinator) AddSession(ctx context.Context, sess *identity.Session, sessionType models.SessionType, note string) (models.Session, error) {
	added, err := c.store.AddSession(ctx, sessionType, note)
	if err != nil {
		return models.Session{}, err
	}

	if c.online(sess) {
		if err := c.remote.InsertSession(ctx, sess, added); err != nil {
			c.log.Warn(ctx, "remote session sync failed", "error", err)
		}
	}
	return added, nil
}

// UpdateSession patches a logged session by id. Local only: the backend
// has no session update path.
func (c *Coordinator) UpdateSession(ctx context.Context, id int64, patch models.SessionPatch) (*models.Session, error) {
	return c.store.UpdateSession(ctx, id, patch)
}

// UpdateSettings writes the patch locally, then mirrors the merged
// settings to the backend best-effort. The remote onboarding column is a
// write-only mirror of the authoritative AccountMeta flag.
func (c *Coordinator) UpdateSettings(ctx context.Context, sess *identity.Session, patch models.SettingsPatch) (models.Settings, error) {
	saved, err := c.store.UpdateSettings(ctx, patch)
	if err != nil {
		return models.Settings{}, err
	}

	if c.online(sess) {
		mirror := saved
		if meta, err := c.store.UserData(ctx); err == nil {
			mirror.OnboardingComplete = meta.OnboardingComplete
		}
		if err := c.remote.UpsertSettings(ctx, sess, mirror); err != nil {
			c.log.Warn(ctx, "remote settings sync failed", "error", err)
		}
	}
	return saved, nil
}

// CompleteOnboarding marks onboarding done in the account metadata and
// mirrors the flag into the remote settings row best-effort.
func (c *Coordinator) CompleteOnboarding(ctx context.Context, sess *identity.Session) error {
	if _, err := c.store.UpdateUserData(ctx, models.AccountMetaPatch{
		OnboardingComplete: models.Ptr(true),
	}); err != nil {
		return err
	}

	if c.online(sess) {
		settings, err := c.store.Settings(ctx)
		if err != nil {
			return err
		}
		settings.OnboardingComplete = true
		if err := c.remote.UpsertSettings(ctx, sess, settings); err != nil {
			c.log.Warn(ctx, "remote settings sync failed", "error", err)
		}
	}
	return nil
}

// SignOut revokes the backend session best-effort, then discards every
// local copy. The discard is unconditional: no residual data may survive
// into the next anonymous or differently-owned session on this device.
func (c *Coordinator) SignOut(ctx context.Context, sess *identity.Session) error {
	if c.online(sess) {
		if err := c.remote.SignOut(ctx, sess); err != nil {
			c.log.Warn(ctx, "remote sign-out failed, clearing local state anyway", "error", err)
		}
	}

	c.epoch.Add(1)
	return c.store.ClearAll(ctx)
}
