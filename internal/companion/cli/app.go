package cli

import (
	"bufio"
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/magielabs/companion/internal/companion/config"
	"github.com/magielabs/companion/internal/companion/identity"
	"github.com/magielabs/companion/internal/companion/models"
	"github.com/magielabs/companion/internal/companion/remote"
	"github.com/magielabs/companion/internal/companion/store"
	"github.com/magielabs/companion/internal/companion/sync"
	"github.com/magielabs/companion/internal/logging"
)

type Mode string

const (
	// ModeLocal means no backend is configured; everything stays on disk.
	ModeLocal Mode = "local"
	// ModeOffline means a backend is configured but currently unreachable.
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// dataService is the slice of the sync coordinator the CLI drives.
// Implemented by *sync.Coordinator; tests substitute fakes.
type dataService interface {
	LoadAll(ctx context.Context, sess *identity.Session) error
	SavePrimer(ctx context.Context, sess *identity.Session, patch models.PrimerPatch) (models.Primer, error)
	AddSession(ctx context.Context, sess *identity.Session, sessionType models.SessionType, note string) (models.Session, error)
	UpdateSettings(ctx context.Context, sess *identity.Session, patch models.SettingsPatch) (models.Settings, error)
	SignOut(ctx context.Context, sess *identity.Session) error

	Primer(ctx context.Context) (models.Primer, error)
	Sessions(ctx context.Context) ([]models.Session, error)
	Settings(ctx context.Context) (models.Settings, error)
	SessionCount(ctx context.Context) (int, error)
	DaysPracticing(ctx context.Context) (int, error)
	Export(ctx context.Context) (models.Export, error)
	Import(ctx context.Context, doc models.Export) error
}

// authAPI is the slice of the backend client used for account operations.
// Implemented by *remote.Client; nil when running local-only.
type authAPI interface {
	SignUp(ctx context.Context, email, password string) (*identity.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	RequestPasswordRecovery(ctx context.Context, email string) error
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	data    dataService
	auth    authAPI
	store   *store.Store
	log     logging.Logger
	session *identity.Session
	reader  *bufio.Reader

	// mode is written by the status watcher goroutine and read from the
	// REPL loop, so access goes through CurrentMode/setMode.
	mode atomic.Value
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, c.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	if id, err := st.DeviceID(ctx); err == nil {
		log = log.With("device", id)
	}

	app := &App{
		config: c,
		store:  st,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}

	if c.LocalOnly() {
		app.data = sync.New(st, nil, log)
		return app, nil
	}

	if role, err := identity.TokenRole(c.BackendAnonKey); err != nil || role != "anon" {
		log.Warn(ctx, "configured client key does not look like a public anon key", "role", role)
	}

	rc := remote.New(c.BackendURL, c.BackendAnonKey, c.RequestTimeout, log)
	app.auth = rc
	app.data = sync.New(st, rc, log)
	app.mode.Store(ModeOffline)
	return app, nil
}

// CurrentMode returns the connectivity mode last observed.
func (a *App) CurrentMode() Mode {
	if v := a.mode.Load(); v != nil {
		return v.(Mode)
	}
	return ModeLocal
}

func (a *App) setMode(mode Mode) {
	if a.CurrentMode() != mode {
		a.mode.Store(mode)
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	if a.store != nil {
		defer a.store.Close()
	}
	a.Root(ctx)
}

// StartOnlineStatusWatcher periodically probes the backend health endpoint
// and flips the app between online and offline modes. It never runs in
// local-only mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if a.auth == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.CurrentMode() == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.CurrentMode() != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
