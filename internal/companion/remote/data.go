package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/magielabs/companion/internal/companion/identity"
	"github.com/magielabs/companion/internal/companion/models"
)

// singleObject asks PostgREST for exactly one row; zero rows surface as
// ErrNotFound instead of an empty array.
const singleObject = "application/vnd.pgrst.object+json"

func userScope(sess *identity.Session) url.Values {
	return url.Values{"user_id": []string{"eq." + sess.UserID}}
}

// fetchOne retrieves the single row scoped to the signed-in user.
func (c *Client) fetchOne(ctx context.Context, sess *identity.Session, table string, out any) error {
	query := userScope(sess)
	query.Set("select", "*")

	req, err := c.newRequest(ctx, http.MethodGet, restPath+"/"+table, query, nil, sess)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", singleObject)
	return c.do(req, out)
}

// exists checks for a prior row before an upsert decides insert vs update.
func (c *Client) exists(ctx context.Context, sess *identity.Session, table string) (bool, error) {
	var row struct {
		ID int64 `json:"id"`
	}
	query := userScope(sess)
	query.Set("select", "id")

	req, err := c.newRequest(ctx, http.MethodGet, restPath+"/"+table, query, nil, sess)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", singleObject)

	switch err := c.do(req, &row); {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// upsert updates the user's existing row or inserts a fresh one with a
// creation timestamp.
func (c *Client) upsert(ctx context.Context, sess *identity.Session, table string, row any, stampCreated func()) error {
	found, err := c.exists(ctx, sess, table)
	if err != nil {
		return err
	}

	if found {
		req, err := c.newRequest(ctx, http.MethodPatch, restPath+"/"+table, userScope(sess), row, sess)
		if err != nil {
			return err
		}
		return c.do(req, nil)
	}

	stampCreated()
	req, err := c.newRequest(ctx, http.MethodPost, restPath+"/"+table, nil, []any{row}, sess)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")
	return c.do(req, nil)
}

// FetchPrimer returns the user's primer row, translated to the local
// shape. ErrNotFound means the user has no primer remotely yet. Without an
// active session this is a silent no-op.
func (c *Client) FetchPrimer(ctx context.Context, sess *identity.Session) (*models.Primer, error) {
	if !sess.Active() {
		return nil, nil
	}

	var row primerRow
	if err := c.fetchOne(ctx, sess, "primers", &row); err != nil {
		return nil, err
	}
	primer := row.toModel()
	return &primer, nil
}

// UpsertPrimer pushes the primer to the backend, updating the existing row
// or inserting a new one. Silent no-op without an active session.
func (c *Client) UpsertPrimer(ctx context.Context, sess *identity.Session, primer models.Primer) error {
	if !sess.Active() {
		return nil
	}

	row := primerToRow(sess.UserID, primer, c.now())
	return c.upsert(ctx, sess, "primers", &row, func() {
		created := c.now()
		row.CreatedAt = &created
	})
}

// FetchSessions returns all of the user's sessions, newest first. Without
// an active session it returns nothing.
func (c *Client) FetchSessions(ctx context.Context, sess *identity.Session) ([]models.Session, error) {
	if !sess.Active() {
		return nil, nil
	}

	query := userScope(sess)
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	req, err := c.newRequest(ctx, http.MethodGet, restPath+"/sessions", query, nil, sess)
	if err != nil {
		return nil, err
	}

	var rows []sessionRow
	if err := c.do(req, &rows); err != nil {
		return nil, err
	}

	sessions := make([]models.Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toModel())
	}
	return sessions, nil
}

// InsertSession appends one session row. Sessions are append-mostly; there
// is no remote update path. Silent no-op without an active session.
func (c *Client) InsertSession(ctx context.Context, sess *identity.Session, session models.Session) error {
	if !sess.Active() {
		return nil
	}

	row := sessionToRow(sess.UserID, session)
	req, err := c.newRequest(ctx, http.MethodPost, restPath+"/sessions", nil, []sessionRow{row}, sess)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")
	return c.do(req, nil)
}

// FetchSettings returns the user's settings row. ErrNotFound means none
// exist remotely yet. Silent no-op without an active session.
func (c *Client) FetchSettings(ctx context.Context, sess *identity.Session) (*models.Settings, error) {
	if !sess.Active() {
		return nil, nil
	}

	var row settingsRow
	if err := c.fetchOne(ctx, sess, "user_settings", &row); err != nil {
		return nil, err
	}
	settings := row.toModel()
	return &settings, nil
}

// UpsertSettings pushes the settings to the backend. Silent no-op without
// an active session.
func (c *Client) UpsertSettings(ctx context.Context, sess *identity.Session, settings models.Settings) error {
	if !sess.Active() {
		return nil
	}

	row := settingsToRow(sess.UserID, settings, c.now())
	return c.upsert(ctx, sess, "user_settings", &row, func() {
		created := c.now()
		row.CreatedAt = &created
	})
}
