package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/magielabs/companion/internal/companion/identity"
)

// tokenResponse is the auth API's token grant payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (tr tokenResponse) session() (*identity.Session, error) {
	sess, err := identity.FromTokens(tr.AccessToken, tr.RefreshToken)
	if err != nil {
		return nil, err
	}
	// Prefer the explicit user object over token claims when present.
	if tr.User.ID != "" {
		sess.UserID = tr.User.ID
	}
	if tr.User.Email != "" {
		sess.Email = tr.User.Email
	}
	return sess, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates a new account. The returned session is nil when the
// backend requires email confirmation before issuing tokens.
func (c *Client) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	req, err := c.newRequest(ctx, http.MethodPost, authPath+"/signup", nil, credentials{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var tr tokenResponse
	if err := c.do(req, &tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, nil
	}
	return tr.session()
}

// SignInWithPassword authenticates with email and password and returns the
// resulting session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	query := url.Values{"grant_type": []string{"password"}}
	req, err := c.newRequest(ctx, http.MethodPost, authPath+"/token", query, credentials{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var tr tokenResponse
	if err := c.do(req, &tr); err != nil {
		return nil, err
	}
	return tr.session()
}

// RefreshSession exchanges the refresh token for a fresh session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*identity.Session, error) {
	query := url.Values{"grant_type": []string{"refresh_token"}}
	body := map[string]string{"refresh_token": refreshToken}
	req, err := c.newRequest(ctx, http.MethodPost, authPath+"/token", query, body, nil)
	if err != nil {
		return nil, err
	}

	var tr tokenResponse
	if err := c.do(req, &tr); err != nil {
		return nil, err
	}
	return tr.session()
}

// SignOut revokes the session's refresh token on the backend. The local
// discard is the Coordinator's job and must happen regardless of whether
// revocation succeeds.
func (c *Client) SignOut(ctx context.Context, sess *identity.Session) error {
	if !sess.Active() {
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodPost, authPath+"/logout", nil, nil, sess)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// RequestPasswordRecovery asks the backend to email a password reset link.
func (c *Client) RequestPasswordRecovery(ctx context.Context, email string) error {
	req, err := c.newRequest(ctx, http.MethodPost, authPath+"/recover", nil, map[string]string{"email": email}, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
