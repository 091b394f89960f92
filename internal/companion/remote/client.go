// Package remote is the table-oriented access layer for the hosted
// backend. It speaks the backend's REST conventions: row tables under
// /rest/v1 scoped by user id, auth endpoints under /auth/v1. All requests
// carry the public client key; data requests additionally carry the
// signed-in user's access token. This package is the sole boundary that
// knows the remote column names and URL layout.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magielabs/companion/internal/companion/identity"
	"github.com/magielabs/companion/internal/logging"
)

const (
	restPath = "/rest/v1"
	authPath = "/auth/v1"

	// PostgREST error code for "zero rows from a single-object request".
	codeNoRows = "PGRST116"
)

// Client talks to one backend project.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     logging.Logger
	now     func() time.Time
}

// New builds a Client for the given project URL and public client key.
func New(baseURL, anonKey string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
		now:     time.Now,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, sess *identity.Session) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.anonKey)
	if sess.Active() {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	} else {
		// Anonymous requests (auth endpoints) still authenticate as the
		// public client role.
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// backendError is the error document both the data and auth APIs return.
type backendError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Details string `json:"details"`
}

// do executes the request and decodes a 2xx response body into out (when
// out is non-nil). Non-2xx responses map onto the package sentinels.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: malformed response: %w", ErrRejected, err)
		}
		return nil
	}

	var be backendError
	_ = json.Unmarshal(data, &be)
	msg := be.Message
	if msg == "" {
		msg = be.Msg
	}

	switch {
	case be.Code == codeNoRows || resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotAcceptable:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, msg)
	}
}

// Ping probes backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, authPath+"/health", nil, nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
