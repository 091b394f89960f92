package remote

import "errors"

var (
	// ErrNotFound means the user has no row in the queried table yet.
	// This is valid absence, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable covers network failures and backend outages.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrUnauthorized covers rejected credentials or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected covers any other non-2xx backend response.
	ErrRejected = errors.New("backend rejected request")
)
