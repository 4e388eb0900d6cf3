package session

import "errors"

var (
	// ErrNoSession indicates a session could not be created because the
	// identity is unknown or unspecified.
	ErrNoSession = errors.New("session.no_session")

	// ErrSessionNotFound indicates no identity holds the given token.
	ErrSessionNotFound = errors.New("session.not_found")
)
