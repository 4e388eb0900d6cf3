package auth

import "errors"

var (
	// ErrEmailAlreadyExists indicates a registration for a taken email.
	ErrEmailAlreadyExists = errors.New("auth.email_already_exists")

	// ErrInvalidCredentials is the uniform login failure. It deliberately
	// conflates unknown-email and wrong-password.
	ErrInvalidCredentials = errors.New("auth.invalid_credentials")

	// ErrNotAuthenticated indicates a session token that does not resolve.
	ErrNotAuthenticated = errors.New("auth.not_authenticated")

	// ErrUnknownUser indicates a reset request for an unregistered email.
	ErrUnknownUser = errors.New("auth.unknown_user")

	// ErrInvalidToken indicates an unknown, replaced or already-consumed
	// password reset token.
	ErrInvalidToken = errors.New("auth.invalid_token")
)
