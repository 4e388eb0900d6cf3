package authn

import "errors"

var (
	// ErrNoIdentity is the uniform failure for every unresolvable request:
	// missing evidence, malformed headers, unknown accounts and wrong
	// passwords all look identical to callers so the API cannot be used to
	// enumerate accounts.
	ErrNoIdentity = errors.New("authn.no_identity")

	// ErrUnknownScheme indicates a Config.Scheme value New does not know.
	ErrUnknownScheme = errors.New("authn.unknown_scheme")
)
