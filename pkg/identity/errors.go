package identity

import "errors"

var (
	// ErrNotFound indicates no identity matched the query.
	ErrNotFound = errors.New("identity.not_found")

	// ErrEmailTaken indicates an identity with this email already exists.
	ErrEmailTaken = errors.New("identity.email_taken")

	// ErrInvalidFilter indicates a Find call without exactly one predicate.
	ErrInvalidFilter = errors.New("identity.invalid_filter")

	// ErrUnavailable indicates an infrastructure fault in the backing store.
	// It is propagated to callers untouched and never retried by this core.
	ErrUnavailable = errors.New("identity.store_unavailable")
)
