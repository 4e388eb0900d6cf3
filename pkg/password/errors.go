package password

import "errors"

var (
	// ErrHashFailed indicates the hashing primitive itself failed.
	ErrHashFailed = errors.New("password.hash_failed")

	// ErrMismatch indicates the candidate does not verify against the hash.
	ErrMismatch = errors.New("password.mismatch")
)
