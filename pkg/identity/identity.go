package identity

import (
	"time"

	"github.com/google/uuid"
)

// Identity represents a registered account. The password hash is opaque to
// this package; hashing and verification live in pkg/password. SessionToken
// and ResetToken are nullable single-value slots: an identity has at most one
// live session and at most one pending password reset at any instant.
type Identity struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	SessionToken *string
	ResetToken   *string
	CreatedAt    time.Time
}

// HasSession reports whether the identity currently holds a session token.
func (i *Identity) HasSession() bool {
	return i != nil && i.SessionToken != nil
}

// HasPendingReset reports whether a password reset token is outstanding.
func (i *Identity) HasPendingReset() bool {
	return i != nil && i.ResetToken != nil
}

// clone returns a deep copy so store internals never alias caller-held state.
func (i *Identity) clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	if i.PasswordHash != nil {
		c.PasswordHash = append([]byte(nil), i.PasswordHash...)
	}
	if i.SessionToken != nil {
		v := *i.SessionToken
		c.SessionToken = &v
	}
	if i.ResetToken != nil {
		v := *i.ResetToken
		c.ResetToken = &v
	}
	return &c
}
