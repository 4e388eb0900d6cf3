package identity

import (
	"context"

	"github.com/google/uuid"
)

// Store is the credential persistence capability consumed by the
// authentication core. Implementations must make every Insert and Update a
// single atomic operation against the backing storage so concurrent requests
// cannot interleave partial writes.
type Store interface {
	// Find returns the identity matching the filter. The filter must carry
	// exactly one predicate; anything else is a caller error reported as
	// ErrInvalidFilter. A miss is reported as ErrNotFound.
	Find(ctx context.Context, filter Filter) (*Identity, error)

	// Insert persists a new identity with the given email and password hash.
	// Duplicate emails are rejected with ErrEmailTaken.
	Insert(ctx context.Context, email string, passwordHash []byte) (*Identity, error)

	// Update applies the given field changes to the identity atomically.
	// Unknown ids are reported as ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, changes Changes) error
}

// Filter selects an identity by exactly one of its queryable fields.
// Construct via ByID, ByEmail, BySessionToken or ByResetToken.
type Filter struct {
	id           *uuid.UUID
	email        *string
	sessionToken *string
	resetToken   *string
}

// ByID filters by the identity's unique id.
func ByID(id uuid.UUID) Filter {
	return Filter{id: &id}
}

// ByEmail filters by exact email match.
func ByEmail(email string) Filter {
	return Filter{email: &email}
}

// BySessionToken filters by the stored session token.
func BySessionToken(token string) Filter {
	return Filter{sessionToken: &token}
}

// ByResetToken filters by the stored password reset token.
func ByResetToken(token string) Filter {
	return Filter{resetToken: &token}
}

// Validate reports ErrInvalidFilter unless exactly one predicate is set.
func (f Filter) Validate() error {
	n := 0
	if f.id != nil {
		n++
	}
	if f.email != nil {
		n++
	}
	if f.sessionToken != nil {
		n++
	}
	if f.resetToken != nil {
		n++
	}
	if n != 1 {
		return ErrInvalidFilter
	}
	return nil
}

// Matches reports whether the identity satisfies the filter predicate.
// Token predicates never match empty stored slots.
func (f Filter) Matches(i *Identity) bool {
	switch {
	case f.id != nil:
		return i.ID == *f.id
	case f.email != nil:
		return i.Email == *f.email
	case f.sessionToken != nil:
		return i.SessionToken != nil && *i.SessionToken == *f.sessionToken
	case f.resetToken != nil:
		return i.ResetToken != nil && *i.ResetToken == *f.resetToken
	}
	return false
}

// Changes describes a partial update to an identity record. Zero-value
// fields are left untouched, so a single Update call can atomically combine
// a password rewrite with token slot changes.
type Changes struct {
	// PasswordHash replaces the stored hash when non-nil.
	PasswordHash []byte

	// SessionToken and ResetToken update the corresponding nullable slot.
	SessionToken TokenChange
	ResetToken   TokenChange

	// IfResetToken, when non-nil, applies the update only while the stored
	// reset token still equals the given value; a mismatch is reported as
	// ErrNotFound. This makes single-use token consumption safe when two
	// requests race to redeem the same token.
	IfResetToken *string
}

// IsZero reports whether the changeset would not modify anything.
func (c Changes) IsZero() bool {
	return c.PasswordHash == nil && !c.SessionToken.set && !c.ResetToken.set
}

// TokenChange expresses set-to-value or clear semantics for a nullable
// token slot. The zero value leaves the slot untouched.
type TokenChange struct {
	set   bool
	value *string
}

// SetToken returns a change that stores the given token value.
func SetToken(value string) TokenChange {
	return TokenChange{set: true, value: &value}
}

// ClearToken returns a change that empties the slot.
func ClearToken() TokenChange {
	return TokenChange{set: true}
}

// Apply reports the new slot value. ok is false when the slot is untouched.
func (t TokenChange) Apply() (value *string, ok bool) {
	if !t.set {
		return nil, false
	}
	if t.value == nil {
		return nil, true
	}
	v := *t.value
	return &v, true
}
