package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces one-way salted password hashes and verifies candidates
// against them. Hashing is intentionally CPU-expensive; callers must never
// invoke it while holding a lock shared across requests.
type Hasher interface {
	Hash(password string) ([]byte, error)
	Verify(hash []byte, password string) error
}

// Bcrypt implements Hasher with golang.org/x/crypto/bcrypt. The zero value
// is not usable; construct via NewBcrypt.
type Bcrypt struct {
	cost int
}

// BcryptOption configures the Bcrypt hasher.
type BcryptOption func(*Bcrypt)

// WithCost sets the bcrypt cost factor. Values outside the bcrypt range are
// clamped by the underlying library at hash time.
func WithCost(cost int) BcryptOption {
	return func(b *Bcrypt) {
		b.cost = cost
	}
}

// NewBcrypt creates a bcrypt hasher with the library default cost.
func NewBcrypt(opts ...BcryptOption) *Bcrypt {
	b := &Bcrypt{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Hash returns the salted bcrypt hash of the password. Empty passwords hash
// fine; rejecting them is the caller's validation concern.
func (b *Bcrypt) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return nil, errors.Join(ErrHashFailed, err)
	}
	return hash, nil
}

// Verify compares the candidate password against the stored hash in constant
// time. Any mismatch or malformed hash is reported as ErrMismatch so callers
// cannot distinguish the two.
func (b *Bcrypt) Verify(hash []byte, password string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
