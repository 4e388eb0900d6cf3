package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// Generator mints unpredictable opaque identifiers used as session and
// password-reset tokens. Tokens carry no payload and are never parsed; the
// only thing that matters is that they cannot be guessed.
type Generator interface {
	Generate() (string, error)
}

// randomByteLen is the entropy per token; 32 bytes matches common
// session-token guidance and encodes to 43 URL-safe characters.
const randomByteLen = 32

// Random generates tokens from crypto/rand, base64url-encoded without
// padding so they are safe in cookies, headers and URLs.
type Random struct{}

// NewRandom creates the default crypto/rand token generator.
func NewRandom() Random {
	return Random{}
}

// Generate returns a fresh 43-character URL-safe token.
func (Random) Generate() (string, error) {
	b := make([]byte, randomByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// UUID generates version-4 UUID string tokens. It exists for deployments
// that want tokens in the canonical UUID shape; entropy is 122 bits.
type UUID struct{}

// NewUUID creates a UUID-v4 token generator.
func NewUUID() UUID {
	return UUID{}
}

// Generate returns a fresh random UUID string.
func (UUID) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return id.String(), nil
}
