package authn

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/authkit/authkit/pkg/identity"
	"github.com/authkit/authkit/pkg/password"
	"github.com/authkit/authkit/pkg/sanitizer"
)

const basicPrefix = "Basic "

// Basic authenticates requests from the Authorization header using the
// Basic scheme: base64-encoded email:password verified against the
// credential store on every request.
type Basic struct {
	store    identity.Store
	hasher   password.Hasher
	excluded []string
}

// BasicOption configures the Basic authenticator.
type BasicOption func(*Basic)

// WithBasicExcludedPaths sets the paths that bypass authentication.
func WithBasicExcludedPaths(paths ...string) BasicOption {
	return func(b *Basic) {
		b.excluded = append(b.excluded, paths...)
	}
}

// NewBasic creates a Basic authenticator. Nil store or hasher is a wiring
// bug and panics immediately rather than failing per request.
func NewBasic(store identity.Store, hasher password.Hasher, opts ...BasicOption) *Basic {
	if store == nil {
		panic("authn: nil identity store")
	}
	if hasher == nil {
		panic("authn: nil password hasher")
	}

	b := &Basic{store: store, hasher: hasher}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RequiresAuth reports whether the path is protected.
func (b *Basic) RequiresAuth(path string) bool {
	return RequiresAuth(path, b.excluded)
}

// Evidence returns the Authorization header value, if any.
func (b *Basic) Evidence(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	return header, header != ""
}

// Resolve verifies the Basic credentials against the store. Every failure —
// wrong prefix, bad base64, missing colon, unknown email, wrong password —
// collapses into ErrNoIdentity. Only store infrastructure faults pass
// through so callers can distinguish an outage from a bad login.
func (b *Basic) Resolve(ctx context.Context, r *http.Request) (*identity.Identity, error) {
	header, ok := b.Evidence(r)
	if !ok {
		return nil, ErrNoIdentity
	}

	email, pass, ok := DecodeBasicCredentials(header)
	if !ok {
		return nil, ErrNoIdentity
	}

	// Identities are stored under the normalized email, so the header email
	// must be normalized the same way before the lookup.
	ident, err := b.store.Find(ctx, identity.ByEmail(sanitizer.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return nil, err
		}
		return nil, ErrNoIdentity
	}

	if err := b.hasher.Verify(ident.PasswordHash, pass); err != nil {
		return nil, ErrNoIdentity
	}

	return ident, nil
}

// DecodeBasicCredentials parses an Authorization header value of the Basic
// scheme into its credential pair. The decoded payload is split on the
// FIRST colon only, so passwords containing colons survive intact.
func DecodeBasicCredentials(header string) (email, pass string, ok bool) {
	payload, found := strings.CutPrefix(header, basicPrefix)
	if !found {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", false
	}

	email, pass, found = strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return email, pass, true
}
