package authn

import (
	"context"
	"errors"
	"net/http"

	"github.com/authkit/authkit/pkg/identity"
)

// DefaultCookieName is the session cookie consulted when none is configured.
const DefaultCookieName = "_my_session_id"

// Session authenticates requests by a session cookie: the cookie value is
// the opaque token minted at login, looked up against the stored
// session-token slot on the identity record.
type Session struct {
	store      identity.Store
	cookieName string
	excluded   []string
}

// SessionOption configures the Session authenticator.
type SessionOption func(*Session)

// WithCookieName overrides the session cookie name. Empty values are
// ignored so a blank environment variable falls back to the default.
func WithCookieName(name string) SessionOption {
	return func(s *Session) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithSessionExcludedPaths sets the paths that bypass authentication.
func WithSessionExcludedPaths(paths ...string) SessionOption {
	return func(s *Session) {
		s.excluded = append(s.excluded, paths...)
	}
}

// NewSession creates a Session authenticator. A nil store is a wiring bug
// and panics immediately.
func NewSession(store identity.Store, opts ...SessionOption) *Session {
	if store == nil {
		panic("authn: nil identity store")
	}

	s := &Session{store: store, cookieName: DefaultCookieName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CookieName returns the configured session cookie name.
func (s *Session) CookieName() string { return s.cookieName }

// RequiresAuth reports whether the path is protected.
func (s *Session) RequiresAuth(path string) bool {
	return RequiresAuth(path, s.excluded)
}

// Evidence returns the session cookie value, if any.
func (s *Session) Evidence(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Resolve looks up the identity whose stored session token equals the
// cookie value. A missing cookie or unmatched token is ErrNoIdentity;
// store infrastructure faults pass through.
func (s *Session) Resolve(ctx context.Context, r *http.Request) (*identity.Identity, error) {
	tok, ok := s.Evidence(r)
	if !ok {
		return nil, ErrNoIdentity
	}

	ident, err := s.store.Find(ctx, identity.BySessionToken(tok))
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return nil, err
		}
		return nil, ErrNoIdentity
	}

	return ident, nil
}
