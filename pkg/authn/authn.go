package authn

import (
	"context"
	"net/http"

	"github.com/authkit/authkit/pkg/identity"
	"github.com/authkit/authkit/pkg/password"
)

// Authenticator resolves raw request evidence into a verified identity.
// Variants differ in where evidence lives (Authorization header, session
// cookie) and how it is verified; call sites never branch on the concrete
// scheme. Malformed or missing evidence is always reported as ErrNoIdentity,
// never as a panic.
type Authenticator interface {
	// RequiresAuth reports whether the given request path is protected.
	RequiresAuth(path string) bool

	// Evidence extracts the raw authentication material from the request
	// before any verification. ok is false when the request carries none.
	Evidence(r *http.Request) (evidence string, ok bool)

	// Resolve verifies the request's evidence against the credential store
	// and returns the authenticated identity, or ErrNoIdentity.
	Resolve(ctx context.Context, r *http.Request) (*identity.Identity, error)
}

// Authentication scheme names accepted by New.
const (
	SchemeNone    = ""
	SchemeBasic   = "basic"
	SchemeSession = "session"
)

// Config selects and parameterizes the authenticator, mirroring the usual
// environment-driven deployment switch.
type Config struct {
	// Scheme is one of "", "basic" or "session". Empty disables
	// authentication entirely (NoAuth).
	Scheme string `env:"AUTH_SCHEME" envDefault:""`

	// CookieName is the session cookie consulted by the session scheme.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"_my_session_id"`

	// ExcludedPaths lists paths that never require authentication. Entries
	// ending in * match by prefix.
	ExcludedPaths []string `env:"AUTH_EXCLUDED_PATHS" envSeparator:","`
}

// New builds the authenticator named by cfg.Scheme. Unknown schemes are
// rejected with ErrUnknownScheme. The store and hasher must be non-nil for
// the schemes that consume them; nil capability wiring panics in the
// variant constructors since it is a programming error, not input.
func New(cfg Config, store identity.Store, hasher password.Hasher) (Authenticator, error) {
	switch cfg.Scheme {
	case SchemeNone:
		return NoAuth{}, nil
	case SchemeBasic:
		return NewBasic(store, hasher, WithBasicExcludedPaths(cfg.ExcludedPaths...)), nil
	case SchemeSession:
		return NewSession(store,
			WithCookieName(cfg.CookieName),
			WithSessionExcludedPaths(cfg.ExcludedPaths...),
		), nil
	default:
		return nil, ErrUnknownScheme
	}
}
