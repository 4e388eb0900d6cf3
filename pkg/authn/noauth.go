package authn

import (
	"context"
	"net/http"

	"github.com/authkit/authkit/pkg/identity"
)

// NoAuth is the disabled-authentication variant: no path requires auth and
// no request ever resolves to an identity. Used when the service runs open.
type NoAuth struct{}

// RequiresAuth always reports false.
func (NoAuth) RequiresAuth(string) bool { return false }

// Evidence never finds any.
func (NoAuth) Evidence(*http.Request) (string, bool) { return "", false }

// Resolve never yields an identity.
func (NoAuth) Resolve(context.Context, *http.Request) (*identity.Identity, error) {
	return nil, ErrNoIdentity
}
