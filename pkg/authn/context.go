package authn

import (
	"context"

	"github.com/authkit/authkit/pkg/identity"
)

type identityContextKey struct{}

// WithIdentity attaches a resolved identity to the context.
func WithIdentity(ctx context.Context, i *identity.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, i)
}

// IdentityFromContext retrieves the identity attached by the middleware.
func IdentityFromContext(ctx context.Context) (*identity.Identity, bool) {
	i, ok := ctx.Value(identityContextKey{}).(*identity.Identity)
	return i, ok
}

// MustIdentityFromContext retrieves the identity or panics. For handlers
// mounted strictly behind the middleware.
func MustIdentityFromContext(ctx context.Context) *identity.Identity {
	i, ok := IdentityFromContext(ctx)
	if !ok {
		panic("authn: identity not found in context")
	}
	return i
}
