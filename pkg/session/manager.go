package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/authkit/authkit/pkg/identity"
	"github.com/authkit/authkit/pkg/logger"
	"github.com/authkit/authkit/pkg/token"
)

// Manager binds session tokens to identities. Sessions are not a separate
// table: each identity carries at most one session token, so creating a
// session for an identity silently invalidates whatever session it had.
type Manager struct {
	store  identity.Store
	tokens token.Generator
	log    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithTokenGenerator overrides the default crypto/rand token generator.
func WithTokenGenerator(gen token.Generator) Option {
	return func(m *Manager) {
		if gen != nil {
			m.tokens = gen
		}
	}
}

// WithLogger sets a custom logger for the manager.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a session manager on top of the identity store. A nil store
// is a wiring bug and panics immediately.
func New(store identity.Store, opts ...Option) *Manager {
	if store == nil {
		panic("session: nil identity store")
	}

	m := &Manager{
		store:  store,
		tokens: token.NewRandom(),
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create mints a fresh session token for the identity and persists it,
// overwriting any previously stored token in one atomic update. Unknown
// identities are reported as ErrNoSession. Create is NOT idempotent: every
// call mints a new random token, so callers treating a timeout as "not
// happened" will hold a token that was never durably stored.
func (m *Manager) Create(ctx context.Context, identityID uuid.UUID) (string, error) {
	if identityID == uuid.Nil {
		return "", ErrNoSession
	}

	tok, err := m.tokens.Generate()
	if err != nil {
		return "", err
	}

	err = m.store.Update(ctx, identityID, identity.Changes{
		SessionToken: identity.SetToken(tok),
	})
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", ErrNoSession
		}
		return "", err
	}

	m.log.InfoContext(ctx, "session created",
		logger.IdentityID(identityID),
		logger.Component("session"),
	)

	return tok, nil
}

// Identity returns the identity bound to the session token, or
// ErrSessionNotFound for empty and unmatched tokens.
func (m *Manager) Identity(ctx context.Context, tok string) (*identity.Identity, error) {
	if tok == "" {
		return nil, ErrSessionNotFound
	}

	ident, err := m.store.Find(ctx, identity.BySessionToken(tok))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return ident, nil
}

// IdentityID returns the id of the identity bound to the session token.
func (m *Manager) IdentityID(ctx context.Context, tok string) (uuid.UUID, error) {
	ident, err := m.Identity(ctx, tok)
	if err != nil {
		return uuid.Nil, err
	}
	return ident.ID, nil
}

// Destroy clears the identity's session token. Destroying an identity that
// has no session is not an error, so the call is idempotent.
func (m *Manager) Destroy(ctx context.Context, identityID uuid.UUID) error {
	err := m.store.Update(ctx, identityID, identity.Changes{
		SessionToken: identity.ClearToken(),
	})
	if err != nil {
		return err
	}

	m.log.InfoContext(ctx, "session destroyed",
		logger.IdentityID(identityID),
		logger.Component("session"),
	)

	return nil
}
