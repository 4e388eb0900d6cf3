package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/authkit/authkit/pkg/identity"
	"github.com/authkit/authkit/pkg/logger"
	"github.com/authkit/authkit/pkg/password"
	"github.com/authkit/authkit/pkg/sanitizer"
	"github.com/authkit/authkit/pkg/session"
	"github.com/authkit/authkit/pkg/token"
)

// Service orchestrates registration, login/logout and the password-reset
// flow. It owns no state: every call reads and writes through the identity
// store, and password hashing happens before any store call so the
// expensive work never runs under a store lock.
type Service struct {
	store       identity.Store
	hasher      password.Hasher
	sessions    *session.Manager
	resetTokens token.Generator
	log         *slog.Logger

	// keepSessionsOnReset preserves live sessions across a password reset.
	// Default is to revoke them: a reset usually means the password leaked,
	// and whoever holds a stolen session should be logged out with it.
	keepSessionsOnReset bool
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithResetTokenGenerator overrides the generator used for reset tokens.
func WithResetTokenGenerator(gen token.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.resetTokens = gen
		}
	}
}

// WithKeepSessionsOnReset disables session revocation during password
// resets for deployments that prefer the original behavior.
func WithKeepSessionsOnReset() Option {
	return func(s *Service) {
		s.keepSessionsOnReset = true
	}
}

// New creates the authentication service. Nil capabilities are wiring bugs
// and panic immediately.
func New(store identity.Store, hasher password.Hasher, sessions *session.Manager, opts ...Option) *Service {
	if store == nil {
		panic("auth: nil identity store")
	}
	if hasher == nil {
		panic("auth: nil password hasher")
	}
	if sessions == nil {
		panic("auth: nil session manager")
	}

	s := &Service{
		store:       store,
		hasher:      hasher,
		sessions:    sessions,
		resetTokens: token.NewRandom(),
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity from email and password. Presence
// validation of both fields is the caller's concern; this layer only
// guarantees email uniqueness, reported as ErrEmailAlreadyExists.
func (s *Service) Register(ctx context.Context, email, pass string) (*identity.Identity, error) {
	email = sanitizer.NormalizeEmail(email)

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, err
	}

	ident, err := s.store.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "identity registered",
		logger.IdentityID(ident.ID),
		logger.Email(email),
		logger.Component("auth"),
	)

	return ident, nil
}

// Login verifies the credentials and mints a session token, displacing any
// session the identity already had. Unknown email and wrong password fail
// with the same ErrInvalidCredentials so the endpoint cannot be used to
// probe which emails are registered.
func (s *Service) Login(ctx context.Context, email, pass string) (string, error) {
	email = sanitizer.NormalizeEmail(email)

	ident, err := s.store.Find(ctx, identity.ByEmail(email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.hasher.Verify(ident.PasswordHash, pass); err != nil {
		return "", ErrInvalidCredentials
	}

	tok, err := s.sessions.Create(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			// The identity vanished between lookup and session creation.
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	s.log.InfoContext(ctx, "login succeeded",
		logger.IdentityID(ident.ID),
		logger.Component("auth"),
	)

	return tok, nil
}

// Logout resolves the session token and destroys the session. Tokens that
// do not resolve are reported as ErrNotAuthenticated.
func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	ident, err := s.sessions.Identity(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ErrNotAuthenticated
		}
		return err
	}

	if err := s.sessions.Destroy(ctx, ident.ID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "logout",
		logger.IdentityID(ident.ID),
		logger.Component("auth"),
	)

	return nil
}

// Identity returns the identity bound to a session token, for profile
// lookups. Unresolvable tokens are reported as ErrNotAuthenticated.
func (s *Service) Identity(ctx context.Context, sessionToken string) (*identity.Identity, error) {
	ident, err := s.sessions.Identity(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return ident, nil
}

// IssueResetToken mints a password-reset token for the email's identity,
// silently displacing any pending one — the reset slot is single-valued,
// so the older token stops working the moment a new one is issued.
// Unknown emails are reported as ErrUnknownUser.
func (s *Service) IssueResetToken(ctx context.Context, email string) (string, error) {
	email = sanitizer.NormalizeEmail(email)

	ident, err := s.store.Find(ctx, identity.ByEmail(email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", err
	}

	tok, err := s.resetTokens.Generate()
	if err != nil {
		return "", err
	}

	err = s.store.Update(ctx, ident.ID, identity.Changes{
		ResetToken: identity.SetToken(tok),
	})
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", err
	}

	s.log.InfoContext(ctx, "reset token issued",
		logger.IdentityID(ident.ID),
		logger.Component("auth"),
	)

	return tok, nil
}

// ConsumeResetToken redeems a reset token for exactly one password change.
// The new hash is written and the token cleared in a single atomic update
// conditioned on the token still being in place, so two racing consumers
// cannot both redeem it. Unless configured otherwise the same update also
// revokes any live session. Unknown or already-consumed tokens are reported
// as ErrInvalidToken.
func (s *Service) ConsumeResetToken(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return ErrInvalidToken
	}

	ident, err := s.store.Find(ctx, identity.ByResetToken(resetToken))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	changes := identity.Changes{
		PasswordHash: hash,
		ResetToken:   identity.ClearToken(),
		IfResetToken: &resetToken,
	}
	if !s.keepSessionsOnReset {
		changes.SessionToken = identity.ClearToken()
	}

	err = s.store.Update(ctx, ident.ID, changes)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	s.log.InfoContext(ctx, "password reset",
		logger.IdentityID(ident.ID),
		logger.Component("auth"),
	)

	return nil
}
