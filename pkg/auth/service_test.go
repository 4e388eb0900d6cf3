package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/authkit/authkit/pkg/identity"
	"github.com/authkit/authkit/pkg/password"
	"github.com/authkit/authkit/pkg/session"
)

func newService(t *testing.T, opts ...Option) (*Service, *identity.MemoryStore) {
	t.Helper()
	store := identity.NewMemoryStore()
	hasher := password.NewBcrypt(password.WithCost(bcrypt.MinCost))
	svc := New(store, hasher, session.New(store), opts...)
	return svc, store
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("persists identity with hashed password", func(t *testing.T) {
		t.Parallel()

		svc, store := newService(t)
		ident, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		require.NotNil(t, ident)
		assert.Equal(t, "a@b.com", ident.Email)
		assert.NotEqual(t, []byte("pw1"), ident.PasswordHash, "password must not be stored in the clear")

		found, err := store.Find(context.Background(), identity.ByEmail("a@b.com"))
		require.NoError(t, err)
		assert.Equal(t, ident.ID, found.ID)
	})

	t.Run("duplicate email fails with ErrEmailAlreadyExists", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "a@b.com", "other")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("email is normalized before storage", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		ident, err := svc.Register(context.Background(), "  User@B.COM ", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "user@b.com", ident.Email)

		_, err = svc.Register(context.Background(), "user@b.com", "pw2")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("empty password does not crash", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "empty@b.com", "")
		assert.NoError(t, err)
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	t.Run("register then login yields a resolving token", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		ident, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		tok, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		resolved, err := svc.Identity(context.Background(), tok)
		require.NoError(t, err)
		assert.Equal(t, ident.ID, resolved.ID)
	})

	t.Run("wrong password and unknown email fail with the same error", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		_, errWrong := svc.Login(context.Background(), "a@b.com", "wrong")
		_, errUnknown := svc.Login(context.Background(), "ghost@b.com", "pw1")

		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong, errUnknown, "enumeration safety: identical error values")
	})

	t.Run("second login invalidates the first session", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		first, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		second, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		_, err = svc.Identity(context.Background(), first)
		assert.ErrorIs(t, err, ErrNotAuthenticated)

		_, err = svc.Identity(context.Background(), second)
		assert.NoError(t, err)
	})

	t.Run("store outage surfaces as ErrUnavailable", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		store.On("Find", mock.Anything, mock.Anything).Return(nil, identity.ErrUnavailable)

		hasher := password.NewBcrypt(password.WithCost(bcrypt.MinCost))
		svc := New(store, hasher, session.New(store))

		_, err := svc.Login(context.Background(), "a@b.com", "pw1")
		assert.ErrorIs(t, err, identity.ErrUnavailable)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	t.Run("logout destroys the session", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		tok, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(context.Background(), tok))

		_, err = svc.Identity(context.Background(), tok)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("unresolvable token fails with ErrNotAuthenticated", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		assert.ErrorIs(t, svc.Logout(context.Background(), "never-issued"), ErrNotAuthenticated)
		assert.ErrorIs(t, svc.Logout(context.Background(), ""), ErrNotAuthenticated)
	})

	t.Run("second logout with the same token fails", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		tok, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(context.Background(), tok))
		assert.ErrorIs(t, svc.Logout(context.Background(), tok), ErrNotAuthenticated)
	})
}

func TestService_IssueResetToken(t *testing.T) {
	t.Parallel()

	t.Run("issues token for known email", func(t *testing.T) {
		t.Parallel()

		svc, store := newService(t)
		ident, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		tok, err := svc.IssueResetToken(context.Background(), "a@b.com")
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		found, err := store.Find(context.Background(), identity.ByResetToken(tok))
		require.NoError(t, err)
		assert.Equal(t, ident.ID, found.ID)
	})

	t.Run("unknown email fails with ErrUnknownUser", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.IssueResetToken(context.Background(), "ghost@b.com")
		assert.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("reissue invalidates the previous token", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		first, err := svc.IssueResetToken(context.Background(), "a@b.com")
		require.NoError(t, err)
		second, err := svc.IssueResetToken(context.Background(), "a@b.com")
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		err = svc.ConsumeResetToken(context.Background(), first, "newpw")
		assert.ErrorIs(t, err, ErrInvalidToken)

		assert.NoError(t, svc.ConsumeResetToken(context.Background(), second, "newpw"))
	})

	t.Run("generator failure propagates", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t, WithResetTokenGenerator(failingGenerator{err: errors.New("entropy down")}))
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		_, err = svc.IssueResetToken(context.Background(), "a@b.com")
		assert.EqualError(t, err, "entropy down")
	})
}

func TestService_ConsumeResetToken(t *testing.T) {
	t.Parallel()

	t.Run("changes the password exactly once", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		tok, err := svc.IssueResetToken(context.Background(), "a@b.com")
		require.NoError(t, err)

		require.NoError(t, svc.ConsumeResetToken(context.Background(), tok, "pw2"))

		_, err = svc.Login(context.Background(), "a@b.com", "pw1")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "old password no longer works")

		_, err = svc.Login(context.Background(), "a@b.com", "pw2")
		assert.NoError(t, err, "new password works")

		// Single-use: the same token cannot be redeemed again.
		err = svc.ConsumeResetToken(context.Background(), tok, "pw3")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty and unknown tokens fail with ErrInvalidToken", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		assert.ErrorIs(t, svc.ConsumeResetToken(context.Background(), "", "pw"), ErrInvalidToken)
		assert.ErrorIs(t, svc.ConsumeResetToken(context.Background(), "never-issued", "pw"), ErrInvalidToken)
	})

	t.Run("reset revokes live sessions by default", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t)
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		sessionTok, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		resetTok, err := svc.IssueResetToken(context.Background(), "a@b.com")
		require.NoError(t, err)
		require.NoError(t, svc.ConsumeResetToken(context.Background(), resetTok, "pw2"))

		_, err = svc.Identity(context.Background(), sessionTok)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("sessions survive reset when configured", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t, WithKeepSessionsOnReset())
		_, err := svc.Register(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)
		sessionTok, err := svc.Login(context.Background(), "a@b.com", "pw1")
		require.NoError(t, err)

		resetTok, err := svc.IssueResetToken(context.Background(), "a@b.com")
		require.NoError(t, err)
		require.NoError(t, svc.ConsumeResetToken(context.Background(), resetTok, "pw2"))

		_, err = svc.Identity(context.Background(), sessionTok)
		assert.NoError(t, err)
	})

	t.Run("hash and token clear happen in one update", func(t *testing.T) {
		t.Parallel()

		ident := &identity.Identity{Email: "a@b.com"}
		resetTok := "reset-1"
		ident.ResetToken = &resetTok

		store := &MockStore{}
		store.On("Find", mock.Anything, mock.Anything).Return(ident, nil)
		store.On("Update", mock.Anything, ident.ID, mock.MatchedBy(func(c identity.Changes) bool {
			clearedReset, ok := c.ResetToken.Apply()
			if !ok || clearedReset != nil {
				return false
			}
			clearedSession, ok := c.SessionToken.Apply()
			if !ok || clearedSession != nil || c.PasswordHash == nil {
				return false
			}
			return c.IfResetToken != nil && *c.IfResetToken == resetTok
		})).Return(nil)

		hasher := password.NewBcrypt(password.WithCost(bcrypt.MinCost))
		svc := New(store, hasher, session.New(store))

		require.NoError(t, svc.ConsumeResetToken(context.Background(), resetTok, "pw2"))
		store.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("racing consumer loses when the token was already redeemed", func(t *testing.T) {
		t.Parallel()

		// The lookup still sees the token, but by the time the conditional
		// update runs another consumer has cleared the slot.
		ident := &identity.Identity{Email: "a@b.com"}
		resetTok := "reset-1"
		ident.ResetToken = &resetTok

		store := &MockStore{}
		store.On("Find", mock.Anything, mock.Anything).Return(ident, nil)
		store.On("Update", mock.Anything, ident.ID, mock.Anything).Return(identity.ErrNotFound)

		hasher := password.NewBcrypt(password.WithCost(bcrypt.MinCost))
		svc := New(store, hasher, session.New(store))

		err := svc.ConsumeResetToken(context.Background(), resetTok, "pw2")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNew_NilWiring(t *testing.T) {
	t.Parallel()

	store := identity.NewMemoryStore()
	hasher := password.NewBcrypt()

	assert.Panics(t, func() { New(nil, hasher, session.New(store)) })
	assert.Panics(t, func() { New(store, nil, session.New(store)) })
	assert.Panics(t, func() { New(store, hasher, nil) })
}
