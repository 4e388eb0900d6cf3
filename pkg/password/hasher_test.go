package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_Hash(t *testing.T) {
	t.Parallel()

	t.Run("produces verifiable salted hash", func(t *testing.T) {
		t.Parallel()

		h := NewBcrypt(WithCost(bcrypt.MinCost))
		hash, err := h.Hash("s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		assert.NoError(t, h.Verify(hash, "s3cret"))
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		t.Parallel()

		h := NewBcrypt(WithCost(bcrypt.MinCost))
		one, err := h.Hash("s3cret")
		require.NoError(t, err)
		two, err := h.Hash("s3cret")
		require.NoError(t, err)

		assert.NotEqual(t, one, two)
	})

	t.Run("empty password does not crash", func(t *testing.T) {
		t.Parallel()

		h := NewBcrypt(WithCost(bcrypt.MinCost))
		hash, err := h.Hash("")
		require.NoError(t, err)
		assert.NoError(t, h.Verify(hash, ""))
		assert.ErrorIs(t, h.Verify(hash, "not-empty"), ErrMismatch)
	})
}

func TestBcrypt_Verify(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(WithCost(bcrypt.MinCost))
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, h.Verify(hash, "wrong horse"), ErrMismatch)
	})

	t.Run("garbage hash", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, h.Verify([]byte("not a bcrypt hash"), "correct horse"), ErrMismatch)
	})

	t.Run("nil hash", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, h.Verify(nil, "correct horse"), ErrMismatch)
	})
}
