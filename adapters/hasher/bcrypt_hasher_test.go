package hasher

import (
	"strings"
	"testing"

	"github.com/penpot-ir/panel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	ok, err := h.Verify("admin123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("admin124", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("user123")
	require.NoError(t, err)
	second, err := h.Hash("user123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)

	hash, err := h.Hash("secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, hash := range []string{"", "plaintext", "$2a$10$short", "$9x$10$abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz01"} {
		ok, err := h.Verify("anything", hash)
		assert.False(t, ok, hash)
		assert.ErrorIs(t, err, core.ErrInvalidHashFormat, hash)
	}
}
