package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Verify("s3cret-pass", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("s3cret-pass", "not-a-hash"))
}

func TestNewBcryptPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptPasswordHasher(100)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func TestBcryptPasswordHasher_VerifyReturnsSentinel(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("right")
	require.NoError(t, err)

	assert.ErrorIs(t, h.Verify("wrong", hash), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Verify("right", "garbage"), ErrPasswordMismatch)
}

func TestBcryptPasswordHasher_RejectsOverlongPassword(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)
	_, err := h.Hash(string(make([]byte, 73)))
	assert.Error(t, err)
}
