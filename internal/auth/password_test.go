package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

// newTestPasswordService returns a PasswordService at bcrypt.MinCost so each
// hash takes milliseconds instead of the deliberate ~250ms of cost 12.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceWithCost(bcrypt.MinCost)
}

func TestHash_verifiesAgainstOriginal(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("my-secret-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"), "output should be a bcrypt hash: %q", hash)

	assert.True(t, ps.Verify(hash, "my-secret-password"))
	assert.False(t, ps.Verify(hash, "wrong-password"))
}

func TestHash_samePasswordDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	h1, err := ps.Hash("password123")
	require.NoError(t, err)
	h2, err := ps.Hash("password123")
	require.NoError(t, err)

	// bcrypt salts every hash, so two hashes of the same input differ.
	assert.NotEqual(t, h1, h2)
}

func TestHash_rejectsOver72Bytes(t *testing.T) {
	ps := newTestPasswordService()

	_, err := ps.Hash(strings.Repeat("x", 73))
	require.Error(t, err)
}

func TestVerify_garbageHash(t *testing.T) {
	ps := newTestPasswordService()
	assert.False(t, ps.Verify("not-a-bcrypt-hash", "whatever"))
}
