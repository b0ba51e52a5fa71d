package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hashed, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hashed)

	require.NoError(t, hasher.Compare(hashed, "correct horse battery"))
	assert.Error(t, hasher.Compare(hashed, "wrong password"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	// An out-of-range cost must still produce a working hasher.
	hasher := NewBcryptHasher(-1)

	hashed, err := hasher.Hash("long enough password")
	require.NoError(t, err)
	require.NoError(t, hasher.Compare(hashed, "long enough password"))
}
