package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDeleteCodeVerifier_Plain(t *testing.T) {
	v, err := NewDeleteCodeVerifier("1234", "")
	require.NoError(t, err)

	assert.True(t, v.Verify("1234"))
	assert.False(t, v.Verify("12345"))
	assert.False(t, v.Verify("123"))
	assert.False(t, v.Verify(""))
}

func TestDeleteCodeVerifier_Hash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	v, err := NewDeleteCodeVerifier("ignored", string(hash))
	require.NoError(t, err)

	assert.True(t, v.Verify("secret"))
	assert.False(t, v.Verify("ignored"))
}

func TestNewDeleteCodeVerifier_Errors(t *testing.T) {
	_, err := NewDeleteCodeVerifier("", "")
	assert.ErrorIs(t, err, ErrNoDeleteCode)

	_, err = NewDeleteCodeVerifier("", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestHashDeleteCode(t *testing.T) {
	hash, err := HashDeleteCode("abc")
	require.NoError(t, err)

	v, err := NewDeleteCodeVerifier("", hash)
	require.NoError(t, err)
	assert.True(t, v.Verify("abc"))
}
