package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := New()

	encoded, err := a.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))
	assert.NotContains(t, encoded, "correct horse battery staple")

	ok, err := a.VerifyPasswd("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	a := New()

	first, err := a.GenerateFromPassword("same input")
	require.NoError(t, err)
	second, err := a.GenerateFromPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyMalformedHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("whatever", "not-a-phc-hash")
	assert.Error(t, err)
}
