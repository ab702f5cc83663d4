package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword("hunter2", hash))
	assert.False(t, CheckPassword("hunter3", hash))
	assert.False(t, CheckPassword("hunter2", "not-a-hash"))
}

func TestSignAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	token, err := tokens.Sign(42)
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerify_TamperedSignature(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	token, err := tokens.Sign(42)
	require.NoError(t, err)

	// Flip the last character of the signature
	tampered := token[:len(token)-1]
	if strings.HasSuffix(token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = tokens.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokens("secret-one", time.Hour).Sign(42)
	require.NoError(t, err)

	_, err = NewTokens("secret-two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingUserIDClaim(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	// A well-signed token that simply has no userId claim
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnsignedToken(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 42})
	signed, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	token, err := tokens.Sign(42)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}
