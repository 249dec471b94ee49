package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func mintToken(t *testing.T, secret []byte, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestParseAndVerifySign_Valid(t *testing.T) {
	tokenStr := mintToken(t, testSecret, Claims{
		Sub:      "user-1",
		Username: "alice",
		Role:     "member",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ParseAndVerifySign(tokenStr, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

func TestParseAndVerifySign_WrongSecret(t *testing.T) {
	tokenStr := mintToken(t, []byte("other-secret"), Claims{Sub: "user-1"})

	_, err := ParseAndVerifySign(tokenStr, testSecret)
	assert.Error(t, err)
}

func TestParseAndVerifySign_Expired(t *testing.T) {
	tokenStr := mintToken(t, testSecret, Claims{
		Sub: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ParseAndVerifySign(tokenStr, testSecret)
	assert.Error(t, err)
}

func TestParseAndVerifySign_EmptyToken(t *testing.T) {
	_, err := ParseAndVerifySign("", testSecret)
	assert.Error(t, err)
}

func TestParseAndVerifySign_RejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Sub: "user-1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAndVerifySign(signed, testSecret)
	assert.Error(t, err)
}
