package websocket

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wsTestSecret = []byte("ws-test-secret")

func mintWSToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Sub: sub,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(wsTestSecret)
	require.NoError(t, err)
	return signed
}

func newAuthFixture(t *testing.T) (AuthenticatorFunc, *miniredis.Miniredis) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return JWTWebSocketAuth(wsTestSecret, client), mockRedis
}

func TestJWTWebSocketAuth_QueryToken(t *testing.T) {
	auth, mockRedis := newAuthFixture(t)
	mockRedis.Set("session:user-1", "1")

	r := httptest.NewRequest("GET", "/ws?token="+mintWSToken(t, "user-1"), nil)

	userID, err := auth(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTWebSocketAuth_BearerHeader(t *testing.T) {
	auth, mockRedis := newAuthFixture(t)
	mockRedis.Set("session:user-1", "1")

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+mintWSToken(t, "user-1"))

	userID, err := auth(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTWebSocketAuth_RevokedSession(t *testing.T) {
	auth, _ := newAuthFixture(t)

	// Valid token, but no session key in Redis.
	r := httptest.NewRequest("GET", "/ws?token="+mintWSToken(t, "user-1"), nil)

	_, err := auth(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoked")
}

func TestJWTWebSocketAuth_BadToken(t *testing.T) {
	auth, mockRedis := newAuthFixture(t)
	mockRedis.Set("session:user-1", "1")

	r := httptest.NewRequest("GET", "/ws?token=not-a-jwt", nil)

	_, err := auth(r)
	assert.Error(t, err)
}

func TestJWTWebSocketAuth_MissingToken(t *testing.T) {
	auth, _ := newAuthFixture(t)

	r := httptest.NewRequest("GET", "/ws", nil)

	_, err := auth(r)
	assert.Error(t, err)
}
