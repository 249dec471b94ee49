package middleware

import (
	"net/http"
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

var testSecret = []byte("mw-test-secret")

func mintToken(t *testing.T, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func newMiddlewareFixture(t *testing.T) (func(http.Handler) http.Handler, *miniredis.Miniredis) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return JWTAuth(testSecret, client), mockRedis
}

func TestJWTAuth_InjectsClaims(t *testing.T) {
	mw, mockRedis := newMiddlewareFixture(t)
	mockRedis.Set("session:user-1", "1")

	var gotUser, gotRole any
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Context().Value(UserClaimsKey)
		gotRole = r.Context().Value(UserRoleKey)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/api/v1/channels", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, "user-1", "member"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, "member", gotRole)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	mw, _ := newMiddlewareFixture(t)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	r := httptest.NewRequest("GET", "/api/v1/channels", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	mw, _ := newMiddlewareFixture(t)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	}))

	r := httptest.NewRequest("GET", "/api/v1/channels", nil)
	r.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RevokedSession(t *testing.T) {
	mw, _ := newMiddlewareFixture(t)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a revoked session")
	}))

	// Token verifies but there is no session key in Redis.
	r := httptest.NewRequest("GET", "/api/v1/channels", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, "user-1", "member"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	mw, mockRedis := newMiddlewareFixture(t)
	mockRedis.Set("session:user-1", "1")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Sub: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	r := httptest.NewRequest("GET", "/api/v1/channels", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
