package websocket

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils"
	"github.com/redis/go-redis/v9"
)

// JWTWebSocketAuth verifies the externally-issued token and checks the
// session has not been revoked. Tokens cannot be refreshed during the
// handshake; an expired token means refresh over HTTP and reconnect.
func JWTWebSocketAuth(secret []byte, rdb *redis.Client) AuthenticatorFunc {
	return func(r *http.Request) (string, error) {
		token := getTokenFromRequest(r)

		claims, err := utils.ParseAndVerifySign(token, secret)
		if err != nil {
			return "", &AuthError{Message: "invalid or expired token"}
		}

		sessionKey := fmt.Sprintf("session:%s", claims.Sub)
		exists, err := rdb.Exists(context.Background(), sessionKey).Result()
		if err != nil || exists == 0 {
			return "", &AuthError{Message: "session not found or revoked"}
		}

		return claims.Sub, nil
	}
}

func getTokenFromRequest(r *http.Request) string {
	// Option 1: Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Option 2: Query parameter
	token := r.URL.Query().Get("token")
	if token != "" {
		return token
	}

	// Option 3: Cookie
	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
