package jwt

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SidhantUppal/roombook/internal/models"
)

// UIDKey is the context key under which the middleware stores the caller's user id.
const UIDKey = models.ContextKey("uid")

// NewToken mints a signed HS256 token for the given user.
func NewToken(user models.User, secret string, ttl time.Duration) (string, error) {
	const op = "lib.jwt.NewToken"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// AuthMiddleware rejects requests without a valid Bearer token and puts the
// uid claim into the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			tokenStr := parts[1]

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid claims", http.StatusUnauthorized)
				return
			}

			uid, ok := claims["uid"].(float64)
			if !ok || uid <= 0 {
				http.Error(w, "invalid uid claim", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UIDKey, int64(uid))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id set by AuthMiddleware.
func UserID(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(UIDKey).(int64)
	return uid, ok && uid > 0
}
