package middleware

import (
	"context"
	"crypto/rsa"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/services"
)

type AuthMiddleware struct {
	publicKey   *rsa.PublicKey
	redisClient ports.RedisClient
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, redisClient ports.RedisClient) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey:   publicKey,
		redisClient: redisClient,
	}
}

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	SessionIDKey contextKey = "sessionID"
	RolesKey     contextKey = "roles"
	TokenKey     contextKey = "token"
)

// RequireAuth admits any authenticated user.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireRole(nil, next)
}

// RequireRole validates the bearer token, rejects blacklisted tokens,
// and admits the request if the token carries any of the given roles.
// An empty role list admits every authenticated user.
func (m *AuthMiddleware) RequireRole(roles []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !token.Valid {
			log.Printf("auth middleware: token rejected: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if m.isBlacklisted(r.Context(), tokenString) {
			http.Error(w, "token has been revoked", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			http.Error(w, "invalid token: missing user ID", http.StatusUnauthorized)
			return
		}

		sessionID, ok := claims["sid"].(string)
		if !ok || sessionID == "" {
			http.Error(w, "invalid token: missing session ID", http.StatusUnauthorized)
			return
		}

		userRoles := claimRoles(claims)
		if len(userRoles) == 0 {
			http.Error(w, "invalid token: missing roles", http.StatusUnauthorized)
			return
		}

		if len(roles) > 0 && !hasAnyRole(userRoles, roles) {
			log.Printf("auth middleware: role mismatch for user %s: required one of %v", userID, roles)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, SessionIDKey, sessionID)
		ctx = context.WithValue(ctx, RolesKey, userRoles)
		ctx = context.WithValue(ctx, TokenKey, tokenString)

		next(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) isBlacklisted(ctx context.Context, token string) bool {
	n, err := m.redisClient.Exists(ctx, services.TokenBlacklistKey(token)).Result()
	if err != nil {
		// Redis being down must not lock every user out.
		log.Printf("auth middleware: blacklist check failed: %v", err)
		return false
	}
	return n > 0
}

func claimRoles(claims jwt.MapClaims) []domain.Role {
	raw, ok := claims["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]domain.Role, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok && s != "" {
			roles = append(roles, domain.Role(s))
		}
	}
	return roles
}

func hasAnyRole(have, want []domain.Role) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
