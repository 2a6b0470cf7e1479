package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

var ErrNoClaims = errors.New("no user claims in context")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := extractToken(r)
		if tokenStr == "" {
			config.WriteError(w, r, apperr.Unauthorized("Missing token"))
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Rejected bearer token")
			if errors.Is(err, jwt.ErrTokenExpired) {
				config.WriteError(w, r, apperr.Unauthorized("Token expired"))
				return
			}
			config.WriteError(w, r, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		ctx := WithClaims(r.Context(), claims)
		ctx = config.ContextWithFields(ctx, logrus.Fields{"user_id": claims.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	if !ok || claims == nil || claims.UserID == "" {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if cookie, err := r.Cookie("jwt"); err == nil {
		return cookie.Value
	}
	return ""
}
