package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/pkg/jwt"
)

// AuthService validates access tokens for the auth middleware.
type AuthService interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Context keys for the authenticated caller's identity.
const (
	ClaimsKey    contextKey = "claims"
	UserEmailKey contextKey = "userEmail"
	UserRoleKey  contextKey = "userRole"
)

// bearerToken pulls the token out of an Authorization header using the
// Bearer scheme. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

// withIdentity stores the validated claims and their commonly read fields
// on the request context.
func withIdentity(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
	return context.WithValue(ctx, ClaimsKey, claims)
}

func tokenRejection(err error) *model.ProblemDetails {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.NewUnauthorizedError("token expired")
	case errors.Is(err, jwt.ErrInvalidSignature):
		return model.NewUnauthorizedError("invalid token signature")
	default:
		return model.NewUnauthorizedError("invalid token")
	}
}

// Auth rejects requests without a valid bearer token and exposes the
// caller's identity to downstream handlers via the request context.
func Auth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				tokenRejection(err).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
		})
	}
}

// OptionalAuth identifies the caller when a valid bearer token is present
// but lets anonymous or badly authenticated requests through untouched.
// Public listings use it to personalize results for logged-in users.
func OptionalAuth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
		})
	}
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// GetUserEmail extracts the user email from context
func GetUserEmail(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

// GetUserRole extracts the user's role from context
func GetUserRole(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims
}
