package middleware

import (
	"net/http"

	"github.com/pawmarket/api/internal/model"
)

// RequireRole returns a middleware that rejects authenticated users whose
// role is not in the allowed set. Admins always pass. Must run after Auth.
func RequireRole(roles ...model.UserRole) Middleware {
	allowed := make(map[model.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := model.UserRole(GetUserRole(r.Context()))
			if role == "" {
				model.NewUnauthorizedError("authentication required").WriteJSON(w)
				return
			}

			if role != model.UserRoleAdmin && !allowed[role] {
				model.NewForbiddenError("insufficient role for this operation").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns a middleware that only lets admins through.
// Must run after Auth.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				model.NewUnauthorizedError("authentication required").WriteJSON(w)
				return
			}

			if !claims.IsAdmin() {
				model.NewForbiddenError("admin access required").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
