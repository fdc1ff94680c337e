package middleware

import (
	"net/http"
	"slices"

	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole allows the request when the token's role claim is one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			role, ok := claims["role"].(string)
			if !ok || !slices.Contains(roles, role) {
				response.Forbidden(w, "Insufficient role for this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrRole allows the request when the token's user_id claim matches
// the URL parameter param, or when its role is one of roles.
func RequireSelfOrRole(param string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			role, _ := claims["role"].(string)
			userID, _ := claims["user_id"].(string)
			if slices.Contains(roles, role) || (userID != "" && userID == chi.URLParam(r, param)) {
				next.ServeHTTP(w, r)
				return
			}

			response.Forbidden(w, "Only the employee or a manager may act on this resource")
		})
	}
}
