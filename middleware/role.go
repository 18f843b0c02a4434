package middleware

import (
	"net/http"

	"github.com/Nuga25/interneefy-backend/models"
)

// RequireRole guards a route subtree with a coarse role check. Fine-grained
// role × relationship decisions stay in the authz package; this only fences
// off whole route groups such as the admin statistics endpoints.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil {
				unauthorized(w, "Authentication failed: No token provided.")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"code":"FORBIDDEN","error":"Insufficient role."}`))
		})
	}
}
