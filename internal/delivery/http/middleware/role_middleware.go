package middleware

import (
	"net/http"

	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/pkg/response"
)

// RequireRole allows the request through only when the authenticated role is
// one of roleIDs. Must run after Authenticate.
func RequireRole(roleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "")
				return
			}

			for _, allowed := range roleIDs {
				if roleID == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequirePatientOrAdmin gates booking: doctors cannot book on behalf of
// patients.
func RequirePatientOrAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient, entity.RoleIDAdmin)(next)
}
