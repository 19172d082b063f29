package middleware

import (
	"net/http"

	"github.com/spinwin/backend/internal/contextkeys"
	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/internal/handler"
)

// StaffOnly ensures the account has the staff role. Must be used AFTER Auth,
// which sets contextkeys.AccountRole.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(contextkeys.AccountRole).(string)
		if !ok || role != domain.RoleStaff {
			handler.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: staff access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
