package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/auth"
)

// RequirePermission gates a route group on one permission id. Three distinct
// outcomes: no session is 401, a pending resolution is 425 (retryable, not a
// denial), a resolved "no" is 403.
func RequirePermission(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			allowed, err := user.Can(id)
			if err != nil {
				var appErr *internal.AppError
				if errors.As(err, &appErr) {
					status, body := appErr.ToHTTPResponse()
					writeJSON(w, status, body)
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !allowed {
				slog.Warn("access denied: missing permission",
					"user_id", user.ID,
					"required_permission", id)
				writeJSONError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
