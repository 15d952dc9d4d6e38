package providers

import (
	"crypto/subtle"
	"net/http"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminTokenMiddleware lets a request through only when it carries the
// configured admin token. An empty token closes the routes entirely.
func AdminTokenMiddleware(token string, logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				http.Error(w, "Admin commands are disabled", http.StatusForbidden)
				return
			}
			got := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warnf(TypeApp, "Rejected admin request to %s from %s", r.URL.Path, r.RemoteAddr)
				http.Error(w, "Administrator permissions required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
