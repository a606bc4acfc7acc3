// Package middleware provides HTTP middleware for the incoming webhook
// route.
package middleware

import (
	"crypto/subtle"
	"net/http"
)

// WebhookSecret returns middleware that validates the shared secret Trello
// echoes back as a callback URL query parameter. The comparison is
// constant-time.
func WebhookSecret(secret, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, `{"error":"webhook secret not configured"}`, http.StatusServiceUnavailable)
				return
			}

			got := r.URL.Query().Get(param)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				http.Error(w, "invalid webhook secret", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
