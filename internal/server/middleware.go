package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// BearerAuth rejects requests whose Authorization header does not carry the
// configured API key. An empty configured key rejects everything.
func BearerAuth(apiKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if apiKey == "" || header == token || token != apiKey {
				logger.Warn("unauthorized request",
					zap.String("path", r.URL.Path),
					zap.String("remoteAddr", r.RemoteAddr),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"UNAUTHORIZED","message":"missing or invalid credentials"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
