package handler

import (
	"net/http"

	"github.com/ziplink/ziplink/pkg/config"
)

type Middleware struct {
	allowedOrigin string
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		allowedOrigin: cfg.FrontendURL,
	}
}

// CORS allows the companion front-end origin to call the JSON API and
// answers preflight requests. Other origins get no CORS headers.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && origin == m.allowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
