package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ziplink/ziplink/pkg/config"
	"github.com/ziplink/ziplink/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.LinkService) http.Handler {
	h := NewLinkHandler(service, cfg.BaseURL)
	mw := NewMiddleware(cfg)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})

	mux.HandleFunc("POST /shorten", h.Shorten)
	mux.HandleFunc("POST /verify_password", h.VerifyPassword)
	mux.HandleFunc("GET /api/links/{user_id}", h.ListUserLinks)
	mux.HandleFunc("DELETE /api/link/{short_code}", h.Delete)

	// Must come last in reading order, but the mux picks the more
	// specific pattern regardless: this only matches single-segment
	// paths that no other route claims.
	mux.HandleFunc("GET /{short_code}", h.Redirect)

	return mw.CORS(mux)
}
