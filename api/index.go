package handler

import (
	"net/http"

	"github.com/ziplink/ziplink/pkg/adapters/handler"
	"github.com/ziplink/ziplink/pkg/adapters/repository/sqlite"
	"github.com/ziplink/ziplink/pkg/config"
	"github.com/ziplink/ziplink/pkg/core/domain"
	"github.com/ziplink/ziplink/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, ziplink.db is ephemeral unless DATABASE_URL points
	// at a remote libsql/Turso URL
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	service := services.NewLinkService(repo, services.NewPasswordHasher(), domain.RealClock{})
	mux = handler.NewRouter(cfg, service)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
