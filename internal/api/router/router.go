package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mediscribe/platform/internal/admin"
	"github.com/mediscribe/platform/internal/http/handlers"
	httpmiddleware "github.com/mediscribe/platform/internal/http/middleware"
	"github.com/mediscribe/platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	KioskHandler       *handlers.KioskHandler
	AdminHandler       *admin.Handler
	AdminAuthSecret    string
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Patient kiosk flow.
	r.Route("/kiosk", func(k chi.Router) {
		k.Post("/sessions", cfg.KioskHandler.CreateSession)
		k.Get("/sessions/{sessionID}", cfg.KioskHandler.GetSession)
		k.Post("/sessions/{sessionID}/analyze", cfg.KioskHandler.Analyze)
		k.Post("/sessions/{sessionID}/booking", cfg.KioskHandler.Book)
		k.Get("/reports/{filename}", cfg.KioskHandler.DownloadReport)
	})

	// Admin dashboard.
	r.Route("/admin", func(a chi.Router) {
		a.Post("/login", cfg.AdminHandler.Login)
		a.Post("/logout", cfg.AdminHandler.Logout)
		a.Group(func(gated chi.Router) {
			gated.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			gated.Get("/reports", cfg.AdminHandler.Reports)
		})
	})

	return r
}
