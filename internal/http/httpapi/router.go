package httpapi

import (
	"net/http"
	"time"

	"thumbsmith/internal/http/handlers"
	"thumbsmith/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	// SessionID runs before Logger so every access line carries both IDs.
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(app.Config.AllowedOrigins),
		middleware.SessionID,
		middleware.Logger(app.Logger),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	// One limiter shared by both generation routes, so a caller cannot dodge
	// the budget by alternating between them.
	limitGeneration := middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)

	r.Route("/v1/thumbnails", func(r chi.Router) {
		r.With(limitGeneration).Post("/generate", app.Generate)
		r.With(limitGeneration).Post("/rerender", app.Rerender)
		r.Get("/current", app.Current)
		r.Get("/image", app.Image)
		r.Get("/export", app.Export)
	})

	return r
}
