package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vato-reader/internal/catalog"
	"vato-reader/internal/handlers"
	"vato-reader/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Reader           service.Reader
	Catalog          catalog.Loader // Used by the health check
	BookmarksEnabled bool
	About            *handlers.AboutHandler
	StaticDir        string // Served for any unmatched path when set
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	api := handlers.NewAPIHandler(deps.Reader)
	pages := handlers.NewPageHandler(deps.Reader)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Catalog, deps.BookmarksEnabled))
		r.Get("/chapters", api.ListChapters)
		r.Get("/chapters/{chapterID}", api.GetChapter)
		r.Get("/chapters/{chapterID}/vats/{vatFile}", api.GetVat)
		r.Get("/last-read", api.GetLastRead)
		r.Delete("/last-read", api.DeleteLastRead)
	})

	// Reader pages
	r.Get("/", pages.Home)
	r.Get("/chapter/{chapterID}", pages.Chapter)
	r.Get("/chapter/{chapterID}/{vatFile}", pages.Vat)
	if deps.About != nil {
		r.Method(http.MethodGet, "/about", deps.About)
	}

	// vato.json and output_html/ live under the data directory
	if deps.StaticDir != "" {
		r.NotFound(http.FileServer(http.Dir(deps.StaticDir)).ServeHTTP)
	}

	return r
}
