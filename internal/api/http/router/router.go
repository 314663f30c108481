package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mpetrov/geovault/internal/api/http/handler"
	"github.com/mpetrov/geovault/internal/api/http/middleware"
)

// New builds the API router. Zone management and file administration are
// admin-gated at the route level; file access decisions run through the
// decision engine inside the vault.
func New(h *handler.Handler, auth *middleware.Authenticate) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(auth.Handler)

		api.Route("/zones", func(zones chi.Router) {
			zones.Use(middleware.RequireAdmin)
			zones.Post("/", h.ZoneCreate)
			zones.Get("/", h.ZoneList)
			zones.Get("/{id}", h.ZoneGet)
			zones.Delete("/{id}", h.ZoneDelete)
		})

		api.Route("/files", func(files chi.Router) {
			files.Post("/", h.FileStore)
			files.Get("/{id}", h.FileRetrieve)
			files.Post("/{id}/check", h.FileCheck)

			files.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin)
				admin.Get("/", h.FileList)
				admin.Delete("/{id}", h.FileDelete)
				admin.Get("/{id}/attempts", h.FileAttempts)
			})
		})
	})

	return r
}
