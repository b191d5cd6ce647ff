// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /reports. All read paths need a
// signed-in user; office scoping happens per handler.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeApproved)
		pr.Get("/tasks", h.ServeTasks)
		pr.Get("/rows", h.ServeRows)
	})

	return r
}
