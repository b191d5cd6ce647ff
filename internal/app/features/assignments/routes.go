// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /assignments. The whole feature
// is admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

		pr.Get("/", h.ServeList)
		pr.Get("/catalog", h.ServeCatalog)
		pr.Post("/", h.HandleAssign)
		pr.Post("/{id}/revoke", h.HandleRevoke)
	})

	return r
}
