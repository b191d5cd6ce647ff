// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /uploads. Bulk uploads bypass
// the submission workflow, so the whole feature is admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

		pr.Post("/", h.HandleUpload)
		pr.Get("/{table}/schema", h.ServeSchema)
		pr.Get("/{table}/rows", h.ServeRows)
	})

	return r
}
