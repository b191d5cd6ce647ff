// internal/app/features/submissions/routes.go
package submissions

import (
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /submissions. Submitting only
// needs a signed-in user (the workflow checks the office claim); the review
// queue and decisions are admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/", h.HandleSubmit)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

		pr.Get("/pending", h.ServePending)
		pr.Post("/{id}/approve", h.HandleApprove)
		pr.Post("/{id}/reject", h.HandleReject)
	})

	return r
}
