// internal/app/features/assignments/revoke.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/system/authz"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleRevoke handles POST /assignments/{id}/revoke. Revoking is terminal
// for the assignment record; the pair can be reassigned afterwards with a
// fresh record.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.CallerIdentity(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "bad assignment id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Pipeline.Revoke(ctx, id, assignmentID); err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}
