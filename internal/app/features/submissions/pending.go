// internal/app/features/submissions/pending.go
package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/dalemusser/reporthub/internal/domain/models"
)

type pendingResponse struct {
	Submissions []models.Submission `json:"submissions"`
}

// ServePending handles GET /submissions/pending: the review queue, oldest
// first so nothing starves at the back.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Pipeline.Submissions().ListPending(ctx)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, pendingResponse{Submissions: pending})
}
