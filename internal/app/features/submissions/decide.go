// internal/app/features/submissions/decide.go
package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"github.com/dalemusser/reporthub/internal/app/system/authz"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleApprove handles POST /submissions/{id}/approve. Approving makes the
// batch the visible dataset for its table and office.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Pipeline.Approve, "approved")
}

// HandleReject handles POST /submissions/{id}/reject. Rejected batches stay
// on record but never become visible.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Pipeline.Reject, "rejected")
}

type decideFn func(ctx context.Context, id pipeline.Identity, submissionID primitive.ObjectID) error

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn decideFn, outcome string) {
	id, ok := authz.CallerIdentity(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	submissionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "bad submission id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := fn(ctx, id, submissionID); err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"status": outcome})
}
