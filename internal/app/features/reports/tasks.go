// internal/app/features/reports/tasks.go
package reports

import (
	"context"
	"net/http"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/reporthub/internal/app/system/authz"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
)

type tasksResponse struct {
	Tasks []reportqueries.Task `json:"tasks"`
}

// ServeTasks handles GET /reports/tasks: every active assignment for the
// caller's office, flagged completed once the caller has submitted for it.
func (h *Handler) ServeTasks(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := reportqueries.ListAssignedTasks(ctx, h.DB, userID)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, tasksResponse{Tasks: tasks})
}
