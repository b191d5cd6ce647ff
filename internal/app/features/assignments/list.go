// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/dalemusser/reporthub/internal/domain/models"
)

type listResponse struct {
	Assignments []models.Assignment `json:"assignments"`
}

// ServeList handles GET /assignments. With ?office= it returns only that
// office's active assignments; without it, the full assignment history
// including revoked records.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := h.Pipeline.Assignments()

	var (
		out []models.Assignment
		err error
	)
	if office := strings.TrimSpace(r.URL.Query().Get("office")); office != "" {
		out, err = store.ListActiveByOffice(ctx, office)
	} else {
		out, err = store.ListAll(ctx)
	}
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{Assignments: out})
}

// ServeCatalog handles GET /assignments/catalog: the fixed set of report
// tables an admin can assign, each with its column shape.
func (h *Handler) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string][]catalog.Entry{"tables": catalog.Entries()})
}
