// internal/app/features/uploads/view.go
package uploads

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type schemaResponse struct {
	Schema models.DynamicTableSchema `json:"schema"`
}

type rowsResponse struct {
	Rows []models.UploadRow `json:"rows"`
}

// ServeSchema handles GET /uploads/{table}/schema: the column set fixed by
// the table's first upload.
func (h *Handler) ServeSchema(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	schema, err := h.Store.Schema(ctx, chi.URLParam(r, "table"))
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, schemaResponse{Schema: schema})
}

// ServeRows handles GET /uploads/{table}/rows, optionally filtered to one
// batch with ?batch=.
func (h *Handler) ServeRows(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	table := chi.URLParam(r, "table")

	var (
		rows []models.UploadRow
		err  error
	)
	if batch := strings.TrimSpace(r.URL.Query().Get("batch")); batch != "" {
		rows, err = h.Store.RowsByBatch(ctx, table, batch)
	} else {
		rows, err = h.Store.Rows(ctx, table)
	}
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, rowsResponse{Rows: rows})
}
