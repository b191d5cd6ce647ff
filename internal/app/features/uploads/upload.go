// internal/app/features/uploads/upload.go
package uploads

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/store/audit"
	"github.com/dalemusser/reporthub/internal/app/system/authz"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/dalemusser/reporthub/internal/domain/models"
)

type uploadRequest struct {
	TableName   string       `json:"table_name"`
	Office      string       `json:"office"`
	Description string       `json:"description"`
	Rows        []models.Row `json:"rows"`
}

type uploadResponse struct {
	BatchID  string `json:"batch_id"`
	RowCount int    `json:"row_count"`
}

// HandleUpload handles POST /uploads: one batch of rows appended to a
// dynamic table. The batch is all-or-nothing; the response carries the batch
// id stamped on every inserted row.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	req.TableName = strings.TrimSpace(req.TableName)
	req.Office = strings.TrimSpace(req.Office)
	if req.TableName == "" {
		respond.Error(w, http.StatusBadRequest, "table_name is required")
		return
	}
	desc := h.sanitize.Sanitize(strings.TrimSpace(req.Description))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	batchID, err := h.Store.AppendBatch(ctx, req.TableName, req.Office, req.Rows, desc, userID)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	h.Audit.Record(ctx, userID, audit.EventDataUploaded,
		"bulk upload into "+req.TableName,
		map[string]string{
			"table":     req.TableName,
			"office":    req.Office,
			"batch_id":  batchID,
			"row_count": strconv.Itoa(len(req.Rows)),
		})

	respond.JSON(w, http.StatusCreated, uploadResponse{BatchID: batchID, RowCount: len(req.Rows)})
}
