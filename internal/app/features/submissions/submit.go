// internal/app/features/submissions/submit.go
package submissions

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/system/authz"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
	"github.com/dalemusser/reporthub/internal/domain/models"
)

type submitRequest struct {
	TableName string       `json:"table_name"`
	Office    string       `json:"office"`
	Rows      []models.Row `json:"rows"`
}

// HandleSubmit handles POST /submissions: one batch of rows for a table the
// caller's office has been assigned. The batch lands as a single pending
// submission awaiting an admin decision.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.CallerIdentity(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	req.TableName = strings.TrimSpace(req.TableName)
	req.Office = strings.TrimSpace(req.Office)
	if req.TableName == "" || req.Office == "" {
		respond.Error(w, http.StatusBadRequest, "table_name and office are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	sub, err := h.Pipeline.Submit(ctx, id, req.TableName, req.Office, req.Rows)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusCreated, sub)
}
