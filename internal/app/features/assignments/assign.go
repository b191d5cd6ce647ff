// internal/app/features/assignments/assign.go
package assignments

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

type assignRequest struct {
	TableName   string `json:"table_name"`
	Office      string `json:"office"`
	Description string `json:"description"`
}

type assignResponse struct {
	Assignment models.Assignment `json:"assignment"`
	Columns    []string          `json:"columns"`
}

// HandleAssign handles POST /assignments. On success it returns the new
// assignment plus the catalog column shape the office is now expected to
// submit.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.CallerIdentity(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req assignRequest
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
	desc := h.sanitize.Sanitize(strings.TrimSpace(req.Description))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, columns, err := h.Pipeline.Assign(ctx, id, req.TableName, req.Office, desc)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusCreated, assignResponse{Assignment: a, Columns: columns})
}
