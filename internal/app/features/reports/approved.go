// internal/app/features/reports/approved.go
package reports

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"github.com/dalemusser/reporthub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/reporthub/internal/app/system/authz"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
)

type approvedResponse struct {
	Reports []reportqueries.ReportSummary `json:"reports"`
}

// resolveOffice decides which office the caller may read. Office users are
// pinned to their own office claim; admins may name any office with ?office=.
func resolveOffice(r *http.Request) (string, error) {
	requested := strings.TrimSpace(r.URL.Query().Get("office"))

	if authz.IsAdmin(r) {
		return requested, nil
	}

	own := authz.UserOffice(r)
	if own == "" || (requested != "" && requested != own) {
		return "", pipeline.ErrAccessDenied
	}
	return own, nil
}

// ServeApproved handles GET /reports: approved submissions for an office,
// newest first.
func (h *Handler) ServeApproved(w http.ResponseWriter, r *http.Request) {
	office, err := resolveOffice(r)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}
	if office == "" {
		respond.Error(w, http.StatusBadRequest, "office is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reports, err := reportqueries.ListApprovedReports(ctx, h.DB, office)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, approvedResponse{Reports: reports})
}
