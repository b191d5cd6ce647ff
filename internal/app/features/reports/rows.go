// internal/app/features/reports/rows.go
package reports

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/features/respond"
	"github.com/dalemusser/reporthub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/reporthub/internal/app/system/timeouts"
)

// ServeRows handles GET /reports/rows?table=&office=&page=&page_size=: the
// deserialized rows of the most recent approved submission for the pair,
// paginated in memory. Office users may only read their own office.
func (h *Handler) ServeRows(w http.ResponseWriter, r *http.Request) {
	office, err := resolveOffice(r)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	q := r.URL.Query()
	table := strings.TrimSpace(q.Get("table"))
	if table == "" || office == "" {
		respond.Error(w, http.StatusBadRequest, "table and office are required")
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	result, err := reportqueries.ReadApprovedRows(ctx, h.DB, table, office, page, pageSize)
	if err != nil {
		respond.WorkflowError(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
