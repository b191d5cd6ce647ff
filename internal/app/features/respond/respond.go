// internal/app/features/respond/respond.go

// Package respond writes JSON responses and maps workflow errors onto HTTP
// status codes. Storage errors are surfaced as an opaque internal error so
// store specifics never leak to callers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	assignmentstore "github.com/dalemusser/reporthub/internal/app/store/assignments"
	dynamictablestore "github.com/dalemusser/reporthub/internal/app/store/dynamictables"
	"github.com/dalemusser/reporthub/internal/app/store/queries/reportqueries"
	submissionstore "github.com/dalemusser/reporthub/internal/app/store/submissions"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// WorkflowError maps a workflow error to its HTTP status and writes it.
// Unrecognized errors are treated as storage failures: logged with full
// detail, reported as an opaque internal error.
func WorkflowError(w http.ResponseWriter, log *zap.Logger, err error) {
	var verr *pipeline.ValidationError

	switch {
	case errors.As(err, &verr),
		errors.Is(err, catalog.ErrUnknownTable),
		errors.Is(err, dynamictablestore.ErrEmptyBatch),
		errors.Is(err, dynamictablestore.ErrBadColumnName),
		errors.Is(err, dynamictablestore.ErrUnknownColumn):
		Error(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, pipeline.ErrAccessDenied):
		Error(w, http.StatusForbidden, err.Error())

	case errors.Is(err, pipeline.ErrNotAssigned):
		Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, assignmentstore.ErrDuplicateAssignment),
		errors.Is(err, assignmentstore.ErrAlreadyRevoked),
		errors.Is(err, submissionstore.ErrInvalidState):
		Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, assignmentstore.ErrNotFound),
		errors.Is(err, submissionstore.ErrNotFound),
		errors.Is(err, dynamictablestore.ErrNotFound),
		errors.Is(err, reportqueries.ErrNoApprovedData):
		Error(w, http.StatusNotFound, err.Error())

	default:
		log.Error("internal error", zap.Error(err))
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
