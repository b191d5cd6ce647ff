// internal/app/pipeline/pipeline.go

// Package pipeline implements the submission workflow: validation of incoming
// row batches against the catalog shape, persistence as a pending batch, and
// the approval state machine. It is transport-free: HTTP handlers in
// internal/app/features call into it with an explicit caller identity.
package pipeline

import (
	"errors"
	"fmt"

	assignmentstore "github.com/dalemusser/reporthub/internal/app/store/assignments"
	submissionstore "github.com/dalemusser/reporthub/internal/app/store/submissions"
	"github.com/dalemusser/reporthub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrAccessDenied is returned when the caller's office does not match the
// office they are acting on.
var ErrAccessDenied = errors.New("caller's office does not match")

// ErrNotAssigned is returned when submitting against a pair with no active
// assignment.
var ErrNotAssigned = errors.New("table is not assigned to this office")

// ValidationError reports a malformed batch. Row is the index of the first
// offending row, or -1 when the batch as a whole is invalid.
type ValidationError struct {
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row < 0 {
		return "invalid batch: " + e.Reason
	}
	return fmt.Sprintf("invalid batch: row %d: %s", e.Row, e.Reason)
}

// Identity is the caller resolved by the authentication boundary. Office is
// the user's explicit office claim; it is empty for admins and the
// superadmin.
type Identity struct {
	UserID primitive.ObjectID
	Name   string
	Role   string
	Office string
}

// Pipeline owns the submission workflow. All state lives in the injected
// database handle; the pipeline itself is stateless and safe for concurrent
// use.
type Pipeline struct {
	assignments *assignmentstore.Store
	submissions *submissionstore.Store
	audit       *auditlog.Logger
	log         *zap.Logger
}

// New constructs a Pipeline bound to the given database, audit logger, and
// logger.
func New(db *mongo.Database, audit *auditlog.Logger, log *zap.Logger) *Pipeline {
	return &Pipeline{
		assignments: assignmentstore.New(db),
		submissions: submissionstore.New(db),
		audit:       audit,
		log:         log,
	}
}

// Assignments exposes the underlying assignment store for read paths that
// join against assignment metadata.
func (p *Pipeline) Assignments() *assignmentstore.Store {
	return p.assignments
}

// Submissions exposes the underlying submission store.
func (p *Pipeline) Submissions() *submissionstore.Store {
	return p.submissions
}
