// internal/app/pipeline/submit.go
package pipeline

import (
	"context"
	"strconv"

	"github.com/dalemusser/reporthub/internal/app/store/audit"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.uber.org/zap"
)

// Submit validates and persists one batch of rows as a pending submission.
//
// Preconditions: the caller's office must equal office (ErrAccessDenied),
// and an active assignment must exist for (tableName, office)
// (ErrNotAssigned). On success exactly one pending submission exists whose
// payload round-trips rows verbatim and whose record count equals len(rows).
// The persist is a single insert, so the batch is recorded fully or not at
// all.
func (p *Pipeline) Submit(ctx context.Context, id Identity, tableName, office string, rows []models.Row) (models.Submission, error) {
	var sub models.Submission

	if id.Office == "" || id.Office != office {
		return sub, ErrAccessDenied
	}

	if err := Validate(tableName, rows); err != nil {
		return sub, err
	}

	assigned, err := p.assignments.IsAssigned(ctx, tableName, office)
	if err != nil {
		p.log.Error("assignment lookup failed", zap.Error(err))
		return sub, err
	}
	if !assigned {
		return sub, ErrNotAssigned
	}

	payload, err := models.EncodeRows(rows)
	if err != nil {
		return sub, err
	}

	sub, err = p.submissions.Create(ctx, models.Submission{
		TableName:       tableName,
		Office:          office,
		SubmittedByID:   id.UserID,
		SubmittedByName: id.Name,
		Payload:         payload,
		RecordCount:     len(rows),
	})
	if err != nil {
		p.log.Error("submission insert failed",
			zap.String("table", tableName),
			zap.String("office", office),
			zap.Error(err))
		return sub, err
	}

	p.audit.Record(ctx, id.UserID, audit.EventBatchSubmitted,
		"batch submitted for "+tableName,
		map[string]string{
			"submission_id": sub.ID.Hex(),
			"table":         tableName,
			"office":        office,
			"record_count":  strconv.Itoa(sub.RecordCount),
		})

	return sub, nil
}
