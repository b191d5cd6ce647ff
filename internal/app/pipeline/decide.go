// internal/app/pipeline/decide.go
package pipeline

import (
	"context"
	"errors"

	"github.com/dalemusser/reporthub/internal/app/store/audit"
	submissionstore "github.com/dalemusser/reporthub/internal/app/store/submissions"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Approve transitions a pending submission to approved, making it visible to
// the report reader. Approved and rejected are terminal: re-invoking on a
// decided submission fails with submissionstore.ErrInvalidState and the
// stored state is untouched.
func (p *Pipeline) Approve(ctx context.Context, id Identity, submissionID primitive.ObjectID) error {
	return p.decide(ctx, id, submissionID, models.SubmissionApproved, audit.EventSubmissionApproved)
}

// Reject transitions a pending submission to rejected (terminal).
func (p *Pipeline) Reject(ctx context.Context, id Identity, submissionID primitive.ObjectID) error {
	return p.decide(ctx, id, submissionID, models.SubmissionRejected, audit.EventSubmissionRejected)
}

func (p *Pipeline) decide(ctx context.Context, id Identity, submissionID primitive.ObjectID, to, event string) error {
	sub, err := p.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	if err := p.submissions.Transition(ctx, submissionID, to); err != nil {
		if !errors.Is(err, submissionstore.ErrInvalidState) && !errors.Is(err, submissionstore.ErrNotFound) {
			p.log.Error("submission transition failed",
				zap.String("submission_id", submissionID.Hex()),
				zap.String("to", to),
				zap.Error(err))
		}
		return err
	}

	p.audit.Record(ctx, id.UserID, event,
		"submission "+to+" for "+sub.TableName,
		map[string]string{
			"submission_id": submissionID.Hex(),
			"table":         sub.TableName,
			"office":        sub.Office,
		})
	return nil
}
