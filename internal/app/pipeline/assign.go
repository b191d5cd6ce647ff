// internal/app/pipeline/assign.go
package pipeline

import (
	"context"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	assignmentstore "github.com/dalemusser/reporthub/internal/app/store/assignments"
	"github.com/dalemusser/reporthub/internal/app/store/audit"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Assign binds a catalog report table to an office. The returned column list
// is the catalog shape the office is now expected to submit.
//
// tableName must be a catalog key (catalog.ErrUnknownTable otherwise). A
// second active assignment for the same pair fails with
// assignmentstore.ErrDuplicateAssignment; the insert itself is the atomic
// guard, backed by the unique partial index.
func (p *Pipeline) Assign(ctx context.Context, id Identity, tableName, office, description string) (models.Assignment, []string, error) {
	var a models.Assignment

	columns, err := catalog.Lookup(tableName)
	if err != nil {
		return a, nil, err
	}

	a, err = p.assignments.Create(ctx, models.Assignment{
		TableName:      tableName,
		Office:         office,
		Description:    description,
		AssignedByID:   id.UserID,
		AssignedByName: id.Name,
	})
	if err != nil {
		if err != assignmentstore.ErrDuplicateAssignment {
			p.log.Error("assignment insert failed",
				zap.String("table", tableName),
				zap.String("office", office),
				zap.Error(err))
		}
		return a, nil, err
	}

	p.audit.Record(ctx, id.UserID, audit.EventTableAssigned,
		tableName+" assigned to "+office,
		map[string]string{
			"assignment_id": a.ID.Hex(),
			"table":         tableName,
			"office":        office,
		})

	return a, columns, nil
}

// Revoke transitions an assignment to revoked. The office keeps its
// submission history; only the binding ends.
func (p *Pipeline) Revoke(ctx context.Context, id Identity, assignmentID primitive.ObjectID) error {
	a, err := p.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	if err := p.assignments.Revoke(ctx, assignmentID); err != nil {
		return err
	}

	p.audit.Record(ctx, id.UserID, audit.EventAssignmentRevoked,
		a.TableName+" unassigned from "+a.Office,
		map[string]string{
			"assignment_id": assignmentID.Hex(),
			"table":         a.TableName,
			"office":        a.Office,
		})
	return nil
}
