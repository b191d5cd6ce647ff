// Package reportqueries provides the read paths over approved submissions,
// joined with assignment metadata. All pagination here is computed in memory
// after payload deserialization: payloads are batch-sized, not table-sized.
package reportqueries

import (
	"context"
	"errors"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	assignmentstore "github.com/dalemusser/reporthub/internal/app/store/assignments"
	submissionstore "github.com/dalemusser/reporthub/internal/app/store/submissions"
	userstore "github.com/dalemusser/reporthub/internal/app/store/users"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoApprovedData is returned when no approved submission exists for the
// requested pair.
var ErrNoApprovedData = errors.New("no approved data for this table and office")

// Task is one active assignment annotated with the caller's completion
// status.
type Task struct {
	Assignment models.Assignment `json:"assignment"`
	Columns    []string          `json:"columns,omitempty"`
	Completed  bool              `json:"completed"`
}

// ReportSummary is one approved submission enriched with the assigning
// admin's display name.
type ReportSummary struct {
	Submission   models.Submission `json:"submission"`
	AssignedBy   string            `json:"assigned_by,omitempty"`
	TableColumns []string          `json:"table_columns,omitempty"`
}

// RowPage is one page of deserialized approved rows.
type RowPage struct {
	Rows       []models.Row `json:"rows"`
	TotalCount int          `json:"total_count"`
	PageCount  int          `json:"page_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
}

// ListAssignedTasks resolves the user's office and returns every active
// assignment for it, annotated completed if the user has any submission for
// the pair. Approval state does not matter: a rejected batch still counts
// as an attempt and keeps the task out of the todo pile.
func ListAssignedTasks(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]Task, error) {
	user, err := userstore.New(db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasOffice() {
		return []Task{}, nil
	}

	assignments, err := assignmentstore.New(db).ListActiveByOffice(ctx, user.Office)
	if err != nil {
		return nil, err
	}

	subs := submissionstore.New(db)
	tasks := make([]Task, 0, len(assignments))
	for _, a := range assignments {
		done, err := subs.HasSubmissionBy(ctx, userID, a.TableName, a.Office)
		if err != nil {
			return nil, err
		}
		cols, _ := catalog.Lookup(a.TableName)
		tasks = append(tasks, Task{Assignment: a, Columns: cols, Completed: done})
	}
	return tasks, nil
}

// ListApprovedReports returns all approved submissions for an office, newest
// first, each enriched with the assigning admin's display name from the
// matching assignment record.
func ListApprovedReports(ctx context.Context, db *mongo.Database, office string) ([]ReportSummary, error) {
	approved, err := submissionstore.New(db).ListApproved(ctx, office)
	if err != nil {
		return nil, err
	}

	// Assignment metadata lookup: active binding first, falling back to
	// nothing if the assignment has since been revoked.
	assignStore := assignmentstore.New(db)
	names := make(map[string]string) // tableName -> assigned_by_name
	out := make([]ReportSummary, 0, len(approved))
	for _, sub := range approved {
		name, seen := names[sub.TableName]
		if !seen {
			a, err := assignStore.GetActive(ctx, sub.TableName, sub.Office)
			if err == nil {
				name = a.AssignedByName
			} else if err != assignmentstore.ErrNotFound {
				return nil, err
			}
			names[sub.TableName] = name
		}
		cols, _ := catalog.Lookup(sub.TableName)
		out = append(out, ReportSummary{Submission: sub, AssignedBy: name, TableColumns: cols})
	}
	return out, nil
}

// ReadApprovedRows loads the single most recent approved submission for the
// pair, deserializes its payload, and returns the requested page (1-based).
//
// Older approved batches are retained in storage but not surfaced here;
// ListApprovedReports still lists them all.
func ReadApprovedRows(ctx context.Context, db *mongo.Database, tableName, office string, page, pageSize int) (RowPage, error) {
	var result RowPage

	sub, err := submissionstore.New(db).LatestApproved(ctx, tableName, office)
	if err == submissionstore.ErrNotFound {
		return result, ErrNoApprovedData
	}
	if err != nil {
		return result, err
	}

	rows, err := sub.Rows()
	if err != nil {
		return result, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	total := len(rows)
	pageCount := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	result = RowPage{
		Rows:       rows[start:end],
		TotalCount: total,
		PageCount:  pageCount,
		Page:       page,
		PageSize:   pageSize,
	}
	return result, nil
}
