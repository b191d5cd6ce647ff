// internal/domain/models/submission.go
package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Row is one submitted record: string keys, string values. Rows are not
// normalized against the catalog shape; they may omit expected columns or
// carry extras.
type Row = map[string]string

// Submission is one batch of rows submitted by an office user for an assigned
// report table. The whole batch is the unit of approval: Payload holds every
// row as a single opaque serialized blob, and RecordCount always equals the
// number of rows inside it.
//
// State machine: pending → approved or pending → rejected, both terminal.
type Submission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableName string             `bson:"table_name" json:"table_name"`
	Office    string             `bson:"office" json:"office"`

	SubmittedByID   primitive.ObjectID `bson:"submitted_by_id" json:"submitted_by_id"`
	SubmittedByName string             `bson:"submitted_by_name,omitempty" json:"submitted_by_name,omitempty"`

	// Payload is the JSON-encoded row slice. Callers go through Rows and
	// EncodeRows so a structured backend could replace the blob later
	// without touching the pipeline contract.
	Payload     primitive.Binary `bson:"payload" json:"-"`
	RecordCount int              `bson:"record_count" json:"record_count"`

	Status    string     `bson:"status" json:"status"` // pending | approved | rejected
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
}

// EncodeRows serializes rows into the opaque payload form.
func EncodeRows(rows []Row) (primitive.Binary, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return primitive.Binary{}, err
	}
	return primitive.Binary{Subtype: 0x00, Data: data}, nil
}

// Rows deserializes the payload back into the row slice that was submitted.
// The result round-trips EncodeRows exactly.
func (s *Submission) Rows() ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(s.Payload.Data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// IsTerminal returns true once the submission has been approved or rejected.
func (s *Submission) IsTerminal() bool {
	return s.Status == SubmissionApproved || s.Status == SubmissionRejected
}
