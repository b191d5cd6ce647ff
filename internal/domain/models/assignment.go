// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment statuses.
const (
	AssignmentActive  = "active"
	AssignmentRevoked = "revoked"
)

// Assignment binds a catalog report table to an office: once assigned, users
// belonging to that office are expected to submit batches for the table.
//
// At most one active assignment exists for a given (table_name, office) pair
// at any time; the invariant is enforced by a unique partial index created at
// startup (see internal/app/system/indexes). Assignments are never physically
// deleted; revocation is a status transition so the history stays intact.
type Assignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableName string             `bson:"table_name" json:"table_name"`
	Office    string             `bson:"office" json:"office"`

	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Status      string `bson:"status" json:"status"` // "active" or "revoked"

	AssignedByID   primitive.ObjectID `bson:"assigned_by_id" json:"assigned_by_id"`
	AssignedByName string             `bson:"assigned_by_name,omitempty" json:"assigned_by_name,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsActive returns true if the assignment currently binds its pair.
func (a *Assignment) IsActive() bool {
	return a.Status == AssignmentActive
}
