// internal/domain/models/dynamictable.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DynamicTableSchema records the column set of a dynamically created backing
// table. The columns are the union of keys seen across the first upload's
// rows and are fixed from then on: later uploads whose rows carry keys
// outside this set are rejected as a whole batch.
type DynamicTableSchema struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableName string             `bson:"table_name" json:"table_name"`
	Columns   []string           `bson:"columns" json:"columns"`

	CreatedByID primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// UploadRow is one row of bulk-uploaded data as stored in a dynamic table's
// backing collection. Values holds the inferred columns; the remaining fields
// are the fixed audit columns attached to every uploaded row.
type UploadRow struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BatchID string             `bson:"batch_id" json:"batch_id"`

	Values map[string]string `bson:"values" json:"values"`

	AssignedOffice string             `bson:"assigned_office" json:"assigned_office"`
	UploadedByID   primitive.ObjectID `bson:"uploaded_by_id" json:"uploaded_by_id"`
	UploadDate     time.Time          `bson:"upload_date" json:"upload_date"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
}
