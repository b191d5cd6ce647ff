// internal/app/store/dynamictables/dynamictablestore.go

// Package dynamictablestore implements the bulk-upload storage strategy: the
// shape of the first uploaded batch fixes a table's column set, the backing
// collection is created on demand, and every batch is appended atomically.
package dynamictablestore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	"github.com/dalemusser/reporthub/internal/app/system/txn"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEmptyBatch is returned when AppendBatch is called with no rows.
var ErrEmptyBatch = errors.New("upload batch is empty")

// ErrNotFound is returned when no dynamic table exists under the given name.
var ErrNotFound = errors.New("dynamic table not found")

// ErrUnknownColumn is returned when a row carries a key outside the table's
// established column set. The whole batch is rejected: an ignored column
// would be invisible data loss, and uploads are admin-driven so the caller
// can fix the file and retry.
var ErrUnknownColumn = errors.New("row key is not a column of this table")

// ErrBadColumnName is returned when a row key fails the safe identifier
// class. Keys become field names in schema and row documents, so they are
// restricted before they are ever interpolated anywhere.
var ErrBadColumnName = errors.New("row key is not a valid column name")

// Column names must start with a letter and stay within a printable
// identifier class. Mongo additionally forbids '$' and '.' in field names.
var columnNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]*$`)

const (
	schemaCollection = "dynamic_table_schemas"
	rowsPrefix       = "upload_"
)

type Store struct {
	db     *mongo.Database
	client *mongo.Client
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, client: db.Client()}
}

// rowsCollection maps a catalog table name to its backing collection name.
// Only catalog members ever reach this, so the name is safe by construction;
// spaces and dashes are folded to keep collection names plain.
func rowsCollection(tableName string) string {
	n := strings.ToLower(tableName)
	n = strings.ReplaceAll(n, " - ", "_")
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "-", "_")
	return rowsPrefix + n
}

// inferColumns extracts and validates the column set from the rows of the
// shaping batch: the union of every key seen across the batch. The result is
// sorted so the stored schema is deterministic regardless of map iteration
// order.
func inferColumns(sample []models.Row) ([]string, error) {
	seen := make(map[string]bool)
	for _, row := range sample {
		for key := range row {
			if !columnNameRe.MatchString(key) {
				return nil, fmt.Errorf("%w: %q", ErrBadColumnName, key)
			}
			seen[key] = true
		}
	}
	if len(seen) == 0 {
		return nil, ErrEmptyBatch
	}
	cols := make([]string, 0, len(seen))
	for key := range seen {
		cols = append(cols, key)
	}
	sort.Strings(cols)
	return cols, nil
}

// EnsureTable creates the schema registry entry for tableName if absent,
// inferring columns from the union of keys across sampleRows. Idempotent:
// when the table already exists, the call is a no-op on schema: a different
// sample shape never adds or removes columns. Only the first upload shapes
// the schema.
func (s *Store) EnsureTable(ctx context.Context, tableName string, sampleRows []models.Row, createdBy primitive.ObjectID) error {
	if !catalog.IsKnown(tableName) {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownTable, tableName)
	}
	cols, err := inferColumns(sampleRows)
	if err != nil {
		return err
	}

	doc := models.DynamicTableSchema{
		ID:          primitive.NewObjectID(),
		TableName:   tableName,
		Columns:     cols,
		CreatedByID: createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	// $setOnInsert under upsert: the first writer creates the schema, every
	// later call leaves it untouched. The unique index on table_name backs
	// this up against races.
	_, err = s.db.Collection(schemaCollection).UpdateOne(ctx,
		bson.M{"table_name": tableName},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

// Schema returns the registered column set for a dynamic table.
func (s *Store) Schema(ctx context.Context, tableName string) (models.DynamicTableSchema, error) {
	var schema models.DynamicTableSchema
	err := s.db.Collection(schemaCollection).FindOne(ctx, bson.M{"table_name": tableName}).Decode(&schema)
	if err == mongo.ErrNoDocuments {
		return schema, ErrNotFound
	}
	return schema, err
}

// AppendBatch ensures the table exists (shaped by the whole batch), then inserts
// every row decorated with the fixed audit columns in one transaction. Any
// row failure aborts and rolls back the entire batch; partial writes are
// forbidden. Rows carrying keys outside the established column set fail with
// ErrUnknownColumn before anything is written.
//
// Returns the batch id attached to every inserted row.
func (s *Store) AppendBatch(ctx context.Context, tableName, office string, rows []models.Row, description string, uploadedBy primitive.ObjectID) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyBatch
	}

	batchID := uuid.NewString()
	now := time.Now().UTC()

	err := txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		if err := s.EnsureTable(ctx, tableName, rows, uploadedBy); err != nil {
			return err
		}
		schema, err := s.Schema(ctx, tableName)
		if err != nil {
			return err
		}
		allowed := make(map[string]bool, len(schema.Columns))
		for _, col := range schema.Columns {
			allowed[col] = true
		}

		docs := make([]interface{}, 0, len(rows))
		for i, row := range rows {
			for key := range row {
				if !columnNameRe.MatchString(key) {
					return fmt.Errorf("row %d: %w: %q", i, ErrBadColumnName, key)
				}
				if !allowed[key] {
					return fmt.Errorf("row %d: %w: %q", i, ErrUnknownColumn, key)
				}
			}
			docs = append(docs, models.UploadRow{
				ID:             primitive.NewObjectID(),
				BatchID:        batchID,
				Values:         row,
				AssignedOffice: office,
				UploadedByID:   uploadedBy,
				UploadDate:     now,
				Description:    description,
			})
		}

		_, err = s.db.Collection(rowsCollection(tableName)).InsertMany(ctx, docs)
		return err
	})
	if err != nil {
		return "", err
	}
	return batchID, nil
}

// Rows returns all rows of a dynamic table, in upload order.
func (s *Store) Rows(ctx context.Context, tableName string) ([]models.UploadRow, error) {
	if _, err := s.Schema(ctx, tableName); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.db.Collection(rowsCollection(tableName)).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.UploadRow
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RowsByBatch returns the rows inserted by one upload batch.
func (s *Store) RowsByBatch(ctx context.Context, tableName, batchID string) ([]models.UploadRow, error) {
	if _, err := s.Schema(ctx, tableName); err != nil {
		return nil, err
	}
	cur, err := s.db.Collection(rowsCollection(tableName)).Find(ctx, bson.M{"batch_id": batchID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.UploadRow
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
