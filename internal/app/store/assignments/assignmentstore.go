// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/reporthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateAssignment is returned when an active assignment already exists
// for the (table_name, office) pair. The unique partial index on the
// assignments collection makes the insert itself fail atomically, so two
// concurrent Create calls cannot both succeed.
var ErrDuplicateAssignment = errors.New("table is already assigned to this office")

// ErrNotFound is returned when no assignment matches the given id.
var ErrNotFound = errors.New("assignment not found")

// ErrAlreadyRevoked is returned when revoking an assignment that is no longer
// active.
var ErrAlreadyRevoked = errors.New("assignment is already revoked")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// Create inserts a new active assignment.
//
// The caller is responsible for validating the table name against the
// catalog. If ID is zero, a new ObjectID is assigned; if CreatedAt is zero,
// it is set to now (UTC). A duplicate active pair yields
// ErrDuplicateAssignment.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = models.AssignmentActive
	}

	_, err := s.c.InsertOne(ctx, a)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return a, ErrDuplicateAssignment
		}
		return a, err
	}
	return a, nil
}

// GetByID returns a single assignment by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return a, ErrNotFound
	}
	return a, err
}

// IsAssigned reports whether an active assignment exists for the pair.
func (s *Store) IsAssigned(ctx context.Context, tableName, office string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"table_name": tableName,
		"office":     office,
		"status":     models.AssignmentActive,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetActive returns the active assignment for the pair, or ErrNotFound.
func (s *Store) GetActive(ctx context.Context, tableName, office string) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{
		"table_name": tableName,
		"office":     office,
		"status":     models.AssignmentActive,
	}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return a, ErrNotFound
	}
	return a, err
}

// Revoke transitions an active assignment to revoked. Revoking an assignment
// that is already revoked yields ErrAlreadyRevoked; a missing id yields
// ErrNotFound. The transition is a single guarded update, so concurrent
// revokes cannot both succeed.
func (s *Store) Revoke(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AssignmentActive},
		bson.M{"$set": bson.M{"status": models.AssignmentRevoked, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish "gone" from "already revoked".
		n, cerr := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if cerr != nil {
			return cerr
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrAlreadyRevoked
	}
	return nil
}

// ListActiveByOffice returns all active assignments for an office, newest
// first.
func (s *Store) ListActiveByOffice(ctx context.Context, office string) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"office": office, "status": models.AssignmentActive}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every assignment (active and revoked), newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
