// internal/app/store/submissions/submissionstore.go
package submissionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no submission matches the given id or pair.
var ErrNotFound = errors.New("submission not found")

// ErrInvalidState is returned when approving or rejecting a submission that
// is no longer pending. Approved and rejected are both terminal.
var ErrInvalidState = errors.New("submission is not pending")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("submissions")}
}

// Create inserts a new pending submission. The single insert is the whole
// transaction: either the full batch is recorded or none of it is. If ID is
// zero a new ObjectID is assigned; if CreatedAt is zero it is set to now
// (UTC).
func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	if sub.Status == "" {
		sub.Status = models.SubmissionPending
	}
	_, err := s.c.InsertOne(ctx, sub)
	return sub, err
}

// GetByID returns a single submission by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Submission, error) {
	var sub models.Submission
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return sub, ErrNotFound
	}
	return sub, err
}

// Transition moves a pending submission to the given terminal status. The
// update is guarded on status == pending, so re-invoking on a terminal
// submission fails with ErrInvalidState and the stored state is untouched.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, to string) error {
	if to != models.SubmissionApproved && to != models.SubmissionRejected {
		return ErrInvalidState
	}
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.SubmissionPending},
		bson.M{"$set": bson.M{"status": to, "decided_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, cerr := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if cerr != nil {
			return cerr
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrInvalidState
	}
	return nil
}

// LatestApproved returns the single most recent approved submission for the
// pair. Older approved batches are retained but not surfaced here; callers
// that need the full history use ListApproved.
func (s *Store) LatestApproved(ctx context.Context, tableName, office string) (models.Submission, error) {
	var sub models.Submission
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := s.c.FindOne(ctx, bson.M{
		"table_name": tableName,
		"office":     office,
		"status":     models.SubmissionApproved,
	}, opts).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return sub, ErrNotFound
	}
	return sub, err
}

// ListApproved returns all approved submissions for an office, newest first.
func (s *Store) ListApproved(ctx context.Context, office string) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"office": office, "status": models.SubmissionApproved}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Submission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPending returns every pending submission, oldest first, for the admin
// review queue.
func (s *Store) ListPending(ctx context.Context) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": models.SubmissionPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Submission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HasSubmissionBy reports whether the user has any submission (regardless of
// approval state) for the pair. Used to mark assigned tasks completed.
func (s *Store) HasSubmissionBy(ctx context.Context, userID primitive.ObjectID, tableName, office string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"submitted_by_id": userID,
		"table_name":      tableName,
		"office":          office,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
