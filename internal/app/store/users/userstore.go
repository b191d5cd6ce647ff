// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/reporthub/internal/app/system/identity"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no user matches the given id or email.
var ErrNotFound = errors.New("user not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID returns a single user by their _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail returns a single user by email (lowercased).
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts a new user. If ID is zero a new ObjectID is assigned.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	u.Email = strings.ToLower(u.Email)
	_, err := s.c.InsertOne(ctx, u)
	return u, err
}

// Find returns users matching an arbitrary filter.
func (s *Store) Find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureClaims populates role/office/campus from the user's email the first
// time they are unset. This is a one-time migration step: the parse happens
// here and nowhere else, and all later authorization reads only the stored
// fields. Users whose claims are already set are returned unchanged.
func (s *Store) EnsureClaims(ctx context.Context, u models.User) (models.User, error) {
	needsRole := u.Role == ""
	needsOffice := u.Office == "" && u.Role != models.RoleSuperAdmin
	if !needsRole && !needsOffice {
		return u, nil
	}

	claims, err := identity.Parse(u.Email)
	if err != nil {
		return u, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if needsRole {
		u.Role = claims.Role
		set["role"] = claims.Role
	}
	if u.Role != models.RoleSuperAdmin && u.Office == "" {
		u.Office = claims.Office
		u.Campus = claims.Campus
		set["office"] = claims.Office
		set["campus"] = claims.Campus
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": set})
	return u, err
}
