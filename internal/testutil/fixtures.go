package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with explicit claims. Office users get the
// office and campus; admins and the superadmin pass "".
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role, office, campus string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		Role:      role,
		Status:    "active",
		Office:    office,
		Campus:    campus,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateOfficeUser creates an active office user for the given office.
func (f *Fixtures) CreateOfficeUser(ctx context.Context, office string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Office User", "registrar.lp@reporthub.edu.ph", models.RoleUser, office, "Lipa")
}

// CreateAdmin creates an active admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Admin User", "records.admin.mn@reporthub.edu.ph", models.RoleAdmin, "", "")
}

// CreateAssignment creates an active assignment binding a table to an office.
func (f *Fixtures) CreateAssignment(ctx context.Context, tableName, office string, assignedBy models.User) models.Assignment {
	f.t.Helper()

	a := models.Assignment{
		ID:             primitive.NewObjectID(),
		TableName:      tableName,
		Office:         office,
		Status:         models.AssignmentActive,
		AssignedByID:   assignedBy.ID,
		AssignedByName: assignedBy.FullName,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := f.db.Collection("assignments").InsertOne(ctx, a)
	if err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}

	return a
}

// CreateSubmission creates a submission in the given status with the given
// rows encoded as its payload.
func (f *Fixtures) CreateSubmission(ctx context.Context, tableName, office, status string, submittedBy models.User, rows []models.Row) models.Submission {
	f.t.Helper()

	payload, err := models.EncodeRows(rows)
	if err != nil {
		f.t.Fatalf("failed to encode rows: %v", err)
	}

	sub := models.Submission{
		ID:              primitive.NewObjectID(),
		TableName:       tableName,
		Office:          office,
		SubmittedByID:   submittedBy.ID,
		SubmittedByName: submittedBy.FullName,
		Payload:         payload,
		RecordCount:     len(rows),
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}

	_, err = f.db.Collection("submissions").InsertOne(ctx, sub)
	if err != nil {
		f.t.Fatalf("failed to create test submission: %v", err)
	}

	return sub
}
