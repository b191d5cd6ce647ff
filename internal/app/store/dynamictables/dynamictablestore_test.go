package dynamictablestore_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	dynamictablestore "github.com/dalemusser/reporthub/internal/app/store/dynamictables"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/dalemusser/reporthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAppendBatch_InfersUnionOfKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := dynamictablestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uploader := primitive.NewObjectID()
	rows := []models.Row{
		{"Campus": "Lipa", "Male": "10"},
		{"Campus": "Lobo", "Female": "5"},
	}

	batchID, err := store.AppendBatch(ctx, "Enrollment", "registrar", rows, "initial load", uploader)
	if err != nil {
		t.Fatalf("AppendBatch failed: %v", err)
	}
	if batchID == "" {
		t.Fatal("expected a batch id")
	}

	schema, err := store.Schema(ctx, "Enrollment")
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}
	want := []string{"Campus", "Female", "Male"}
	if !reflect.DeepEqual(schema.Columns, want) {
		t.Errorf("columns: got %v, want %v", schema.Columns, want)
	}

	stored, err := store.Rows(ctx, "Enrollment")
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(stored) != len(rows) {
		t.Fatalf("row count: got %d, want %d", len(stored), len(rows))
	}
	for i, row := range stored {
		if row.AssignedOffice != "registrar" {
			t.Errorf("row %d office: got %q", i, row.AssignedOffice)
		}
		if row.UploadedByID != uploader {
			t.Errorf("row %d uploader: got %v", i, row.UploadedByID)
		}
		if row.Description != "initial load" {
			t.Errorf("row %d description: got %q", i, row.Description)
		}
		if row.BatchID != batchID {
			t.Errorf("row %d batch id: got %q, want %q", i, row.BatchID, batchID)
		}
		if row.UploadDate.IsZero() {
			t.Errorf("row %d upload date not set", i)
		}
	}
}

func TestAppendBatch_RejectsUnknownColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := dynamictablestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uploader := primitive.NewObjectID()
	first := []models.Row{{"Campus": "Lipa", "Male": "10"}}
	if _, err := store.AppendBatch(ctx, "Graduates", "registrar", first, "", uploader); err != nil {
		t.Fatalf("first AppendBatch failed: %v", err)
	}

	// The column set is fixed by the first upload; new keys are rejected,
	// never silently dropped.
	second := []models.Row{
		{"Campus": "Lobo", "Male": "8"},
		{"Campus": "Main", "Extra": "1"},
	}
	_, err := store.AppendBatch(ctx, "Graduates", "registrar", second, "", uploader)
	if !errors.Is(err, dynamictablestore.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	// The failed batch must leave nothing behind.
	stored, err := store.Rows(ctx, "Graduates")
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("row count after rejected batch: got %d, want 1", len(stored))
	}
}

func TestAppendBatch_SecondBatchDoesNotReshapeSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := dynamictablestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uploader := primitive.NewObjectID()
	if _, err := store.AppendBatch(ctx, "Payroll", "accounting",
		[]models.Row{{"Campus": "Lipa", "Gross Amount": "100"}}, "", uploader); err != nil {
		t.Fatalf("first AppendBatch failed: %v", err)
	}

	// A narrower second batch is fine and must not shrink the schema.
	if _, err := store.AppendBatch(ctx, "Payroll", "accounting",
		[]models.Row{{"Campus": "Lobo"}}, "", uploader); err != nil {
		t.Fatalf("second AppendBatch failed: %v", err)
	}

	schema, err := store.Schema(ctx, "Payroll")
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}
	want := []string{"Campus", "Gross Amount"}
	if !reflect.DeepEqual(schema.Columns, want) {
		t.Errorf("columns: got %v, want %v", schema.Columns, want)
	}
}

func TestAppendBatch_Guards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := dynamictablestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uploader := primitive.NewObjectID()

	if _, err := store.AppendBatch(ctx, "Enrollment", "registrar", nil, "", uploader); !errors.Is(err, dynamictablestore.ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}

	// Only catalog members may become collection names.
	if _, err := store.AppendBatch(ctx, "users; drop", "registrar",
		[]models.Row{{"Campus": "Lipa"}}, "", uploader); !errors.Is(err, catalog.ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}

	// Row keys become document field names and must stay in the identifier class.
	if _, err := store.AppendBatch(ctx, "Enrollment", "registrar",
		[]models.Row{{"$where": "1"}}, "", uploader); !errors.Is(err, dynamictablestore.ErrBadColumnName) {
		t.Errorf("expected ErrBadColumnName, got %v", err)
	}
}

func TestRowsByBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := dynamictablestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uploader := primitive.NewObjectID()
	first, err := store.AppendBatch(ctx, "Scholarships", "scholarship office",
		[]models.Row{{"Campus": "Lipa", "Slots": "20"}}, "", uploader)
	if err != nil {
		t.Fatalf("first AppendBatch failed: %v", err)
	}
	second, err := store.AppendBatch(ctx, "Scholarships", "scholarship office",
		[]models.Row{{"Campus": "Lobo", "Slots": "15"}, {"Campus": "Main", "Slots": "30"}}, "", uploader)
	if err != nil {
		t.Fatalf("second AppendBatch failed: %v", err)
	}

	got, err := store.RowsByBatch(ctx, "Scholarships", second)
	if err != nil {
		t.Fatalf("RowsByBatch failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("second batch rows: got %d, want 2", len(got))
	}

	got, err = store.RowsByBatch(ctx, "Scholarships", first)
	if err != nil {
		t.Fatalf("RowsByBatch failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("first batch rows: got %d, want 1", len(got))
	}
}

func TestSchema_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := dynamictablestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Schema(ctx, "Enrollment"); !errors.Is(err, dynamictablestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Rows(ctx, "Enrollment"); !errors.Is(err, dynamictablestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
