package submissions_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/reporthub/internal/app/features/submissions"
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"github.com/dalemusser/reporthub/internal/app/system/auditlog"
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/dalemusser/reporthub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, db *mongo.Database) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	pl := pipeline.New(db, auditlog.NewNopLogger(), logger)
	return submissions.Routes(submissions.NewHandler(db, pl, logger), sm)
}

const batchBody = `{
	"table_name": "Enrollment",
	"office": "registrar",
	"rows": [
		{"Campus": "Lipa", "Program": "BSCS", "Total": "92"},
		{"Campus": "Lobo", "Program": "BSIT", "Total": "83"}
	]
}`

func TestHandleSubmit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx)
	fixtures.CreateAssignment(ctx, "Enrollment", "registrar", admin)

	req := testutil.NewAuthenticatedRequest("POST", "/", strings.NewReader(batchBody), testutil.OfficeUser("registrar"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var sub struct {
		Status      string `json:"status"`
		RecordCount int    `json:"record_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if sub.Status != models.SubmissionPending {
		t.Errorf("status: got %q, want %q", sub.Status, models.SubmissionPending)
	}
	if sub.RecordCount != 2 {
		t.Errorf("record count: got %d, want 2", sub.RecordCount)
	}
}

func TestHandleSubmit_OfficeMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	req := testutil.NewAuthenticatedRequest("POST", "/", strings.NewReader(batchBody), testutil.OfficeUser("accounting"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleSubmit_NotAssigned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	req := testutil.NewAuthenticatedRequest("POST", "/", strings.NewReader(batchBody), testutil.OfficeUser("registrar"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestDecisionFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	user := fixtures.CreateOfficeUser(ctx, "registrar")
	sub := fixtures.CreateSubmission(ctx, "Enrollment", "registrar", models.SubmissionPending, user,
		[]models.Row{{"Campus": "Lipa", "Total": "92"}})

	// The pending queue shows the batch.
	req := testutil.NewAuthenticatedRequest("GET", "/pending", nil, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var queue struct {
		Submissions []struct {
			ID string `json:"id"`
		} `json:"submissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &queue); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(queue.Submissions) != 1 || queue.Submissions[0].ID != sub.ID.Hex() {
		t.Fatalf("pending queue: got %+v", queue.Submissions)
	}

	// Approve, then a reject of the decided batch conflicts.
	req = testutil.NewAuthenticatedRequest("POST", "/"+sub.ID.Hex()+"/approve", nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	req = testutil.NewAuthenticatedRequest("POST", "/"+sub.ID.Hex()+"/reject", nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("reject after approve: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestDecisions_RequireAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	req := testutil.NewAuthenticatedRequest("GET", "/pending", nil, testutil.OfficeUser("registrar"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}
