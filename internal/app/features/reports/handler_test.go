package reports_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/reporthub/internal/app/features/reports"
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
	return reports.Routes(reports.NewHandler(db, logger), sm)
}

func TestServeTasks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx)
	user := fixtures.CreateOfficeUser(ctx, "registrar")
	fixtures.CreateAssignment(ctx, "Enrollment", "registrar", admin)

	caller := testutil.TestUser{
		ID:     user.ID.Hex(),
		Name:   user.FullName,
		Email:  user.Email,
		Role:   user.Role,
		Office: user.Office,
	}
	req := testutil.NewAuthenticatedRequest("GET", "/tasks", nil, caller)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Tasks []struct {
			Completed bool     `json:"completed"`
			Columns   []string `json:"columns"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Tasks) != 1 {
		t.Fatalf("tasks: got %d, want 1", len(resp.Tasks))
	}
	if resp.Tasks[0].Completed {
		t.Error("task should be pending before any submission")
	}
}

func TestServeRows_PaginationAndScoping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	user := fixtures.CreateOfficeUser(ctx, "registrar")

	rows := make([]models.Row, 120)
	for i := range rows {
		rows[i] = models.Row{"Campus": "Lipa", "Total": fmt.Sprintf("%d", i)}
	}
	fixtures.CreateSubmission(ctx, "Enrollment", "registrar", models.SubmissionApproved, user, rows)

	req := testutil.NewAuthenticatedRequest("GET",
		"/rows?table=Enrollment&office=registrar&page=3&page_size=50", nil,
		testutil.OfficeUser("registrar"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var page struct {
		Rows       []models.Row `json:"rows"`
		TotalCount int          `json:"total_count"`
		PageCount  int          `json:"page_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(page.Rows) != 20 || page.TotalCount != 120 || page.PageCount != 3 {
		t.Errorf("page 3: rows=%d total=%d pages=%d, want 20/120/3",
			len(page.Rows), page.TotalCount, page.PageCount)
	}

	// Another office's user cannot read this office's data.
	req = testutil.NewAuthenticatedRequest("GET",
		"/rows?table=Enrollment&office=registrar", nil, testutil.OfficeUser("accounting"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-office status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Admins may read any office.
	req = testutil.NewAuthenticatedRequest("GET",
		"/rows?table=Enrollment&office=registrar", nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServeRows_NoApprovedData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	req := testutil.NewAuthenticatedRequest("GET",
		"/rows?table=Enrollment&office=registrar", nil, testutil.OfficeUser("registrar"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	user := fixtures.CreateOfficeUser(ctx, "registrar")
	fixtures.CreateSubmission(ctx, "Enrollment", "registrar", models.SubmissionApproved, user,
		[]models.Row{{"Campus": "Lipa"}})

	// An office user gets their own office without naming it.
	req := testutil.NewAuthenticatedRequest("GET", "/", nil, testutil.OfficeUser("registrar"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Reports []struct {
			Submission struct {
				TableName string `json:"table_name"`
			} `json:"submission"`
		} `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Reports) != 1 {
		t.Errorf("reports: got %d, want 1", len(resp.Reports))
	}

	// Admins must name the office they want.
	req = testutil.NewAuthenticatedRequest("GET", "/", nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("admin without office: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
