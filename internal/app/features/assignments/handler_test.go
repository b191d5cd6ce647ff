package assignments_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/reporthub/internal/app/features/assignments"
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"github.com/dalemusser/reporthub/internal/app/system/auditlog"
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/dalemusser/reporthub/internal/app/system/indexes"
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
	return assignments.Routes(assignments.NewHandler(db, pl, logger), sm)
}

func TestHandleAssign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	body := `{"table_name":"Enrollment","office":"registrar","description":"<b>monthly</b> stats"}`
	req := testutil.NewAuthenticatedRequest("POST", "/", strings.NewReader(body), testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Assignment struct {
			TableName   string `json:"table_name"`
			Office      string `json:"office"`
			Description string `json:"description"`
			Status      string `json:"status"`
		} `json:"assignment"`
		Columns []string `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Assignment.Status != "active" {
		t.Errorf("status: got %q, want active", resp.Assignment.Status)
	}
	// Markup is stripped from free text before storage.
	if resp.Assignment.Description != "monthly stats" {
		t.Errorf("description: got %q, want sanitized text", resp.Assignment.Description)
	}
	if len(resp.Columns) == 0 {
		t.Error("expected catalog columns in response")
	}

	// Same pair again conflicts.
	req = testutil.NewAuthenticatedRequest("POST", "/",
		strings.NewReader(`{"table_name":"Enrollment","office":"registrar"}`), testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleAssign_UnknownTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	req := testutil.NewAuthenticatedRequest("POST", "/",
		strings.NewReader(`{"table_name":"Cafeteria Menu","office":"registrar"}`), testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRoutes_RequireAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	// No user at all.
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Office users cannot manage assignments.
	req = testutil.NewAuthenticatedRequest("GET", "/", nil, testutil.OfficeUser("registrar"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("office user status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleRevoke(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	admin := fixtures.CreateAdmin(ctx)
	a := fixtures.CreateAssignment(ctx, "Payroll", "accounting", admin)

	req := testutil.NewAuthenticatedRequest("POST", "/"+a.ID.Hex()+"/revoke", nil, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	// Second revoke conflicts.
	req = testutil.NewAuthenticatedRequest("POST", "/"+a.ID.Hex()+"/revoke", nil, testutil.AdminUser())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second revoke status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestServeCatalog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newRouter(t, db)

	req := testutil.NewAuthenticatedRequest("GET", "/catalog", nil, testutil.AdminUser())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Tables []struct {
			TableName string   `json:"table_name"`
			Columns   []string `json:"columns"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Tables) != 17 {
		t.Errorf("catalog size: got %d, want 17", len(resp.Tables))
	}
}
