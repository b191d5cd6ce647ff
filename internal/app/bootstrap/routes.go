// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignmentsfeature "github.com/dalemusser/reporthub/internal/app/features/assignments"
	healthfeature "github.com/dalemusser/reporthub/internal/app/features/health"
	reportsfeature "github.com/dalemusser/reporthub/internal/app/features/reports"
	submissionsfeature "github.com/dalemusser/reporthub/internal/app/features/submissions"
	uploadsfeature "github.com/dalemusser/reporthub/internal/app/features/uploads"
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	auditstore "github.com/dalemusser/reporthub/internal/app/store/audit"
	"github.com/dalemusser/reporthub/internal/app/system/auditlog"
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ReportHub applies session middleware and
// mounts feature routers for the assignment, submission, upload, and report
// surfaces.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.ReportHubMongoDatabase
	audit := auditlog.New(auditstore.New(db), logger)
	pl := pipeline.New(db, audit, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ReportHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Admin surface: table assignments and bulk uploads
	assignHandler := assignmentsfeature.NewHandler(db, pl, logger)
	r.Mount("/assignments", assignmentsfeature.Routes(assignHandler, sessionMgr))

	uploadsHandler := uploadsfeature.NewHandler(db, audit, logger)
	r.Mount("/uploads", uploadsfeature.Routes(uploadsHandler, sessionMgr))

	// Submission workflow
	submissionsHandler := submissionsfeature.NewHandler(db, pl, logger)
	r.Mount("/submissions", submissionsfeature.Routes(submissionsHandler, sessionMgr))

	// Read surface: tasks, approved reports, paginated rows
	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	return r, nil
}
