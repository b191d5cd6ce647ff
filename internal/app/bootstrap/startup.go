// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	userstore "github.com/dalemusser/reporthub/internal/app/store/users"
	"github.com/dalemusser/reporthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ReportHub does two things here: it makes sure the reserved superadmin
// account exists, and it backfills role/office/campus claims for any user
// records that predate explicit claim storage. The email parse runs only in
// this migration; request-time authorization never touches the address.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	users := userstore.New(deps.ReportHubMongoDatabase)

	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, users, appCfg.SuperAdminEmail, logger); err != nil {
			return err
		}
	}

	return migrateClaims(ctx, users, logger)
}

func ensureSuperAdmin(ctx context.Context, users *userstore.Store, email string, logger *zap.Logger) error {
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return err
	}

	_, err = users.Create(ctx, models.User{
		FullName: "Super Admin",
		Email:    email,
		Role:     models.RoleSuperAdmin,
		Status:   "active",
	})
	if err != nil {
		logger.Error("superadmin bootstrap failed", zap.Error(err))
		return err
	}
	logger.Info("created superadmin account", zap.String("email", email))
	return nil
}

// migrateClaims backfills role/office/campus for users that still lack them.
func migrateClaims(ctx context.Context, users *userstore.Store, logger *zap.Logger) error {
	pending, err := users.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"role": ""},
		bson.M{"role": bson.M{"$exists": false}},
	}})
	if err != nil {
		return err
	}

	migrated := 0
	for _, u := range pending {
		if _, err := users.EnsureClaims(ctx, u); err != nil {
			// A user with an unparseable address keeps working without
			// claims; the workflow denies them office operations.
			logger.Warn("claims backfill skipped",
				zap.String("email", u.Email),
				zap.Error(err))
			continue
		}
		migrated++
	}
	if migrated > 0 {
		logger.Info("backfilled user claims",
			zap.Int("migrated", migrated),
			zap.Time("at", time.Now().UTC()))
	}
	return nil
}
