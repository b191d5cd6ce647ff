// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/reporthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "assignments: "+err.Error())
	}
	if err := ensureSubmissions(ctx, db); err != nil {
		problems = append(problems, "submissions: "+err.Error())
	}
	if err := ensureDynamicTableSchemas(ctx, db); err != nil {
		problems = append(problems, "dynamic_table_schemas: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, idx []mongo.IndexModel) error {
	for _, m := range idx {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// An index with the same keys already existing under a different
			// name is fine; everything else is fatal for startup.
			if strings.Contains(err.Error(), "IndexOptionsConflict") {
				zap.L().Warn("index options conflict; keeping existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name),
					zap.Error(err))
				continue
			}
			return err
		}
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "office", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("office_role"),
		},
	})
}

// The unique partial index is what closes the check-then-insert race on
// duplicate assignments: two concurrent creates for the same active pair
// cannot both commit.
func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("assignments"), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "table_name", Value: 1}, {Key: "office", Value: 1}},
			Options: options.Index().
				SetName("uniq_active_pair").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.AssignmentActive}),
		},
		{
			Keys:    bson.D{{Key: "office", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("office_status_created"),
		},
	})
}

func ensureSubmissions(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("submissions"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "table_name", Value: 1}, {Key: "office", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("pair_status_created"),
		},
		{
			Keys:    bson.D{{Key: "submitted_by_id", Value: 1}, {Key: "table_name", Value: 1}, {Key: "office", Value: 1}},
			Options: options.Index().SetName("submitter_pair"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created"),
		},
	})
}

func ensureDynamicTableSchemas(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("dynamic_table_schemas"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "table_name", Value: 1}},
			Options: options.Index().SetName("uniq_table_name").SetUnique(true),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("audit_events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("ts_desc"),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("actor_ts"),
		},
	})
}
