// internal/app/features/assignments/handler.go

// Package assignments is the admin surface for binding catalog report tables
// to offices and revoking those bindings.
package assignments

import (
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the assignments feature.
type Handler struct {
	DB       *mongo.Database
	Pipeline *pipeline.Pipeline
	Log      *zap.Logger

	// sanitize strips all markup from admin-supplied free text before it
	// is stored and later echoed back in listings.
	sanitize *bluemonday.Policy
}

// NewHandler constructs an assignments Handler. It is called from the
// bootstrap BuildHandler function.
func NewHandler(db *mongo.Database, pl *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Pipeline: pl,
		Log:      logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}
