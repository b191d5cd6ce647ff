// internal/app/features/submissions/handler.go

// Package submissions is the HTTP surface for the report submission workflow:
// office users submit row batches, admins review the pending queue and decide
// each batch.
package submissions

import (
	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the submissions feature.
type Handler struct {
	DB       *mongo.Database
	Pipeline *pipeline.Pipeline
	Log      *zap.Logger
}

// NewHandler constructs a submissions Handler.
func NewHandler(db *mongo.Database, pl *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Pipeline: pl,
		Log:      logger,
	}
}
