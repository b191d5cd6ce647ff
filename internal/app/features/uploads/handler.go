// internal/app/features/uploads/handler.go

// Package uploads is the admin surface for bulk row uploads into dynamic
// tables. The first upload for a table fixes its column set; later batches
// must conform to it.
package uploads

import (
	dynamictablestore "github.com/dalemusser/reporthub/internal/app/store/dynamictables"
	"github.com/dalemusser/reporthub/internal/app/system/auditlog"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the uploads feature.
type Handler struct {
	DB    *mongo.Database
	Store *dynamictablestore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger

	sanitize *bluemonday.Policy
}

// NewHandler constructs an uploads Handler.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Store:    dynamictablestore.New(db),
		Audit:    audit,
		Log:      logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}
