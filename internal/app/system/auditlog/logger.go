// internal/app/system/auditlog/logger.go

// Package auditlog records workflow audit events. The sink is fire-and-
// forget: a failure to write an event is logged and swallowed, and never
// affects the caller-visible outcome of the mutation that triggered it.
package auditlog

import (
	"context"

	"github.com/dalemusser/reporthub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Logger writes audit events to the store and mirrors them to zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, zapLog: zapLog}
}

// NewNopLogger returns a Logger that writes nowhere. Useful in tests.
func NewNopLogger() *Logger {
	return &Logger{zapLog: zap.NewNop()}
}

// Record logs one audit event. Errors from the store are swallowed after
// being logged; callers never see them.
func (l *Logger) Record(ctx context.Context, actorID primitive.ObjectID, action, description string, details map[string]string) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("action", action),
		zap.String("actor_id", actorID.Hex()),
		zap.String("description", description),
	}
	for k, v := range details {
		fields = append(fields, zap.String(k, v))
	}
	l.zapLog.Info("audit event", fields...)

	if l.store == nil {
		return
	}
	err := l.store.Log(ctx, audit.Event{
		ActorID:     actorID,
		Action:      action,
		Description: description,
		Details:     details,
	})
	if err != nil {
		l.zapLog.Warn("audit event write failed",
			zap.String("action", action),
			zap.Error(err))
	}
}
