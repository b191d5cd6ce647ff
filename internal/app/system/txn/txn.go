// internal/app/system/txn/txn.go

// Package txn wraps multi-document work in a MongoDB transaction, falling
// back to plain execution on deployments that do not support transactions
// (standalone servers, some DocumentDB configurations).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a session transaction on client. If the
// server reports that transactions are not supported, fn is re-run once
// without a transaction; callers must keep fn safe to execute standalone
// (single logical unit of work, idempotent on retry).
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate transactions are unavailable.
// 20 IllegalOperation, 51 CommandNotSupported, 263 OperationNotSupportedInTransaction.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err means the server cannot run
// transactions, as opposed to the transaction having failed.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && notSupportedCodes[ce.Code] {
		return true
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "transaction") && !strings.Contains(msg, "session") {
		return false
	}
	if strings.Contains(msg, "replica set") ||
		strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "illegal operation") {
		return true
	}
	// "transaction ... session" pairings indicate session-state failures on
	// servers without session support.
	return strings.Contains(msg, "transaction") && strings.Contains(msg, "session")
}
