// internal/app/system/txn/txn.go
//
// Every API call executes as one unit of work: all reads and writes inside
// a call happen in a single Mongo transaction, committed or rolled back as
// a whole. The core performs no cross-call locking of its own; two
// concurrent calls on the same document can race and last commit wins.
//
// Standalone Mongo deployments do not support multi-document transactions.
// When the server reports that, the unit of work runs directly without a
// transaction rather than failing the call.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a transaction on client, falling back to
// a plain run when the deployment does not support transactions.
func WithTransaction(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Debug("transactions unsupported, running unit of work directly")
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Debug("transactions unsupported, running unit of work directly")
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate transactions cannot be used here
// (standalone deployment, illegal operation outside a replica set).
var notSupportedCodes = map[int32]bool{
	20:  true, // IllegalOperation
	51:  true, // transaction numbers require a replica set
	263: true, // OperationNotSupportedInTransaction
}

// Keyword pairs that mark "no transaction support" in loosely formatted
// driver/server messages. Both words of a pair must appear.
var notSupportedPairs = [][2]string{
	{"transaction", "replica set"},
	{"session", "not supported"},
	{"transaction", "session"},
	{"illegal operation", "transaction"},
}

// IsNotSupported reports whether err means the deployment cannot run
// multi-document transactions (as opposed to the transaction itself
// failing).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if ce, ok := err.(mongo.CommandError); ok {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, pair := range notSupportedPairs {
		if strings.Contains(msg, pair[0]) && strings.Contains(msg, pair[1]) {
			return true
		}
	}
	return false
}
