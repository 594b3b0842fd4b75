package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"foldernotes/internal/domain/repositories"
)

// TransactionManager runs functions in a MongoDB session transaction.
// With transactions disabled (standalone servers) fn runs directly, so
// callers must order their writes so a partial failure is harmless.
type TransactionManager struct {
	client  *mongo.Client
	enabled bool
	logger  *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(config *RepositoryConfig) repositories.TransactionManager {
	return &TransactionManager{
		client:  config.Client,
		enabled: config.Transactions,
		logger:  config.Logger,
	}
}

// ExecTx executes a function within a transaction when enabled
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if !tm.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	sess, err := tm.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	// The callback ctx carries the session, so repositories join the transaction
	_, err = sess.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		return nil, fn(txCtx)
	})
	return err
}
