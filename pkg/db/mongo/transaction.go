package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/logger"
)

// codeIllegalOperation is returned by standalone servers, which have no
// transaction support.
const codeIllegalOperation = 20

type TransactionFunc func(ctx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
	log    *logger.Logger
}

func NewTransactionManager(client *mongo.Client, log *logger.Logger) TransactionManager {
	return &mongoTransactionManager{
		client: client,
		log:    log,
	}
}

// ExecuteTransaction runs fn in a transaction. Against a standalone server it
// falls back to running fn in a plain session, so each write stays atomic on
// its own document only.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	if err != nil && transactionsUnsupported(err) {
		m.log.Warn("MongoDB transactions unsupported, writing without a transaction")
		err = mongo.WithSession(ctx, session, func(sessCtx mongo.SessionContext) error {
			return fn(sessCtx)
		})
	}

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == codeIllegalOperation
	}
	return false
}
