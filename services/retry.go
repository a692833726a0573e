package services

import (
	"context"
	"errors"
	"time"

	apperrors "resortbook/errors"
	"resortbook/services/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const defaultRetryBackoff = 50 * time.Millisecond

// Postgres SQLSTATE codes worth another attempt.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
)

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	}
	return false
}

// txRunner runs inventory transactions with a bounded retry on lock contention.
type txRunner struct {
	db       *gorm.DB
	attempts int
	backoff  time.Duration
	logger   logger.Logger
}

func newTxRunner(db *gorm.DB, attempts int, log logger.Logger) txRunner {
	if attempts < 1 {
		attempts = 1
	}
	return txRunner{db: db, attempts: attempts, backoff: defaultRetryBackoff, logger: log}
}

func (r txRunner) run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	for attempt := 1; ; attempt++ {
		err := r.db.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt >= r.attempts {
			r.logger.Error("%s: giving up after %d attempts: %v", op, attempt, err)
			return apperrors.Internal("The booking could not be saved, please try again", err)
		}
		r.logger.Warn("%s: attempt %d hit lock contention, retrying: %v", op, attempt, err)

		select {
		case <-ctx.Done():
			return apperrors.Internal("Request cancelled", ctx.Err())
		case <-time.After(time.Duration(attempt) * r.backoff):
		}
	}
}
