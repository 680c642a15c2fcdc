package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

const defaultConflictRetries = 5

// retryOnConflict runs op until it succeeds, fails with anything other than a
// serialization conflict, or has been retried maxRetries times.
func retryOnConflict(ctx context.Context, maxRetries int, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 0

	attempt := 0
	return backoff.Retry(func() error {
		attempt++

		err := op()
		if err == nil {
			return nil
		}
		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}

		zap.L().Debug("transaction conflict, retrying", zap.Int("attempt", attempt), zap.Error(err))

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx))
}
