package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

// ClaimSweeper releases PENDING squares that were never paid, so their
// capacity can be claimed again.
type ClaimSweeper struct {
	store   repository.Store
	emit    emitter
	now     func() time.Time
	ttl     time.Duration
	retries int
}

// Sweep releases stale claims on every OPEN board and returns how many
// squares were freed. A zero TTL disables it.
func (c *ClaimSweeper) Sweep(ctx context.Context) (int, error) {
	if c.ttl <= 0 {
		return 0, nil
	}

	var boardIDs []uint
	err := c.store.View(ctx, func(tx repository.Tx) error {
		var err error
		boardIDs, err = tx.ListBoardIDsByStatus(ctx, domain.BoardOpen)
		if err != nil {
			return fmt.Errorf("tx.ListBoardIDsByStatus -> %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	cutoff := c.now().Add(-c.ttl)
	released := 0
	for _, boardID := range boardIDs {
		ids, err := c.sweepBoard(ctx, boardID, cutoff)
		if err != nil {
			return released, fmt.Errorf("c.sweepBoard -> %w", err)
		}
		if len(ids) == 0 {
			continue
		}

		released += len(ids)
		zap.L().Info("released stale claims", zap.Uint("board_id", boardID), zap.Int("count", len(ids)))
		c.emit.toBoard(boardID, domain.EventSquaresReleased, SquaresReleasedPayload{SquareIDs: ids})
	}

	return released, nil
}

func (c *ClaimSweeper) sweepBoard(ctx context.Context, boardID uint, cutoff time.Time) ([]uint, error) {
	var ids []uint
	err := retryOnConflict(ctx, c.retries, func() error {
		return c.store.Transaction(ctx, func(tx repository.Tx) error {
			board, err := tx.LockBoard(ctx, boardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}
			if board.Status != domain.BoardOpen {
				ids = nil
				return nil
			}

			ids, err = tx.DeletePendingSquares(ctx, boardID, cutoff)
			if err != nil {
				return fmt.Errorf("tx.DeletePendingSquares -> %w", err)
			}

			return nil
		})
	})

	return ids, err
}

// StartSweeper schedules ReleaseStaleClaims every sweep interval. It returns
// a nil scheduler when claim expiry is disabled. The caller must Shutdown the
// scheduler.
func (s *PoolService) StartSweeper(ctx context.Context) (gocron.Scheduler, error) {
	if s.conf.ClaimTTL <= 0 {
		return nil, nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("gocron.NewScheduler -> %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.conf.SweepInterval),
		gocron.NewTask(func() {
			n, err := s.ReleaseStaleClaims(ctx)
			if err != nil {
				zap.L().Error("failed to release stale claims", zap.Error(err))
				return
			}
			if n > 0 {
				zap.L().Info("stale claim sweep finished", zap.Int("released", n))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("sched.NewJob -> %w", err)
	}

	sched.Start()
	zap.L().Info("stale claim sweeper started",
		zap.Duration("ttl", s.conf.ClaimTTL),
		zap.Duration("interval", s.conf.SweepInterval),
	)

	return sched, nil
}
