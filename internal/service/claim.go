package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

// ClaimAdmission reserves squares for an owner while holding the board and
// owner limits.
type ClaimAdmission struct {
	store   repository.Store
	emit    emitter
	now     func() time.Time
	retries int
}

func (c *ClaimAdmission) Claim(ctx context.Context, boardID uint, ownerID string, count int) ([]domain.Square, error) {
	if ownerID == "" {
		return nil, domain.Validationf(domain.CodeInvalidOwner, "owner id is required")
	}
	if count < 1 || count > domain.MaxSquaresPerOwner {
		return nil, domain.Validationf(domain.CodeInvalidSquareCount, "count must be between 1 and %d, got %d", domain.MaxSquaresPerOwner, count)
	}

	var (
		created []domain.Square
		total   int
	)
	err := retryOnConflict(ctx, c.retries, func() error {
		return c.store.Transaction(ctx, func(tx repository.Tx) error {
			board, err := tx.LockBoard(ctx, boardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}
			if board.Status != domain.BoardOpen {
				return domain.Statef(domain.CodeBoardNotOpen, "board %d is %s", boardID, board.Status)
			}

			owned, err := tx.CountOwnerSquares(ctx, boardID, ownerID)
			if err != nil {
				return fmt.Errorf("tx.CountOwnerSquares -> %w", err)
			}
			if owned+count > domain.MaxSquaresPerOwner {
				return domain.Capacityf(domain.CodeSquareLimitExceeded,
					"owner already holds %d of %d squares, cannot claim %d more", owned, domain.MaxSquaresPerOwner, count)
			}

			total, err = tx.CountSquares(ctx, boardID)
			if err != nil {
				return fmt.Errorf("tx.CountSquares -> %w", err)
			}
			if total+count > domain.BoardCapacity {
				return domain.Capacityf(domain.CodeBoardFull,
					"board has %d of %d squares claimed, cannot claim %d more", total, domain.BoardCapacity, count)
			}

			claimedAt := c.now()
			squares := make([]domain.Square, count)
			for i := range squares {
				squares[i] = domain.Square{
					BoardID:       boardID,
					OwnerID:       ownerID,
					PaymentStatus: domain.PaymentPending,
					ClaimedAt:     claimedAt,
				}
			}

			created, err = tx.CreateSquares(ctx, squares)
			if err != nil {
				return fmt.Errorf("tx.CreateSquares -> %w", err)
			}
			total += count

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("squares claimed",
		zap.Uint("board_id", boardID),
		zap.String("owner_id", ownerID),
		zap.Int("count", count),
		zap.Int("total", total),
	)

	c.emit.toBoard(boardID, domain.EventSquareClaimed, SquaresClaimedPayload{
		OwnerID:        ownerID,
		Squares:        created,
		ClaimedSquares: total,
		Remaining:      domain.BoardCapacity - total,
	})

	return created, nil
}
