package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

// TransitionSupervisor owns every write of Board.status.
//
//	OPEN -> FILLED       paid squares reach capacity
//	FILLED -> ASSIGNED   AssignmentEngine succeeds
//	ASSIGNED -> ACTIVE   tournament started
//	ACTIVE -> COMPLETED  tournament ended
type TransitionSupervisor struct {
	store   repository.Store
	engine  *AssignmentEngine
	emit    emitter
	retries int
}

// Reevaluate fills the board if every square is paid and, when it does, runs
// the assignment. It returns a nil result if the board did not fill.
func (s *TransitionSupervisor) Reevaluate(ctx context.Context, boardID uint) (*AssignmentResult, error) {
	filled, err := s.fillIfComplete(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("s.fillIfComplete -> %w", err)
	}
	if !filled {
		return nil, nil
	}

	result, err := s.assign(ctx, boardID)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// TriggerAssignment is the manual path into the same guarded assignment,
// usable when an automatic attempt left the board FILLED.
func (s *TransitionSupervisor) TriggerAssignment(ctx context.Context, boardID uint) (AssignmentResult, error) {
	result, err := s.Reevaluate(ctx, boardID)
	if err != nil {
		return AssignmentResult{}, err
	}
	if result != nil {
		return *result, nil
	}

	return s.assign(ctx, boardID)
}

func (s *TransitionSupervisor) fillIfComplete(ctx context.Context, boardID uint) (bool, error) {
	filled := false
	err := retryOnConflict(ctx, s.retries, func() error {
		filled = false

		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			board, err := tx.LockBoard(ctx, boardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}
			if !board.Status.CanTransitionTo(domain.BoardFilled) {
				return nil
			}

			paid, err := tx.CountPaidSquares(ctx, boardID)
			if err != nil {
				return fmt.Errorf("tx.CountPaidSquares -> %w", err)
			}
			if paid < domain.BoardCapacity {
				return nil
			}

			filled, err = tx.UpdateBoardStatus(ctx, boardID, domain.BoardOpen, domain.BoardFilled)
			if err != nil {
				return fmt.Errorf("tx.UpdateBoardStatus -> %w", err)
			}

			return nil
		})
	})
	if err != nil {
		return false, err
	}

	if filled {
		zap.L().Info("board filled", zap.Uint("board_id", boardID))
		s.emit.toBoard(boardID, domain.EventBoardStatusChange, StatusChangePayload{
			From: domain.BoardOpen,
			To:   domain.BoardFilled,
		})
	}

	return filled, nil
}

func (s *TransitionSupervisor) assign(ctx context.Context, boardID uint) (AssignmentResult, error) {
	result, err := s.engine.Assign(ctx, boardID)
	if err != nil {
		zap.L().Error("assignment failed, board stays FILLED",
			zap.Uint("board_id", boardID),
			zap.String("code", string(domain.CodeOf(err))),
			zap.Error(err),
		)

		return AssignmentResult{}, fmt.Errorf("s.engine.Assign -> %w", err)
	}

	zap.L().Info("board assigned", zap.Uint("board_id", boardID))
	s.emit.toBoard(boardID, domain.EventBoardAssigned, result)

	return result, nil
}

// Advance applies one of the tournament progress signals.
func (s *TransitionSupervisor) Advance(ctx context.Context, boardID uint, to domain.BoardStatus) (domain.Board, error) {
	if to != domain.BoardActive && to != domain.BoardCompleted {
		return domain.Board{}, domain.Statef(domain.CodeInvalidTransition, "status %s is not set by a tournament signal", to)
	}

	var (
		board domain.Board
		from  domain.BoardStatus
	)
	err := retryOnConflict(ctx, s.retries, func() error {
		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			var err error
			board, err = tx.LockBoard(ctx, boardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}
			from = board.Status
			if !from.CanTransitionTo(to) {
				return domain.Statef(domain.CodeInvalidTransition, "cannot move board %d from %s to %s", boardID, from, to)
			}

			ok, err := tx.UpdateBoardStatus(ctx, boardID, from, to)
			if err != nil {
				return fmt.Errorf("tx.UpdateBoardStatus -> %w", err)
			}
			if !ok {
				return domain.Statef(domain.CodeInvalidTransition, "board %d left %s", boardID, from)
			}
			board.Status = to

			return nil
		})
	})
	if err != nil {
		return domain.Board{}, err
	}

	zap.L().Info("board status changed",
		zap.Uint("board_id", boardID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	s.emit.toBoard(boardID, domain.EventBoardStatusChange, StatusChangePayload{From: from, To: to})

	return board, nil
}
