package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/random"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

type AssignmentResult struct {
	BoardID uint `json:"boardId"`
	// GridPositions maps square id to grid position.
	GridPositions map[uint]int    `json:"gridPositions"`
	WinningAxis   []int           `json:"winningAxis"`
	LosingAxis    []int           `json:"losingAxis"`
	Squares       []domain.Square `json:"squares"`
}

// AssignmentEngine places the paid squares of a FILLED board on the grid and
// draws the digit axes. It runs at most once per board.
type AssignmentEngine struct {
	store   repository.Store
	perm    random.Permuter
	retries int
}

func (e *AssignmentEngine) Assign(ctx context.Context, boardID uint) (AssignmentResult, error) {
	var result AssignmentResult
	err := retryOnConflict(ctx, e.retries, func() error {
		return e.store.Transaction(ctx, func(tx repository.Tx) error {
			var err error
			result, err = e.assignTx(ctx, tx, boardID)
			return err
		})
	})
	if err != nil {
		return AssignmentResult{}, err
	}

	return result, nil
}

func (e *AssignmentEngine) assignTx(ctx context.Context, tx repository.Tx, boardID uint) (AssignmentResult, error) {
	board, err := tx.LockBoard(ctx, boardID)
	if err != nil {
		return AssignmentResult{}, fmt.Errorf("tx.LockBoard -> %w", err)
	}

	if !board.Status.CanTransitionTo(domain.BoardAssigned) {
		if board.Status == domain.BoardOpen {
			return AssignmentResult{}, domain.Statef(domain.CodeBoardNotFilled, "board %d is still OPEN", boardID)
		}
		return AssignmentResult{}, domain.Statef(domain.CodeAlreadyAssigned, "board %d is %s", boardID, board.Status)
	}

	squares, err := tx.ListSquares(ctx, boardID)
	if err != nil {
		return AssignmentResult{}, fmt.Errorf("tx.ListSquares -> %w", err)
	}

	paid := 0
	for _, s := range squares {
		if s.IsAssigned() {
			return AssignmentResult{}, domain.Statef(domain.CodeAlreadyAssigned, "square %d already has grid position %d", s.ID, *s.GridPosition)
		}
		if s.IsPaid() {
			paid++
		}
	}
	if paid != domain.BoardCapacity || len(squares) != domain.BoardCapacity {
		return AssignmentResult{}, domain.Validationf(domain.CodeIncompleteBoard,
			"board %d has %d paid of %d squares, need %d", boardID, paid, len(squares), domain.BoardCapacity)
	}

	result := e.plan(boardID, squares)

	if err = tx.AssignSquares(ctx, result.Squares); err != nil {
		return AssignmentResult{}, writeFailure("tx.AssignSquares", err)
	}
	if err = tx.SaveBoardAxes(ctx, boardID, result.WinningAxis, result.LosingAxis); err != nil {
		return AssignmentResult{}, writeFailure("tx.SaveBoardAxes", err)
	}

	ok, err := tx.UpdateBoardStatus(ctx, boardID, domain.BoardFilled, domain.BoardAssigned)
	if err != nil {
		return AssignmentResult{}, writeFailure("tx.UpdateBoardStatus", err)
	}
	if !ok {
		return AssignmentResult{}, domain.Statef(domain.CodeAlreadyAssigned, "board %d left FILLED during assignment", boardID)
	}

	return result, nil
}

// plan draws the permutations and applies them to squares, which must be
// ordered by claim time.
func (e *AssignmentEngine) plan(boardID uint, squares []domain.Square) AssignmentResult {
	positions := e.perm.Perm(domain.BoardCapacity)
	winningAxis := e.perm.Perm(domain.GridSize)
	losingAxis := e.perm.Perm(domain.GridSize)

	result := AssignmentResult{
		BoardID:       boardID,
		GridPositions: make(map[uint]int, len(squares)),
		WinningAxis:   winningAxis,
		LosingAxis:    losingAxis,
		Squares:       make([]domain.Square, len(squares)),
	}

	for i, s := range squares {
		p := positions[i]
		winning := winningAxis[p%domain.GridSize]
		losing := losingAxis[p/domain.GridSize]

		s.GridPosition = &p
		s.WinningDigit = &winning
		s.LosingDigit = &losing

		result.Squares[i] = s
		result.GridPositions[s.ID] = p
	}

	return result
}

func writeFailure(op string, err error) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return fmt.Errorf("%s -> %w", op, err)
	}

	return domain.Internal(domain.CodeAssignmentWriteFailure, fmt.Errorf("%s -> %w", op, err))
}
