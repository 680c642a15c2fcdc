package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

func createBoard(t *testing.T, s *Store) domain.Board {
	t.Helper()

	var board domain.Board
	err := s.Transaction(context.Background(), func(tx repository.Tx) error {
		var err error
		board, err = tx.CreateBoard(context.Background(), domain.Board{
			Name:           "office pool",
			PricePerSquare: decimal.NewFromInt(10),
			Status:         domain.BoardOpen,
		})
		return err
	})
	require.NoError(t, err)

	return board
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	board := createBoard(t, s)

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx repository.Tx) error {
		if _, err := tx.CreateSquares(ctx, []domain.Square{{BoardID: board.ID, OwnerID: "alice", PaymentStatus: domain.PaymentPending}}); err != nil {
			return err
		}
		if _, err := tx.UpdateBoardStatus(ctx, board.ID, domain.BoardOpen, domain.BoardFilled); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.View(ctx, func(tx repository.Tx) error {
		n, err := tx.CountSquares(ctx, board.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		b, err := tx.GetBoard(ctx, board.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BoardOpen, b.Status)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_UpdateBoardStatusFollowsTransitionTable(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	board := createBoard(t, s)

	err := s.Transaction(ctx, func(tx repository.Tx) error {
		_, err := tx.UpdateBoardStatus(ctx, board.ID, domain.BoardOpen, domain.BoardAssigned)
		return err
	})
	assert.Equal(t, domain.CodeInvalidTransition, domain.CodeOf(err))

	err = s.Transaction(ctx, func(tx repository.Tx) error {
		ok, err := tx.UpdateBoardStatus(ctx, board.ID, domain.BoardFilled, domain.BoardAssigned)
		assert.False(t, ok)
		return err
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx repository.Tx) error {
		got, err := tx.GetBoard(ctx, board.ID)
		assert.Equal(t, domain.BoardOpen, got.Status)
		return err
	})
	require.NoError(t, err)
}

func TestStore_FailNext(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	board := createBoard(t, s)

	boom := errors.New("disk on fire")
	s.FailNext("SaveBoardAxes", boom)

	err := s.Transaction(ctx, func(tx repository.Tx) error {
		return tx.SaveBoardAxes(ctx, board.ID, []int{1}, []int{2})
	})
	require.ErrorIs(t, err, boom)

	err = s.Transaction(ctx, func(tx repository.Tx) error {
		return tx.SaveBoardAxes(ctx, board.ID, []int{1}, []int{2})
	})
	require.NoError(t, err)
}

func TestStore_ListSquaresOrderedByClaimTime(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	board := createBoard(t, s)

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	err := s.Transaction(ctx, func(tx repository.Tx) error {
		_, err := tx.CreateSquares(ctx, []domain.Square{
			{BoardID: board.ID, OwnerID: "late", ClaimedAt: base.Add(time.Minute)},
			{BoardID: board.ID, OwnerID: "early", ClaimedAt: base},
			{BoardID: board.ID, OwnerID: "early-tie", ClaimedAt: base},
		})
		return err
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx repository.Tx) error {
		squares, err := tx.ListSquares(ctx, board.ID)
		require.NoError(t, err)
		require.Len(t, squares, 3)
		assert.Equal(t, "early", squares[0].OwnerID)
		assert.Equal(t, "early-tie", squares[1].OwnerID)
		assert.Equal(t, "late", squares[2].OwnerID)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_AssignSquaresRejectsPlacedSquare(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	board := createBoard(t, s)

	pos := 7
	err := s.Transaction(ctx, func(tx repository.Tx) error {
		created, err := tx.CreateSquares(ctx, []domain.Square{{BoardID: board.ID, OwnerID: "alice"}})
		if err != nil {
			return err
		}
		created[0].GridPosition = &pos
		if err := tx.AssignSquares(ctx, created); err != nil {
			return err
		}
		return tx.AssignSquares(ctx, created)
	})
	assert.ErrorIs(t, err, domain.ErrState)
	assert.Equal(t, domain.CodeAlreadyAssigned, domain.CodeOf(err))
}

func TestStore_AssignSquaresPositionsArePerBoard(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	first := createBoard(t, s)
	second := createBoard(t, s)

	pos := 42
	err := s.Transaction(ctx, func(tx repository.Tx) error {
		for _, board := range []domain.Board{first, second} {
			created, err := tx.CreateSquares(ctx, []domain.Square{{BoardID: board.ID, OwnerID: "alice"}})
			if err != nil {
				return err
			}
			created[0].GridPosition = &pos
			if err := tx.AssignSquares(ctx, created); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Transaction(ctx, func(tx repository.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
