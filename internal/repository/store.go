package repository

import (
	"context"
	"time"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

// Store is the transactional persistence boundary for the pool.
type Store interface {
	// Transaction runs fn inside one serializable transaction. A non-nil
	// error from fn rolls back every write made through tx. Serialization
	// failures come back as a domain conflict error.
	Transaction(ctx context.Context, fn func(tx Tx) error) error

	// View runs fn against committed state. fn must not write.
	View(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of reads and writes available inside a Store callback.
type Tx interface {
	CreateBoard(ctx context.Context, board domain.Board) (domain.Board, error)
	GetBoard(ctx context.Context, boardID uint) (domain.Board, error)
	// LockBoard reads the board and holds a row lock on it until commit.
	LockBoard(ctx context.Context, boardID uint) (domain.Board, error)
	// UpdateBoardStatus moves the board from one status to another and
	// reports false if the board was not in from.
	UpdateBoardStatus(ctx context.Context, boardID uint, from, to domain.BoardStatus) (bool, error)
	SaveBoardAxes(ctx context.Context, boardID uint, winningAxis, losingAxis []int) error
	ListBoardIDsByStatus(ctx context.Context, status domain.BoardStatus) ([]uint, error)

	CountSquares(ctx context.Context, boardID uint) (int, error)
	CountOwnerSquares(ctx context.Context, boardID uint, ownerID string) (int, error)
	CountPaidSquares(ctx context.Context, boardID uint) (int, error)
	CreateSquares(ctx context.Context, squares []domain.Square) ([]domain.Square, error)
	GetSquare(ctx context.Context, squareID uint) (domain.Square, error)
	// ListSquares returns the board's squares ordered by claim time, then id.
	ListSquares(ctx context.Context, boardID uint) ([]domain.Square, error)
	// MarkSquarePaid flips a PENDING square to PAID and reports false if it
	// was not pending.
	MarkSquarePaid(ctx context.Context, squareID uint, paidAt time.Time) (bool, error)
	// AssignSquares writes grid position and digits for every square. It
	// fails if any square already has a grid position.
	AssignSquares(ctx context.Context, squares []domain.Square) error
	// DeletePendingSquares removes the board's PENDING squares claimed
	// before cutoff and returns their ids.
	DeletePendingSquares(ctx context.Context, boardID uint, cutoff time.Time) ([]uint, error)
	// FindPaidSquareByDigits returns the paid square holding the digit pair,
	// ok is false when there is none.
	FindPaidSquareByDigits(ctx context.Context, boardID uint, winningDigit, losingDigit int) (domain.Square, bool, error)

	CreateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	GetGame(ctx context.Context, gameID uint) (domain.Game, error)
	FindGameByNumber(ctx context.Context, boardID uint, gameNumber int) (domain.Game, bool, error)
	UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	ListGames(ctx context.Context, boardID uint) ([]domain.Game, error)
}
