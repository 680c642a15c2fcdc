package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository/dao"
)

// PoolRepository is the Postgres-backed Store.
type PoolRepository struct {
	dao *dao.PoolDAO
}

func NewPoolRepository(dao *dao.PoolDAO) *PoolRepository {
	return &PoolRepository{
		dao: dao,
	}
}

func (r *PoolRepository) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	err := r.dao.Transaction(ctx, func(tx *dao.PoolDAO) error {
		return fn(&PoolRepository{dao: tx})
	})

	return translateErr(err)
}

func (r *PoolRepository) View(ctx context.Context, fn func(tx Tx) error) error {
	return translateErr(fn(r))
}

func (r *PoolRepository) CreateBoard(ctx context.Context, board domain.Board) (domain.Board, error) {
	created, err := r.dao.InsertBoard(ctx, boardDomainToDao(board))
	if err != nil {
		return domain.Board{}, fmt.Errorf("r.dao.InsertBoard -> %w", translateErr(err))
	}

	return boardDaoToDomain(created), nil
}

func (r *PoolRepository) GetBoard(ctx context.Context, boardID uint) (domain.Board, error) {
	found, err := r.dao.FindBoardByID(ctx, boardID, false)
	if err != nil {
		return domain.Board{}, fmt.Errorf("r.dao.FindBoardByID -> %w", translateErr(err))
	}

	return boardDaoToDomain(found), nil
}

func (r *PoolRepository) LockBoard(ctx context.Context, boardID uint) (domain.Board, error) {
	found, err := r.dao.FindBoardByID(ctx, boardID, true)
	if err != nil {
		return domain.Board{}, fmt.Errorf("r.dao.FindBoardByID -> %w", translateErr(err))
	}

	return boardDaoToDomain(found), nil
}

func (r *PoolRepository) UpdateBoardStatus(ctx context.Context, boardID uint, from, to domain.BoardStatus) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, domain.Statef(domain.CodeInvalidTransition, "board cannot move from %s to %s", from, to)
	}

	affected, err := r.dao.UpdateBoardStatus(ctx, boardID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("r.dao.UpdateBoardStatus -> %w", translateErr(err))
	}

	return affected == 1, nil
}

func (r *PoolRepository) SaveBoardAxes(ctx context.Context, boardID uint, winningAxis, losingAxis []int) error {
	if err := r.dao.UpdateBoardAxes(ctx, boardID, winningAxis, losingAxis); err != nil {
		return fmt.Errorf("r.dao.UpdateBoardAxes -> %w", translateErr(err))
	}

	return nil
}

func (r *PoolRepository) ListBoardIDsByStatus(ctx context.Context, status domain.BoardStatus) ([]uint, error) {
	ids, err := r.dao.FindBoardIDsByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBoardIDsByStatus -> %w", translateErr(err))
	}

	return ids, nil
}

func (r *PoolRepository) CountSquares(ctx context.Context, boardID uint) (int, error) {
	n, err := r.dao.CountSquares(ctx, boardID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountSquares -> %w", translateErr(err))
	}

	return n, nil
}

func (r *PoolRepository) CountOwnerSquares(ctx context.Context, boardID uint, ownerID string) (int, error) {
	n, err := r.dao.CountSquares(ctx, boardID, "owner_id = ?", ownerID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountSquares -> %w", translateErr(err))
	}

	return n, nil
}

func (r *PoolRepository) CountPaidSquares(ctx context.Context, boardID uint) (int, error) {
	n, err := r.dao.CountSquares(ctx, boardID, "payment_status = ?", string(domain.PaymentPaid))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountSquares -> %w", translateErr(err))
	}

	return n, nil
}

func (r *PoolRepository) CreateSquares(ctx context.Context, squares []domain.Square) ([]domain.Square, error) {
	rows := make([]dao.Square, len(squares))
	for i, s := range squares {
		rows[i] = squareDomainToDao(s)
	}

	created, err := r.dao.InsertSquares(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertSquares -> %w", translateErr(err))
	}

	return squaresDaoToDomain(created), nil
}

func (r *PoolRepository) GetSquare(ctx context.Context, squareID uint) (domain.Square, error) {
	found, err := r.dao.FindSquareByID(ctx, squareID)
	if err != nil {
		return domain.Square{}, fmt.Errorf("r.dao.FindSquareByID -> %w", translateErr(err))
	}

	return squareDaoToDomain(found), nil
}

func (r *PoolRepository) ListSquares(ctx context.Context, boardID uint) ([]domain.Square, error) {
	found, err := r.dao.FindSquaresByBoardID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSquaresByBoardID -> %w", translateErr(err))
	}

	return squaresDaoToDomain(found), nil
}

func (r *PoolRepository) MarkSquarePaid(ctx context.Context, squareID uint, paidAt time.Time) (bool, error) {
	affected, err := r.dao.UpdateSquarePaid(ctx, squareID, paidAt)
	if err != nil {
		return false, fmt.Errorf("r.dao.UpdateSquarePaid -> %w", translateErr(err))
	}

	return affected == 1, nil
}

func (r *PoolRepository) AssignSquares(ctx context.Context, squares []domain.Square) error {
	for _, s := range squares {
		if err := r.dao.UpdateSquarePlacement(ctx, squareDomainToDao(s)); err != nil {
			return fmt.Errorf("r.dao.UpdateSquarePlacement -> %w", translateErr(err))
		}
	}

	return nil
}

func (r *PoolRepository) DeletePendingSquares(ctx context.Context, boardID uint, cutoff time.Time) ([]uint, error) {
	ids, err := r.dao.DeletePendingSquares(ctx, boardID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.DeletePendingSquares -> %w", translateErr(err))
	}

	return ids, nil
}

func (r *PoolRepository) FindPaidSquareByDigits(ctx context.Context, boardID uint, winningDigit, losingDigit int) (domain.Square, bool, error) {
	found, err := r.dao.FindPaidSquareByDigits(ctx, boardID, winningDigit, losingDigit)
	if err != nil {
		if errors.Is(err, dao.ErrSquareNotFound) {
			return domain.Square{}, false, nil
		}

		return domain.Square{}, false, fmt.Errorf("r.dao.FindPaidSquareByDigits -> %w", translateErr(err))
	}

	return squareDaoToDomain(found), true, nil
}

func (r *PoolRepository) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	created, err := r.dao.InsertGame(ctx, gameDomainToDao(game))
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.InsertGame -> %w", translateErr(err))
	}

	return gameDaoToDomain(created), nil
}

func (r *PoolRepository) GetGame(ctx context.Context, gameID uint) (domain.Game, error) {
	found, err := r.dao.FindGameByID(ctx, gameID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.FindGameByID -> %w", translateErr(err))
	}

	return gameDaoToDomain(found), nil
}

func (r *PoolRepository) FindGameByNumber(ctx context.Context, boardID uint, gameNumber int) (domain.Game, bool, error) {
	found, err := r.dao.FindGameByNumber(ctx, boardID, gameNumber)
	if err != nil {
		if errors.Is(err, dao.ErrGameNotFound) {
			return domain.Game{}, false, nil
		}

		return domain.Game{}, false, fmt.Errorf("r.dao.FindGameByNumber -> %w", translateErr(err))
	}

	return gameDaoToDomain(found), true, nil
}

func (r *PoolRepository) UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	updated, err := r.dao.UpdateGame(ctx, gameDomainToDao(game))
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.UpdateGame -> %w", translateErr(err))
	}

	return gameDaoToDomain(updated), nil
}

func (r *PoolRepository) ListGames(ctx context.Context, boardID uint) ([]domain.Game, error) {
	found, err := r.dao.FindGamesByBoardID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGamesByBoardID -> %w", translateErr(err))
	}

	games := make([]domain.Game, len(found))
	for i, g := range found {
		games[i] = gameDaoToDomain(g)
	}

	return games, nil
}

func boardDomainToDao(b domain.Board) dao.Board {
	return dao.Board{
		ID:             b.ID,
		Name:           b.Name,
		PricePerSquare: b.PricePerSquare,
		Status:         string(b.Status),
		Payouts: datatypes.NewJSONType(dao.Payouts{
			RoundOne:     b.Payouts.RoundOne,
			RoundTwo:     b.Payouts.RoundTwo,
			SweetSixteen: b.Payouts.SweetSixteen,
			EliteEight:   b.Payouts.EliteEight,
			FinalFour:    b.Payouts.FinalFour,
			Championship: b.Payouts.Championship,
		}),
		WinningAxis: datatypes.NewJSONType(b.WinningAxis),
		LosingAxis:  datatypes.NewJSONType(b.LosingAxis),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func boardDaoToDomain(b dao.Board) domain.Board {
	p := b.Payouts.Data()

	return domain.Board{
		ID:             b.ID,
		Name:           b.Name,
		PricePerSquare: b.PricePerSquare,
		Status:         domain.BoardStatus(b.Status),
		Payouts: domain.PayoutStructure{
			RoundOne:     p.RoundOne,
			RoundTwo:     p.RoundTwo,
			SweetSixteen: p.SweetSixteen,
			EliteEight:   p.EliteEight,
			FinalFour:    p.FinalFour,
			Championship: p.Championship,
		},
		WinningAxis: b.WinningAxis.Data(),
		LosingAxis:  b.LosingAxis.Data(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func squareDomainToDao(s domain.Square) dao.Square {
	return dao.Square{
		ID:            s.ID,
		BoardID:       s.BoardID,
		OwnerID:       s.OwnerID,
		GridPosition:  s.GridPosition,
		WinningDigit:  s.WinningDigit,
		LosingDigit:   s.LosingDigit,
		PaymentStatus: string(s.PaymentStatus),
		ClaimedAt:     s.ClaimedAt,
		PaidAt:        s.PaidAt,
	}
}

func squareDaoToDomain(s dao.Square) domain.Square {
	return domain.Square{
		ID:            s.ID,
		BoardID:       s.BoardID,
		OwnerID:       s.OwnerID,
		GridPosition:  s.GridPosition,
		WinningDigit:  s.WinningDigit,
		LosingDigit:   s.LosingDigit,
		PaymentStatus: domain.PaymentStatus(s.PaymentStatus),
		ClaimedAt:     s.ClaimedAt,
		PaidAt:        s.PaidAt,
	}
}

func squaresDaoToDomain(rows []dao.Square) []domain.Square {
	squares := make([]domain.Square, len(rows))
	for i, s := range rows {
		squares[i] = squareDaoToDomain(s)
	}

	return squares
}

func gameDomainToDao(g domain.Game) dao.Game {
	return dao.Game{
		ID:             g.ID,
		BoardID:        g.BoardID,
		GameNumber:     g.GameNumber,
		Round:          string(g.Round),
		Team1:          g.Team1,
		Team2:          g.Team2,
		Score1:         g.Score1,
		Score2:         g.Score2,
		Status:         string(g.Status),
		WinnerSquareID: g.WinnerSquareID,
		Payout:         g.Payout,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func gameDaoToDomain(g dao.Game) domain.Game {
	return domain.Game{
		ID:             g.ID,
		BoardID:        g.BoardID,
		GameNumber:     g.GameNumber,
		Round:          domain.Round(g.Round),
		Team1:          g.Team1,
		Team2:          g.Team2,
		Score1:         g.Score1,
		Score2:         g.Score2,
		Status:         domain.GameStatus(g.Status),
		WinnerSquareID: g.WinnerSquareID,
		Payout:         g.Payout,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}
