package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrSquareNotFound = errors.New("square not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrAlreadyPlaced  = errors.New("square already has a grid position")
)

type Payouts struct {
	RoundOne     decimal.Decimal `json:"ROUND1"`
	RoundTwo     decimal.Decimal `json:"ROUND2"`
	SweetSixteen decimal.Decimal `json:"SWEET16"`
	EliteEight   decimal.Decimal `json:"ELITE8"`
	FinalFour    decimal.Decimal `json:"FINAL4"`
	Championship decimal.Decimal `json:"CHAMPIONSHIP"`
}

type Board struct {
	ID             uint                        `gorm:"primaryKey"`
	Name           string                      `gorm:"not null"`
	PricePerSquare decimal.Decimal             `gorm:"type:numeric(12,2);not null"`
	Status         string                      `gorm:"not null;default:OPEN;index"`
	Payouts        datatypes.JSONType[Payouts] `gorm:"not null"`
	WinningAxis    datatypes.JSONType[[]int]   `gorm:"not null"`
	LosingAxis     datatypes.JSONType[[]int]   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Square struct {
	ID            uint      `gorm:"primaryKey"`
	BoardID       uint      `gorm:"not null;index:idx_squares_board_owner,priority:1;uniqueIndex:idx_squares_board_position,priority:1"`
	OwnerID       string    `gorm:"not null;index:idx_squares_board_owner,priority:2"`
	GridPosition  *int      `gorm:"uniqueIndex:idx_squares_board_position,priority:2;check:chk_squares_grid_position,grid_position BETWEEN 0 AND 99"`
	WinningDigit  *int      `gorm:"check:chk_squares_winning_digit,winning_digit BETWEEN 0 AND 9"`
	LosingDigit   *int      `gorm:"check:chk_squares_losing_digit,losing_digit BETWEEN 0 AND 9"`
	PaymentStatus string    `gorm:"not null;default:PENDING"`
	ClaimedAt     time.Time `gorm:"not null;index"`
	PaidAt        *time.Time
}

type Game struct {
	ID             uint   `gorm:"primaryKey"`
	BoardID        uint   `gorm:"not null;uniqueIndex:idx_games_board_number,priority:1"`
	GameNumber     int    `gorm:"not null;uniqueIndex:idx_games_board_number,priority:2"`
	Round          string `gorm:"not null"`
	Team1          string `gorm:"not null"`
	Team2          string `gorm:"not null"`
	Score1         *int
	Score2         *int
	Status         string `gorm:"not null;default:SCHEDULED"`
	WinnerSquareID *uint
	Payout         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PoolDAO struct {
	db *gorm.DB
}

func NewPoolDAO(db *gorm.DB) *PoolDAO {
	return &PoolDAO{
		db: db,
	}
}

// Transaction runs fn with a DAO bound to a serializable transaction.
func (d *PoolDAO) Transaction(ctx context.Context, fn func(tx *PoolDAO) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PoolDAO{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (d *PoolDAO) InsertBoard(ctx context.Context, board Board) (Board, error) {
	result := d.db.WithContext(ctx).Create(&board)
	if result.Error != nil {
		return Board{}, result.Error
	}

	return board, nil
}

func (d *PoolDAO) FindBoardByID(ctx context.Context, id uint, forUpdate bool) (Board, error) {
	var board Board

	query := d.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	result := query.First(&board, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Board{}, ErrBoardNotFound
		}

		return Board{}, result.Error
	}

	return board, nil
}

func (d *PoolDAO) UpdateBoardStatus(ctx context.Context, id uint, from, to string) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Board{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	return result.RowsAffected, result.Error
}

func (d *PoolDAO) UpdateBoardAxes(ctx context.Context, id uint, winning, losing []int) error {
	result := d.db.WithContext(ctx).
		Model(&Board{ID: id}).
		Updates(map[string]any{
			"winning_axis": datatypes.NewJSONType(winning),
			"losing_axis":  datatypes.NewJSONType(losing),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}

	return nil
}

func (d *PoolDAO) FindBoardIDsByStatus(ctx context.Context, status string) ([]uint, error) {
	var ids []uint
	result := d.db.WithContext(ctx).
		Model(&Board{}).
		Where("status = ?", status).
		Order("id").
		Pluck("id", &ids)

	return ids, result.Error
}

func (d *PoolDAO) CountSquares(ctx context.Context, boardID uint, conds ...any) (int, error) {
	var count int64

	query := d.db.WithContext(ctx).Model(&Square{}).Where("board_id = ?", boardID)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

func (d *PoolDAO) InsertSquares(ctx context.Context, squares []Square) ([]Square, error) {
	if len(squares) == 0 {
		return squares, nil
	}

	result := d.db.WithContext(ctx).Create(&squares)
	if result.Error != nil {
		return nil, result.Error
	}

	return squares, nil
}

func (d *PoolDAO) FindSquareByID(ctx context.Context, id uint) (Square, error) {
	var square Square

	result := d.db.WithContext(ctx).First(&square, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Square{}, ErrSquareNotFound
		}

		return Square{}, result.Error
	}

	return square, nil
}

func (d *PoolDAO) FindSquaresByBoardID(ctx context.Context, boardID uint) ([]Square, error) {
	var squares []Square
	result := d.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("claimed_at, id").
		Find(&squares)

	return squares, result.Error
}

func (d *PoolDAO) UpdateSquarePaid(ctx context.Context, id uint, paidAt time.Time) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Square{}).
		Where("id = ? AND payment_status = ?", id, "PENDING").
		Updates(map[string]any{
			"payment_status": "PAID",
			"paid_at":        paidAt,
		})

	return result.RowsAffected, result.Error
}

func (d *PoolDAO) UpdateSquarePlacement(ctx context.Context, square Square) error {
	result := d.db.WithContext(ctx).
		Model(&Square{}).
		Where("id = ? AND grid_position IS NULL", square.ID).
		Updates(map[string]any{
			"grid_position": square.GridPosition,
			"winning_digit": square.WinningDigit,
			"losing_digit":  square.LosingDigit,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrAlreadyPlaced
	}

	return nil
}

func (d *PoolDAO) DeletePendingSquares(ctx context.Context, boardID uint, cutoff time.Time) ([]uint, error) {
	var ids []uint

	query := d.db.WithContext(ctx).
		Model(&Square{}).
		Where("board_id = ? AND payment_status = ? AND claimed_at < ?", boardID, "PENDING", cutoff)
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := d.db.WithContext(ctx).Delete(&Square{}, ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (d *PoolDAO) FindPaidSquareByDigits(ctx context.Context, boardID uint, winning, losing int) (Square, error) {
	var square Square

	result := d.db.WithContext(ctx).
		Where("board_id = ? AND payment_status = ? AND winning_digit = ? AND losing_digit = ?", boardID, "PAID", winning, losing).
		First(&square)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Square{}, ErrSquareNotFound
		}

		return Square{}, result.Error
	}

	return square, nil
}

func (d *PoolDAO) InsertGame(ctx context.Context, game Game) (Game, error) {
	result := d.db.WithContext(ctx).Create(&game)
	if result.Error != nil {
		return Game{}, result.Error
	}

	return game, nil
}

func (d *PoolDAO) FindGameByID(ctx context.Context, id uint) (Game, error) {
	var game Game

	result := d.db.WithContext(ctx).First(&game, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Game{}, ErrGameNotFound
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *PoolDAO) FindGameByNumber(ctx context.Context, boardID uint, gameNumber int) (Game, error) {
	var game Game

	result := d.db.WithContext(ctx).
		Where("board_id = ? AND game_number = ?", boardID, gameNumber).
		First(&game)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Game{}, ErrGameNotFound
		}

		return Game{}, result.Error
	}

	return game, nil
}

func (d *PoolDAO) UpdateGame(ctx context.Context, game Game) (Game, error) {
	result := d.db.WithContext(ctx).
		Model(&game).
		Select("Score1", "Score2", "Status", "WinnerSquareID", "Payout").
		Updates(&game)
	if result.Error != nil {
		return Game{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Game{}, ErrGameNotFound
	}

	return d.FindGameByID(ctx, game.ID)
}

func (d *PoolDAO) FindGamesByBoardID(ctx context.Context, boardID uint) ([]Game, error) {
	var games []Game
	result := d.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("game_number").
		Find(&games)

	return games, result.Error
}
