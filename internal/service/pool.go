package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/config"
	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/random"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

// PoolService is the entry point for every pool operation. It wires the claim,
// transition, assignment and scoring components over one Store and one
// EventPublisher.
type PoolService struct {
	store   repository.Store
	emit    emitter
	now     func() time.Time
	retries int

	claims     *ClaimAdmission
	assigner   *AssignmentEngine
	supervisor *TransitionSupervisor
	scoring    *ScoringEngine
	sweeper    *ClaimSweeper
	conf       *config.PoolConfig
}

func NewPoolService(store repository.Store, events EventPublisher, perm random.Permuter, conf *config.PoolConfig) *PoolService {
	return newPoolService(store, events, perm, conf, time.Now)
}

func newPoolService(store repository.Store, events EventPublisher, perm random.Permuter, conf *config.PoolConfig, now func() time.Time) *PoolService {
	if conf == nil {
		conf = &config.PoolConfig{ConflictRetries: defaultConflictRetries}
	}

	retries := conf.ConflictRetries
	em := emitter{events: events, now: now}

	assigner := &AssignmentEngine{store: store, perm: perm, retries: retries}

	return &PoolService{
		store:    store,
		emit:     em,
		now:      now,
		retries:  retries,
		conf:     conf,
		assigner: assigner,
		claims:   &ClaimAdmission{store: store, emit: em, now: now, retries: retries},
		supervisor: &TransitionSupervisor{
			store:   store,
			engine:  assigner,
			emit:    em,
			retries: retries,
		},
		scoring: &ScoringEngine{store: store, emit: em, retries: retries},
		sweeper: &ClaimSweeper{store: store, emit: em, now: now, ttl: conf.ClaimTTL, retries: retries},
	}
}

func (s *PoolService) CreateBoard(ctx context.Context, board domain.Board) (domain.Board, error) {
	if board.Name == "" {
		return domain.Board{}, domain.Validationf(domain.CodeInvalidBoard, "name is required")
	}
	if !board.PricePerSquare.IsPositive() {
		return domain.Board{}, domain.Validationf(domain.CodeInvalidBoard, "price per square must be positive")
	}
	for _, r := range domain.Rounds {
		if board.Payouts.For(r).IsNegative() {
			return domain.Board{}, domain.Validationf(domain.CodeInvalidBoard, "payout for %s must not be negative", r)
		}
	}

	board.Status = domain.BoardOpen
	board.WinningAxis, board.LosingAxis = nil, nil

	var created domain.Board
	err := s.store.Transaction(ctx, func(tx repository.Tx) error {
		var err error
		created, err = tx.CreateBoard(ctx, board)
		if err != nil {
			return fmt.Errorf("tx.CreateBoard -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Board{}, err
	}

	zap.L().Info("board created", zap.Uint("board_id", created.ID), zap.String("name", created.Name))

	return created, nil
}

func (s *PoolService) GetBoard(ctx context.Context, boardID uint) (domain.BoardSummary, error) {
	var summary domain.BoardSummary
	err := s.store.View(ctx, func(tx repository.Tx) error {
		board, err := tx.GetBoard(ctx, boardID)
		if err != nil {
			return fmt.Errorf("tx.GetBoard -> %w", err)
		}

		claimed, err := tx.CountSquares(ctx, boardID)
		if err != nil {
			return fmt.Errorf("tx.CountSquares -> %w", err)
		}

		paid, err := tx.CountPaidSquares(ctx, boardID)
		if err != nil {
			return fmt.Errorf("tx.CountPaidSquares -> %w", err)
		}

		summary = domain.BoardSummary{Board: board, ClaimedSquares: claimed, PaidSquares: paid}

		return nil
	})
	if err != nil {
		return domain.BoardSummary{}, err
	}

	return summary, nil
}

func (s *PoolService) ListSquares(ctx context.Context, boardID uint) ([]domain.Square, error) {
	var squares []domain.Square
	err := s.store.View(ctx, func(tx repository.Tx) error {
		if _, err := tx.GetBoard(ctx, boardID); err != nil {
			return fmt.Errorf("tx.GetBoard -> %w", err)
		}

		var err error
		squares, err = tx.ListSquares(ctx, boardID)
		if err != nil {
			return fmt.Errorf("tx.ListSquares -> %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if squares == nil {
		squares = []domain.Square{}
	}

	return squares, nil
}

func (s *PoolService) ClaimSquares(ctx context.Context, boardID uint, ownerID string, count int) ([]domain.Square, error) {
	return s.claims.Claim(ctx, boardID, ownerID, count)
}

// ConfirmPayment marks a pending square as paid and lets the supervisor fill
// and assign the board. If the payment commits but the assignment fails, the
// paid square is returned together with the assignment error.
func (s *PoolService) ConfirmPayment(ctx context.Context, squareID uint) (domain.Square, error) {
	var (
		square domain.Square
		paid   int
	)
	err := retryOnConflict(ctx, s.retries, func() error {
		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			var err error
			square, err = tx.GetSquare(ctx, squareID)
			if err != nil {
				return fmt.Errorf("tx.GetSquare -> %w", err)
			}

			board, err := tx.LockBoard(ctx, square.BoardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}
			if square.IsPaid() {
				return domain.Statef(domain.CodeSquareAlreadyPaid, "square %d is already paid", squareID)
			}
			if board.Status != domain.BoardOpen {
				return domain.Statef(domain.CodeBoardNotOpen, "board %d is %s", board.ID, board.Status)
			}

			paidAt := s.now()
			ok, err := tx.MarkSquarePaid(ctx, squareID, paidAt)
			if err != nil {
				return fmt.Errorf("tx.MarkSquarePaid -> %w", err)
			}
			if !ok {
				return domain.Statef(domain.CodeSquareAlreadyPaid, "square %d is already paid", squareID)
			}
			square.PaymentStatus = domain.PaymentPaid
			square.PaidAt = &paidAt

			paid, err = tx.CountPaidSquares(ctx, square.BoardID)
			if err != nil {
				return fmt.Errorf("tx.CountPaidSquares -> %w", err)
			}

			return nil
		})
	})
	if err != nil {
		return domain.Square{}, err
	}

	zap.L().Info("payment confirmed",
		zap.Uint("board_id", square.BoardID),
		zap.Uint("square_id", square.ID),
		zap.Int("paid", paid),
	)

	payload := PaymentConfirmedPayload{Square: square, PaidSquares: paid}
	s.emit.toBoard(square.BoardID, domain.EventPaymentConfirmed, payload)
	s.emit.toUser(square.OwnerID, square.BoardID, domain.EventPaymentNotification, payload)

	if _, err = s.supervisor.Reevaluate(ctx, square.BoardID); err != nil {
		return square, fmt.Errorf("s.supervisor.Reevaluate -> %w", err)
	}

	return square, nil
}

func (s *PoolService) TriggerAssignment(ctx context.Context, boardID uint) (AssignmentResult, error) {
	return s.supervisor.TriggerAssignment(ctx, boardID)
}

func (s *PoolService) StartTournament(ctx context.Context, boardID uint) (domain.Board, error) {
	return s.supervisor.Advance(ctx, boardID, domain.BoardActive)
}

func (s *PoolService) EndTournament(ctx context.Context, boardID uint) (domain.Board, error) {
	return s.supervisor.Advance(ctx, boardID, domain.BoardCompleted)
}

func (s *PoolService) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	created, err := s.scoring.CreateGame(ctx, game)
	if err != nil {
		return domain.Game{}, err
	}

	zap.L().Info("game created",
		zap.Uint("board_id", created.BoardID),
		zap.Uint("game_id", created.ID),
		zap.Int("game_number", created.GameNumber),
	)

	return created, nil
}

func (s *PoolService) UpdateGameScore(ctx context.Context, gameID uint, score1, score2 int, status domain.GameStatus) (ScoringResult, error) {
	return s.scoring.UpdateScore(ctx, gameID, score1, score2, status)
}

func (s *PoolService) GetScoringTable(ctx context.Context, boardID uint) (domain.ScoringTable, error) {
	return s.scoring.ScoringTable(ctx, boardID)
}

func (s *PoolService) ReleaseStaleClaims(ctx context.Context) (int, error) {
	return s.sweeper.Sweep(ctx)
}
