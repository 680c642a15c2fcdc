package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

type ScoringResult struct {
	Game         domain.Game     `json:"game"`
	WinnerSquare *domain.Square  `json:"winnerSquare,omitempty"`
	Payout       decimal.Decimal `json:"payout"`
}

// ScoringEngine records game scores and pays the square holding the final
// score's last digits.
type ScoringEngine struct {
	store   repository.Store
	emit    emitter
	retries int
}

func (e *ScoringEngine) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	if !game.Round.Valid() {
		return domain.Game{}, domain.Validationf(domain.CodeInvalidGame, "unknown round %q", game.Round)
	}
	if game.GameNumber < 1 {
		return domain.Game{}, domain.Validationf(domain.CodeInvalidGame, "game number must be positive")
	}
	if game.Team1 == "" || game.Team2 == "" {
		return domain.Game{}, domain.Validationf(domain.CodeInvalidGame, "both teams are required")
	}

	game.Status = domain.GameScheduled
	game.Score1, game.Score2, game.WinnerSquareID = nil, nil, nil
	game.Payout = decimal.Zero

	var created domain.Game
	err := retryOnConflict(ctx, e.retries, func() error {
		return e.store.Transaction(ctx, func(tx repository.Tx) error {
			board, err := tx.LockBoard(ctx, game.BoardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}
			if board.Status == domain.BoardCompleted {
				return domain.Statef(domain.CodeBoardCompleted, "board %d is COMPLETED", board.ID)
			}

			_, taken, err := tx.FindGameByNumber(ctx, game.BoardID, game.GameNumber)
			if err != nil {
				return fmt.Errorf("tx.FindGameByNumber -> %w", err)
			}
			if taken {
				return domain.Conflictf(domain.CodeGameNumberTaken, "board %d already has game %d", game.BoardID, game.GameNumber)
			}

			created, err = tx.CreateGame(ctx, game)
			if err != nil {
				return fmt.Errorf("tx.CreateGame -> %w", err)
			}

			return nil
		})
	})
	if err != nil {
		return domain.Game{}, err
	}

	return created, nil
}

func (e *ScoringEngine) UpdateScore(ctx context.Context, gameID uint, score1, score2 int, status domain.GameStatus) (ScoringResult, error) {
	if score1 < 0 || score2 < 0 {
		return ScoringResult{}, domain.Validationf(domain.CodeInvalidScore, "scores must not be negative, got %d-%d", score1, score2)
	}
	if !status.Valid() {
		return ScoringResult{}, domain.Validationf(domain.CodeInvalidScore, "unknown game status %q", status)
	}

	var result ScoringResult
	err := retryOnConflict(ctx, e.retries, func() error {
		result = ScoringResult{Payout: decimal.Zero}

		return e.store.Transaction(ctx, func(tx repository.Tx) error {
			game, err := tx.GetGame(ctx, gameID)
			if err != nil {
				return fmt.Errorf("tx.GetGame -> %w", err)
			}

			board, err := tx.LockBoard(ctx, game.BoardID)
			if err != nil {
				return fmt.Errorf("tx.LockBoard -> %w", err)
			}

			// Re-read under the board lock so two completions cannot race.
			game, err = tx.GetGame(ctx, gameID)
			if err != nil {
				return fmt.Errorf("tx.GetGame -> %w", err)
			}
			if game.Status == domain.GameCompleted {
				return domain.Statef(domain.CodeGameAlreadyCompleted, "game %d is already completed", gameID)
			}

			if board.Status == domain.BoardCompleted {
				return domain.Statef(domain.CodeBoardCompleted, "board %d is COMPLETED", board.ID)
			}
			if !board.Status.IsAssigned() {
				return domain.Statef(domain.CodeBoardNotAssigned, "board %d is %s", board.ID, board.Status)
			}
			if !game.Status.CanMoveTo(status) {
				return domain.Statef(domain.CodeInvalidTransition, "game %d cannot move from %s back to %s", gameID, game.Status, status)
			}

			game.Score1 = &score1
			game.Score2 = &score2
			game.Status = status
			game.WinnerSquareID = nil
			game.Payout = decimal.Zero

			if status == domain.GameCompleted {
				winning, losing, _ := game.WinningDigits()

				square, found, err := tx.FindPaidSquareByDigits(ctx, board.ID, winning, losing)
				if err != nil {
					return fmt.Errorf("tx.FindPaidSquareByDigits -> %w", err)
				}
				if found {
					id := square.ID
					game.WinnerSquareID = &id
					game.Payout = board.Payouts.For(game.Round)
					result.WinnerSquare = &square
				}
			}

			updated, err := tx.UpdateGame(ctx, game)
			if err != nil {
				return fmt.Errorf("tx.UpdateGame -> %w", err)
			}
			result.Game = updated
			result.Payout = updated.Payout

			return nil
		})
	})
	if err != nil {
		return ScoringResult{}, err
	}

	game := result.Game
	e.emit.toBoard(game.BoardID, domain.EventScoreUpdate, ScorePayload{Game: game})

	if result.WinnerSquare != nil {
		zap.L().Info("game winner found",
			zap.Uint("board_id", game.BoardID),
			zap.Uint("game_id", game.ID),
			zap.Uint("square_id", result.WinnerSquare.ID),
			zap.String("payout", result.Payout.String()),
		)

		payload := WinnerPayload{Game: game, Square: *result.WinnerSquare, Payout: result.Payout}
		e.emit.toBoard(game.BoardID, domain.EventWinnerAnnounced, payload)
		e.emit.toUser(result.WinnerSquare.OwnerID, game.BoardID, domain.EventWinnerNotification, payload)
	} else if game.Status == domain.GameCompleted {
		zap.L().Info("game completed without a winning square",
			zap.Uint("board_id", game.BoardID),
			zap.Uint("game_id", game.ID),
		)
	}

	return result, nil
}

// ScoringTable lists the board's games ordered by round, then game number.
func (e *ScoringEngine) ScoringTable(ctx context.Context, boardID uint) (domain.ScoringTable, error) {
	var table domain.ScoringTable
	err := e.store.View(ctx, func(tx repository.Tx) error {
		board, err := tx.GetBoard(ctx, boardID)
		if err != nil {
			return fmt.Errorf("tx.GetBoard -> %w", err)
		}

		games, err := tx.ListGames(ctx, boardID)
		if err != nil {
			return fmt.Errorf("tx.ListGames -> %w", err)
		}

		slices.SortStableFunc(games, func(a, b domain.Game) int {
			if d := a.Round.Order() - b.Round.Order(); d != 0 {
				return d
			}
			return a.GameNumber - b.GameNumber
		})

		table = domain.ScoringTable{Board: board, Games: games}
		if table.Games == nil {
			table.Games = []domain.Game{}
		}

		return nil
	})
	if err != nil {
		return domain.ScoringTable{}, err
	}

	return table, nil
}
