package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type GameStatus string

const (
	GameScheduled  GameStatus = "SCHEDULED"
	GameInProgress GameStatus = "IN_PROGRESS"
	GameCompleted  GameStatus = "COMPLETED"
)

func (s GameStatus) Valid() bool {
	switch s {
	case GameScheduled, GameInProgress, GameCompleted:
		return true
	default:
		return false
	}
}

var gameStatusOrder = map[GameStatus]int{
	GameScheduled:  0,
	GameInProgress: 1,
	GameCompleted:  2,
}

// CanMoveTo reports whether a score update may set next. Games may stay in
// their status or move forward, skipping steps, but never move back.
func (s GameStatus) CanMoveTo(next GameStatus) bool {
	from, ok := gameStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := gameStatusOrder[next]

	return ok && to >= from
}

type Game struct {
	ID             uint            `json:"id"`
	BoardID        uint            `json:"boardId"`
	GameNumber     int             `json:"gameNumber"`
	Round          Round           `json:"round"`
	Team1          string          `json:"team1"`
	Team2          string          `json:"team2"`
	Score1         *int            `json:"score1"`
	Score2         *int            `json:"score2"`
	Status         GameStatus      `json:"status"`
	WinnerSquareID *uint           `json:"winnerSquareId"`
	Payout         decimal.Decimal `json:"payout"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// WinningDigits returns score1 mod 10 and score2 mod 10. ok is false until
// both scores are known.
func (g Game) WinningDigits() (winning, losing int, ok bool) {
	if g.Score1 == nil || g.Score2 == nil {
		return 0, 0, false
	}

	return *g.Score1 % 10, *g.Score2 % 10, true
}

// ScoringTable is the per-board view of every game and its winner.
type ScoringTable struct {
	Board Board  `json:"board"`
	Games []Game `json:"games"`
}
