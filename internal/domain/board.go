package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// GridSize is the number of digits on each axis of the board.
	GridSize = 10

	// BoardCapacity is the total number of squares a board can hold.
	BoardCapacity = GridSize * GridSize

	// MaxSquaresPerOwner is the per-owner claim limit on a single board.
	MaxSquaresPerOwner = 10
)

type BoardStatus string

const (
	BoardOpen      BoardStatus = "OPEN"
	BoardFilled    BoardStatus = "FILLED"
	BoardAssigned  BoardStatus = "ASSIGNED"
	BoardActive    BoardStatus = "ACTIVE"
	BoardCompleted BoardStatus = "COMPLETED"
)

var boardStatusOrder = map[BoardStatus]int{
	BoardOpen:      0,
	BoardFilled:    1,
	BoardAssigned:  2,
	BoardActive:    3,
	BoardCompleted: 4,
}

func (s BoardStatus) Valid() bool {
	_, ok := boardStatusOrder[s]
	return ok
}

// CanTransitionTo reports whether next is the single step after s.
// Statuses never move backwards and never skip a step.
func (s BoardStatus) CanTransitionTo(next BoardStatus) bool {
	from, ok := boardStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := boardStatusOrder[next]
	if !ok {
		return false
	}

	return to == from+1
}

// IsAssigned reports whether the board's grid and axes have been fixed.
func (s BoardStatus) IsAssigned() bool {
	return boardStatusOrder[s] >= boardStatusOrder[BoardAssigned]
}

type Round string

const (
	RoundOne     Round = "ROUND1"
	RoundTwo     Round = "ROUND2"
	SweetSixteen Round = "SWEET16"
	EliteEight   Round = "ELITE8"
	FinalFour    Round = "FINAL4"
	Championship Round = "CHAMPIONSHIP"
)

// Rounds lists every tournament round in bracket order.
var Rounds = []Round{RoundOne, RoundTwo, SweetSixteen, EliteEight, FinalFour, Championship}

func (r Round) Valid() bool {
	return r.Order() >= 0
}

// Order is the zero-based bracket position of the round, -1 when unknown.
func (r Round) Order() int {
	for i, round := range Rounds {
		if round == r {
			return i
		}
	}

	return -1
}

// PayoutStructure maps each round to the amount paid to the winning square of
// any game in that round.
type PayoutStructure struct {
	RoundOne     decimal.Decimal `json:"ROUND1"`
	RoundTwo     decimal.Decimal `json:"ROUND2"`
	SweetSixteen decimal.Decimal `json:"SWEET16"`
	EliteEight   decimal.Decimal `json:"ELITE8"`
	FinalFour    decimal.Decimal `json:"FINAL4"`
	Championship decimal.Decimal `json:"CHAMPIONSHIP"`
}

func (p PayoutStructure) For(r Round) decimal.Decimal {
	switch r {
	case RoundOne:
		return p.RoundOne
	case RoundTwo:
		return p.RoundTwo
	case SweetSixteen:
		return p.SweetSixteen
	case EliteEight:
		return p.EliteEight
	case FinalFour:
		return p.FinalFour
	case Championship:
		return p.Championship
	default:
		return decimal.Zero
	}
}

type Board struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	PricePerSquare decimal.Decimal `json:"pricePerSquare"`
	Status         BoardStatus     `json:"status"`
	Payouts        PayoutStructure `json:"payoutStructure"`
	WinningAxis    []int           `json:"winningAxis,omitempty"`
	LosingAxis     []int           `json:"losingAxis,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BoardSummary is a board together with its claim and payment counters.
type BoardSummary struct {
	Board
	ClaimedSquares int `json:"claimedSquares"`
	PaidSquares    int `json:"paidSquares"`
}
