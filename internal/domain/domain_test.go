package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBoardStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BoardStatus
		want     bool
	}{
		{BoardOpen, BoardFilled, true},
		{BoardFilled, BoardAssigned, true},
		{BoardAssigned, BoardActive, true},
		{BoardActive, BoardCompleted, true},
		{BoardOpen, BoardAssigned, false},
		{BoardFilled, BoardOpen, false},
		{BoardCompleted, BoardOpen, false},
		{BoardAssigned, BoardAssigned, false},
		{BoardOpen, BoardStatus("CANCELLED"), false},
		{BoardStatus("CANCELLED"), BoardFilled, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBoardStatus_IsAssigned(t *testing.T) {
	assert.False(t, BoardOpen.IsAssigned())
	assert.False(t, BoardFilled.IsAssigned())
	assert.True(t, BoardAssigned.IsAssigned())
	assert.True(t, BoardActive.IsAssigned())
	assert.True(t, BoardCompleted.IsAssigned())
}

func TestGameStatus_CanMoveTo(t *testing.T) {
	assert.True(t, GameScheduled.CanMoveTo(GameScheduled))
	assert.True(t, GameScheduled.CanMoveTo(GameInProgress))
	assert.True(t, GameScheduled.CanMoveTo(GameCompleted))
	assert.True(t, GameInProgress.CanMoveTo(GameInProgress))
	assert.True(t, GameInProgress.CanMoveTo(GameCompleted))
	assert.False(t, GameInProgress.CanMoveTo(GameScheduled))
	assert.False(t, GameCompleted.CanMoveTo(GameInProgress))
	assert.False(t, GameScheduled.CanMoveTo(GameStatus("POSTPONED")))
}

func TestRound(t *testing.T) {
	for i, r := range Rounds {
		assert.True(t, r.Valid())
		assert.Equal(t, i, r.Order())
	}
	assert.False(t, Round("FIRST_FOUR").Valid())
	assert.Equal(t, -1, Round("").Order())
}

func TestPayoutStructure_For(t *testing.T) {
	p := PayoutStructure{
		RoundOne:     decimal.NewFromInt(1),
		RoundTwo:     decimal.NewFromInt(2),
		SweetSixteen: decimal.NewFromInt(3),
		EliteEight:   decimal.NewFromInt(4),
		FinalFour:    decimal.NewFromInt(5),
		Championship: decimal.NewFromInt(6),
	}

	for i, r := range Rounds {
		assert.True(t, decimal.NewFromInt(int64(i+1)).Equal(p.For(r)), "round %s", r)
	}
	assert.True(t, p.For("FIRST_FOUR").IsZero())
}

func TestGame_WinningDigits(t *testing.T) {
	score := func(v int) *int { return &v }

	_, _, ok := Game{}.WinningDigits()
	assert.False(t, ok)

	_, _, ok = Game{Score1: score(70)}.WinningDigits()
	assert.False(t, ok)

	w, l, ok := Game{Score1: score(78), Score2: score(74)}.WinningDigits()
	assert.True(t, ok)
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, l)

	// The first score is the winning axis even when it is the lower one.
	w, l, ok = Game{Score1: score(61), Score2: score(103)}.WinningDigits()
	assert.True(t, ok)
	assert.Equal(t, 1, w)
	assert.Equal(t, 3, l)
}

func TestSquare_RowColumn(t *testing.T) {
	var s Square
	assert.Equal(t, -1, s.Row())
	assert.Equal(t, -1, s.Column())
	assert.False(t, s.IsAssigned())

	p := 47
	s.GridPosition = &p
	assert.True(t, s.IsAssigned())
	assert.Equal(t, 4, s.Row())
	assert.Equal(t, 7, s.Column())
}

func TestError(t *testing.T) {
	err := fmt.Errorf("tx.CreateSquares -> %w", Capacityf(CodeBoardFull, "board has %d squares", 100))

	assert.ErrorIs(t, err, ErrCapacity)
	assert.NotErrorIs(t, err, ErrState)
	assert.ErrorIs(t, err, &Error{Code: CodeBoardFull})
	assert.NotErrorIs(t, err, &Error{Code: CodeSquareLimitExceeded})
	assert.Equal(t, CodeBoardFull, CodeOf(err))
	assert.Equal(t, "tx.CreateSquares -> capacity error: BOARD_FULL: board has 100 squares", err.Error())

	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestError_Cause(t *testing.T) {
	cause := errors.New("could not serialize access")
	err := Conflict(cause)

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryable(fmt.Errorf("wrapped -> %w", err)))

	assert.False(t, IsRetryable(Conflictf(CodeGameNumberTaken, "game 3 exists")))
	assert.False(t, IsRetryable(errors.New("plain")))

	internal := Internal(CodeAssignmentWriteFailure, cause)
	assert.ErrorIs(t, internal, ErrInternal)
	assert.ErrorIs(t, internal, cause)
	assert.Contains(t, internal.Error(), "could not serialize access")
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "board:12", BoardTopic(12))
	assert.Equal(t, "user:alice", UserTopic("alice"))
}
