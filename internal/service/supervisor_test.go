package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/squares-pool/internal/domain"
)

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.createBoard(t)

	claimed, err := f.svc.ClaimSquares(ctx, board.ID, "alice", 2)
	require.NoError(t, err)

	paid, err := f.svc.ConfirmPayment(ctx, claimed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)

	ev, ok := f.events.last(domain.BoardTopic(board.ID), domain.EventPaymentConfirmed)
	require.True(t, ok)
	assert.Equal(t, 1, ev.Payload.(PaymentConfirmedPayload).PaidSquares)
	assert.Equal(t, []domain.EventType{domain.EventPaymentNotification}, f.events.types(domain.UserTopic("alice")))

	summary, err := f.svc.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoardOpen, summary.Status)
	assert.Equal(t, 1, summary.PaidSquares)
	assert.Equal(t, 2, summary.ClaimedSquares)
}

func TestConfirmPayment_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.createBoard(t)

	claimed, err := f.svc.ClaimSquares(ctx, board.ID, "alice", 1)
	require.NoError(t, err)
	_, err = f.svc.ConfirmPayment(ctx, claimed[0].ID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, claimed[0].ID)
	assert.ErrorIs(t, err, domain.ErrState)
	assert.Equal(t, domain.CodeSquareAlreadyPaid, domain.CodeOf(err))

	_, err = f.svc.ConfirmPayment(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.CodeSquareNotFound, domain.CodeOf(err))
}

// A board with 95 paid squares takes five more from a new owner and walks
// OPEN -> FILLED -> ASSIGNED with a full grid.
func TestScenario_LastFiveSquaresFillAndAssign(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.createBoard(t)
	f.claimAndPay(t, board.ID, 95)
	require.Equal(t, domain.BoardOpen, f.board(t, board.ID).Status)

	f.events.reset()

	claimed, err := f.svc.ClaimSquares(ctx, board.ID, "newcomer", 5)
	require.NoError(t, err)
	require.Len(t, claimed, 5)

	for _, s := range claimed {
		_, err = f.svc.ConfirmPayment(ctx, s.ID)
		require.NoError(t, err)
	}

	got := f.board(t, board.ID)
	assert.Equal(t, domain.BoardAssigned, got.Status)
	assert.Len(t, got.WinningAxis, domain.GridSize)
	assert.Len(t, got.LosingAxis, domain.GridSize)

	squares := f.squares(t, board.ID)
	require.Len(t, squares, domain.BoardCapacity)
	seen := make(map[int]bool)
	for _, s := range squares {
		require.NotNil(t, s.GridPosition)
		assert.False(t, seen[*s.GridPosition], "duplicate position %d", *s.GridPosition)
		seen[*s.GridPosition] = true
	}
	assert.Len(t, seen, domain.BoardCapacity)

	types := f.events.types(domain.BoardTopic(board.ID))
	assert.Equal(t, []domain.EventType{
		domain.EventSquareClaimed,
		domain.EventPaymentConfirmed,
		domain.EventPaymentConfirmed,
		domain.EventPaymentConfirmed,
		domain.EventPaymentConfirmed,
		domain.EventPaymentConfirmed,
		domain.EventBoardStatusChange,
		domain.EventBoardAssigned,
	}, types)

	ev, ok := f.events.last(domain.BoardTopic(board.ID), domain.EventBoardStatusChange)
	require.True(t, ok)
	assert.Equal(t, StatusChangePayload{From: domain.BoardOpen, To: domain.BoardFilled}, ev.Payload)
}

func TestReevaluate_FillsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.assignedBoard(t)

	f.events.reset()
	result, err := f.svc.supervisor.Reevaluate(ctx, board.ID)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, f.events.types(domain.BoardTopic(board.ID)))
}

func TestConfirmPayment_ConcurrentLastPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.createBoard(t)
	f.claimAndPay(t, board.ID, 90)

	claimed, err := f.svc.ClaimSquares(ctx, board.ID, "finisher", 10)
	require.NoError(t, err)
	f.events.reset()

	var wg sync.WaitGroup
	for _, s := range claimed {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := f.svc.ConfirmPayment(ctx, id)
			assert.NoError(t, err)
		}(s.ID)
	}
	wg.Wait()

	assert.Equal(t, domain.BoardAssigned, f.board(t, board.ID).Status)

	var filled, assigned int
	for _, typ := range f.events.types(domain.BoardTopic(board.ID)) {
		switch typ {
		case domain.EventBoardStatusChange:
			filled++
		case domain.EventBoardAssigned:
			assigned++
		}
	}
	assert.Equal(t, 1, filled)
	assert.Equal(t, 1, assigned)
}

func TestAssignmentFailure_LeavesBoardFilled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.createBoard(t)
	f.claimAndPay(t, board.ID, 99)

	claimed, err := f.svc.ClaimSquares(ctx, board.ID, "unlucky", 1)
	require.NoError(t, err)

	boom := errors.New("write failed")
	f.store.FailNext("SaveBoardAxes", boom)

	paid, err := f.svc.ConfirmPayment(ctx, claimed[0].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.PaymentPaid, paid.PaymentStatus)

	got := f.board(t, board.ID)
	assert.Equal(t, domain.BoardFilled, got.Status)
	assert.Empty(t, got.WinningAxis)
	for _, s := range f.squares(t, board.ID) {
		assert.Nil(t, s.GridPosition, "square %d kept a partial assignment", s.ID)
	}

	_, err = f.svc.ClaimSquares(ctx, board.ID, "someone", 1)
	assert.Equal(t, domain.CodeBoardNotOpen, domain.CodeOf(err))

	result, err := f.svc.TriggerAssignment(ctx, board.ID)
	require.NoError(t, err)
	assert.Len(t, result.Squares, domain.BoardCapacity)
	assert.Equal(t, domain.BoardAssigned, f.board(t, board.ID).Status)
}

func TestTriggerAssignment_RecoversMissedFill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	board := f.createBoard(t)
	f.claimAndPay(t, board.ID, 99)

	claimed, err := f.svc.ClaimSquares(ctx, board.ID, "last", 1)
	require.NoError(t, err)

	// The payment commits but the fill check never runs.
	f.store.FailNext("UpdateBoardStatus", errors.New("connection reset"))
	_, err = f.svc.ConfirmPayment(ctx, claimed[0].ID)
	require.Error(t, err)
	assert.Equal(t, domain.BoardOpen, f.board(t, board.ID).Status)

	_, err = f.svc.TriggerAssignment(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoardAssigned, f.board(t, board.ID).Status)
}

func TestTriggerAssignment_OpenBoard(t *testing.T) {
	f := newFixture(t)
	board := f.createBoard(t)
	f.claimAndPay(t, board.ID, 40)

	_, err := f.svc.TriggerAssignment(context.Background(), board.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrState)
	assert.Equal(t, domain.CodeBoardNotFilled, domain.CodeOf(err))
}

func TestTournamentSignals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	open := f.createBoard(t)
	_, err := f.svc.StartTournament(ctx, open.ID)
	assert.ErrorIs(t, err, domain.ErrState)
	assert.Equal(t, domain.CodeInvalidTransition, domain.CodeOf(err))

	_, err = f.svc.EndTournament(ctx, open.ID)
	assert.Equal(t, domain.CodeInvalidTransition, domain.CodeOf(err))

	board := f.assignedBoard(t)
	f.events.reset()

	_, err = f.svc.EndTournament(ctx, board.ID)
	assert.Equal(t, domain.CodeInvalidTransition, domain.CodeOf(err))

	started, err := f.svc.StartTournament(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoardActive, started.Status)

	_, err = f.svc.StartTournament(ctx, board.ID)
	assert.Equal(t, domain.CodeInvalidTransition, domain.CodeOf(err))

	ended, err := f.svc.EndTournament(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoardCompleted, ended.Status)

	assert.Equal(t, []domain.EventType{domain.EventBoardStatusChange, domain.EventBoardStatusChange},
		f.events.types(domain.BoardTopic(board.ID)))

	ev, _ := f.events.last(domain.BoardTopic(board.ID), domain.EventBoardStatusChange)
	assert.Equal(t, StatusChangePayload{From: domain.BoardActive, To: domain.BoardCompleted}, ev.Payload)

	_, err = f.svc.StartTournament(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvance_RejectsNonSignalStatus(t *testing.T) {
	f := newFixture(t)
	board := f.createBoard(t)

	_, err := f.svc.supervisor.Advance(context.Background(), board.ID, domain.BoardFilled)
	assert.Equal(t, domain.CodeInvalidTransition, domain.CodeOf(err))
}
