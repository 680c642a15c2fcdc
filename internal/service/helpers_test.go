package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/squares-pool/internal/config"
	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/random"
	"github.com/vietanh2810/squares-pool/internal/repository"
	"github.com/vietanh2810/squares-pool/internal/repository/memory"
)

type published struct {
	topic string
	event domain.Event
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(topic string, event domain.Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, published{topic: topic, event: event})

	return 1
}

func (r *recorder) types(topic string) []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	var types []domain.EventType
	for _, p := range r.events {
		if p.topic == topic {
			types = append(types, p.event.Type)
		}
	}

	return types
}

func (r *recorder) last(topic string, typ domain.EventType) (domain.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].topic == topic && r.events[i].event.Type == typ {
			return r.events[i].event, true
		}
	}

	return domain.Event{}, false
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}

// fakeClock ticks one millisecond per reading so claims get distinct times.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(time.Millisecond)

	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

type fixture struct {
	svc    *PoolService
	store  *memory.Store
	events *recorder
	clock  *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	return newFixtureWith(t, random.NewSeeded(2026), &config.PoolConfig{ConflictRetries: 5})
}

func newFixtureWith(t *testing.T, perm random.Permuter, conf *config.PoolConfig) *fixture {
	t.Helper()

	f := &fixture{
		store:  memory.NewStore(),
		events: &recorder{},
		clock:  newFakeClock(),
	}
	f.svc = newPoolService(f.store, f.events, perm, conf, f.clock.Now)

	return f
}

var testPayouts = domain.PayoutStructure{
	RoundOne:     decimal.NewFromInt(25),
	RoundTwo:     decimal.NewFromInt(50),
	SweetSixteen: decimal.NewFromInt(100),
	EliteEight:   decimal.NewFromInt(200),
	FinalFour:    decimal.NewFromInt(400),
	Championship: decimal.NewFromInt(1000),
}

func (f *fixture) createBoard(t *testing.T) domain.Board {
	t.Helper()

	board, err := f.svc.CreateBoard(context.Background(), domain.Board{
		Name:           "Office Bracket",
		PricePerSquare: decimal.NewFromInt(20),
		Payouts:        testPayouts,
	})
	require.NoError(t, err)

	return board
}

func ownerName(i int) string {
	return fmt.Sprintf("owner-%02d", i)
}

// claimAndPay claims n squares across owners of ten squares each and pays for
// all of them.
func (f *fixture) claimAndPay(t *testing.T, boardID uint, n int) []domain.Square {
	t.Helper()

	ctx := context.Background()
	var squares []domain.Square
	for owner := 0; n > 0; owner++ {
		count := min(n, domain.MaxSquaresPerOwner)
		claimed, err := f.svc.ClaimSquares(ctx, boardID, ownerName(owner), count)
		require.NoError(t, err)
		squares = append(squares, claimed...)
		n -= count
	}

	for i, s := range squares {
		paid, err := f.svc.ConfirmPayment(ctx, s.ID)
		require.NoError(t, err)
		squares[i] = paid
	}

	return squares
}

func (f *fixture) assignedBoard(t *testing.T) domain.Board {
	t.Helper()

	board := f.createBoard(t)
	f.claimAndPay(t, board.ID, domain.BoardCapacity)

	summary, err := f.svc.GetBoard(context.Background(), board.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BoardAssigned, summary.Status)

	return summary.Board
}

func (f *fixture) squares(t *testing.T, boardID uint) []domain.Square {
	t.Helper()

	squares, err := f.svc.ListSquares(context.Background(), boardID)
	require.NoError(t, err)

	return squares
}

func (f *fixture) board(t *testing.T, boardID uint) domain.Board {
	t.Helper()

	var board domain.Board
	err := f.store.View(context.Background(), func(tx repository.Tx) error {
		var err error
		board, err = tx.GetBoard(context.Background(), boardID)
		return err
	})
	require.NoError(t, err)

	return board
}

// scripted returns the queued permutations in order.
type scripted struct {
	mu    sync.Mutex
	perms [][]int
}

func (s *scripted) Perm(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.perms[0]
	s.perms = s.perms[1:]
	if len(p) != n {
		panic(fmt.Sprintf("scripted: want %d, have %d", n, len(p)))
	}

	return p
}

func reversed(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = n - 1 - i
	}

	return p
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}
