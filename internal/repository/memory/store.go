// Package memory is an in-process Store. Transactions are serialized by a
// single lock and applied to a copy of the state that is swapped in on commit.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/repository"
)

type state struct {
	boards  map[uint]domain.Board
	squares map[uint]domain.Square
	games   map[uint]domain.Game

	nextBoardID  uint
	nextSquareID uint
	nextGameID   uint
}

func newState() *state {
	return &state{
		boards:       make(map[uint]domain.Board),
		squares:      make(map[uint]domain.Square),
		games:        make(map[uint]domain.Game),
		nextBoardID:  1,
		nextSquareID: 1,
		nextGameID:   1,
	}
}

// clone copies the maps. Values are copied by value; pointer fields are never
// mutated in place, only replaced.
func (s *state) clone() *state {
	c := &state{
		boards:       make(map[uint]domain.Board, len(s.boards)),
		squares:      make(map[uint]domain.Square, len(s.squares)),
		games:        make(map[uint]domain.Game, len(s.games)),
		nextBoardID:  s.nextBoardID,
		nextSquareID: s.nextSquareID,
		nextGameID:   s.nextGameID,
	}
	for k, v := range s.boards {
		c.boards[k] = v
	}
	for k, v := range s.squares {
		c.squares[k] = v
	}
	for k, v := range s.games {
		c.games[k] = v
	}

	return c
}

type Store struct {
	mu     sync.Mutex
	state  *state
	now    func() time.Time
	faults map[string]error
}

func NewStore() *Store {
	return &Store{
		state:  newState(),
		now:    time.Now,
		faults: make(map[string]error),
	}
}

// FailNext makes the next call to the named Tx method return err. Used to
// exercise rollback paths.
func (s *Store) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.faults[method] = err
}

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(&tx{st: work, store: s}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.state = work

	return nil
}

func (s *Store) View(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(&tx{st: s.state.clone(), store: s})
}

type tx struct {
	st    *state
	store *Store
}

// fault returns and clears an injected failure. store.mu is already held.
func (t *tx) fault(method string) error {
	err, ok := t.store.faults[method]
	if !ok {
		return nil
	}
	delete(t.store.faults, method)

	return err
}

func boardNotFound() error {
	return domain.NotFoundf(domain.CodeBoardNotFound, "board not found")
}

func (t *tx) CreateBoard(_ context.Context, board domain.Board) (domain.Board, error) {
	if err := t.fault("CreateBoard"); err != nil {
		return domain.Board{}, err
	}

	now := t.store.now()
	board.ID = t.st.nextBoardID
	board.CreatedAt = now
	board.UpdatedAt = now
	t.st.nextBoardID++
	t.st.boards[board.ID] = board

	return board, nil
}

func (t *tx) GetBoard(_ context.Context, boardID uint) (domain.Board, error) {
	if err := t.fault("GetBoard"); err != nil {
		return domain.Board{}, err
	}

	b, ok := t.st.boards[boardID]
	if !ok {
		return domain.Board{}, boardNotFound()
	}

	return b, nil
}

func (t *tx) LockBoard(ctx context.Context, boardID uint) (domain.Board, error) {
	if err := t.fault("LockBoard"); err != nil {
		return domain.Board{}, err
	}

	return t.GetBoard(ctx, boardID)
}

func (t *tx) UpdateBoardStatus(_ context.Context, boardID uint, from, to domain.BoardStatus) (bool, error) {
	if err := t.fault("UpdateBoardStatus"); err != nil {
		return false, err
	}

	if !from.CanTransitionTo(to) {
		return false, domain.Statef(domain.CodeInvalidTransition, "board cannot move from %s to %s", from, to)
	}

	b, ok := t.st.boards[boardID]
	if !ok {
		return false, boardNotFound()
	}
	if b.Status != from {
		return false, nil
	}

	b.Status = to
	b.UpdatedAt = t.store.now()
	t.st.boards[boardID] = b

	return true, nil
}

func (t *tx) SaveBoardAxes(_ context.Context, boardID uint, winningAxis, losingAxis []int) error {
	if err := t.fault("SaveBoardAxes"); err != nil {
		return err
	}

	b, ok := t.st.boards[boardID]
	if !ok {
		return boardNotFound()
	}

	b.WinningAxis = slices.Clone(winningAxis)
	b.LosingAxis = slices.Clone(losingAxis)
	b.UpdatedAt = t.store.now()
	t.st.boards[boardID] = b

	return nil
}

func (t *tx) ListBoardIDsByStatus(_ context.Context, status domain.BoardStatus) ([]uint, error) {
	var ids []uint
	for id, b := range t.st.boards {
		if b.Status == status {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	return ids, nil
}

func (t *tx) countSquares(boardID uint, match func(domain.Square) bool) int {
	n := 0
	for _, s := range t.st.squares {
		if s.BoardID == boardID && match(s) {
			n++
		}
	}

	return n
}

func (t *tx) CountSquares(_ context.Context, boardID uint) (int, error) {
	return t.countSquares(boardID, func(domain.Square) bool { return true }), nil
}

func (t *tx) CountOwnerSquares(_ context.Context, boardID uint, ownerID string) (int, error) {
	return t.countSquares(boardID, func(s domain.Square) bool { return s.OwnerID == ownerID }), nil
}

func (t *tx) CountPaidSquares(_ context.Context, boardID uint) (int, error) {
	return t.countSquares(boardID, domain.Square.IsPaid), nil
}

func (t *tx) CreateSquares(_ context.Context, squares []domain.Square) ([]domain.Square, error) {
	if err := t.fault("CreateSquares"); err != nil {
		return nil, err
	}

	created := make([]domain.Square, len(squares))
	for i, s := range squares {
		if _, ok := t.st.boards[s.BoardID]; !ok {
			return nil, boardNotFound()
		}
		s.ID = t.st.nextSquareID
		t.st.nextSquareID++
		t.st.squares[s.ID] = s
		created[i] = s
	}

	return created, nil
}

func (t *tx) GetSquare(_ context.Context, squareID uint) (domain.Square, error) {
	s, ok := t.st.squares[squareID]
	if !ok {
		return domain.Square{}, domain.NotFoundf(domain.CodeSquareNotFound, "square not found")
	}

	return s, nil
}

func (t *tx) ListSquares(_ context.Context, boardID uint) ([]domain.Square, error) {
	var squares []domain.Square
	for _, s := range t.st.squares {
		if s.BoardID == boardID {
			squares = append(squares, s)
		}
	}
	sort.Slice(squares, func(i, j int) bool {
		if !squares[i].ClaimedAt.Equal(squares[j].ClaimedAt) {
			return squares[i].ClaimedAt.Before(squares[j].ClaimedAt)
		}
		return squares[i].ID < squares[j].ID
	})

	return squares, nil
}

func (t *tx) MarkSquarePaid(_ context.Context, squareID uint, paidAt time.Time) (bool, error) {
	if err := t.fault("MarkSquarePaid"); err != nil {
		return false, err
	}

	s, ok := t.st.squares[squareID]
	if !ok {
		return false, domain.NotFoundf(domain.CodeSquareNotFound, "square not found")
	}
	if s.PaymentStatus != domain.PaymentPending {
		return false, nil
	}

	s.PaymentStatus = domain.PaymentPaid
	s.PaidAt = &paidAt
	t.st.squares[squareID] = s

	return true, nil
}

func (t *tx) AssignSquares(_ context.Context, squares []domain.Square) error {
	if err := t.fault("AssignSquares"); err != nil {
		return err
	}

	// Grid positions are unique per board.
	taken := make(map[uint]map[int]bool)
	for _, s := range t.st.squares {
		if s.GridPosition == nil {
			continue
		}
		if taken[s.BoardID] == nil {
			taken[s.BoardID] = make(map[int]bool)
		}
		taken[s.BoardID][*s.GridPosition] = true
	}

	for _, in := range squares {
		cur, ok := t.st.squares[in.ID]
		if !ok {
			return domain.NotFoundf(domain.CodeSquareNotFound, "square not found")
		}
		if cur.GridPosition != nil || in.GridPosition == nil || taken[cur.BoardID][*in.GridPosition] {
			return domain.Statef(domain.CodeAlreadyAssigned, "square %d already placed on the grid", in.ID)
		}

		if taken[cur.BoardID] == nil {
			taken[cur.BoardID] = make(map[int]bool)
		}
		taken[cur.BoardID][*in.GridPosition] = true
		cur.GridPosition = in.GridPosition
		cur.WinningDigit = in.WinningDigit
		cur.LosingDigit = in.LosingDigit
		t.st.squares[in.ID] = cur
	}

	return nil
}

func (t *tx) DeletePendingSquares(_ context.Context, boardID uint, cutoff time.Time) ([]uint, error) {
	var ids []uint
	for id, s := range t.st.squares {
		if s.BoardID == boardID && s.PaymentStatus == domain.PaymentPending && s.ClaimedAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		delete(t.st.squares, id)
	}

	return ids, nil
}

func (t *tx) FindPaidSquareByDigits(_ context.Context, boardID uint, winningDigit, losingDigit int) (domain.Square, bool, error) {
	for _, s := range t.st.squares {
		if s.BoardID != boardID || !s.IsPaid() || s.WinningDigit == nil || s.LosingDigit == nil {
			continue
		}
		if *s.WinningDigit == winningDigit && *s.LosingDigit == losingDigit {
			return s, true, nil
		}
	}

	return domain.Square{}, false, nil
}

func (t *tx) CreateGame(_ context.Context, game domain.Game) (domain.Game, error) {
	if err := t.fault("CreateGame"); err != nil {
		return domain.Game{}, err
	}

	if _, ok := t.st.boards[game.BoardID]; !ok {
		return domain.Game{}, boardNotFound()
	}
	for _, g := range t.st.games {
		if g.BoardID == game.BoardID && g.GameNumber == game.GameNumber {
			return domain.Game{}, domain.Conflict(nil)
		}
	}

	now := t.store.now()
	game.ID = t.st.nextGameID
	game.CreatedAt = now
	game.UpdatedAt = now
	t.st.nextGameID++
	t.st.games[game.ID] = game

	return game, nil
}

func (t *tx) GetGame(_ context.Context, gameID uint) (domain.Game, error) {
	g, ok := t.st.games[gameID]
	if !ok {
		return domain.Game{}, domain.NotFoundf(domain.CodeGameNotFound, "game not found")
	}

	return g, nil
}

func (t *tx) FindGameByNumber(_ context.Context, boardID uint, gameNumber int) (domain.Game, bool, error) {
	for _, g := range t.st.games {
		if g.BoardID == boardID && g.GameNumber == gameNumber {
			return g, true, nil
		}
	}

	return domain.Game{}, false, nil
}

func (t *tx) UpdateGame(_ context.Context, game domain.Game) (domain.Game, error) {
	if err := t.fault("UpdateGame"); err != nil {
		return domain.Game{}, err
	}

	cur, ok := t.st.games[game.ID]
	if !ok {
		return domain.Game{}, domain.NotFoundf(domain.CodeGameNotFound, "game not found")
	}

	cur.Score1 = game.Score1
	cur.Score2 = game.Score2
	cur.Status = game.Status
	cur.WinnerSquareID = game.WinnerSquareID
	cur.Payout = game.Payout
	cur.UpdatedAt = t.store.now()
	t.st.games[game.ID] = cur

	return cur, nil
}

func (t *tx) ListGames(_ context.Context, boardID uint) ([]domain.Game, error) {
	var games []domain.Game
	for _, g := range t.st.games {
		if g.BoardID == boardID {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameNumber < games[j].GameNumber })

	return games, nil
}
