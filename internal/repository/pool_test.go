package repository_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/squares-pool/internal/config"
	"github.com/vietanh2810/squares-pool/internal/db"
	"github.com/vietanh2810/squares-pool/internal/domain"
	"github.com/vietanh2810/squares-pool/internal/random"
	"github.com/vietanh2810/squares-pool/internal/repository"
	"github.com/vietanh2810/squares-pool/internal/repository/dao"
	"github.com/vietanh2810/squares-pool/internal/service"
)

// testDB stays nil when docker is unavailable; tests then skip.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping postgres tests: %v", err)
		os.Exit(m.Run())
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("skipping postgres tests: docker is not reachable: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=pool",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=squares",
			"listen_addresses = '*'",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(180)

	url := fmt.Sprintf("postgres://pool:secret@%s/squares?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		var err error
		testDB, err = db.OpenPostgresWithURL(url)
		return err
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres: %v", err)
	}

	os.Exit(code)
}

func newRepo(t *testing.T) *repository.PoolRepository {
	t.Helper()

	if testDB == nil {
		t.Skip("postgres is not available")
	}

	return repository.NewPoolRepository(dao.NewPoolDAO(testDB))
}

type discard struct{}

func (discard) Publish(string, domain.Event) int { return 0 }

func newService(t *testing.T, retries int) *service.PoolService {
	t.Helper()

	return service.NewPoolService(newRepo(t), discard{}, random.NewSeeded(99), &config.PoolConfig{ConflictRetries: retries})
}

func createBoard(t *testing.T, svc *service.PoolService) domain.Board {
	t.Helper()

	board, err := svc.CreateBoard(context.Background(), domain.Board{
		Name:           "Integration Bracket",
		PricePerSquare: decimal.RequireFromString("12.50"),
		Payouts: domain.PayoutStructure{
			RoundOne:     decimal.NewFromInt(25),
			RoundTwo:     decimal.NewFromInt(50),
			SweetSixteen: decimal.NewFromInt(100),
			EliteEight:   decimal.NewFromInt(200),
			FinalFour:    decimal.NewFromInt(400),
			Championship: decimal.NewFromInt(1000),
		},
	})
	require.NoError(t, err)

	return board
}

func TestPoolRepository_BoardRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := newService(t, 5)
	board := createBoard(t, svc)

	var got domain.Board
	err := repo.View(ctx, func(tx repository.Tx) error {
		var err error
		got, err = tx.GetBoard(ctx, board.ID)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BoardOpen, got.Status)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.PricePerSquare))
	assert.True(t, decimal.NewFromInt(400).Equal(got.Payouts.FinalFour))
	assert.Empty(t, got.WinningAxis)

	err = repo.View(ctx, func(tx repository.Tx) error {
		_, err := tx.GetBoard(ctx, board.ID+10_000)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.CodeBoardNotFound, domain.CodeOf(err))
}

func TestInitTables_IsRepeatableAndCascades(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, dao.DropTables(testDB))
	require.NoError(t, dao.InitTables(testDB))
	require.NoError(t, dao.InitTables(testDB))
	assert.True(t, testDB.Migrator().HasConstraint(&dao.Square{}, "fk_squares_board"))
	assert.True(t, testDB.Migrator().HasConstraint(&dao.Game{}, "fk_games_board"))

	board := createBoard(t, newService(t, 5))
	err := repo.Transaction(ctx, func(tx repository.Tx) error {
		_, err := tx.CreateSquares(ctx, []domain.Square{{
			BoardID:       board.ID,
			OwnerID:       "cascade",
			PaymentStatus: domain.PaymentPending,
			ClaimedAt:     time.Now(),
		}})
		return err
	})
	require.NoError(t, err)

	require.NoError(t, testDB.Delete(&dao.Board{}, board.ID).Error)

	var left int64
	require.NoError(t, testDB.Model(&dao.Square{}).Where("board_id = ?", board.ID).Count(&left).Error)
	assert.Zero(t, left)
}

func TestPoolRepository_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	board := createBoard(t, newService(t, 5))

	err := repo.Transaction(ctx, func(tx repository.Tx) error {
		if _, err := tx.CreateSquares(ctx, []domain.Square{{
			BoardID:       board.ID,
			OwnerID:       "rollback",
			PaymentStatus: domain.PaymentPending,
			ClaimedAt:     time.Now(),
		}}); err != nil {
			return err
		}

		return domain.Statef(domain.CodeBoardNotOpen, "abort")
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeBoardNotOpen, domain.CodeOf(err))

	err = repo.View(ctx, func(tx repository.Tx) error {
		n, err := tx.CountSquares(ctx, board.ID)
		assert.Zero(t, n)
		return err
	})
	require.NoError(t, err)
}

func TestPoolRepository_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 5)
	board := createBoard(t, svc)

	var squares []domain.Square
	for i := range 10 {
		claimed, err := svc.ClaimSquares(ctx, board.ID, fmt.Sprintf("pg-owner-%d", i), 10)
		require.NoError(t, err)
		squares = append(squares, claimed...)
	}
	for _, s := range squares {
		_, err := svc.ConfirmPayment(ctx, s.ID)
		require.NoError(t, err)
	}

	summary, err := svc.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoardAssigned, summary.Status)
	assert.Len(t, summary.WinningAxis, domain.GridSize)
	assert.Len(t, summary.LosingAxis, domain.GridSize)

	listed, err := svc.ListSquares(ctx, board.ID)
	require.NoError(t, err)
	positions := make(map[int]bool)
	for _, s := range listed {
		require.NotNil(t, s.GridPosition)
		positions[*s.GridPosition] = true
		assert.Equal(t, summary.WinningAxis[s.Column()], *s.WinningDigit)
		assert.Equal(t, summary.LosingAxis[s.Row()], *s.LosingDigit)
	}
	assert.Len(t, positions, domain.BoardCapacity)

	_, err = svc.TriggerAssignment(ctx, board.ID)
	assert.Equal(t, domain.CodeAlreadyAssigned, domain.CodeOf(err))

	game, err := svc.CreateGame(ctx, domain.Game{BoardID: board.ID, GameNumber: 1, Round: domain.RoundTwo, Team1: "Duke", Team2: "UNC"})
	require.NoError(t, err)

	_, err = svc.CreateGame(ctx, domain.Game{BoardID: board.ID, GameNumber: 1, Round: domain.RoundTwo, Team1: "Duke", Team2: "UNC"})
	assert.Equal(t, domain.CodeGameNumberTaken, domain.CodeOf(err))

	result, err := svc.UpdateGameScore(ctx, game.ID, 78, 74, domain.GameCompleted)
	require.NoError(t, err)
	require.NotNil(t, result.WinnerSquare)
	assert.Equal(t, 8, *result.WinnerSquare.WinningDigit)
	assert.Equal(t, 4, *result.WinnerSquare.LosingDigit)
	assert.True(t, decimal.NewFromInt(50).Equal(result.Payout))

	table, err := svc.GetScoringTable(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, table.Games, 1)
	assert.Equal(t, result.WinnerSquare.ID, *table.Games[0].WinnerSquareID)
}

func TestPoolRepository_ConcurrentClaimsHoldCapacity(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, 25)
	board := createBoard(t, svc)

	const owners = 15

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := range owners {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := svc.ClaimSquares(ctx, board.ID, fmt.Sprintf("racer-%d", i), 10)
			if err != nil {
				assert.Equal(t, domain.CodeBoardFull, domain.CodeOf(err), "racer-%d: %v", i, err)
				return
			}

			mu.Lock()
			accepted++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)

	summary, err := svc.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BoardCapacity, summary.ClaimedSquares)
}
