package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vietanh2810/squares-pool/internal/api"
	"github.com/vietanh2810/squares-pool/internal/broadcast"
	"github.com/vietanh2810/squares-pool/internal/config"
	"github.com/vietanh2810/squares-pool/internal/db"
	"github.com/vietanh2810/squares-pool/internal/logger"
	"github.com/vietanh2810/squares-pool/internal/random"
	"github.com/vietanh2810/squares-pool/internal/repository"
	"github.com/vietanh2810/squares-pool/internal/repository/dao"
	"github.com/vietanh2810/squares-pool/internal/repository/memory"
	"github.com/vietanh2810/squares-pool/internal/service"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}

	config.Watch(configPath, func(c *config.AppConfig) {
		if err := logger.SetLevel(c.API.LogLevel); err != nil {
			zap.L().Warn("ignoring log level from reloaded config", zap.Error(err))
		}
	}, func(err error) {
		zap.L().Warn("failed to reload config", zap.Error(err))
	})

	store, err := openStore(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}

	events := broadcast.New(conf.Pool.EventBuffer)
	defer events.Close()

	perm, err := random.New()
	if err != nil {
		return fmt.Errorf("failed to seed permuter -> %w", err)
	}

	svc := service.NewPoolService(store, events, perm, conf.Pool)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper, err := svc.StartSweeper(ctx)
	if err != nil {
		return fmt.Errorf("failed to start claim sweeper -> %w", err)
	}
	if sweeper != nil {
		defer func() {
			if err := sweeper.Shutdown(); err != nil {
				zap.L().Warn("failed to stop claim sweeper", zap.Error(err))
			}
		}()
	}

	s := api.NewServer(conf, svc, events)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func openStore(conf *config.AppConfig) (repository.Store, error) {
	if conf.Storage.Driver == config.StorageDriverMemory {
		zap.L().Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		postgresDB, err := db.OpenPostgresWithURL(dbURL)
		if err != nil {
			return nil, err
		}
		return repository.NewPoolRepository(dao.NewPoolDAO(postgresDB)), nil
	}

	postgresDB, err := db.OpenPostgres(conf.Postgres)
	if err != nil {
		return nil, err
	}

	return repository.NewPoolRepository(dao.NewPoolDAO(postgresDB)), nil
}
