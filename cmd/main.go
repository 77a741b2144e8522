package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/inferd-2025.net/internal/adapter/memqueue"
	"gitlab.com/inferd-2025.net/internal/adapter/postgres/requestlog"
	"gitlab.com/inferd-2025.net/internal/adapter/redis/queueport"
	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/core/services/dispatch"
	logger2 "gitlab.com/inferd-2025.net/internal/global/logger"
	http2 "gitlab.com/inferd-2025.net/internal/http"
	"gitlab.com/inferd-2025.net/internal/predictor"
	"gitlab.com/inferd-2025.net/internal/workerpool"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting inference frontend")

	logger := logger2.Logger
	defer logger.Sync()

	sysCfg := config.NewSystemConfig()

	var queues secondary.QueuePair
	var pool *workerpool.Pool

	switch sysCfg.PoolConfig.Mode {
	case config.PoolModeProcess:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     sysCfg.RedisConfig.Url,
			Password: sysCfg.RedisConfig.Password,
			DB:       sysCfg.RedisConfig.DB,
		})
		queues = queueport.NewQueuePair(
			redisClient,
			sysCfg.RedisConfig.RequestQueueKey,
			sysCfg.RedisConfig.ResponseQueueKey,
			logger,
		)
		pool = workerpool.NewProcessPool(sysCfg.PoolConfig, logger)
	default:
		memQueues := memqueue.NewQueuePair(0)
		queues = memQueues
		pool = workerpool.NewInlinePool(
			sysCfg.PoolConfig,
			sysCfg.BatchingConfig,
			memQueues,
			func(workerID int) secondary.Predictor {
				return buildPredictor(sysCfg.ModelConfig)
			},
			logger,
		)
	}

	var auditRepo secondary.RequestLogRepository
	if sysCfg.PostgresConfig.Enabled() {
		db, err := setupDatabase(sysCfg.PostgresConfig.Url)
		if err != nil {
			panic(err)
		}
		defer db.Close()
		auditRepo = requestlog.NewRequestLogRepository(db, logger)
	}

	dispatcher := dispatch.NewDispatcherService(queues, auditRepo, sysCfg.BatchingConfig, logger)

	serviceProvider := http2.NewServiceProvider(dispatcher, pool, auditRepo)
	httServer := http2.NewServer(sysCfg.HTTPPort, "inferd", *serviceProvider, logger)
	if err := httServer.Init(); err != nil {
		panic(err)
	}

	ctxBg := context.Background()
	pool.Start(ctxBg)
	dispatcher.Start(ctxBg)
	httServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 10*time.Second)
	defer cancel()
	httServer.Stop(ctx)
	dispatcher.Stop()
	pool.Stop()

	logger.Info("successfully shutdown server")
}

// buildPredictor picks the model-server client when one is configured and
// falls back to the embedded scorer otherwise.
func buildPredictor(cfg *config.ModelConfig) secondary.Predictor {
	if cfg.ServerURL != "" {
		return predictor.NewHTTPPredictor(cfg.ServerURL, cfg.ModelPath, logger2.Logger)
	}
	logger2.Warn("MODEL_SERVER_URL not set, using embedded scorer")
	return predictor.NewStaticPredictor()
}

// setupDatabase sets up the PostgreSQL connection for the audit log
func setupDatabase(connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	if len(os.Args) < 2 {
		// No environment argument: rely on the ambient process environment.
		return
	}
	environment := os.Args[1]
	if err := godotenv.Load(environment + ".env"); err != nil {
		logger2.Warn("Failed to load env file", "file", environment+".env", "error", err)
	}
}
