package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"gitlab.com/inferd-2025.net/internal/adapter/redis/queueport"
	"gitlab.com/inferd-2025.net/internal/affinity"
	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/core/services/batching"
	logger2 "gitlab.com/inferd-2025.net/internal/global/logger"
	"gitlab.com/inferd-2025.net/internal/predictor"
)

// The worker process: pins itself to its core, builds its own predictor once,
// and drains the shared redis request queue until terminated. Spawned and
// supervised by the frontend's worker pool.
func main() {
	if len(os.Args) >= 2 {
		if err := godotenv.Load(os.Args[1] + ".env"); err != nil {
			logger2.Warn("Failed to load env file", "file", os.Args[1]+".env", "error", err)
		}
	}

	workerID, err := strconv.Atoi(os.Getenv("WORKER_ID"))
	if err != nil {
		logger2.Error("WORKER_ID not set or invalid", "error", err)
		os.Exit(2)
	}

	logger := logger2.Logger.Named("worker-" + strconv.Itoa(workerID))
	defer logger.Sync()

	sysCfg := config.NewSystemConfig()

	if sysCfg.PoolConfig.PinCores {
		if !affinity.Supported() {
			logger.Warn("CPU affinity not supported on this platform, skipping pinning", "workerId", workerID)
		} else if err := affinity.Pin(workerID); err != nil {
			logger.Warn("Failed to pin worker to core", "workerId", workerID, "error", err)
		} else {
			logger.Info("Pinned worker to core", "workerId", workerID, "core", workerID)
		}
	}

	logger.Info("Loading model", "workerId", workerID, "modelPath", sysCfg.ModelConfig.ModelPath)
	pred := buildPredictor(sysCfg.ModelConfig)
	logger.Info("Model loaded successfully", "workerId", workerID)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	queues := queueport.NewQueuePair(
		redisClient,
		sysCfg.RedisConfig.RequestQueueKey,
		sysCfg.RedisConfig.ResponseQueueKey,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	loop := batching.NewBatchingService(workerID, queues, pred, sysCfg.BatchingConfig, logger)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Batching loop exited", "workerId", workerID, "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped", "workerId", workerID)
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
