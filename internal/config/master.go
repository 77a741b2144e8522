package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	DebugMode      bool
	HTTPPort       int
	BatchingConfig *BatchingConfig
	PoolConfig     *PoolConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	ModelConfig    *ModelConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		HTTPPort:       getEnvInt("HTTP_PORT", 8082),
		BatchingConfig: NewBatchingConfig(),
		PoolConfig:     NewPoolConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		ModelConfig:    NewModelConfig(),
	}
}

func getEnvStr(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	varInt, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return varInt
}

// getEnvDuration reads an integer env var and returns it as a bare Duration
// count; callers multiply by the unit the variable name advertises.
func getEnvDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback))
}
