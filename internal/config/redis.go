package config

import "os"

type RedisConfig struct {
	DB       int
	Url      string
	Password string

	// Queue key names. Frontend and worker processes must agree on these.
	RequestQueueKey  string
	ResponseQueueKey string
}

func NewRedisConfig() *RedisConfig {
	url := os.Getenv("REDIS_ADDR")
	if url == "" {
		url = "localhost:6379"
	}
	return &RedisConfig{
		DB:               0,
		Url:              url,
		Password:         os.Getenv("REDIS_PASSWORD"),
		RequestQueueKey:  getEnvStr("REQUEST_QUEUE_KEY", "inferd:requests"),
		ResponseQueueKey: getEnvStr("RESPONSE_QUEUE_KEY", "inferd:responses"),
	}
}
