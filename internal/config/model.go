package config

import "os"

// ModelConfig locates the predictor backing a worker. When ServerURL is set
// the worker calls an external model server; otherwise it falls back to the
// embedded scorer (dev and test only).
type ModelConfig struct {
	// ServerURL is the base URL of the model server, e.g. http://localhost:9000.
	ServerURL string
	// ModelPath is forwarded to the model server so it knows which fine-tuned
	// weights to serve.
	ModelPath string
}

func NewModelConfig() *ModelConfig {
	path := os.Getenv("MODEL_PATH")
	if path == "" {
		path = "./multi_base"
	}
	return &ModelConfig{
		ServerURL: os.Getenv("MODEL_SERVER_URL"),
		ModelPath: path,
	}
}
