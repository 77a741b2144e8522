package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
)

var _ secondary.Predictor = &HTTPPredictor{}

const defaultRequestTimeout = 25 * time.Second

// HTTPPredictor calls an out-of-process model server that serves the
// fine-tuned classification head. The server returns raw logits; softmax and
// argmax happen here so the serving contract stays the model's class
// distribution.
type HTTPPredictor struct {
	baseURL    string
	modelPath  string
	httpClient *http.Client
	logger     primary.Logger
}

// NewHTTPPredictor creates a predictor backed by the model server at baseURL.
func NewHTTPPredictor(baseURL, modelPath string, logger primary.Logger) *HTTPPredictor {
	return &HTTPPredictor{
		baseURL:   baseURL,
		modelPath: modelPath,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		logger: logger,
	}
}

type predictRequest struct {
	Model     string   `json:"model"`
	Sentences []string `json:"sentences"`
}

type predictResponse struct {
	Logits [][]float64 `json:"logits"`
	Error  string      `json:"error,omitempty"`
}

// Predict sends the whole batch to the model server and reduces each row of
// logits to a prediction, preserving input order.
func (p *HTTPPredictor) Predict(ctx context.Context, sentences []string) ([]domain.Prediction, error) {
	body, err := json.Marshal(predictRequest{Model: p.modelPath, Sentences: sentences})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("Model server unreachable", "url", p.baseURL, "error", err)
		return nil, fmt.Errorf("model server unreachable: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read predict response: %w", err)
	}

	var out predictResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		p.logger.Error("Model server rejected batch", "status", res.StatusCode, "serverError", out.Error)
		if out.Error != "" {
			return nil, fmt.Errorf("model server error: %s", out.Error)
		}
		return nil, fmt.Errorf("model server returned status %d", res.StatusCode)
	}

	if len(out.Logits) != len(sentences) {
		p.logger.Error("Model server row count mismatch", "rows", len(out.Logits), "sentences", len(sentences))
		return nil, fmt.Errorf("model server returned %d rows for %d sentences", len(out.Logits), len(sentences))
	}

	predictions := make([]domain.Prediction, len(out.Logits))
	for i, logits := range out.Logits {
		predictions[i] = predictionFromLogits(logits)
	}
	return predictions, nil
}
