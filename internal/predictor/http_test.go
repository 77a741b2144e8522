package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/inferd-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func TestHTTPPredictor_Predict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)

		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "./multi_base", req.Model)

		// One logit row per sentence; second class dominant for the second.
		logits := make([][]float64, len(req.Sentences))
		for i := range req.Sentences {
			logits[i] = []float64{2.0, 0.1, 0.1}
		}
		if len(logits) > 1 {
			logits[1] = []float64{0.1, 3.0, 0.1}
		}
		_ = json.NewEncoder(w).Encode(predictResponse{Logits: logits})
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, "./multi_base", nopLogger{})
	preds, err := p.Predict(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Len(t, preds, 2)

	assert.Equal(t, domain.ClassNone, preds[0].Class)
	assert.Equal(t, domain.ClassProduct, preds[1].Class)
	for _, pred := range preds {
		assert.GreaterOrEqual(t, pred.Confidence, 0.0)
		assert.LessOrEqual(t, pred.Confidence, 1.0)
	}
}

func TestHTTPPredictor_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(predictResponse{Error: "model not loaded"})
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, "./multi_base", nopLogger{})
	preds, err := p.Predict(context.Background(), []string{"x"})
	assert.Nil(t, preds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestHTTPPredictor_RowCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(predictResponse{Logits: [][]float64{{1, 0, 0}}})
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, "./multi_base", nopLogger{})
	_, err := p.Predict(context.Background(), []string{"a", "b", "c"})
	require.Error(t, err)
}

func TestStaticPredictor_DeterministicAndOrdered(t *testing.T) {
	p := NewStaticPredictor()
	sentences := []string{"Hello", "some product name", "Hello"}

	first, err := p.Predict(context.Background(), sentences)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := p.Predict(context.Background(), sentences)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same inputs must score identically")
	assert.Equal(t, first[0], first[2], "same sentence must score identically at any position")

	for _, pred := range first {
		assert.Contains(t, []domain.ClassLabel{domain.ClassNone, domain.ClassProduct, domain.ClassSeries}, pred.Class)
		assert.GreaterOrEqual(t, pred.Confidence, 0.0)
		assert.LessOrEqual(t, pred.Confidence, 1.0)
	}
}
