package predictor

import (
	"context"
	"hash/fnv"

	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
)

var _ secondary.Predictor = &StaticPredictor{}

// StaticPredictor is the embedded fallback scorer used when no model server
// is configured. It hashes each sentence into a fixed pseudo-logit row, so
// outputs are deterministic, label coverage is spread across the class set,
// and confidences are a proper distribution. Dev and test only.
type StaticPredictor struct{}

func NewStaticPredictor() *StaticPredictor {
	return &StaticPredictor{}
}

// Predict scores each sentence independently, preserving input order.
func (p *StaticPredictor) Predict(_ context.Context, sentences []string) ([]domain.Prediction, error) {
	predictions := make([]domain.Prediction, len(sentences))
	for i, sentence := range sentences {
		predictions[i] = predictionFromLogits(pseudoLogits(sentence))
	}
	return predictions, nil
}

// pseudoLogits derives one logit per class from an FNV hash of the sentence.
func pseudoLogits(sentence string) []float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sentence))
	sum := h.Sum64()

	logits := make([]float64, domain.NumClasses)
	for i := range logits {
		// Take 8 bits per class and scale into a small logit range.
		b := (sum >> (8 * uint(i))) & 0xff
		logits[i] = float64(b) / 64.0
	}
	return logits
}
