package predictor

import (
	"math"

	"gitlab.com/inferd-2025.net/internal/domain"
)

// softmax converts logits to a probability distribution. Shifted by the max
// logit for numerical stability.
func softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}

	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(v - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// argmax returns the index of the largest probability.
func argmax(probs []float64) int {
	best := 0
	for i, v := range probs {
		if v > probs[best] {
			best = i
		}
	}
	return best
}

// predictionFromLogits reduces one row of logits to the winning label and its
// confidence.
func predictionFromLogits(logits []float64) domain.Prediction {
	probs := softmax(logits)
	idx := argmax(probs)
	return domain.Prediction{
		Class:      domain.LabelForIndex(idx),
		Confidence: probs[idx],
	}
}
