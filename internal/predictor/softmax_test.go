package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/inferd-2025.net/internal/domain"
)

func TestSoftmax_SumsToOne(t *testing.T) {
	cases := [][]float64{
		{0, 0, 0},
		{1.5, -2.0, 0.3},
		{100, 101, 99}, // large logits must not overflow
		{-50, -51, -49},
	}

	for _, logits := range cases {
		probs := softmax(logits)
		require.Len(t, probs, len(logits))

		var sum float64
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestSoftmax_PreservesOrdering(t *testing.T) {
	probs := softmax([]float64{0.1, 2.5, -1.0})
	assert.Greater(t, probs[1], probs[0])
	assert.Greater(t, probs[0], probs[2])
	assert.Equal(t, 1, argmax(probs))
}

func TestPredictionFromLogits(t *testing.T) {
	pred := predictionFromLogits([]float64{0.2, 3.1, 0.4})
	assert.Equal(t, domain.ClassProduct, pred.Class)
	assert.Greater(t, pred.Confidence, 1.0/3.0, "winner must beat a uniform distribution")
	assert.LessOrEqual(t, pred.Confidence, 1.0)
}

func TestPredictionFromLogits_UniformPicksFirst(t *testing.T) {
	pred := predictionFromLogits([]float64{1, 1, 1})
	assert.Equal(t, domain.ClassNone, pred.Class)
	assert.InDelta(t, 1.0/3.0, pred.Confidence, 1e-9)
}
