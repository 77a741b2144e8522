package secondary

import (
	"context"

	"gitlab.com/inferd-2025.net/internal/domain"
)

// Predictor is the opaque batched inference collaborator. Predict returns one
// prediction per input sentence, in input order, or a single error covering
// the whole batch. Implementations are stateless per call and expected to be
// the dominant cost of a flush.
type Predictor interface {
	Predict(ctx context.Context, sentences []string) ([]domain.Prediction, error)
}
