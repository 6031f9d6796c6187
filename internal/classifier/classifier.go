package classifier

import (
	"context"
	"errors"
)

// ErrInference indicates the model backend failed to produce predictions.
var ErrInference = errors.New("inference failed")

// FrameClassifier predicts a laughter probability for each feature frame.
// Implementations must return exactly one probability in [0, 1] per input
// row, preserving order.
type FrameClassifier interface {
	Predict(ctx context.Context, features [][]float64) ([]float64, error)
}
