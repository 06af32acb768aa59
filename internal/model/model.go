// Package model provides regression learners satisfying the contract
// fit/predict capability pair.
package model

import (
	"fmt"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
)

// NewLearner constructs the learner for a model kind. The seed drives all
// randomness inside stochastic learners; OLS ignores it.
func NewLearner(kind schema.ModelKind, seed int64) (contract.Learner, error) {
	switch kind {
	case schema.OLSModel:
		return NewOLS(), nil
	case schema.ForestModel:
		return NewForest(ForestOptions{Seed: seed}), nil
	default:
		return nil, fmt.Errorf("unsupported model kind: %s", kind)
	}
}

// checkTrainingShape validates fitting input common to all learners.
func checkTrainingShape(features [][]float64, target []float64) (cols int, err error) {
	if len(features) == 0 {
		return 0, fmt.Errorf("no training rows")
	}
	if len(features) != len(target) {
		return 0, fmt.Errorf("%w: features=%d target=%d", schema.ErrShapeMismatch, len(features), len(target))
	}
	cols = len(features[0])
	if cols == 0 {
		return 0, fmt.Errorf("no feature columns")
	}
	for i, row := range features {
		if len(row) != cols {
			return 0, fmt.Errorf("%w: row %d has %d features, expected %d", schema.ErrShapeMismatch, i, len(row), cols)
		}
	}
	return cols, nil
}
