package core

import (
	"errors"
	"testing"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// meanLearner predicts the training mean for every row. Useful because its
// behavior is exactly computable by hand.
type meanLearner struct{}

func (meanLearner) Name() schema.ModelKind { return schema.OLSModel }

func (meanLearner) Fit(_ [][]float64, target []float64) (contract.Model, error) {
	var sum float64
	for _, v := range target {
		sum += v
	}
	return meanModel{mean: sum / float64(len(target))}, nil
}

type meanModel struct{ mean float64 }

func (m meanModel) Predict(features [][]float64) ([]float64, error) {
	out := make([]float64, len(features))
	for i := range out {
		out[i] = m.mean
	}
	return out, nil
}

// failingLearner always fails to fit.
type failingLearner struct{}

func (failingLearner) Name() schema.ModelKind { return schema.OLSModel }

func (failingLearner) Fit(_ [][]float64, _ []float64) (contract.Model, error) {
	return nil, errors.New("no convergence")
}

// TestCrossValidate checks fold-to-score association across worker counts.
func TestCrossValidate(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}
	target := []float64{1, 2, 3, 4, 5, 6}
	partitions, err := KFold(len(target), 3, 11)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 8} {
		scores, err := CrossValidate(meanLearner{}, features, target, partitions, workers)
		require.NoError(t, err)
		require.Len(t, scores, len(partitions))

		for i, s := range scores {
			// Results stay aligned with their partitions regardless of
			// completion order.
			assert.Equal(t, partitions[i].Label, s.Label)
			assert.Equal(t, len(partitions[i].Train), s.TrainSize)
			assert.Equal(t, len(partitions[i].Validation), s.ValidationSize)
			assert.GreaterOrEqual(t, s.RMSE, s.MAE)
		}
	}
}

// TestCrossValidateGroupPartitions exercises leave-one-group-out end to end.
func TestCrossValidateGroupPartitions(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	target := []float64{1, 2, 3, 4}
	partitions, err := LeaveOneGroupOut([]string{"CIV", "CIV", "SEN", "SEN"})
	require.NoError(t, err)

	scores, err := CrossValidate(meanLearner{}, features, target, partitions, 2)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "CIV", scores[0].Label)
	assert.Equal(t, "SEN", scores[1].Label)
}

// TestCrossValidateSingleRowGroups keeps every partition's scores when some
// groups hold only one row. R2 is undefined there, so those folds carry the
// skip flag instead of failing the whole run.
func TestCrossValidateSingleRowGroups(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	target := []float64{1, 2, 3, 4}
	partitions, err := LeaveOneGroupOut([]string{"CIV", "CIV", "SEN", "GHA"})
	require.NoError(t, err)

	scores, err := CrossValidate(meanLearner{}, features, target, partitions, 2)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	// CIV validates on two rows with distinct targets, so R2 is defined.
	assert.Equal(t, "CIV", scores[0].Label)
	assert.False(t, scores[0].R2Skipped)

	// SEN and GHA validate on one row each: errors are still computed, R2
	// is marked unavailable.
	for _, s := range scores[1:] {
		assert.Equal(t, 1, s.ValidationSize)
		assert.True(t, s.R2Skipped)
		assert.Zero(t, s.R2)
		assert.Positive(t, s.MAE)
		assert.InDelta(t, s.MAE, s.RMSE, 1e-12)
	}
}

// TestCrossValidateConstantValidationFold marks R2 unavailable when a
// multi-row validation set has constant actuals.
func TestCrossValidateConstantValidationFold(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	target := []float64{5, 5, 1, 2}
	partitions, err := LeaveOneGroupOut([]string{"CIV", "CIV", "SEN", "SEN"})
	require.NoError(t, err)

	scores, err := CrossValidate(meanLearner{}, features, target, partitions, 1)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.True(t, scores[0].R2Skipped)
	assert.False(t, scores[1].R2Skipped)
}

// TestCrossValidateFitFailure surfaces a learner error with fold context.
func TestCrossValidateFitFailure(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	target := []float64{1, 2, 3, 4}
	partitions, err := KFold(len(target), 2, 1)
	require.NoError(t, err)

	_, err = CrossValidate(failingLearner{}, features, target, partitions, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fold-")
	assert.Contains(t, err.Error(), "no convergence")
}

// TestCrossValidateShapeMismatch rejects misaligned inputs up front.
func TestCrossValidateShapeMismatch(t *testing.T) {
	partitions := []schema.Partition{{Label: "fold-1", Train: []int{0}, Validation: []int{1}}}
	_, err := CrossValidate(meanLearner{}, [][]float64{{1}, {2}}, []float64{1}, partitions, 1)
	assert.ErrorIs(t, err, schema.ErrShapeMismatch)
}

// TestCrossValidateNoPartitions rejects an empty partition list.
func TestCrossValidateNoPartitions(t *testing.T) {
	_, err := CrossValidate(meanLearner{}, [][]float64{{1}}, []float64{1}, nil, 1)
	assert.Error(t, err)
}
