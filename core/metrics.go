package core

import (
	"fmt"
	"math"

	"github.com/huangsam/nowcast/schema"
	"gonum.org/v1/gonum/stat"
)

// checkShapes validates that two paired sequences have equal nonzero length.
func checkShapes(actual, predicted []float64) error {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return fmt.Errorf("%w: actual=%d predicted=%d", schema.ErrShapeMismatch, len(actual), len(predicted))
	}
	return nil
}

// MAE computes the mean absolute error between paired sequences.
func MAE(actual, predicted []float64) (float64, error) {
	if err := checkShapes(actual, predicted); err != nil {
		return 0, err
	}
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual)), nil
}

// RMSE computes the root mean squared error between paired sequences.
func RMSE(actual, predicted []float64) (float64, error) {
	if err := checkShapes(actual, predicted); err != nil {
		return 0, err
	}
	var sum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(actual))), nil
}

// RSquared computes the coefficient of determination between paired
// sequences. Constant actual values make the denominator zero; that is
// surfaced as ErrInvalidInput rather than a silent NaN.
func RSquared(actual, predicted []float64) (float64, error) {
	if err := checkShapes(actual, predicted); err != nil {
		return 0, err
	}

	mean := stat.Mean(actual, nil)
	var ssRes, ssTot float64
	for i := range actual {
		r := actual[i] - predicted[i]
		t := actual[i] - mean
		ssRes += r * r
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0, fmt.Errorf("%w: actual values are constant", schema.ErrInvalidInput)
	}
	return 1 - ssRes/ssTot, nil
}

// Score computes all three metrics for one partition's validation rows.
func Score(actual, predicted []float64) (mae, rmse, r2 float64, err error) {
	if mae, err = MAE(actual, predicted); err != nil {
		return 0, 0, 0, err
	}
	if rmse, err = RMSE(actual, predicted); err != nil {
		return 0, 0, 0, err
	}
	if r2, err = RSquared(actual, predicted); err != nil {
		return 0, 0, 0, err
	}
	return mae, rmse, r2, nil
}

// Summarize aggregates fold scores into means and dispersion. Aggregation is
// deliberately separate from per-fold scoring. Folds whose R2 was skipped
// contribute to the error means but are left out of the R2 aggregates.
func Summarize(scores []schema.FoldScore) *schema.EvalSummary {
	if len(scores) == 0 {
		return &schema.EvalSummary{}
	}

	maes := make([]float64, len(scores))
	rmses := make([]float64, len(scores))
	var r2s []float64
	for i, s := range scores {
		maes[i] = s.MAE
		rmses[i] = s.RMSE
		if !s.R2Skipped {
			r2s = append(r2s, s.R2)
		}
	}

	summary := &schema.EvalSummary{
		Partitions: len(scores),
		MeanMAE:    stat.Mean(maes, nil),
		MeanRMSE:   stat.Mean(rmses, nil),
	}
	if len(r2s) > 0 {
		summary.MeanR2 = stat.Mean(r2s, nil)
	}
	if len(r2s) > 1 {
		summary.StdR2 = stat.StdDev(r2s, nil)
	}
	return summary
}
