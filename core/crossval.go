package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
)

// CrossValidate fits and scores the learner on every partition. Partitions
// are evaluated concurrently by up to workers goroutines; results are
// written into a slice indexed by partition so fold-to-result association
// holds regardless of completion order.
func CrossValidate(learner contract.Learner, features [][]float64, target []float64, partitions []schema.Partition, workers int) ([]schema.FoldScore, error) {
	if len(features) != len(target) {
		return nil, fmt.Errorf("%w: features=%d target=%d", schema.ErrShapeMismatch, len(features), len(target))
	}
	if len(partitions) == 0 {
		return nil, fmt.Errorf("no partitions to evaluate")
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(partitions) {
		workers = len(partitions)
	}

	scores := make([]schema.FoldScore, len(partitions))
	jobCh := make(chan int, len(partitions))
	errCh := make(chan error, len(partitions))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				score, err := evaluatePartition(learner, features, target, partitions[idx])
				if err != nil {
					errCh <- fmt.Errorf("partition %s: %w", partitions[idx].Label, err)
					continue
				}
				scores[idx] = score
			}
		}()
	}

	for idx := range partitions {
		jobCh <- idx
	}
	close(jobCh)
	wg.Wait()
	close(errCh)

	// Surface the first failure; remaining errors describe the same run.
	if err := <-errCh; err != nil {
		return nil, err
	}
	return scores, nil
}

// evaluatePartition runs one fit/predict/score cycle on immutable views of
// the dataset. MAE and RMSE are always computed; R2 is undefined when the
// validation actuals are constant (single-row groups being the common case),
// and such folds carry R2Skipped instead of failing the run.
func evaluatePartition(learner contract.Learner, features [][]float64, target []float64, p schema.Partition) (schema.FoldScore, error) {
	trainX, trainY := schema.SelectRows(features, target, p.Train)
	validX, validY := schema.SelectRows(features, target, p.Validation)

	model, err := learner.Fit(trainX, trainY)
	if err != nil {
		return schema.FoldScore{}, fmt.Errorf("fit: %w", err)
	}
	predicted, err := model.Predict(validX)
	if err != nil {
		return schema.FoldScore{}, fmt.Errorf("predict: %w", err)
	}

	mae, err := MAE(validY, predicted)
	if err != nil {
		return schema.FoldScore{}, err
	}
	rmse, err := RMSE(validY, predicted)
	if err != nil {
		return schema.FoldScore{}, err
	}
	var r2Skipped bool
	r2, err := RSquared(validY, predicted)
	if err != nil {
		if !errors.Is(err, schema.ErrInvalidInput) {
			return schema.FoldScore{}, err
		}
		r2, r2Skipped = 0, true
	}

	return schema.FoldScore{
		Label:          p.Label,
		TrainSize:      len(p.Train),
		ValidationSize: len(p.Validation),
		MAE:            mae,
		RMSE:           rmse,
		R2:             r2,
		R2Skipped:      r2Skipped,
	}, nil
}
