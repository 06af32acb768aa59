// Package core has core logic for flattening, resampling and evaluation.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/dataio"
	"github.com/huangsam/nowcast/internal/model"
	"github.com/huangsam/nowcast/internal/outwriter"
	"github.com/huangsam/nowcast/schema"
)

// ExecuteFetchIndicators runs a bulk indicator retrieval and prints the
// flattened records. It serves as the main entry point for the 'fetch
// national' and 'fetch subnational' modes.
func ExecuteFetchIndicators(ctx context.Context, cfg *contract.Config, client contract.IndicatorClient) error {
	start := time.Now()
	result, err := GetFetchResult(ctx, cfg, client)
	if err != nil {
		return err
	}
	for country, ferr := range result.Failed {
		contract.LogWarn(fmt.Sprintf("Skipping %s", country), ferr)
	}
	duration := time.Since(start)
	return outwriter.WriteEstimateRecords(result.Records, cfg, duration)
}

// GetFetchResult retrieves estimate records for all configured countries.
// This is exposed for MCP handlers that render their own output.
func GetFetchResult(ctx context.Context, cfg *contract.Config, client contract.IndicatorClient) (*schema.FetchResult, error) {
	if len(cfg.Countries) == 0 {
		return nil, fmt.Errorf("at least one country code is required")
	}
	query := contract.IndicatorQuery{
		Level:     cfg.Level,
		Countries: cfg.Countries,
		Indicator: cfg.Indicator,
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
	}
	result, err := client.FetchMany(ctx, query)
	if err != nil {
		return nil, err
	}
	// A batch where every country failed is an error, not an empty dataset.
	if len(result.Records) == 0 && len(result.Failed) > 0 {
		return nil, fmt.Errorf("all %d countries failed; first failure: %w", len(result.Failed), firstError(result.Failed))
	}
	return result, nil
}

// ExecuteFetchAudience retrieves a demographic audience count and prints it.
func ExecuteFetchAudience(ctx context.Context, cfg *contract.Config, client contract.IndicatorClient) error {
	if len(cfg.Countries) != 1 {
		return fmt.Errorf("audience queries take exactly one country, got %d", len(cfg.Countries))
	}
	query := contract.AudienceQuery{
		Country: cfg.Countries[0],
		AgeMin:  cfg.AgeMin,
		AgeMax:  cfg.AgeMax,
		Genders: cfg.Genders,
	}
	estimate, err := client.FetchAudience(ctx, query)
	if err != nil {
		return err
	}
	return outwriter.WriteAudienceEstimate(estimate, cfg)
}

// ExecuteEvaluate runs a cross-validated model evaluation and prints per-fold
// scores. It serves as the main entry point for the 'evaluate' mode.
func ExecuteEvaluate(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetEvaluateResult(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteEvalResult(result, cfg, duration)
}

// GetEvaluateResult loads the dataset, builds partitions per the configured
// strategy, and cross-validates the configured learner.
// This is exposed for MCP handlers that render their own output.
func GetEvaluateResult(cfg *contract.Config) (*schema.EvalResult, error) {
	if err := contract.RevalidateEvaluate(cfg); err != nil {
		return nil, err
	}

	frame, err := dataio.ReadFrame(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	features, err := frame.FeatureMatrix(cfg.Features)
	if err != nil {
		return nil, err
	}
	target, err := frame.FloatColumn(cfg.Target)
	if err != nil {
		return nil, err
	}

	var partitions []schema.Partition
	switch cfg.Strategy {
	case schema.GroupSplit:
		groups, err := frame.StringColumn(cfg.GroupColumn)
		if err != nil {
			return nil, err
		}
		partitions, err = LeaveOneGroupOut(groups)
		if err != nil {
			return nil, err
		}
	default: // k-fold
		partitions, err = KFold(frame.Len(), cfg.Folds, cfg.Seed)
		if err != nil {
			return nil, err
		}
	}

	learner, err := model.NewLearner(cfg.Model, cfg.Seed)
	if err != nil {
		return nil, err
	}
	scores, err := CrossValidate(learner, features, target, partitions, cfg.Workers)
	if err != nil {
		return nil, err
	}

	result := &schema.EvalResult{
		Model:    cfg.Model,
		Strategy: cfg.Strategy,
		Target:   cfg.Target,
		Features: cfg.Features,
		Scores:   scores,
	}
	if cfg.Summary {
		result.Summary = Summarize(scores)
	}
	return result, nil
}

// ExecuteMetricsInfo displays the formal definitions of all evaluation
// metrics. This is a static display that does not require any data.
func ExecuteMetricsInfo(cfg *contract.Config) error {
	return outwriter.WriteMetricDefinitions(cfg)
}

// firstError returns an arbitrary error from a per-country failure map.
func firstError(failed map[string]error) error {
	for _, err := range failed {
		return err
	}
	return nil
}
