// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/nowcast/schema"
)

// IndicatorQuery carries the parameters of an indicator API retrieval.
type IndicatorQuery struct {
	Level     schema.AdminLevel // national or subnational
	Countries []string          // ISO3 country codes
	Indicator string            // Indicator name, e.g. "internet_fm_ratio"
	StartDate string            // Inclusive start month, e.g. "2024-01"
	EndDate   string            // Inclusive end month
}

// AudienceQuery carries the parameters of a marketing API audience count.
type AudienceQuery struct {
	Country string // ISO3 country code
	AgeMin  int    // Lower age bound, inclusive
	AgeMax  int    // Upper age bound, inclusive (0 = open-ended)
	Genders string // "all", "female" or "male"
}

// IndicatorClient defines the necessary operations against the hosted APIs.
// This allows the core orchestration to be tested without network access.
type IndicatorClient interface {
	// FetchCountry retrieves and flattens estimates for a single country.
	FetchCountry(ctx context.Context, q IndicatorQuery, country string) ([]schema.EstimateRecord, error)

	// FetchMany retrieves estimates for all countries in the query. A failed
	// country is recorded in the result instead of aborting the batch.
	FetchMany(ctx context.Context, q IndicatorQuery) (*schema.FetchResult, error)

	// FetchAudience retrieves a demographic audience count from the
	// marketing API.
	FetchAudience(ctx context.Context, q AudienceQuery) (*schema.AudienceEstimate, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResponseStore() CacheStore
}

// CacheStore defines the interface for response cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Clear() error
	Close() error
}

// Model is a trained regression model produced by a Learner.
type Model interface {
	// Predict returns one prediction per feature row.
	Predict(features [][]float64) ([]float64, error)
}

// Learner is any regression learner satisfying the fit/predict capability
// pair. Fitting never mutates shared state; all randomness is seeded through
// the learner's own configuration.
type Learner interface {
	// Name identifies the learner in output and logs.
	Name() schema.ModelKind

	// Fit trains on the given rows and returns an immutable trained model.
	Fit(features [][]float64, target []float64) (Model, error)
}
