package schema

import "time"

// FoldScore holds the evaluation metrics for a single partition.
type FoldScore struct {
	Label          string  `json:"label"`                // Fold index or held-out group value
	TrainSize      int     `json:"train_size"`           // Rows used for fitting
	ValidationSize int     `json:"validation_size"`      // Rows held out for scoring
	MAE            float64 `json:"mae"`                  // Mean absolute error
	RMSE           float64 `json:"rmse"`                 // Root mean squared error
	R2             float64 `json:"r2"`                   // Coefficient of determination
	R2Skipped      bool    `json:"r2_skipped,omitempty"` // R2 undefined, validation actuals are constant
}

// EvalSummary aggregates fold scores across all partitions.
// It is computed as a separate step, never baked into per-fold scoring.
type EvalSummary struct {
	Partitions int     `json:"partitions"` // Number of partitions evaluated
	MeanMAE    float64 `json:"mean_mae"`
	MeanRMSE   float64 `json:"mean_rmse"`
	MeanR2     float64 `json:"mean_r2"`
	StdR2      float64 `json:"std_r2"` // Sample standard deviation of R2
}

// EvalResult bundles per-fold scores with run metadata for output writers.
type EvalResult struct {
	Model    ModelKind     `json:"model"`             // Learner that was evaluated
	Strategy SplitStrategy `json:"strategy"`          // Partitioning strategy
	Target   string        `json:"target"`            // Target column name
	Features []string      `json:"features"`          // Feature column names
	Scores   []FoldScore   `json:"scores"`            // One entry per partition
	Summary  *EvalSummary  `json:"summary,omitempty"` // Present only when requested
}

// FetchResult bundles flattened estimate records with per-country failures
// from a bulk retrieval. A failed country never aborts the batch.
type FetchResult struct {
	Records []EstimateRecord `json:"records"`
	Failed  map[string]error `json:"-"` // Country code to fetch error
}

// CacheStatus holds status information about the response cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int64     `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// MetricDefinition describes one regression metric for the metrics display.
type MetricDefinition struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Formula string `json:"formula"`
	Range   string `json:"range"`
}
