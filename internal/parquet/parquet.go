// Package parquet provides data structures and functions for exporting
// estimate and evaluation data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/nowcast/schema"
	"github.com/parquet-go/parquet-go"
)

// EstimateRow represents a single flattened indicator estimate.
type EstimateRow struct {
	// Country is the ISO3 country code
	Country string `parquet:"country,snappy"`

	// Region is the GADM1 region code (nullable, empty at national level)
	Region *string `parquet:"region,optional,snappy"`

	// Period is the YYYY-MM time label
	Period string `parquet:"period,snappy"`

	// Indicator is the indicator name
	Indicator string `parquet:"indicator,snappy"`

	// Predicted is the model estimate (nullable when absent upstream)
	Predicted *float64 `parquet:"predicted,optional,snappy"`

	// PredictedError is the estimate uncertainty (nullable when absent upstream)
	PredictedError *float64 `parquet:"predicted_error,optional,snappy"`

	// Level is the administrative granularity
	Level string `parquet:"level,snappy"`
}

// FoldScoreRow represents the evaluation metrics for one partition.
type FoldScoreRow struct {
	// Label is the fold index or held-out group value
	Label string `parquet:"label,snappy"`

	// TrainSize is the number of rows used for fitting
	TrainSize int32 `parquet:"train_size,snappy"`

	// ValidationSize is the number of rows held out for scoring
	ValidationSize int32 `parquet:"validation_size,snappy"`

	// MAE is the mean absolute error
	MAE float64 `parquet:"mae,snappy"`

	// RMSE is the root mean squared error
	RMSE float64 `parquet:"rmse,snappy"`

	// R2 is the coefficient of determination
	R2 float64 `parquet:"r2,snappy"`

	// R2Skipped marks folds whose validation actuals were constant
	R2Skipped bool `parquet:"r2_skipped,snappy"`
}

// WriteEstimatesParquet writes a slice of EstimateRow structs to a Parquet file.
func WriteEstimatesParquet(data []EstimateRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFoldScoresParquet writes a slice of FoldScoreRow structs to a Parquet file.
func WriteFoldScoresParquet(data []FoldScoreRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to a Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertEstimateRecords converts schema.EstimateRecord to EstimateRow for Parquet export.
func ConvertEstimateRecords(records []schema.EstimateRecord) []EstimateRow {
	result := make([]EstimateRow, len(records))
	for i, record := range records {
		row := EstimateRow{
			Country:        record.Country,
			Period:         record.Period,
			Indicator:      record.Indicator,
			Predicted:      record.Predicted,
			PredictedError: record.PredictedError,
			Level:          string(record.Level),
		}
		if record.Region != "" {
			region := record.Region
			row.Region = &region
		}
		result[i] = row
	}
	return result
}

// ConvertFoldScores converts schema.FoldScore to FoldScoreRow for Parquet export.
func ConvertFoldScores(scores []schema.FoldScore) []FoldScoreRow {
	result := make([]FoldScoreRow, len(scores))
	for i, score := range scores {
		result[i] = FoldScoreRow{
			Label:          score.Label,
			TrainSize:      int32(score.TrainSize),
			ValidationSize: int32(score.ValidationSize),
			MAE:            score.MAE,
			RMSE:           score.RMSE,
			R2:             score.R2,
			R2Skipped:      score.R2Skipped,
		}
	}
	return result
}
