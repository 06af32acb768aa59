package parquet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/nowcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertEstimateRecords maps empty regions to null and keeps pointers.
func TestConvertEstimateRecords(t *testing.T) {
	predicted := 0.82
	records := []schema.EstimateRecord{
		{Country: "CIV", Period: "2024-01", Indicator: "internet_fm_ratio", Predicted: &predicted, Level: schema.NationalLevel},
		{Country: "CIV", Region: "CIV.1_1", Period: "2024-01", Indicator: "internet_fm_ratio", Level: schema.SubnationalLevel},
	}

	rows := ConvertEstimateRecords(records)
	require.Len(t, rows, 2)

	assert.Nil(t, rows[0].Region)
	require.NotNil(t, rows[0].Predicted)
	assert.InDelta(t, 0.82, *rows[0].Predicted, 1e-9)
	assert.Nil(t, rows[0].PredictedError)
	assert.Equal(t, "national", rows[0].Level)

	require.NotNil(t, rows[1].Region)
	assert.Equal(t, "CIV.1_1", *rows[1].Region)
	assert.Nil(t, rows[1].Predicted)
}

// TestConvertFoldScores carries scores over with narrowed sizes.
func TestConvertFoldScores(t *testing.T) {
	scores := []schema.FoldScore{
		{Label: "fold-1", TrainSize: 80, ValidationSize: 20, MAE: 0.1, RMSE: 0.2, R2: 0.9},
		{Label: "SEN", TrainSize: 99, ValidationSize: 1, MAE: 0.3, RMSE: 0.3, R2Skipped: true},
	}

	rows := ConvertFoldScores(scores)
	require.Len(t, rows, 2)
	assert.Equal(t, "fold-1", rows[0].Label)
	assert.Equal(t, int32(80), rows[0].TrainSize)
	assert.Equal(t, int32(20), rows[0].ValidationSize)
	assert.InDelta(t, 0.9, rows[0].R2, 1e-9)
	assert.False(t, rows[0].R2Skipped)
	assert.True(t, rows[1].R2Skipped)
}

// TestWriteEstimatesParquet produces a non-empty file.
func TestWriteEstimatesParquet(t *testing.T) {
	predicted := 0.5
	rows := ConvertEstimateRecords([]schema.EstimateRecord{
		{Country: "SEN", Period: "2024-02", Indicator: "hdi", Predicted: &predicted, Level: schema.NationalLevel},
	})
	path := filepath.Join(t.TempDir(), "estimates.parquet")

	require.NoError(t, WriteEstimatesParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// TestWriteFoldScoresParquet produces a non-empty file.
func TestWriteFoldScoresParquet(t *testing.T) {
	rows := ConvertFoldScores([]schema.FoldScore{
		{Label: "CIV", TrainSize: 10, ValidationSize: 5, MAE: 0.3, RMSE: 0.4, R2: 0.7},
	})
	path := filepath.Join(t.TempDir(), "scores.parquet")

	require.NoError(t, WriteFoldScoresParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// TestWriteParquetBadPath surfaces file creation failures.
func TestWriteParquetBadPath(t *testing.T) {
	err := WriteFoldScoresParquet(nil, filepath.Join(t.TempDir(), "missing", "scores.parquet"))
	assert.Error(t, err)
}
