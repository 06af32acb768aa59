package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvalResult() *schema.EvalResult {
	return &schema.EvalResult{
		Model:    schema.OLSModel,
		Strategy: schema.KFoldSplit,
		Target:   "internet_fm_ratio",
		Features: []string{"fb_fm_ratio", "hdi"},
		Scores: []schema.FoldScore{
			{Label: "fold-1", TrainSize: 80, ValidationSize: 20, MAE: 0.042, RMSE: 0.051, R2: 0.91},
			{Label: "fold-2", TrainSize: 80, ValidationSize: 20, MAE: 0.101, RMSE: 0.155, R2: 0.42},
		},
		Summary: &schema.EvalSummary{
			Partitions: 2,
			MeanMAE:    0.0715,
			MeanRMSE:   0.103,
			MeanR2:     0.665,
			StdR2:      0.346,
		},
	}
}

func TestWriteCSVFoldScores(t *testing.T) {
	fmtFloat, _ := createFormatters(3)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVFoldScores(w, sampleEvalResult(), fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 folds

	assert.Equal(t, "fold,train_size,validation_size,mae,rmse,r2,label,model,strategy", lines[0])
	assert.Contains(t, lines[1], "fold-1")
	assert.Contains(t, lines[1], "Excellent")
	assert.Contains(t, lines[1], "ols")
	assert.Contains(t, lines[2], "Fair")
	assert.Contains(t, lines[2], "kfold")
}

func TestWriteEvalTable(t *testing.T) {
	cfg := &contract.Config{Precision: 3, Workers: 4, UseColors: false}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeEvalTable(sampleEvalResult(), cfg, fmtFloat, 75*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "fold-1")
	assert.Contains(t, out, "0.910")
	assert.Contains(t, out, "Excellent")
	assert.Contains(t, out, "Model: ols, strategy: kfold, target: internet_fm_ratio, features: fb_fm_ratio,hdi")
	assert.Contains(t, out, "Summary over 2 partitions")
	assert.Contains(t, out, "with 4 workers")
}

func TestWriteEvalSkippedR2(t *testing.T) {
	result := sampleEvalResult()
	result.Strategy = schema.GroupSplit
	result.Scores = append(result.Scores, schema.FoldScore{
		Label: "SEN", TrainSize: 99, ValidationSize: 1, MAE: 0.2, RMSE: 0.2, R2Skipped: true,
	})

	fmtFloat, _ := createFormatters(3)

	// The table shows a dash where R2 is undefined.
	cfg := &contract.Config{Precision: 3, Workers: 1}
	var buf bytes.Buffer
	require.NoError(t, writeEvalTable(result, cfg, fmtFloat, time.Millisecond, &buf))
	assert.Contains(t, buf.String(), "SEN")
	assert.NotContains(t, buf.String(), "Poor")

	// The CSV leaves the r2 and label cells empty.
	buf.Reset()
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVFoldScores(w, result, fmtFloat))
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[3], "SEN,99,1,0.200,0.200,,,")
}

func TestWriteEvalTableNoSummary(t *testing.T) {
	cfg := &contract.Config{Precision: 2, Workers: 1}
	fmtFloat, _ := createFormatters(cfg.Precision)

	result := sampleEvalResult()
	result.Summary = nil

	var buf bytes.Buffer
	err := writeEvalTable(result, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Summary over")
}
