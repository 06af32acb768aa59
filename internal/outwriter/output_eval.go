package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/parquet"
	"github.com/huangsam/nowcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteEvalResult outputs cross-validation results, dispatching based on the
// output format configured.
func WriteEvalResult(result *schema.EvalResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVFoldScores(csvWriter, result, fmtFloat)
		}, "Wrote CSV")

	case schema.ParquetOut:
		rows := parquet.ConvertFoldScores(result.Scores)
		if err := parquet.WriteFoldScoresParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil

	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEvalTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeEvalTable generates and writes the human-readable fold table.
func writeEvalTable(result *schema.EvalResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Fold", "Train", "Valid", "MAE", "RMSE", "R2", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	label := labelFunc(cfg.UseColors)
	var data [][]string
	for _, s := range result.Scores {
		r2Cell, labelCell := fmtFloat(s.R2), label(s.R2)
		if s.R2Skipped {
			r2Cell, labelCell = "-", "-"
		}
		data = append(data, []string{
			s.Label,
			strconv.Itoa(s.TrainSize),
			strconv.Itoa(s.ValidationSize),
			fmtFloat(s.MAE),
			fmtFloat(s.RMSE),
			r2Cell,
			labelCell,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Model: %s, strategy: %s, target: %s, features: %s\n",
		result.Model, result.Strategy, result.Target, strings.Join(result.Features, ",")); err != nil {
		return err
	}
	if result.Summary != nil {
		s := result.Summary
		if _, err := fmt.Fprintf(writer, "Summary over %d partitions: MAE %s, RMSE %s, R2 %s (std %s)\n",
			s.Partitions, fmtFloat(s.MeanMAE), fmtFloat(s.MeanRMSE), fmtFloat(s.MeanR2), fmtFloat(s.StdR2)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Evaluation completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVFoldScores writes the fold scores in CSV format.
func writeCSVFoldScores(w *csv.Writer, result *schema.EvalResult, fmtFloat func(float64) string) error {
	header := []string{
		"fold",
		"train_size",
		"validation_size",
		"mae",
		"rmse",
		"r2",
		"label",
		"model",
		"strategy",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range result.Scores {
		// R2 and its label stay empty for folds where R2 is undefined.
		r2Cell, labelCell := fmtFloat(s.R2), contract.GetPlainLabel(s.R2)
		if s.R2Skipped {
			r2Cell, labelCell = "", ""
		}
		rec := []string{
			s.Label,
			strconv.Itoa(s.TrainSize),
			strconv.Itoa(s.ValidationSize),
			fmtFloat(s.MAE),
			fmtFloat(s.RMSE),
			r2Cell,
			labelCell,
			string(result.Model),
			string(result.Strategy),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
