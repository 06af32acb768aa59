package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/parquet"
	"github.com/huangsam/nowcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteEstimateRecords outputs flattened estimate records, dispatching based
// on the output format configured.
func WriteEstimateRecords(records []schema.EstimateRecord, cfg *contract.Config, duration time.Duration) error {
	_, fmtOptFloat := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVEstimateRecords(csvWriter, records, fmtOptFloat)
		}, "Wrote CSV")

	case schema.ParquetOut:
		rows := parquet.ConvertEstimateRecords(records)
		if err := parquet.WriteEstimatesParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil

	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEstimateTable(records, cfg, fmtOptFloat, duration, w)
		}, "Wrote table")
	}
}

// writeEstimateTable generates and writes the human-readable table.
func writeEstimateTable(records []schema.EstimateRecord, cfg *contract.Config, fmtOptFloat func(*float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Country", "Region", "Period", "Indicator", "Predicted", "Error"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for _, r := range records {
		region := r.Region
		if region == "" {
			region = "-"
		}
		data = append(data, []string{
			r.Country,
			region,
			r.Period,
			contract.TruncateLabel(r.Indicator, maxLabel),
			orDash(fmtOptFloat(r.Predicted)),
			orDash(fmtOptFloat(r.PredictedError)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	countries := make(map[string]struct{})
	for _, r := range records {
		countries[r.Country] = struct{}{}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d records across %d countries\n", len(records), len(countries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Retrieval completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVEstimateRecords writes the estimate records in CSV format.
func writeCSVEstimateRecords(w *csv.Writer, records []schema.EstimateRecord, fmtOptFloat func(*float64) string) error {
	header := []string{
		"country",
		"region",
		"period",
		"indicator",
		"predicted",
		"predicted_error",
		"level",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			r.Country,
			r.Region,
			r.Period,
			r.Indicator,
			fmtOptFloat(r.Predicted),      // Empty when absent upstream
			fmtOptFloat(r.PredictedError), // Empty when absent upstream
			string(r.Level),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// orDash substitutes a dash for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
