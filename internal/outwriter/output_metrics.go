package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"

	"github.com/olekukonko/tablewriter"
)

// MetricDefinitions lists the formal definitions of all evaluation metrics.
var MetricDefinitions = []schema.MetricDefinition{
	{
		Name:    "mae",
		Purpose: "Average magnitude of prediction errors",
		Formula: "mean(|actual - predicted|)",
		Range:   "[0, inf), lower is better",
	},
	{
		Name:    "rmse",
		Purpose: "Error magnitude with large misses penalized harder",
		Formula: "sqrt(mean((actual - predicted)^2))",
		Range:   "[0, inf), lower is better, always >= mae",
	},
	{
		Name:    "r2",
		Purpose: "Share of target variance explained by the model",
		Formula: "1 - sum((actual - predicted)^2) / sum((actual - mean)^2)",
		Range:   "(-inf, 1], 1 is a perfect fit, negative is worse than the mean",
	},
}

// WriteMetricDefinitions displays the metric definitions using the configured
// output format.
func WriteMetricDefinitions(cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, MetricDefinitions)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVMetricDefinitions(csvWriter)
		}, "Wrote CSV")

	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for metric definitions")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricTable(w)
		}, "Wrote table")
	}
}

// writeMetricTable generates and writes the human-readable definitions table.
func writeMetricTable(writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Purpose", "Formula", "Range"})

	var data [][]string
	for _, d := range MetricDefinitions {
		data = append(data, []string{d.Name, d.Purpose, d.Formula, d.Range})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVMetricDefinitions writes the metric definitions in CSV format.
func writeCSVMetricDefinitions(w *csv.Writer) error {
	header := []string{"name", "purpose", "formula", "range"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, d := range MetricDefinitions {
		if err := w.Write([]string{d.Name, d.Purpose, d.Formula, d.Range}); err != nil {
			return err
		}
	}
	return nil
}
