package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
)

// WriteAudienceEstimate outputs a demographic audience count, dispatching
// based on the output format configured.
func WriteAudienceEstimate(estimate *schema.AudienceEstimate, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, estimate)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVAudience(csvWriter, estimate)
		}, "Wrote CSV")

	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for audience estimates")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAudienceText(w, estimate)
		}, "Wrote text")
	}
}

// writeAudienceText writes the audience estimate as plain key-value lines.
func writeAudienceText(w io.Writer, estimate *schema.AudienceEstimate) error {
	ageMax := strconv.Itoa(estimate.AgeMax)
	if estimate.AgeMax == 0 {
		ageMax = "open"
	}
	lines := []string{
		fmt.Sprintf("Country: %s", estimate.Country),
		fmt.Sprintf("Ages: %d to %s", estimate.AgeMin, ageMax),
		fmt.Sprintf("Genders: %s", estimate.Genders),
		fmt.Sprintf("Monthly Active Users: %d", estimate.MAU),
		fmt.Sprintf("Bounds: %d to %d", estimate.MAULower, estimate.MAUUpper),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVAudience writes the audience estimate as a single CSV row.
func writeCSVAudience(w *csv.Writer, estimate *schema.AudienceEstimate) error {
	header := []string{"country", "age_min", "age_max", "genders", "mau", "mau_lower", "mau_upper"}
	if err := w.Write(header); err != nil {
		return err
	}
	rec := []string{
		estimate.Country,
		strconv.Itoa(estimate.AgeMin),
		strconv.Itoa(estimate.AgeMax),
		estimate.Genders,
		strconv.FormatInt(estimate.MAU, 10),
		strconv.FormatInt(estimate.MAULower, 10),
		strconv.FormatInt(estimate.MAUUpper, 10),
	}
	return w.Write(rec)
}
