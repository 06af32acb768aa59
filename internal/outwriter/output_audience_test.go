package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAudience() *schema.AudienceEstimate {
	return &schema.AudienceEstimate{
		Country:  "CIV",
		AgeMin:   18,
		AgeMax:   0,
		Genders:  "female",
		MAU:      1200000,
		MAULower: 1100000,
		MAUUpper: 1300000,
	}
}

func TestWriteAudienceText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAudienceText(&buf, sampleAudience()))

	out := buf.String()
	assert.Contains(t, out, "Country: CIV")
	assert.Contains(t, out, "Ages: 18 to open")
	assert.Contains(t, out, "Genders: female")
	assert.Contains(t, out, "Monthly Active Users: 1200000")
	assert.Contains(t, out, "Bounds: 1100000 to 1300000")
}

func TestWriteAudienceTextBoundedAge(t *testing.T) {
	estimate := sampleAudience()
	estimate.AgeMax = 34

	var buf bytes.Buffer
	require.NoError(t, writeAudienceText(&buf, estimate))
	assert.Contains(t, buf.String(), "Ages: 18 to 34")
}

func TestWriteCSVAudience(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVAudience(w, sampleAudience()))
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "country,age_min,age_max,genders,mau,mau_lower,mau_upper", lines[0])
	assert.Equal(t, "CIV,18,0,female,1200000,1100000,1300000", lines[1])
}

func TestWriteAudienceEstimateParquetUnsupported(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: "out.parquet"}
	err := WriteAudienceEstimate(sampleAudience(), cfg)
	assert.Error(t, err)
}
