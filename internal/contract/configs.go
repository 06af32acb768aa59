package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/nowcast/schema"
)

// Default values for configuration.
const (
	DefaultBaseURL   = "https://wdl-api.example.org/v1"
	DefaultFolds     = 5
	DefaultSeed      = 42
	DefaultPrecision = 3
	MaxPrecision     = 6
	DefaultTimeout   = 30 * time.Second
	DefaultCacheTTL  = 24 * time.Hour
)

// DefaultWorkers is the default number of concurrent fold evaluations.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// PeriodFormat is the time label layout used by the indicator API.
const PeriodFormat = "2006-01"

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	BaseURL        string `mapstructure:"base-url"`
	Token          string `mapstructure:"token"`
	Countries      string `mapstructure:"countries"`
	Indicator      string `mapstructure:"indicator"`
	StartDate      string `mapstructure:"start"`
	EndDate        string `mapstructure:"end"`
	AgeMin         int    `mapstructure:"age-min"`
	AgeMax         int    `mapstructure:"age-max"`
	Genders        string `mapstructure:"genders"`
	DataFile       string `mapstructure:"data"`
	Target         string `mapstructure:"target"`
	Features       string `mapstructure:"features"`
	Model          string `mapstructure:"model"`
	Strategy       string `mapstructure:"strategy"`
	Folds          int    `mapstructure:"folds"`
	GroupColumn    string `mapstructure:"group-column"`
	Seed           int64  `mapstructure:"seed"`
	Summary        bool   `mapstructure:"summary"`
	Workers        int    `mapstructure:"workers"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	CacheTTL       string `mapstructure:"cache-ttl"`
}

// Config holds the runtime configuration for all commands.
// This struct remains the "final, validated" config.
type Config struct {
	BaseURL   string
	Token     string
	Countries []string
	Indicator string
	StartDate string
	EndDate   string
	Level     schema.AdminLevel

	AgeMin  int
	AgeMax  int
	Genders string

	DataFile    string
	Target      string
	Features    []string
	Model       schema.ModelKind
	Strategy    schema.SplitStrategy
	Folds       int
	GroupColumn string
	Seed        int64
	Summary     bool
	Workers     int

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.CacheBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration
}

// Clone returns a shallow copy of the config with slice fields duplicated,
// so MCP handlers can override per-request values safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Countries = append([]string(nil), c.Countries...)
	out.Features = append([]string(nil), c.Features...)
	return &out
}

// ProcessAndValidate converts the raw input into a validated Config.
// It normalizes enums, splits comma lists, and rejects inconsistent values.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseURL = strings.TrimRight(input.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.Token = input.Token

	cfg.Countries = SplitCommaList(input.Countries)
	for i, c := range cfg.Countries {
		cfg.Countries[i] = strings.ToUpper(c)
	}
	cfg.Indicator = input.Indicator

	var err error
	if cfg.StartDate, err = normalizePeriod(input.StartDate); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if cfg.EndDate, err = normalizePeriod(input.EndDate); err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if cfg.StartDate != "" && cfg.EndDate != "" && cfg.StartDate > cfg.EndDate {
		return fmt.Errorf("start date %s is after end date %s", cfg.StartDate, cfg.EndDate)
	}

	cfg.AgeMin = input.AgeMin
	cfg.AgeMax = input.AgeMax
	if cfg.AgeMax != 0 && cfg.AgeMax < cfg.AgeMin {
		return fmt.Errorf("age-max %d is below age-min %d", cfg.AgeMax, cfg.AgeMin)
	}
	cfg.Genders = strings.ToLower(input.Genders)
	switch cfg.Genders {
	case "", "all", "female", "male":
	default:
		return fmt.Errorf("invalid genders value: %s (expected all, female or male)", input.Genders)
	}
	if cfg.Genders == "" {
		cfg.Genders = "all"
	}

	cfg.DataFile = input.DataFile
	cfg.Target = input.Target
	cfg.Features = SplitCommaList(input.Features)

	cfg.Model = schema.ModelKind(strings.ToLower(input.Model))
	if cfg.Model == "" {
		cfg.Model = schema.OLSModel
	}
	if _, ok := schema.ValidModelKinds[cfg.Model]; !ok {
		return fmt.Errorf("invalid model: %s (must be ols or forest)", input.Model)
	}

	cfg.Strategy = schema.SplitStrategy(strings.ToLower(input.Strategy))
	if cfg.Strategy == "" {
		cfg.Strategy = schema.KFoldSplit
	}
	if _, ok := schema.ValidSplitStrategies[cfg.Strategy]; !ok {
		return fmt.Errorf("invalid strategy: %s (must be kfold or group)", input.Strategy)
	}

	cfg.Folds = input.Folds
	if cfg.Folds == 0 {
		cfg.Folds = DefaultFolds
	}
	if cfg.Strategy == schema.KFoldSplit && cfg.Folds < 2 {
		return fmt.Errorf("folds must be at least 2, got %d", cfg.Folds)
	}
	cfg.GroupColumn = input.GroupColumn
	if cfg.Strategy == schema.GroupSplit && cfg.GroupColumn == "" {
		return fmt.Errorf("group strategy requires --group-column")
	}
	cfg.Seed = input.Seed
	cfg.Summary = input.Summary

	cfg.Workers = input.Workers
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode: %s (must be text, csv, json or parquet)", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Precision > MaxPrecision {
		cfg.Precision = MaxPrecision
	}
	cfg.Width = input.Width

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.UseColors = useColors

	cfg.CacheBackend = schema.CacheBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend: %s (must be sqlite, mysql, postgresql or none)", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	return nil
}

// RevalidateEvaluate re-checks the evaluation inputs that MCP handlers can
// override after the shared validation already ran.
func RevalidateEvaluate(cfg *Config) error {
	if cfg.DataFile == "" {
		return fmt.Errorf("a dataset file is required")
	}
	if cfg.Target == "" {
		return fmt.Errorf("a target column is required")
	}
	if len(cfg.Features) == 0 {
		return fmt.Errorf("at least one feature column is required")
	}
	if cfg.Strategy == schema.GroupSplit && cfg.GroupColumn == "" {
		return fmt.Errorf("group strategy requires a group column")
	}
	return nil
}

// SplitCommaList splits a comma-separated flag value into trimmed,
// non-empty entries.
func SplitCommaList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizePeriod validates a YYYY-MM time label. Empty stays empty, which
// means the API default window.
func normalizePeriod(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(PeriodFormat, s)
	if err != nil {
		return "", fmt.Errorf("expected YYYY-MM, got %q", s)
	}
	return t.Format(PeriodFormat), nil
}
