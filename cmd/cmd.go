// Package cmd defines the command-line interface for nowcast.
package cmd

import (
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the fetch subcommands to the parent fetch command
	fetchCmd.AddCommand(fetchNationalCmd)
	fetchCmd.AddCommand(fetchSubnationalCmd)
	fetchCmd.AddCommand(fetchAudienceCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("base-url", contract.DefaultBaseURL, "Base URL of the hosted indicator API")
	rootCmd.PersistentFlags().String("token", "", "Bearer token for the hosted API (prefer NOWCAST_TOKEN env)")
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Seed for shuffling and stochastic learners")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", "sqlite", "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "", "Freshness window for cached responses (e.g., 24h, 30m)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind shared retrieval flags of fetchCmd to Viper
	fetchCmd.PersistentFlags().StringP("countries", "c", "", "Comma-separated ISO3 country codes (e.g., CIV,SEN)")
	fetchCmd.PersistentFlags().StringP("indicator", "i", "", "Indicator name to retrieve (e.g., internet_fm_ratio)")
	fetchCmd.PersistentFlags().String("start", "", "Inclusive start month as YYYY-MM")
	fetchCmd.PersistentFlags().String("end", "", "Inclusive end month as YYYY-MM")
	if err := viper.BindPFlags(fetchCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding fetch flags", err)
	}

	// Bind all flags of fetchAudienceCmd to Viper
	fetchAudienceCmd.Flags().Int("age-min", 18, "Lower age bound, inclusive")
	fetchAudienceCmd.Flags().Int("age-max", 0, "Upper age bound, inclusive (0 = open-ended)")
	fetchAudienceCmd.Flags().String("genders", "all", "Audience genders: all or female or male")
	if err := viper.BindPFlags(fetchAudienceCmd.Flags()); err != nil {
		contract.LogFatal("Error binding audience flags", err)
	}

	// Bind all flags of evaluateCmd to Viper
	evaluateCmd.Flags().String("data", "", "Path to the CSV dataset file")
	evaluateCmd.Flags().StringP("target", "t", "", "Target column name")
	evaluateCmd.Flags().StringP("features", "f", "", "Comma-separated feature column names")
	evaluateCmd.Flags().StringP("model", "m", "ols", "Regression learner: ols or forest")
	evaluateCmd.Flags().String("strategy", "kfold", "Partitioning strategy: kfold or group")
	evaluateCmd.Flags().IntP("folds", "k", contract.DefaultFolds, "Number of folds for the kfold strategy")
	evaluateCmd.Flags().String("group-column", "", "Grouping column for the group strategy")
	evaluateCmd.Flags().Bool("summary", false, "Print aggregate statistics across all partitions")
	if err := viper.BindPFlags(evaluateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding evaluate flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
