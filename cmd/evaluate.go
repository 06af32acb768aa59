package cmd

import (
	"github.com/huangsam/nowcast/core"
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/spf13/cobra"
)

// evaluateCmd runs cross-validated model evaluation on a local dataset.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [data-file]",
	Short: "Cross-validate a regression model on a local dataset",
	Long: `Fit and score a regression model with cross-validation.

Loads a CSV dataset, partitions its rows with the configured strategy, fits
the model on each training split, and scores predictions on the held-out
rows with MAE, RMSE and R-squared.

Strategies:
  kfold - Shuffled k-fold split, reproducible for a fixed seed
  group - Leave-one-group-out on a grouping column (e.g., country)

Examples:
  # Five-fold evaluation of an OLS model
  nowcast evaluate data.csv -t internet_fm_ratio -f fb_fm_ratio,hdi

  # Random forest with a reproducible seed and summary statistics
  nowcast evaluate data.csv -t internet_fm_ratio -f fb_fm_ratio -m forest --seed 7 --summary

  # Leave-one-country-out evaluation
  nowcast evaluate data.csv -t internet_fm_ratio -f fb_fm_ratio --strategy group --group-column country`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEvaluate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run evaluation", err)
		}
	},
}
