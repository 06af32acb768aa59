package cmd

import (
	"github.com/huangsam/nowcast/core"
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all evaluation metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display mathematical definitions for all evaluation metrics",
	Long: `Show the formal definitions, formulas, and ranges of the evaluation metrics.

No data retrieval or model fitting is performed - this is purely informational.

Use this to:
- Understand what each metric measures
- Explain evaluation output to your team
- Document evaluation methodology

Examples:
  # Show metric definitions
  nowcast metrics

  # Export definitions as JSON
  nowcast metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetricsInfo(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
