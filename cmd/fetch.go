package cmd

import (
	"github.com/huangsam/nowcast/core"
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/wdlapi"
	"github.com/huangsam/nowcast/schema"
	"github.com/spf13/cobra"
)

// fetchCmd groups the retrieval subcommands.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Retrieve indicator estimates and audience counts from the hosted APIs",
	Long: `Retrieve data from the hosted indicator and marketing APIs.

Subcommands:
  national    - Country-level indicator estimates
  subnational - GADM1 region-level indicator estimates
  audience    - Demographic audience counts from the marketing API

Responses are cached locally; repeated queries within the TTL window never
hit the network.

Examples:
  # Monthly national estimates for two countries
  nowcast fetch national -c CIV,SEN -i internet_fm_ratio --start 2024-01 --end 2024-06

  # Regional estimates exported to CSV
  nowcast fetch subnational -c CIV -i internet_fm_ratio --output csv --output-file civ.csv

  # Audience count for women aged 18-34
  nowcast fetch audience -c CIV --age-min 18 --age-max 34 --genders female`,
}

// fetchNationalCmd retrieves country-level estimates.
var fetchNationalCmd = &cobra.Command{
	Use:   "national",
	Short: "Retrieve country-level indicator estimates",
	Long: `Retrieve indicator estimates at the national level.

The nested API response (country -> month -> indicator) is flattened into
one record per (country, month, indicator) combination. Countries that fail
are reported as warnings without aborting the rest of the batch.

Examples:
  # One indicator for one country
  nowcast fetch national -c CIV -i internet_fm_ratio

  # Several countries over a fixed window
  nowcast fetch national -c CIV,SEN,GHA --start 2024-01 --end 2024-06`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Level = schema.NationalLevel
		client := wdlapi.NewClient(cfg, cacheManager)
		if err := core.ExecuteFetchIndicators(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot fetch national estimates", err)
		}
	},
}

// fetchSubnationalCmd retrieves region-level estimates.
var fetchSubnationalCmd = &cobra.Command{
	Use:   "subnational",
	Short: "Retrieve GADM1 region-level indicator estimates",
	Long: `Retrieve indicator estimates at the subnational (GADM1 region) level.

The nested API response (country -> region -> month -> indicator) is
flattened into one record per (country, region, month, indicator)
combination.

Examples:
  # Regional estimates for one country
  nowcast fetch subnational -c CIV -i internet_fm_ratio

  # Export regional estimates to parquet
  nowcast fetch subnational -c CIV --output parquet --output-file civ.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Level = schema.SubnationalLevel
		client := wdlapi.NewClient(cfg, cacheManager)
		if err := core.ExecuteFetchIndicators(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot fetch subnational estimates", err)
		}
	},
}

// fetchAudienceCmd retrieves a demographic audience count.
var fetchAudienceCmd = &cobra.Command{
	Use:   "audience",
	Short: "Retrieve a demographic audience count from the marketing API",
	Long: `Retrieve a monthly active user count for a demographic slice.

Takes exactly one country plus optional age bounds and a genders filter.
The marketing API reports the estimate with lower and upper bounds.

Examples:
  # All adults in one country
  nowcast fetch audience -c CIV

  # Women aged 18 to 34
  nowcast fetch audience -c CIV --age-min 18 --age-max 34 --genders female`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := wdlapi.NewClient(cfg, cacheManager)
		if err := core.ExecuteFetchAudience(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot fetch audience count", err)
		}
	},
}
