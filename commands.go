package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "bankanalysis",
	Short: "Fetch, analyze and visualize bank financial statements",
	Long: `Bankanalysis builds a static financial-analysis dashboard for a set of banks.

It provides tools for:
  - Fetching annual income statements and balance sheets from Yahoo Finance
  - Computing profitability and solvency ratios with year-over-year growth
  - Generating qualitative analyses and linear trend projections
  - Rendering a multi-tab HTML dashboard with interactive charts`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// commandDeps builds the dependency bundle shared by every subcommand.
func commandDeps() (*Dependencies, error) {
	ctx := setupLogging(flagDebug)
	return setupDependencies(zerolog.Ctx(ctx), flagConfig)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download annual financial statements for the configured banks",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := commandDeps()
		if err != nil {
			return err
		}
		rows, err := fetchAllBanks(deps)
		if err != nil {
			return err
		}
		path, err := writeStatementsCSV(deps, rows)
		if err != nil {
			return err
		}
		deps.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("statements saved")
		return nil
	},
}

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Compute ratios and growth rates from the raw statements",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := commandDeps()
		if err != nil {
			return err
		}
		rows, err := readStatementsCSV(deps)
		if err != nil {
			return err
		}
		records, dropped := buildRecords(rows)
		if dropped > 0 {
			deps.logger.Warn().Int("dropped", dropped).Msg("incomplete statement rows excluded")
		}
		records = calculateRatios(records)
		records = calculateGrowthRates(records)
		path, err := writeEnrichedCSV(deps, records)
		if err != nil {
			return err
		}
		deps.logger.Info().Str("path", path).Int("records", len(records)).Msg("dataset prepared")
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the multi-tab HTML dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := commandDeps()
		if err != nil {
			return err
		}
		records, err := readEnrichedCSV(deps)
		if err != nil {
			return err
		}
		_, err = writeDashboard(deps, records)
		return err
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated dashboard for local preview",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := commandDeps()
		if err != nil {
			return err
		}
		return startServer(deps)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bankanalysis v%s\n", version)
	},
}
