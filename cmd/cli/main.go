package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"genomic-storage-cost/internal/analysis"
	"genomic-storage-cost/internal/config"
	"genomic-storage-cost/internal/logging"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/projection"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	Version = "dev"
)

var (
	cfgPath     string
	pricingPath string
	logLevel    string
	log         zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cli",
		Short:   "Project the lifetime storage cost of sequencing data across two storage tiers",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, "console", os.Stderr)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to YAML config")
	rootCmd.PersistentFlags().StringVar(&pricingPath, "pricing", "", "Pricing YAML; overrides pricing_file from the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = rootCmd.MarkPersistentFlagRequired("config")

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Run one projection and write its ledger as CSV",
		Example: "  cli project --config examples/scenario.yaml --out results/ledger.csv\n" +
			"  cli project --config examples/lab-growth.yaml --interval 1 --out results/monthly.csv",
		RunE: runProject,
	}
	projectCmd.Flags().StringP("out", "O", "results/ledger.csv", "Output CSV path")
	projectCmd.Flags().Int("interval", 0, "Ledger resolution in months (1 or 12); 0 uses scenario.interval from the config")

	rankCmd := &cobra.Command{
		Use:     "rank",
		Short:   "Rank every tier1/tier2 storage-class pair by lifetime cost",
		Example: "  cli rank --config examples/scenario.yaml --limit 5 -o json",
		RunE:    runRank,
	}
	rankCmd.Flags().IntP("limit", "n", 10, "Number of pairs to print (0=all)")
	rankCmd.Flags().StringP("output", "o", "table", "Output format (table, json, yaml)")

	rootCmd.AddCommand(projectCmd, rankCmd)
	return rootCmd
}

// load reads the config and the pricing catalog it points at.
func load() (*config.Config, *pricing.Catalog, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if pricingPath != "" {
		cfg.PricingFile = pricingPath
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("load pricing: %w", err)
	}
	log.Debug().
		Str("config", cfgPath).
		Str("pricing", cfg.PricingFile).
		Int("storage_classes", len(cat.StorageClasses())).
		Msg("configuration loaded")
	return cfg, cat, nil
}

func runProject(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	interval, _ := cmd.Flags().GetInt("interval")

	cfg, cat, err := load()
	if err != nil {
		return err
	}
	s, err := cfg.Scenario.ToModel()
	if err != nil {
		return err
	}

	res, err := projection.New(cat).Run(s)
	if err != nil {
		return err
	}
	if interval == 0 {
		interval = cfg.Scenario.Interval
	}
	ledger, err := projection.ResampleLedger(res.Ledger, interval)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := projection.WriteLedgerCSV(outPath, ledger); err != nil {
		return err
	}

	log.Info().
		Int("rows", len(ledger)).
		Str("out", outPath).
		Msg("ledger written")

	costPerTest := 0.0
	if res.TotalTests > 0 {
		costPerTest = res.LifetimeCost / res.TotalTests
	}
	fmt.Printf("Lifetime cost=$%.2f over %d months (storage=$%.2f re-access=$%.2f)\n",
		res.LifetimeCost, len(res.Ledger), res.StorageCost, res.ReaccessCost)
	fmt.Printf("Tests=%.0f cost/test=$%.4f generated=%.1f GB expired=%.1f GB\n",
		res.TotalTests, costPerTest, res.GeneratedGB, res.ExpiredGB)
	return nil
}

func runRank(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	output, _ := cmd.Flags().GetString("output")

	cfg, cat, err := load()
	if err != nil {
		return err
	}
	s, err := cfg.Scenario.ToModel()
	if err != nil {
		return err
	}

	ranked, err := analysis.RankTierPairs(projection.New(cat), cat, s)
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return printRanking(os.Stdout, output, ranked)
}

type rankRow struct {
	Rank         int     `json:"rank" yaml:"rank"`
	Tier1        string  `json:"tier1" yaml:"tier1"`
	Tier2        string  `json:"tier2" yaml:"tier2"`
	LifetimeCost float64 `json:"lifetime_cost" yaml:"lifetime_cost"`
	StorageCost  float64 `json:"storage_cost" yaml:"storage_cost"`
	ReaccessCost float64 `json:"reaccess_cost" yaml:"reaccess_cost"`
	CostPerTest  float64 `json:"cost_per_test" yaml:"cost_per_test"`
	PeakStoredGB float64 `json:"peak_stored_gb" yaml:"peak_stored_gb"`
}

func printRanking(w io.Writer, format string, ranked []analysis.RankedPair) error {
	rows := make([]rankRow, len(ranked))
	for i, r := range ranked {
		rows[i] = rankRow{
			Rank:         r.Rank,
			Tier1:        r.Tier1,
			Tier2:        r.Tier2,
			LifetimeCost: r.LifetimeCost,
			StorageCost:  r.StorageCost,
			ReaccessCost: r.ReaccessCost,
			CostPerTest:  r.CostPerTest,
			PeakStoredGB: r.PeakStoredGB,
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(w).Encode(rows)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tTIER1\tTIER2\tLIFETIME$\tSTORAGE$\tREACCESS$\t$/TEST\tPEAK GB")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.4f\t%.1f\n",
				r.Rank, r.Tier1, r.Tier2, r.LifetimeCost, r.StorageCost, r.ReaccessCost, r.CostPerTest, r.PeakStoredGB)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}
