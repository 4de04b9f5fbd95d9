package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"genomic-storage-cost/internal/config"
	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/projection"

	"github.com/spf13/cobra"
)

// Demo:
// - Build a scenario (ten genomes a year, S3 then glacier) or load one from --config
// - Run the projection and print the yearly series
// - Re-run it under every file format to show how compression moves the lifetime cost
func main() {
	var (
		cfgPath string
		years   int
	)
	cmd := &cobra.Command{
		Use:          "demo",
		Short:        "Print a yearly projection for a sample scenario",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, years)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to YAML config (optional)")
	cmd.Flags().IntVarP(&years, "years", "n", 12, "Number of years to print")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfgPath string, years int) error {
	// Defaults (can be overridden via --config).
	catalog := pricing.Default()
	sc := config.ScenarioConfig{
		Volumes: map[string]config.VolumeConfig{
			string(model.TestGenome): {Count: 10, SizeGB: 120},
		},
		FileFormat:   string(model.FormatBAM),
		Tier1:        config.TierConfig{StorageClass: "S3", RetentionYears: 2},
		Tier2:        config.TierConfig{StorageClass: "glacier", RetentionYears: 3},
		HorizonYears: 10,
		Reaccess:     config.ReaccessConfig{CasesPerYear: 2, Destination: string(pricing.DestinationInternet)},
	}.WithDefaults()

	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if catalog, err = cfg.Catalog(); err != nil {
			return err
		}
		sc = cfg.Scenario
	}

	s, err := sc.ToModel()
	if err != nil {
		return err
	}
	engine := projection.New(catalog)
	res, err := engine.Run(s)
	if err != nil {
		return err
	}
	series, err := projection.BuildSeries(res, model.StepsPerYear)
	if err != nil {
		return err
	}

	fmt.Printf("Tier1=%s (%.1fy)  Tier2=%s (%.1fy)  format=%s  growth=%.1f%%/y\n\n",
		s.Tier1.StorageClass, s.Tier1.RetentionYears,
		s.Tier2.StorageClass, s.Tier2.RetentionYears,
		s.FileFormat, s.GrowthPercent)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "year\tstored (%s)\ttier1 GB\ttier2 GB\ttests\tcost $\t\n", series.Unit)
	for i := 0; i < min(years, len(series.TimeIndex)); i++ {
		fmt.Fprintf(tw, "%d\t%.2f\t%.1f\t%.1f\t%.1f\t%.2f\t\n",
			series.TimeIndex[i],
			series.Stored[i],
			series.Tier1GB[i],
			series.Tier2GB[i],
			series.TestsRun[i],
			series.TotalCost[i],
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum := series.Summary
	fmt.Printf("\nLifetime cost=$%.2f  tests=%.0f  cost/test=$%.4f\n", sum.LifetimeCost, sum.TotalTests, sum.CostPerTest)

	fmt.Println("\nBy file format:")
	for _, f := range model.FileFormats() {
		alt := s
		alt.FileFormat = f
		r, err := engine.Run(alt)
		if err != nil {
			return err
		}
		fmt.Printf("  %-7s lifetime=$%10.2f  generated=%10.1f GB\n", f, r.LifetimeCost, r.GeneratedGB)
	}
	return nil
}
