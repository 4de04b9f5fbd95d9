package model

import (
	"errors"
	"math"
	"testing"

	"genomic-storage-cost/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScenario() Scenario {
	return Scenario{
		Volumes: map[TestType]TestVolume{
			TestGenome: {Count: 10, SizeGB: 120},
			TestExome:  {Count: 0, SizeGB: 6},
			TestPanel:  {Count: 0, SizeGB: 1},
		},
		FileFormat:    FormatBAM,
		GrowthPercent: 0,
		Tier1:         TierPolicy{StorageClass: "S3", RetentionYears: 2},
		Tier2:         TierPolicy{StorageClass: "glacier", RetentionYears: 3},
		HorizonYears:  10,
		Reaccess:      Reaccess{CasesPerYear: 0, Destination: pricing.DestinationInternet},
		Interval:      12,
	}
}

func TestScenarioValidate_OK(t *testing.T) {
	require.NoError(t, validScenario().Validate())
}

func TestScenarioValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
		field  string
		reason error
	}{
		{"negative count", func(s *Scenario) { s.Volumes[TestExome] = TestVolume{Count: -1, SizeGB: 6} }, "volumes.exome.count", ErrInvalidValue},
		{"zero size with tests", func(s *Scenario) { s.Volumes[TestPanel] = TestVolume{Count: 3} }, "volumes.panel.size_gb", ErrInvalidValue},
		{"nan size", func(s *Scenario) { s.Volumes[TestGenome] = TestVolume{Count: 1, SizeGB: math.NaN()} }, "volumes.genome.size_gb", ErrInvalidValue},
		{"unknown test type", func(s *Scenario) { s.Volumes["rna"] = TestVolume{Count: 1, SizeGB: 1} }, "volumes", ErrInvalidValue},
		{"unknown format", func(s *Scenario) { s.FileFormat = "FASTQ" }, "file_format", ErrUnknownFileFormat},
		{"negative growth", func(s *Scenario) { s.GrowthPercent = -5 }, "growth_percent", ErrInvalidValue},
		{"growth above cap", func(s *Scenario) { s.GrowthPercent = 1e6 }, "growth_percent", ErrInvalidValue},
		{"yearly volume overflows", func(s *Scenario) { s.Volumes[TestGenome] = TestVolume{Count: 10, SizeGB: 1e308} }, "volumes", ErrInvalidValue},
		{"yearly volume too large", func(s *Scenario) { s.Volumes[TestGenome] = TestVolume{Count: 1000, SizeGB: 1e10} }, "volumes", ErrInvalidValue},
		{"growth compounds past bound", func(s *Scenario) {
			s.Volumes[TestGenome] = TestVolume{Count: 1000, SizeGB: 1000}
			s.GrowthPercent = 100
			s.HorizonYears = 100
		}, "growth_percent", ErrInvalidValue},
		{"negative retention", func(s *Scenario) { s.Tier1.RetentionYears = -1 }, "tier1.retention_years", ErrInvalidValue},
		{"huge horizon", func(s *Scenario) { s.HorizonYears = 1000 }, "horizon_years", ErrInvalidValue},
		{"missing tier2 class", func(s *Scenario) { s.Tier2.StorageClass = "" }, "tier2.storage_class", ErrInvalidValue},
		{"negative reaccess", func(s *Scenario) { s.Reaccess.CasesPerYear = -1 }, "reaccess.cases_per_year", ErrInvalidValue},
		{"bad destination", func(s *Scenario) { s.Reaccess.Destination = "on-prem" }, "reaccess.destination", pricing.ErrUnknownDestination},
		{"bad interval", func(s *Scenario) { s.Interval = 6 }, "interval", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)

			ce, ok := AsConfigError(err)
			require.True(t, ok, "expected ConfigError, got %T", err)
			assert.Equal(t, tt.field, ce.Field)
			assert.True(t, errors.Is(err, tt.reason))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestScenario_Steps(t *testing.T) {
	tests := []struct {
		name    string
		horizon float64
		r1, r2  float64
		want    int
	}{
		{"horizon dominates", 10, 2, 3, 132},
		{"retention dominates", 1, 2, 3, 72},
		{"exact year boundary", 0, 0, 0, 12},
		{"fractional retention", 0, 0.5, 0, 12},
		{"fractional rounds up to whole year", 2, 1.25, 1, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			s.HorizonYears = tt.horizon
			s.Tier1.RetentionYears = tt.r1
			s.Tier2.RetentionYears = tt.r2
			got := s.Steps()
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got%StepsPerYear)

			r1, r2 := s.RetentionMonths()
			assert.GreaterOrEqual(t, got, r1+r2+1)
			assert.GreaterOrEqual(t, got, yearsToMonths(tt.horizon)+1)
		})
	}
}

func TestScenario_YearlyTotals(t *testing.T) {
	s := validScenario()
	s.Volumes[TestExome] = TestVolume{Count: 100, SizeGB: 6}
	s.FileFormat = FormatCRAMv3

	assert.Equal(t, 110.0, s.YearlyTests())
	assert.InDelta(t, (10*120+100*6)*0.6, s.YearlyGB(), 1e-9)
	assert.InDelta(t, 72.0, s.TestGB(TestGenome), 1e-9)
}

func TestParseFileFormat(t *testing.T) {
	f, err := ParseFileFormat("cramv2")
	require.NoError(t, err)
	assert.Equal(t, FormatCRAMv2, f)
	m, err := f.Compression()
	require.NoError(t, err)
	assert.Equal(t, 0.7, m)

	_, err = ParseFileFormat("FASTQ")
	assert.ErrorIs(t, err, ErrUnknownFileFormat)
}
