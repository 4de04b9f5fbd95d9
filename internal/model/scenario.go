package model

import (
	"fmt"
	"math"
	"strconv"

	"genomic-storage-cost/internal/pricing"
)

const (
	// StepsPerYear is the engine's native resolution (monthly).
	StepsPerYear = 12

	// MaxYears bounds every year-valued input so a run stays small.
	MaxYears = 100

	// MaxGrowthPercent is the highest yearly growth accepted.
	MaxGrowthPercent = 100

	// MaxVolumeGB bounds the yearly volume at any point of the run (one zettabyte).
	MaxVolumeGB = 1e12
)

// TestVolume is the yearly count of one test type and the size of each test before compression.
type TestVolume struct {
	Count  int
	SizeGB float64
}

// TierPolicy says where a cohort lives and for how long.
type TierPolicy struct {
	StorageClass   string
	RetentionYears float64
}

// Reaccess describes how many cases are read back each year and where they go.
type Reaccess struct {
	CasesPerYear float64
	Destination  pricing.Destination
}

// Scenario is the full set of inputs for one projection run.
// Units:
// - SizeGB: GB per test before compression
// - GrowthPercent: % per year, compounded monthly
// - RetentionYears/HorizonYears: years, converted to whole months
// - Interval: output resolution in months (1 or 12)
type Scenario struct {
	Volumes       map[TestType]TestVolume
	FileFormat    FileFormat
	GrowthPercent float64
	Tier1         TierPolicy
	Tier2         TierPolicy
	HorizonYears  float64
	Reaccess      Reaccess
	Interval      int
}

// Validate checks ranges and enums. Storage class ids are checked against a
// catalog by the engine, since the catalog is not part of the scenario.
func (s Scenario) Validate() error {
	for _, tt := range TestTypes() {
		v := s.Volumes[tt]
		field := "volumes." + string(tt)
		if v.Count < 0 {
			return NewConfigError(field+".count", strconv.Itoa(v.Count), fmt.Errorf("%w: must be >= 0", ErrInvalidValue))
		}
		if !finite(v.SizeGB) || v.SizeGB < 0 || (v.Count > 0 && v.SizeGB == 0) {
			return NewConfigError(field+".size_gb", fmtFloat(v.SizeGB), fmt.Errorf("%w: must be > 0", ErrInvalidValue))
		}
	}
	for tt := range s.Volumes {
		if !knownTestType(tt) {
			return NewConfigError("volumes", string(tt), fmt.Errorf("%w: unknown test type", ErrInvalidValue))
		}
	}
	if _, err := s.FileFormat.Compression(); err != nil {
		return NewConfigError("file_format", string(s.FileFormat), err)
	}
	if !finite(s.GrowthPercent) || s.GrowthPercent < 0 || s.GrowthPercent > MaxGrowthPercent {
		return NewConfigError("growth_percent", fmtFloat(s.GrowthPercent), fmt.Errorf("%w: must be within [0, %d]", ErrInvalidValue, MaxGrowthPercent))
	}
	years := []struct {
		field string
		v     float64
	}{
		{"tier1.retention_years", s.Tier1.RetentionYears},
		{"tier2.retention_years", s.Tier2.RetentionYears},
		{"horizon_years", s.HorizonYears},
	}
	for _, y := range years {
		if !finite(y.v) || y.v < 0 || y.v > MaxYears {
			return NewConfigError(y.field, fmtFloat(y.v), fmt.Errorf("%w: must be within [0, %d]", ErrInvalidValue, MaxYears))
		}
	}
	if s.Tier1.StorageClass == "" {
		return NewConfigError("tier1.storage_class", "", fmt.Errorf("%w: required", ErrInvalidValue))
	}
	if s.Tier2.StorageClass == "" {
		return NewConfigError("tier2.storage_class", "", fmt.Errorf("%w: required", ErrInvalidValue))
	}
	if !finite(s.Reaccess.CasesPerYear) || s.Reaccess.CasesPerYear < 0 {
		return NewConfigError("reaccess.cases_per_year", fmtFloat(s.Reaccess.CasesPerYear), fmt.Errorf("%w: must be >= 0", ErrInvalidValue))
	}
	if _, err := pricing.ParseDestination(string(s.Reaccess.Destination)); err != nil {
		return NewConfigError("reaccess.destination", string(s.Reaccess.Destination), err)
	}
	if s.Interval != 1 && s.Interval != StepsPerYear {
		return NewConfigError("interval", strconv.Itoa(s.Interval), fmt.Errorf("%w: must be 1 or 12", ErrInvalidValue))
	}

	// Inputs that are each in range can still overflow once multiplied out.
	yearly := s.YearlyGB()
	if !finite(yearly) || yearly > MaxVolumeGB {
		return NewConfigError("volumes", fmtFloat(yearly), fmt.Errorf("%w: yearly volume must be <= %g GB", ErrInvalidValue, float64(MaxVolumeGB)))
	}
	if peak := s.PeakYearlyGB(); !finite(peak) || peak > MaxVolumeGB {
		return NewConfigError("growth_percent", fmtFloat(s.GrowthPercent), fmt.Errorf("%w: yearly volume grows past %g GB", ErrInvalidValue, float64(MaxVolumeGB)))
	}
	return nil
}

// RetentionMonths converts tier retentions to whole months.
func (s Scenario) RetentionMonths() (tier1, tier2 int) {
	return yearsToMonths(s.Tier1.RetentionYears), yearsToMonths(s.Tier2.RetentionYears)
}

// Steps is the number of monthly steps simulated: long enough to cover the
// requested horizon and one full retention cycle, plus one step, rounded up
// to whole years so the series always resamples to yearly buckets exactly.
func (s Scenario) Steps() int {
	r1, r2 := s.RetentionMonths()
	n := yearsToMonths(s.HorizonYears)
	if r1+r2 > n {
		n = r1 + r2
	}
	n++
	if rem := n % StepsPerYear; rem != 0 {
		n += StepsPerYear - rem
	}
	return n
}

// YearlyTests is the first-year test count across all types.
func (s Scenario) YearlyTests() float64 {
	total := 0
	for _, tt := range TestTypes() {
		total += s.Volumes[tt].Count
	}
	return float64(total)
}

// YearlyGB is the first-year stored volume across all types, after compression.
// An invalid format yields 0; Validate reports it.
func (s Scenario) YearlyGB() float64 {
	total := 0.0
	for _, tt := range TestTypes() {
		total += s.TestGB(tt) * float64(s.Volumes[tt].Count)
	}
	return total
}

// PeakYearlyGB is the yearly volume reached in the last simulated month.
func (s Scenario) PeakYearlyGB() float64 {
	return s.YearlyGB() * math.Pow(1+s.GrowthPercent/100, float64(s.Steps())/StepsPerYear)
}

// TestGB is the stored size of one test of type tt, after compression.
func (s Scenario) TestGB(tt TestType) float64 {
	m, err := s.FileFormat.Compression()
	if err != nil {
		return 0
	}
	return s.Volumes[tt].SizeGB * m
}

func yearsToMonths(y float64) int {
	return int(math.Round(y * StepsPerYear))
}

func knownTestType(tt TestType) bool {
	for _, k := range TestTypes() {
		if k == tt {
			return true
		}
	}
	return false
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
