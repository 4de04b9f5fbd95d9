package projection

import (
	"fmt"
	"math"

	"genomic-storage-cost/internal/model"
)

// Unit is the display unit of the resident-volume series.
type Unit string

const (
	UnitGB Unit = "GB"
	UnitTB Unit = "TB"
)

const (
	minAxis        = 50.0
	costAxisPad    = 1.1
	storageAxisPad = 1.8
	tbThresholdGB  = 1000.0
	gbPerTB        = 1000.0
)

// TypeShare is the fraction of volume and cost attributed to one test type.
type TypeShare struct {
	TestType    model.TestType
	VolumeShare float64
	CostShare   float64
}

// Summary holds the scalar statistics shown next to the chart.
type Summary struct {
	LifetimeCost float64
	TotalTests   float64
	CostPerTest  float64
	YearlyGB     float64
	YearlyTests  float64
	GeneratedGB  float64
	ExpiredGB    float64
}

// Series is a Result resampled for display.
// Stored is in Unit; Tier1GB and Tier2GB stay in GB.
type Series struct {
	Interval  int
	TimeIndex []int

	Stored  []float64
	Tier1GB []float64
	Tier2GB []float64

	TestsRun     []float64
	TotalCost    []float64
	Tier1Cost    []float64
	Tier2Cost    []float64
	ReaccessCost []float64

	Unit           Unit
	CostAxisMax    float64
	StorageAxisMax float64

	Breakdown []TypeShare
	Summary   Summary
}

// BuildSeries resamples the ledger at interval and derives the display scalars.
func BuildSeries(r *Result, interval int) (*Series, error) {
	if r == nil {
		return nil, fmt.Errorf("result is nil")
	}
	idx, err := ResampleIndex(r.Indexes(), interval)
	if err != nil {
		return nil, err
	}

	s := &Series{Interval: interval, TimeIndex: idx}
	cols := []struct {
		dst *[]float64
		f   func(StepRow) float64
		red Reducer
	}{
		{&s.Stored, func(x StepRow) float64 { return x.StoredGB }, Max},
		{&s.Tier1GB, func(x StepRow) float64 { return x.Tier1GB }, Max},
		{&s.Tier2GB, func(x StepRow) float64 { return x.Tier2GB }, Max},
		{&s.TestsRun, func(x StepRow) float64 { return x.TestsRun }, Sum},
		{&s.TotalCost, func(x StepRow) float64 { return x.TotalCost }, Sum},
		{&s.Tier1Cost, func(x StepRow) float64 { return x.Tier1StorageCost }, Sum},
		{&s.Tier2Cost, func(x StepRow) float64 { return x.Tier2StorageCost }, Sum},
		{&s.ReaccessCost, func(x StepRow) float64 { return x.ReaccessCost }, Sum},
	}
	for _, c := range cols {
		out, err := Resample(r.Column(c.f), interval, c.red)
		if err != nil {
			return nil, fmt.Errorf("resample: %w", err)
		}
		*c.dst = out
	}

	maxStored := maxOf(s.Stored)
	s.Unit = UnitGB
	if maxStored >= tbThresholdGB {
		s.Unit = UnitTB
		for i := range s.Stored {
			s.Stored[i] /= gbPerTB
		}
		maxStored /= gbPerTB
	}
	s.StorageAxisMax = math.Max(minAxis, storageAxisPad*maxStored)
	s.CostAxisMax = math.Max(minAxis, costAxisPad*maxOf(s.TotalCost))

	s.Breakdown = breakdown(r)
	s.Summary = Summary{
		LifetimeCost: r.LifetimeCost,
		TotalTests:   r.TotalTests,
		YearlyGB:     r.YearlyGB,
		YearlyTests:  r.YearlyTests,
		GeneratedGB:  r.GeneratedGB,
		ExpiredGB:    r.ExpiredGB,
	}
	if r.TotalTests > 0 {
		s.Summary.CostPerTest = r.LifetimeCost / r.TotalTests
	}
	return s, nil
}

// breakdown attributes volume-driven cost (storage, per-GB retrieval, transfer)
// by volume share and per-request fees by test-count share.
func breakdown(r *Result) []TypeShare {
	volumeCost := r.StorageCost + r.ReaccessCost - r.RequestCost
	out := make([]TypeShare, 0, len(model.TestTypes()))
	for _, tt := range model.TestTypes() {
		ts := TypeShare{TestType: tt, VolumeShare: r.VolumeShare[tt]}
		if r.LifetimeCost > 0 {
			ts.CostShare = (volumeCost*r.VolumeShare[tt] + r.RequestCost*r.CountShare[tt]) / r.LifetimeCost
		}
		out = append(out, ts)
	}
	return out
}

func maxOf(xs []float64) float64 {
	out := 0.0
	for _, x := range xs {
		out = math.Max(out, x)
	}
	return out
}
