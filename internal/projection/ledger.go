package projection

import "genomic-storage-cost/internal/model"

// StepRow is one month of projection output.
// This is the primary artifact for "what happened" in a run; Series is derived from it.
type StepRow struct {
	Index int // 0-based month

	GeneratedGB float64
	TestsRun    float64

	Tier1GB  float64
	Tier2GB  float64
	StoredGB float64

	Tier1StorageCost float64
	Tier2StorageCost float64

	// RetrievalCost covers per-GB and per-request retrieval fees.
	RetrievalCost float64
	// RequestCost is the per-request part of RetrievalCost.
	RequestCost  float64
	TransferCost float64
	ReaccessCost float64

	TotalCost float64
	CumCost   float64
}

// Result is the full monthly ledger plus run totals.
type Result struct {
	Ledger []StepRow

	LifetimeCost float64
	TotalTests   float64
	GeneratedGB  float64
	ExpiredGB    float64

	// First-year inputs, echoed for the summary panel.
	YearlyGB    float64
	YearlyTests float64

	// Per-test-type shares of the first-year mix.
	VolumeShare map[model.TestType]float64
	CountShare  map[model.TestType]float64

	// Component totals, used for cost attribution.
	StorageCost  float64
	RequestCost  float64
	ReaccessCost float64
}

// Column extracts one field of the ledger as a series.
func (r *Result) Column(f func(StepRow) float64) []float64 {
	out := make([]float64, len(r.Ledger))
	for i, row := range r.Ledger {
		out[i] = f(row)
	}
	return out
}

// Indexes returns the month index column.
func (r *Result) Indexes() []int {
	out := make([]int, len(r.Ledger))
	for i, row := range r.Ledger {
		out[i] = row.Index
	}
	return out
}
