// Package analysis compares storage-class choices for a fixed scenario.
package analysis

import (
	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/projection"
)

// PairCost summarizes one run of a scenario with a given tier-1/tier-2 pairing.
// Tier1 == Tier2 is a valid single-class policy.
type PairCost struct {
	Tier1 string
	Tier2 string

	LifetimeCost float64
	StorageCost  float64
	ReaccessCost float64
	CostPerTest  float64
	PeakStoredGB float64
}

// ComputePairCost runs s with its tier classes replaced by tier1 and tier2.
func ComputePairCost(e *projection.Engine, s model.Scenario, tier1, tier2 string) (PairCost, error) {
	s.Tier1.StorageClass = tier1
	s.Tier2.StorageClass = tier2

	res, err := e.Run(s)
	if err != nil {
		return PairCost{}, err
	}
	p := PairCost{
		Tier1:        tier1,
		Tier2:        tier2,
		LifetimeCost: res.LifetimeCost,
		StorageCost:  res.StorageCost,
		ReaccessCost: res.ReaccessCost,
	}
	if res.TotalTests > 0 {
		p.CostPerTest = res.LifetimeCost / res.TotalTests
	}
	for _, row := range res.Ledger {
		if row.StoredGB > p.PeakStoredGB {
			p.PeakStoredGB = row.StoredGB
		}
	}
	return p, nil
}
