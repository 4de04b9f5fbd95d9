package analysis

import (
	"errors"
	"fmt"
	"sort"

	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/projection"
)

type RankedPair struct {
	Rank int
	PairCost
}

// RankTierPairs runs s for every ordered pair of catalog classes and sorts
// ascending by lifetime cost. Pairs with no egress rate for the scenario's
// destination are skipped; any other error aborts the ranking.
func RankTierPairs(e *projection.Engine, cat *pricing.Catalog, s model.Scenario) ([]RankedPair, error) {
	classes := cat.StorageClasses()
	out := make([]RankedPair, 0, len(classes)*len(classes))
	for _, c1 := range classes {
		for _, c2 := range classes {
			p, err := ComputePairCost(e, s, c1.ID, c2.ID)
			if errors.Is(err, pricing.ErrNoEgressRate) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("pair %s/%s: %w", c1.ID, c2.ID, err)
			}
			out = append(out, RankedPair{PairCost: p})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LifetimeCost < out[j].LifetimeCost
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
