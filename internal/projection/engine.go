// Package projection runs the monthly two-tier storage simulation and turns
// its ledger into display-ready series.
package projection

import (
	"errors"
	"fmt"
	"math"

	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"
)

// ErrInvariant marks an internal bookkeeping failure. It never depends on user input.
var ErrInvariant = errors.New("projection invariant violated")

type Engine struct {
	catalog *pricing.Catalog
}

func New(catalog *pricing.Catalog) *Engine { return &Engine{catalog: catalog} }

// tier is one storage tier with its prices resolved.
type tier struct {
	class  pricing.StorageClass
	egress pricing.Schedule
}

// state is the mutable shelf carried from one month to the next.
type state struct {
	generatedGB float64
	testsRun    float64

	tier1GB float64
	tier2GB float64

	// cohorts[i] is the volume generated in month i+1.
	cohorts []float64
}

// cohort returns the volume generated in month step (1-based).
func (st *state) cohort(step int) (float64, error) {
	if step < 1 || step > len(st.cohorts) {
		return 0, fmt.Errorf("%w: cohort %d outside history [1, %d]", ErrInvariant, step, len(st.cohorts))
	}
	return st.cohorts[step-1], nil
}

// mix is the first-year test mix, fixed for the whole run.
type mix struct {
	gbPerCase   float64
	volumeShare map[model.TestType]float64
	countShare  map[model.TestType]float64
}

func newMix(s model.Scenario) mix {
	m := mix{
		volumeShare: make(map[model.TestType]float64, len(model.TestTypes())),
		countShare:  make(map[model.TestType]float64, len(model.TestTypes())),
	}
	tests := s.YearlyTests()
	gb := s.YearlyGB()
	for _, tt := range model.TestTypes() {
		n := float64(s.Volumes[tt].Count)
		if tests > 0 {
			m.countShare[tt] = n / tests
		}
		if gb > 0 {
			m.volumeShare[tt] = n * s.TestGB(tt) / gb
		}
		m.gbPerCase += m.countShare[tt] * s.TestGB(tt)
	}
	return m
}

// Run simulates the scenario month by month.
//
// Each month's cohort enters tier 1, moves to tier 2 after the tier-1
// retention and is deleted after the tier-2 retention. Storage is billed on
// the tier totals; re-accessed cases are read back from each tier in
// proportion to its resident volume.
func (e *Engine) Run(s model.Scenario) (*Result, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	t1, t2, err := e.resolve(s)
	if err != nil {
		return nil, err
	}

	r1, r2 := s.RetentionMonths()
	steps := s.Steps()
	growth := math.Pow(1+s.GrowthPercent/100, 1.0/model.StepsPerYear)
	cases := s.Reaccess.CasesPerYear / model.StepsPerYear
	mx := newMix(s)

	st := &state{
		generatedGB: s.YearlyGB() / model.StepsPerYear,
		testsRun:    s.YearlyTests() / model.StepsPerYear,
		cohorts:     make([]float64, 0, steps),
	}
	res := &Result{
		Ledger:      make([]StepRow, 0, steps),
		YearlyGB:    s.YearlyGB(),
		YearlyTests: s.YearlyTests(),
		VolumeShare: mx.volumeShare,
		CountShare:  mx.countShare,
	}

	cum := 0.0
	for t := 1; t <= steps; t++ {
		st.cohorts = append(st.cohorts, st.generatedGB)
		st.tier1GB += st.generatedGB

		if from := t - r1; from >= 1 {
			moved, err := st.cohort(from)
			if err != nil {
				return nil, fmt.Errorf("month %d shift: %w", t, err)
			}
			st.tier1GB -= moved
			st.tier2GB += moved
		}
		if from := t - r1 - r2; from >= 1 {
			expired, err := st.cohort(from)
			if err != nil {
				return nil, fmt.Errorf("month %d purge: %w", t, err)
			}
			st.tier2GB -= expired
			res.ExpiredGB += expired
		}
		// float drift after equal add/subtract
		st.tier1GB = math.Max(st.tier1GB, 0)
		st.tier2GB = math.Max(st.tier2GB, 0)

		row := StepRow{
			Index:       t - 1,
			GeneratedGB: st.generatedGB,
			TestsRun:    st.testsRun,
			Tier1GB:     st.tier1GB,
			Tier2GB:     st.tier2GB,
			StoredGB:    st.tier1GB + st.tier2GB,

			Tier1StorageCost: t1.class.Storage.Cost(st.tier1GB),
			Tier2StorageCost: t2.class.Storage.Cost(st.tier2GB),
		}
		reaccess(&row, cases*mx.gbPerCase, cases, st, t1, t2)
		row.TotalCost = row.Tier1StorageCost + row.Tier2StorageCost + row.ReaccessCost
		cum += row.TotalCost
		row.CumCost = cum

		res.GeneratedGB += st.generatedGB
		res.TotalTests += st.testsRun
		res.StorageCost += row.Tier1StorageCost + row.Tier2StorageCost
		res.RequestCost += row.RequestCost
		res.ReaccessCost += row.ReaccessCost
		res.Ledger = append(res.Ledger, row)

		st.generatedGB *= growth
		st.testsRun *= growth
	}
	res.LifetimeCost = cum
	return res, nil
}

func (e *Engine) resolve(s model.Scenario) (tier, tier, error) {
	var out [2]tier
	policies := []struct {
		field string
		id    string
	}{
		{"tier1.storage_class", s.Tier1.StorageClass},
		{"tier2.storage_class", s.Tier2.StorageClass},
	}
	for i, p := range policies {
		sc, err := e.catalog.StorageClass(p.id)
		if err != nil {
			return tier{}, tier{}, model.NewConfigError(p.field, p.id, err)
		}
		eg, err := e.catalog.Egress(sc.Provider, s.Reaccess.Destination)
		if err != nil {
			return tier{}, tier{}, model.NewConfigError("reaccess.destination", string(s.Reaccess.Destination), err)
		}
		out[i] = tier{class: sc, egress: eg}
	}
	return out[0], out[1], nil
}

// reaccess fills the re-access columns of row. gb and cases are this month's
// read-back volume and case count; both are split across tiers by resident volume.
func reaccess(row *StepRow, gb, cases float64, st *state, t1, t2 tier) {
	stored := st.tier1GB + st.tier2GB
	if gb <= 0 || cases <= 0 || stored <= 0 {
		return
	}
	share1 := st.tier1GB / stored
	share2 := st.tier2GB / stored
	gb1, gb2 := gb*share1, gb*share2

	row.RequestCost = cases*share1*t1.class.RetrievalPerRequest + cases*share2*t2.class.RetrievalPerRequest
	row.RetrievalCost = gb1*t1.class.RetrievalPerGB + gb2*t2.class.RetrievalPerGB + row.RequestCost

	// Egress tiers apply per provider, so volume leaving the same provider is billed together.
	if t1.class.Provider == t2.class.Provider {
		row.TransferCost = t1.egress.Cost(gb)
	} else {
		row.TransferCost = t1.egress.Cost(gb1) + t2.egress.Cost(gb2)
	}
	row.ReaccessCost = row.RetrievalCost + row.TransferCost
}
