package projection

import (
	"fmt"
	"math"
)

// Reducer folds one chunk of a series into a single value.
type Reducer int

const (
	// Sum is for flows: costs, tests, generated volume.
	Sum Reducer = iota
	// Max is for levels: resident volume.
	Max
)

func (r Reducer) String() string {
	switch r {
	case Sum:
		return "sum"
	case Max:
		return "max"
	default:
		return fmt.Sprintf("Reducer(%d)", int(r))
	}
}

func (r Reducer) reduce(chunk []float64) float64 {
	switch r {
	case Max:
		out := math.Inf(-1)
		for _, v := range chunk {
			out = math.Max(out, v)
		}
		return out
	default:
		out := 0.0
		for _, v := range chunk {
			out += v
		}
		return out
	}
}

func checkInterval(n, interval int) error {
	if interval < 1 {
		return fmt.Errorf("resample interval must be >= 1 (got %d)", interval)
	}
	if n%interval != 0 {
		return fmt.Errorf("series length %d is not a multiple of interval %d", n, interval)
	}
	return nil
}

// Resample splits series into consecutive chunks of interval elements and
// reduces each chunk to one value. Interval 1 returns a copy.
func Resample(series []float64, interval int, r Reducer) ([]float64, error) {
	if err := checkInterval(len(series), interval); err != nil {
		return nil, err
	}
	if r != Sum && r != Max {
		return nil, fmt.Errorf("unknown reducer %v", r)
	}
	out := make([]float64, 0, len(series)/interval)
	for i := 0; i < len(series); i += interval {
		out = append(out, r.reduce(series[i:i+interval]))
	}
	return out, nil
}

// ResampleIndex maps each chunk of a time index to its first entry divided by interval.
func ResampleIndex(idx []int, interval int) ([]int, error) {
	if err := checkInterval(len(idx), interval); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(idx)/interval)
	for i := 0; i < len(idx); i += interval {
		out = append(out, idx[i]/interval)
	}
	return out, nil
}

// ResampleLedger aggregates monthly rows into rows of interval months.
// Flow columns are summed, resident volumes take the chunk maximum and
// CumCost is the value at the end of the chunk.
func ResampleLedger(ledger []StepRow, interval int) ([]StepRow, error) {
	if err := checkInterval(len(ledger), interval); err != nil {
		return nil, err
	}
	out := make([]StepRow, 0, len(ledger)/interval)
	for i := 0; i < len(ledger); i += interval {
		chunk := ledger[i : i+interval]
		row := StepRow{Index: chunk[0].Index / interval}
		for _, c := range chunk {
			row.GeneratedGB += c.GeneratedGB
			row.TestsRun += c.TestsRun
			row.Tier1GB = math.Max(row.Tier1GB, c.Tier1GB)
			row.Tier2GB = math.Max(row.Tier2GB, c.Tier2GB)
			row.StoredGB = math.Max(row.StoredGB, c.StoredGB)
			row.Tier1StorageCost += c.Tier1StorageCost
			row.Tier2StorageCost += c.Tier2StorageCost
			row.RetrievalCost += c.RetrievalCost
			row.RequestCost += c.RequestCost
			row.TransferCost += c.TransferCost
			row.ReaccessCost += c.ReaccessCost
			row.TotalCost += c.TotalCost
		}
		row.CumCost = chunk[len(chunk)-1].CumCost
		out = append(out, row)
	}
	return out, nil
}
