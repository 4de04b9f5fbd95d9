package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Bucket is one slice of a tiered rate schedule.
// Units:
// - CapacityGB: width of the bucket in GB (not a cumulative threshold); +Inf means unbounded
// - Rate: $ per GB (per GB-month for storage schedules)
type Bucket struct {
	CapacityGB float64 `yaml:"capacity_gb"`
	Rate       float64 `yaml:"rate"`
}

// Unbounded reports whether the bucket absorbs any remaining quantity.
func (b Bucket) Unbounded() bool {
	return math.IsInf(b.CapacityGB, 1)
}

// Schedule is an ordered progressive (marginal) rate schedule.
// The last bucket is always unbounded so every quantity is fully priced.
type Schedule struct {
	buckets []Bucket
}

// NewSchedule validates buckets and returns a schedule.
func NewSchedule(buckets ...Bucket) (Schedule, error) {
	if len(buckets) == 0 {
		return Schedule{}, errors.New("schedule needs at least one bucket")
	}
	for i, b := range buckets {
		if math.IsNaN(b.Rate) || math.IsInf(b.Rate, 0) || b.Rate < 0 {
			return Schedule{}, fmt.Errorf("bucket %d: rate must be a finite value >= 0", i)
		}
		last := i == len(buckets)-1
		if last && !b.Unbounded() {
			return Schedule{}, fmt.Errorf("bucket %d: last bucket must have unbounded capacity", i)
		}
		if !last && (b.Unbounded() || math.IsNaN(b.CapacityGB) || b.CapacityGB <= 0) {
			return Schedule{}, fmt.Errorf("bucket %d: capacity must be finite and > 0", i)
		}
	}
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	return Schedule{buckets: out}, nil
}

// MustSchedule is NewSchedule for static tables; it panics on invalid input.
func MustSchedule(buckets ...Bucket) Schedule {
	s, err := NewSchedule(buckets...)
	if err != nil {
		panic(err)
	}
	return s
}

// Flat is a single-rate schedule.
func Flat(rate float64) Schedule {
	return MustSchedule(Bucket{CapacityGB: math.Inf(1), Rate: rate})
}

// Buckets returns a copy of the schedule's buckets.
func (s Schedule) Buckets() []Bucket {
	out := make([]Bucket, len(s.buckets))
	copy(out, s.buckets)
	return out
}

// IsZero reports whether the schedule was never constructed.
func (s Schedule) IsZero() bool {
	return len(s.buckets) == 0
}

// Cost prices quantityGB against the schedule: each bucket bills the part of the
// quantity that falls inside its width at its own rate.
//
// Arithmetic is done in decimal so that quantities sitting exactly on a bucket
// boundary bill exactly (no float drift between adjacent buckets).
func (s Schedule) Cost(quantityGB float64) float64 {
	if quantityGB <= 0 || math.IsNaN(quantityGB) {
		return 0
	}
	if math.IsInf(quantityGB, 1) {
		return s.costUnbounded()
	}
	remaining := decimal.NewFromFloat(quantityGB)
	total := decimal.Zero
	for _, b := range s.buckets {
		if !remaining.IsPositive() {
			break
		}
		billed := remaining
		if !b.Unbounded() {
			capacity := decimal.NewFromFloat(b.CapacityGB)
			if capacity.LessThan(billed) {
				billed = capacity
			}
		}
		total = total.Add(billed.Mul(decimal.NewFromFloat(b.Rate)))
		remaining = remaining.Sub(billed)
	}
	return total.InexactFloat64()
}

// costUnbounded prices an infinite quantity: every bounded bucket is billed in
// full and the last bucket is infinite unless its rate is zero.
func (s Schedule) costUnbounded() float64 {
	total := 0.0
	for _, b := range s.buckets {
		if b.Unbounded() {
			if b.Rate > 0 {
				return math.Inf(1)
			}
			break
		}
		total += b.CapacityGB * b.Rate
	}
	return total
}
