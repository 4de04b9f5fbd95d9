package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3Like(t *testing.T) Schedule {
	t.Helper()
	s, err := NewSchedule(
		Bucket{CapacityGB: 50000, Rate: 0.023},
		Bucket{CapacityGB: 450000, Rate: 0.022},
		Bucket{CapacityGB: math.Inf(1), Rate: 0.021},
	)
	require.NoError(t, err)
	return s
}

func TestScheduleCost_BucketBoundaries(t *testing.T) {
	s := s3Like(t)

	assert.Equal(t, 1150.0, s.Cost(50000))
	assert.Equal(t, 11050.0, s.Cost(500000))
	assert.Equal(t, 13150.0, s.Cost(600000))
}

func TestScheduleCost_Zero(t *testing.T) {
	for _, s := range []Schedule{s3Like(t), Flat(0.004), Flat(0), S3Standard} {
		assert.Equal(t, 0.0, s.Cost(0))
	}
	assert.Equal(t, 0.0, s3Like(t).Cost(-10))
	assert.Equal(t, 0.0, Schedule{}.Cost(100))
}

func TestScheduleCost_Infinite(t *testing.T) {
	assert.NotPanics(t, func() { s3Like(t).Cost(math.Inf(1)) })
	assert.True(t, math.IsInf(s3Like(t).Cost(math.Inf(1)), 1))
	assert.True(t, math.IsInf(Flat(0.004).Cost(math.Inf(1)), 1))
	assert.Equal(t, 0.0, Flat(0).Cost(math.Inf(1)))

	free, err := NewSchedule(
		Bucket{CapacityGB: 100, Rate: 0.09},
		Bucket{CapacityGB: math.Inf(1), Rate: 0},
	)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, free.Cost(math.Inf(1)), 1e-9)
	assert.Equal(t, 0.0, s3Like(t).Cost(math.Inf(-1)))
}

func TestScheduleCost_NotAdditiveAcrossArbitrarySplits(t *testing.T) {
	s := s3Like(t)

	whole := s.Cost(60000)
	split := s.Cost(40000) + s.Cost(20000)
	assert.InDelta(t, 1370.0, whole, 1e-9)
	assert.InDelta(t, 1380.0, split, 1e-9)
	assert.NotEqual(t, whole, split)
}

func TestScheduleCost_AdditiveFromBucketBoundary(t *testing.T) {
	s := s3Like(t)

	// 50 000 ends exactly on the first boundary, so the next 30 000 GB
	// are billed entirely at the second bucket's rate.
	assert.InDelta(t, s.Cost(50000)+30000*0.022, s.Cost(80000), 1e-9)
	assert.InDelta(t, s.Cost(500000)+1000*0.021, s.Cost(501000), 1e-9)
}

func TestScheduleCost_MatchesIntegratedRate(t *testing.T) {
	s := s3Like(t)
	for _, q := range []float64{1, 49999.5, 50000.25, 123456.789, 499999, 750000} {
		want := 0.0
		rest := q
		for _, b := range s.Buckets() {
			part := rest
			if !b.Unbounded() && b.CapacityGB < part {
				part = b.CapacityGB
			}
			want += part * b.Rate
			rest -= part
			if rest <= 0 {
				break
			}
		}
		assert.InDelta(t, want, s.Cost(q), 1e-6, "quantity %v", q)
	}
}

func TestFlat(t *testing.T) {
	assert.InDelta(t, 4.8, Flat(0.004).Cost(1200), 1e-12)
}

func TestNewSchedule_Validation(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name    string
		buckets []Bucket
	}{
		{name: "empty"},
		{name: "negative rate", buckets: []Bucket{{CapacityGB: inf, Rate: -1}}},
		{name: "bounded last bucket", buckets: []Bucket{{CapacityGB: 100, Rate: 1}}},
		{name: "unbounded middle bucket", buckets: []Bucket{{CapacityGB: inf, Rate: 1}, {CapacityGB: inf, Rate: 1}}},
		{name: "zero capacity", buckets: []Bucket{{CapacityGB: 0, Rate: 1}, {CapacityGB: inf, Rate: 1}}},
		{name: "nan rate", buckets: []Bucket{{CapacityGB: inf, Rate: math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchedule(tt.buckets...)
			assert.Error(t, err)
		})
	}
}

func TestSchedule_BucketsIsCopy(t *testing.T) {
	s := s3Like(t)
	b := s.Buckets()
	b[0].Rate = 99
	assert.Equal(t, 1150.0, s.Cost(50000))
}
