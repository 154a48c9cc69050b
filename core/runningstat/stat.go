// Package runningstat implements Knuth and Welford's method for computing the standard deviation.
package runningstat

import (
	binutils "github.com/jfoster/binary-utilities"
	"github.com/pkg/math"
)

// MaxSampleInterval is the maximum sampling interval.
const MaxSampleInterval = 1 << 30

// RunningStat collects statistics and allows computing mean and variance.
// Algorithm comes from https://www.johndcook.com/blog/standard_deviation/ .
//
// It is not thread-safe.
type RunningStat struct {
	i    uint64
	mask uint64
	m    moments
}

// Init initializes the instance and clears existing data.
// sampleInterval: how often to collect sample, will be adjusted to nearest power of two and truncated between 1 and 2^30.
func (s *RunningStat) Init(sampleInterval int) {
	interval := binutils.NearPowerOfTwo(int64(sampleInterval))
	interval = math.MinInt64(math.MaxInt64(interval, 1), MaxSampleInterval)
	*s = RunningStat{mask: uint64(interval) - 1}
}

// Push adds an input.
// Only one input in every sampleInterval becomes a sample.
func (s *RunningStat) Push(x float64) {
	s.i++
	if (s.i & s.mask) != 0 {
		return
	}

	s.m.n++
	if s.m.n == 1 {
		s.m.m1, s.m.m2 = x, 0
		return
	}
	delta := x - s.m.m1
	s.m.m1 += delta / float64(s.m.n)
	s.m.m2 += delta * (x - s.m.m1)
}

// Read returns current counters as Snapshot.
func (s RunningStat) Read() Snapshot {
	return newSnapshot(s.i, s.m)
}

// IntStat is RunningStat with unsigned integer inputs.
// It additionally tracks min and max over all inputs, including those not sampled.
type IntStat struct {
	s   RunningStat
	min uint64
	max uint64
}

// Init initializes the instance and clears existing data.
func (s *IntStat) Init(sampleInterval int) {
	s.s.Init(sampleInterval)
	s.min = ^uint64(0)
	s.max = 0
}

// Push adds an input.
func (s *IntStat) Push(x uint64) {
	if x < s.min {
		s.min = x
	}
	if x > s.max {
		s.max = x
	}
	s.s.Push(float64(x))
}

// Read returns current counters as Snapshot.
func (s IntStat) Read() Snapshot {
	snap := s.s.Read()
	if s.s.i > 0 {
		snap.setMinMax(s.min, s.max)
	}
	return snap
}
