package runningstat

import (
	"math"
)

// moments holds sample count, mean, and sum of squared deviations.
type moments struct {
	n      uint64
	m1, m2 float64
}

// merge combines moments of two disjoint sample sets (Chan et al.).
func (a moments) merge(b moments) moments {
	switch {
	case a.n == 0:
		return b
	case b.n == 0:
		return a
	}
	aN, bN := float64(a.n), float64(b.n)
	cN := aN + bN
	delta := b.m1 - a.m1
	return moments{
		n:  a.n + b.n,
		m1: (aN*a.m1 + bN*b.m1) / cN,
		m2: a.m2 + b.m2 + delta*delta*aN*bN/cN,
	}
}

// remove is the inverse of merge: a.merge(b).remove(a) == b.
func (c moments) remove(a moments) moments {
	if c.n <= a.n {
		return moments{}
	}
	cN, aN := float64(c.n), float64(a.n)
	bN := cN - aN
	m1 := (cN*c.m1 - aN*a.m1) / bN
	delta := m1 - a.m1
	return moments{
		n:  c.n - a.n,
		m1: m1,
		m2: c.m2 - a.m2 - delta*delta*aN*bN/cN,
	}
}

// Snapshot contains a snapshot of RunningStat reading.
type Snapshot struct {
	// Count is the number of input values.
	Count uint64 `json:"count"`
	// Len is the number of collected samples.
	Len uint64 `json:"len"`
	// Mean is valid if Len>0.
	Mean float64 `json:"mean"`
	// Variance is valid if Len>1.
	Variance float64 `json:"variance"`
	// Stdev is valid if Len>1.
	Stdev float64 `json:"stdev"`
	M1    float64 `json:"m1"`
	M2    float64 `json:"m2"`
	// Min is the minimum input, available from IntStat only.
	Min *uint64 `json:"min,omitempty"`
	// Max is the maximum input, available from IntStat only.
	Max *uint64 `json:"max,omitempty"`
}

func newSnapshot(count uint64, m moments) (s Snapshot) {
	s.Count, s.Len, s.M1, s.M2 = count, m.n, m.m1, m.m2
	if m.n > 0 {
		s.Mean = m.m1
	}
	if m.n > 1 {
		s.Variance = m.m2 / float64(m.n-1)
		s.Stdev = math.Sqrt(s.Variance)
	}
	return s
}

func (s Snapshot) moments() moments {
	return moments{n: s.Len, m1: s.M1, m2: s.M2}
}

func (s *Snapshot) setMinMax(min, max uint64) {
	s.Min, s.Max = &min, &max
}

func (s Snapshot) hasMinMax() bool {
	return s.Min != nil && s.Max != nil
}

// Add combines stats with another instance.
func (s Snapshot) Add(o Snapshot) Snapshot {
	switch {
	case s.Len == 0 && s.Count == 0:
		return o
	case o.Len == 0 && o.Count == 0:
		return s
	}

	r := newSnapshot(s.Count+o.Count, s.moments().merge(o.moments()))
	if s.hasMinMax() && o.hasMinMax() {
		min, max := *s.Min, *s.Max
		if *o.Min < min {
			min = *o.Min
		}
		if *o.Max > max {
			max = *o.Max
		}
		r.setMinMax(min, max)
	}
	return r
}

// Sub computes numerical difference.
// o must be an earlier snapshot of the same RunningStat.
// Min and Max are unavailable in the result.
func (s Snapshot) Sub(o Snapshot) Snapshot {
	return newSnapshot(s.Count-o.Count, s.moments().remove(o.moments()))
}

// Scale multiplies every number by a ratio.
func (s Snapshot) Scale(ratio float64) Snapshot {
	m := s.moments()
	m.m1, m.m2 = m.m1*ratio, m.m2*ratio*ratio
	r := newSnapshot(s.Count, m)
	if s.hasMinMax() {
		r.setMinMax(uint64(float64(*s.Min)*ratio), uint64(float64(*s.Max)*ratio))
	}
	return r
}
