package runningstat_test

import (
	"testing"

	"github.com/usnistgov/ndnlp/core/runningstat"
	"github.com/usnistgov/ndnlp/core/testenv"
)

var makeAR = testenv.MakeAR

// https://en.wikipedia.org/w/index.php?title=Standard_deviation&oldid=821088286
// "Sample standard deviation of metabolic rate of Northern Fulmars" section "female"
var fulmars = []float64{1091.0, 1490.5, 1956.1, 727.7, 1361.3, 1086.5}

func TestRunningStat(t *testing.T) {
	assert, _ := makeAR(t)

	var a, b, all runningstat.RunningStat
	a.Init(1)
	b.Init(1)
	all.Init(1)

	s := a.Read()
	assert.EqualValues(0, s.Count)
	assert.EqualValues(0, s.Len)
	assert.Nil(s.Min)

	for _, x := range fulmars[:3] {
		a.Push(x)
		all.Push(x)
	}
	for _, x := range fulmars[3:] {
		b.Push(x)
		all.Push(x)
	}

	for _, s := range []runningstat.Snapshot{all.Read(), a.Read().Add(b.Read())} {
		assert.EqualValues(6, s.Count)
		assert.EqualValues(6, s.Len)
		assert.InDelta(1285.5, s.Mean, 0.1)
		assert.InDelta(420.96, s.Stdev, 0.1)
	}

	diff := all.Read().Sub(a.Read())
	assert.EqualValues(3, diff.Len)
	assert.InDelta(b.Read().Mean, diff.Mean, 0.01)
	assert.InDelta(b.Read().Variance, diff.Variance, 0.01)

	scaled := all.Read().Scale(0.001)
	assert.InDelta(1.2855, scaled.Mean, 0.0001)
	assert.InDelta(0.42096, scaled.Stdev, 0.0001)
}

func TestSampleInterval(t *testing.T) {
	assert, _ := makeAR(t)

	var s runningstat.RunningStat
	s.Init(5) // nearest power of two is 4
	for i := 1; i <= 16; i++ {
		s.Push(float64(i))
	}
	snap := s.Read()
	assert.EqualValues(16, snap.Count)
	assert.EqualValues(4, snap.Len)
	assert.InDelta(10.0, snap.Mean, 0.001) // samples 4, 8, 12, 16

	s.Init(0)
	s.Push(1)
	s.Push(2)
	assert.EqualValues(2, s.Read().Len)
}

func TestIntStat(t *testing.T) {
	assert, require := makeAR(t)

	var s runningstat.IntStat
	s.Init(2)
	for _, x := range []uint64{7, 3, 9, 5} {
		s.Push(x)
	}

	snap := s.Read()
	assert.EqualValues(4, snap.Count)
	assert.EqualValues(2, snap.Len)
	require.NotNil(snap.Min)
	require.NotNil(snap.Max)
	assert.EqualValues(3, *snap.Min)
	assert.EqualValues(9, *snap.Max)
	assert.InDelta(4.0, snap.Mean, 0.001) // samples 3, 5

	scaled := snap.Scale(2)
	assert.EqualValues(6, *scaled.Min)
	assert.EqualValues(18, *scaled.Max)

	var empty runningstat.IntStat
	empty.Init(1)
	assert.Nil(empty.Read().Min)
	combined := empty.Read().Add(snap)
	assert.EqualValues(3, *combined.Min)
}
