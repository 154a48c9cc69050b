package subtract_test

import (
	"testing"

	"github.com/usnistgov/ndnlp/core/subtract"
	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn/l3"
)

var makeAR = testenv.MakeAR

// seqRange has a Sub method recognized by subtract.Sub.
type seqRange struct {
	First, Last uint64
	calls       *int
}

func (r seqRange) Sub(prev seqRange) seqRange {
	*r.calls++
	return seqRange{First: prev.Last + 1, Last: r.Last}
}

// seqCount has a Sub method with the wrong signature, so fields are subtracted instead.
type seqCount struct {
	N     uint64
	calls *int
}

func (c seqCount) Sub(prev seqCount) uint64 {
	*c.calls++
	return c.N - prev.N
}

func TestSubMethod(t *testing.T) {
	assert, _ := makeAR(t)

	nCurr, nPrev := 0, 0
	r := subtract.Sub(seqRange{First: 0, Last: 99, calls: &nCurr}, seqRange{First: 0, Last: 39, calls: &nPrev})
	assert.EqualValues(40, r.First)
	assert.EqualValues(99, r.Last)
	assert.Equal(1, nCurr)
	assert.Equal(0, nPrev)

	nCurr = 0
	c := subtract.Sub(seqCount{N: 7, calls: &nCurr}, seqCount{N: 3, calls: &nPrev})
	assert.EqualValues(4, c.N)
	assert.Nil(c.calls)
	assert.Equal(0, nCurr)
}

type linkCounters struct {
	Frames  int64
	Octets  uint64
	PerPrio [2]int32
	PerLane []uint32
	Ext     *extCounters
	Peers   int `subtract:"-"`
	label   string
}

type extCounters struct {
	Drops uint
}

type withEmbedded struct {
	extCounters
	Counters
	Name string
}

type Counters struct {
	NFrames uint64
	Sub3    uint32
}

func TestStruct(t *testing.T) {
	assert, _ := makeAR(t)
	curr := linkCounters{Frames: -5, Octets: 5, PerPrio: [2]int32{50, -500}, PerLane: []uint32{5000},
		Ext: &extCounters{Drops: 500000}, Peers: 7, label: "curr"}
	prev := linkCounters{Frames: -3, Octets: 3, PerPrio: [2]int32{30, -300}, PerLane: []uint32{3000, 30000},
		Ext: &extCounters{Drops: 300000}, Peers: 4, label: "prev"}

	diff := subtract.Sub(curr, prev)
	assert.EqualValues(-2, diff.Frames)
	assert.EqualValues(2, diff.Octets)
	assert.Equal([2]int32{20, -200}, diff.PerPrio)
	assert.Equal([]uint32{2000}, diff.PerLane)
	if assert.NotNil(diff.Ext) {
		assert.EqualValues(200000, diff.Ext.Drops)
	}
	assert.Equal(7, diff.Peers)
	assert.Equal("", diff.label)

	for _, tt := range []struct {
		name      string
		curr, prv linkCounters
		frames    int64
		octets    uint64
	}{
		{"from-zero", curr, linkCounters{}, -5, 5},
		{"to-zero", linkCounters{}, curr, 5, ^uint64(4)},
	} {
		d := subtract.Sub(tt.curr, tt.prv)
		assert.Equal(tt.frames, d.Frames, tt.name)
		assert.Equal(tt.octets, d.Octets, tt.name)
		assert.Len(d.PerLane, 0, tt.name)
		assert.Nil(d.Ext, tt.name)
	}
}

func TestEmbedded(t *testing.T) {
	assert, _ := makeAR(t)
	curr := withEmbedded{extCounters: extCounters{Drops: 9}, Counters: Counters{NFrames: 100, Sub3: 7}, Name: "A"}
	prev := withEmbedded{extCounters: extCounters{Drops: 4}, Counters: Counters{NFrames: 40, Sub3: 2}, Name: "B"}

	var diff withEmbedded
	subtract.SubFields(curr, prev, &diff)
	assert.EqualValues(5, diff.Drops)
	assert.EqualValues(60, diff.NFrames)
	assert.EqualValues(5, diff.Sub3)
	assert.Equal("", diff.Name)
}

func TestFaceCounters(t *testing.T) {
	assert, _ := makeAR(t)
	curr := l3.FaceCounters{RxFrames: 30, TxFrames: 12, ReassemblerPending: 2}
	curr.Reassembler.NAccepted = 9
	prev := l3.FaceCounters{RxFrames: 10, TxFrames: 2, ReassemblerPending: 5}
	prev.Reassembler.NAccepted = 4

	diff := subtract.Sub(curr, prev)
	assert.EqualValues(20, diff.RxFrames)
	assert.EqualValues(10, diff.TxFrames)
	assert.EqualValues(5, diff.Reassembler.NAccepted)
	assert.Equal(2, diff.ReassemblerPending)
}
