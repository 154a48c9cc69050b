package tgconsumer

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/usnistgov/ndnlp/core/runningstat"
)

// PacketCounters is a group of network layer packet counters.
type PacketCounters struct {
	NInterests uint64 `json:"nInterests"`
	NData      uint64 `json:"nData"`
	NNacks     uint64 `json:"nNacks"`
}

func (cnt PacketCounters) ratio(n uint64) float64 {
	if cnt.NInterests == 0 {
		return 0
	}
	return float64(n) / float64(cnt.NInterests)
}

// DataRatio returns NData/NInterests, or zero before any Interest is sent.
func (cnt PacketCounters) DataRatio() float64 {
	return cnt.ratio(cnt.NData)
}

// NackRatio returns NNacks/NInterests, or zero before any Interest is sent.
func (cnt PacketCounters) NackRatio() float64 {
	return cnt.ratio(cnt.NNacks)
}

// Outstanding returns the number of Interests that have not been answered.
func (cnt PacketCounters) Outstanding() uint64 {
	answered := cnt.NData + cnt.NNacks
	if answered > cnt.NInterests {
		return 0
	}
	return cnt.NInterests - answered
}

func (cnt *PacketCounters) add(o PacketCounters) {
	cnt.NInterests += o.NInterests
	cnt.NData += o.NData
	cnt.NNacks += o.NNacks
}

func (cnt PacketCounters) String() string {
	return fmt.Sprintf("%dI %dD(%0.2f%%) %dN(%0.2f%%)",
		cnt.NInterests,
		cnt.NData, 100*cnt.DataRatio(),
		cnt.NNacks, 100*cnt.NackRatio())
}

// RttCounters contains RTT statistics in nanoseconds.
type RttCounters struct {
	runningstat.Snapshot
}

// String formats min/avg/max/stdev in milliseconds.
func (cnt RttCounters) String() string {
	ms := cnt.Scale(1 / float64(time.Millisecond))
	if ms.Min == nil {
		return fmt.Sprintf("-/%0.3f/-/%0.3fms(%dsamp)", ms.Mean, ms.Stdev, ms.Len)
	}
	return fmt.Sprintf("%d/%0.3f/%d/%0.3fms(%dsamp)", *ms.Min, ms.Mean, *ms.Max, ms.Stdev, ms.Len)
}

// PatternCounters contains per-pattern counters.
type PatternCounters struct {
	PacketCounters
	Rtt RttCounters `json:"rtt"`
}

func (cnt PatternCounters) String() string {
	return fmt.Sprintf("%s rtt=%s", cnt.PacketCounters, cnt.Rtt)
}

// Counters contains consumer counters.
type Counters struct {
	PatternCounters
	PerPattern []PatternCounters `json:"perPattern"`
}

func (cnt Counters) String() string {
	var b strings.Builder
	b.WriteString(cnt.PatternCounters.String())
	for i, pcnt := range cnt.PerPattern {
		fmt.Fprintf(&b, ", pattern(%d) %s", i, pcnt)
	}
	return b.String()
}

func (ps *patternState) readCounters() (cnt PatternCounters) {
	cnt.NInterests = ps.nInterests.Load()
	cnt.NData = ps.nData.Load()
	cnt.NNacks = ps.nNacks.Load()
	ps.rttMutex.Lock()
	defer ps.rttMutex.Unlock()
	cnt.Rtt.Snapshot = ps.rtt.Read()
	return cnt
}

func (ps *patternState) clearCounters() {
	for _, c := range []*atomic.Uint64{&ps.nInterests, &ps.nData, &ps.nNacks} {
		c.Store(0)
	}
	ps.rttMutex.Lock()
	defer ps.rttMutex.Unlock()
	ps.rtt.Init(rttSampleFreq)
}

// Counters retrieves counters.
func (c *Consumer) Counters() (cnt Counters) {
	cnt.PerPattern = make([]PatternCounters, len(c.pattern))
	for i, ps := range c.pattern {
		pcnt := ps.readCounters()
		cnt.PerPattern[i] = pcnt
		cnt.PacketCounters.add(pcnt.PacketCounters)
		cnt.Rtt.Snapshot = cnt.Rtt.Add(pcnt.Rtt.Snapshot)
	}
	return cnt
}

// ClearCounters clears counters.
// The consumer should be stopped before calling this.
func (c *Consumer) ClearCounters() {
	for _, ps := range c.pattern {
		ps.clearCounters()
	}
}
