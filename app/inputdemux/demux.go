// Package inputdemux dispatches received network layer packets to destination queues.
package inputdemux

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/core/ringbuffer"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"go.uber.org/zap"
)

var logger = logging.New("inputdemux")

// MaxDest is the maximum number of destinations.
// With ModeByPitToken, the most significant byte of the PIT token selects a destination.
const MaxDest = 256

// Mode indicates how a Demux chooses a destination.
type Mode int

// Mode values.
const (
	ModeDrop Mode = iota
	ModeFirst
	ModeRoundRobin
	ModeByPitToken
)

var modeStrings = map[Mode]string{
	ModeDrop:       "drop",
	ModeFirst:      "first",
	ModeRoundRobin: "roundrobin",
	ModeByPitToken: "pittoken",
}

func (m Mode) String() string {
	if s, ok := modeStrings[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for mode, str := range modeStrings {
		if str == s {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown demux mode %q", s)
}

// Errors.
var (
	ErrTooManyDest = fmt.Errorf("cannot have more than %d destinations", MaxDest)
	ErrNoDest      = errors.New("no destination for dispatch mode")
)

// DestCounters contains per-destination counters.
type DestCounters struct {
	NQueued  uint64 `json:"nQueued"`
	NDropped uint64 `json:"nDropped"`
}

func (cnt DestCounters) String() string {
	return fmt.Sprintf("%dqueued %ddropped", cnt.NQueued, cnt.NDropped)
}

type dest struct {
	queue             *ringbuffer.Ring
	nQueued, nDropped atomic.Uint64
}

// Demux dispatches packets to destination queues.
// It is safe to call Dispatch from multiple goroutines.
type Demux struct {
	mode    Mode
	dest    []*dest
	rrNext  atomic.Uint64
	nNoDest atomic.Uint64
}

// New creates a Demux.
func New(mode Mode, queues ...*ringbuffer.Ring) (*Demux, error) {
	if len(queues) > MaxDest {
		return nil, ErrTooManyDest
	}
	if mode != ModeDrop && len(queues) == 0 {
		return nil, ErrNoDest
	}

	demux := &Demux{mode: mode}
	for _, q := range queues {
		demux.dest = append(demux.dest, &dest{queue: q})
	}
	return demux, nil
}

// Mode returns dispatch mode.
func (demux *Demux) Mode() Mode {
	return demux.mode
}

// Dispatch dispatches packets.
// Packets that cannot be queued are counted as dropped.
func (demux *Demux) Dispatch(pkts ...*l3.Packet) {
	for _, pkt := range pkts {
		demux.dispatch(pkt)
	}
}

func (demux *Demux) dispatch(pkt *l3.Packet) {
	var index int
	switch demux.mode {
	case ModeDrop:
		demux.nNoDest.Add(1)
		return
	case ModeFirst:
		index = 0
	case ModeRoundRobin:
		index = int((demux.rrNext.Add(1) - 1) % uint64(len(demux.dest)))
	case ModeByPitToken:
		index = int(pkt.Lp.PitToken >> 56)
	}

	if index >= len(demux.dest) {
		demux.nNoDest.Add(1)
		return
	}

	d := demux.dest[index]
	if d.queue.Enqueue([]any{pkt}) == 1 {
		d.nQueued.Add(1)
	} else {
		d.nDropped.Add(1)
	}
}

// DestCounters returns counters of a destination.
func (demux *Demux) DestCounters(index int) (cnt DestCounters) {
	if index < 0 || index >= len(demux.dest) {
		return
	}
	d := demux.dest[index]
	cnt.NQueued = d.nQueued.Load()
	cnt.NDropped = d.nDropped.Load()
	return
}

// NNoDest returns the number of packets that matched no destination, including packets dropped in ModeDrop.
func (demux *Demux) NNoDest() uint64 {
	return demux.nNoDest.Load()
}

// Demux3 contains separate demuxes for Interest, Data, and Nack.
type Demux3 struct {
	Interest *Demux
	Data     *Demux
	Nack     *Demux
}

// Dispatch dispatches a packet to one of the demuxes according to its type.
func (demux3 Demux3) Dispatch(pkt *l3.Packet) {
	var demux *Demux
	switch {
	case pkt.IsNack():
		demux = demux3.Nack
	case pkt.Interest != nil:
		demux = demux3.Interest
	case pkt.Data != nil:
		demux = demux3.Data
	}
	if demux != nil {
		demux.dispatch(pkt)
	}
}

// FaceRx dispatches packets received on a face, until the face is closed or stop is closed.
func (demux3 Demux3) FaceRx(face l3.Face, stop <-chan struct{}) {
	rx := face.Rx()
	for {
		select {
		case <-stop:
			return
		case pkt, ok := <-rx:
			if !ok {
				logger.Debug("face RX channel closed", zap.Stringer("state", face.State()))
				return
			}
			demux3.Dispatch(pkt)
		}
	}
}
