package ndni

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"go.uber.org/zap"
)

// ErrFragCountMismatch indicates a fragment disagrees with its siblings on FragCount.
var ErrFragCountMismatch = errors.New("FragCount differs among fragments")

// LpReassemblerCounters contains LpReassembler counters.
type LpReassemblerCounters struct {
	NAccepted   uint64 `json:"nAccepted"`   // fragments accepted
	NDelivered  uint64 `json:"nDelivered"`  // packets reassembled
	NIncomplete uint64 `json:"nIncomplete"` // partial packets evicted
	NDuplicate  uint64 `json:"nDuplicate"`  // duplicate fragments
	NErrors     uint64 `json:"nErrors"`     // fragments with inconsistent fields
}

type lpPartial struct {
	l3       LpL3
	frags    [][]byte
	received int
	done     bool
}

// LpReassembler reassembles NDNLPv2 fragments.
// Partial packets are kept in an LRU cache; when it is full, the least recently
// updated partial packet is dropped.
type LpReassembler struct {
	partials *lru.Cache

	mutex sync.Mutex
	cnt   LpReassemblerCounters
}

// NewLpReassembler creates an LpReassembler that holds at most capacity partial packets.
func NewLpReassembler(capacity int) *LpReassembler {
	r := &LpReassembler{}
	if capacity < 1 {
		capacity = 1
	}
	r.partials, _ = lru.NewWithEvict(capacity, r.evict)
	return r
}

func (r *LpReassembler) evict(key, value interface{}) {
	partial := value.(*lpPartial)
	if partial.done {
		return
	}
	logger.Debug("partial packet evicted",
		zap.Uint64("key", key.(uint64)),
		zap.Int("received", partial.received),
		zap.Int("fragCount", len(partial.frags)),
		zap.Error(NdnErrReassemblyTimeout),
	)
	r.mutex.Lock()
	r.cnt.NIncomplete++
	r.mutex.Unlock()
}

// Accept processes a decoded LpPacket.
//
// An unfragmented packet is returned as is with ok=true.
// A fragment is copied into the reassembly buffer; if it completes a packet, the
// reassembled packet is returned with ok=true, otherwise ok=false.
// The Payload cursor of pkt is consumed.
// This function must not be called concurrently.
func (r *LpReassembler) Accept(pkt LpPacket) (full LpPacket, ok bool, e error) {
	if !pkt.L2.IsFragmented() {
		return pkt, true, nil
	}
	if pkt.L2.FragIndex >= pkt.L2.FragCount {
		return LpPacket{}, false, NdnErrFragIndexExceedFragCount
	}

	key := pkt.L2.SeqNum - uint64(pkt.L2.FragIndex)
	var partial *lpPartial
	if value, found := r.partials.Get(key); found {
		partial = value.(*lpPartial)
	} else {
		partial = &lpPartial{frags: make([][]byte, pkt.L2.FragCount)}
		r.partials.Add(key, partial)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(partial.frags) != int(pkt.L2.FragCount) {
		partial.done = true
		r.partials.Remove(key)
		r.cnt.NErrors++
		return LpPacket{}, false, ErrFragCountMismatch
	}
	if partial.frags[pkt.L2.FragIndex] != nil {
		r.cnt.NDuplicate++
		return LpPacket{}, false, nil
	}

	frag := make([]byte, pkt.Payload.Len())
	pkt.Payload.ReadTo(frag)
	partial.frags[pkt.L2.FragIndex] = frag
	partial.received++
	r.cnt.NAccepted++
	if pkt.L2.FragIndex == 0 {
		partial.l3 = pkt.L3
	}

	if partial.received < len(partial.frags) {
		return LpPacket{}, false, nil
	}

	partial.done = true
	r.partials.Remove(key)
	r.cnt.NDelivered++

	size := 0
	for _, frag := range partial.frags {
		size += len(frag)
	}
	payload := make([]byte, 0, size)
	for _, frag := range partial.frags {
		payload = append(payload, frag...)
	}

	full.L2.FragCount = 1
	full.L3 = partial.l3
	full.Payload = tlv.NewByteCursor(payload)
	return full, true, nil
}

// Len returns the number of partial packets.
func (r *LpReassembler) Len() int {
	return r.partials.Len()
}

// Counters returns counters.
func (r *LpReassembler) Counters() LpReassemblerCounters {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.cnt
}
