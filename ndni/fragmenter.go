package ndni

import (
	"errors"
	"math"

	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/pktbuf"
)

// Fragmentation errors.
var (
	ErrFragmentMTU   = errors.New("MTU too small for fragmentation")
	ErrFragmentCount = errors.New("too many fragments")
)

// LpFragmenter splits network layer packets into NDNLPv2 fragments.
type LpFragmenter struct {
	// MTU is the maximum size of each LpPacket, including its TLV-TYPE and TLV-LENGTH.
	MTU int
}

// NewLpFragmenter creates an LpFragmenter.
func NewLpFragmenter(mtu int) *LpFragmenter {
	return &LpFragmenter{MTU: mtu}
}

// overhead returns the size of LpPacket TL, fragmentation fields, and Payload TL.
func (f *LpFragmenter) overhead() int {
	l := tlv.VarNum(f.MTU).Size()
	return 1 + l + lpFragBlockLen + 1 + l
}

// Fragment encodes payload as one or more LpPackets, none of which exceeds MTU.
//
// If the payload fits in one LpPacket along with L3 fields, it is encoded unfragmented and
// *seq is unchanged. Otherwise, each fragment consumes one sequence number from *seq.
// L3 fields are carried on the first fragment only.
func (f *LpFragmenter) Fragment(l3 LpL3, payload []byte, seq *uint64) (frames [][]byte, e error) {
	whole := LpHeader{L3: l3}
	if whole.Size(len(payload))+len(payload) <= f.MTU {
		return [][]byte{whole.Encode(payload)}, nil
	}

	room := f.MTU - f.overhead()
	firstRoom := room - whole.fieldsSize()
	if firstRoom <= 0 {
		return nil, ErrFragmentMTU
	}

	count := 1
	if rem := len(payload) - firstRoom; rem > 0 {
		count += (rem + room - 1) / room
	}
	if count > math.MaxUint16 {
		return nil, ErrFragmentCount
	}

	frames = make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		hdr := LpHeader{L2: LpL2{SeqNum: *seq, FragIndex: uint16(i), FragCount: uint16(count)}}
		n := room
		if i == 0 {
			hdr.L3, n = l3, firstRoom
		}
		if n > len(payload) {
			n = len(payload)
		}

		pkt := pktbuf.FromBytes(LpHeaderHeadroom, payload[:n])
		hdr.Prepend(pkt)
		frames = append(frames, pkt.Bytes())
		payload = payload[n:]
		*seq++
	}
	return frames, nil
}
