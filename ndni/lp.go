// Package ndni implements the NDNLPv2 link protocol header codec.
//
// DecodeLpPacket parses an LpPacket from a tlv.Cursor without copying its payload.
// LpHeader.Prepend grows a packet buffer that holds only the payload into a complete LpPacket.
// Neither function retains its argument or touches shared state, so that they may be
// invoked concurrently on distinct packets.
package ndni

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

var logger = logging.New("ndni")

// PitTokenLength is the TLV-LENGTH of PitToken field.
const PitTokenLength = 8

// LpL2 contains NDNLPv2 fragmentation fields.
type LpL2 struct {
	// SeqNum is the fragment sequence number.
	// It is meaningful only when the packet is fragmented.
	SeqNum uint64
	// FragIndex is the 0-based fragment index.
	FragIndex uint16
	// FragCount is the number of fragments; 1 means unfragmented.
	FragCount uint16
}

// IsFragmented returns true if these fields describe a fragment of a larger packet.
func (l2 LpL2) IsFragmented() bool {
	return l2.FragCount > 1 || l2.FragIndex > 0
}

// LpL3 contains NDNLPv2 fields that accompany a network layer packet.
type LpL3 struct {
	// PitToken is a token copied from a request onto its response; zero means absent.
	PitToken uint64
	// NackReason is the Nack reason; NackNone means the packet is not a Nack.
	NackReason an.NackReason
	// CongMark is the congestion mark; zero means unmarked.
	CongMark uint8
}

// IsZero returns true if no field is set.
func (l3 LpL3) IsZero() bool {
	return l3 == LpL3{}
}

// LpHeader contains NDNLPv2 header fields.
type LpHeader struct {
	L2 LpL2
	L3 LpL3
}

func (hdr LpHeader) String() string {
	return fmt.Sprintf("seq=%d frag=%d/%d token=%016X nack=%s cong=%d",
		hdr.L2.SeqNum, hdr.L2.FragIndex, hdr.L2.FragCount, hdr.L3.PitToken, hdr.L3.NackReason, hdr.L3.CongMark)
}

// LpPacket is a decoded LpPacket.
type LpPacket struct {
	LpHeader

	// Payload is a view of the payload, which may be empty.
	// Its validity is bounded by the memory given to the decoder.
	Payload tlv.Cursor

	// PayloadOff is the offset of the payload, relative to the start of the LpPacket element.
	// It equals the total length of LpPacket TLV-TYPE, TLV-LENGTH, header fields, and Payload
	// TLV-TYPE and TLV-LENGTH. It is zero if the packet has no Payload field.
	PayloadOff int
}

func ndnErrFromTLV(e error) NdnError {
	switch {
	case errors.Is(e, tlv.ErrIncomplete):
		return NdnErrIncomplete
	case errors.Is(e, tlv.ErrType):
		return NdnErrBadType
	case errors.Is(e, tlv.ErrNNI):
		return NdnErrBadNni
	}
	return NdnErrBadType
}

func readNNI(de tlv.CursorElement, max uint64) (uint64, error) {
	n, e := tlv.ReadNNI(de.Value)
	if e != nil {
		return 0, ndnErrFromTLV(e)
	}
	if uint64(n) > max {
		return 0, NdnErrLengthOverflow
	}
	return uint64(n), nil
}

// DecodeLpPacket decodes an LpPacket element at the front of a Cursor.
// Octets after the LpPacket element are not consumed.
//
// If the LpPacket element is missing or has wrong TLV-TYPE, the error is a FramingError.
// On any error, the returned LpPacket is the zero value and should be dropped.
func DecodeLpPacket(c tlv.Cursor) (lpp LpPacket, e error) {
	outer, e := tlv.ReadElement(c)
	if e != nil {
		return LpPacket{}, FramingError{ndnErrFromTLV(e)}
	}
	if outer.Type != an.TtLpPacket {
		return LpPacket{}, FramingError{NdnErrBadType}
	}

	if e = lpp.decodeValue(outer); e != nil {
		return LpPacket{}, e
	}
	return lpp, nil
}

func (lpp *LpPacket) decodeValue(outer tlv.CursorElement) error {
	lpp.L2.FragCount = 1
	d := outer.Value
	for d.Len() > 0 {
		de, e := tlv.ReadElement(d)
		if e != nil {
			return ndnErrFromTLV(e)
		}

		switch de.Type {
		case an.TtLpPayload:
			lpp.Payload = de.Value
			lpp.PayloadOff = outer.Size() - de.Length
			if d.Len() > 0 {
				return NdnErrLpHasTrailer
			}
			return lpp.checkFrag()
		case an.TtLpSeqNum:
			if lpp.L2.SeqNum, e = readNNI(de, math.MaxUint64); e != nil {
				return e
			}
		case an.TtFragIndex:
			v, e := readNNI(de, math.MaxUint16)
			if e != nil {
				return e
			}
			lpp.L2.FragIndex = uint16(v)
		case an.TtFragCount:
			v, e := readNNI(de, math.MaxUint16)
			if e != nil {
				return e
			}
			lpp.L2.FragCount = uint16(v)
		case an.TtPitToken:
			if de.Length != PitTokenLength {
				return NdnErrBadPitToken
			}
			var b [PitTokenLength]byte
			de.Value.ReadTo(b[:])
			lpp.L3.PitToken = binary.LittleEndian.Uint64(b[:])
		case an.TtNack:
			reason, e := decodeNackReason(de.Value)
			if e != nil {
				return e
			}
			lpp.L3.NackReason = reason
		case an.TtCongestionMark:
			v, e := readNNI(de, math.MaxUint8)
			if e != nil {
				return e
			}
			lpp.L3.CongMark = uint8(v)
		default:
			if !an.CanIgnoreLpHeader(de.Type) {
				return NdnErrUnknownCriticalLpHeader
			}
		}
	}

	lpp.Payload = tlv.NewByteCursor(nil)
	return lpp.checkFrag()
}

func (lpp *LpPacket) checkFrag() error {
	if lpp.L2.FragIndex >= lpp.L2.FragCount {
		return NdnErrFragIndexExceedFragCount
	}
	return nil
}

// decodeNackReason decodes TLV-VALUE of Nack field.
// Absent, truncated, or mistyped NackReason is treated as NackUnspecified.
// A NackReason that is not a valid NonNegativeInteger or exceeds 255 is an error.
func decodeNackReason(value tlv.Cursor) (an.NackReason, error) {
	de, e := tlv.ReadElement(value)
	if e != nil || de.Type != an.TtNackReason {
		return an.NackUnspecified, nil
	}

	v, e := readNNI(de, math.MaxUint8)
	switch {
	case e != nil:
		return an.NackNone, e
	case v == uint64(an.NackNone):
		return an.NackUnspecified, nil
	}
	return an.NackReason(v), nil
}
