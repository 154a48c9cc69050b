// Package xdp is a userspace rendition of the NDN XDP prefilter.
//
// The prefilter runs on each received Ethernet frame before it reaches a face.
// It accepts NDN frames, optionally carrying one 802.1Q header, whose NDNLPv2 header
// is well-formed; everything else is dropped.
package xdp

import (
	"encoding/binary"
	"errors"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/ndni"
)

// ErrOutOfBounds indicates a header extends past the end of the frame.
var ErrOutOfBounds = errors.New("packet pointer out of bounds")

// Verdict is the filter decision.
type Verdict int

// Verdict values.
const (
	Drop Verdict = iota
	Pass
)

func (v Verdict) String() string {
	if v == Pass {
		return "XDP_PASS"
	}
	return "XDP_DROP"
}

// Header lengths.
const (
	EthernetHeaderLen = 14
	Dot1QHeaderLen    = 4
)

const etherTypeDot1Q = 0x8100

// PacketPtrAs performs bounds checking on a header at offset off with given size.
// It returns the header octets, or ErrOutOfBounds that should cause the frame to be dropped.
func PacketPtrAs(frame []byte, off, size int) ([]byte, error) {
	if off < 0 || size < 0 || off+size > len(frame) {
		return nil, ErrOutOfBounds
	}
	return frame[off : off+size], nil
}

// Result describes a frame that passed the filter.
type Result struct {
	VLAN    int // VLAN identifier, or zero
	Offset  int // offset of NDN-TLV element
	LpFrame bool
}

// FilterNdn examines an Ethernet frame.
func FilterNdn(frame []byte) (Verdict, Result) {
	res, e := filterNdn(frame)
	if e != nil {
		return Drop, Result{}
	}
	return Pass, res
}

func filterNdn(frame []byte) (res Result, e error) {
	eth, e := PacketPtrAs(frame, 0, EthernetHeaderLen)
	if e != nil {
		return res, e
	}
	etherType := binary.BigEndian.Uint16(eth[12:])
	res.Offset = EthernetHeaderLen

	if etherType == etherTypeDot1Q {
		vlan, e := PacketPtrAs(frame, res.Offset, Dot1QHeaderLen)
		if e != nil {
			return res, e
		}
		res.VLAN = int(binary.BigEndian.Uint16(vlan) & 0x0FFF)
		etherType = binary.BigEndian.Uint16(vlan[2:])
		res.Offset += Dot1QHeaderLen
	}

	if etherType != an.EtherTypeNDN {
		return res, ErrOutOfBounds
	}

	first, e := PacketPtrAs(frame, res.Offset, 1)
	if e != nil {
		return res, e
	}
	switch first[0] {
	case an.TtLpPacket:
		res.LpFrame = true
		_, e = ndni.DecodeLpPacket(tlv.NewByteCursor(frame[res.Offset:]))
	case an.TtInterest, an.TtData:
		_, e = tlv.ReadElement(tlv.NewByteCursor(frame[res.Offset:]))
	default:
		e = ndni.NdnErrBadType
	}
	return res, e
}
