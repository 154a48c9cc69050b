package ndni

import (
	"encoding/binary"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/pktbuf"
)

// Encoder buffer requirements.
// The headroom assumes the payload is shorter than 4 GiB.
const (
	lpOuterTLMax   = 1 + 5
	lpFragBlockLen = 18
	lpPitTokenLen  = 2 + PitTokenLength
	lpNackMax      = 3 + 1 + 3 + 1 + 1
	lpCongMarkLen  = 3 + 1 + 1
	lpPayloadTLMax = 1 + 5

	// LpHeaderHeadroom is the headroom required by LpHeader.Prepend.
	LpHeaderHeadroom = lpOuterTLMax + lpFragBlockLen + lpPitTokenLen + lpNackMax + lpCongMarkLen + lpPayloadTLMax

	// LpHeaderTailroom is the tailroom required by LpHeader.Prepend.
	LpHeaderTailroom = 0
)

// Size returns the number of octets Prepend would add in front of a payload of given length.
func (hdr LpHeader) Size(payloadL int) (n int) {
	n = hdr.fieldsSize()
	if payloadL > 0 {
		n += 1 + tlv.VarNum(payloadL).Size()
	}
	if total := n + payloadL; total > 0 {
		n += 1 + tlv.VarNum(total).Size()
	}
	return n
}

func (hdr LpHeader) fieldsSize() (n int) {
	if hdr.L2.IsFragmented() {
		n += lpFragBlockLen
	}
	if hdr.L2.FragIndex > 0 {
		return n
	}
	if hdr.L3.PitToken != 0 {
		n += lpPitTokenLen
	}
	switch hdr.L3.NackReason {
	case an.NackNone:
	case an.NackUnspecified:
		n += 4
	default:
		n += lpNackMax
	}
	if hdr.L3.CongMark != 0 {
		n += lpCongMarkLen
	}
	return n
}

func mustPrepend(pkt *pktbuf.Packet, n int) []byte {
	room := pkt.Prepend(n)
	if room == nil {
		logger.Panic("insufficient headroom for LpPacket headers")
	}
	return room
}

func prependTL(pkt *pktbuf.Packet, tt uint32, length int) {
	typ, l := tlv.VarNum(tt), tlv.VarNum(length)
	room := mustPrepend(pkt, typ.Size()+l.Size())
	l.Put(room[typ.Put(room):])
}

// Prepend encodes NDNLPv2 headers in front of the payload in pkt.
//
// pkt must contain only the payload, with at least LpHeaderHeadroom headroom in its first segment.
// Insufficient headroom is a programming error and causes a panic.
//
// If the payload is empty and no header field needs encoding, pkt remains empty.
// Otherwise, pkt becomes one LpPacket element; an empty payload omits the Payload field.
// L3 fields are only encoded on the first fragment.
func (hdr LpHeader) Prepend(pkt *pktbuf.Packet) {
	if payloadL := pkt.Len(); payloadL > 0 {
		prependTL(pkt, an.TtLpPayload, payloadL)
	}

	if hdr.L2.FragIndex == 0 {
		hdr.L3.prepend(pkt)
	}
	if hdr.L2.IsFragmented() {
		hdr.L2.prepend(pkt)
	}

	if total := pkt.Len(); total > 0 {
		prependTL(pkt, an.TtLpPacket, total)
	}
}

func (l2 LpL2) prepend(pkt *pktbuf.Packet) {
	room := mustPrepend(pkt, lpFragBlockLen)
	room[0], room[1] = an.TtLpSeqNum, 8
	binary.BigEndian.PutUint64(room[2:], l2.SeqNum)
	room[10], room[11] = an.TtFragIndex, 2
	binary.BigEndian.PutUint16(room[12:], l2.FragIndex)
	room[14], room[15] = an.TtFragCount, 2
	binary.BigEndian.PutUint16(room[16:], l2.FragCount)
}

// prepend writes L3 fields in reverse order, so that they appear as PitToken, Nack, CongestionMark.
func (l3 LpL3) prepend(pkt *pktbuf.Packet) {
	if l3.CongMark != 0 {
		room := mustPrepend(pkt, lpCongMarkLen)
		tlv.VarNum(an.TtCongestionMark).Put(room)
		room[3], room[4] = 1, l3.CongMark
	}

	switch l3.NackReason {
	case an.NackNone:
	case an.NackUnspecified:
		room := mustPrepend(pkt, 4)
		tlv.VarNum(an.TtNack).Put(room)
		room[3] = 0
	default:
		room := mustPrepend(pkt, lpNackMax)
		tlv.VarNum(an.TtNack).Put(room)
		room[3] = 5
		tlv.VarNum(an.TtNackReason).Put(room[4:])
		room[7], room[8] = 1, byte(l3.NackReason)
	}

	if l3.PitToken != 0 {
		room := mustPrepend(pkt, lpPitTokenLen)
		room[0], room[1] = an.TtPitToken, PitTokenLength
		binary.LittleEndian.PutUint64(room[2:], l3.PitToken)
	}
}

// Encode returns an LpPacket that contains these headers and a copy of payload.
func (hdr LpHeader) Encode(payload []byte) []byte {
	pkt := pktbuf.FromBytes(LpHeaderHeadroom, payload)
	hdr.Prepend(pkt)
	return pkt.Bytes()
}
