package ndni

import (
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/pktbuf"
)

// ParseL2 parses layer 2 framing of a received frame.
//
// If the frame is an LpPacket, it is decoded with DecodeLpPacket.
// If the frame is a bare Interest or Data, it is treated as an unfragmented LpPacket whose
// payload is the whole element and whose header fields are all absent.
// Otherwise, the frame is rejected with NdnErrBadType.
func ParseL2(pkt *pktbuf.Packet) (LpPacket, error) {
	typ, e := tlv.ReadVarNum(pkt.Iterator())
	if e != nil {
		return LpPacket{}, FramingError{ndnErrFromTLV(e)}
	}

	switch typ {
	case an.TtLpPacket:
		return DecodeLpPacket(pkt.Iterator())
	case an.TtInterest, an.TtData:
	default:
		return LpPacket{}, NdnErrBadType
	}

	it := pkt.Iterator()
	de, e := tlv.ReadElement(pkt.Iterator())
	if e != nil {
		return LpPacket{}, ndnErrFromTLV(e)
	}
	payload, _ := it.Slice(de.Size())

	var lpp LpPacket
	lpp.L2.FragCount = 1
	lpp.Payload = payload
	return lpp, nil
}
