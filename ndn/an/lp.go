package an

// TLV-TYPE assigned numbers of NDNLPv2 LpPacket and its header fields.
const (
	TtLpPacket       = 0x64
	TtLpPayload      = 0x50
	TtLpSeqNum       = 0x51
	TtFragIndex      = 0x52
	TtFragCount      = 0x53
	TtPitToken       = 0x62
	TtNack           = 0x0320
	TtNackReason     = 0x0321
	TtCongestionMark = 0x0340
)

// Ignorable LP header range.
// An unrecognized LP header field is ignorable if its TLV-TYPE is within this range
// and its two least significant bits are zero.
const (
	LpHeaderIgnorableMin = 800
	LpHeaderIgnorableMax = 959
)

// CanIgnoreLpHeader determines whether an unrecognized LP header field may be skipped.
func CanIgnoreLpHeader(tt uint32) bool {
	return tt >= LpHeaderIgnorableMin && tt <= LpHeaderIgnorableMax && tt&0x03 == 0
}

// LpHeaderName returns a short name of a recognized LP header field TLV-TYPE, or "" if unrecognized.
func LpHeaderName(tt uint32) string {
	switch tt {
	case TtLpSeqNum:
		return "seq"
	case TtFragIndex:
		return "fragindex"
	case TtFragCount:
		return "fragcount"
	case TtPitToken:
		return "pittoken"
	case TtNack:
		return "nack"
	case TtCongestionMark:
		return "congmark"
	case TtLpPayload:
		return "payload"
	}
	return ""
}
