// Package an contains assigned numbers of NDN packet format and NDNLPv2.
package an

// TLV-TYPE assigned numbers of network layer packets.
// Only the elements understood by package ndn are listed.
const (
	TtName                 = 0x07
	TtGenericNameComponent = 0x08
	TtSegmentNameComponent = 0x32

	TtInterest         = 0x05
	TtCanBePrefix      = 0x21
	TtMustBeFresh      = 0x12
	TtNonce            = 0x0A
	TtInterestLifetime = 0x0C
	TtHopLimit         = 0x22

	TtData            = 0x06
	TtMetaInfo        = 0x14
	TtFreshnessPeriod = 0x19
	TtContent         = 0x15
	TtDSigInfo        = 0x16
	TtDSigValue       = 0x17
	TtSigType         = 0x1B
)

// SigNull is the SignatureType of a Data with null signature.
const SigNull = 0xC8
