package ndntestvector

import "github.com/usnistgov/ndnlp/ndn/an"

// TlvElementTest is a test vector for the TLV element decoder.
type TlvElementTest struct {
	// Input is annotated hexadecimal.
	Input string
	// Bad indicates the element should not decode.
	Bad bool

	Type  uint32
	Value string
	// IsNni indicates TLV-VALUE is a valid NonNegativeInteger whose value is Nni.
	IsNni bool
	Nni   uint64
}

// TlvElementTests contains test vectors for TLV element decoder.
// They cover every VarNum width in both TLV-TYPE and TLV-LENGTH, and the LP header TLV-TYPEs.
var TlvElementTests = []TlvElementTest{
	{Input: "", Bad: true},
	{Input: "type=01", Bad: true},
	{Input: "type=01 length=FD00", Bad: true},
	{Input: "type=01 length=01", Bad: true},
	{Input: "type=01 length=04 A0A1", Bad: true},
	{Input: "type=01 length=FF0000000100000000 A0", Bad: true},
	{Input: "type=00 length=00", Bad: true},
	{Input: "type=FF0000000100000000 length=00", Bad: true},
	{Input: "type=01 length=00", Type: 0x01},
	{Input: "type=FC length=01 FE", Type: 0xFC, Value: "FE", IsNni: true, Nni: 0xFE},
	{Input: "type=FD00FD length=02 A0A1", Type: 0xFD, Value: "A0A1", IsNni: true, Nni: 0xA0A1},
	{Input: "type=FD00FF length=03 A0A1A2", Type: 0xFF, Value: "A0A1A2"},
	{Input: "type=FE00010000 length=04 A0A1A2A3", Type: 0x10000, Value: "A0A1A2A3", IsNni: true, Nni: 0xA0A1A2A3},
	{Input: "type=FEFFFFFFFF length=05 A0A1A2A3A4", Type: 0xFFFFFFFF, Value: "A0A1A2A3A4"},
	{Input: "type=01 length=FD0006 A0A1A2A3A4A5", Type: 0x01, Value: "A0A1A2A3A4A5"},
	{Input: "type=01 length=FE00000007 A0A1A2A3A4A5A6", Type: 0x01, Value: "A0A1A2A3A4A5A6"},
	{Input: "type=01 length=FF0000000000000008 A0A1A2A3A4A5A6A7", Type: 0x01,
		Value: "A0A1A2A3A4A5A6A7", IsNni: true, Nni: 0xA0A1A2A3A4A5A6A7},
	{Input: "type=01 length=09 A0A1A2A3A4A5A6A7A8", Type: 0x01, Value: "A0A1A2A3A4A5A6A7A8"},
	{Input: "seq=51 length=08 0000000000000001", Type: an.TtLpSeqNum,
		Value: "0000000000000001", IsNni: true, Nni: 1},
	{Input: "pittoken=62 length=08 9A414B412BC38EB2", Type: an.TtPitToken,
		Value: "9A414B412BC38EB2", IsNni: true, Nni: 0x9A414B412BC38EB2},
	{Input: "nack=FD0320 length=05 FD032101A0", Type: an.TtNack, Value: "FD032101A0"},
	{Input: "congmark=FD0340 length=01 01", Type: an.TtCongestionMark, Value: "01", IsNni: true, Nni: 1},
	{Input: "congmark=FD0340 length=02", Bad: true},
}
