package ndntestvector

import (
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndni"
)

const (
	bareInterest     = "0505 0703080141"
	payloadInterest  = "5007 " + bareInterest
	payloadInterestL = 7
	payloadFragment  = "5004 D0D1D2D3"
	payloadFragmentL = 4

	seqA600 = 0xA0A1A2A3A4A5A600
	token   = 0xB28EC32B414B419A
)

// LpDecodeTest is a test vector for NDNLPv2 decoder.
type LpDecodeTest struct {
	// Input is an annotated LpPacket in hexadecimal.
	Input string
	// Bad indicates the decoder should reject Input.
	Bad bool
	// Header is the expected header, FragCount is 1 for an unfragmented packet.
	Header ndni.LpHeader
	// PayloadL is the expected TLV-LENGTH of LpPayload.
	PayloadL int
}

func lpBad(input string) LpDecodeTest {
	return LpDecodeTest{Input: input, Bad: true}
}

func lpWhole(input string, l3 ndni.LpL3, payloadL int) LpDecodeTest {
	return LpDecodeTest{
		Input:    input,
		Header:   ndni.LpHeader{L2: ndni.LpL2{FragCount: 1}, L3: l3},
		PayloadL: payloadL,
	}
}

func lpFragment(input string, l2 ndni.LpL2) LpDecodeTest {
	return LpDecodeTest{Input: input, Header: ndni.LpHeader{L2: l2}, PayloadL: payloadFragmentL}
}

// LpDecodeTests contains test vectors for NDNLPv2 decoder.
var LpDecodeTests = []LpDecodeTest{
	lpBad(""),
	lpBad(bareInterest), // not LpPacket
	lpWhole("6409 payload="+payloadInterest, ndni.LpL3{}, payloadInterestL),
	lpWhole("6400", ndni.LpL3{}, 0),

	lpBad("6402 unknown-critical=6300"),
	lpBad("6404 unknown-critical=FD03BF00"),
	lpWhole("6404 unknown-ignored=FD03BC00", ndni.LpL3{}, 0),
	lpBad("6404 unknown-critical=FD031C00"),
	lpWhole("6404 unknown-ignored=FD032400", ndni.LpL3{}, 0),
	lpBad("6404 unknown-critical=FD03C000"),

	lpFragment("6413 seq=5108A0A1A2A3A4A5A600 fragcount=530102 payload="+payloadFragment,
		ndni.LpL2{SeqNum: seqA600, FragCount: 2}),
	lpFragment("6416 seq=5108A0A1A2A3A4A5A601 fragindex=520101 fragcount=530102 payload="+payloadFragment,
		ndni.LpL2{SeqNum: seqA600 + 1, FragIndex: 1, FragCount: 2}),
	lpBad("6417 seq=5108A0A1A2A3A4A5A601 fragindex=520102 fragcount=530102 payload=" + payloadFragment), // FragIndex >= FragCount
	lpBad("640D seq=5102A0A1 fragindex=520101 payload=" + payloadFragment),                             // FragIndex >= default FragCount
	lpBad("6410 seq=5102A0A1 fragcount=530400010000 payload=" + payloadFragment),                       // FragCount overflow
	lpFragment("6410 seq=5102A0A1 fragcount=53040000FFFF payload="+payloadFragment,
		ndni.LpL2{SeqNum: 0xA0A1, FragCount: 0xFFFF}),
	lpBad("640B seq=5103A0A1A2 payload=" + payloadFragment), // SeqNum is not NNI
	lpBad("6413 seq=5102A0A1 fragindex=520400010000 fragcount=530102 payload=" + payloadFragment), // FragIndex overflow
	lpFragment("6416 seq=5102A0A1 fragindex=52040000FFFE fragcount=53040000FFFF payload="+payloadFragment,
		ndni.LpL2{SeqNum: 0xA0A1, FragIndex: 0xFFFE, FragCount: 0xFFFF}),

	lpWhole("6413 pittoken=62089A414B412BC38EB2 payload="+payloadInterest,
		ndni.LpL3{PitToken: token}, payloadInterestL),
	lpBad("6406 pittoken=620420A3C0D7"), // PitToken is not 8-octet

	lpWhole("640D nack=FD032000(noreason) payload="+payloadInterest,
		ndni.LpL3{NackReason: an.NackUnspecified}, payloadInterestL),
	lpWhole("6412 nack=FD032005(FD03210196~noroute) payload="+payloadInterest,
		ndni.LpL3{NackReason: an.NackNoRoute}, payloadInterestL),
	lpWhole("6412 nack=FD032005(FD03210100~zero) payload="+payloadInterest,
		ndni.LpL3{NackReason: an.NackUnspecified}, payloadInterestL),
	lpBad("6413 nack=FD032006(FD0321020100~overflow) payload=" + payloadInterest),
	lpWhole("6412 nack=FD032005(FD032101FF~max) payload="+payloadInterest,
		ndni.LpL3{NackReason: an.NackReason(0xFF)}, payloadInterestL),
	lpWhole("6410 nack=FD032003(FD0321~truncated) payload="+payloadInterest,
		ndni.LpL3{NackReason: an.NackUnspecified}, payloadInterestL),
	lpBad("6414 nack=FD032007(FD032103000032~badwidth) payload=" + payloadInterest), // NackReason is not NNI
	lpWhole("6412 nack=FD032005(FD03220196~mistyped) payload="+payloadInterest,
		ndni.LpL3{NackReason: an.NackUnspecified}, payloadInterestL),

	lpWhole("640E congmark=FD03400104 payload="+payloadInterest,
		ndni.LpL3{CongMark: 4}, payloadInterestL),
	lpWhole("640E congmark=FD034001FF payload="+payloadInterest,
		ndni.LpL3{CongMark: 0xFF}, payloadInterestL),
	lpBad("640F congmark=FD0340020100 payload=" + payloadInterest), // CongestionMark overflow

	lpBad("640D payload=" + payloadInterest + " trailer=FD03BC00"),
}

// LpEncodeTest is a test vector for NDNLPv2 encoder.
type LpEncodeTest struct {
	Header ndni.LpHeader
	// Payload and Output are hexadecimal.
	Payload string
	Output  string
}

// LpEncodeTests contains test vectors for NDNLPv2 encoder.
var LpEncodeTests = []LpEncodeTest{
	{Payload: "", Output: ""},
	{Payload: bareInterest, Output: "6409 payload=" + payloadInterest},
	{
		Header:  ndni.LpHeader{L3: ndni.LpL3{PitToken: token}},
		Payload: bareInterest,
		Output:  "6413 pittoken=62089A414B412BC38EB2 payload=" + payloadInterest,
	},
	{
		Header: ndni.LpHeader{L3: ndni.LpL3{PitToken: token}},
		Output: "640A pittoken=62089A414B412BC38EB2",
	},
	{
		Header:  ndni.LpHeader{L3: ndni.LpL3{NackReason: an.NackUnspecified}},
		Payload: bareInterest,
		Output:  "640D nack=FD032000 payload=" + payloadInterest,
	},
	{
		Header:  ndni.LpHeader{L3: ndni.LpL3{NackReason: an.NackNoRoute}},
		Payload: bareInterest,
		Output:  "6412 nack=FD032005(FD03210196) payload=" + payloadInterest,
	},
	{
		Header:  ndni.LpHeader{L3: ndni.LpL3{CongMark: 4}},
		Payload: bareInterest,
		Output:  "640E congmark=FD03400104 payload=" + payloadInterest,
	},
	{
		Header:  ndni.LpHeader{L3: ndni.LpL3{PitToken: 0x0102030405060708, NackReason: an.NackCongestion, CongMark: 1}},
		Payload: bareInterest,
		Output: "6421 pittoken=62080807060504030201 nack=FD032005(FD03210132) congmark=FD03400101 " +
			"payload=" + payloadInterest,
	},
	{
		Header: ndni.LpHeader{
			L2: ndni.LpL2{SeqNum: 0xA0A1, FragIndex: 1, FragCount: 2},
			L3: ndni.LpL3{PitToken: 0x0102030405060708},
		},
		Payload: "D0D1D2D3",
		Output:  "6418 seq=5108000000000000A0A1 fragindex=52020001 fragcount=53020002 payload=" + payloadFragment,
	},
	{
		Header: ndni.LpHeader{
			L2: ndni.LpL2{SeqNum: 0xA0A1, FragCount: 2},
			L3: ndni.LpL3{CongMark: 1},
		},
		Payload: "D0D1D2D3",
		Output: "641D seq=5108000000000000A0A1 fragindex=52020000 fragcount=53020002 " +
			"congmark=FD03400101 payload=" + payloadFragment,
	},
}
