package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/ndni"
	"github.com/usnistgov/ndnlp/pktbuf"
)

type decodeOutput struct {
	SeqNum     uint64 `json:"seqNum"`
	FragIndex  uint16 `json:"fragIndex"`
	FragCount  uint16 `json:"fragCount"`
	PitToken   string `json:"pitToken,omitempty"`
	NackReason string `json:"nackReason,omitempty"`
	CongMark   uint8  `json:"congMark,omitempty"`
	PayloadOff int    `json:"payloadOff"`
	Payload    string `json:"payload"`
	// Fields lists LpPacket fields in wire order.
	Fields []string `json:"fields,omitempty"`
}

// listLpFields names the elements within an LpPacket that already decoded successfully.
func listLpFields(wire []byte) (fields []string) {
	outer, _, e := tlv.DecodeFirstExpect(an.TtLpPacket, wire)
	if e != nil {
		return nil
	}
	d := tlv.DecodingBuffer(outer.Value)
	for _, de := range d.Elements() {
		name := an.LpHeaderName(de.Type)
		if name == "" {
			name = fmt.Sprintf("ignored-%d", de.Type)
		}
		fields = append(fields, name)
	}
	return fields
}

func init() {
	defineCommand(&cli.Command{
		Name:      "decode",
		Usage:     "Decode an LpPacket from hexadecimal input.",
		ArgsUsage: "[HEX]",
		Action: func(c *cli.Context) error {
			wire, e := readHex(c)
			if e != nil {
				return cli.Exit(e, 2)
			}

			lpp, e := ndni.ParseL2(pktbuf.FromBytes(0, wire))
			if e != nil {
				return cli.Exit(fmt.Errorf("decode error: %w", e), 1)
			}

			output := decodeOutput{
				SeqNum:     lpp.L2.SeqNum,
				FragIndex:  lpp.L2.FragIndex,
				FragCount:  lpp.L2.FragCount,
				CongMark:   lpp.L3.CongMark,
				PayloadOff: lpp.PayloadOff,
				Payload:    strings.ToUpper(hex.EncodeToString(tlv.Collect(lpp.Payload))),
				Fields:     listLpFields(wire),
			}
			if lpp.L3.PitToken != 0 {
				output.PitToken = fmt.Sprintf("%016X", lpp.L3.PitToken)
			}
			if lpp.L3.NackReason != an.NackNone {
				output.NackReason = lpp.L3.NackReason.String()
			}
			return printJSON(c, output)
		},
	})
}

func init() {
	var seqNum, pitToken uint64
	var nackReason string
	var mtu int
	defineCommand(&cli.Command{
		Name:      "encode",
		Usage:     "Encode an LpPacket and print it in hexadecimal.",
		ArgsUsage: "[PAYLOAD-HEX]",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:        "seq",
				Usage:       "Sequence number of the first fragment, used with --mtu.",
				Destination: &seqNum,
			},
			&cli.Uint64Flag{
				Name:        "pittoken",
				Usage:       "PIT token `value`, encoded as 8 octets.",
				Destination: &pitToken,
			},
			&cli.StringFlag{
				Name:        "nack",
				Usage:       "Nack `reason`: congestion, duplicate, noroute, unspecified, or a number.",
				Destination: &nackReason,
			},
			&cli.UintFlag{
				Name:  "congmark",
				Usage: "CongestionMark `value`.",
			},
			&cli.IntFlag{
				Name:        "mtu",
				Usage:       "Fragment to fit within `MTU` octets; 0 disables fragmentation.",
				Destination: &mtu,
			},
		},
		Action: func(c *cli.Context) error {
			payload, e := readHex(c)
			if e != nil {
				return cli.Exit(e, 2)
			}

			hdr := ndni.LpHeader{
				L2: ndni.LpL2{SeqNum: seqNum, FragCount: 1},
				L3: ndni.LpL3{PitToken: pitToken},
			}
			if nackReason != "" {
				var ok bool
				if hdr.L3.NackReason, ok = an.ParseNackReason(nackReason); !ok {
					return cli.Exit(fmt.Errorf("invalid Nack reason %q", nackReason), 2)
				}
			}
			hdr.L3.CongMark = uint8(c.Uint("congmark"))

			var frames [][]byte
			if mtu > 0 {
				if frames, e = ndni.NewLpFragmenter(mtu).Fragment(hdr.L3, payload, &hdr.L2.SeqNum); e != nil {
					return cli.Exit(e, 1)
				}
			} else {
				frames = [][]byte{hdr.Encode(payload)}
			}

			for _, frame := range frames {
				fmt.Fprintln(c.App.Writer, strings.ToUpper(hex.EncodeToString(frame)))
			}
			return nil
		},
	})
}
