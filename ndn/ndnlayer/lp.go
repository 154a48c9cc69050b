package ndnlayer

import (
	"github.com/google/gopacket"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/ndni"
)

// LayerTypeLp identifies NDNLPv2 layer.
var LayerTypeLp = gopacket.RegisterLayerType(1637, gopacket.LayerTypeMetadata{
	Name:    "NDNLPv2",
	Decoder: gopacket.DecodeFunc(decodeLp),
})

// Lp is the layer for NDNLPv2 LpPacket.
type Lp struct {
	ndni.LpHeader
	contents []byte
	payload  []byte
}

var (
	_ gopacket.Layer             = (*Lp)(nil)
	_ gopacket.DecodingLayer     = (*Lp)(nil)
	_ gopacket.SerializableLayer = (*Lp)(nil)
)

// LayerType returns LayerTypeLp.
func (Lp) LayerType() gopacket.LayerType {
	return LayerTypeLp
}

// LayerContents returns LpPacket TL, header fields, and Payload TL.
func (l *Lp) LayerContents() []byte {
	return l.contents
}

// LayerPayload returns the payload, which is a network layer packet or a fragment.
func (l *Lp) LayerPayload() []byte {
	return l.payload
}

// DecodeFromBytes decodes an LpPacket.
func (l *Lp) DecodeFromBytes(wire []byte, df gopacket.DecodeFeedback) error {
	lpp, e := ndni.DecodeLpPacket(tlv.NewByteCursor(wire))
	if e != nil {
		return e
	}

	l.LpHeader = lpp.LpHeader
	l.payload = tlv.Collect(lpp.Payload)
	l.contents = wire[:lpp.PayloadOff]
	if lpp.PayloadOff == 0 {
		l.contents = wire[:len(wire)-len(l.payload)]
	}
	return nil
}

// CanDecode implements gopacket.DecodingLayer interface.
func (Lp) CanDecode() gopacket.LayerClass {
	return LayerTypeLp
}

// NextLayerType implements gopacket.DecodingLayer interface.
func (l Lp) NextLayerType() gopacket.LayerType {
	switch {
	case len(l.payload) == 0:
		return gopacket.LayerTypeZero
	case l.L2.IsFragmented():
		return gopacket.LayerTypeFragment
	}
	return LayerTypeNDN
}

// SerializeTo implements gopacket.SerializableLayer interface.
// It encodes header fields in front of the payload already in the buffer.
func (l *Lp) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payload := b.Bytes()
	size := l.LpHeader.Size(len(payload))
	if size == 0 {
		return nil
	}
	wire := l.LpHeader.Encode(payload)
	return prependBytes(b, wire[:size])
}

func decodeLp(wire []byte, p gopacket.PacketBuilder) error {
	l := &Lp{}
	if e := l.DecodeFromBytes(wire, p); e != nil {
		return e
	}
	p.AddLayer(l)
	return p.NextDecoder(l.NextLayerType())
}
