package ndnlayer

import (
	"errors"

	"github.com/google/gopacket"
	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// ErrNoPacket indicates NDN layer has nothing to serialize.
var ErrNoPacket = errors.New("NDN layer has no Interest or Data")

// LayerTypeNDN identifies NDN layer.
var LayerTypeNDN = gopacket.RegisterLayerType(1636, gopacket.LayerTypeMetadata{
	Name:    "NDN",
	Decoder: gopacket.DecodeFunc(decodeNDN),
})

// NDN is the layer for an unfragmented Interest or Data.
// When it follows an Lp layer, PIT token and Nack are found in that layer.
type NDN struct {
	Packet *ndn.Packet
	wire   []byte
}

var _ interface {
	gopacket.ApplicationLayer
	gopacket.DecodingLayer
	gopacket.SerializableLayer
} = &NDN{}

// LayerType returns LayerTypeNDN.
func (NDN) LayerType() gopacket.LayerType {
	return LayerTypeNDN
}

// LayerContents returns the Interest or Data element.
func (l *NDN) LayerContents() []byte {
	return l.wire
}

// LayerPayload returns Data Content, or nil for an Interest.
func (l *NDN) LayerPayload() []byte {
	if l.Packet == nil || l.Packet.Data == nil {
		return nil
	}
	return l.Packet.Data.Content
}

// Payload implements gopacket.ApplicationLayer interface.
func (l *NDN) Payload() []byte {
	return l.LayerPayload()
}

// DecodeFromBytes decodes an Interest or Data.
// Octets after the first element are rejected.
func (l *NDN) DecodeFromBytes(wire []byte, df gopacket.DecodeFeedback) error {
	var pkt ndn.Packet
	if e := pkt.UnmarshalBinary(wire); e != nil {
		l.Packet, l.wire = nil, nil
		return e
	}

	l.Packet, l.wire = &pkt, wire
	return nil
}

// CanDecode implements gopacket.DecodingLayer interface.
func (NDN) CanDecode() gopacket.LayerClass {
	return LayerTypeNDN
}

// NextLayerType implements gopacket.DecodingLayer interface.
func (l NDN) NextLayerType() gopacket.LayerType {
	if len(l.LayerPayload()) == 0 {
		return gopacket.LayerTypeZero
	}
	return gopacket.LayerTypePayload
}

// SerializeTo implements gopacket.SerializableLayer interface.
// Anything already in the buffer is overwritten.
func (l *NDN) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if l.Packet == nil || (l.Packet.Interest == nil && l.Packet.Data == nil) {
		return ErrNoPacket
	}

	wire, e := tlv.EncodeFrom(l.Packet)
	if e != nil {
		return e
	}
	if e = b.Clear(); e != nil {
		return e
	}
	return prependBytes(b, wire)
}

func decodeNDN(wire []byte, p gopacket.PacketBuilder) error {
	l := &NDN{}
	if e := l.DecodeFromBytes(wire, p); e != nil {
		return e
	}
	p.AddLayer(l)
	p.SetApplicationLayer(l)
	return p.NextDecoder(l.NextLayerType())
}
