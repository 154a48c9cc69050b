// Package ndnlayer provides GoPacket layers for NDN and NDNLPv2.
//
// Decoding an Ethernet frame with EtherType 0x8624, or a UDP datagram on port 6363, yields
// LayerTypeTLV, followed by LayerTypeLp when the frame is an LpPacket, and LayerTypeNDN
// when it carries an unfragmented Interest or Data.
package ndnlayer

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// Assigned numbers.
const (
	EthernetTypeNDN layers.EthernetType = an.EtherTypeNDN
	UDPPortNDN      layers.UDPPort      = an.UDPPortNDN
)

// LayerTypeTLV identifies the outermost NDN-TLV element of a frame.
var LayerTypeTLV = gopacket.RegisterLayerType(1638, gopacket.LayerTypeMetadata{
	Name:    "NDN-TLV",
	Decoder: gopacket.DecodeFunc(decodeTLV),
})

// TLV is the layer for the outermost NDN-TLV element.
// It selects NDNLPv2 or NDN as the next layer according to TLV-TYPE.
type TLV struct {
	Type   uint32
	Length int

	wire    []byte
	padding []byte
}

var (
	_ gopacket.Layer         = (*TLV)(nil)
	_ gopacket.DecodingLayer = (*TLV)(nil)
)

// LayerType returns LayerTypeTLV.
func (TLV) LayerType() gopacket.LayerType {
	return LayerTypeTLV
}

// LayerContents returns nothing, so that the element appears in the next layer.
func (l *TLV) LayerContents() []byte {
	return nil
}

// LayerPayload returns the TLV element.
func (l *TLV) LayerPayload() []byte {
	return l.wire
}

// Padding returns octets after the TLV element, such as Ethernet padding.
func (l *TLV) Padding() []byte {
	return l.padding
}

// DecodeFromBytes reads TLV-TYPE and TLV-LENGTH of the first element.
func (l *TLV) DecodeFromBytes(wire []byte, df gopacket.DecodeFeedback) error {
	var element tlv.Element
	rest, e := element.Decode(wire)
	if e != nil {
		return e
	}

	l.Type, l.Length = element.Type, len(element.Value)
	l.wire, l.padding = wire[:len(wire)-len(rest)], rest
	return nil
}

// CanDecode implements gopacket.DecodingLayer interface.
func (TLV) CanDecode() gopacket.LayerClass {
	return LayerTypeTLV
}

// NextLayerType implements gopacket.DecodingLayer interface.
func (l TLV) NextLayerType() gopacket.LayerType {
	switch l.Type {
	case an.TtLpPacket:
		return LayerTypeLp
	case an.TtInterest, an.TtData:
		return LayerTypeNDN
	}
	return gopacket.LayerTypePayload
}

func decodeTLV(wire []byte, p gopacket.PacketBuilder) error {
	l := &TLV{}
	if e := l.DecodeFromBytes(wire, p); e != nil {
		return e
	}
	p.AddLayer(l)
	return p.NextDecoder(l.NextLayerType())
}

func init() {
	layers.EthernetTypeMetadata[EthernetTypeNDN] = layers.EnumMetadata{
		DecodeWith: gopacket.DecodeFunc(decodeTLV),
		Name:       LayerTypeTLV.String(),
		LayerType:  LayerTypeTLV,
	}

	layers.RegisterUDPPortLayerType(UDPPortNDN, LayerTypeTLV)
}

func prependBytes(b gopacket.SerializeBuffer, wire []byte) error {
	room, e := b.PrependBytes(len(wire))
	if e != nil {
		return e
	}
	copy(room, wire)
	return nil
}
