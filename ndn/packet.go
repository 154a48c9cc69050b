// Package ndn implements Named Data Networking (NDN) packet representations.
//
// Only the subset needed by traffic generators is supported: names, Interests, and Data
// with null signature.
package ndn

import (
	"errors"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// ErrL3Type indicates the element is neither Interest nor Data.
var ErrL3Type = errors.New("unknown L3 packet type")

// Packet is an Interest or a Data.
type Packet struct {
	Interest *Interest
	Data     *Data
}

// Name returns the packet name.
func (pkt Packet) Name() Name {
	switch {
	case pkt.Interest != nil:
		return pkt.Interest.Name
	case pkt.Data != nil:
		return pkt.Data.Name
	}
	return nil
}

// Field implements tlv.Fielder interface.
func (pkt Packet) Field() tlv.Field {
	switch {
	case pkt.Interest != nil:
		return pkt.Interest.Field()
	case pkt.Data != nil:
		return pkt.Data.Field()
	}
	return tlv.FieldError(ErrL3Type)
}

// UnmarshalBinary decodes from wire format.
// The input must contain exactly one Interest or Data element.
func (pkt *Packet) UnmarshalBinary(wire []byte) error {
	*pkt = Packet{}
	element, rest, e := tlv.DecodeFirst(wire)
	if e != nil {
		return e
	}
	if len(rest) > 0 {
		return tlv.ErrTail
	}

	switch element.Type {
	case an.TtInterest:
		pkt.Interest = &Interest{}
		return pkt.Interest.UnmarshalTLV(element.Type, element.Value)
	case an.TtData:
		pkt.Data = &Data{}
		return pkt.Data.UnmarshalTLV(element.Type, element.Value)
	}
	return ErrL3Type
}
