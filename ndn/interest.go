package ndn

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"time"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// Interest decoding and encoding errors.
var (
	ErrNonceLen = errors.New("Nonce wrong length")
	ErrLifetime = errors.New("InterestLifetime out of range")
	ErrHopLimit = errors.New("HopLimit out of range")
)

// DefaultInterestLifetime is the default InterestLifetime.
const DefaultInterestLifetime = 4000 * time.Millisecond

// Interest represents an Interest packet.
type Interest struct {
	Name        Name
	CanBePrefix bool
	MustBeFresh bool
	// Nonce is the Interest nonce; zero means a random nonce is generated during encoding.
	Nonce uint32
	// Lifetime is the InterestLifetime; zero means default.
	Lifetime time.Duration
	// HopLimit is the HopLimit; zero means omitted.
	HopLimit uint8
}

var (
	_ tlv.Fielder     = Interest{}
	_ tlv.Unmarshaler = (*Interest)(nil)
)

// Field implements tlv.Fielder interface.
func (interest Interest) Field() tlv.Field {
	if interest.Lifetime < 0 {
		return tlv.FieldError(ErrLifetime)
	}

	fields := []tlv.Field{interest.Name.Field()}
	if interest.CanBePrefix {
		fields = append(fields, tlv.TLV(an.TtCanBePrefix))
	}
	if interest.MustBeFresh {
		fields = append(fields, tlv.TLV(an.TtMustBeFresh))
	}

	nonce := interest.Nonce
	if nonce == 0 {
		nonce = rand.Uint32()
	}
	fields = append(fields, tlv.TLVBytes(an.TtNonce, binary.BigEndian.AppendUint32(nil, nonce)))

	if interest.Lifetime != 0 && interest.Lifetime != DefaultInterestLifetime {
		fields = append(fields, tlv.TLVNNI(an.TtInterestLifetime, interest.Lifetime.Milliseconds()))
	}
	if interest.HopLimit != 0 {
		fields = append(fields, tlv.TLVBytes(an.TtHopLimit, []byte{interest.HopLimit}))
	}
	return tlv.TLV(an.TtInterest, fields...)
}

// UnmarshalTLV decodes from wire format.
func (interest *Interest) UnmarshalTLV(typ uint32, value []byte) error {
	if typ != an.TtInterest {
		return tlv.ErrTypeExpect(an.TtInterest)
	}
	*interest = Interest{Lifetime: DefaultInterestLifetime}

	d := tlv.DecodingBuffer(value)
	for _, de := range d.Elements() {
		switch de.Type {
		case an.TtName:
			if e := interest.Name.UnmarshalBinary(de.Value); e != nil {
				return e
			}
		case an.TtCanBePrefix:
			interest.CanBePrefix = true
		case an.TtMustBeFresh:
			interest.MustBeFresh = true
		case an.TtNonce:
			if de.Length() != 4 {
				return ErrNonceLen
			}
			interest.Nonce = binary.BigEndian.Uint32(de.Value)
		case an.TtInterestLifetime:
			var lifetime tlv.NNI
			if e := de.UnmarshalValue(&lifetime); e != nil {
				return e
			}
			interest.Lifetime = time.Duration(lifetime) * time.Millisecond
		case an.TtHopLimit:
			if de.Length() != 1 {
				return ErrHopLimit
			}
			interest.HopLimit = de.Value[0]
		}
	}
	return d.ErrUnlessEOF()
}
