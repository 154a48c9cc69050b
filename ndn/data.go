package ndn

import (
	"time"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// Data represents a Data packet.
// It is encoded with a null signature.
type Data struct {
	Name      Name
	Freshness time.Duration
	Content   []byte
}

var (
	_ tlv.Fielder     = Data{}
	_ tlv.Unmarshaler = (*Data)(nil)
)

// Field implements tlv.Fielder interface.
func (data Data) Field() tlv.Field {
	fields := []tlv.Field{data.Name.Field()}
	if data.Freshness > 0 {
		fields = append(fields, tlv.TLV(an.TtMetaInfo, tlv.TLVNNI(an.TtFreshnessPeriod, data.Freshness.Milliseconds())))
	}
	fields = append(fields,
		tlv.TLVBytes(an.TtContent, data.Content),
		tlv.TLV(an.TtDSigInfo, tlv.TLVNNI(an.TtSigType, an.SigNull)),
		tlv.TLVBytes(an.TtDSigValue, nil),
	)
	return tlv.TLV(an.TtData, fields...)
}

// UnmarshalTLV decodes from wire format.
// Signature is not verified.
func (data *Data) UnmarshalTLV(typ uint32, value []byte) error {
	if typ != an.TtData {
		return tlv.ErrTypeExpect(an.TtData)
	}
	*data = Data{}

	d := tlv.DecodingBuffer(value)
	for _, de := range d.Elements() {
		switch de.Type {
		case an.TtName:
			if e := data.Name.UnmarshalBinary(de.Value); e != nil {
				return e
			}
		case an.TtMetaInfo:
			meta := tlv.DecodingBuffer(de.Value)
			for _, me := range meta.Elements() {
				if me.Type != an.TtFreshnessPeriod {
					continue
				}
				var freshness tlv.NNI
				if e := me.UnmarshalValue(&freshness); e != nil {
					return e
				}
				data.Freshness = time.Duration(freshness) * time.Millisecond
			}
		case an.TtContent:
			data.Content = de.Value
		}
	}
	return d.ErrUnlessEOF()
}
