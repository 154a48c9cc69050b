package tlv_test

import (
	"errors"
	"testing"

	"github.com/usnistgov/ndnlp/ndn/tlv"
)

type testEncodeMarshaler int

func (m testEncodeMarshaler) Field() tlv.Field {
	if m < 0 {
		return tlv.FieldError(errors.New("testEncodeMarshaler error"))
	}
	return tlv.TLVBytes(uint32(m), make([]byte, m))
}

func TestEncode(t *testing.T) {
	assert, _ := makeAR(t)

	wire, e := tlv.EncodeFrom(
		tlv.Bytes(nil),
		tlv.Bytes([]byte{0xF1}),
		tlv.FieldFunc(func(b []byte) ([]byte, error) { return append(b, 0xF2), nil }),
		tlv.TLVBytes(1, []byte{0xF3}),
		testEncodeMarshaler(2),
		tlv.TLV(3, testEncodeMarshaler(3).Field()),
		tlv.TLVFrom(4, testEncodeMarshaler(4)),
		tlv.TLVNNI(0x0320, 0x0100),
	)
	assert.NoError(e)
	assert.Equal(bytesFromHex(`
		F1
		F2
		01 01 F3
		02 02 0000
		03 05 030300 0000
		04 06 04040000 0000
		FD0320 02 0100
	`), wire)

	wire, e = tlv.EncodeValueOnly(tlv.TLVBytes(5, []byte{0xF4}))
	assert.NoError(e)
	assert.Equal([]byte{0xF4}, wire)

	_, e = tlv.Encode(testEncodeMarshaler(-1).Field())
	assert.Error(e)
	_, e = tlv.Encode(tlv.TLV(0))
	assert.ErrorIs(e, tlv.ErrType)
	_, e = tlv.Encode(tlv.TLVNNI(10, -1))
	assert.ErrorIs(e, tlv.ErrRange)
	_, e = tlv.EncodeValueOnly(tlv.TLVNNI(11, -1))
	assert.Error(e)
	_, e = tlv.EncodeValueOnly(tlv.Bytes(nil))
	assert.ErrorIs(e, tlv.ErrErrorField)
}

func TestEncodeLongValue(t *testing.T) {
	assert, _ := makeAR(t)

	value := make([]byte, 300)
	for i := range value {
		value[i] = byte(i)
	}
	wire, e := tlv.Encode(tlv.TLV(0x64, tlv.TLVBytes(0x50, value), tlv.TLVNNI(0x51, 1)))
	assert.NoError(e)
	assert.Len(wire, 1+3+(1+3+300)+3)
	assert.Equal(bytesFromHex("64 FD0133 50 FD012C"), wire[:8])
	assert.Equal(value, wire[8:308])
	assert.Equal(bytesFromHex("510101"), wire[308:])
}
