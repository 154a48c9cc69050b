package tlv_test

import (
	"testing"

	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn/ndntestvector"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

func TestElement(t *testing.T) {
	assert, _ := makeAR(t)

	for _, tt := range ndntestvector.TlvElementTests {
		input := bytesFromHex(tt.Input)
		var element tlv.Element
		rest, e := element.Decode(input)
		if tt.Bad {
			assert.Error(e, tt.Input)
			continue
		}
		if !assert.NoError(e, tt.Input) {
			continue
		}

		assert.Len(rest, 0, tt.Input)
		bytesEqual(assert, bytesFromHex(tt.Value), element.Value, tt.Input)

		reencoded, e := tlv.Encode(element.Field())
		assert.NoError(e, tt.Input)
		assert.Len(reencoded, element.Size(), tt.Input)
		if len(input) == len(reencoded) { // minimal VarNum encoding
			assert.Equal(input, reencoded, tt.Input)
		}

		var nni tlv.NNI
		if e := element.UnmarshalValue(&nni); tt.IsNni {
			assert.NoError(e, tt.Input)
			assert.EqualValues(tt.Nni, nni, tt.Input)
		} else {
			assert.ErrorIs(e, tlv.ErrNNI, tt.Input)
		}
	}
}

func TestNNI(t *testing.T) {
	assert, _ := makeAR(t)

	tests := []struct {
		n    uint64
		wire string
	}{
		{0x00, "00"},
		{0xFF, "FF"},
		{0x0100, "0100"},
		{0xFFFF, "FFFF"},
		{0x010000, "00010000"},
		{0xFFFFFFFF, "FFFFFFFF"},
		{0x0100000000, "0000000100000000"},
	}
	for _, tt := range tests {
		nni := tlv.NNI(tt.n)
		wire := bytesFromHex(tt.wire)
		assert.Equal(len(wire), nni.Size())
		assert.Equal(wire, nni.Encode(nil))

		encoded, e := tlv.Encode(nni.Field())
		assert.NoError(e)
		assert.Equal(wire, encoded)
	}
}

func TestByteCursor(t *testing.T) {
	assert, require := makeAR(t)

	c := tlv.NewByteCursor(testenv.BytesFromHex("A0A1A2A3A4A5"))
	assert.Equal(6, c.Len())
	b, ok := c.PeekByte()
	assert.True(ok)
	assert.Equal(byte(0xA0), b)
	assert.Equal(6, c.Len())

	var p [2]byte
	require.True(c.ReadTo(p[:]))
	assert.Equal([2]byte{0xA0, 0xA1}, p)
	assert.False(c.Advance(5))
	assert.False(c.Advance(-1))
	require.True(c.Advance(1))

	sub, ok := c.Slice(2)
	require.True(ok)
	assert.Equal(2, sub.Len())
	assert.Equal(1, c.Len())
	_, ok = c.Slice(2)
	assert.False(ok)

	assert.Equal([]byte{0xA3, 0xA4}, tlv.Collect(sub))
	assert.Equal(0, sub.Len())
	_, ok = sub.PeekByte()
	assert.False(ok)
	assert.Equal([]byte{0xA5}, c.Bytes())
	assert.False(c.ReadTo(make([]byte, 2)))
	assert.Equal(1, c.Len())
	assert.Nil(tlv.Collect(nil))
}
