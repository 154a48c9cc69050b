package tlv_test

import (
	"testing"

	"github.com/usnistgov/ndnlp/ndn/tlv"
)

func TestVarNum(t *testing.T) {
	assert, _ := makeAR(t)

	tests := []struct {
		input string
		bad   bool
		n     uint64
	}{
		{input: "", bad: true},
		{input: "00", n: 0x00},
		{input: "FC", n: 0xFC},
		{input: "FD", bad: true},
		{input: "FD00", bad: true},
		{input: "FD00FD", n: 0xFD},
		{input: "FDFFFF", n: 0xFFFF},
		{input: "FE000100", bad: true},
		{input: "FE00010000", n: 0x10000},
		{input: "FEFFFFFFFF", n: 0xFFFFFFFF},
		{input: "FF000000010000", bad: true},
		{input: "FF0000000100000000", n: 0x100000000},
		{input: "FFFFFFFFFFFFFFFFFF", n: 0xFFFFFFFFFFFFFFFF},
	}
	for _, tt := range tests {
		input := bytesFromHex(tt.input)

		var n tlv.VarNum
		rest, e := n.Decode(input)
		cn, ce := tlv.ReadVarNum(tlv.NewByteCursor(input))
		if tt.bad {
			assert.Error(e, tt.input)
			assert.ErrorIs(ce, tlv.ErrIncomplete, tt.input)
			continue
		}

		if assert.NoError(e, tt.input) && assert.NoError(ce, tt.input) {
			assert.Len(rest, 0, tt.input)
			assert.EqualValues(tt.n, n, tt.input)
			assert.EqualValues(tt.n, cn, tt.input)
			assert.Equal(len(input), n.Size(), tt.input)
			assert.Equal(input, n.Encode(nil), tt.input)

			room := make([]byte, 9)
			assert.Equal(len(input), n.Put(room), tt.input)
			assert.Equal(input, room[:len(input)], tt.input)
		}
	}
}
