package tlv

import (
	"encoding"
	"encoding/binary"
	"math"
)

// NNI is a non-negative integer.
type NNI uint64

var (
	_ Fielder                    = NNI(0)
	_ encoding.BinaryMarshaler   = NNI(0)
	_ encoding.BinaryUnmarshaler = (*NNI)(nil)
)

// Size returns the wire encoding size.
func (n NNI) Size() int {
	switch {
	case n <= math.MaxUint8:
		return 1
	case n <= math.MaxUint16:
		return 2
	case n <= math.MaxUint32:
		return 4
	default:
		return 8
	}
}

// Encode appends this number in shortest encoding.
func (n NNI) Encode(b []byte) []byte {
	switch n.Size() {
	case 1:
		return append(b, byte(n))
	case 2:
		return binary.BigEndian.AppendUint16(b, uint16(n))
	case 4:
		return binary.BigEndian.AppendUint32(b, uint32(n))
	default:
		return binary.BigEndian.AppendUint64(b, uint64(n))
	}
}

// Field implements Fielder interface.
func (n NNI) Field() Field {
	return FieldFunc(func(b []byte) ([]byte, error) {
		return n.Encode(b), nil
	})
}

// MarshalBinary encodes this number.
func (n NNI) MarshalBinary() ([]byte, error) {
	return n.Encode(nil), nil
}

// UnmarshalBinary decodes this number.
// The input may use any of the 1, 2, 4, or 8 octet encodings.
func (n *NNI) UnmarshalBinary(wire []byte) error {
	switch len(wire) {
	case 1:
		*n = NNI(wire[0])
	case 2:
		*n = NNI(binary.BigEndian.Uint16(wire))
	case 4:
		*n = NNI(binary.BigEndian.Uint32(wire))
	case 8:
		*n = NNI(binary.BigEndian.Uint64(wire))
	default:
		return ErrNNI
	}
	return nil
}
