package tlv

import "math"

const (
	minType = 1
	maxType = math.MaxUint32
)

// Element represents a TLV element.
// The zero Element is invalid.
type Element struct {
	// Type is the TLV-TYPE.
	Type uint32
	// Value is the TLV-VALUE.
	Value []byte
}

var (
	_ Fielder     = Element{}
	_ Unmarshaler = (*Element)(nil)
)

// Size returns encoded size.
func (element Element) Size() int {
	return VarNum(element.Type).Size() + VarNum(element.Length()).Size() + len(element.Value)
}

// Length returns TLV-LENGTH.
func (element Element) Length() int {
	return len(element.Value)
}

// Decode extracts an element from the buffer.
// TLV-VALUE shares memory with wire.
func (element *Element) Decode(wire []byte) (rest []byte, e error) {
	c := NewByteCursor(wire)
	de, e := ReadElement(c)
	if e != nil {
		return nil, e
	}
	element.Type, element.Value = de.Type, de.Value.(*ByteCursor).Bytes()
	return c.Bytes(), nil
}

// Field implements Fielder interface.
func (element Element) Field() Field {
	return TLVBytes(element.Type, element.Value)
}

// UnmarshalTLV implements Unmarshaler interface.
func (element *Element) UnmarshalTLV(typ uint32, value []byte) error {
	element.Type = typ
	element.Value = value
	return nil
}

// UnmarshalValue decodes TLV-VALUE into an encoding.BinaryUnmarshaler such as *NNI.
func (element Element) UnmarshalValue(u interface{ UnmarshalBinary([]byte) error }) error {
	return u.UnmarshalBinary(element.Value)
}
