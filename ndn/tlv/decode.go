package tlv

// Unmarshaler is the interface implemented by an object that can decode an TLV element representation of itself.
type Unmarshaler interface {
	UnmarshalTLV(typ uint32, value []byte) error
}

// DecodingBuffer recognizes TLV elements from a contiguous buffer.
type DecodingBuffer []byte

// DecodingElement describes a decoded element and its position.
type DecodingElement struct {
	Element
	// Wire is the complete element.
	Wire []byte
	// After is the input after this element.
	After []byte
}

// Unmarshal decodes this element into an Unmarshaler.
func (de DecodingElement) Unmarshal(u Unmarshaler) error {
	return u.UnmarshalTLV(de.Type, de.Value)
}

// Rest returns unconsumed input.
func (d DecodingBuffer) Rest() []byte {
	return []byte(d)
}

// EOF returns true if decoder is at end of input.
func (d DecodingBuffer) EOF() bool {
	return len(d) == 0
}

// ErrUnlessEOF returns an error if there is unconsumed input.
func (d DecodingBuffer) ErrUnlessEOF() error {
	if d.EOF() {
		return nil
	}
	return ErrTail
}

// Element decodes the next element.
func (d *DecodingBuffer) Element() (de DecodingElement, e error) {
	wire := []byte(*d)
	rest, e := de.Decode(wire)
	if e != nil {
		return de, e
	}
	de.Wire = wire[:len(wire)-len(rest)]
	de.After = rest
	*d = rest
	return de, nil
}

// Elements decodes elements until end of input or a decoding error.
// Undecodable input remains in the buffer.
func (d *DecodingBuffer) Elements() (list []DecodingElement) {
	for !d.EOF() {
		de, e := d.Element()
		if e != nil {
			break
		}
		list = append(list, de)
	}
	return list
}

// DecodeFirst extracts the first TLV element.
func DecodeFirst(wire []byte) (element Element, rest []byte, e error) {
	rest, e = element.Decode(wire)
	return
}

// DecodeFirstExpect extracts the first TLV element, expecting a specified TLV-TYPE.
func DecodeFirstExpect(tt uint32, wire []byte) (element Element, rest []byte, e error) {
	if rest, e = element.Decode(wire); e != nil {
		return Element{}, nil, e
	}
	if element.Type != tt {
		return Element{}, nil, ErrTypeExpect(tt)
	}
	return
}
