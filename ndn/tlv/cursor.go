package tlv

// Cursor reads a byte region that may span several non-contiguous memory segments.
// Methods that fail leave the Cursor unchanged.
type Cursor interface {
	// Len returns the number of remaining octets.
	Len() int

	// PeekByte returns the next octet without advancing.
	PeekByte() (byte, bool)

	// ReadTo copies the next len(p) octets into p and advances past them.
	ReadTo(p []byte) bool

	// Advance skips n octets.
	Advance(n int) bool

	// Slice returns a Cursor over the next n octets and advances past them.
	// The returned Cursor shares memory with the original.
	Slice(n int) (Cursor, bool)
}

// ByteCursor is a Cursor over a contiguous byte slice.
type ByteCursor struct {
	b []byte
}

var _ Cursor = (*ByteCursor)(nil)

// NewByteCursor creates a ByteCursor.
func NewByteCursor(b []byte) *ByteCursor {
	return &ByteCursor{b}
}

// Len implements Cursor interface.
func (c *ByteCursor) Len() int {
	return len(c.b)
}

// PeekByte implements Cursor interface.
func (c *ByteCursor) PeekByte() (byte, bool) {
	if len(c.b) == 0 {
		return 0, false
	}
	return c.b[0], true
}

// ReadTo implements Cursor interface.
func (c *ByteCursor) ReadTo(p []byte) bool {
	if len(c.b) < len(p) {
		return false
	}
	c.b = c.b[copy(p, c.b):]
	return true
}

// Advance implements Cursor interface.
func (c *ByteCursor) Advance(n int) bool {
	if n < 0 || n > len(c.b) {
		return false
	}
	c.b = c.b[n:]
	return true
}

// Slice implements Cursor interface.
func (c *ByteCursor) Slice(n int) (Cursor, bool) {
	if n < 0 || n > len(c.b) {
		return nil, false
	}
	sub := &ByteCursor{c.b[:n:n]}
	c.b = c.b[n:]
	return sub, true
}

// Bytes returns the remaining octets without advancing.
func (c *ByteCursor) Bytes() []byte {
	return c.b
}

// Collect consumes all remaining octets of a Cursor.
// A ByteCursor returns its underlying memory; other Cursors are copied.
func Collect(c Cursor) []byte {
	if c == nil {
		return nil
	}
	if bc, ok := c.(*ByteCursor); ok {
		b := bc.b
		bc.b = bc.b[len(bc.b):]
		return b
	}
	b := make([]byte, c.Len())
	c.ReadTo(b)
	return b
}

// ReadVarNum reads a VarNum from a Cursor.
// If the VarNum is incomplete, the Cursor is not advanced.
func ReadVarNum(c Cursor) (VarNum, error) {
	first, ok := c.PeekByte()
	if !ok {
		return 0, ErrIncomplete
	}
	var b [9]byte
	size := varNumSizeFromFirst(first)
	if !c.ReadTo(b[:size]) {
		return 0, ErrIncomplete
	}
	return varNumFromWire(b[:size]), nil
}

// CursorElement is a TLV element whose TLV-VALUE is a Cursor.
type CursorElement struct {
	Type   uint32
	Length int
	Value  Cursor
}

// Size returns encoded size.
func (de CursorElement) Size() int {
	return VarNum(de.Type).Size() + VarNum(de.Length).Size() + de.Length
}

// ReadElement reads a TLV element from a Cursor.
// TLV-VALUE is not copied.
func ReadElement(c Cursor) (de CursorElement, e error) {
	typ, e := ReadVarNum(c)
	if e != nil {
		return de, e
	}
	if typ < minType || typ > maxType {
		return de, ErrType
	}
	length, e := ReadVarNum(c)
	if e != nil {
		return de, e
	}
	if uint64(length) > uint64(c.Len()) {
		return de, ErrIncomplete
	}

	de.Type, de.Length = uint32(typ), int(length)
	de.Value, _ = c.Slice(de.Length)
	return de, nil
}

// ReadNNI reads a NonNegativeInteger occupying all remaining octets of a Cursor.
func ReadNNI(value Cursor) (n NNI, e error) {
	var b [8]byte
	size := value.Len()
	if size > len(b) {
		return 0, ErrNNI
	}
	value.ReadTo(b[:size])
	e = n.UnmarshalBinary(b[:size])
	return n, e
}
