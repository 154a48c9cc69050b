package tlv

// Fielder is the interface implemented by an object that can encode itself to a Field.
type Fielder interface {
	Field() Field
}

// Field is an encodable field.
// Zero value encodes to nothing.
type Field struct {
	err    error
	append func(b []byte) ([]byte, error)

	// tt is non-zero if this Field is a TLV element whose TLV-VALUE is value.
	tt    uint32
	value []Field
}

// Encode appends to the byte slice.
// Returns modified slice and error.
func (f Field) Encode(b []byte) ([]byte, error) {
	switch {
	case f.err != nil:
		return nil, f.err
	case f.tt != 0:
		return appendElement(b, f.tt, f.value)
	case f.append != nil:
		return f.append(b)
	}
	return b, nil
}

// Field implements Fielder interface.
func (f Field) Field() Field {
	return f
}

func appendFields(b []byte, fields []Field) (_ []byte, e error) {
	for _, f := range fields {
		if b, e = f.Encode(b); e != nil {
			return nil, e
		}
	}
	return b, nil
}

// appendElement writes TLV-VALUE in place after TLV-TYPE, then inserts TLV-LENGTH before it.
func appendElement(b []byte, tt uint32, value []Field) (_ []byte, e error) {
	b = VarNum(tt).Encode(b)
	valueOff := len(b)
	if b, e = appendFields(b, value); e != nil {
		return nil, e
	}

	length := VarNum(len(b) - valueOff)
	lengthL := length.Size()
	b = append(b, make([]byte, lengthL)...)
	copy(b[valueOff+lengthL:], b[valueOff:len(b)-lengthL])
	length.Put(b[valueOff:])
	return b, nil
}

// FieldError creates a Field that generates an error.
func FieldError(e error) Field {
	if e == nil {
		e = ErrErrorField
	}
	return Field{err: e}
}

// FieldFunc creates a Field that calls a function to append to a slice.
func FieldFunc(f func([]byte) ([]byte, error)) Field {
	return Field{append: f}
}

// Bytes creates a Field that encodes to given bytes.
func Bytes(b []byte) Field {
	return FieldFunc(func(output []byte) ([]byte, error) {
		return append(output, b...), nil
	})
}

// TLV creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE Fields.
func TLV(typ uint32, values ...Field) Field {
	if typ < minType || typ > maxType {
		return FieldError(ErrType)
	}
	return Field{tt: typ, value: values}
}

// TLVFrom creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE Fielders.
func TLVFrom(typ uint32, values ...Fielder) Field {
	fields := make([]Field, len(values))
	for i, value := range values {
		fields[i] = value.Field()
	}
	return TLV(typ, fields...)
}

// TLVBytes creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE byte slice.
func TLVBytes(typ uint32, value []byte) Field {
	return TLV(typ, Bytes(value))
}

// TLVNNI creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE NonNegativeInteger.
// A negative v generates ErrRange.
func TLVNNI(typ uint32, v int64) Field {
	if v < 0 {
		return FieldError(ErrRange)
	}
	return TLV(typ, NNI(v).Field())
}

// Encode encodes a sequence of Fields.
func Encode(fields ...Field) (wire []byte, e error) {
	return appendFields(nil, fields)
}

// EncodeFrom encodes a sequence of Fielders.
func EncodeFrom(fields ...Fielder) (wire []byte, e error) {
	for _, f := range fields {
		if wire, e = f.Field().Encode(wire); e != nil {
			return nil, e
		}
	}
	return wire, nil
}

// EncodeValueOnly returns TLV-VALUE of a Fielder created by TLV, TLVFrom, TLVBytes, or TLVNNI.
func EncodeValueOnly(f Fielder) ([]byte, error) {
	field := f.Field()
	switch {
	case field.err != nil:
		return nil, field.err
	case field.tt == 0:
		return nil, ErrErrorField
	}
	return appendFields(nil, field.value)
}
