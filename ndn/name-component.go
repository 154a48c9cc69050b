package ndn

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// ErrComponentType indicates NameComponent TLV-TYPE is out of range.
var ErrComponentType = errors.New("NameComponent TLV-TYPE out of range")

// nameComponentTypeMax is the largest TLV-TYPE of a name component.
const nameComponentTypeMax = 0xFFFF

// uriUnreserved marks octets that appear unescaped in URI representation.
var uriUnreserved [256]bool

func init() {
	for _, ch := range []byte("-._~0123456789") {
		uriUnreserved[ch] = true
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		uriUnreserved[ch], uriUnreserved[ch+'a'-'A'] = true, true
	}
}

// NameComponent represents a name component.
// Zero value is invalid.
type NameComponent struct {
	Type  uint32
	Value []byte
}

var (
	_ tlv.Fielder     = NameComponent{}
	_ tlv.Unmarshaler = (*NameComponent)(nil)
)

// MakeNameComponent constructs a NameComponent from TLV-TYPE and TLV-VALUE.
func MakeNameComponent(typ uint32, value []byte) NameComponent {
	return NameComponent{Type: typ, Value: value}
}

// Valid checks whether this component has a valid TLV-TYPE.
func (comp NameComponent) Valid() bool {
	return comp.Type >= 1 && comp.Type <= nameComponentTypeMax
}

// Equal determines whether two components are the same.
func (comp NameComponent) Equal(other NameComponent) bool {
	return comp.Type == other.Type && bytes.Equal(comp.Value, other.Value)
}

// Field implements tlv.Fielder interface.
func (comp NameComponent) Field() tlv.Field {
	if !comp.Valid() {
		return tlv.FieldError(ErrComponentType)
	}
	return tlv.TLVBytes(comp.Type, comp.Value)
}

// UnmarshalTLV decodes from wire format.
func (comp *NameComponent) UnmarshalTLV(typ uint32, value []byte) error {
	*comp = NameComponent{Type: typ, Value: value}
	if !comp.Valid() {
		return ErrComponentType
	}
	return nil
}

// String returns URI representation of this component.
// A GenericNameComponent omits its TLV-TYPE.
func (comp NameComponent) String() string {
	var b strings.Builder
	if comp.Type != an.TtGenericNameComponent {
		b.WriteString(strconv.FormatUint(uint64(comp.Type), 10))
		b.WriteByte('=')
	}

	if len(bytes.TrimLeft(comp.Value, ".")) == 0 {
		b.Write(comp.Value)
		b.WriteString("...")
		return b.String()
	}

	const hexDigits = "0123456789ABCDEF"
	for _, ch := range comp.Value {
		if uriUnreserved[ch] {
			b.WriteByte(ch)
			continue
		}
		b.Write([]byte{'%', hexDigits[ch>>4], hexDigits[ch&0x0F]})
	}
	return b.String()
}

// ParseNameComponent parses URI representation of name component.
// It uses best effort and can accept any input.
func ParseNameComponent(input string) (comp NameComponent) {
	comp.Type = an.TtGenericNameComponent
	if typS, valS, hasTyp := strings.Cut(input, "="); hasTyp {
		if typ, e := strconv.ParseUint(typS, 10, 32); e == nil && typ >= 1 && typ <= nameComponentTypeMax {
			comp.Type, input = uint32(typ), valS
		}
	}

	if len(input) >= 3 && strings.TrimLeft(input, ".") == "" {
		comp.Value = []byte(input[3:])
		return comp
	}

	comp.Value = make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		if input[i] == '%' && i+2 < len(input) {
			if v, e := strconv.ParseUint(input[i+1:i+3], 16, 8); e == nil {
				comp.Value = append(comp.Value, byte(v))
				i += 2
				continue
			}
		}
		comp.Value = append(comp.Value, input[i])
	}
	return comp
}
