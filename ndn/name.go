package ndn

import (
	"strings"

	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// Name represents a name.
// The zero Name has zero components.
type Name []NameComponent

var _ tlv.Fielder = Name{}

// Equal determines whether two names are the same.
func (name Name) Equal(other Name) bool {
	return len(name) == len(other) && name.IsPrefixOf(other)
}

// IsPrefixOf returns true if this name is a prefix of other name.
func (name Name) IsPrefixOf(other Name) bool {
	if len(name) > len(other) {
		return false
	}
	for i := range name {
		if !name[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Append returns a copy of this name with components appended.
func (name Name) Append(comps ...NameComponent) Name {
	ret := make(Name, 0, len(name)+len(comps))
	return append(append(ret, name...), comps...)
}

// Field implements tlv.Fielder interface.
func (name Name) Field() tlv.Field {
	fields := make([]tlv.Field, 0, len(name))
	for _, comp := range name {
		fields = append(fields, comp.Field())
	}
	return tlv.TLV(an.TtName, fields...)
}

// UnmarshalBinary decodes TLV-VALUE from wire format.
func (name *Name) UnmarshalBinary(wire []byte) error {
	comps := Name{}
	for len(wire) > 0 {
		element, rest, e := tlv.DecodeFirst(wire)
		if e != nil {
			return e
		}
		var comp NameComponent
		if e = comp.UnmarshalTLV(element.Type, element.Value); e != nil {
			return e
		}
		comps, wire = append(comps, comp), rest
	}
	*name = comps
	return nil
}

// MarshalText implements encoding.TextMarshaler interface.
func (name Name) MarshalText() (text []byte, e error) {
	return []byte(name.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (name *Name) UnmarshalText(text []byte) error {
	*name = ParseName(string(text))
	return nil
}

// String returns URI representation of this name.
func (name Name) String() string {
	if len(name) == 0 {
		return "/"
	}
	tokens := make([]string, len(name))
	for i, comp := range name {
		tokens[i] = comp.String()
	}
	return "/" + strings.Join(tokens, "/")
}

// ParseName parses URI representation of name.
// It uses best effort and can accept any input.
func ParseName(input string) (name Name) {
	for _, token := range strings.Split(strings.TrimPrefix(input, "ndn:"), "/") {
		if token != "" {
			name = append(name, ParseNameComponent(token))
		}
	}
	return name
}
