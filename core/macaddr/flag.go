package macaddr

import (
	"encoding"
	"flag"
	"net"
	"strings"
)

// FlagNdnMulticast is the Flag input that selects NdnMulticast.
const FlagNdnMulticast = "ndn"

// Flag is a MAC-48 address usable as a command line flag and as a JSON string.
type Flag struct {
	net.HardwareAddr
}

var (
	_ interface {
		flag.Getter
		encoding.TextUnmarshaler
	} = &Flag{}
	_ encoding.TextMarshaler = Flag{}
)

// Empty returns true if the address is unset.
func (f Flag) Empty() bool {
	return len(f.HardwareAddr) == 0
}

// Get implements flag.Getter.
func (f *Flag) Get() any {
	return f.HardwareAddr
}

// Set implements flag.Value.
// Input is either a MAC-48 address or "ndn" for the NDN multicast group.
func (f *Flag) Set(s string) error {
	if strings.EqualFold(s, FlagNdnMulticast) {
		f.HardwareAddr = append(net.HardwareAddr{}, NdnMulticast...)
		return nil
	}

	a, e := net.ParseMAC(s)
	switch {
	case e != nil:
		return e
	case !IsValid(a):
		return ErrInvalid
	}
	f.HardwareAddr = a
	return nil
}

// MarshalText implements encoding.TextMarshaler.
// An unset address becomes an empty string.
func (f Flag) MarshalText() (text []byte, e error) {
	if f.Empty() {
		return []byte{}, nil
	}
	return []byte(f.HardwareAddr.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty string unsets the address.
func (f *Flag) UnmarshalText(text []byte) (e error) {
	if len(text) == 0 {
		f.HardwareAddr = nil
		return nil
	}
	return f.Set(string(text))
}
