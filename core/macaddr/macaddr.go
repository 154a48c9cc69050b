// Package macaddr validates and generates Ethernet MAC-48 addresses.
package macaddr

import (
	"bytes"
	"errors"
	"math/rand"
	"net"
)

// Errors.
var (
	ErrInvalid   = errors.New("invalid MAC-48 address")
	ErrUnicast   = errors.New("invalid unicast MAC-48 address")
	ErrMulticast = errors.New("invalid multicast MAC-48 address")
)

// NdnMulticast is the default NDN Ethernet multicast group.
var NdnMulticast = net.HardwareAddr{0x01, 0x00, 0x5E, 0x00, 0x17, 0xAA}

// Equal determines whether two HardwareAddrs are the same.
func Equal(a, b net.HardwareAddr) bool {
	return bytes.Equal([]byte(a), []byte(b))
}

// IsValid determines whether the HardwareAddr is a MAC-48 address.
func IsValid(a net.HardwareAddr) bool {
	return len(a) == 6
}

// IsUnicast determines whether the HardwareAddr is a non-zero unicast MAC-48 address.
func IsUnicast(a net.HardwareAddr) bool {
	return IsValid(a) && (a[0]&0x01) == 0 && (a[0]|a[1]|a[2]|a[3]|a[4]|a[5]) != 0
}

// IsMulticast determines whether the HardwareAddr is a multicast MAC-48 address.
// Broadcast is a special case of multicast.
func IsMulticast(a net.HardwareAddr) bool {
	return IsValid(a) && (a[0]&0x01) != 0
}

// CheckUnicast returns ErrUnicast if the HardwareAddr is not a unicast address.
func CheckUnicast(a net.HardwareAddr) error {
	if !IsUnicast(a) {
		return ErrUnicast
	}
	return nil
}

// CheckRemote returns an error if the HardwareAddr cannot serve as the remote endpoint of a face.
// Both unicast and multicast are acceptable.
func CheckRemote(a net.HardwareAddr) error {
	if !IsUnicast(a) && !IsMulticast(a) {
		return ErrInvalid
	}
	return nil
}

// MakeRandom generates a random locally administered MAC-48 address.
func MakeRandom(multicast bool) (a net.HardwareAddr) {
	a = make(net.HardwareAddr, 6)
	rand.Read([]byte(a))
	a[0] |= 0x02
	if multicast {
		a[0] |= 0x01
	} else {
		a[0] &^= 0x01
	}
	return a
}
