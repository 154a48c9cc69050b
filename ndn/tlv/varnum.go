// Package tlv implements NDN Type-Length-Value (TLV) encoding.
package tlv

import (
	"encoding/binary"
	"math"
)

// VarNum represents a number in variable size encoding for TLV-TYPE or TLV-LENGTH.
type VarNum uint64

// varNumClass describes one multi-octet VarNum encoding.
type varNumClass struct {
	marker byte
	max    uint64
	size   int
}

var varNumClasses = [...]varNumClass{
	{0xFD, math.MaxUint16, 3},
	{0xFE, math.MaxUint32, 5},
	{0xFF, math.MaxUint64, 9},
}

func (n VarNum) class() *varNumClass {
	for i := range varNumClasses {
		if uint64(n) <= varNumClasses[i].max {
			return &varNumClasses[i]
		}
	}
	panic("unreachable")
}

// Size returns the wire encoding size.
func (n VarNum) Size() int {
	if n < 0xFD {
		return 1
	}
	return n.class().size
}

// Encode appends this number to a buffer.
func (n VarNum) Encode(buf []byte) []byte {
	var room [9]byte
	return append(buf, room[:n.Put(room[:])]...)
}

// Put writes this number to the front of b, which must have at least Size() octets.
// Returns number of octets written.
func (n VarNum) Put(b []byte) int {
	if n < 0xFD {
		b[0] = byte(n)
		return 1
	}

	cls := n.class()
	b[0] = cls.marker
	var full [8]byte
	binary.BigEndian.PutUint64(full[:], uint64(n))
	copy(b[1:cls.size], full[9-cls.size:])
	return cls.size
}

// Decode extracts a VarNum from the buffer.
func (n *VarNum) Decode(wire []byte) (rest []byte, e error) {
	if len(wire) == 0 {
		return nil, ErrIncomplete
	}
	size := varNumSizeFromFirst(wire[0])
	if len(wire) < size {
		return nil, ErrIncomplete
	}
	*n = varNumFromWire(wire[:size])
	return wire[size:], nil
}

// varNumFromWire decodes a complete VarNum whose length agrees with its first octet.
func varNumFromWire(b []byte) VarNum {
	if len(b) == 1 {
		return VarNum(b[0])
	}
	var full [8]byte
	copy(full[9-len(b):], b[1:])
	return VarNum(binary.BigEndian.Uint64(full[:]))
}

// varNumSizeFromFirst returns encoded size indicated by the first octet.
func varNumSizeFromFirst(first byte) int {
	for _, cls := range varNumClasses {
		if cls.marker == first {
			return cls.size
		}
	}
	return 1
}
