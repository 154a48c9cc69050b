package testenv

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/stretchr/testify/assert"
)

// RandBytes fills []byte with non-crypto-safe random bytes.
func RandBytes(p []byte) {
	rand.Read(p)
}

// BytesFromHex converts a hexadecimal string to a byte slice.
// The octets must be written as upper case.
// All characters other than [0-9A-F] are considered comments and stripped, so that
// test vectors can be annotated like "5102A0A1 fragindex=520101".
func BytesFromHex(input string) []byte {
	s := strings.Map(func(ch rune) rune {
		if (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F') {
			return ch
		}
		return -1
	}, input)
	decoded, e := hex.DecodeString(s)
	if e != nil {
		panic(fmt.Errorf("hex.DecodeString %w", e))
	}
	return decoded
}

// SplitBytes cuts a byte slice into segments at given offsets.
// Offsets must be ascending and within range.
func SplitBytes(b []byte, cuts ...int) (segs [][]byte) {
	last := 0
	for _, cut := range cuts {
		segs = append(segs, b[last:cut])
		last = cut
	}
	return append(segs, b[last:])
}

// BytesEqual asserts that actual bytes equals expected bytes.
// It considers nil slice and zero-length slice to be the same.
func BytesEqual(a *assert.Assertions, expected, actual []byte, msgAndArgs ...any) bool {
	if len(expected) == 0 && len(actual) == 0 {
		return true
	}
	return a.Equal(expected, actual, msgAndArgs...)
}
