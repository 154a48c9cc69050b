package tlv

import (
	"errors"
	"fmt"
)

// Error conditions.
var (
	ErrIncomplete = errors.New("incomplete input")
	ErrTail       = errors.New("junk after end of TLV")
	ErrType       = errors.New("TLV-TYPE out of range")
	ErrCritical   = errors.New("unrecognized critical TLV-TYPE")
	ErrNNI        = errors.New("invalid NonNegativeInteger length")
	ErrRange      = errors.New("out of range")
	ErrErrorField = errors.New("Error(nil) field")
)

// ErrTypeExpect returns an error that indicates TLV-TYPE is not the expected number.
func ErrTypeExpect(tt uint32) error {
	return &typeExpectError{tt}
}

type typeExpectError struct {
	expected uint32
}

func (e *typeExpectError) Error() string {
	return fmt.Sprintf("TLV-TYPE is not 0x%X", e.expected)
}

func (e *typeExpectError) Is(target error) bool {
	return target == ErrType
}
