package ndni

import "strconv"

// NdnError indicates an error condition in ndni package.
type NdnError int

// Known NdnError numbers.
const (
	NdnErrOK NdnError = iota
	NdnErrIncomplete
	NdnErrLengthOverflow
	NdnErrBadType
	NdnErrBadNni
	NdnErrBadFraming
	NdnErrFragmented
	NdnErrUnknownCriticalLpHeader
	NdnErrFragIndexExceedFragCount
	NdnErrLpHasTrailer
	NdnErrBadPitToken
	NdnErrReassemblyTimeout
)

var ndnErrorStrings = [...]string{
	NdnErrOK:                       "NdnErrOK",
	NdnErrIncomplete:               "NdnErrIncomplete",
	NdnErrLengthOverflow:           "NdnErrLengthOverflow",
	NdnErrBadType:                  "NdnErrBadType",
	NdnErrBadNni:                   "NdnErrBadNni",
	NdnErrBadFraming:               "NdnErrBadFraming",
	NdnErrFragmented:               "NdnErrFragmented",
	NdnErrUnknownCriticalLpHeader:  "NdnErrUnknownCriticalLpHeader",
	NdnErrFragIndexExceedFragCount: "NdnErrFragIndexExceedFragCount",
	NdnErrLpHasTrailer:             "NdnErrLpHasTrailer",
	NdnErrBadPitToken:              "NdnErrBadPitToken",
	NdnErrReassemblyTimeout:        "NdnErrReassemblyTimeout",
}

func (e NdnError) String() string {
	if e >= 0 && int(e) < len(ndnErrorStrings) {
		return ndnErrorStrings[e]
	}
	return "NdnError(" + strconv.Itoa(int(e)) + ")"
}

func (e NdnError) Error() string {
	return e.String()
}

// FramingError indicates the outer LpPacket element is missing or malformed.
// It matches NdnErrBadFraming and its Reason in errors.Is.
type FramingError struct {
	// Reason is NdnErrIncomplete or NdnErrBadType.
	Reason NdnError
}

func (e FramingError) Error() string {
	return "NdnErrBadFraming(" + e.Reason.String() + ")"
}

// Is reports whether target is NdnErrBadFraming.
func (e FramingError) Is(target error) bool {
	return target == NdnErrBadFraming
}

// Unwrap returns the Reason.
func (e FramingError) Unwrap() error {
	return e.Reason
}
