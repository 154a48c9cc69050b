package an

import (
	"strconv"
	"strings"
)

// NackReason indicates a Nack reason.
type NackReason uint8

// Known Nack reasons.
const (
	NackNone        NackReason = 0
	NackCongestion  NackReason = 50
	NackDuplicate   NackReason = 100
	NackNoRoute     NackReason = 150
	NackUnspecified NackReason = 255
)

var nackReasonStrings = map[NackReason]string{
	NackNone:        "none",
	NackCongestion:  "congestion",
	NackDuplicate:   "duplicate",
	NackNoRoute:     "noroute",
	NackUnspecified: "unspecified",
}

func (reason NackReason) String() string {
	if s, ok := nackReasonStrings[reason]; ok {
		return s
	}
	return strconv.Itoa(int(reason))
}

// ParseNackReason parses NackReason from its string form or decimal number.
func ParseNackReason(s string) (reason NackReason, ok bool) {
	s = strings.ToLower(s)
	for reason, str := range nackReasonStrings {
		if str == s {
			return reason, true
		}
	}
	n, e := strconv.ParseUint(s, 10, 8)
	return NackReason(n), e == nil
}
