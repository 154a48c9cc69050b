// Package nnduration provides JSON-compatible non-negative duration types.
//
// A duration is encoded in JSON as a non-negative integer in its unit,
// or as a string parsed by time.ParseDuration such as "100ms".
package nnduration

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNegative indicates the duration is negative.
var ErrNegative = errors.New("duration cannot be negative")

func parse(input string, unit time.Duration) (uint64, error) {
	if d, e := time.ParseDuration(input); e == nil {
		if d < 0 {
			return 0, ErrNegative
		}
		return uint64(d / unit), nil
	}
	return strconv.ParseUint(input, 10, 64)
}

func parseJSON(p []byte, unit time.Duration) (uint64, error) {
	return parse(strings.Trim(string(p), `"`), unit)
}

// Milliseconds is a duration in milliseconds unit.
type Milliseconds uint64

// Duration converts to time.Duration.
func (d Milliseconds) Duration() time.Duration {
	return time.Duration(d) * time.Millisecond
}

// DurationOr converts to time.Duration, or returns dflt milliseconds if d is zero.
func (d Milliseconds) DurationOr(dflt Milliseconds) time.Duration {
	if d == 0 {
		return dflt.Duration()
	}
	return d.Duration()
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Milliseconds) UnmarshalJSON(p []byte) error {
	v, e := parseJSON(p, time.Millisecond)
	if e != nil {
		return e
	}
	*d = Milliseconds(v)
	return nil
}

// Nanoseconds is a duration in nanoseconds unit.
type Nanoseconds uint64

// Duration converts to time.Duration.
func (d Nanoseconds) Duration() time.Duration {
	return time.Duration(d)
}

// DurationOr converts to time.Duration, or returns dflt nanoseconds if d is zero.
func (d Nanoseconds) DurationOr(dflt Nanoseconds) time.Duration {
	if d == 0 {
		return dflt.Duration()
	}
	return d.Duration()
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Nanoseconds) UnmarshalJSON(p []byte) error {
	v, e := parseJSON(p, time.Nanosecond)
	if e != nil {
		return e
	}
	*d = Nanoseconds(v)
	return nil
}
