package nnduration_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/usnistgov/ndnlp/core/nnduration"
	"github.com/usnistgov/ndnlp/core/testenv"
)

var makeAR = testenv.MakeAR

func TestUnmarshal(t *testing.T) {
	assert, _ := makeAR(t)

	tests := []struct {
		input string
		bad   bool
		ms    time.Duration
		ns    time.Duration
	}{
		{input: `0`},
		{input: `5274`, ms: 5274 * time.Millisecond, ns: 5274},
		{input: `"5274"`, ms: 5274 * time.Millisecond, ns: 5274},
		{input: `"6s"`, ms: 6 * time.Second, ns: 6 * time.Second},
		{input: `"3us"`, ms: 0, ns: 3 * time.Microsecond},
		{input: `"1.5ms"`, ms: time.Millisecond, ns: 1500 * time.Microsecond},
		{input: `"-1s"`, bad: true},
		{input: `-1`, bad: true},
		{input: `"x"`, bad: true},
	}
	for _, tt := range tests {
		var ms nnduration.Milliseconds
		var ns nnduration.Nanoseconds
		eMs, eNs := json.Unmarshal([]byte(tt.input), &ms), json.Unmarshal([]byte(tt.input), &ns)
		if tt.bad {
			assert.Error(eMs, tt.input)
			assert.Error(eNs, tt.input)
			continue
		}
		if assert.NoError(eMs, tt.input) && assert.NoError(eNs, tt.input) {
			assert.Equal(tt.ms, ms.Duration(), tt.input)
			assert.Equal(tt.ns, ns.Duration(), tt.input)
		}
	}
}

func TestDurationOr(t *testing.T) {
	assert, _ := makeAR(t)

	var cfg struct {
		Lifetime nnduration.Milliseconds `json:"lifetime,omitempty"`
		Interval nnduration.Nanoseconds  `json:"interval,omitempty"`
	}
	testenv.FromJSON(`{"interval":"250us"}`, &cfg)
	assert.Equal(4*time.Second, cfg.Lifetime.DurationOr(4000))
	assert.Equal(250*time.Microsecond, cfg.Interval.DurationOr(1000000))
	assert.Equal(`{"interval":250000}`, testenv.ToJSON(cfg))

	cfg.Lifetime = 1000
	assert.Equal(time.Second, cfg.Lifetime.DurationOr(4000))
}
