package tgconsumer

import (
	"errors"
	"fmt"
	"time"

	"github.com/pkg/math"
	"github.com/usnistgov/ndnlp/core/nnduration"
	"github.com/usnistgov/ndnlp/core/ringbuffer"
	"github.com/usnistgov/ndnlp/ndn"
)

const (
	// MaxPatterns is maximum number of traffic patterns.
	MaxPatterns = 128

	// MaxSumWeight is maximum sum of weights among traffic patterns.
	MaxSumWeight = 8192

	defaultInterval = 1 * time.Millisecond
)

// Error conditions.
var (
	ErrNoPattern         = errors.New("no pattern specified")
	ErrTooManyPatterns   = fmt.Errorf("cannot add more than %d patterns", MaxPatterns)
	ErrFirstSeqNumOffset = errors.New("first pattern cannot have SeqNumOffset")
	ErrTooManyWeights    = fmt.Errorf("sum of weight cannot exceed %d", MaxSumWeight)
)

// Pattern configures how the consumer generates a sequence of Interests.
type Pattern struct {
	Weight int `json:"weight,omitempty"` // weight of random choice, minimum/default is 1

	Prefix           ndn.Name                `json:"prefix"`
	CanBePrefix      bool                    `json:"canBePrefix,omitempty"`
	MustBeFresh      bool                    `json:"mustBeFresh,omitempty"`
	InterestLifetime nnduration.Milliseconds `json:"interestLifetime,omitempty"`
	HopLimit         uint8                   `json:"hopLimit,omitempty"`

	// If non-zero, request previously requested Data. This must appear after a pattern without SeqNumOffset.
	// The client derives sequence number by subtracting SeqNumOffset from the previous pattern's
	// sequence number.
	SeqNumOffset int `json:"seqNumOffset,omitempty"`
}

func (pattern *Pattern) applyDefaults() {
	pattern.Weight = math.MaxInt(1, pattern.Weight)
}

func (pattern Pattern) makeInterest(seqNum uint64) ndn.Interest {
	return ndn.Interest{
		Name:        pattern.Prefix.Append(makeSeqNumComponent(seqNum)),
		CanBePrefix: pattern.CanBePrefix,
		MustBeFresh: pattern.MustBeFresh,
		Lifetime:    pattern.InterestLifetime.Duration(),
		HopLimit:    pattern.HopLimit,
	}
}

// RxQueueCapacity limits; the minimum is also the default.
const (
	MinRxQueueCapacity = 64
	MaxRxQueueCapacity = 4096
)

// Config describes consumer configuration.
type Config struct {
	// RxQueueCapacity is the capacity of the queue between face RX and consumer RX.
	RxQueueCapacity int `json:"rxQueueCapacity,omitempty"`

	// Interval is the average interval between two Interests.
	Interval nnduration.Nanoseconds `json:"interval"`

	// Patterns are traffic patterns.
	Patterns []Pattern `json:"patterns"`

	nWeights int
}

// Validate checks Config and assigns defaults.
func (cfg *Config) Validate() error {
	cfg.RxQueueCapacity = ringbuffer.AlignCapacity(cfg.RxQueueCapacity, MinRxQueueCapacity, MinRxQueueCapacity, MaxRxQueueCapacity)

	if len(cfg.Patterns) == 0 {
		return ErrNoPattern
	}
	if len(cfg.Patterns) > MaxPatterns {
		return ErrTooManyPatterns
	}
	if cfg.Patterns[0].SeqNumOffset != 0 {
		return ErrFirstSeqNumOffset
	}

	cfg.nWeights = 0
	for i := range cfg.Patterns {
		pattern := &cfg.Patterns[i]
		pattern.applyDefaults()
		cfg.nWeights += pattern.Weight
	}
	if cfg.nWeights > MaxSumWeight {
		return ErrTooManyWeights
	}
	return nil
}
