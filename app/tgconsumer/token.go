package tgconsumer

import (
	"encoding/binary"
	"time"

	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/an"
)

// PIT token layout: runNum(8) | patternID(8) | timestamp(48).
const (
	tokenTimestampBits = 48
	tokenTimestampMask = 1<<tokenTimestampBits - 1
)

func makeToken(runNum, patternID uint8, timestamp time.Duration) uint64 {
	return uint64(runNum)<<56 | uint64(patternID)<<48 | uint64(timestamp)&tokenTimestampMask
}

func parseToken(token uint64) (runNum, patternID uint8, timestamp uint64) {
	return uint8(token >> 56), uint8(token >> 48), token & tokenTimestampMask
}

// rttFromToken computes elapsed time since the timestamp embedded in a token.
// The timestamp wraps around after 2^48 nanoseconds.
func rttFromToken(now time.Duration, timestamp uint64) time.Duration {
	return time.Duration((uint64(now) - timestamp) & tokenTimestampMask)
}

func makeSeqNumComponent(seqNum uint64) ndn.NameComponent {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, seqNum)
	return ndn.MakeNameComponent(an.TtGenericNameComponent, value)
}
