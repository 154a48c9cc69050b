package sockettransport

import (
	"errors"

	"github.com/pkg/math"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"go.uber.org/zap"
)

var errStreamOverflow = errors.New("TLV header exceeds RX buffer")

// maxSkipLength is the largest TLV-LENGTH of an element that can be skipped over.
const maxSkipLength = 1<<31 - 1

// readStream extracts one TLV element from the byte stream.
// Octets after the element are kept in rxBuf for the next call; they are discarded upon redial.
// An element longer than frame or rxBuf is dropped.
func (tr *transport) readStream(frame []byte) (n int, e error) {
	for {
		if tr.rxSkip > 0 {
			d := math.MinInt(tr.rxSkip, tr.rxAvail)
			tr.rxSkip -= d
			tr.rxAvail = copy(tr.rxBuf, tr.rxBuf[d:tr.rxAvail])
		}

		if tr.rxSkip == 0 {
			element, rest, e := tlv.DecodeFirst(tr.rxBuf[:tr.rxAvail])
			switch {
			case e == nil:
				wireL := tr.rxAvail - len(rest)
				n = copy(frame, tr.rxBuf[:wireL])
				tr.rxAvail = copy(tr.rxBuf, rest)
				if n == wireL {
					return n, nil
				}
				tr.logger.Debug("dropping element longer than frame", zap.Uint32("type", element.Type), zap.Int("size", wireL))
				continue
			case !errors.Is(e, tlv.ErrIncomplete):
				return 0, e
			case tr.rxAvail == len(tr.rxBuf):
				if e := tr.skipElement(); e != nil {
					return 0, e
				}
				continue
			}
		}

		nRead, e := tr.Conn().Read(tr.rxBuf[tr.rxAvail:])
		if e != nil {
			return 0, e
		}
		tr.rxAvail += nRead
	}
}

// skipElement starts discarding the element at the front of a full rxBuf.
func (tr *transport) skipElement() error {
	var typ, length tlv.VarNum
	rest, e := typ.Decode(tr.rxBuf[:tr.rxAvail])
	if e == nil {
		rest, e = length.Decode(rest)
	}
	if e != nil || length > maxSkipLength {
		return errStreamOverflow
	}

	size := tr.rxAvail - len(rest) + int(length)
	tr.logger.Debug("dropping element longer than RX buffer", zap.Uint64("type", uint64(typ)), zap.Int("size", size))
	tr.rxSkip, tr.rxAvail = size-tr.rxAvail, 0
	return nil
}
