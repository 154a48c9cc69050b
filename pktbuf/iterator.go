package pktbuf

import (
	"github.com/usnistgov/ndnlp/ndn/tlv"
)

// Iterator is a tlv.Cursor over a sequence of memory segments.
type Iterator struct {
	segs [][]byte
	off  int // offset within segs[0]
	rem  int
}

var _ tlv.Cursor = (*Iterator)(nil)

// NewIterator creates an Iterator over segments.
// Segments are not copied and must not be modified while the Iterator is in use.
func NewIterator(segs ...[]byte) *Iterator {
	it := &Iterator{segs: segs}
	for _, seg := range segs {
		it.rem += len(seg)
	}
	return it
}

// Len implements tlv.Cursor interface.
func (it *Iterator) Len() int {
	return it.rem
}

// PeekByte implements tlv.Cursor interface.
func (it *Iterator) PeekByte() (byte, bool) {
	if it.rem == 0 {
		return 0, false
	}
	off := it.off
	for _, seg := range it.segs {
		if off < len(seg) {
			return seg[off], true
		}
		off = 0
	}
	return 0, false
}

// ReadTo implements tlv.Cursor interface.
func (it *Iterator) ReadTo(p []byte) bool {
	if len(p) > it.rem {
		return false
	}
	it.consume(len(p), p)
	return true
}

// Advance implements tlv.Cursor interface.
func (it *Iterator) Advance(n int) bool {
	if n < 0 || n > it.rem {
		return false
	}
	it.consume(n, nil)
	return true
}

// Slice implements tlv.Cursor interface.
func (it *Iterator) Slice(n int) (tlv.Cursor, bool) {
	if n < 0 || n > it.rem {
		return nil, false
	}
	sub := &Iterator{segs: it.segs, off: it.off, rem: n}
	it.consume(n, nil)
	return sub, true
}

// consume advances by n octets, copying them into p if p is not nil.
func (it *Iterator) consume(n int, p []byte) {
	it.rem -= n
	for n > 0 || (len(it.segs) > 0 && it.off == len(it.segs[0])) {
		if it.off == len(it.segs[0]) {
			it.segs, it.off = it.segs[1:], 0
			continue
		}
		seg := it.segs[0][it.off:]
		if len(seg) > n {
			seg = seg[:n]
		}
		if p != nil {
			p = p[copy(p, seg):]
		}
		it.off += len(seg)
		n -= len(seg)
	}
}
