// Package pktbuf provides packet buffers with reserved headroom and tailroom.
//
// A Packet is a chain of segments. Each segment is one contiguous arena with a movable
// data window, so that headers can be prepended and trailers appended without moving
// existing octets.
package pktbuf

import (
	"errors"
	"fmt"
	"io"
)

// Errors.
var (
	ErrHeadroom = errors.New("insufficient headroom")
	ErrTailroom = errors.New("insufficient tailroom")
	ErrNotEmpty = errors.New("packet is not empty")
)

// Packet represents a packet buffer, possibly segmented.
type Packet struct {
	buf  []byte
	off  int
	len  int
	next *Packet
	pool *Pool
}

// New allocates an unpooled single-segment Packet.
func New(headroom, dataroom int) *Packet {
	return &Packet{
		buf: make([]byte, headroom+dataroom),
		off: headroom,
	}
}

// FromBytes allocates a single-segment Packet that contains a copy of b,
// with given headroom and no tailroom.
func FromBytes(headroom int, b []byte) *Packet {
	pkt := New(headroom, len(b))
	copy(pkt.Append(len(b)), b)
	return pkt
}

func (pkt *Packet) last() *Packet {
	seg := pkt
	for seg.next != nil {
		seg = seg.next
	}
	return seg
}

// Len returns packet length in octets.
func (pkt *Packet) Len() (n int) {
	for seg := pkt; seg != nil; seg = seg.next {
		n += seg.len
	}
	return n
}

// IsSegmented returns true if the packet has more than one segment.
func (pkt *Packet) IsSegmented() bool {
	return pkt.next != nil
}

// SegmentLengths returns lengths of segments in this packet.
func (pkt *Packet) SegmentLengths() (list []int) {
	for seg := pkt; seg != nil; seg = seg.next {
		list = append(list, seg.len)
	}
	return list
}

// Segments returns data of each segment.
// The slices alias the packet buffer.
func (pkt *Packet) Segments() (list [][]byte) {
	for seg := pkt; seg != nil; seg = seg.next {
		list = append(list, seg.buf[seg.off:seg.off+seg.len])
	}
	return list
}

// Bytes returns packet data.
// It aliases the packet buffer if the packet has one segment, otherwise it is a copy.
func (pkt *Packet) Bytes() []byte {
	if !pkt.IsSegmented() {
		return pkt.buf[pkt.off : pkt.off+pkt.len]
	}
	b := make([]byte, 0, pkt.Len())
	for seg := pkt; seg != nil; seg = seg.next {
		b = append(b, seg.buf[seg.off:seg.off+seg.len]...)
	}
	return b
}

// Iterator returns a tlv.Cursor over packet data.
func (pkt *Packet) Iterator() *Iterator {
	return NewIterator(pkt.Segments()...)
}

// Headroom returns headroom of the first segment.
func (pkt *Packet) Headroom() int {
	return pkt.off
}

// SetHeadroom changes headroom of the first segment.
// It can only be used on an empty single-segment packet.
func (pkt *Packet) SetHeadroom(headroom int) error {
	if pkt.Len() > 0 {
		return ErrNotEmpty
	}
	if headroom < 0 || headroom > len(pkt.buf) {
		return fmt.Errorf("headroom %d out of range", headroom)
	}
	pkt.off = headroom
	return nil
}

// Tailroom returns tailroom of the last segment.
func (pkt *Packet) Tailroom() int {
	seg := pkt.last()
	return len(seg.buf) - seg.off - seg.len
}

// Prepend grows the packet by n octets at the front, in headroom of the first segment.
// Returns the writable room, or nil if headroom is insufficient.
func (pkt *Packet) Prepend(n int) []byte {
	if n < 0 || n > pkt.off {
		return nil
	}
	pkt.off -= n
	pkt.len += n
	return pkt.buf[pkt.off : pkt.off+n : pkt.off+n]
}

// Append grows the packet by n octets at the end, in tailroom of the last segment.
// Returns the writable room, or nil if tailroom is insufficient.
func (pkt *Packet) Append(n int) []byte {
	seg := pkt.last()
	if n < 0 || n > len(seg.buf)-seg.off-seg.len {
		return nil
	}
	start := seg.off + seg.len
	seg.len += n
	return seg.buf[start : start+n : start+n]
}

// PrependBytes prepends a copy of input.
func (pkt *Packet) PrependBytes(input []byte) error {
	room := pkt.Prepend(len(input))
	if room == nil {
		return fmt.Errorf("%w %d", ErrHeadroom, pkt.Headroom())
	}
	copy(room, input)
	return nil
}

// AppendBytes appends a copy of input.
func (pkt *Packet) AppendBytes(input []byte) error {
	room := pkt.Append(len(input))
	if room == nil {
		return fmt.Errorf("%w %d", ErrTailroom, pkt.Tailroom())
	}
	copy(room, input)
	return nil
}

// Chain appends tail as additional segments.
// tail is owned by pkt afterwards and released by pkt.Close().
func (pkt *Packet) Chain(tail *Packet) {
	pkt.last().next = tail
}

// ReadFrom reads once from the reader into the dataroom of this packet.
// It can only be used on an empty single-segment packet.
func (pkt *Packet) ReadFrom(r io.Reader) (n int64, e error) {
	if pkt.Len() > 0 || pkt.IsSegmented() {
		return 0, ErrNotEmpty
	}
	ni, e := r.Read(pkt.buf[pkt.off:])
	if ni > 0 {
		pkt.len = ni
	}
	return int64(ni), e
}

// Close releases every segment to its pool.
func (pkt *Packet) Close() error {
	for seg := pkt; seg != nil; {
		next := seg.next
		seg.next = nil
		if seg.pool != nil {
			seg.pool.put(seg)
		}
		seg = next
	}
	return nil
}
