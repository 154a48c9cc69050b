// Package ringbuffer provides a bounded FIFO queue with burst operations.
package ringbuffer

import (
	"sync"

	binutils "github.com/jfoster/binary-utilities"
	"github.com/pkg/math"
)

// Limits and defaults.
const (
	MinCapacity     = 4
	MaxCapacity     = 1 << 24
	DefaultCapacity = 256
)

// AlignCapacity adjusts Ring capacity to a power of two between minimum and maximum.
// Optional arguments: minimum capacity, default capacity, maximum capacity.
// Default capacity is used if input is zero.
func AlignCapacity(capacity int, opts ...int) int {
	min, dflt, max := MinCapacity, DefaultCapacity, MaxCapacity
	switch len(opts) {
	case 0:
	case 1:
		min, dflt = opts[0], opts[0]
	case 2:
		min, dflt = opts[0], opts[1]
	case 3:
		min, dflt, max = opts[0], opts[1], opts[2]
	default:
		panic("unexpected opts count")
	}
	if dflt < min || dflt > max || !isPowerOfTwo(min) || !isPowerOfTwo(dflt) || !isPowerOfTwo(max) {
		panic("invalid min, dflt, max")
	}

	if capacity <= 0 {
		capacity = dflt
	} else {
		capacity = int(binutils.NextPowerOfTwo(int64(capacity)))
	}
	return math.MinInt(math.MaxInt(min, capacity), max)
}

func isPowerOfTwo(n int) bool {
	return binutils.NextPowerOfTwo(int64(n)) == int64(n)
}

// Ring is a bounded FIFO queue of arbitrary objects.
// It is safe for concurrent use by multiple producers and consumers.
type Ring struct {
	mutex sync.Mutex
	slots []any
	mask  int
	head  int // next dequeue position
	count int
}

// New creates a Ring.
// capacity is adjusted with AlignCapacity.
func New(capacity int) *Ring {
	capacity = AlignCapacity(capacity)
	return &Ring{
		slots: make([]any, capacity),
		mask:  capacity - 1,
	}
}

// Capacity returns ring capacity.
func (r *Ring) Capacity() int {
	return len(r.slots)
}

// CountInUse returns used space.
func (r *Ring) CountInUse() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.count
}

// CountAvailable returns free space.
func (r *Ring) CountAvailable() int {
	return r.Capacity() - r.CountInUse()
}

// Enqueue enqueues several objects, as many as there is free space.
func (r *Ring) Enqueue(objs []any) (nEnqueued int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	nEnqueued = math.MinInt(len(objs), len(r.slots)-r.count)
	for i := 0; i < nEnqueued; i++ {
		r.slots[(r.head+r.count+i)&r.mask] = objs[i]
	}
	r.count += nEnqueued
	return nEnqueued
}

// Dequeue dequeues several objects, up to len(objs).
func (r *Ring) Dequeue(objs []any) (nDequeued int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	nDequeued = math.MinInt(len(objs), r.count)
	for i := 0; i < nDequeued; i++ {
		pos := (r.head + i) & r.mask
		objs[i], r.slots[pos] = r.slots[pos], nil
	}
	r.head = (r.head + nDequeued) & r.mask
	r.count -= nDequeued
	return nDequeued
}
