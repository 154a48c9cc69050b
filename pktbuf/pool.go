package pktbuf

import (
	"sync"
	"sync/atomic"
)

// Defaults.
const (
	DefaultHeadroom = 128
	DefaultDataroom = 2048
)

// PoolConfig contains Pool configuration.
type PoolConfig struct {
	// Headroom is the initial headroom of each Packet.
	Headroom int `json:"headroom,omitempty"`

	// Dataroom is the capacity after headroom.
	Dataroom int `json:"dataroom,omitempty"`
}

func (cfg *PoolConfig) applyDefaults() {
	if cfg.Headroom <= 0 {
		cfg.Headroom = DefaultHeadroom
	}
	if cfg.Dataroom <= 0 {
		cfg.Dataroom = DefaultDataroom
	}
}

// Pool recycles single-segment Packets of identical size.
// It is safe for concurrent use.
type Pool struct {
	cfg   PoolConfig
	p     sync.Pool
	nUsed atomic.Int64
}

// NewPool creates a Pool.
func NewPool(cfg PoolConfig) *Pool {
	cfg.applyDefaults()
	pool := &Pool{cfg: cfg}
	pool.p.New = func() any {
		return &Packet{buf: make([]byte, cfg.Headroom+cfg.Dataroom)}
	}
	return pool
}

// Config returns Pool configuration with defaults applied.
func (pool *Pool) Config() PoolConfig {
	return pool.cfg
}

// CountInUse returns number of Packets that are allocated and not yet closed.
func (pool *Pool) CountInUse() int {
	return int(pool.nUsed.Load())
}

// Get allocates an empty Packet with configured headroom.
// It must be released with pkt.Close().
func (pool *Pool) Get() *Packet {
	pkt := pool.p.Get().(*Packet)
	pkt.off, pkt.len, pkt.next, pkt.pool = pool.cfg.Headroom, 0, nil, pool
	pool.nUsed.Add(1)
	return pkt
}

func (pool *Pool) put(pkt *Packet) {
	pkt.pool = nil
	pool.nUsed.Add(-1)
	pool.p.Put(pkt)
}
