package l3

import (
	"io"
	"strconv"
	"sync"

	"github.com/usnistgov/ndnlp/core/events"
)

// TransportState indicates up/down state of a transport.
type TransportState int

// TransportState values.
const (
	TransportUp TransportState = iota
	TransportDown
	TransportClosed
)

var transportStateStrings = map[TransportState]string{
	TransportUp:     "up",
	TransportDown:   "down",
	TransportClosed: "closed",
}

func (st TransportState) String() string {
	if s, ok := transportStateStrings[st]; ok {
		return s
	}
	return strconv.Itoa(int(st))
}

// Transport represents a communicate channel to send and receive TLV packets.
//
// Read receives one frame, which should start with a TLV element, into the buffer.
// Write sends one frame.
// Close closes the transport; subsequent Read returns io.EOF.
type Transport interface {
	io.ReadWriteCloser

	// MTU returns maximum size of outgoing frames.
	// Zero means unlimited.
	MTU() int

	// State returns current state.
	State() TransportState

	// OnStateChange registers a callback to be invoked when transport state changes.
	OnStateChange(cb func(st TransportState)) (cancel func())
}

// TransportQueueConfig defaults.
const (
	DefaultTransportRxQueueSize = 64
	DefaultTransportTxQueueSize = 64
)

// TransportQueueConfig contains Go channel buffer sizes of a Face.
type TransportQueueConfig struct {
	// RxQueueSize is the Go channel buffer size of RX channel.
	// The default is DefaultTransportRxQueueSize.
	RxQueueSize int `json:"rxQueueSize,omitempty"`

	// TxQueueSize is the Go channel buffer size of TX channel.
	// The default is DefaultTransportTxQueueSize.
	TxQueueSize int `json:"txQueueSize,omitempty"`
}

// ApplyTransportQueueConfigDefaults sets empty values to defaults.
func (cfg *TransportQueueConfig) ApplyTransportQueueConfigDefaults() {
	if cfg.RxQueueSize <= 0 {
		cfg.RxQueueSize = DefaultTransportRxQueueSize
	}
	if cfg.TxQueueSize <= 0 {
		cfg.TxQueueSize = DefaultTransportTxQueueSize
	}
}

// TransportBaseConfig contains parameters to NewTransportBase.
type TransportBaseConfig struct {
	MTU          int
	InitialState TransportState
}

// TransportBase is an optional helper for implementing Transport.
// It provides MTU, State, and OnStateChange methods.
type TransportBase struct {
	mtu     int
	mutex   sync.Mutex
	state   TransportState
	emitter *events.Emitter
}

// TransportBasePriv is an optional helper for implementing Transport.
// It allows the transport implementation to change state.
type TransportBasePriv struct {
	b *TransportBase
}

type eventStateChange struct{}

// NewTransportBase creates helpers for implementing Transport.
func NewTransportBase(cfg TransportBaseConfig) (b *TransportBase, p *TransportBasePriv) {
	b = &TransportBase{
		mtu:     cfg.MTU,
		state:   cfg.InitialState,
		emitter: events.NewEmitter(),
	}
	return b, &TransportBasePriv{b}
}

// MTU implements Transport interface.
func (b *TransportBase) MTU() int {
	return b.mtu
}

// State implements Transport interface.
func (b *TransportBase) State() TransportState {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.state
}

// OnStateChange implements Transport interface.
func (b *TransportBase) OnStateChange(cb func(st TransportState)) (cancel func()) {
	return b.emitter.On(eventStateChange{}, cb)
}

// SetState changes transport state and invokes callbacks if it differs from current state.
// Closed state is final.
func (p *TransportBasePriv) SetState(st TransportState) {
	b := p.b
	b.mutex.Lock()
	if b.state == st || b.state == TransportClosed {
		b.mutex.Unlock()
		return
	}
	b.state = st
	b.mutex.Unlock()
	b.emitter.Emit(eventStateChange{}, st)
}
