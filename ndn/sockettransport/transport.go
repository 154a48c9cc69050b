// Package sockettransport implements a transport based on stream or datagram sockets.
package sockettransport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/math"
	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/core/nnduration"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"go.uber.org/zap"
)

var logger = logging.New("sockettransport")

// Config contains socket transport configuration.
type Config struct {
	// MTU is maximum outgoing frame size.
	// The default is 0, which disables fragmentation.
	MTU int `json:"mtu,omitempty"`

	// RxBufferLength is the buffer length for incoming frames.
	// On a stream socket, a TLV element longer than this length is dropped.
	RxBufferLength int `json:"rxBufferLength,omitempty"`

	// RedialBackoffInitial is the initial wait period between redial attempts.
	RedialBackoffInitial nnduration.Milliseconds `json:"redialBackoffInitial,omitempty"`

	// RedialBackoffMaximum is the wait period limit between redial attempts.
	// It is raised to RedialBackoffInitial if smaller.
	RedialBackoffMaximum nnduration.Milliseconds `json:"redialBackoffMaximum,omitempty"`
}

// Defaults.
const (
	DefaultRxBufferLength       = 16384
	DefaultRedialBackoffInitial = 100
	DefaultRedialBackoffMaximum = 60000
)

func (cfg *Config) applyDefaults() {
	cfg.MTU = math.MaxInt(cfg.MTU, 0)
	if cfg.RxBufferLength <= 0 {
		cfg.RxBufferLength = DefaultRxBufferLength
	}
	if cfg.RedialBackoffInitial == 0 {
		cfg.RedialBackoffInitial = DefaultRedialBackoffInitial
	}
	if cfg.RedialBackoffMaximum == 0 {
		cfg.RedialBackoffMaximum = DefaultRedialBackoffMaximum
	}
	cfg.RedialBackoffMaximum = nnduration.Milliseconds(math.MaxInt64(int64(cfg.RedialBackoffMaximum), int64(cfg.RedialBackoffInitial)))
}

// Counters contains socket transport counters.
type Counters struct {
	// NRedials indicates how many times the socket has been redialed.
	NRedials uint64 `json:"nRedials"`
}

// newBackoff creates a redial backoff policy that doubles the wait period up to the maximum, without jitter,
// and never gives up.
func (cfg Config) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.RedialBackoffInitial.Duration()
	b.MaxInterval = cfg.RedialBackoffMaximum.Duration()
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (cnt Counters) String() string {
	return fmt.Sprintf("%dredials", cnt.NRedials)
}

// Transport is an l3.Transport that communicates over a socket.
//
// A transport has automatic error handling: if a socket error occurs, the transport automatically
// redials the socket. In case the socket cannot be redialed, the transport remains in "down" status.
type Transport interface {
	l3.Transport

	// Conn returns the underlying socket.
	// Caller may gather information from this socket, but should not close or send/receive on it.
	// The socket may be replaced during redialing.
	Conn() net.Conn

	// Counters returns current counters.
	Counters() Counters
}

type transport struct {
	*l3.TransportBase
	p *l3.TransportBasePriv

	cfg    Config
	kind   *netKind
	conn   atomic.Value // net.Conn
	logger *zap.Logger

	rxBuf   []byte
	rxAvail int
	rxSkip  int

	closing  atomic.Bool
	closer   sync.Once
	nRedials atomic.Uint64
}

// New creates a socket transport.
func New(conn net.Conn, cfg Config) (Transport, error) {
	network := conn.LocalAddr().Network()
	kind, e := findNetwork(network)
	if e != nil {
		return nil, e
	}
	cfg.applyDefaults()

	tr := &transport{
		cfg:    cfg,
		kind:   kind,
		logger: logger.With(zap.String("network", network), zap.Stringer("remote", conn.RemoteAddr())),
		rxBuf:  make([]byte, cfg.RxBufferLength),
	}
	tr.TransportBase, tr.p = l3.NewTransportBase(l3.TransportBaseConfig{
		MTU:          cfg.MTU,
		InitialState: l3.TransportUp,
	})
	tr.conn.Store(conn)
	return tr, nil
}

func (tr *transport) Conn() net.Conn {
	return tr.conn.Load().(net.Conn)
}

func (tr *transport) Counters() Counters {
	return Counters{
		NRedials: tr.nRedials.Load(),
	}
}

func (tr *transport) Read(buf []byte) (n int, e error) {
	for !tr.closing.Load() {
		if tr.kind.stream {
			n, e = tr.readStream(buf)
		} else {
			n, e = tr.Conn().Read(buf)
		}
		if e == nil {
			return n, nil
		}
		if tr.closing.Load() {
			break
		}
		if !tr.redial(e) {
			break
		}
	}
	return 0, io.EOF
}

func (tr *transport) Write(frame []byte) (n int, e error) {
	if tr.closing.Load() {
		return 0, net.ErrClosed
	}
	return tr.Conn().Write(frame)
}

func (tr *transport) Close() error {
	var e error
	tr.closer.Do(func() {
		tr.closing.Store(true)
		e = tr.Conn().Close()
		tr.p.SetState(l3.TransportClosed)
	})
	return e
}

// redial replaces the socket after an error.
// Returns false if the transport should be closed.
func (tr *transport) redial(cause error) bool {
	tr.logger.Debug("socket error", zap.Error(cause))
	tr.p.SetState(l3.TransportDown)

	policy := tr.cfg.newBackoff()
	for !tr.closing.Load() {
		conn, e := tr.kind.redial(tr.Conn())
		tr.nRedials.Add(1)
		switch {
		case errors.Is(e, errNoRedial):
			tr.Close()
			return false
		case e == nil:
			tr.conn.Store(conn)
			tr.rxAvail, tr.rxSkip = 0, 0
			tr.p.SetState(l3.TransportUp)
			return true
		}

		wait := policy.NextBackOff()
		tr.logger.Debug("redial error", zap.Error(e), zap.Duration("backoff", wait))
		time.Sleep(wait)
	}
	return false
}
