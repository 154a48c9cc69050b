package sockettransport

import (
	"errors"
	"fmt"
	"net"

	"github.com/gogf/greuse"
	"go.uber.org/zap"
)

var (
	// ErrUnknownNetwork indicates the socket network is not supported.
	ErrUnknownNetwork = errors.New("unknown network")

	errNoRedial = errors.New("socket cannot be redialed")
)

// netKind describes how sockets of a family of networks are dialed and redialed.
type netKind struct {
	// stream indicates a byte stream that carries TLV elements back to back.
	stream bool

	dial func(network, local, remote string) (net.Conn, error)

	// redial replaces a failed socket.
	// Returning errNoRedial causes the transport to close.
	redial func(old net.Conn) (net.Conn, error)
}

var netKinds = map[string]*netKind{}

func registerNetwork(kind *netKind, networks ...string) {
	for _, network := range networks {
		netKinds[network] = kind
	}
}

func findNetwork(network string) (*netKind, error) {
	if kind := netKinds[network]; kind != nil {
		return kind, nil
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownNetwork, network)
}

// dialReuse binds the local address with SO_REUSEADDR and SO_REUSEPORT, if specified.
func dialReuse(network, local, remote string) (net.Conn, error) {
	if local == "" {
		return net.Dial(network, remote)
	}
	return greuse.Dial(network, local, remote)
}

func dialRemoteOnly(network, local, remote string) (net.Conn, error) {
	return net.Dial(network, remote)
}

func init() {
	registerNetwork(&netKind{
		dial: func(network, local, remote string) (net.Conn, error) {
			return nil, fmt.Errorf("cannot dial %s", network)
		},
		redial: func(net.Conn) (net.Conn, error) {
			return nil, errNoRedial
		},
	}, "pipe")

	registerNetwork(&netKind{
		dial: dialReuse,
		redial: func(old net.Conn) (net.Conn, error) {
			return old, nil
		},
	}, "udp", "udp4", "udp6")

	registerNetwork(&netKind{
		stream: true,
		dial:   dialReuse,
		redial: func(old net.Conn) (net.Conn, error) {
			local, remote := old.LocalAddr(), old.RemoteAddr()
			old.Close()
			return greuse.Dial(remote.Network(), local.String(), remote.String())
		},
	}, "tcp", "tcp4", "tcp6")

	registerNetwork(&netKind{
		stream: true,
		dial:   dialRemoteOnly,
		redial: func(old net.Conn) (net.Conn, error) {
			remote := old.RemoteAddr()
			old.Close()
			return net.Dial(remote.Network(), remote.String())
		},
	}, "unix")
}

// Dialer contains settings for Dial.
type Dialer struct {
	Config
}

// Dial opens a socket transport.
// local may be empty to let the operating system choose a local address.
func (dialer Dialer) Dial(network, local, remote string) (Transport, error) {
	kind, e := findNetwork(network)
	if e != nil {
		return nil, e
	}

	conn, e := kind.dial(network, local, remote)
	if e != nil {
		logger.Debug("dial error", zap.String("network", network), zap.String("local", local),
			zap.String("remote", remote), zap.Error(e))
		return nil, e
	}
	return New(conn, dialer.Config)
}

// Dial opens a socket transport with default configuration.
func Dial(network, local, remote string) (Transport, error) {
	return Dialer{}.Dial(network, local, remote)
}
