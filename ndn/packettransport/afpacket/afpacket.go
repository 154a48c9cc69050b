// Package afpacket provides a packettransport.PacketDataHandle over Linux AF_PACKET sockets.
package afpacket

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/gopacket"
	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/core/macaddr"
	"github.com/usnistgov/ndnlp/ndn/packettransport"
	"github.com/vishvananda/netlink"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

var logger = logging.New("afpacket")

// pollInterval is the receive timeout, after which Read checks whether the handle is closed.
const pollInterval = 100 * time.Millisecond

// Handle is an AF_PACKET socket bound to a network interface.
type Handle struct {
	fd     int
	link   netlink.Link
	buf    []byte
	closed atomic.Bool
	logger *zap.Logger
}

var _ packettransport.PacketDataHandle = (*Handle)(nil)

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}

// NewHandle opens an AF_PACKET socket on the named network interface.
// If group is a multicast address, the socket joins that multicast group.
func NewHandle(ifname string, group net.HardwareAddr) (h *Handle, e error) {
	link, e := netlink.LinkByName(ifname)
	if e != nil {
		return nil, fmt.Errorf("netlink.LinkByName(%s): %w", ifname, e)
	}
	attrs := link.Attrs()
	if attrs.Flags&net.FlagUp == 0 {
		return nil, fmt.Errorf("interface %s is not UP", ifname)
	}

	proto := int(htons(unix.ETH_P_ALL))
	fd, e := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, proto)
	if e != nil {
		return nil, fmt.Errorf("socket(AF_PACKET): %w", e)
	}
	h = &Handle{
		fd:   fd,
		link: link,
		buf:  make([]byte, attrs.MTU+64),
		logger: logger.With(
			zap.Int("ifindex", attrs.Index),
			zap.String("ifname", attrs.Name),
		),
	}

	if e = h.setup(attrs.Index, group); e != nil {
		unix.Close(fd)
		return nil, e
	}
	h.logger.Info("AF_PACKET socket opened", zap.Stringer("group", group))
	return h, nil
}

func (h *Handle) setup(ifindex int, group net.HardwareAddr) error {
	if e := unix.Bind(h.fd, &unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  ifindex,
	}); e != nil {
		return fmt.Errorf("bind(AF_PACKET): %w", e)
	}

	tv := unix.NsecToTimeval(pollInterval.Nanoseconds())
	if e := unix.SetsockoptTimeval(h.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); e != nil {
		return fmt.Errorf("setsockopt(SO_RCVTIMEO): %w", e)
	}

	if macaddr.IsMulticast(group) {
		mreq := unix.PacketMreq{
			Ifindex: int32(ifindex),
			Type:    unix.PACKET_MR_MULTICAST,
			Alen:    uint16(len(group)),
		}
		copy(mreq.Address[:], group)
		if e := unix.SetsockoptPacketMreq(h.fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq); e != nil {
			return fmt.Errorf("setsockopt(PACKET_ADD_MEMBERSHIP): %w", e)
		}
	}
	return nil
}

// HardwareAddr returns the MAC address of the network interface.
func (h *Handle) HardwareAddr() net.HardwareAddr {
	return h.link.Attrs().HardwareAddr
}

// MTU returns the MTU of the network interface.
func (h *Handle) MTU() int {
	return h.link.Attrs().MTU
}

// ZeroCopyReadPacketData implements gopacket.ZeroCopyPacketDataSource interface.
// The returned slice is valid until the next invocation.
func (h *Handle) ZeroCopyReadPacketData() (data []byte, ci gopacket.CaptureInfo, e error) {
	for {
		if h.closed.Load() {
			return nil, ci, io.EOF
		}
		n, _, e := unix.Recvfrom(h.fd, h.buf, unix.MSG_TRUNC)
		switch {
		case errors.Is(e, unix.EAGAIN), errors.Is(e, unix.EINTR):
			continue
		case e != nil:
			return nil, ci, e
		}

		ci.Timestamp = time.Now()
		ci.Length = n
		ci.CaptureLength = n
		if n > len(h.buf) {
			ci.CaptureLength = len(h.buf)
		}
		ci.InterfaceIndex = h.link.Attrs().Index
		return h.buf[:ci.CaptureLength], ci, nil
	}
}

// WritePacketData transmits an Ethernet frame.
func (h *Handle) WritePacketData(pkt []byte) error {
	_, e := unix.Write(h.fd, pkt)
	return e
}

// Close closes the socket.
func (h *Handle) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	return unix.Close(h.fd)
}

// NewTransport opens an AF_PACKET socket and creates an Ethernet transport on it.
// cfg.Local defaults to the MAC address of the network interface.
// cfg.MTU defaults to the MTU of the network interface.
func NewTransport(ifname string, cfg packettransport.Config) (packettransport.Transport, error) {
	group := cfg.Remote.HardwareAddr
	if cfg.Remote.Empty() {
		group = macaddr.NdnMulticast
	}

	h, e := NewHandle(ifname, group)
	if e != nil {
		return nil, e
	}
	if cfg.Local.Empty() {
		cfg.Local.HardwareAddr = h.HardwareAddr()
	}
	if cfg.MTU <= 0 {
		cfg.MTU = h.MTU()
	}

	tr, e := packettransport.New(h, cfg)
	if e != nil {
		h.Close()
		return nil, e
	}
	return tr, nil
}
