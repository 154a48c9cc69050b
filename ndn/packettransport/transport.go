// Package packettransport implements a transport based on GoPacket library.
// It may be used to create Ethernet faces based on AF_PACKET sockets.
package packettransport

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/usnistgov/ndnlp/bpf/xdp"
	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/core/macaddr"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndn/ndnlayer"
	"go.uber.org/zap"
)

var logger = logging.New("packettransport")

// Errors.
var (
	ErrEmptyFrame = errors.New("empty frame")
	ErrFrameSize  = errors.New("frame exceeds MTU")
)

// DefaultMTU is the default MTU, excluding Ethernet and VLAN headers.
const DefaultMTU = 1500

// PacketDataHandle represents a network interface to send and receive Ethernet frames.
type PacketDataHandle interface {
	gopacket.ZeroCopyPacketDataSource
	WritePacketData(pkt []byte) error
}

// Config contains Transport configuration.
type Config struct {
	Locator
	MTU int `json:"mtu,omitempty"`
}

func (cfg *Config) applyDefaults() {
	if cfg.Remote.Empty() {
		cfg.Remote.HardwareAddr = macaddr.NdnMulticast
	}
	if cfg.MTU <= 0 {
		cfg.MTU = DefaultMTU
	}
}

// Counters contains Transport counters.
type Counters struct {
	RxFrames   uint64 `json:"rxFrames"`   // frames received from handle
	RxFiltered uint64 `json:"rxFiltered"` // frames dropped by prefilter
	RxMismatch uint64 `json:"rxMismatch"` // frames with address or VLAN mismatch
	TxFrames   uint64 `json:"txFrames"`
	TxErrors   uint64 `json:"txErrors"` // frames rejected by handle or serializer
}

// Transport is an l3.Transport that communicates over Ethernet via PacketDataHandle.
type Transport interface {
	l3.Transport

	// Handle returns the underlying PacketDataHandle.
	Handle() PacketDataHandle

	// Locator returns the locator.
	Locator() Locator

	// Counters returns current counters.
	Counters() Counters
}

// New creates a Transport.
//
// The transport receives and transmits Ethernet frames via the provided PacketDataHandle.
// If hdl has either `Close() error` or `Close()` method, it is invoked when transport is being closed.
func New(hdl PacketDataHandle, cfg Config) (Transport, error) {
	cfg.applyDefaults()
	if e := cfg.Locator.Validate(); e != nil {
		return nil, e
	}

	tr := &transport{
		hdl: hdl,
		loc: cfg.Locator,
	}
	tr.TransportBase, tr.p = l3.NewTransportBase(l3.TransportBaseConfig{
		MTU:          cfg.MTU,
		InitialState: l3.TransportUp,
	})

	tr.rx.Prepare(tr.loc)
	tr.tx.Prepare(tr.loc)
	logger.Info("transport created", zap.Stringer("locator", tr.loc), zap.Int("mtu", cfg.MTU))
	return tr, nil
}

type transport struct {
	*l3.TransportBase
	p      *l3.TransportBasePriv
	hdl    PacketDataHandle
	loc    Locator
	rx     transportRx
	tx     transportTx
	closer sync.Once
}

func (tr *transport) Handle() PacketDataHandle {
	return tr.hdl
}

func (tr *transport) Locator() Locator {
	return tr.loc
}

func (tr *transport) Counters() Counters {
	return Counters{
		RxFrames:   tr.rx.nFrames.Load(),
		RxFiltered: tr.rx.nFiltered.Load(),
		RxMismatch: tr.rx.nMismatch.Load(),
		TxFrames:   tr.tx.nFrames.Load(),
		TxErrors:   tr.tx.nErrors.Load(),
	}
}

func (tr *transport) Read(buf []byte) (n int, e error) {
	if tr.State() == l3.TransportClosed {
		return 0, io.EOF
	}
	return tr.rx.Read(tr.hdl, buf)
}

func (tr *transport) Write(buf []byte) (n int, e error) {
	switch {
	case len(buf) == 0:
		return 0, ErrEmptyFrame
	case len(buf) > tr.MTU():
		return 0, ErrFrameSize
	}
	return tr.tx.Write(tr.hdl, buf)
}

func (tr *transport) Close() (e error) {
	tr.closer.Do(func() {
		tr.p.SetState(l3.TransportClosed)
		e = closeHandle(tr.hdl)
	})
	return e
}

// closeHandle invokes `Close() error` or `Close()` method on hdl, if present.
func closeHandle(hdl PacketDataHandle) error {
	switch c := hdl.(type) {
	case io.Closer:
		return c.Close()
	case interface{ Close() }:
		c.Close()
	}
	return nil
}

type transportRx struct {
	parser  *gopacket.DecodingLayerParser
	decoded []gopacket.LayerType
	eth     layers.Ethernet
	dot1q   layers.Dot1Q
	tlv     ndnlayer.TLV

	matchLL func(src, dst net.HardwareAddr) bool
	vlan    int

	nFrames, nFiltered, nMismatch atomic.Uint64
}

func (rx *transportRx) Prepare(loc Locator) {
	remote, local := loc.Remote.HardwareAddr, loc.Local.HardwareAddr
	if macaddr.IsMulticast(remote) {
		rx.matchLL = func(src, dst net.HardwareAddr) bool {
			return macaddr.Equal(remote, dst)
		}
	} else {
		rx.matchLL = func(src, dst net.HardwareAddr) bool {
			return macaddr.Equal(remote, src) && macaddr.Equal(local, dst)
		}
	}
	rx.vlan = loc.VLAN

	rx.parser = gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet, &rx.eth, &rx.dot1q, &rx.tlv)
	rx.parser.IgnoreUnsupported = true
}

func (rx *transportRx) Read(hdl PacketDataHandle, buf []byte) (n int, e error) {
	for {
		packetData, _, e := hdl.ZeroCopyReadPacketData()
		if e != nil {
			return 0, e
		}
		rx.nFrames.Add(1)

		verdict, res := xdp.FilterNdn(packetData)
		if verdict != xdp.Pass {
			rx.nFiltered.Add(1)
			continue
		}
		if res.VLAN != rx.vlan {
			rx.nMismatch.Add(1)
			continue
		}

		if e := rx.parser.DecodeLayers(packetData, &rx.decoded); e != nil {
			rx.nFiltered.Add(1)
			continue
		}
		if !rx.matchLL(rx.eth.SrcMAC, rx.eth.DstMAC) {
			rx.nMismatch.Add(1)
			continue
		}
		for _, layerType := range rx.decoded {
			if layerType == ndnlayer.LayerTypeTLV {
				return copy(buf, rx.tlv.LayerPayload()), nil
			}
		}
		rx.nFiltered.Add(1)
	}
}

type transportTx struct {
	mutex  sync.Mutex
	layers []gopacket.SerializableLayer // Ethernet, optional Dot1Q, then payload
	buf    gopacket.SerializeBuffer
	opts   gopacket.SerializeOptions

	nFrames, nErrors atomic.Uint64
}

func (tx *transportTx) Prepare(loc Locator) {
	eth := &layers.Ethernet{
		SrcMAC:       loc.Local.HardwareAddr,
		DstMAC:       loc.Remote.HardwareAddr,
		EthernetType: ndnlayer.EthernetTypeNDN,
	}
	tx.layers = []gopacket.SerializableLayer{eth}
	if loc.VLAN > 0 {
		tx.layers = append(tx.layers, &layers.Dot1Q{
			Type:           eth.EthernetType,
			VLANIdentifier: uint16(loc.VLAN),
		})
		eth.EthernetType = layers.EthernetTypeDot1Q
	}
	tx.layers = append(tx.layers, nil)

	tx.buf = gopacket.NewSerializeBuffer()
	tx.opts = gopacket.SerializeOptions{FixLengths: true}
}

func (tx *transportTx) Write(hdl PacketDataHandle, frame []byte) (n int, e error) {
	tx.mutex.Lock()
	defer tx.mutex.Unlock()

	tx.layers[len(tx.layers)-1] = gopacket.Payload(frame)
	if e = gopacket.SerializeLayers(tx.buf, tx.opts, tx.layers...); e == nil {
		e = hdl.WritePacketData(tx.buf.Bytes())
	}
	if e != nil {
		tx.nErrors.Add(1)
		return 0, e
	}
	tx.nFrames.Add(1)
	return len(frame), nil
}
