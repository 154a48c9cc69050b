// Package l3 defines a network layer face abstraction.
//
// The Transport interface defines a lower layer communication channel.
// It knows NDN-TLV structure, but not NDN packet types.
// It should be implemented for different communication technologies.
//
// The Face type is the service exposed to the network layer.
// It allows sending and receiving packets on a Transport, while taking care of
// NDNLPv2 encoding, fragmentation, and reassembly.
package l3

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/pkg/math"
	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/ndni"
	"github.com/usnistgov/ndnlp/pktbuf"
	"go.uber.org/zap"
)

var logger = logging.New("l3")

// Limits and defaults.
const (
	MinReassemblerCapacity     = 16
	DefaultReassemblerCapacity = 64
	DefaultRxBufferLength      = 9000
)

// Packet is a network layer packet along with NDNLPv2 L3 fields.
type Packet struct {
	Lp ndni.LpL3
	ndn.Packet
}

// IsNack returns true if this packet is a Nack.
func (pkt Packet) IsNack() bool {
	return pkt.Interest != nil && pkt.Lp.NackReason != 0
}

// FaceConfig contains options for NewFace.
type FaceConfig struct {
	TransportQueueConfig

	// ReassemblerCapacity is the maximum number of partial packets in the reassembler.
	ReassemblerCapacity int

	// RxBufferLength is the buffer length for Transport.Read.
	// Frames longer than this length are truncated and then dropped.
	RxBufferLength int
}

func (cfg *FaceConfig) applyDefaults() {
	cfg.ApplyTransportQueueConfigDefaults()
	if cfg.ReassemblerCapacity <= 0 {
		cfg.ReassemblerCapacity = DefaultReassemblerCapacity
	}
	cfg.ReassemblerCapacity = math.MaxInt(cfg.ReassemblerCapacity, MinReassemblerCapacity)
	if cfg.RxBufferLength <= 0 {
		cfg.RxBufferLength = DefaultRxBufferLength
	}
}

// FaceCounters contains Face counters.
type FaceCounters struct {
	RxFrames    uint64 `json:"rxFrames"`
	RxDecodeErr uint64 `json:"rxDecodeErr"`
	RxPackets   uint64 `json:"rxPackets"`
	TxPackets   uint64 `json:"txPackets"`
	TxFrames    uint64 `json:"txFrames"`
	TxErrors    uint64 `json:"txErrors"`

	Reassembler ndni.LpReassemblerCounters `json:"reassembler"`
	// ReassemblerPending is the number of partially reassembled packets.
	ReassemblerPending int `json:"reassemblerPending" subtract:"-"`
}

// Face represents a communicate channel to send and receive NDN network layer packets.
type Face interface {
	// Transport returns the underlying transport.
	Transport() Transport

	// Rx returns a channel to receive incoming packets.
	// This function always returns the same channel.
	// This channel is closed when the transport is closed.
	Rx() <-chan *Packet

	// Tx returns a channel to send outgoing packets.
	// This function always returns the same channel.
	// Closing this channel causes the transport to close.
	Tx() chan<- *Packet

	State() TransportState
	OnStateChange(cb func(st TransportState)) (cancel func())

	Counters() FaceCounters
}

// NewFace creates a Face.
// tr.Read and tr.Write should not be used after this operation.
func NewFace(tr Transport, cfg FaceConfig) (Face, error) {
	if tr == nil {
		return nil, errors.New("nil Transport")
	}
	cfg.applyDefaults()

	f := &face{
		faceTr:      faceTr{tr},
		rxBufLen:    cfg.RxBufferLength,
		rx:          make(chan *Packet, cfg.RxQueueSize),
		tx:          make(chan *Packet, cfg.TxQueueSize),
		reassembler: ndni.NewLpReassembler(cfg.ReassemblerCapacity),
		logger:      logger.With(zap.Int("mtu", tr.MTU())),
	}
	if mtu := tr.MTU(); mtu > 0 {
		f.fragmenter = ndni.NewLpFragmenter(mtu)
	}

	go f.rxLoop()
	go f.txLoop()
	return f, nil
}

type face struct {
	faceTr
	rxBufLen int
	rx       chan *Packet
	tx       chan *Packet

	fragmenter  *ndni.LpFragmenter
	reassembler *ndni.LpReassembler
	seqNum      uint64
	logger      *zap.Logger

	nRxFrames, nRxDecodeErr, nRxPackets atomic.Uint64
	nTxPackets, nTxFrames, nTxErrors    atomic.Uint64
}

type faceTr struct {
	Transport
}

func (f *face) Transport() Transport {
	return f.faceTr.Transport
}

func (f *face) Rx() <-chan *Packet {
	return f.rx
}

func (f *face) Tx() chan<- *Packet {
	return f.tx
}

func (f *face) Counters() FaceCounters {
	return FaceCounters{
		RxFrames:    f.nRxFrames.Load(),
		RxDecodeErr: f.nRxDecodeErr.Load(),
		RxPackets:   f.nRxPackets.Load(),
		TxPackets:   f.nTxPackets.Load(),
		TxFrames:    f.nTxFrames.Load(),
		TxErrors:    f.nTxErrors.Load(),
		Reassembler: f.reassembler.Counters(),

		ReassemblerPending: f.reassembler.Len(),
	}
}

func (f *face) rxLoop() {
	defer close(f.rx)
	pool := pktbuf.NewPool(pktbuf.PoolConfig{Headroom: 0, Dataroom: f.rxBufLen})
	for {
		frame := pool.Get()
		_, e := frame.ReadFrom(f.faceTr)
		if e != nil {
			frame.Close()
			if !errors.Is(e, io.EOF) {
				f.logger.Debug("transport read error", zap.Error(e))
			}
			if f.State() == TransportClosed || errors.Is(e, io.EOF) {
				return
			}
			continue
		}

		f.nRxFrames.Add(1)
		pkt := f.decode(frame)
		frame.Close()
		if pkt != nil {
			f.nRxPackets.Add(1)
			f.rx <- pkt
		}
	}
}

// decode parses a frame into a network layer packet.
// The returned packet does not reference frame's buffer.
func (f *face) decode(frame *pktbuf.Packet) *Packet {
	lpp, e := ndni.ParseL2(frame)
	if e != nil {
		f.nRxDecodeErr.Add(1)
		f.logger.Debug("LpPacket decode error", zap.Error(e))
		return nil
	}

	full, ok, e := f.reassembler.Accept(lpp)
	if e != nil {
		f.nRxDecodeErr.Add(1)
		f.logger.Debug("reassembly error", zap.Error(e))
		return nil
	}
	if !ok || full.Payload.Len() == 0 {
		return nil
	}

	pkt := &Packet{Lp: full.L3}
	if e := pkt.Packet.UnmarshalBinary(tlv.Collect(full.Payload)); e != nil {
		f.nRxDecodeErr.Add(1)
		f.logger.Debug("network layer packet decode error", zap.Error(e))
		return nil
	}
	return pkt
}

func (f *face) txLoop() {
	for pkt := range f.tx {
		f.nTxPackets.Add(1)
		frames, e := f.encode(pkt)
		if e != nil {
			f.nTxErrors.Add(1)
			f.logger.Debug("encode error", zap.Error(e))
			continue
		}

		for _, frame := range frames {
			if _, e := f.faceTr.Write(frame); e != nil {
				f.nTxErrors.Add(1)
				continue
			}
			f.nTxFrames.Add(1)
		}
	}

	if e := f.faceTr.Close(); e != nil {
		f.logger.Debug("transport close error", zap.Error(e))
	}
}

func (f *face) encode(pkt *Packet) (frames [][]byte, e error) {
	wire, e := tlv.EncodeFrom(pkt.Packet)
	if e != nil {
		return nil, e
	}

	if f.fragmenter == nil {
		return [][]byte{ndni.LpHeader{L3: pkt.Lp}.Encode(wire)}, nil
	}
	return f.fragmenter.Fragment(pkt.Lp, wire, &f.seqNum)
}
