// Package tgconsumer implements a traffic generator consumer.
package tgconsumer

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/usnistgov/ndnlp/app/inputdemux"
	"github.com/usnistgov/ndnlp/core/logging"
	"github.com/usnistgov/ndnlp/core/nnduration"
	"github.com/usnistgov/ndnlp/core/ringbuffer"
	"github.com/usnistgov/ndnlp/core/runningstat"
	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndni"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var logger = logging.New("tgconsumer")

// ErrNotRunning indicates the worker is not running.
var ErrNotRunning = errors.New("worker is not running")

const (
	rxBurstSize   = 64
	rxIdleSleep   = 100 * time.Microsecond
	rttSampleFreq = 4
)

type worker struct {
	stop chan struct{}
	done chan struct{}
}

func launchWorker(f func(stop <-chan struct{})) *worker {
	w := &worker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(w.done)
		f(w.stop)
	}()
	return w
}

// Stop requests the worker to stop and waits for it to exit.
func (w *worker) Stop() error {
	if w == nil {
		return ErrNotRunning
	}
	close(w.stop)
	<-w.done
	return nil
}

type patternState struct {
	seqNum     atomic.Uint64
	nInterests atomic.Uint64
	nData      atomic.Uint64
	nNacks     atomic.Uint64

	rttMutex sync.Mutex
	rtt      runningstat.IntStat
}

// Consumer represents a traffic generator consumer instance.
type Consumer struct {
	cfg     Config
	face    l3.Face
	weight  []uint8
	pattern []*patternState

	rxQueue *ringbuffer.Ring
	demux   inputdemux.Demux3
	epoch   time.Time
	runNum  uint8

	demuxW, rxW, txW *worker
	logger           *zap.Logger
	closing          sync.Once
}

// Patterns returns traffic patterns.
func (c *Consumer) Patterns() []Pattern {
	return c.cfg.Patterns
}

// Interval returns average Interest interval.
func (c *Consumer) Interval() time.Duration {
	return c.cfg.Interval.DurationOr(nnduration.Nanoseconds(defaultInterval))
}

// Face returns the associated face.
func (c *Consumer) Face() l3.Face {
	return c.face
}

// Demux returns the InputDemux that feeds the consumer's RX queue.
func (c *Consumer) Demux() inputdemux.Demux3 {
	return c.demux
}

func (c *Consumer) now() time.Duration {
	return time.Since(c.epoch)
}

// Launch launches RX and TX workers.
func (c *Consumer) Launch() {
	c.runNum++
	c.logger.Info("launch", zap.Uint8("run", c.runNum))
	c.demuxW = launchWorker(func(stop <-chan struct{}) { c.demux.FaceRx(c.face, stop) })
	c.rxW = launchWorker(c.rxLoop)
	c.txW = launchWorker(c.txLoop)
}

// Stop stops RX and TX workers.
func (c *Consumer) Stop() error {
	return c.StopDelay(0)
}

// StopDelay stops the TX worker, delays for the specified duration, then stops the RX worker.
func (c *Consumer) StopDelay(delay time.Duration) error {
	eTx := c.txW.Stop()
	time.Sleep(delay)
	eDemux := c.demuxW.Stop()
	eRx := c.rxW.Stop()
	c.txW, c.demuxW, c.rxW = nil, nil, nil
	return multierr.Combine(eTx, eDemux, eRx)
}

// Close stops the consumer if it is running, and closes the face.
// Subsequent calls have no effect.
func (c *Consumer) Close() (e error) {
	c.closing.Do(func() {
		if c.txW != nil {
			e = multierr.Append(e, c.Stop())
		}
		close(c.face.Tx())
	})
	return e
}

func (c *Consumer) txLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(c.Interval())
	defer ticker.Stop()
	tx := c.face.Tx()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		id := c.weight[rand.Intn(len(c.weight))]
		pattern, ps := c.cfg.Patterns[id], c.pattern[id]

		var seqNum uint64
		if pattern.SeqNumOffset == 0 {
			seqNum = ps.seqNum.Add(1)
		} else {
			seqNum = c.pattern[id-1].seqNum.Load() - uint64(pattern.SeqNumOffset)
		}

		interest := pattern.makeInterest(seqNum)
		pkt := &l3.Packet{
			Lp:     ndni.LpL3{PitToken: makeToken(c.runNum, id, c.now())},
			Packet: ndn.Packet{Interest: &interest},
		}
		select {
		case tx <- pkt:
			ps.nInterests.Add(1)
		case <-stop:
			return
		}
	}
}

func (c *Consumer) rxLoop(stop <-chan struct{}) {
	burst := make([]any, rxBurstSize)
	stopping := false
	for {
		select {
		case <-stop:
			stopping = true
		default:
		}

		n := c.rxQueue.Dequeue(burst)
		if n == 0 {
			if stopping {
				return
			}
			time.Sleep(rxIdleSleep)
			continue
		}
		now := c.now()
		for i, obj := range burst[:n] {
			c.rxPacket(obj.(*l3.Packet), now)
			burst[i] = nil
		}
	}
}

func (c *Consumer) rxPacket(pkt *l3.Packet, now time.Duration) {
	runNum, id, timestamp := parseToken(pkt.Lp.PitToken)
	if runNum != c.runNum || int(id) >= len(c.pattern) {
		c.logger.Debug("unexpected PIT token", zap.Uint64("token", pkt.Lp.PitToken))
		return
	}
	ps := c.pattern[id]

	switch {
	case pkt.IsNack():
		ps.nNacks.Add(1)
	case pkt.Data != nil:
		ps.nData.Add(1)
		rtt := rttFromToken(now, timestamp)
		ps.rttMutex.Lock()
		ps.rtt.Push(uint64(rtt))
		ps.rttMutex.Unlock()
	}
}

// New creates a Consumer.
func New(face l3.Face, cfg Config) (c *Consumer, e error) {
	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	c = &Consumer{
		cfg:     cfg,
		face:    face,
		rxQueue: ringbuffer.New(cfg.RxQueueCapacity),
		epoch:   time.Now(),
		runNum:  uint8(rand.Intn(256)),
		logger:  logger.With(zap.Int("patterns", len(cfg.Patterns))),
	}

	if c.demux.Interest, e = inputdemux.New(inputdemux.ModeDrop); e != nil {
		return nil, e
	}
	if c.demux.Data, e = inputdemux.New(inputdemux.ModeFirst, c.rxQueue); e != nil {
		return nil, e
	}
	if c.demux.Nack, e = inputdemux.New(inputdemux.ModeFirst, c.rxQueue); e != nil {
		return nil, e
	}

	for i, pattern := range cfg.Patterns {
		for j := 0; j < pattern.Weight; j++ {
			c.weight = append(c.weight, uint8(i))
		}
		ps := &patternState{}
		ps.seqNum.Store(rand.Uint64())
		ps.rtt.Init(rttSampleFreq)
		c.pattern = append(c.pattern, ps)
	}
	return c, nil
}
