// Package ndntestenv contains helper functions to validate NDN faces in test code.
package ndntestenv

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndni"
)

// nackEvery is the interval of PIT tokens answered with Nack.
const nackEvery = 5

// L3FaceTester tests Face or Transport.
//
// Face A sends Interests carrying sequential PIT tokens.
// Face B answers every fifth Interest with a Nack and the others with Data.
type L3FaceTester struct {
	Count            int
	LossTolerance    float64
	InterestInterval time.Duration
	CloseDelay       time.Duration
	FaceConfig       l3.FaceConfig
}

func (c *L3FaceTester) applyDefaults() {
	if c.Count <= 0 {
		c.Count = 1000
	}
	if c.LossTolerance <= 0 {
		c.LossTolerance = 0.05
	}
	if c.InterestInterval <= 0 {
		c.InterestInterval = time.Millisecond
	}
	if c.CloseDelay <= 0 {
		c.CloseDelay = 100 * time.Millisecond
	}
}

// CheckTransport tests a pair of connected Transport.
func (c *L3FaceTester) CheckTransport(t *testing.T, trA, trB l3.Transport) {
	_, require := testenv.MakeAR(t)
	faceA, e := l3.NewFace(trA, c.FaceConfig)
	require.NoError(e)
	faceB, e := l3.NewFace(trB, c.FaceConfig)
	require.NoError(e)
	c.CheckL3Face(t, faceA, faceB)
}

// CheckL3Face tests a pair of connected Face.
func (c *L3FaceTester) CheckL3Face(t *testing.T, faceA, faceB l3.Face) {
	c.applyDefaults()
	assert, _ := testenv.MakeAR(t)

	var wg sync.WaitGroup
	for _, face := range []l3.Face{faceA, faceB} {
		wg.Add(1)
		var once sync.Once
		face.OnStateChange(func(st l3.TransportState) {
			if st == l3.TransportClosed {
				once.Do(wg.Done)
			}
		})
	}

	senderDone := make(chan struct{})
	var res replyTally
	res.seen = make([]bool, c.Count)
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	run(func() { respond(faceB, senderDone) })
	run(func() { res.collect(faceA.Rx()) })
	run(func() {
		c.send(faceA.Tx())
		close(senderDone)
	})

	wg.Wait()
	assert.Zero(res.nErrors)
	assert.InEpsilon(c.Count, res.nData+res.nNacks, c.LossTolerance)
	assert.InEpsilon(c.Count/nackEvery, res.nNacks, c.LossTolerance)
}

// send transmits Count Interests, then closes the TX channel after CloseDelay.
func (c *L3FaceTester) send(tx chan<- *l3.Packet) {
	for i := 0; i < c.Count; i++ {
		interest := ndn.Interest{Name: ndn.ParseName(fmt.Sprintf("/A/%d", i))}
		tx <- &l3.Packet{Lp: ndni.LpL3{PitToken: uint64(i)}, Packet: ndn.Packet{Interest: &interest}}
		time.Sleep(c.InterestInterval)
	}
	time.Sleep(c.CloseDelay)
	close(tx)
}

// respond answers Interests on face until done is closed.
func respond(face l3.Face, done <-chan struct{}) {
	rx, tx := face.Rx(), face.Tx()
	defer close(tx)
	for {
		select {
		case <-done:
			return
		case pkt, ok := <-rx:
			if !ok {
				rx = nil
				continue
			}
			if pkt.Interest == nil {
				continue
			}
			reply := &l3.Packet{Lp: ndni.LpL3{PitToken: pkt.Lp.PitToken}}
			if pkt.Lp.PitToken%nackEvery == 0 {
				reply.Lp.NackReason = an.NackNoRoute
				reply.Interest = pkt.Interest
			} else {
				reply.Data = &ndn.Data{Name: pkt.Interest.Name, Content: []byte{0xC0, 0xC1}}
			}
			tx <- reply
		}
	}
}

// replyTally counts replies received by the Interest sender.
type replyTally struct {
	seen    []bool
	nData   int
	nNacks  int
	nErrors int
}

func (r *replyTally) collect(rx <-chan *l3.Packet) {
	for pkt := range rx {
		token := pkt.Lp.PitToken
		if token >= uint64(len(r.seen)) || r.seen[token] {
			r.nErrors++
			continue
		}
		r.seen[token] = true

		wantNack := token%nackEvery == 0
		switch {
		case wantNack && pkt.IsNack():
			r.nNacks++
		case !wantNack && pkt.Data != nil:
			r.nData++
		default:
			r.nErrors++
		}
	}
}
