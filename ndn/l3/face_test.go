package l3_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndni"
)

func TestFace(t *testing.T) {
	assert, require := makeAR(t)

	trA, trB := newPipe(300)
	faceA, e := l3.NewFace(trA, l3.FaceConfig{})
	require.NoError(e)
	faceB, e := l3.NewFace(trB, l3.FaceConfig{ReassemblerCapacity: 1})
	require.NoError(e)

	var stA []l3.TransportState
	cancel := faceA.OnStateChange(func(st l3.TransportState) { stA = append(stA, st) })
	defer cancel()

	interest := ndn.Interest{Name: ndn.ParseName("/A/1"), Nonce: 0x01020304}
	faceA.Tx() <- &l3.Packet{Lp: ndni.LpL3{PitToken: 0xA1}, Packet: ndn.Packet{Interest: &interest}}

	content := bytes.Repeat([]byte{0xC0}, 1000)
	data := ndn.Data{Name: ndn.ParseName("/A/1"), Content: content}
	faceA.Tx() <- &l3.Packet{Lp: ndni.LpL3{PitToken: 0xA2, CongMark: 1}, Packet: ndn.Packet{Data: &data}}

	faceA.Tx() <- &l3.Packet{Lp: ndni.LpL3{PitToken: 0xA3, NackReason: an.NackNoRoute}, Packet: ndn.Packet{Interest: &interest}}

	recv := func() *l3.Packet {
		select {
		case pkt := <-faceB.Rx():
			return pkt
		case <-time.After(time.Second):
			require.FailNow("receive timeout")
		}
		return nil
	}

	pkt := recv()
	require.NotNil(pkt.Interest)
	assert.False(pkt.IsNack())
	assert.Equal(uint64(0xA1), pkt.Lp.PitToken)
	assert.Equal("/A/1", pkt.Interest.Name.String())
	assert.Equal(interest.Nonce, pkt.Interest.Nonce)

	pkt = recv()
	require.NotNil(pkt.Data)
	assert.Equal(ndni.LpL3{PitToken: 0xA2, CongMark: 1}, pkt.Lp)
	bytesEqual(assert, content, pkt.Data.Content)

	pkt = recv()
	require.NotNil(pkt.Interest)
	assert.True(pkt.IsNack())
	assert.Equal(an.NackNoRoute, pkt.Lp.NackReason)

	frames := trA.sentFrames()
	assert.Greater(len(frames), 3)
	for _, frame := range frames {
		assert.LessOrEqual(len(frame), 300)
	}

	close(faceA.Tx())
	select {
	case _, ok := <-faceB.Rx():
		assert.False(ok)
	case <-time.After(time.Second):
		assert.Fail("faceB.Rx not closed")
	}
	assert.Equal(l3.TransportClosed, faceA.State())
	assert.Equal([]l3.TransportState{l3.TransportClosed}, stA)

	cntA, cntB := faceA.Counters(), faceB.Counters()
	assert.EqualValues(3, cntA.TxPackets)
	assert.EqualValues(len(frames), cntA.TxFrames)
	assert.EqualValues(len(frames), cntB.RxFrames)
	assert.EqualValues(3, cntB.RxPackets)
	assert.EqualValues(0, cntB.RxDecodeErr)
	assert.EqualValues(1, cntB.Reassembler.NDelivered)
}

func TestFaceDecodeError(t *testing.T) {
	assert, require := makeAR(t)

	trA, trB := newPipe(0)
	faceB, e := l3.NewFace(trB, l3.FaceConfig{})
	require.NoError(e)

	trA.Write([]byte{0x64, 0x02, 0x63, 0x00})
	trA.Write([]byte{0x08, 0x00})
	trA.Write([]byte{0x64, 0x04, 0x50, 0x02, 0x08, 0x00})
	trA.Write([]byte{0x64, 0x06, 0x51, 0x01, 0x01, 0x50, 0x01, 0xFF})
	trA.Write([]byte{0x64, 0x00})
	trA.Close()

	for range faceB.Rx() {
		assert.Fail("unexpected packet")
	}
	cnt := faceB.Counters()
	assert.EqualValues(5, cnt.RxFrames)
	assert.EqualValues(4, cnt.RxDecodeErr)
	assert.EqualValues(0, cnt.RxPackets)
}

func TestTransportState(t *testing.T) {
	assert, _ := makeAR(t)

	b, p := l3.NewTransportBase(l3.TransportBaseConfig{MTU: 1500, InitialState: l3.TransportDown})
	assert.Equal(1500, b.MTU())
	assert.Equal(l3.TransportDown, b.State())

	var states []l3.TransportState
	cancel := b.OnStateChange(func(st l3.TransportState) { states = append(states, st) })
	p.SetState(l3.TransportDown)
	p.SetState(l3.TransportUp)
	p.SetState(l3.TransportClosed)
	p.SetState(l3.TransportUp)
	cancel()

	assert.Equal([]l3.TransportState{l3.TransportUp, l3.TransportClosed}, states)
	assert.Equal(l3.TransportClosed, b.State())
	assert.Equal("up", l3.TransportUp.String())
}
