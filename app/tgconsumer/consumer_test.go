package tgconsumer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/usnistgov/ndnlp/app/tgconsumer"
	"github.com/usnistgov/ndnlp/ndn"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndn/sockettransport"
	"github.com/usnistgov/ndnlp/ndni"
)

func TestConfig(t *testing.T) {
	assert, require := makeAR(t)

	var cfg tgconsumer.Config
	require.NoError(json.Unmarshal([]byte(`{
		"interval": "1ms",
		"patterns": [
			{ "prefix": "/A", "mustBeFresh": true, "interestLifetime": 500 },
			{ "weight": 3, "prefix": "/A", "seqNumOffset": 100 }
		]
	}`), &cfg))
	assert.NoError(cfg.Validate())
	assert.Equal(time.Millisecond, cfg.Interval.Duration())
	assert.Equal(tgconsumer.MinRxQueueCapacity, cfg.RxQueueCapacity)
	assert.Equal(1, cfg.Patterns[0].Weight)
	assert.Equal(500*time.Millisecond, cfg.Patterns[0].InterestLifetime.Duration())
	assert.True(cfg.Patterns[0].Prefix.Equal(ndn.ParseName("/A")))

	assert.ErrorIs((&tgconsumer.Config{}).Validate(), tgconsumer.ErrNoPattern)
	assert.ErrorIs((&tgconsumer.Config{
		Patterns: make([]tgconsumer.Pattern, tgconsumer.MaxPatterns+1),
	}).Validate(), tgconsumer.ErrTooManyPatterns)
	assert.ErrorIs((&tgconsumer.Config{
		Patterns: []tgconsumer.Pattern{{SeqNumOffset: 1}},
	}).Validate(), tgconsumer.ErrFirstSeqNumOffset)
	assert.ErrorIs((&tgconsumer.Config{
		Patterns: []tgconsumer.Pattern{{Weight: 8000}, {Weight: 200}},
	}).Validate(), tgconsumer.ErrTooManyWeights)
}

// serve answers Interests under /A with Data and others with Nack.
func serve(face l3.Face) {
	prefixA := ndn.ParseName("/A")
	for pkt := range face.Rx() {
		if pkt.Interest == nil || pkt.IsNack() {
			continue
		}
		reply := &l3.Packet{Lp: ndni.LpL3{PitToken: pkt.Lp.PitToken}}
		if prefixA.IsPrefixOf(pkt.Interest.Name) {
			reply.Data = &ndn.Data{Name: pkt.Interest.Name, Content: make([]byte, 100)}
		} else {
			reply.Lp.NackReason = an.NackNoRoute
			reply.Interest = pkt.Interest
		}
		face.Tx() <- reply
	}
}

func TestConsumer(t *testing.T) {
	assert, require := makeAR(t)

	trA, trB, e := sockettransport.Pipe(sockettransport.Config{})
	require.NoError(e)
	faceA, e := l3.NewFace(trA, l3.FaceConfig{})
	require.NoError(e)
	faceB, e := l3.NewFace(trB, l3.FaceConfig{})
	require.NoError(e)
	go serve(faceB)

	c, e := tgconsumer.New(faceA, tgconsumer.Config{
		Interval: 500000,
		Patterns: []tgconsumer.Pattern{
			{Weight: 3, Prefix: ndn.ParseName("/A")},
			{Weight: 1, Prefix: ndn.ParseName("/B"), CanBePrefix: true},
		},
	})
	require.NoError(e)
	assert.Equal(500*time.Microsecond, c.Interval())
	assert.Len(c.Patterns(), 2)
	assert.ErrorIs(c.Stop(), tgconsumer.ErrNotRunning)

	c.Launch()
	time.Sleep(500 * time.Millisecond)
	assert.NoError(c.StopDelay(200 * time.Millisecond))

	cnt := c.Counters()
	require.Len(cnt.PerPattern, 2)
	pA, pB := cnt.PerPattern[0], cnt.PerPattern[1]
	assert.Greater(cnt.NInterests, uint64(100))
	assert.Equal(cnt.NInterests, pA.NInterests+pB.NInterests)
	assert.InDelta(0.75, float64(pA.NInterests)/float64(cnt.NInterests), 0.15)
	assert.InDelta(1.0, pA.DataRatio(), 0.05)
	assert.Zero(pA.NNacks)
	assert.InDelta(1.0, pB.NackRatio(), 0.05)
	assert.Zero(pB.NData)

	assert.Equal(pA.NData, cnt.NData)
	require.NotNil(cnt.Rtt.Min)
	assert.Greater(*cnt.Rtt.Max, uint64(0))
	assert.LessOrEqual(*cnt.Rtt.Min, *cnt.Rtt.Max)
	assert.Less(cnt.Rtt.Mean, float64(100*time.Millisecond))
	assert.Contains(cnt.String(), "pattern(1)")
	assert.Zero(c.Demux().Interest.DestCounters(0).NQueued)
	assert.Equal(cnt.NData, c.Demux().Data.DestCounters(0).NQueued)

	c.ClearCounters()
	assert.Zero(c.Counters().NInterests)
	assert.NoError(c.Close())
}

func TestConfigRxQueueCapacity(t *testing.T) {
	assert, require := makeAR(t)

	for _, tt := range []struct {
		input, expected int
	}{
		{0, 64},
		{1, 64},
		{100, 128},
		{4096, 4096},
		{10000, 4096},
	} {
		var cfg tgconsumer.Config
		require.NoError(json.Unmarshal([]byte(`{"interval":"1ms","patterns":[{"prefix":"/A"}]}`), &cfg))
		cfg.RxQueueCapacity = tt.input
		assert.NoError(cfg.Validate(), tt.input)
		assert.Equal(tt.expected, cfg.RxQueueCapacity, tt.input)
	}
}

func TestConsumerClose(t *testing.T) {
	assert, require := makeAR(t)

	trA, trB, e := sockettransport.Pipe(sockettransport.Config{})
	require.NoError(e)
	faceA, e := l3.NewFace(trA, l3.FaceConfig{})
	require.NoError(e)
	faceB, e := l3.NewFace(trB, l3.FaceConfig{})
	require.NoError(e)
	go serve(faceB)

	c, e := tgconsumer.New(faceA, tgconsumer.Config{
		Patterns: []tgconsumer.Pattern{{Prefix: ndn.ParseName("/A")}},
	})
	require.NoError(e)

	c.Launch()
	time.Sleep(50 * time.Millisecond)
	assert.NoError(c.Close())
	assert.ErrorIs(c.Stop(), tgconsumer.ErrNotRunning)
	assert.NotPanics(func() { assert.NoError(c.Close()) })
}
