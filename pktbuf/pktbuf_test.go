package pktbuf_test

import (
	"bytes"
	"testing"

	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/pktbuf"
)

var makeAR = testenv.MakeAR

func TestPacket(t *testing.T) {
	assert, require := makeAR(t)

	part0 := bytes.Repeat([]byte{0xA0}, 100)
	part1 := bytes.Repeat([]byte{0xA1}, 200)
	part2 := bytes.Repeat([]byte{0xA2}, 300)

	pkt := pktbuf.New(50, 300)
	assert.Equal(0, pkt.Len())
	assert.False(pkt.IsSegmented())
	assert.Equal(50, pkt.Headroom())
	assert.Equal(300, pkt.Tailroom())

	require.NoError(pkt.SetHeadroom(120))
	assert.Equal(120, pkt.Headroom())
	assert.Equal(230, pkt.Tailroom())
	require.NoError(pkt.AppendBytes(part1[:150]))
	assert.Equal(150, pkt.Len())
	assert.Equal(80, pkt.Tailroom())
	assert.Error(pkt.SetHeadroom(0))
	assert.ErrorIs(pkt.AppendBytes(make([]byte, 81)), pktbuf.ErrTailroom)
	require.NoError(pkt.AppendBytes(part1[150:]))
	assert.Equal(30, pkt.Tailroom())

	tail := pktbuf.New(0, 400)
	pkt.Chain(tail)
	assert.True(pkt.IsSegmented())
	require.NoError(pkt.AppendBytes(part2))
	assert.Equal(500, pkt.Len())
	assert.Equal(100, pkt.Tailroom())

	assert.ErrorIs(pkt.PrependBytes(make([]byte, 121)), pktbuf.ErrHeadroom)
	require.NoError(pkt.PrependBytes(part0))
	assert.Equal(600, pkt.Len())
	assert.Equal(20, pkt.Headroom())
	assert.Equal([]int{300, 300}, pkt.SegmentLengths())

	expected := bytes.Join([][]byte{part0, part1, part2}, nil)
	assert.Equal(expected, pkt.Bytes())
	assert.Equal(expected, tlv.Collect(pkt.Iterator()))

	assert.Nil(pkt.Prepend(21))
	assert.Nil(pkt.Prepend(-1))
	room := pkt.Prepend(20)
	assert.Len(room, 20)
	assert.Equal(20, cap(room))
	assert.Equal(0, pkt.Headroom())
}

func TestPrependInPlace(t *testing.T) {
	assert, _ := makeAR(t)

	pkt := pktbuf.FromBytes(4, []byte{0xC0, 0xC1})
	payload := pkt.Bytes()
	copy(pkt.Prepend(2), []byte{0x50, 0x02})
	assert.Equal([]byte{0x50, 0x02, 0xC0, 0xC1}, pkt.Bytes())

	payload[0] = 0xCF
	assert.Equal([]byte{0x50, 0x02, 0xCF, 0xC1}, pkt.Bytes())
}

func TestReadFrom(t *testing.T) {
	assert, require := makeAR(t)

	pkt := pktbuf.New(8, 16)
	n, e := pkt.ReadFrom(bytes.NewReader([]byte{0xD0, 0xD1, 0xD2}))
	require.NoError(e)
	assert.EqualValues(3, n)
	assert.Equal([]byte{0xD0, 0xD1, 0xD2}, pkt.Bytes())
	assert.Equal(8, pkt.Headroom())

	_, e = pkt.ReadFrom(bytes.NewReader([]byte{0xD3}))
	assert.ErrorIs(e, pktbuf.ErrNotEmpty)
}

func TestPool(t *testing.T) {
	assert, require := makeAR(t)

	pool := pktbuf.NewPool(pktbuf.PoolConfig{Dataroom: 64})
	assert.Equal(pktbuf.DefaultHeadroom, pool.Config().Headroom)

	pkt := pool.Get()
	assert.Equal(1, pool.CountInUse())
	assert.Equal(pktbuf.DefaultHeadroom, pkt.Headroom())
	assert.Equal(64, pkt.Tailroom())
	require.NoError(pkt.AppendBytes([]byte{0xE0}))

	seg := pool.Get()
	require.NoError(seg.AppendBytes([]byte{0xE1}))
	pkt.Chain(seg)
	assert.Equal(2, pool.CountInUse())

	pkt.Close()
	assert.Equal(0, pool.CountInUse())

	pkt = pool.Get()
	defer pkt.Close()
	assert.Equal(0, pkt.Len())
	assert.False(pkt.IsSegmented())
	assert.Equal(pktbuf.DefaultHeadroom, pkt.Headroom())
}
