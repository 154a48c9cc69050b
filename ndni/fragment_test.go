package ndni_test

import (
	"testing"

	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn/an"
	"github.com/usnistgov/ndnlp/ndn/tlv"
	"github.com/usnistgov/ndnlp/ndni"
)

func TestFragmenter(t *testing.T) {
	assert, require := makeAR(t)

	payload := make([]byte, 3000)
	testenv.RandBytes(payload)
	l3 := ndni.LpL3{PitToken: 0x808ECD3DF4E1B062, CongMark: 1}

	fragmenter := ndni.NewLpFragmenter(1000)
	seq := uint64(0xFFFFFFFFFFFFFFFE)
	frags, e := fragmenter.Fragment(l3, payload, &seq)
	require.NoError(e)
	require.Len(frags, 4)
	assert.Equal(uint64(2), seq)

	reassembler := ndni.NewLpReassembler(4)
	for i, frag := range frags {
		assert.LessOrEqual(len(frag), 1000)

		lpp, e := ndni.DecodeLpPacket(tlv.NewByteCursor(frag))
		require.NoError(e)
		assert.Equal(uint64(0xFFFFFFFFFFFFFFFE)+uint64(i), lpp.L2.SeqNum)
		assert.EqualValues(i, lpp.L2.FragIndex)
		assert.EqualValues(4, lpp.L2.FragCount)
		if i == 0 {
			assert.Equal(l3, lpp.L3)
		} else {
			assert.True(lpp.L3.IsZero())
		}

		full, ok, e := reassembler.Accept(lpp)
		require.NoError(e)
		assert.Equal(i == len(frags)-1, ok)
		if ok {
			assert.Equal(l3, full.L3)
			assert.False(full.L2.IsFragmented())
			assert.Equal(payload, tlv.Collect(full.Payload))
		}
	}

	cnt := reassembler.Counters()
	assert.EqualValues(4, cnt.NAccepted)
	assert.EqualValues(1, cnt.NDelivered)
	assert.EqualValues(0, cnt.NIncomplete)
	assert.Equal(0, reassembler.Len())

	tooSmall := ndni.NewLpFragmenter(30)
	_, e = tooSmall.Fragment(l3, payload, &seq)
	assert.ErrorIs(e, ndni.ErrFragmentMTU)
}

func TestFragmenterSmall(t *testing.T) {
	assert, require := makeAR(t)

	fragmenter := ndni.NewLpFragmenter(1500)
	seq := uint64(1000)
	payload := bytesFromHex("0505 0703080141")
	frags, e := fragmenter.Fragment(ndni.LpL3{NackReason: an.NackDuplicate}, payload, &seq)
	require.NoError(e)
	require.Len(frags, 1)
	assert.Equal(uint64(1000), seq)
	assert.Equal(bytesFromHex("6412 nack=FD032005(FD03210164) payload=5007 0505 0703080141"), frags[0])
}

func TestReassembler(t *testing.T) {
	assert, require := makeAR(t)

	makeFrag := func(seq uint64, index, count uint16, payload byte) ndni.LpPacket {
		hdr := ndni.LpHeader{L2: ndni.LpL2{SeqNum: seq, FragIndex: index, FragCount: count}}
		lpp, e := ndni.DecodeLpPacket(tlv.NewByteCursor(hdr.Encode([]byte{payload})))
		require.NoError(e)
		return lpp
	}

	reassembler := ndni.NewLpReassembler(2)

	unfrag := ndni.LpPacket{LpHeader: ndni.LpHeader{L2: ndni.LpL2{FragCount: 1}}, Payload: tlv.NewByteCursor([]byte{0xC0})}
	full, ok, e := reassembler.Accept(unfrag)
	assert.NoError(e)
	assert.True(ok)
	assert.Equal(unfrag, full)

	// out of order, with a duplicate
	_, ok, e = reassembler.Accept(makeFrag(102, 2, 3, 0xA2))
	assert.NoError(e)
	assert.False(ok)
	_, ok, e = reassembler.Accept(makeFrag(102, 2, 3, 0xA2))
	assert.NoError(e)
	assert.False(ok)
	_, ok, _ = reassembler.Accept(makeFrag(100, 0, 3, 0xA0))
	assert.False(ok)
	full, ok, e = reassembler.Accept(makeFrag(101, 1, 3, 0xA1))
	assert.NoError(e)
	if assert.True(ok) {
		assert.Equal([]byte{0xA0, 0xA1, 0xA2}, tlv.Collect(full.Payload))
	}

	// eviction
	_, ok, _ = reassembler.Accept(makeFrag(200, 0, 2, 0xB0))
	assert.False(ok)
	_, ok, _ = reassembler.Accept(makeFrag(300, 0, 2, 0xC0))
	assert.False(ok)
	_, ok, _ = reassembler.Accept(makeFrag(400, 0, 2, 0xD0))
	assert.False(ok)
	assert.Equal(2, reassembler.Len())
	_, ok, _ = reassembler.Accept(makeFrag(201, 1, 2, 0xB1))
	assert.False(ok)

	// FragCount mismatch
	_, _, e = reassembler.Accept(makeFrag(401, 1, 3, 0xD1))
	assert.ErrorIs(e, ndni.ErrFragCountMismatch)

	cnt := reassembler.Counters()
	assert.EqualValues(1, cnt.NDelivered)
	assert.EqualValues(1, cnt.NDuplicate)
	assert.EqualValues(1, cnt.NErrors)
	assert.GreaterOrEqual(cnt.NIncomplete, uint64(2))
}
