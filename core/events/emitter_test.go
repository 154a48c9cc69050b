package events_test

import (
	"testing"

	"github.com/usnistgov/ndnlp/core/events"
	"github.com/usnistgov/ndnlp/core/testenv"
)

var makeAR = testenv.MakeAR

func TestOnCancel(t *testing.T) {
	assert, _ := makeAR(t)

	nA, nB, sumC := 0, 0, 0
	fA := func() { nA++ }
	fB := func() { nB++ }
	fC := func(v int) { sumC += v }

	emitter := events.NewEmitter()
	cancelA := emitter.On(1, fA)
	cancelB := emitter.On(1, fB)
	cancelC := emitter.On(2, fC)

	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(1, nB)

	cancelA()
	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(2, nB)

	cancelA()
	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(3, nB)

	cancelB()
	emitter.Emit(1)
	assert.Equal(3, nB)

	emitter.Emit(2, 5)
	emitter.Emit(2, 7)
	assert.Equal(12, sumC)
	cancelC()
	emitter.Emit(2, 9)
	assert.Equal(12, sumC)
}

func TestSameListenerTwice(t *testing.T) {
	assert, _ := makeAR(t)

	n := 0
	f := func() { n++ }

	emitter := events.NewEmitter()
	cancel1 := emitter.On("ev", f)
	cancel2 := emitter.On("ev", f)
	assert.Equal(2, emitter.ListenerCount("ev"))

	emitter.Emit("ev")
	assert.Equal(2, n)

	cancel1()
	assert.Equal(1, emitter.ListenerCount("ev"))
	emitter.Emit("ev")
	assert.Equal(3, n)

	cancel2()
	assert.Zero(emitter.ListenerCount("ev"))
	for i := 0; i < 20; i++ {
		emitter.On("many", f)
	}
	assert.Equal(20, emitter.ListenerCount("many"))
}
