// Package events provides a simple event emitter.
package events

import (
	"github.com/tul/emission"
)

// Emitter is a simple event emitter.
// This is a thin wrapper of emission.Emitter whose On method returns a function that
// cancels the callback registration.
type Emitter struct {
	e *emission.Emitter
}

// NewEmitter creates a simple event emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		e: emission.NewEmitter().SetMaxListeners(-1),
	}
}

// On registers a callback when an event occurs.
// Each registration is cancelled separately, even if the same function is registered twice.
func (emitter *Emitter) On(event, listener any) (cancel func()) {
	h := emitter.e.On(event, listener)
	return func() { emitter.e.RemoveListener(event, h) }
}

// ListenerCount returns the number of callbacks registered for an event.
func (emitter *Emitter) ListenerCount(event any) int {
	return emitter.e.GetListenerCount(event)
}

// Emit invokes callbacks of an event synchronously.
func (emitter *Emitter) Emit(event any, args ...any) {
	emitter.e.EmitSync(event, args...)
}
