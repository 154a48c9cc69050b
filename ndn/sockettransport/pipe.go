package sockettransport

import (
	"net"

	"go.uber.org/multierr"
)

// Pipe creates a pair of in-memory transports connected via net.Pipe().
// Both ends use the same configuration; a nonzero MTU enables fragmentation on both sides.
// When either end is closed, the other end closes too, because a pipe cannot be redialed.
func Pipe(cfg Config) (trA, trB Transport, e error) {
	connA, connB := net.Pipe()

	if trA, e = New(connA, cfg); e == nil {
		trB, e = New(connB, cfg)
	}
	if e != nil {
		return nil, nil, multierr.Combine(e, connA.Close(), connB.Close())
	}
	return trA, trB, nil
}
