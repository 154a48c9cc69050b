package l3_test

import (
	"io"
	"sync"

	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn/l3"
)

var (
	makeAR     = testenv.MakeAR
	bytesEqual = testenv.BytesEqual
)

// pipeTransport is one end of an in-memory frame pipe.
type pipeTransport struct {
	*l3.TransportBase
	p      *l3.TransportBasePriv
	rx     <-chan []byte
	tx     chan<- []byte
	closer sync.Once

	mutex  sync.Mutex
	frames [][]byte
}

func newPipe(mtu int) (a, b *pipeTransport) {
	ab, ba := make(chan []byte, 256), make(chan []byte, 256)
	a = &pipeTransport{rx: ba, tx: ab}
	b = &pipeTransport{rx: ab, tx: ba}
	for _, tr := range []*pipeTransport{a, b} {
		tr.TransportBase, tr.p = l3.NewTransportBase(l3.TransportBaseConfig{MTU: mtu})
	}
	return a, b
}

func (tr *pipeTransport) Read(buf []byte) (n int, e error) {
	frame, ok := <-tr.rx
	if !ok {
		return 0, io.EOF
	}
	return copy(buf, frame), nil
}

func (tr *pipeTransport) Write(frame []byte) (n int, e error) {
	tr.mutex.Lock()
	tr.frames = append(tr.frames, frame)
	tr.mutex.Unlock()
	tr.tx <- append([]byte(nil), frame...)
	return len(frame), nil
}

func (tr *pipeTransport) Close() error {
	tr.closer.Do(func() {
		tr.p.SetState(l3.TransportClosed)
		close(tr.tx)
	})
	return nil
}

func (tr *pipeTransport) sentFrames() [][]byte {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()
	return tr.frames
}
