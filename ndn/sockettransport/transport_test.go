package sockettransport_test

import (
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gabstv/freeport"
	"github.com/usnistgov/ndnlp/core/testenv"
	"github.com/usnistgov/ndnlp/ndn/l3"
	"github.com/usnistgov/ndnlp/ndn/ndntestenv"
	"github.com/usnistgov/ndnlp/ndn/sockettransport"
)

var makeAR = testenv.MakeAR

func TestPipe(t *testing.T) {
	_, require := makeAR(t)

	trA, trB, e := sockettransport.Pipe(sockettransport.Config{})
	require.NoError(e)

	var c ndntestenv.L3FaceTester
	c.CheckTransport(t, trA, trB)
}

func TestPipeFragmentation(t *testing.T) {
	_, require := makeAR(t)

	trA, trB, e := sockettransport.Pipe(sockettransport.Config{MTU: 200})
	require.NoError(e)

	c := ndntestenv.L3FaceTester{Count: 200}
	c.CheckTransport(t, trA, trB)
}

func TestUDP(t *testing.T) {
	assert, require := makeAR(t)

	portA, e := freeport.TCP()
	require.NoError(e)
	portB, e := freeport.TCP()
	require.NoError(e)
	addrA, addrB := fmt.Sprintf("127.0.0.1:%d", portA), fmt.Sprintf("127.0.0.1:%d", portB)

	dialer := sockettransport.Dialer{Config: sockettransport.Config{MTU: 1400}}
	trA, e := dialer.Dial("udp", addrA, addrB)
	require.NoError(e)
	trB, e := dialer.Dial("udp", addrB, addrA)
	require.NoError(e)
	assert.Equal(1400, trA.MTU())

	// SO_REUSEPORT allows another socket on the same local address
	trC, e := dialer.Dial("udp", addrA, "127.0.0.1:9")
	if assert.NoError(e) {
		assert.NoError(trC.Close())
	}

	var c ndntestenv.L3FaceTester
	c.CheckTransport(t, trA, trB)
}

func TestTCP(t *testing.T) {
	_, require := makeAR(t)

	listener, e := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(e)
	defer listener.Close()

	checkStream(t, listener)
}

func TestUnix(t *testing.T) {
	_, require := makeAR(t)
	addr := filepath.Join(t.TempDir(), "unix.sock")

	listener, e := net.Listen("unix", addr)
	require.NoError(e)
	defer listener.Close()

	checkStream(t, listener)
}

func checkStream(t *testing.T, listener net.Listener) {
	_, require := makeAR(t)

	var trA, trB sockettransport.Transport
	var eA, eB error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		listenAddr := listener.Addr()
		trA, eA = sockettransport.Dial(listenAddr.Network(), "", listenAddr.String())
	}()

	go func() {
		defer wg.Done()
		socket, e := listener.Accept()
		if e != nil {
			eB = e
			return
		}
		trB, eB = sockettransport.New(socket, sockettransport.Config{})
	}()

	wg.Wait()
	require.NoError(eA)
	require.NoError(eB)

	var c ndntestenv.L3FaceTester
	c.CheckTransport(t, trA, trB)
}

func TestStreamFraming(t *testing.T) {
	assert, require := makeAR(t)

	listener, e := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(e)
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		socket, e := listener.Accept()
		if e == nil {
			accepted <- socket
		}
		close(accepted)
	}()

	tr, e := sockettransport.Dial("tcp", "", listener.Addr().String())
	require.NoError(e)
	defer tr.Close()
	peer := <-accepted
	require.NotNil(peer)
	defer peer.Close()

	// two elements split across writes
	go func() {
		peer.Write([]byte{0x64, 0x04, 0x50})
		time.Sleep(10 * time.Millisecond)
		peer.Write([]byte{0x02, 0x08, 0x00, 0x64})
		time.Sleep(10 * time.Millisecond)
		peer.Write([]byte{0x00})
	}()

	buf := make([]byte, 64)
	n, e := tr.Read(buf)
	require.NoError(e)
	assert.Equal([]byte{0x64, 0x04, 0x50, 0x02, 0x08, 0x00}, buf[:n])
	n, e = tr.Read(buf)
	require.NoError(e)
	assert.Equal([]byte{0x64, 0x00}, buf[:n])
	assert.Equal(l3.TransportUp, tr.State())
}

func TestStreamDropLong(t *testing.T) {
	assert, require := makeAR(t)

	listener, e := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(e)
	defer listener.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		socket, e := listener.Accept()
		if e == nil {
			accepted <- socket
		}
		close(accepted)
	}()

	dialer := sockettransport.Dialer{Config: sockettransport.Config{RxBufferLength: 1024}}
	tr, e := dialer.Dial("tcp", "", listener.Addr().String())
	require.NoError(e)
	defer tr.Close()
	peer := <-accepted
	require.NotNil(peer)
	defer peer.Close()

	long := append([]byte{0x64, 0xFD, 0x07, 0xD0}, make([]byte, 2000)...)
	go func() {
		peer.Write(long[:1500])
		time.Sleep(10 * time.Millisecond)
		peer.Write(append(long[1500:], 0x64, 0x02, 0x50, 0x00))
	}()

	received := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 1024)
		n, e := tr.Read(buf)
		if e != nil {
			close(received)
			return
		}
		received <- buf[:n]
	}()

	select {
	case frame, ok := <-received:
		require.True(ok)
		assert.Equal([]byte{0x64, 0x02, 0x50, 0x00}, frame)
	case <-time.After(2 * time.Second):
		require.FailNow("no frame after long element")
	}
	assert.Zero(tr.Counters().NRedials)
	assert.Equal(l3.TransportUp, tr.State())
}

func TestPipeClose(t *testing.T) {
	assert, require := makeAR(t)

	trA, trB, e := sockettransport.Pipe(sockettransport.Config{})
	require.NoError(e)

	var states []l3.TransportState
	var mutex sync.Mutex
	trB.OnStateChange(func(st l3.TransportState) {
		mutex.Lock()
		defer mutex.Unlock()
		states = append(states, st)
	})

	assert.NoError(trA.Close())
	assert.Equal(l3.TransportClosed, trA.State())

	buf := make([]byte, 64)
	_, e = trB.Read(buf)
	assert.Error(e)
	assert.Equal(l3.TransportClosed, trB.State())

	mutex.Lock()
	defer mutex.Unlock()
	assert.Equal([]l3.TransportState{l3.TransportDown, l3.TransportClosed}, states)
	assert.EqualValues(1, trB.Counters().NRedials)
}

func TestUnknownNetwork(t *testing.T) {
	assert, _ := makeAR(t)

	_, e := sockettransport.Dial("sctp", "", "127.0.0.1:6363")
	assert.ErrorIs(e, sockettransport.ErrUnknownNetwork)
	_, e = sockettransport.Dial("pipe", "", "")
	assert.Error(e)
}

func TestConfigJSON(t *testing.T) {
	assert, require := makeAR(t)

	var cfg sockettransport.Config
	require.NoError(json.Unmarshal([]byte(`{"mtu":1400,"redialBackoffInitial":"250ms","redialBackoffMaximum":2000}`), &cfg))
	assert.Equal(1400, cfg.MTU)
	assert.Equal(250*time.Millisecond, cfg.RedialBackoffInitial.Duration())
	assert.Equal(2*time.Second, cfg.RedialBackoffMaximum.Duration())
}

func TestRedialBackoff(t *testing.T) {
	assert, _ := makeAR(t)

	ms := time.Millisecond
	assert.Equal([]time.Duration{100 * ms, 200 * ms, 300 * ms, 300 * ms},
		sockettransport.RedialBackoffSequence(sockettransport.Config{RedialBackoffMaximum: 300}, 4))
	assert.Equal([]time.Duration{500 * ms, 500 * ms},
		sockettransport.RedialBackoffSequence(sockettransport.Config{RedialBackoffInitial: 500, RedialBackoffMaximum: 200}, 2))
}
