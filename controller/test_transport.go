package controller

import (
	"io"
	"strings"
	"sync"
)

// TestTransport is a test helper that simulates a blocking transport using
// channels. The command loop continuously reads from the transport, so
// reads must block until data is available (like a real serial port would).
// Everything written by the Controller is captured for assertions.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	written  strings.Builder
	ready    bool
	closed   bool
}

// NewTestTransport creates a transport that reports ready immediately.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 10),
		ready:    true,
	}
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	data, ok := <-t.readChan
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.written.Write(p)
	return len(p), nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// Ready implements ReadyReporter.
func (t *TestTransport) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ready
}

// SetReady flips the readiness predicate, for tests covering the startup
// wait.
func (t *TestTransport) SetReady(ready bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ready = ready
}

// SendData queues data to be read by the command loop. This simulates the
// host typing on the serial line.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- []byte(data)
	}
}

// Written returns everything the Controller has written so far.
func (t *TestTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written.String()
}
