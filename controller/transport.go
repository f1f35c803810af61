package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=controller

// Transport is an established, bidirectional byte stream carrying the
// command protocol.
//
// A Transport is assumed to be already connected and ready for use. Reads
// are expected to be polling-friendly: returning (0, nil) after a short
// timeout is fine and keeps the command loop responsive to cancellation.
// Typical implementations are serial ports (USB CDC, UART) and in-memory
// fakes used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// ReadyReporter is optionally implemented by a Transport whose far side may
// not be listening yet (a USB CDC port with no terminal attached, for
// example). The Controller polls Ready before emitting the startup banner
// and entering the command loop.
type ReadyReporter interface {
	Ready() bool
}

// Dialer opens a Transport.
//
// Dialer abstracts how the connection is created (serial port, pseudo
// terminal, or test double) and is used during Controller construction
// only. Once a Transport is obtained, the Dialer is no longer needed.
type Dialer interface {
	// Dial creates and returns a connected Transport. It may block and
	// should respect cancellation and deadlines provided by the context.
	Dial(ctx context.Context) (Transport, error)
}

// SerialDialer opens the command transport on a serial port using
// go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyACM0".
	PortName string
	// Mode configures baud rate, parity, data and stop bits. Nil selects
	// 115200 8N1, the rate the board's USB CDC firmware uses.
	Mode *serial.Mode
	// ReadTimeout bounds a single blocking read. Zero selects 100ms,
	// which is the poll interval of the command loop.
	ReadTimeout time.Duration
}

// Dial opens the configured serial port and arms its read timeout.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("controller: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("controller: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: 115200,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", d.PortName, err)
	}

	timeout := d.ReadTimeout
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %q: %w", d.PortName, err)
	}

	return port, nil
}
