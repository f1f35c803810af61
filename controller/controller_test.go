package controller_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/adamlipecz/pico-automation-hat/controller"
)

func newTestController(t *testing.T) (*controller.Controller, *controller.TestTransport, *controller.SimBoard) {
	t.Helper()

	transport := controller.NewTestTransport()
	board := controller.NewSimBoard(controller.StandardBoard)

	ctrl := gomock.NewController(t)
	dialer := controller.NewMockDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any()).Return(transport, nil)

	config, err := controller.NewConfigBuilder().
		WithDialer(dialer).
		WithBoard(board).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	c, err := controller.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	return c, transport, board
}

// waitForOutput polls the transport capture until the predicate holds or
// the deadline passes.
func waitForOutput(t *testing.T, transport *controller.TestTransport, predicate func(string) bool) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out := transport.Written(); predicate(out) {
			return out
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for output, have: %q", transport.Written())
	return ""
}

func TestControllerServesCommands(t *testing.T) {
	c, transport, _ := newTestController(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	// The banner must arrive before any response.
	banner := waitForOutput(t, transport, func(s string) bool {
		return strings.Contains(s, "# Ready - type HELP for commands\n")
	})
	if !strings.HasPrefix(banner, "# Automation 2040 W Controller v1.0.0\n") {
		t.Errorf("unexpected banner: %q", banner)
	}
	if !strings.Contains(banner, "# Relays: 3, Outputs: 3, Inputs: 4, ADCs: 3\n") {
		t.Errorf("banner missing channel counts: %q", banner)
	}

	transport.SendData("PING\r\n")
	waitForOutput(t, transport, func(s string) bool {
		return strings.Contains(s, "OK PONG\n")
	})

	// Bytes may arrive split across reads, mid-command.
	transport.SendData("RELAY 1")
	transport.SendData(" ON\n")
	waitForOutput(t, transport, func(s string) bool {
		return strings.HasSuffix(s, "OK PONG\nOK\n")
	})

	// Blank and comment lines produce no response.
	transport.SendData("\r\n# comment\nPING\n")
	out := waitForOutput(t, transport, func(s string) bool {
		return strings.HasSuffix(s, "OK PONG\n")
	})
	if strings.Contains(strings.TrimPrefix(out, banner), "#") {
		t.Errorf("comment line produced output: %q", out)
	}

	transport.Close()
	if err := <-done; !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after transport close, got: %v", err)
	}
}

func TestControllerExecSideChannel(t *testing.T) {
	c, transport, board := newTestController(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	waitForOutput(t, transport, func(s string) bool {
		return strings.Contains(s, "# Ready")
	})

	// Exec shares the session with the serial loop; a side-channel set
	// must be visible to a serial query.
	if got := c.Exec("RELAY 2 ON"); got != "OK" {
		t.Fatalf("Exec: expected OK, got %q", got)
	}
	if !board.Relay(1) {
		t.Error("Exec did not reach the driver")
	}

	transport.SendData("RELAY 2?\n")
	waitForOutput(t, transport, func(s string) bool {
		return strings.Contains(s, "OK ON\n")
	})

	transport.Close()
	<-done
}

func TestControllerWaitsForReady(t *testing.T) {
	transport := controller.NewTestTransport()
	transport.SetReady(false)
	board := controller.NewSimBoard(controller.StandardBoard)

	ctrl := gomock.NewController(t)
	dialer := controller.NewMockDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any()).Return(transport, nil)

	config, err := controller.NewConfigBuilder().
		WithDialer(dialer).
		WithBoard(board).
		WithReadyPollInterval(time.Millisecond).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}
	c, err := controller.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	// No banner while the far side is not listening.
	time.Sleep(20 * time.Millisecond)
	if out := transport.Written(); out != "" {
		t.Fatalf("banner emitted before transport ready: %q", out)
	}

	transport.SetReady(true)
	waitForOutput(t, transport, func(s string) bool {
		return strings.Contains(s, "# Ready")
	})

	transport.Close()
	<-done
}

func TestControllerRunTwice(t *testing.T) {
	c, transport, _ := newTestController(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	waitForOutput(t, transport, func(s string) bool {
		return strings.Contains(s, "# Ready")
	})

	if err := c.Run(ctx); !errors.Is(err, controller.ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got: %v", err)
	}

	transport.Close()
	<-done
}

func TestControllerClose(t *testing.T) {
	c, _, _ := newTestController(t)

	if err := c.Close(); err != nil {
		t.Errorf("unexpected error from Close(): %v", err)
	}
	if err := c.Close(); !errors.Is(err, controller.ErrAlreadyClosed) {
		t.Errorf("expected ErrAlreadyClosed, got: %v", err)
	}
}

func TestControllerNewDialerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := controller.NewMockDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any()).Return(nil, errors.New("connection failed"))

	config, err := controller.NewConfigBuilder().
		WithDialer(dialer).
		WithBoard(controller.NewSimBoard(controller.StandardBoard)).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	c, err := controller.New(context.Background(), config)
	if err == nil {
		t.Error("expected error from dialer failure")
	}
	if c != nil {
		t.Error("New() should return nil controller when dialer fails")
	}
}
