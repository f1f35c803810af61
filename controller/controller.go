package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/adamlipecz/pico-automation-hat/proto"
)

// Controller ties a Session to a Transport and runs the command loop.
//
// The loop reads bytes from the transport, accumulates them into lines and
// executes each completed command before reading on, so at most one command
// is ever in flight. Side channels (HTTP, MQTT) enter through Exec, which
// shares one mutex with the loop; the lock covers a full command's
// read-modify-write sequence, preserving the one-in-flight invariant.
type Controller struct {
	config    Config
	transport Transport
	session   *Session
	logger    *slog.Logger

	// mu serializes command execution across all entry points.
	mu      sync.Mutex
	acc     lineAccumulator
	running bool
	closed  bool
}

// New dials the transport and prepares a Controller. Call Run to start
// serving commands.
func New(ctx context.Context, config Config) (*Controller, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial transport: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		config:    config,
		transport: transport,
		session:   NewSession(config.Board, config.Version),
		logger:    logger,
	}, nil
}

// Run blocks until the transport reports ready, emits the startup banner
// and then serves commands until the context is cancelled or the transport
// fails. It returns io.EOF when the transport closes cleanly.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.running = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	if err := c.waitReady(ctx); err != nil {
		return err
	}
	c.writeBanner()

	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// A short read timeout on the transport turns this into a poll:
		// n == 0 just loops back to the cancellation check.
		n, err := c.transport.Read(buf)
		for _, b := range buf[:n] {
			if line, complete := c.acc.Feed(b); complete {
				c.serve(line)
			}
		}
		if err != nil {
			if err == io.EOF {
				c.logger.Info("Transport closed")
				return io.EOF
			}
			return fmt.Errorf("read transport: %w", err)
		}
	}
}

// Exec runs one command line to completion and returns its response text,
// empty for blank and comment lines. It is safe to call from any goroutine
// and from the HTTP/MQTT bridges while the serial loop is running.
func (c *Controller) Exec(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Exec(line)
}

// serve executes a line from the serial loop and writes the response back.
func (c *Controller) serve(line string) {
	response := c.Exec(line)
	if response == "" {
		return
	}
	if err := c.writeLine(response); err != nil {
		c.logger.Error("Failed to write response", "error", err)
	}
}

func (c *Controller) writeLine(line string) error {
	_, err := c.transport.Write(append([]byte(line), proto.LF))
	return err
}

// writeBanner emits the three informational comment lines and the ready
// notice. They are prefixed '#' so a host that connects mid-banner can
// discard them as comments.
func (c *Controller) writeBanner() {
	board := c.config.Board
	banner := fmt.Sprintf(
		"# Automation 2040 W Controller v%s\n# Relays: %d, Outputs: %d, Inputs: %d, ADCs: %d\n# Ready - type HELP for commands\n",
		c.config.Version,
		board.NumRelays(), board.NumOutputs(), board.NumInputs(), board.NumADCs())
	if _, err := c.transport.Write([]byte(banner)); err != nil {
		c.logger.Error("Failed to write banner", "error", err)
	}
}

// waitReady polls the transport's Ready predicate, if it has one, until it
// reports a connected peer.
func (c *Controller) waitReady(ctx context.Context) error {
	reporter, ok := c.transport.(ReadyReporter)
	if !ok || reporter.Ready() {
		return nil
	}

	c.logger.Info("Waiting for transport to become ready")
	ticker := time.NewTicker(c.config.ReadyPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if reporter.Ready() {
				return nil
			}
		}
	}
}

// Close shuts down the transport. After Close the Controller cannot be
// reused.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrAlreadyClosed
	}
	c.closed = true
	return c.transport.Close()
}
