package controller

import "errors"

var (
	// ErrNoDialer is returned when a Controller is configured without a
	// Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order
	// to establish the transport carrying the command stream.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNoBoard is returned when a Controller is configured without a
	// Board.
	//
	// The Controller has nothing to drive without one; use SimBoard when
	// no hardware is attached.
	ErrNoBoard = errors.New("no board configured")

	// ErrAlreadyClosed is returned when Close is called on a Controller
	// that has already been closed.
	ErrAlreadyClosed = errors.New("controller already closed")

	// ErrAlreadyRunning is returned by Run when the command loop is
	// already active. The loop owns the transport reader and must not be
	// entered twice.
	ErrAlreadyRunning = errors.New("command loop already running")
)
