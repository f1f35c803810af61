// Package client speaks the Automation 2040 W command protocol from the
// host side of the serial link.
//
// It wraps the line-oriented wire protocol in typed calls:
//
//	c, err := client.DialSerial("/dev/ttyACM0", 115200)
//	if err != nil { ... }
//	defer c.Close()
//
//	if err := c.SetRelay(1, true); err != nil { ... }
//	volts, err := c.ADC(2)
//
// Protocol errors (ERR responses from the board) are returned as
// *CommandError values; transport failures come back as ordinary wrapped
// errors.
package client

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/adamlipecz/pico-automation-hat/proto"
)

// CommandError is an ERR response from the board, with the ERR prefix
// stripped.
type CommandError struct {
	Message string
}

func (e *CommandError) Error() string { return e.Message }

var (
	// ErrUnexpectedResponse is returned when the board replies with a
	// line that is neither OK, ERR nor a STATUS object.
	ErrUnexpectedResponse = errors.New("unexpected response from board")
)

// Status is the decoded STATUS snapshot. Field order on the wire is fixed;
// array lengths equal the board's channel counts.
type Status struct {
	Relays  []bool    `json:"relays"`
	Outputs []float64 `json:"outputs"` // percent, one decimal
	Inputs  []bool    `json:"inputs"`
	ADCs    []float64 `json:"adcs"` // volts
	Buttons struct {
		A bool `json:"a"`
		B bool `json:"b"`
	} `json:"buttons"`
}

// Client is a host-side connection to a board running the control
// firmware. It is safe for concurrent use; commands are serialized.
type Client struct {
	mu        sync.Mutex
	transport io.ReadWriteCloser
	scanner   *bufio.Scanner
}

// New wraps an established transport. The caller keeps ownership of
// nothing: Close closes the transport.
func New(transport io.ReadWriteCloser) *Client {
	scanner := bufio.NewScanner(transport)
	scanner.Split(proto.Splitter)
	return &Client{
		transport: transport,
		scanner:   scanner,
	}
}

// DialSerial opens a serial connection to the board and returns a Client.
// The firmware's USB CDC port runs at 115200 8N1; pass a different baud
// rate for UART setups.
func DialSerial(portName string, baudRate int) (*Client, error) {
	if portName == "" {
		return nil, errors.New("client: serial port name is required")
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", portName, err)
	}
	if err := port.SetReadTimeout(2 * time.Second); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %q: %w", portName, err)
	}
	return New(port), nil
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// exec writes one command line and returns the response payload: "" for a
// bare OK, the text after "OK " for data responses, or the raw JSON object
// for STATUS. Banner and comment lines from the board are skipped, as are
// the blank tokens a CRLF terminator produces.
func (c *Client) exec(command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.transport.Write([]byte(command + "\n")); err != nil {
		return "", fmt.Errorf("write command %q: %w", command, err)
	}

	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" || line[0] == proto.CommentChar {
			continue
		}
		switch {
		case line == proto.OK:
			return "", nil
		case strings.HasPrefix(line, proto.OK+" "):
			return line[len(proto.OK)+1:], nil
		case strings.HasPrefix(line, proto.Err+" "):
			return "", &CommandError{Message: line[len(proto.Err)+1:]}
		case line[0] == '{':
			return line, nil
		default:
			return "", fmt.Errorf("%w: %q", ErrUnexpectedResponse, line)
		}
	}
	if err := c.scanner.Err(); err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return "", io.EOF
}

// SetRelay switches relay n (1-based) on or off.
func (c *Client) SetRelay(n int, on bool) error {
	state := "OFF"
	if on {
		state = "ON"
	}
	_, err := c.exec(fmt.Sprintf("RELAY %d %s", n, state))
	return err
}

// Relay reports the last commanded state of relay n.
func (c *Client) Relay(n int) (bool, error) {
	resp, err := c.exec(fmt.Sprintf("RELAY %d?", n))
	if err != nil {
		return false, err
	}
	return resp == "ON", nil
}

// SetOutput drives output n with a PWM percentage in [0, 100].
func (c *Client) SetOutput(n, percent int) error {
	_, err := c.exec(fmt.Sprintf("OUTPUT %d %d", n, percent))
	return err
}

// Output reports the last commanded PWM percentage of output n.
func (c *Client) Output(n int) (int, error) {
	resp, err := c.exec(fmt.Sprintf("OUTPUT %d?", n))
	if err != nil {
		return 0, err
	}
	percent, err := strconv.Atoi(resp)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedResponse, resp)
	}
	return percent, nil
}

// Input reads digital input n; true means high.
func (c *Client) Input(n int) (bool, error) {
	resp, err := c.exec(fmt.Sprintf("INPUT %d?", n))
	if err != nil {
		return false, err
	}
	return resp == "HIGH", nil
}

// ADC reads the voltage on ADC channel n.
func (c *Client) ADC(n int) (float64, error) {
	resp, err := c.exec(fmt.Sprintf("ADC %d?", n))
	if err != nil {
		return 0, err
	}
	volts, err := strconv.ParseFloat(resp, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedResponse, resp)
	}
	return volts, nil
}

// SetLED sets a button LED brightness; button is "A" or "B", brightness
// a percentage in [0, 100].
func (c *Client) SetLED(button string, brightness int) error {
	_, err := c.exec(fmt.Sprintf("LED %s %d", button, brightness))
	return err
}

// Button reads a button; true means pressed.
func (c *Client) Button(button string) (bool, error) {
	resp, err := c.exec(fmt.Sprintf("BUTTON %s?", button))
	if err != nil {
		return false, err
	}
	return resp == "PRESSED", nil
}

// Status fetches the full I/O snapshot.
func (c *Client) Status() (Status, error) {
	resp, err := c.exec("STATUS")
	if err != nil {
		return Status{}, err
	}
	var status Status
	if err := json.Unmarshal([]byte(resp), &status); err != nil {
		return Status{}, fmt.Errorf("decode status %q: %w", resp, err)
	}
	return status, nil
}

// Reset returns every relay, output and button LED to the safe state.
func (c *Client) Reset() error {
	_, err := c.exec("RESET")
	return err
}

// Version returns the firmware version string.
func (c *Client) Version() (string, error) {
	return c.exec("VERSION")
}

// Ping checks the link; it fails unless the board answers PONG.
func (c *Client) Ping() error {
	resp, err := c.exec("PING")
	if err != nil {
		return err
	}
	if resp != "PONG" {
		return fmt.Errorf("%w: %q", ErrUnexpectedResponse, resp)
	}
	return nil
}
