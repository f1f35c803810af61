package controller

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adamlipecz/pico-automation-hat/proto"
)

// Session parses and executes command lines against a Board.
//
// A Session owns the shadow state for the write-only channels and is the
// only place protocol semantics live: tokenizing, index validation, value
// parsing and response formatting. It is not safe for concurrent use; the
// Controller serializes access for callers with multiple entry points.
type Session struct {
	board   Board
	state   *shadowState
	version string
}

// NewSession creates a Session for the given board. The version string is
// what VERSION reports. All relays start off and all outputs at 0, matching
// the hardware's power-on state.
func NewSession(board Board, version string) *Session {
	return &Session{
		board:   board,
		state:   newShadowState(board.NumRelays(), board.NumOutputs()),
		version: version,
	}
}

// Exec processes one raw command line and returns the response text without
// a trailing terminator. An empty string means no response at all (blank
// and comment lines). HELP is the only response containing embedded
// newlines.
func (s *Session) Exec(line string) string {
	// Case-insensitivity: uppercase the whole line once, then match
	// keywords and value tokens against uppercase literals only.
	p := skipSpace(strings.ToUpper(line))

	if p == "" || p[0] == proto.CommentChar {
		return ""
	}

	switch {
	case strings.HasPrefix(p, proto.KwRelay):
		return s.cmdRelay(p[len(proto.KwRelay):])
	case strings.HasPrefix(p, proto.KwOutput):
		return s.cmdOutput(p[len(proto.KwOutput):])
	case strings.HasPrefix(p, proto.KwInput):
		return s.cmdInput(p[len(proto.KwInput):])
	case strings.HasPrefix(p, proto.KwADC):
		return s.cmdADC(p[len(proto.KwADC):])
	case strings.HasPrefix(p, proto.KwLED):
		return s.cmdLED(p[len(proto.KwLED):])
	case strings.HasPrefix(p, proto.KwButton):
		return s.cmdButton(p[len(proto.KwButton):])
	case strings.HasPrefix(p, proto.KwStatus):
		return s.cmdStatus()
	case strings.HasPrefix(p, proto.KwReset):
		return s.cmdReset()
	case strings.HasPrefix(p, proto.KwVersion):
		return proto.OK + " " + s.version
	case strings.HasPrefix(p, proto.KwPing):
		return proto.OK + " PONG"
	case strings.HasPrefix(p, proto.KwHelp):
		return s.cmdHelp()
	default:
		return proto.Err + " Unknown command"
	}
}

func (s *Session) cmdRelay(args string) string {
	args = skipSpace(args)
	if args == "" {
		return proto.Err + " RELAY requires arguments"
	}

	n, rest := scanInt(args)
	index := n - 1
	if index < 0 || index >= s.board.NumRelays() {
		return fmt.Sprintf("%s Relay index out of range (1-%d)", proto.Err, s.board.NumRelays())
	}

	rest = skipSpace(rest)
	switch {
	case strings.HasPrefix(rest, "?"):
		if s.state.relay(index) {
			return proto.OK + " ON"
		}
		return proto.OK + " OFF"

	case hasAnyPrefix(rest, "ON", "1", "TRUE", "HIGH"):
		if err := s.board.SetRelay(index, true); err != nil {
			return hardwareFault(err)
		}
		s.state.setRelay(index, true)
		return proto.OK

	case hasAnyPrefix(rest, "OFF", "0", "FALSE", "LOW"):
		if err := s.board.SetRelay(index, false); err != nil {
			return hardwareFault(err)
		}
		s.state.setRelay(index, false)
		return proto.OK

	default:
		return proto.Err + " RELAY requires ON or OFF"
	}
}

func (s *Session) cmdOutput(args string) string {
	args = skipSpace(args)
	if args == "" {
		return proto.Err + " OUTPUT requires arguments"
	}

	n, rest := scanInt(args)
	index := n - 1
	if index < 0 || index >= s.board.NumOutputs() {
		return fmt.Sprintf("%s Output index out of range (1-%d)", proto.Err, s.board.NumOutputs())
	}

	rest = skipSpace(rest)
	switch {
	case strings.HasPrefix(rest, "?"):
		return fmt.Sprintf("%s %d", proto.OK, outputPercent(s.state.output(index)))

	case hasAnyPrefix(rest, "ON", "TRUE", "HIGH"):
		if err := s.board.SetOutput(index, 1.0); err != nil {
			return hardwareFault(err)
		}
		s.state.setOutput(index, 1.0)
		return proto.OK

	case hasAnyPrefix(rest, "OFF", "FALSE", "LOW"):
		if err := s.board.SetOutput(index, 0.0); err != nil {
			return hardwareFault(err)
		}
		s.state.setOutput(index, 0.0)
		return proto.OK

	case rest != "" && isDigit(rest[0]):
		percent, _ := scanInt(rest)
		if percent > 100 {
			percent = 100
		}
		level := float64(percent) / 100.0
		if err := s.board.SetOutput(index, level); err != nil {
			return hardwareFault(err)
		}
		s.state.setOutput(index, level)
		return proto.OK

	default:
		return proto.Err + " OUTPUT requires value (0-100 or ON/OFF)"
	}
}

func (s *Session) cmdInput(args string) string {
	args = skipSpace(args)
	if args == "" {
		return proto.Err + " INPUT requires index"
	}

	n, _ := scanInt(args)
	index := n - 1
	if index < 0 || index >= s.board.NumInputs() {
		return fmt.Sprintf("%s Input index out of range (1-%d)", proto.Err, s.board.NumInputs())
	}

	high, err := s.board.ReadInput(index)
	if err != nil {
		return hardwareFault(err)
	}
	if high {
		return proto.OK + " HIGH"
	}
	return proto.OK + " LOW"
}

func (s *Session) cmdADC(args string) string {
	args = skipSpace(args)
	if args == "" {
		return proto.Err + " ADC requires index"
	}

	n, _ := scanInt(args)
	index := n - 1
	if index < 0 || index >= s.board.NumADCs() {
		return fmt.Sprintf("%s ADC index out of range (1-%d)", proto.Err, s.board.NumADCs())
	}

	voltage, err := s.board.ReadADC(index)
	if err != nil {
		return hardwareFault(err)
	}
	return fmt.Sprintf("%s %.3f", proto.OK, voltage)
}

func (s *Session) cmdLED(args string) string {
	args = skipSpace(args)
	if args == "" {
		return proto.Err + " LED requires button (A/B) and brightness"
	}

	button, ok := parseButton(args[0])
	if !ok {
		return proto.Err + " LED button must be A or B"
	}

	rest := skipSpace(args[1:])
	if rest == "" || !isDigit(rest[0]) {
		return proto.Err + " LED requires brightness (0-100)"
	}

	brightness, _ := scanInt(rest)
	if brightness > 100 {
		brightness = 100
	}
	if err := s.board.SetButtonLED(button, brightness); err != nil {
		return hardwareFault(err)
	}
	return proto.OK
}

func (s *Session) cmdButton(args string) string {
	args = skipSpace(args)
	if args == "" {
		return proto.Err + " BUTTON requires button (A/B)"
	}

	button, ok := parseButton(args[0])
	if !ok {
		return proto.Err + " BUTTON must be A or B"
	}

	pressed, err := s.board.ReadButton(button)
	if err != nil {
		return hardwareFault(err)
	}
	if pressed {
		return proto.OK + " PRESSED"
	}
	return proto.OK + " RELEASED"
}

// cmdStatus renders the full I/O snapshot as one JSON line. The object is
// built by hand so the field order and numeric formatting (one decimal for
// output percentages, three for ADC volts) stay bit-exact on the wire;
// encoding/json would trim trailing zeros.
func (s *Session) cmdStatus() string {
	var b strings.Builder

	b.WriteString(`{"relays":[`)
	for i := 0; i < s.board.NumRelays(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatBool(s.state.relay(i)))
	}

	b.WriteString(`],"outputs":[`)
	for i := 0; i < s.board.NumOutputs(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%.1f", s.state.output(i)*100)
	}

	b.WriteString(`],"inputs":[`)
	for i := 0; i < s.board.NumInputs(); i++ {
		high, err := s.board.ReadInput(i)
		if err != nil {
			return hardwareFault(err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatBool(high))
	}

	b.WriteString(`],"adcs":[`)
	for i := 0; i < s.board.NumADCs(); i++ {
		voltage, err := s.board.ReadADC(i)
		if err != nil {
			return hardwareFault(err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%.3f", voltage)
	}

	a, err := s.board.ReadButton(ButtonA)
	if err != nil {
		return hardwareFault(err)
	}
	pb, err := s.board.ReadButton(ButtonB)
	if err != nil {
		return hardwareFault(err)
	}
	fmt.Fprintf(&b, `],"buttons":{"a":%t,"b":%t}}`, a, pb)

	return b.String()
}

// cmdReset drives every channel to its safe state: relays off, outputs 0,
// both button LEDs dark. Shadow state follows each successful hardware
// write, so a mid-sequence fault leaves shadow and hardware consistent for
// the channels already reset.
func (s *Session) cmdReset() string {
	for i := 0; i < s.board.NumRelays(); i++ {
		if err := s.board.SetRelay(i, false); err != nil {
			return hardwareFault(err)
		}
		s.state.setRelay(i, false)
	}
	for i := 0; i < s.board.NumOutputs(); i++ {
		if err := s.board.SetOutput(i, 0.0); err != nil {
			return hardwareFault(err)
		}
		s.state.setOutput(i, 0.0)
	}
	for _, button := range []Button{ButtonA, ButtonB} {
		if err := s.board.SetButtonLED(button, 0); err != nil {
			return hardwareFault(err)
		}
	}
	return proto.OK
}

func (s *Session) cmdHelp() string {
	return fmt.Sprintf(`%s Commands:
RELAY <n> <ON|OFF>   - Set relay (1-%d)
RELAY <n>?           - Query relay state
OUTPUT <n> <0-100>   - Set output PWM %% (1-%d)
OUTPUT <n> <ON|OFF>  - Set output full on/off
OUTPUT <n>?          - Query output state
INPUT <n>?           - Query input (1-%d)
ADC <n>?             - Query ADC voltage (1-%d)
LED <A|B> <0-100>    - Set button LED brightness
BUTTON <A|B>?        - Query button state
STATUS               - Get all states as JSON
RESET                - Reset to safe state
VERSION              - Show firmware version
PING                 - Test connection`,
		proto.OK,
		s.board.NumRelays(),
		s.board.NumOutputs(),
		s.board.NumInputs(),
		s.board.NumADCs())
}

func hardwareFault(err error) string {
	return proto.Err + " Hardware fault: " + err.Error()
}

// outputPercent converts a stored fraction back to the integer percentage
// reported by OUTPUT queries. Rounding keeps the set/query round-trip exact
// for every percentage; truncating level*100 would drop 29 and 57, whose
// fractions are not exactly representable.
func outputPercent(level float64) int {
	return int(math.Round(level * 100))
}

func parseButton(c byte) (Button, bool) {
	switch c {
	case 'A':
		return ButtonA, true
	case 'B':
		return ButtonB, true
	default:
		return 0, false
	}
}

func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t\v\f")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanInt consumes leading decimal digits and returns the value plus the
// unconsumed remainder. No digits parse as 0, which then fails the 1-based
// index check downstream. The value saturates far above any channel count
// or percentage so absurd inputs cannot overflow.
func scanInt(s string) (int, string) {
	const saturate = 1 << 24
	i, n := 0, 0
	for i < len(s) && isDigit(s[i]) {
		if n < saturate {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	return n, s[i:]
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
