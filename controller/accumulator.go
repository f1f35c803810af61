package controller

import "github.com/adamlipecz/pico-automation-hat/proto"

// lineAccumulator buffers incoming bytes until a line terminator arrives.
//
// Capacity is fixed at proto.MaxLineLen. Once the buffer is full, further
// bytes are silently dropped until the next terminator, at which point the
// truncated line is emitted as-is, matching the firmware's fixed command
// buffer.
type lineAccumulator struct {
	buf [proto.MaxLineLen]byte
	n   int
}

// Feed consumes one byte. When the byte completes a line, Feed returns the
// accumulated text (terminator excluded) and true, and resets the buffer.
// A terminator on an empty buffer is a no-op, which makes CRLF pairs and
// bare newlines harmless.
func (a *lineAccumulator) Feed(c byte) (line string, complete bool) {
	switch c {
	case proto.LF, proto.CR:
		if a.n == 0 {
			return "", false
		}
		line = string(a.buf[:a.n])
		a.n = 0
		return line, true
	default:
		if a.n < len(a.buf) {
			a.buf[a.n] = c
			a.n++
		}
		return "", false
	}
}
