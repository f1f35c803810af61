package proto

import (
	"bufio"
	"bytes"
)

// Splitter tokenizes the board's response stream into lines. It uses the
// signature of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// The firmware terminates every response with '\n', but '\r' is accepted
// too so the splitter works against terminals and firmwares that emit CRLF.
// The second half of a CRLF pair comes out as an empty token, which callers
// should skip (the same empty tokens appear between keep-alive blank lines).
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining unterminated data is returned as a final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		adv := i + 1
		if data[i] == CR {
			if adv == len(data) && !atEOF {
				// A LF may still follow; wait for it so CRLF yields
				// one token instead of a line plus an empty token.
				return 0, nil, nil
			}
			if adv < len(data) && data[adv] == LF {
				adv++
			}
		}
		return adv, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter
