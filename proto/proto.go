package proto

// Wire protocol constants for the Automation 2040 W command protocol.
//
// Commands are newline-terminated ASCII lines, matched case-insensitively.
// Every response is a single line starting with OK or ERR, except STATUS
// (a single JSON line) and HELP (multiple lines). Blank lines and lines
// whose first non-space character is '#' produce no response.

const (
	// Line terminators. Either one alone ends a command; CRLF pairs are
	// tolerated because the terminator seen second lands on an empty
	// buffer and is ignored.
	LF = '\n'
	CR = '\r'

	// CommentChar marks a line to be silently discarded.
	CommentChar = '#'

	// Response prefixes.
	OK  = "OK"
	Err = "ERR"

	// MaxLineLen is the capacity of the command line buffer in bytes.
	// Bytes arriving on a full buffer are dropped until the next
	// terminator, at which point the truncated line is processed as-is.
	MaxLineLen = 256
)

// Command keywords, in dispatch order.
const (
	KwRelay   = "RELAY"
	KwOutput  = "OUTPUT"
	KwInput   = "INPUT"
	KwADC     = "ADC"
	KwLED     = "LED"
	KwButton  = "BUTTON"
	KwStatus  = "STATUS"
	KwReset   = "RESET"
	KwVersion = "VERSION"
	KwPing    = "PING"
	KwHelp    = "HELP"
)
