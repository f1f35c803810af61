package controller

//go:generate go tool mockgen -source=board.go -destination=mock_board.go -package=controller

// Button identifies one of the two user switches on the front of the board.
type Button int

const (
	ButtonA Button = iota
	ButtonB
)

// String returns the protocol letter for the button.
func (b Button) String() string {
	if b == ButtonB {
		return "B"
	}
	return "A"
}

// BoardSpec describes the channel counts of a board variant.
type BoardSpec struct {
	Relays  int
	Outputs int
	Inputs  int
	ADCs    int
}

// Channel counts of the supported board variants.
var (
	// StandardBoard matches the Automation 2040 W.
	StandardBoard = BoardSpec{Relays: 3, Outputs: 3, Inputs: 4, ADCs: 3}
	// MiniBoard matches the Automation 2040 W Mini.
	MiniBoard = BoardSpec{Relays: 1, Outputs: 2, Inputs: 2, ADCs: 3}
)

// Board is the hardware driver for the automation I/O channels.
//
// Relays and outputs are write-only: the hardware offers no read-back for
// them, so the Session keeps shadow copies of the last commanded values and
// answers queries from those. Inputs, ADCs and buttons are read live.
//
// All operations are synchronous. Indices are 0-based and already
// validated against the channel counts by the caller; implementations may
// still reject them. A returned error is surfaced on the wire as a single
// "ERR Hardware fault: <reason>" line and leaves the shadow state untouched.
type Board interface {
	NumRelays() int
	NumOutputs() int
	NumInputs() int
	NumADCs() int

	// SetRelay energizes or releases relay index.
	SetRelay(index int, on bool) error
	// SetOutput drives output index with a PWM level in [0.0, 1.0].
	SetOutput(index int, level float64) error
	// ReadInput reports whether digital input index is high.
	ReadInput(index int) (bool, error)
	// ReadADC returns the voltage currently measured on ADC index.
	ReadADC(index int) (float64, error)
	// SetButtonLED sets a button LED brightness as a percentage in [0, 100].
	SetButtonLED(button Button, brightness int) error
	// ReadButton reports whether the button is currently pressed.
	ReadButton(button Button) (bool, error)
}
