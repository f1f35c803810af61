package controller

import (
	"fmt"
	"sync"
)

// SimBoard is an in-memory Board implementation.
//
// It lets the daemon run with no hardware attached and backs most tests.
// The Set*/Read* methods implement the driver side; the remaining methods
// are the "physical world": tests and simulations use them to wiggle
// inputs, set ADC voltages and press buttons, and to observe what the
// driver was told to do.
type SimBoard struct {
	spec BoardSpec

	mu      sync.Mutex
	relays  []bool
	outputs []float64
	inputs  []bool
	adcs    []float64
	leds    [2]int
	buttons [2]bool
}

// NewSimBoard creates a simulated board with the given channel counts.
// Everything starts off, low and at 0V.
func NewSimBoard(spec BoardSpec) *SimBoard {
	return &SimBoard{
		spec:    spec,
		relays:  make([]bool, spec.Relays),
		outputs: make([]float64, spec.Outputs),
		inputs:  make([]bool, spec.Inputs),
		adcs:    make([]float64, spec.ADCs),
	}
}

func (b *SimBoard) NumRelays() int  { return b.spec.Relays }
func (b *SimBoard) NumOutputs() int { return b.spec.Outputs }
func (b *SimBoard) NumInputs() int  { return b.spec.Inputs }
func (b *SimBoard) NumADCs() int    { return b.spec.ADCs }

func (b *SimBoard) SetRelay(index int, on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.relays) {
		return fmt.Errorf("relay index %d out of range", index)
	}
	b.relays[index] = on
	return nil
}

func (b *SimBoard) SetOutput(index int, level float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.outputs) {
		return fmt.Errorf("output index %d out of range", index)
	}
	b.outputs[index] = level
	return nil
}

func (b *SimBoard) ReadInput(index int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.inputs) {
		return false, fmt.Errorf("input index %d out of range", index)
	}
	return b.inputs[index], nil
}

func (b *SimBoard) ReadADC(index int) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.adcs) {
		return 0, fmt.Errorf("adc index %d out of range", index)
	}
	return b.adcs[index], nil
}

func (b *SimBoard) SetButtonLED(button Button, brightness int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.leds[button] = brightness
	return nil
}

func (b *SimBoard) ReadButton(button Button) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buttons[button], nil
}

// Relay reports the last driven relay state.
func (b *SimBoard) Relay(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.relays[index]
}

// Output reports the last driven PWM level.
func (b *SimBoard) Output(index int) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outputs[index]
}

// LED reports the last driven button LED brightness.
func (b *SimBoard) LED(button Button) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.leds[button]
}

// SetInput drives a simulated digital input high or low.
func (b *SimBoard) SetInput(index int, high bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inputs[index] = high
}

// SetADC sets the voltage a simulated ADC channel reads.
func (b *SimBoard) SetADC(index int, volts float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.adcs[index] = volts
}

// PressButton presses or releases a simulated button.
func (b *SimBoard) PressButton(button Button, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buttons[button] = pressed
}

var _ Board = (*SimBoard)(nil)
