package controller

// shadowState holds the last commanded value for the write-only channels.
//
// The hardware provides no read-back for relays or outputs, so these arrays
// are the single source of truth for RELAY/OUTPUT queries and for the
// relays/outputs fields of STATUS. They are mutated only after the
// corresponding hardware write has succeeded, and never by queries.
type shadowState struct {
	relays  []bool
	outputs []float64 // fraction in [0.0, 1.0]
}

func newShadowState(relays, outputs int) *shadowState {
	return &shadowState{
		relays:  make([]bool, relays),
		outputs: make([]float64, outputs),
	}
}

func (s *shadowState) relay(index int) bool { return s.relays[index] }

func (s *shadowState) setRelay(index int, on bool) { s.relays[index] = on }

func (s *shadowState) output(index int) float64 { return s.outputs[index] }

func (s *shadowState) setOutput(index int, level float64) { s.outputs[index] = level }
