package frame

// State is the frame driver's position in the per-tick cycle.
type State int

const (
	// StateIdle is between ticks.
	StateIdle State = iota

	// StateAcquiring is waiting for the next surface image.
	StateAcquiring

	// StateEncoding is recording and submitting the render pass.
	StateEncoding

	// StatePresenting is presenting the rendered image.
	StatePresenting

	// StateError is terminal. No further ticks run.
	StateError
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAcquiring:
		return "Acquiring"
	case StateEncoding:
		return "Encoding"
	case StatePresenting:
		return "Presenting"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
