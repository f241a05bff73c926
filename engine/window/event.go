package window

// EventKind identifies a window event delivered to the event callback.
type EventKind int

const (
	// EventResize carries the new framebuffer size in Width and Height.
	EventResize EventKind = iota

	// EventScaleFactorChanged carries the new content scale in Scale and the framebuffer size in Width and Height.
	EventScaleFactorChanged

	// EventCloseRequested asks the application to stop.
	EventCloseRequested

	// EventRedrawRequested asks for one frame to be drawn.
	EventRedrawRequested

	// EventMainEventsCleared is sent once per message loop iteration after all other events.
	EventMainEventsCleared
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "Resize"
	case EventScaleFactorChanged:
		return "ScaleFactorChanged"
	case EventCloseRequested:
		return "CloseRequested"
	case EventRedrawRequested:
		return "RedrawRequested"
	case EventMainEventsCleared:
		return "MainEventsCleared"
	default:
		return "Unknown"
	}
}

// Event is a single window event.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
	Scale  float32
}
