package window

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventScroll
)

// Key is a backend independent key code for the keys the demo binds.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyF12
	Key1
	Key2
	KeyR
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Mouse buttons.
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int // resize, in framebuffer pixels
	Height int
	MouseX int
	MouseY int
	Button uint8
	Scroll float32
}

// Queue collects the events of one frame.
type Queue struct {
	events []Event
	quit   bool
}

// Push appends an event. A quit event latches Quit.
func (q *Queue) Push(e Event) {
	if e.Type == EventQuit {
		q.quit = true
	}
	q.events = append(q.events, e)
}

// Reset clears the events of the previous frame. Quit stays latched.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}

// Events returns the events pushed since the last Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// Quit reports whether a quit event was seen.
func (q *Queue) Quit() bool {
	return q.quit
}

// Pressed reports whether key went down this frame.
func (q *Queue) Pressed(key Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// Resized returns the last framebuffer size reported this frame.
func (q *Queue) Resized() (width, height int, ok bool) {
	for i := len(q.events) - 1; i >= 0; i-- {
		if e := q.events[i]; e.Type == EventResize {
			return e.Width, e.Height, true
		}
	}
	return 0, 0, false
}
