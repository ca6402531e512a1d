package session

// Event is a normalized pointer action delivered to the session. The editor
// front end translates raw device input into these before handing them over,
// which keeps the tool state machine testable without a window.
type Event interface{ isEvent() }

// PointerDown is a primary-button press at a screen position.
type PointerDown struct {
	X, Y float64
}

// PointerMove is pointer motion while the primary button is held.
type PointerMove struct {
	X, Y float64
}

// PointerUp is the primary-button release.
type PointerUp struct {
	X, Y float64
}

// PointerDrag is secondary (pan) dragging by a screen-space delta.
type PointerDrag struct {
	DX, DY float64
}

// Wheel is a scroll step at a screen position. Up is positive.
type Wheel struct {
	X, Y, Delta float64
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (PointerDrag) isEvent() {}
func (Wheel) isEvent()       {}
