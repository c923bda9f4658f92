package gesture

// Action is the kind of a motion event.
type Action int

// Motion event actions.
const (
	ActionDown Action = iota
	ActionUp
	ActionMove
	ActionCancel
	ActionPointerDown
	ActionPointerUp
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer-down"
	case ActionPointerUp:
		return "pointer-up"
	}
	return "unknown"
}

// Pointer is one pointer of a motion event.
type Pointer struct {
	ID int
	Y  float64
}

// MotionEvent is a pointer event delivered to a Machine.
type MotionEvent struct {
	Action Action
	// Index is the index into Pointers of the pointer that went down or up
	// for ActionPointerDown and ActionPointerUp.
	Index    int
	Pointers []Pointer
}

// NewMotionEvent returns a single-pointer event for pointer 0.
func NewMotionEvent(action Action, y float64) MotionEvent {
	return MotionEvent{
		Action:   action,
		Pointers: []Pointer{{ID: 0, Y: y}},
	}
}

// FindPointerIndex returns the index of the pointer with the given id, or -1.
func (e MotionEvent) FindPointerIndex(id int) int {
	if id == InvalidPointer {
		return -1
	}
	for index, pointer := range e.Pointers {
		if pointer.ID == id {
			return index
		}
	}
	return -1
}

// PointerID returns the id of the pointer at index, or InvalidPointer.
func (e MotionEvent) PointerID(index int) int {
	if index < 0 || index >= len(e.Pointers) {
		return InvalidPointer
	}
	return e.Pointers[index].ID
}

// y returns the Y coordinate of the pointer with the given id.
func (e MotionEvent) y(id int) (float64, bool) {
	index := e.FindPointerIndex(id)
	if index < 0 {
		return 0, false
	}
	return e.Pointers[index].Y, true
}
