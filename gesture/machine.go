package gesture

import (
	"math"
	"time"
)

// State is the authoritative gesture state. It is only changed by the
// Machine's event, tick and refresh transitions.
type State struct {
	// TotalDragDistance is the trigger distance in pixels.
	TotalDragDistance int
	// DragFraction is the drag progress relative to TotalDragDistance.
	DragFraction float64
	// OffsetTop mirrors the target's position after every reposition.
	OffsetTop int
	Refreshing bool
	// ActivePointer is the id of the tracked pointer or InvalidPointer.
	ActivePointer int
	Dragging      bool
	InitialY      float64
	// SavedPadding is the target's padding at bind time.
	SavedPadding Padding
}

// Options configures a Machine.
type Options struct {
	// TotalDragDistance is the trigger distance in pixels. Values below 1 are
	// replaced by 1.
	TotalDragDistance int
	// TouchSlop is the downward travel in pixels a pointer must exceed before
	// a drag begins.
	TouchSlop float64
	// Interpolator shapes the settle animations. Defaults to Decelerate{1}.
	Interpolator Interpolator
	// Now returns the current time for animation runs. Defaults to time.Now.
	Now func() time.Time
}

// Machine is the pull-to-refresh state machine of one container.
//
// It must be used from a single goroutine (the UI event loop).
type Machine struct {
	state    State
	target   Target
	bound    bool
	enabled  bool
	notify   bool
	listener Listener

	touchSlop    float64
	interpolator Interpolator
	now          func() time.Time

	// The running animation, if any. Starting a new one replaces it.
	run *AnimationRun
}

// New returns a machine pulling the given target. A nil target yields an
// inert machine.
func New(target Target, options Options) *Machine {
	m := &Machine{
		target:       target,
		enabled:      true,
		touchSlop:    options.TouchSlop,
		interpolator: options.Interpolator,
		now:          options.Now,
	}
	m.state.TotalDragDistance = max(options.TotalDragDistance, 1)
	m.state.ActivePointer = InvalidPointer
	if m.interpolator == nil {
		m.interpolator = Decelerate{Factor: 1}
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Bind binds the target if this has not happened yet, capturing its padding.
// It returns false if there is no target. Event and refresh methods bind
// implicitly; hosts call it on their first measurement pass.
func (m *Machine) Bind() bool {
	if m.target == nil {
		return false
	}
	if !m.bound {
		m.bound = true
		m.state.SavedPadding = m.target.Padding()
		m.state.OffsetTop = m.target.Top()
	}
	return true
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// SetRefreshListener registers the listener, replacing any previous one.
func (m *Machine) SetRefreshListener(listener Listener) {
	m.listener = listener
}

// SetEnabled enables or disables gesture interception.
func (m *Machine) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled returns whether the machine intercepts gestures.
func (m *Machine) Enabled() bool {
	return m.enabled
}

// SetTotalDragDistance sets the trigger distance in pixels.
func (m *Machine) SetTotalDragDistance(pixels int) {
	m.state.TotalDragDistance = max(pixels, 1)
}

// TotalDragDistance returns the trigger distance in pixels.
func (m *Machine) TotalDragDistance() int {
	return m.state.TotalDragDistance
}

// SetInterpolator replaces the interpolator used by subsequent animations.
func (m *Machine) SetInterpolator(interpolator Interpolator) {
	if interpolator == nil {
		interpolator = Decelerate{Factor: 1}
	}
	m.interpolator = interpolator
}

// Refreshing returns whether the machine is in the refreshing state.
func (m *Machine) Refreshing() bool {
	return m.state.Refreshing
}

// SetRefreshing forces the refreshing state. It is a no-op if the state
// already matches. Entering the state fires OnLoadingStarted; leaving it fires
// OnRefreshRequested and settles displaced content back to start.
func (m *Machine) SetRefreshing(refreshing bool) {
	if m.state.Refreshing != refreshing {
		m.setRefreshing(refreshing, true)
	}
}

func (m *Machine) setRefreshing(refreshing, notify bool) {
	if m.state.Refreshing == refreshing {
		return
	}
	m.notify = notify
	m.Bind()
	m.state.Refreshing = refreshing
	if refreshing {
		if m.listener != nil {
			m.listener.OnLoadingStarted()
		}
		return
	}
	if m.listener != nil {
		m.listener.OnRefreshRequested()
	}
	if m.target != nil && (m.state.OffsetTop != 0 || m.run != nil) {
		m.animateToStart()
	}
}

// Dispatch routes an event the way a container arbitrates touches with its
// content: it runs the interception phase until a drag begins and the drag
// phase afterwards. A press always starts over in the interception phase. It
// returns true if the event was taken away from the content.
func (m *Machine) Dispatch(event MotionEvent) bool {
	if !m.Bind() {
		return false
	}
	if m.state.Dragging && event.Action != ActionDown {
		return m.Touch(event)
	}
	return m.Intercept(event)
}

// Intercept runs the interception phase for an event the content has not yet
// seen. It returns true once a drag has begun.
func (m *Machine) Intercept(event MotionEvent) bool {
	if !m.Bind() || !m.enabled || m.target.CanScrollUp() || m.state.Refreshing {
		return false
	}

	switch event.Action {
	case ActionDown:
		m.resetToStart()
		m.state.ActivePointer = event.PointerID(0)
		m.state.Dragging = false
		y, ok := event.y(m.state.ActivePointer)
		if !ok {
			return false
		}
		m.state.InitialY = y
	case ActionMove:
		y, ok := event.y(m.state.ActivePointer)
		if !ok {
			return false
		}
		if y-m.state.InitialY > m.touchSlop && !m.state.Dragging {
			m.state.Dragging = true
		}
	case ActionUp, ActionCancel:
		m.state.Dragging = false
		m.state.ActivePointer = InvalidPointer
	case ActionPointerUp:
		m.secondaryPointerUp(event)
	}

	return m.state.Dragging
}

// Touch runs the drag phase. It returns false for events it leaves to the
// content, which includes every release.
func (m *Machine) Touch(event MotionEvent) bool {
	if !m.Bind() || !m.state.Dragging {
		return false
	}

	switch event.Action {
	case ActionMove:
		y, ok := event.y(m.state.ActivePointer)
		if !ok {
			return false
		}
		sample := Sample(y-m.state.InitialY, m.state.TotalDragDistance)
		if !sample.Valid() {
			return false
		}
		m.state.DragFraction = sample.DragFraction
		m.setTargetOffsetTop(sample.TargetOffset - m.state.OffsetTop)
	case ActionPointerDown:
		m.state.ActivePointer = event.PointerID(event.Index)
	case ActionPointerUp:
		m.secondaryPointerUp(event)
	case ActionUp, ActionCancel:
		if m.state.ActivePointer == InvalidPointer {
			m.state.Dragging = false
			m.animateToStart()
			return false
		}
		y, ok := event.y(m.state.ActivePointer)
		m.state.Dragging = false
		m.state.ActivePointer = InvalidPointer
		if ok && releaseOverscroll(y-m.state.InitialY) > float64(m.state.TotalDragDistance) {
			m.notify = false
			m.state.Refreshing = true
			m.animateToCorrectPosition()
			if m.listener != nil {
				m.listener.OnLoadingStarted()
			}
		} else {
			m.state.Refreshing = false
			m.animateToStart()
		}
		return false
	}

	return true
}

// Animating reports whether an animation run is active.
func (m *Machine) Animating() bool {
	return m.run != nil
}

// Animation returns the active animation run.
func (m *Machine) Animation() (AnimationRun, bool) {
	if m.run == nil {
		return AnimationRun{}, false
	}
	return *m.run, true
}

// Advance applies the animation frame for now. It returns true if a run was
// active, i.e. the target may have moved.
func (m *Machine) Advance(now time.Time) bool {
	if m.run == nil || !m.Bind() {
		return false
	}
	run := *m.run
	progress := run.progress(now)
	t := m.interpolator.Interpolate(progress)

	switch run.Kind {
	case StartPosition:
		m.moveToStart(run, t)
	case CorrectPosition:
		total := m.state.TotalDragDistance
		targetTop := run.FromOffset + int(float64(total-run.FromOffset)*t)
		m.state.DragFraction = run.FromFraction - (run.FromFraction-1)*t
		m.setTargetOffsetTop(targetTop - m.target.Top())
	}

	if progress >= 1 {
		m.run = nil
		if run.Kind == StartPosition {
			m.state.OffsetTop = m.target.Top()
		}
	}
	return true
}

func (m *Machine) moveToStart(run AnimationRun, t float64) {
	targetTop := run.FromOffset - int(float64(run.FromOffset)*t)
	m.state.DragFraction = run.FromFraction * (1 - t)
	padding := m.state.SavedPadding
	padding.Bottom = max(padding.Bottom+targetTop, 0)
	m.target.SetPadding(padding)
	m.setTargetOffsetTop(targetTop - m.target.Top())
}

func (m *Machine) animateToStart() {
	duration := time.Duration(math.Abs(float64(MaxAnimationDuration) * m.state.DragFraction))
	m.start(StartPosition, duration)
}

func (m *Machine) animateToCorrectPosition() {
	m.start(CorrectPosition, MaxAnimationDuration)

	if m.state.Refreshing {
		if m.notify && m.listener != nil {
			m.listener.OnRefreshRequested()
		}
	} else {
		m.animateToStart()
	}
	m.state.OffsetTop = m.target.Top()
	padding := m.state.SavedPadding
	padding.Bottom += m.state.TotalDragDistance
	m.target.SetPadding(padding)
}

func (m *Machine) start(kind TargetKind, duration time.Duration) {
	m.run = &AnimationRun{
		Kind:         kind,
		FromOffset:   m.state.OffsetTop,
		FromFraction: m.state.DragFraction,
		Duration:     duration,
		Started:      m.now(),
	}
}

// resetToStart puts the target back at rest immediately.
func (m *Machine) resetToStart() {
	m.run = nil
	m.state.DragFraction = 0
	m.target.SetPadding(m.state.SavedPadding)
	m.setTargetOffsetTop(-m.target.Top())
}

func (m *Machine) setTargetOffsetTop(delta int) {
	m.target.OffsetTop(delta)
	m.state.OffsetTop = m.target.Top()
}

func (m *Machine) secondaryPointerUp(event MotionEvent) {
	index := event.Index
	if event.PointerID(index) != m.state.ActivePointer {
		return
	}
	next := 0
	if index == 0 {
		next = 1
	}
	m.state.ActivePointer = event.PointerID(next)
}
