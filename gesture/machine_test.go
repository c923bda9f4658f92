package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	top       int
	padding   Padding
	scrollsUp bool
	moves     int
}

func (f *fakeTarget) CanScrollUp() bool          { return f.scrollsUp }
func (f *fakeTarget) Top() int                   { return f.top }
func (f *fakeTarget) OffsetTop(delta int)        { f.top += delta; f.moves++ }
func (f *fakeTarget) Padding() Padding           { return f.padding }
func (f *fakeTarget) SetPadding(padding Padding) { f.padding = padding }

type recorder struct {
	loadingStarted   int
	refreshRequested int
	order            []string
}

func (r *recorder) OnLoadingStarted() {
	r.loadingStarted++
	r.order = append(r.order, "loading")
}

func (r *recorder) OnRefreshRequested() {
	r.refreshRequested++
	r.order = append(r.order, "refresh")
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time            { return c.now }
func (c *clock) advance(d time.Duration)   { c.now = c.now.Add(d) }
func newClock() *clock                     { return &clock{now: time.Unix(1000, 0)} }
func move(y float64) MotionEvent           { return NewMotionEvent(ActionMove, y) }
func down(y float64) MotionEvent           { return NewMotionEvent(ActionDown, y) }
func up(y float64) MotionEvent             { return NewMotionEvent(ActionUp, y) }
func pointers(p ...Pointer) []Pointer      { return p }
func settle(m *Machine, c *clock)          { c.advance(time.Second); m.Advance(c.Now()) }
func newMachine(t *fakeTarget, c *clock) *Machine {
	return New(t, Options{TotalDragDistance: 120, TouchSlop: 8, Now: c.Now})
}

// pull presses at 100, crosses the slop and drags to y.
func pull(m *Machine, y float64) {
	m.Dispatch(down(100))
	m.Dispatch(move(110))
	m.Dispatch(move(y))
}

func TestPullToThresholdDoesNotRefresh(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	r := &recorder{}
	m.SetRefreshListener(r)

	pull(m, 340)
	state := m.State()
	require.True(t, state.Dragging)
	require.Equal(t, 1.0, state.DragFraction)
	require.Equal(t, 120, state.OffsetTop)
	require.Equal(t, 120, target.top)

	require.False(t, m.Dispatch(up(340)))
	state = m.State()
	require.False(t, state.Refreshing)
	require.False(t, state.Dragging)
	require.Equal(t, InvalidPointer, state.ActivePointer)
	require.Zero(t, r.loadingStarted)

	run, ok := m.Animation()
	require.True(t, ok)
	require.Equal(t, StartPosition, run.Kind)
	require.Equal(t, 120, run.FromOffset)
	require.Equal(t, MaxAnimationDuration, run.Duration)

	c.advance(250 * time.Millisecond)
	require.True(t, m.Advance(c.Now()))
	require.Less(t, target.top, 120)
	require.Greater(t, target.top, 0)

	settle(m, c)
	require.False(t, m.Animating())
	require.Zero(t, target.top)
	require.Zero(t, m.State().OffsetTop)
	require.Zero(t, m.State().DragFraction)
	require.Zero(t, target.padding.Bottom)
}

func TestPullBeyondThresholdRefreshes(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{padding: Padding{Bottom: 2}}
	c := newClock()
	m := newMachine(target, c)
	r := &recorder{}
	m.SetRefreshListener(r)

	pull(m, 400)
	require.Equal(t, 127, target.top)
	require.InDelta(t, 1.25, m.State().DragFraction, 1e-9)

	require.False(t, m.Dispatch(up(400)))
	require.True(t, m.Refreshing())
	require.Equal(t, 1, r.loadingStarted)
	require.Zero(t, r.refreshRequested)
	require.Equal(t, 2+120, target.padding.Bottom)

	run, ok := m.Animation()
	require.True(t, ok)
	require.Equal(t, CorrectPosition, run.Kind)
	require.Equal(t, MaxAnimationDuration, run.Duration)

	settle(m, c)
	require.False(t, m.Animating())
	require.Equal(t, 120, target.top)
	require.Equal(t, 1.0, m.State().DragFraction)

	// While refreshing nothing is intercepted.
	require.False(t, m.Dispatch(down(100)))
	require.False(t, m.Dispatch(move(300)))
	require.Equal(t, 120, target.top)
}

func TestSetRefreshingIsIdempotent(t *testing.T) {
	t.Parallel()

	m := newMachine(&fakeTarget{}, newClock())
	r := &recorder{}
	m.SetRefreshListener(r)

	m.SetRefreshing(true)
	m.SetRefreshing(true)
	require.Equal(t, 1, r.loadingStarted)
	require.Zero(t, r.refreshRequested)

	m.SetRefreshing(false)
	m.SetRefreshing(false)
	require.Equal(t, 1, r.loadingStarted)
	require.Equal(t, 1, r.refreshRequested)
	require.Equal(t, []string{"loading", "refresh"}, r.order)
}

func TestSetRefreshingFalseSettlesDisplacedContent(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	m.SetRefreshListener(&recorder{})

	pull(m, 400)
	m.Dispatch(up(400))
	settle(m, c)
	require.Equal(t, 120, target.top)

	m.SetRefreshing(false)
	run, ok := m.Animation()
	require.True(t, ok)
	require.Equal(t, StartPosition, run.Kind)

	settle(m, c)
	require.Zero(t, target.top)
	require.False(t, m.Refreshing())
}

func TestScrolledContentIsNeverIntercepted(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{scrollsUp: true}
	m := newMachine(target, newClock())
	r := &recorder{}
	m.SetRefreshListener(r)
	before := m.State()

	for _, e := range []MotionEvent{down(100), move(200), move(400), move(900), up(900)} {
		require.False(t, m.Dispatch(e))
	}
	require.Equal(t, before, m.State())
	require.Zero(t, target.moves)
	require.Zero(t, r.loadingStarted)
}

func TestDisabledMachineIgnoresGestures(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	m := newMachine(target, newClock())
	m.SetEnabled(false)

	pull(m, 400)
	require.False(t, m.State().Dragging)
	require.Zero(t, target.top)
}

func TestMoveWithinSlopDoesNotDrag(t *testing.T) {
	t.Parallel()

	m := newMachine(&fakeTarget{}, newClock())
	require.False(t, m.Dispatch(down(100)))
	require.False(t, m.Dispatch(move(108)))
	require.False(t, m.State().Dragging)
	require.True(t, m.Dispatch(move(109)))
	require.True(t, m.State().Dragging)
}

func TestUpwardMoveIsIgnored(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	m := newMachine(target, newClock())
	pull(m, 200)
	offset := target.top

	require.False(t, m.Dispatch(move(50)))
	require.True(t, m.State().Dragging)
	require.Equal(t, offset, target.top)
}

func TestNoTargetIsInert(t *testing.T) {
	t.Parallel()

	m := New(nil, Options{TotalDragDistance: 120})
	r := &recorder{}
	m.SetRefreshListener(r)

	require.False(t, m.Bind())
	require.False(t, m.Dispatch(down(100)))
	require.False(t, m.Dispatch(move(400)))
	require.False(t, m.Dispatch(up(400)))
	require.False(t, m.Advance(time.Now()))
	require.False(t, m.State().Dragging)
}

func TestUnresolvablePointerIsIgnored(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	m := newMachine(target, newClock())
	pull(m, 200)
	offset := target.top

	stray := MotionEvent{Action: ActionMove, Pointers: pointers(Pointer{ID: 7, Y: 500})}
	require.False(t, m.Dispatch(stray))
	require.Equal(t, offset, target.top)
}

func TestSecondaryPointerUpReassignsActivePointer(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	m := newMachine(target, newClock())
	pull(m, 200)

	two := pointers(Pointer{ID: 0, Y: 200}, Pointer{ID: 1, Y: 150})
	require.True(t, m.Dispatch(MotionEvent{Action: ActionPointerDown, Index: 1, Pointers: two}))
	require.Equal(t, 1, m.State().ActivePointer)

	// The active pointer lifts; the remaining one at index 0 takes over.
	require.True(t, m.Dispatch(MotionEvent{Action: ActionPointerUp, Index: 1, Pointers: two}))
	require.Equal(t, 0, m.State().ActivePointer)

	// A non-active pointer lifting changes nothing.
	require.True(t, m.Dispatch(MotionEvent{Action: ActionPointerUp, Index: 1, Pointers: two}))
	require.Equal(t, 0, m.State().ActivePointer)
}

func TestSecondaryPointerUpDuringInterception(t *testing.T) {
	t.Parallel()

	m := newMachine(&fakeTarget{}, newClock())
	two := pointers(Pointer{ID: 4, Y: 100}, Pointer{ID: 9, Y: 100})
	require.False(t, m.Dispatch(MotionEvent{Action: ActionDown, Pointers: two}))
	require.Equal(t, 4, m.State().ActivePointer)

	require.False(t, m.Dispatch(MotionEvent{Action: ActionPointerUp, Index: 0, Pointers: two}))
	require.Equal(t, 9, m.State().ActivePointer)
}

func TestCancelBelowThresholdSettles(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	pull(m, 200)

	require.False(t, m.Dispatch(NewMotionEvent(ActionCancel, 200)))
	require.False(t, m.Refreshing())
	require.True(t, m.Animating())
	settle(m, c)
	require.Zero(t, target.top)
}

func TestPressResetsOffsetInstantly(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	pull(m, 300)
	m.Dispatch(up(300))
	require.True(t, m.Animating())

	m.Dispatch(down(100))
	require.False(t, m.Animating())
	require.Zero(t, target.top)
	require.Zero(t, m.State().OffsetTop)
}

func TestCorrectPositionChainsToStartWhenNotRefreshing(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	r := &recorder{}
	m.SetRefreshListener(r)
	m.Bind()

	m.animateToCorrectPosition()
	run, ok := m.Animation()
	require.True(t, ok)
	require.Equal(t, StartPosition, run.Kind)
	require.Zero(t, r.refreshRequested)
}

func TestCorrectPositionNotifiesWhenRequested(t *testing.T) {
	t.Parallel()

	m := newMachine(&fakeTarget{}, newClock())
	r := &recorder{}
	m.SetRefreshListener(r)

	m.SetRefreshing(true)
	m.animateToCorrectPosition()
	require.Equal(t, 1, r.refreshRequested)
	run, _ := m.Animation()
	require.Equal(t, CorrectPosition, run.Kind)
}

func TestNewAnimationReplacesRunning(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	m.SetRefreshListener(&recorder{})

	pull(m, 400)
	m.Dispatch(up(400))
	c.advance(100 * time.Millisecond)
	m.Advance(c.Now())

	m.SetRefreshing(false)
	run, ok := m.Animation()
	require.True(t, ok)
	require.Equal(t, StartPosition, run.Kind)
	require.Equal(t, c.Now(), run.Started)
	require.Equal(t, target.top, run.FromOffset)
}

func TestBindCapturesPaddingOnce(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{padding: Padding{Left: 1, Top: 2, Right: 3, Bottom: 4}}
	m := newMachine(target, newClock())
	require.True(t, m.Bind())
	target.padding = Padding{}
	require.True(t, m.Bind())
	require.Equal(t, Padding{Left: 1, Top: 2, Right: 3, Bottom: 4}, m.State().SavedPadding)
}

func TestPressDuringDragStartsOver(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	m := newMachine(target, newClock())
	pull(m, 300)
	require.True(t, m.State().Dragging)
	require.Positive(t, target.top)

	require.False(t, m.Dispatch(down(250)))
	state := m.State()
	require.False(t, state.Dragging)
	require.Zero(t, target.top)
	require.Equal(t, 250.0, state.InitialY)
	require.Equal(t, 0, state.ActivePointer)

	// The next drag is measured from the new press.
	m.Dispatch(move(260))
	m.Dispatch(move(300))
	require.Equal(t, Sample(50, 120).TargetOffset, target.top)
}

func TestReleaseWithoutActivePointerEndsDrag(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	c := newClock()
	m := newMachine(target, c)
	pull(m, 300)

	// The only pointer lifts as a secondary pointer, leaving none active.
	require.True(t, m.Dispatch(MotionEvent{Action: ActionPointerUp, Index: 0, Pointers: pointers(Pointer{ID: 0, Y: 300})}))
	require.Equal(t, InvalidPointer, m.State().ActivePointer)

	require.False(t, m.Dispatch(up(300)))
	require.False(t, m.State().Dragging)
	require.True(t, m.Animating())
	settle(m, c)
	require.Zero(t, target.top)

	// A new gesture works normally.
	pull(m, 400)
	require.True(t, m.State().Dragging)
	require.False(t, m.Dispatch(up(400)))
	require.True(t, m.Refreshing())
}
