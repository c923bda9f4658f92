package pullrefresh

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tview "github.com/xqrs/tview-pull"
	"github.com/xqrs/tview-pull/gesture"
)

type recorder struct {
	loadingStarted   int
	refreshRequested int
}

func (r *recorder) OnLoadingStarted()   { r.loadingStarted++ }
func (r *recorder) OnRefreshRequested() { r.refreshRequested++ }

func newTestList(items int) *tview.List {
	return tview.NewList().SetBuilder(func(index, cursor int) tview.ListItem {
		if index < 0 || index >= items {
			return nil
		}
		return tview.NewText(fmt.Sprintf("item %d", index))
	})
}

func newTestScheduler() *ManualScheduler {
	return NewManualScheduler(time.Unix(1000, 0))
}

// drag presses at row 0 and pulls down to row y without releasing.
func drag(s *Surface, y int) {
	s.handlePointer(tview.MouseLeftDown, 0)
	s.handlePointer(tview.MouseMove, 1)
	s.handlePointer(tview.MouseMove, y)
}

func TestSurfaceDragDistance(t *testing.T) {
	t.Parallel()

	list := newTestList(5)
	require.Equal(t, 6, NewSurface(list, nil).TotalDragDistance())
	require.Equal(t, 12, NewSurface(list, nil, WithDensity(0.1)).TotalDragDistance())
	require.Equal(t, 4, NewSurface(list, nil, WithTotalDragDistance(4)).TotalDragDistance())

	s := NewSurface(list, nil).SetTotalDragDistance(0)
	require.Equal(t, 1, s.TotalDragDistance())
}

func TestSurfaceShortPullSettlesBack(t *testing.T) {
	t.Parallel()

	sched := newTestScheduler()
	s := NewSurface(newTestList(20), nil, WithScheduler(sched))
	r := &recorder{}
	s.SetRefreshListener(r)

	taken, _ := s.handlePointer(tview.MouseLeftDown, 0)
	require.False(t, taken)
	taken, _ = s.handlePointer(tview.MouseMove, 1)
	require.True(t, taken)
	taken, handled := s.handlePointer(tview.MouseMove, 8)
	require.True(t, taken)
	require.True(t, handled)
	require.Equal(t, 4, s.Offset())

	taken, _ = s.handlePointer(tview.MouseLeftUp, 8)
	require.True(t, taken)
	require.False(t, s.Refreshing())
	require.True(t, s.Animating())
	require.Positive(t, sched.Pending())

	sched.Advance(time.Second)
	require.False(t, s.Animating())
	require.Zero(t, s.Offset())
	require.Zero(t, sched.Pending())
	require.Zero(t, r.loadingStarted)
	require.Zero(t, r.refreshRequested)
}

func TestSurfaceLongPullRefreshes(t *testing.T) {
	t.Parallel()

	sched := newTestScheduler()
	list := newTestList(20)
	s := NewSurface(list, nil, WithScheduler(sched))
	r := &recorder{}
	s.SetRefreshListener(r)

	drag(s, 20)
	require.Equal(t, 7, s.Offset())

	s.handlePointer(tview.MouseLeftUp, 20)
	require.True(t, s.Refreshing())
	require.Equal(t, 1, r.loadingStarted)
	_, bottom, _, _ := list.GetBorderPadding()
	require.Equal(t, 6, bottom)

	sched.Advance(time.Second)
	require.Equal(t, 6, s.Offset())
	require.InDelta(t, 1.0, s.State().DragFraction, 1e-9)

	s.SetRefreshing(false)
	require.Equal(t, 1, r.refreshRequested)
	require.True(t, s.Animating())
	sched.Advance(time.Second)
	require.Zero(t, s.Offset())
	_, bottom, _, _ = list.GetBorderPadding()
	require.Zero(t, bottom)
}

func TestSurfaceIgnoresScrolledContent(t *testing.T) {
	t.Parallel()

	scrolled := true
	content := ScrollableFunc(tview.NewText("content"), func() bool { return scrolled })
	s := NewSurface(content, nil)

	drag(s, 10)
	require.Zero(t, s.Offset())
	require.False(t, s.State().Dragging)
	s.handlePointer(tview.MouseLeftUp, 10)

	scrolled = false
	drag(s, 10)
	require.Equal(t, 5, s.Offset())
}

func TestSurfacePressDuringDragStartsOver(t *testing.T) {
	t.Parallel()

	s := NewSurface(newTestList(20), nil)
	drag(s, 20)
	require.Equal(t, 7, s.Offset())

	taken, handled := s.handlePointer(tview.MouseLeftDown, 10)
	require.False(t, taken)
	require.True(t, handled)
	require.Zero(t, s.Offset())
	require.False(t, s.State().Dragging)

	s.handlePointer(tview.MouseMove, 11)
	s.handlePointer(tview.MouseMove, 18)
	require.Equal(t, 4, s.Offset())
}

func TestSurfaceDisabled(t *testing.T) {
	t.Parallel()

	s := NewSurface(newTestList(3), nil).SetEnabled(false)
	require.False(t, s.Enabled())

	drag(s, 10)
	require.Zero(t, s.Offset())
	taken, handled := s.handlePointer(tview.MouseLeftUp, 10)
	require.False(t, taken)
	require.False(t, handled)
}

func TestSurfaceMoveWithoutPress(t *testing.T) {
	t.Parallel()

	s := NewSurface(newTestList(3), nil)
	taken, handled := s.handlePointer(tview.MouseMove, 5)
	require.False(t, taken)
	require.False(t, handled)
	taken, handled = s.handlePointer(tview.MouseLeftUp, 5)
	require.False(t, taken)
	require.False(t, handled)
	require.Zero(t, s.Offset())
}

func TestSurfaceWithoutContent(t *testing.T) {
	t.Parallel()

	s := NewSurface(nil, nil)
	drag(s, 20)
	taken, _ := s.handlePointer(tview.MouseLeftUp, 20)
	require.False(t, taken)
	require.Zero(t, s.Offset())
	require.False(t, s.Animating())

	screen := tview.NewCaptureScreen(10, 4)
	s.SetRect(0, 0, 10, 4)
	require.NotPanics(t, func() { s.Draw(screen) })
}

func TestSurfaceDraw(t *testing.T) {
	t.Parallel()

	s := NewSurface(newTestList(20), tview.NewText("pull"))
	s.SetRect(0, 0, 20, 10)
	screen := tview.NewCaptureScreen(20, 10)

	s.Draw(screen)
	require.Equal(t, "item 0", screen.Line(0))
	require.Equal(t, "item 9", screen.Line(9))

	drag(s, 8)
	require.Equal(t, 4, s.Offset())
	require.True(t, s.IsDirty())
	s.Draw(screen)
	require.Equal(t, "pull", screen.Line(0))
	require.Empty(t, screen.Line(3))
	require.Equal(t, "item 0", screen.Line(4))
	require.Equal(t, "item 5", screen.Line(9))

	s.MarkClean()
	require.False(t, s.IsDirty())
}

func TestSurfaceTickWithoutScheduler(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := NewSurface(newTestList(20), nil, WithInterpolator(gesture.Linear))
	drag(s, 8)
	s.handlePointer(tview.MouseLeftUp, 8)
	require.True(t, s.Animating())

	// The run started at time.Now(), so a tick far in the future ends it.
	s.Tick(now.Add(time.Hour))
	require.False(t, s.Animating())
	require.Zero(t, s.Offset())
}
