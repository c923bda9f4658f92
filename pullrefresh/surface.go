// Package pullrefresh provides pull-to-refresh containers for tview: Surface
// turns mouse drags over scrollable content into the pull gesture and Panel
// adds the refresh indicator and the refresh workflow on top of it.
package pullrefresh

import (
	"time"

	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
	"github.com/xqrs/tview-pull/gesture"
)

const (
	// frameInterval is the delay between two animation frames.
	frameInterval = 16 * time.Millisecond

	// DefaultDensity is the number of rows per density-independent unit. It
	// turns the 120 unit trigger distance into 6 rows.
	DefaultDensity = 0.05

	// touchSlop is the travel in rows a pointer must exceed before a pull
	// starts. Terminal mice report whole rows, so any downward row counts.
	touchSlop = 0
)

// Scrollable is content that can be pulled. CanScrollUp reports whether the
// content is scrolled away from its top; a pull only starts when it is not.
type Scrollable interface {
	tview.Primitive
	CanScrollUp() bool
}

type scrollableFunc struct {
	tview.Primitive
	canScrollUp func() bool
}

func (s scrollableFunc) CanScrollUp() bool {
	return s.canScrollUp()
}

func (s scrollableFunc) Unwrap() tview.Primitive {
	return s.Primitive
}

// ScrollableFunc makes any primitive pullable, using fn to tell whether it is
// scrolled away from its top. A nil fn means the primitive never scrolls.
func ScrollableFunc(p tview.Primitive, fn func() bool) Scrollable {
	if fn == nil {
		fn = func() bool { return false }
	}
	return scrollableFunc{Primitive: p, canScrollUp: fn}
}

// padder is implemented by content embedding a [tview.Box].
type padder interface {
	GetBorderPadding() (top, bottom, left, right int)
	SetBorderPadding(top, bottom, left, right int) *tview.Box
}

// contentTarget exposes the content to the gesture machine. The content is
// never moved by anything else while it is wrapped.
type contentTarget struct {
	content Scrollable
	top     int
	moved   func()
}

func (t *contentTarget) CanScrollUp() bool {
	return t.content.CanScrollUp()
}

func (t *contentTarget) Top() int {
	return t.top
}

func (t *contentTarget) OffsetTop(delta int) {
	if delta == 0 {
		return
	}
	t.top += delta
	t.moved()
}

func (t *contentTarget) Padding() gesture.Padding {
	p, ok := t.padder()
	if !ok {
		return gesture.Padding{}
	}
	top, bottom, left, right := p.GetBorderPadding()
	return gesture.Padding{Left: left, Top: top, Right: right, Bottom: bottom}
}

func (t *contentTarget) SetPadding(padding gesture.Padding) {
	if p, ok := t.padder(); ok {
		p.SetBorderPadding(padding.Top, padding.Bottom, padding.Left, padding.Right)
	}
}

func (t *contentTarget) padder() (padder, bool) {
	var p tview.Primitive = t.content
	if u, ok := p.(interface{ Unwrap() tview.Primitive }); ok {
		p = u.Unwrap()
	}
	pd, ok := p.(padder)
	return pd, ok
}

type options struct {
	scheduler         Scheduler
	density           float64
	totalDragDistance int
	interpolator      gesture.Interpolator
}

// Option configures a Surface.
type Option func(*options)

// WithScheduler sets the scheduler driving animation frames. Without one the
// host must call [Surface.Tick].
func WithScheduler(scheduler Scheduler) Option {
	return func(o *options) {
		o.scheduler = scheduler
	}
}

// WithDensity sets the rows per density-independent unit used to derive the
// default trigger distance.
func WithDensity(density float64) Option {
	return func(o *options) {
		if density > 0 {
			o.density = density
		}
	}
}

// WithTotalDragDistance sets the trigger distance in rows, overriding the
// density-derived default.
func WithTotalDragDistance(rows int) Option {
	return func(o *options) {
		o.totalDragDistance = rows
	}
}

// WithInterpolator sets the curve of the settle animations.
func WithInterpolator(interpolator gesture.Interpolator) Option {
	return func(o *options) {
		o.interpolator = interpolator
	}
}

func resolveOptions(opts []Option) options {
	o := options{density: DefaultDensity}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Surface wraps scrollable content and lets the user pull it down with the
// mouse. The rows revealed above the content show the indicator.
type Surface struct {
	*tview.Box

	content   Scrollable
	indicator tview.Primitive
	target    *contentTarget
	machine   *gesture.Machine
	scheduler Scheduler

	// An animation frame is scheduled.
	framePending bool
	// The left button went down inside the surface and is still held.
	pressed bool
}

// NewSurface returns a surface pulling content and showing indicator in the
// revealed rows. A nil content yields an inert surface.
func NewSurface(content Scrollable, indicator tview.Primitive, opts ...Option) *Surface {
	o := resolveOptions(opts)
	total := o.totalDragDistance
	if total <= 0 {
		total = gesture.DPToPixels(gesture.DefaultDragDistanceDP, o.density)
	}

	s := &Surface{
		Box:       tview.NewBox(),
		content:   content,
		indicator: indicator,
		scheduler: o.scheduler,
	}
	machineOptions := gesture.Options{
		TotalDragDistance: total,
		TouchSlop:         touchSlop,
		Interpolator:      o.interpolator,
	}
	if o.scheduler != nil {
		machineOptions.Now = o.scheduler.Now
	}

	// A typed nil pointer would make the machine believe it has a target.
	var target gesture.Target
	if content != nil {
		s.target = &contentTarget{content: content, moved: s.MarkDirty}
		target = s.target
	}
	s.machine = gesture.New(target, machineOptions)
	return s
}

// SetRefreshListener registers the listener notified about refresh state
// changes.
func (s *Surface) SetRefreshListener(listener gesture.Listener) *Surface {
	s.machine.SetRefreshListener(listener)
	return s
}

// SetRefreshing starts or ends the refreshing state. It does nothing if the
// state already matches.
func (s *Surface) SetRefreshing(refreshing bool) *Surface {
	s.machine.SetRefreshing(refreshing)
	s.afterTransition()
	return s
}

// Refreshing returns whether the surface is refreshing.
func (s *Surface) Refreshing() bool {
	return s.machine.Refreshing()
}

// SetEnabled enables or disables pulling. A disabled surface still passes
// events to its content.
func (s *Surface) SetEnabled(enabled bool) *Surface {
	s.machine.SetEnabled(enabled)
	return s
}

// Enabled returns whether pulling is enabled.
func (s *Surface) Enabled() bool {
	return s.machine.Enabled()
}

// TotalDragDistance returns the trigger distance in rows.
func (s *Surface) TotalDragDistance() int {
	return s.machine.TotalDragDistance()
}

// SetTotalDragDistance sets the trigger distance in rows.
func (s *Surface) SetTotalDragDistance(rows int) *Surface {
	s.machine.SetTotalDragDistance(rows)
	return s
}

// State returns the current gesture state.
func (s *Surface) State() gesture.State {
	return s.machine.State()
}

// Content returns the wrapped content.
func (s *Surface) Content() Scrollable {
	return s.content
}

// Indicator returns the indicator primitive.
func (s *Surface) Indicator() tview.Primitive {
	return s.indicator
}

// Offset returns the number of rows the content is pulled down by.
func (s *Surface) Offset() int {
	if s.target == nil {
		return 0
	}
	return s.target.top
}

// Tick applies the animation frame for now. Hosts without a scheduler call it
// periodically while [Surface.Animating] returns true.
func (s *Surface) Tick(now time.Time) {
	if s.machine.Advance(now) {
		s.MarkDirty()
	}
	s.afterTransition()
}

// Animating returns whether a settle animation is running.
func (s *Surface) Animating() bool {
	return s.machine.Animating()
}

func (s *Surface) afterTransition() {
	if !s.machine.Animating() || s.scheduler == nil || s.framePending {
		return
	}
	s.framePending = true
	s.scheduler.PostDelayed(frameInterval, func() {
		s.framePending = false
		s.Tick(s.scheduler.Now())
	})
}

// handlePointer feeds a left button action at row y to the gesture machine.
// taken reports whether the content must not see the event; handled reports
// whether the surface needs a redraw.
func (s *Surface) handlePointer(action tview.MouseAction, y int) (taken, handled bool) {
	var motion gesture.Action
	switch action {
	case tview.MouseLeftDown:
		s.pressed = true
		motion = gesture.ActionDown
	case tview.MouseMove:
		if !s.pressed {
			return false, false
		}
		motion = gesture.ActionMove
	case tview.MouseLeftUp:
		if !s.pressed {
			return false, false
		}
		s.pressed = false
		motion = gesture.ActionUp
	default:
		return false, false
	}

	wasDragging := s.machine.State().Dragging
	offset := s.Offset()
	taken = s.machine.Dispatch(gesture.NewMotionEvent(motion, float64(y))) ||
		wasDragging && motion != gesture.ActionDown
	s.afterTransition()
	return taken, taken || offset != s.Offset()
}

// Draw draws this primitive onto the screen.
func (s *Surface) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)
	s.machine.Bind()

	x, y, width, height := s.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	offset := s.Offset()

	if band := min(offset, height); band > 0 && s.indicator != nil {
		s.indicator.SetRect(x, y, width, band)
		s.indicator.Draw(tview.NewClipScreen(screen, x, y, width, band))
	}
	if s.content != nil {
		s.content.SetRect(x, y+offset, width, height)
		s.content.Draw(tview.NewClipScreen(screen, x, y, width, height))
	}
}

// MouseHandler runs the pull gesture and passes everything it does not take
// to the content.
func (s *Surface) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	x, y := event.Position()
	if !s.pressed && !s.InRect(x, y) {
		return nil, nil
	}

	taken, handled := s.handlePointer(action, y)
	var capture tview.Primitive
	var cmd tview.Command
	if !taken && s.content != nil {
		capture, cmd = s.content.MouseHandler(action, event)
	}
	if s.pressed {
		capture = s
	}
	if handled {
		cmd = tview.AppendCommand(cmd, tview.RedrawCommand{})
	}
	return capture, cmd
}

// InputHandler passes key events to the content.
func (s *Surface) InputHandler(event *tcell.EventKey) tview.Command {
	if s.content != nil && s.content.HasFocus() {
		return s.content.InputHandler(event)
	}
	return nil
}

// PasteHandler passes pasted text to the content.
func (s *Surface) PasteHandler(text string) tview.Command {
	if s.content != nil && s.content.HasFocus() {
		return s.content.PasteHandler(text)
	}
	return nil
}

// Focus delegates the focus to the content.
func (s *Surface) Focus(delegate func(p tview.Primitive)) {
	if s.content != nil && delegate != nil {
		delegate(s.content)
		return
	}
	s.Box.Focus(delegate)
}

// HasFocus returns whether the surface or its content has focus.
func (s *Surface) HasFocus() bool {
	if s.content != nil && s.content.HasFocus() {
		return true
	}
	return s.Box.HasFocus()
}

// IsDirty returns whether the surface or one of its children needs a redraw.
func (s *Surface) IsDirty() bool {
	if s.Box.IsDirty() {
		return true
	}
	if s.content != nil && s.content.IsDirty() {
		return true
	}
	return s.indicator != nil && s.Offset() > 0 && s.indicator.IsDirty()
}

// MarkClean marks the surface and its children as clean.
func (s *Surface) MarkClean() {
	s.Box.MarkClean()
	if s.content != nil {
		s.content.MarkClean()
	}
	if s.indicator != nil {
		s.indicator.MarkClean()
	}
}
