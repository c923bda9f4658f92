package tview

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two redraws caused by resize events.
	redrawPause = 50 * time.Millisecond
)

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// queuedUpdate is a function queued by [Application.QueueUpdate]. If done is
// not nil, it receives exactly one element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// mouseTracker turns raw mouse reports (a position and the buttons held)
// into mouse actions. It remembers what it needs to detect moves, releases
// and clicks.
type mouseTracker struct {
	lastX, lastY int
	downX, downY int
	lastClick    time.Time
	lastButtons  tcell.ButtonMask
}

var mouseButtons = []struct {
	button                  tcell.ButtonMask
	down, up, click, dclick MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var mouseWheels = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// actions returns the actions of one mouse report in the order they must be
// delivered: the move first, then button changes, then the wheel.
func (m *mouseTracker) actions(x, y int, buttons tcell.ButtonMask, now time.Time) []MouseAction {
	var actions []MouseAction
	if x != m.lastX || y != m.lastY {
		actions = append(actions, MouseMove)
		m.lastX, m.lastY = x, y
	}

	changes := buttons ^ m.lastButtons
	moved := x != m.downX || y != m.downY
	pressed := false
	for _, b := range mouseButtons {
		if changes&b.button == 0 {
			continue
		}
		if buttons&b.button != 0 {
			actions = append(actions, b.down)
			pressed = true
			continue
		}
		actions = append(actions, b.up)
		if moved {
			continue
		}
		if m.lastClick.Add(DoubleClickInterval).Before(now) {
			actions = append(actions, b.click)
			m.lastClick = now
		} else {
			actions = append(actions, b.dclick)
			m.lastClick = time.Time{}
		}
	}

	for _, w := range mouseWheels {
		if buttons&w.button != 0 {
			actions = append(actions, w.action)
		}
	}

	m.lastButtons = buttons
	if pressed {
		m.downX, m.downY = x, y
	}
	return actions
}

// Application is the top node of a primitive tree. It owns the screen, runs
// the event loop and executes the commands returned by primitives.
//
// All primitives are accessed from the event loop only. Other goroutines
// hand work to the loop with [Application.QueueUpdate] or
// [Application.QueueUpdateDraw].
//
//	if err := tview.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	// The application's screen. It is created by Run() unless one was passed
	// to SetScreen(), and reset to nil by Stop().
	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	events chan tcell.Event

	// Functions queued from goroutines, used to serialize updates to primitives.
	updates chan queuedUpdate

	// The primitive which receives all mouse events until it releases them.
	mouseCapture Primitive
	mouse        mouseTracker

	// Bracketed paste state.
	pasting     bool
	pasteBuffer strings.Builder

	// Resize redraw throttling.
	lastResize  time.Time
	resizeTimer *time.Timer

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool

	// enableMouse turns on mouse reporting when the screen is initialized.
	enableMouse bool
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
	}
}

// SetScreen sets the screen Run uses instead of creating one. It has no
// effect once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// EnableMouse enables mouse events. It must be called before Run to take
// effect on the screen created by Run.
func (a *Application) EnableMouse(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.enableMouse = enable
	if a.screen != nil {
		if enable {
			a.screen.EnableMouse()
		} else {
			a.screen.DisableMouse()
		}
	}
	return a
}

// initScreen creates the screen if SetScreen was not called.
func (a *Application) initScreen() (tcell.Screen, error) {
	a.Lock()
	defer a.Unlock()
	if a.screen != nil {
		return a.screen, nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	if a.enableMouse {
		screen.EnableMouse()
	}
	a.screen = screen
	a.forceRedraw = true
	return screen, nil
}

// Run starts the application and thus the event loop. This function returns
// when [Application.Stop] was called.
//
// While an application is running, it fully claims stdin, stdout, and
// stderr.
func (a *Application) Run() error {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// We catch panics to clean up because they mess up the terminal.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()

	a.Lock()
	a.events = screen.EventQ()
	events := a.events
	a.Unlock()

	for {
		select {
		case event := <-events:
			if event == nil {
				return nil
			}
			if err := a.handleEvent(event); err != nil {
				return err
			}
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}
}

// handleEvent dispatches one terminal event. It returns the error of an
// error event, which also stops the application.
func (a *Application) handleEvent(event tcell.Event) error {
	switch event := event.(type) {
	case *tcell.EventKey:
		a.handleKey(event)
	case *tcell.EventPaste:
		a.handlePaste(event)
	case *tcell.EventResize:
		a.handleResize(event)
	case *tcell.EventMouse:
		a.handleMouse(event)
	case *tcell.EventError:
		a.Stop()
		return event
	}
	return nil
}

func (a *Application) handleKey(event *tcell.EventKey) {
	// While pasting, collect text, nothing else.
	if a.pasting {
		switch event.Key() {
		case tcell.KeyRune:
			a.pasteBuffer.WriteString(event.Str())
		case tcell.KeyEnter:
			a.pasteBuffer.WriteRune('\n')
		case tcell.KeyTab:
			a.pasteBuffer.WriteRune('\t')
		}
		return
	}

	if root := a.GetRoot(); root != nil && root.HasFocus() {
		if a.executeCommand(root.InputHandler(event)) {
			a.draw()
		}
	}
}

func (a *Application) handlePaste(event *tcell.EventPaste) {
	if event.Start() {
		a.pasting = true
		a.pasteBuffer.Reset()
		return
	}
	if !event.End() {
		return
	}
	a.pasting = false
	if root := a.GetRoot(); root != nil && root.HasFocus() && a.pasteBuffer.Len() > 0 {
		if a.executeCommand(root.PasteHandler(a.pasteBuffer.String())) {
			a.draw()
		}
	}
}

// handleResize redraws immediately and once more after a short pause, as
// terminals often send several resize events in a row.
func (a *Application) handleResize(event *tcell.EventResize) {
	a.Lock()
	a.forceRedraw = true
	a.Unlock()

	if time.Since(a.lastResize) < redrawPause {
		if a.resizeTimer != nil {
			a.resizeTimer.Stop()
		}
		a.resizeTimer = time.AfterFunc(redrawPause, func() {
			a.QueueEvent(event)
		})
	}
	a.lastResize = time.Now()
	a.draw()
}

func (a *Application) handleMouse(event *tcell.EventMouse) {
	x, y := event.Position()
	handled := false
	for _, action := range a.mouse.actions(x, y, event.Buttons(), time.Now()) {
		if a.fireMouseAction(action, event) {
			handled = true
		}
	}
	if handled {
		a.draw()
	}
}

// fireMouseAction sends one action to the capturing primitive, or the root
// if nothing captures the mouse.
func (a *Application) fireMouseAction(action MouseAction, event *tcell.EventMouse) bool {
	target := a.mouseCapture
	if target == nil {
		target = a.GetRoot()
	}
	if target == nil {
		return false
	}
	capture, cmd := target.MouseHandler(action, event)
	a.mouseCapture = capture
	return a.executeCommand(cmd)
}

// Stop stops the application, causing Run() to return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

// Draw refreshes the screen during the next update cycle. It must not be
// called from the event loop itself (e.g. in a callback function of a
// widget) as it waits for the loop.
func (a *Application) Draw() *Application {
	a.QueueUpdate(func() {
		a.draw()
	})
	return a
}

// draw draws the root if anything changed since the last frame.
func (a *Application) draw() *Application {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.forceRedraw = false
	a.Unlock()

	if screen == nil || root == nil {
		return a
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if !forceRedraw && !root.IsDirty() {
		return a
	}

	// tcell keeps a back buffer and only emits changed cells, so a full clear
	// is reserved for forced redraws.
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	root.MarkClean()
	screen.Show()
	return a
}

// SetRoot sets the root primitive and gives it the focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	a.mouseCapture = nil
	a.forceRedraw = true
	a.Unlock()

	a.SetFocus(root)
	return a
}

// GetRoot returns the root primitive.
func (a *Application) GetRoot() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.root
}

// SetFocus moves the focus to p. The previously focused primitive is blurred
// and p may delegate the focus further down.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()

	if previous != nil && previous != p {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the primitive which has the current focus. If none has it,
// nil is returned.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and returns after it has run. It must
// not be called from the event loop itself.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	a.updates <- queuedUpdate{f: f, done: ch}
	<-ch
	return a
}

// QueueUpdateDraw works like QueueUpdate() except it refreshes the screen
// immediately after executing f.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	a.QueueUpdate(func() {
		f()
		a.draw()
	})
	return a
}

// QueueUpdateDrawAfter queues f with QueueUpdateDraw once d has elapsed. The
// returned function cancels the update if it has not been queued yet and
// reports whether it did.
func (a *Application) QueueUpdateDrawAfter(d time.Duration, f func()) (stop func() bool) {
	timer := time.AfterFunc(d, func() {
		a.QueueUpdateDraw(f)
	})
	return timer.Stop
}

// QueueEvent sends an event to the event loop. It does nothing if the loop
// is not running.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.RLock()
	events := a.events
	a.RUnlock()
	if events == nil {
		return a
	}
	events <- event
	return a
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case nil:
		return false
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target == nil || a.GetFocus() == c.Target {
			return false
		}
		a.SetFocus(c.Target)
		return true
	case SetTitleCommand:
		a.RLock()
		screen := a.screen
		a.RUnlock()
		if screen != nil {
			screen.SetTitle(string(c))
		}
	}
	return false
}
