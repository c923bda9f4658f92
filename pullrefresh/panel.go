package pullrefresh

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
	"github.com/xqrs/tview-pull/gesture"
	"github.com/xqrs/tview-pull/keybind"
	"github.com/xqrs/tview-pull/layers"
)

const (
	// RefreshDelay is how long the placeholder refresh keeps the panel
	// refreshing.
	RefreshDelay = 3000 * time.Millisecond

	// spinnerInterval is the delay between two spinner frames.
	spinnerInterval = 80 * time.Millisecond

	hintLayer    = "hint"
	loadingLayer = "loading"
)

// Default indicator texts.
const (
	DefaultHintText    = "Pull to refresh"
	DefaultLoadingText = "Loading…"
)

// RefreshFunc fetches new content. It must call done exactly once when it is
// finished; later calls are ignored. done may be called from any goroutine
// if the panel has a scheduler and only from the event loop otherwise.
type RefreshFunc func(done func())

// Panel is a Surface with a two-state indicator and a refresh workflow. While
// idle the indicator shows a hint, while refreshing a spinner.
//
// By default a refresh is a placeholder that ends after [RefreshDelay]. The
// placeholder needs a scheduler; without one it never ends by itself.
type Panel struct {
	*Surface

	indicator *layers.Layers
	hint      *tview.Text
	spinner   *tview.Spinner

	keys      KeyMap
	refresh   RefreshFunc
	changed   func(loading bool)
	scheduler Scheduler

	// generation identifies the current refresh. Completions of older
	// refreshes are dropped.
	generation  int
	cancelClear func() bool
	cancelSpin  func() bool
}

// NewPanel returns a panel pulling content.
func NewPanel(content Scrollable, opts ...Option) *Panel {
	p := &Panel{
		hint: tview.NewText(DefaultHintText).
			SetAlignment(tview.AlignmentCenter).
			SetTextStyle(tcell.StyleDefault.Foreground(tview.Styles.SecondaryTextColor)),
		spinner:   tview.NewSpinner(DefaultLoadingText),
		keys:      DefaultKeyMap(),
		scheduler: resolveOptions(opts).scheduler,
	}
	p.indicator = layers.New().
		AddLayer(p.hint, layers.WithName(hintLayer), layers.WithResize(true)).
		AddLayer(p.spinner, layers.WithName(loadingLayer), layers.WithResize(true), layers.WithVisible(false))

	p.Surface = NewSurface(content, p.indicator, opts...)
	p.Surface.SetRefreshListener(gesture.ListenerFuncs{
		RefreshRequested: p.showHint,
		LoadingStarted:   p.startLoading,
	})
	return p
}

// SetLoading starts or ends a refresh. It does nothing if the panel is
// already in the requested state.
func (p *Panel) SetLoading(loading bool) *Panel {
	p.Surface.SetRefreshing(loading)
	return p
}

// Loading returns whether a refresh is running.
func (p *Panel) Loading() bool {
	return p.Surface.Refreshing()
}

// SetRefreshFunc replaces the placeholder refresh. A nil function restores
// it.
func (p *Panel) SetRefreshFunc(refresh RefreshFunc) *Panel {
	p.refresh = refresh
	return p
}

// SetChangedFunc sets a handler called whenever loading starts or ends.
func (p *Panel) SetChangedFunc(handler func(loading bool)) *Panel {
	p.changed = handler
	return p
}

// SetHintText sets the text shown while idle.
func (p *Panel) SetHintText(text string) *Panel {
	p.hint.SetText(text)
	return p
}

// SetLoadingText sets the label next to the spinner.
func (p *Panel) SetLoadingText(text string) *Panel {
	p.spinner.SetLabel(text)
	return p
}

// Hint returns the idle indicator.
func (p *Panel) Hint() *tview.Text {
	return p.hint
}

// Spinner returns the refreshing indicator.
func (p *Panel) Spinner() *tview.Spinner {
	return p.spinner
}

// IndicatorState returns the name of the visible indicator, "hint" or
// "loading".
func (p *Panel) IndicatorState() string {
	name, _ := p.indicator.GetFrontLayer()
	return name
}

// SetKeyMap replaces the key bindings.
func (p *Panel) SetKeyMap(keys KeyMap) *Panel {
	p.keys = keys
	return p
}

// KeyMap returns the key bindings.
func (p *Panel) KeyMap() KeyMap {
	return p.keys
}

// InputHandler starts a refresh on the refresh key and passes other keys to
// the content.
func (p *Panel) InputHandler(event *tcell.EventKey) tview.Command {
	if !keybind.Matches(event, p.keys.Refresh) {
		return p.Surface.InputHandler(event)
	}
	if p.Loading() {
		return tview.ConsumeEventCommand{}
	}
	p.SetLoading(true)
	return tview.RedrawCommand{}
}

func (p *Panel) startLoading() {
	p.indicator.ShowOnly(loadingLayer)
	p.spinner.Reset()

	p.generation++
	generation := p.generation
	p.cancelPending()
	p.spin()
	if p.changed != nil {
		p.changed(true)
	}

	finish := func() {
		if generation == p.generation && p.Loading() {
			p.SetLoading(false)
		}
	}
	if p.refresh == nil {
		if p.scheduler != nil {
			p.cancelClear = p.scheduler.PostDelayed(RefreshDelay, finish)
		}
		return
	}

	var once sync.Once
	p.refresh(func() {
		once.Do(func() {
			if p.scheduler != nil {
				p.scheduler.Post(finish)
				return
			}
			finish()
		})
	})
}

func (p *Panel) showHint() {
	p.cancelPending()
	p.indicator.ShowOnly(hintLayer)
	p.spinner.Reset()
	if p.changed != nil {
		p.changed(false)
	}
}

// spin advances the spinner until loading ends.
func (p *Panel) spin() {
	if p.scheduler == nil {
		return
	}
	var step func()
	step = func() {
		if !p.Loading() {
			return
		}
		p.spinner.Step()
		p.cancelSpin = p.scheduler.PostDelayed(spinnerInterval, step)
	}
	p.cancelSpin = p.scheduler.PostDelayed(spinnerInterval, step)
}

func (p *Panel) cancelPending() {
	if p.cancelClear != nil {
		p.cancelClear()
		p.cancelClear = nil
	}
	if p.cancelSpin != nil {
		p.cancelSpin()
		p.cancelSpin = nil
	}
}
