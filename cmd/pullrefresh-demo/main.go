// Pullrefresh-demo shows a list inside a pull-to-refresh panel.
//
// Drag the list down with the left mouse button past the trigger distance
// and release to start a refresh, or press r. The refresh ends after three
// seconds.
//
// Usage:
//
//	pullrefresh-demo [-config file] [-snapshot]
//
// With -snapshot the first frame is rendered to stdout instead of the
// terminal.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
	"github.com/xqrs/tview-pull/help"
	"github.com/xqrs/tview-pull/internal/config"
	"github.com/xqrs/tview-pull/keybind"
	"github.com/xqrs/tview-pull/pullrefresh"
)

var (
	configPath = flag.String("config", "", "config file (default: $XDG_CONFIG_HOME/pullrefresh-demo/config.toml)")
	snapshot   = flag.Bool("snapshot", false, "render one frame to stdout and exit")
	width      = flag.Int("width", 60, "snapshot width")
	height     = flag.Int("height", 16, "snapshot height")
)

// demo holds the widgets of the demo screen.
type demo struct {
	list      *tview.List
	panel     *pullrefresh.Panel
	status    *tview.Text
	root      *layout
	items     int
	refreshes int
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("pullrefresh-demo: ")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	app := tview.NewApplication()
	d, err := newDemo(cfg, pullrefresh.AppScheduler(app))
	if err != nil {
		log.Fatal(err)
	}

	if *snapshot {
		screen := tview.NewCaptureScreen(*width, *height)
		d.root.SetRect(0, 0, *width, *height)
		d.root.Draw(screen)
		fmt.Println(screen.String())
		return
	}

	app.EnableMouse(true).SetRoot(d.root)
	if err := app.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func newDemo(cfg config.Config, scheduler pullrefresh.Scheduler) (*demo, error) {
	interpolator, err := cfg.Gesture.NewInterpolator()
	if err != nil {
		return nil, err
	}

	d := &demo{
		list:   tview.NewList(),
		status: tview.NewText(""),
		items:  cfg.List.Items,
	}
	d.list.SetBuilder(d.item)
	d.status.SetTextStyle(tcell.StyleDefault.Foreground(tview.Styles.TitleColor))

	keys := pullrefresh.DefaultKeyMap()
	if len(cfg.Keys.Refresh) > 0 {
		keys.Refresh.SetKeys(cfg.Keys.Refresh...)
	}
	d.panel = pullrefresh.NewPanel(d.list,
		pullrefresh.WithScheduler(scheduler),
		pullrefresh.WithTotalDragDistance(cfg.Gesture.TotalDragDistance()),
		pullrefresh.WithInterpolator(interpolator),
	).
		SetHintText(cfg.Panel.Hint).
		SetLoadingText(cfg.Panel.Loading).
		SetKeyMap(keys).
		SetChangedFunc(d.loadingChanged)

	button := tview.NewButton("Load").SetSelectedFunc(func() tview.Command {
		d.panel.SetLoading(true)
		return tview.SetFocusCommand{Target: d.list}
	})

	quit := keybind.NewKeybind(keybind.WithKeys(cfg.Keys.Quit...), keybind.WithHelp("q", "quit"))
	h := help.New().SetKeyMap(demoKeys{refresh: keys.Refresh, quit: quit})

	d.root = newLayout(d.status, d.panel, button, h, quit)
	d.updateStatus()
	return d, nil
}

func (d *demo) item(index, cursor int) tview.ListItem {
	if index < 0 || index >= d.items {
		return nil
	}
	text := tview.NewText(fmt.Sprintf("Item %d", index+1))
	if d.refreshes > 0 {
		text.SetText(fmt.Sprintf("Item %d (refresh %d)", index+1, d.refreshes))
	}
	if index == cursor {
		text.SetBackgroundColor(tview.Styles.SelectedBackgroundColor)
	}
	return text
}

func (d *demo) loadingChanged(loading bool) {
	if !loading {
		d.refreshes++
		d.list.MarkDirty()
	}
	d.updateStatus()
}

func (d *demo) updateStatus() {
	switch {
	case d.panel.Loading():
		d.status.SetText("Refreshing…")
	case d.refreshes == 0:
		d.status.SetText(fmt.Sprintf("%d items, never refreshed", d.items))
	default:
		d.status.SetText(fmt.Sprintf("%d items, refreshed %d times", d.items, d.refreshes))
	}
}

// demoKeys is the help key map of the demo screen.
type demoKeys struct {
	refresh, quit keybind.Keybind
}

func (k demoKeys) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.refresh, k.quit}
}

func (k demoKeys) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{{k.refresh}, {k.quit}}
}
