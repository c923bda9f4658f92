package main

import (
	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
	"github.com/xqrs/tview-pull/help"
	"github.com/xqrs/tview-pull/keybind"
	"github.com/xqrs/tview-pull/pullrefresh"
)

// layout stacks the status line, the panel, the button row and the help bar.
type layout struct {
	*tview.Box

	status *tview.Text
	panel  *pullrefresh.Panel
	button *tview.Button
	help   *help.Help
	quit   keybind.Keybind
}

func newLayout(status *tview.Text, panel *pullrefresh.Panel, button *tview.Button, h *help.Help, quit keybind.Keybind) *layout {
	return &layout{
		Box:    tview.NewBox(),
		status: status,
		panel:  panel,
		button: button,
		help:   h,
		quit:   quit,
	}
}

func (l *layout) children() []tview.Primitive {
	return []tview.Primitive{l.status, l.panel, l.button, l.help}
}

func (l *layout) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	helpHeight := min(l.help.Height(width), max(height-3, 0))
	panelHeight := max(height-2-helpHeight, 0)

	l.status.SetRect(x, y, width, 1)
	l.panel.SetRect(x, y+1, width, panelHeight)
	l.button.SetRect(x+1, y+1+panelHeight, tview.TaggedStringWidth(l.button.GetLabel())+4, 1)
	l.help.SetRect(x, y+2+panelHeight, width, helpHeight)

	for _, child := range l.children() {
		child.Draw(screen)
	}
}

func (l *layout) InputHandler(event *tcell.EventKey) tview.Command {
	if keybind.Matches(event, l.quit) {
		return tview.QuitCommand{}
	}
	for _, child := range l.children() {
		if child.HasFocus() {
			return child.InputHandler(event)
		}
	}
	return nil
}

func (l *layout) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	x, y := event.Position()
	for _, child := range l.children() {
		if cx, cy, cw, ch := child.GetRect(); x >= cx && x < cx+cw && y >= cy && y < cy+ch {
			return child.MouseHandler(action, event)
		}
	}
	return nil, nil
}

func (l *layout) Focus(delegate func(p tview.Primitive)) {
	l.panel.Focus(delegate)
}

func (l *layout) HasFocus() bool {
	for _, child := range l.children() {
		if child.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

func (l *layout) IsDirty() bool {
	if l.Box.IsDirty() {
		return true
	}
	for _, child := range l.children() {
		if child.IsDirty() {
			return true
		}
	}
	return false
}

func (l *layout) MarkClean() {
	l.Box.MarkClean()
	for _, child := range l.children() {
		child.MarkClean()
	}
}
