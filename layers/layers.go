// Package layers stacks primitives on top of each other.
package layers

import (
	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
)

// layer represents one layer of a Layers object.
type layer struct {
	name    string          // The layer's name.
	item    tview.Primitive // The layer's primitive.
	resize  bool            // Whether or not to resize the layer when it is drawn.
	visible bool            // Whether or not this layer is visible.
}

// Layers is a container for other primitives laid out on top of each other.
// Visible layers are drawn from back to front; only the front-most visible
// layer receives focus and input.
type Layers struct {
	*tview.Box

	// The contained layers. (Visible) layers are drawn from back to front.
	layers []*layer

	// The function which allows us to set the focus to a newly visible layer.
	setFocus func(p tview.Primitive)
	// An optional handler which is called whenever the visibility or the order
	// of layers changes.
	changed func()
}

// Option configures a layer on Add.
type Option func(*layer)

// WithName sets the layer's name.
func WithName(name string) Option {
	return func(l *layer) {
		l.name = name
	}
}

// WithResize sets whether the layer is resized to the container's inner rect.
func WithResize(resize bool) Option {
	return func(l *layer) {
		l.resize = resize
	}
}

// WithVisible sets the initial visibility of the layer.
func WithVisible(visible bool) Option {
	return func(l *layer) {
		l.visible = visible
	}
}

// New returns a new Layers object.
func New() *Layers {
	return &Layers{Box: tview.NewBox()}
}

// SetChangedFunc sets a handler which is called whenever the visibility or the
// order of any visible layers changes.
func (l *Layers) SetChangedFunc(handler func()) *Layers {
	l.changed = handler
	return l
}

// GetLayerCount returns the number of layers.
func (l *Layers) GetLayerCount() int {
	return len(l.layers)
}

// GetLayerNames returns all layer names ordered from front to back,
// optionally limited to visible layers.
func (l *Layers) GetLayerNames(visibleOnly bool) []string {
	var names []string
	for index := len(l.layers) - 1; index >= 0; index-- {
		if !visibleOnly || l.layers[index].visible {
			names = append(names, l.layers[index].name)
		}
	}
	return names
}

// GetVisible returns whether the given layer is visible.
func (l *Layers) GetVisible(name string) bool {
	if layer := l.find(name); layer != nil {
		return layer.visible
	}
	return false
}

// AddLayer adds a new layer in front of the existing ones. A layer with the
// same name is replaced.
func (l *Layers) AddLayer(item tview.Primitive, opts ...Option) *Layers {
	newLayer := &layer{item: item, visible: true}
	for _, opt := range opts {
		if opt != nil {
			opt(newLayer)
		}
	}
	if newLayer.name != "" {
		l.remove(newLayer.name)
	}
	l.layers = append(l.layers, newLayer)
	l.update(true)
	return l
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	if layer := l.remove(name); layer != nil {
		l.update(layer.visible)
	}
	return l
}

// HasLayer returns true if a layer with the given name exists.
func (l *Layers) HasLayer(name string) bool {
	return l.find(name) != nil
}

// GetLayer returns the primitive of the named layer, or nil.
func (l *Layers) GetLayer(name string) tview.Primitive {
	if layer := l.find(name); layer != nil {
		return layer.item
	}
	return nil
}

// ShowLayer makes a layer visible in addition to any other visible layers.
func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

// HideLayer hides a layer.
func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

// ShowOnly makes the named layer the only visible one.
func (l *Layers) ShowOnly(name string) *Layers {
	changed := false
	for _, layer := range l.layers {
		visible := layer.name == name
		if layer.visible != visible {
			layer.visible = visible
			changed = true
		}
	}
	l.update(changed)
	return l
}

// SendToFront moves the named layer in front of all others.
func (l *Layers) SendToFront(name string) *Layers {
	for index, layer := range l.layers {
		if layer.name == name {
			if index < len(l.layers)-1 {
				l.layers = append(append(l.layers[:index], l.layers[index+1:]...), layer)
				l.update(layer.visible)
			}
			break
		}
	}
	return l
}

// GetFrontLayer returns the front-most visible layer. If there are no visible
// layers, ("", nil) is returned.
func (l *Layers) GetFrontLayer() (name string, item tview.Primitive) {
	if front := l.front(); front != nil {
		return front.name, front.item
	}
	return "", nil
}

// IsDirty returns whether this primitive or one of its visible children needs
// a redraw.
func (l *Layers) IsDirty() bool {
	if l.Box.IsDirty() {
		return true
	}
	for _, layer := range l.layers {
		if layer.visible && layer.item.IsDirty() {
			return true
		}
	}
	return false
}

// MarkClean marks this primitive and all children as clean.
func (l *Layers) MarkClean() {
	l.Box.MarkClean()
	for _, layer := range l.layers {
		layer.item.MarkClean()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (l *Layers) HasFocus() bool {
	for _, layer := range l.layers {
		if layer.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus is called by the application when the primitive receives focus.
func (l *Layers) Focus(delegate func(p tview.Primitive)) {
	if delegate == nil {
		return // We cannot delegate so we cannot focus.
	}
	l.setFocus = delegate
	if front := l.front(); front != nil {
		delegate(front.item)
		return
	}
	l.Box.Focus(delegate)
}

// Draw draws this primitive onto the screen.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	for _, layer := range l.layers {
		if !layer.visible {
			continue
		}
		if layer.resize {
			layer.item.SetRect(x, y, width, height)
		}
		layer.item.Draw(screen)
	}
}

// MouseHandler passes mouse events to the front-most visible layer.
func (l *Layers) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	if front := l.front(); front != nil {
		return front.item.MouseHandler(action, event)
	}
	return nil, nil
}

// InputHandler passes key events to the focused layer.
func (l *Layers) InputHandler(event *tcell.EventKey) tview.Command {
	for _, layer := range l.layers {
		if layer.item.HasFocus() {
			return layer.item.InputHandler(event)
		}
	}
	return nil
}

// PasteHandler passes pasted text to the focused layer.
func (l *Layers) PasteHandler(text string) tview.Command {
	for _, layer := range l.layers {
		if layer.item.HasFocus() {
			return layer.item.PasteHandler(text)
		}
	}
	return nil
}

func (l *Layers) find(name string) *layer {
	for _, layer := range l.layers {
		if layer.name == name {
			return layer
		}
	}
	return nil
}

func (l *Layers) remove(name string) *layer {
	for index, layer := range l.layers {
		if layer.name == name {
			l.layers = append(l.layers[:index], l.layers[index+1:]...)
			return layer
		}
	}
	return nil
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	if layer := l.find(name); layer != nil && layer.visible != visible {
		layer.visible = visible
		l.update(true)
	}
	return l
}

// update marks the container dirty, notifies the changed handler and moves
// the focus to the new front layer.
func (l *Layers) update(changed bool) {
	if !changed {
		return
	}
	l.MarkDirty()
	if l.changed != nil {
		l.changed()
	}
	if l.HasFocus() && l.setFocus != nil {
		l.Focus(l.setFocus)
	}
}

func (l *Layers) front() *layer {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if l.layers[index].visible {
			return l.layers[index]
		}
	}
	return nil
}
