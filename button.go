package tview

import (
	"github.com/gdamore/tcell/v3"
)

// Button is a labeled box that triggers an action when selected.
type Button struct {
	*Box

	// If set to true, the button cannot be activated.
	disabled bool

	// The text to be displayed inside the button.
	label string

	// The button's style when unfocused, focused and disabled.
	style, activatedStyle, disabledStyle tcell.Style

	// An optional function which is called when the button was selected.
	selected func() Command
}

// NewButton returns a new button.
func NewButton(label string) *Button {
	box := NewBox()
	box.SetRect(0, 0, TaggedStringWidth(label)+4, 1)
	return &Button{
		Box:            box,
		label:          label,
		style:          tcell.StyleDefault.Background(Styles.ContrastBackgroundColor).Foreground(Styles.PrimaryTextColor),
		activatedStyle: tcell.StyleDefault.Background(Styles.PrimaryTextColor).Foreground(Styles.InverseTextColor),
		disabledStyle:  tcell.StyleDefault.Background(Styles.ContrastBackgroundColor).Foreground(Styles.SecondaryTextColor),
	}
}

// SetLabel sets the button text.
func (b *Button) SetLabel(label string) *Button {
	if b.label != label {
		b.label = label
		b.MarkDirty()
	}
	return b
}

// GetLabel returns the button text.
func (b *Button) GetLabel() string {
	return b.label
}

// SetStyle sets the style of the button used when it is not focused.
func (b *Button) SetStyle(style tcell.Style) *Button {
	if b.style != style {
		b.style = style
		b.MarkDirty()
	}
	return b
}

// SetActivatedStyle sets the style of the button used when it is focused.
func (b *Button) SetActivatedStyle(style tcell.Style) *Button {
	if b.activatedStyle != style {
		b.activatedStyle = style
		b.MarkDirty()
	}
	return b
}

// SetDisabled sets whether or not the button is disabled. Disabled buttons
// cannot be activated.
func (b *Button) SetDisabled(disabled bool) *Button {
	if b.disabled != disabled {
		b.disabled = disabled
		b.MarkDirty()
	}
	return b
}

// GetDisabled returns whether or not the button is disabled.
func (b *Button) GetDisabled() bool {
	return b.disabled
}

// SetSelectedFunc sets a handler which is called when the button was
// selected. The returned command is executed by the application.
func (b *Button) SetSelectedFunc(handler func() Command) *Button {
	b.selected = handler
	return b
}

// Activate selects the button as if it was pressed. It does nothing if the
// button is disabled.
func (b *Button) Activate() Command {
	if b.disabled || b.selected == nil {
		return nil
	}
	return AppendCommand(b.selected(), RedrawCommand{})
}

// Draw draws this primitive onto the screen.
func (b *Button) Draw(screen tcell.Screen) {
	style := b.style
	switch {
	case b.disabled:
		style = b.disabledStyle
	case b.HasFocus():
		style = b.activatedStyle
	}
	b.SetBackgroundColor(style.GetBackground())
	b.DrawForSubclass(screen, b)

	x, y, width, height := b.GetInnerRect()
	if width > 0 && height > 0 {
		printWithStyle(screen, b.label, x, y+height/2, width, AlignmentCenter, style, true)
	}
}

// InputHandler activates the button on Enter.
func (b *Button) InputHandler(event *tcell.EventKey) Command {
	if event.Key() == tcell.KeyEnter {
		return b.Activate()
	}
	return nil
}

// MouseHandler focuses the button when pressed and activates it on click.
func (b *Button) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if b.disabled || !b.InRect(event.Position()) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: b}
	case MouseLeftClick:
		return nil, b.Activate()
	}
	return nil, nil
}
