package tview

import "github.com/gdamore/tcell/v3"

// Text displays word-wrapped, single-styled text. It can be scrolled
// vertically and measured, which makes it usable as a list item.
type Text struct {
	*Box

	text      string
	style     tcell.Style
	alignment Alignment

	// Number of wrapped lines scrolled out at the top.
	scroll int
}

// NewText returns a new text primitive showing text.
func NewText(text string) *Text {
	return &Text{
		Box:   NewBox(),
		text:  text,
		style: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
	}
}

// SetText replaces the text and scrolls back to the top.
func (t *Text) SetText(text string) *Text {
	if t.text != text {
		t.text = text
		t.scroll = 0
		t.MarkDirty()
	}
	return t
}

// GetText returns the text.
func (t *Text) GetText() string {
	return t.text
}

// SetTextStyle sets the style of the text.
func (t *Text) SetTextStyle(style tcell.Style) *Text {
	if t.style != style {
		t.style = style
		t.MarkDirty()
	}
	return t
}

// SetAlignment sets the horizontal alignment of each line.
func (t *Text) SetAlignment(alignment Alignment) *Text {
	if t.alignment != alignment {
		t.alignment = alignment
		t.MarkDirty()
	}
	return t
}

// Height returns the number of rows the text needs at the given width,
// including borders and padding.
func (t *Text) Height(width int) int {
	_, _, innerWidth, innerHeight := t.GetInnerRect()
	_, _, outerWidth, outerHeight := t.GetRect()
	chrome := outerHeight - innerHeight
	return len(WordWrap(t.text, width-(outerWidth-innerWidth))) + chrome
}

// ScrollTo scrolls so that the wrapped line at index row is at the top.
func (t *Text) ScrollTo(row int) *Text {
	row = max(row, 0)
	if t.scroll != row {
		t.scroll = row
		t.MarkDirty()
	}
	return t
}

// CanScrollUp reports whether lines are scrolled out at the top.
func (t *Text) CanScrollUp() bool {
	return t.scroll > 0
}

// Draw draws this primitive onto the screen.
func (t *Text) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	lines := WordWrap(t.text, width)
	t.scroll = min(t.scroll, max(len(lines)-1, 0))
	for row := 0; row < height && t.scroll+row < len(lines); row++ {
		printWithStyle(screen, lines[t.scroll+row], x, y+row, width, t.alignment, t.style, t.style.GetBackground() == tcell.ColorDefault)
	}
}

// InputHandler scrolls the text with the arrow keys.
func (t *Text) InputHandler(event *tcell.EventKey) Command {
	switch event.Key() {
	case tcell.KeyUp:
		t.ScrollTo(t.scroll - 1)
	case tcell.KeyDown:
		t.ScrollTo(t.scroll + 1)
	case tcell.KeyHome:
		t.ScrollTo(0)
	default:
		return nil
	}
	return RedrawCommand{}
}
