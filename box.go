package tview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
)

// Box is the base of every widget in this package. It owns the rectangle,
// padding, an optional frame with a title, focus state and the dirty flag.
// Widgets embed it and draw their content into the inner rectangle.
type Box struct {
	x, y, width, height int

	// Cached inner rectangle, recomputed while innerX < 0.
	innerX, innerY, innerWidth, innerHeight int

	paddingTop, paddingBottom, paddingLeft, paddingRight int

	backgroundColor tcell.Color

	dontClear bool

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	// Whether or not this box has focus. Containers delegate focus to their
	// children and typically ignore this.
	hasFocus bool

	dirty atomic.Bool

	// Called on Focus and Blur.
	focus, blur func()
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	b := &Box{
		width:           15,
		height:          10,
		innerX:          -1,
		backgroundColor: Styles.PrimitiveBackgroundColor,

		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:   BorderSetPlain(),

		titleStyle:     tcell.StyleDefault.Foreground(Styles.TitleColor),
		titleAlignment: AlignmentCenter,
	}
	b.dirty.Store(true)
	return b
}

// SetBorderPadding sets the empty rows and columns between the frame and the
// content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	if b.paddingTop != top || b.paddingBottom != bottom || b.paddingLeft != left || b.paddingRight != right {
		b.paddingTop, b.paddingBottom, b.paddingLeft, b.paddingRight = top, bottom, left, right
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// GetBorderPadding returns the padding in the order taken by
// [Box.SetBorderPadding].
func (b *Box) GetBorderPadding() (top, bottom, left, right int) {
	return b.paddingTop, b.paddingBottom, b.paddingLeft, b.paddingRight
}

// GetRect returns x, y, width and height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the rectangle left for content once the frame and the
// padding are taken off. Width and height are never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}

	x, y, width, height := b.GetRect()
	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}

	x += b.paddingLeft
	y += b.paddingTop
	width -= b.paddingLeft + b.paddingRight
	height -= b.paddingTop + b.paddingBottom
	return x, y, max(width, 0), max(height, 0)
}

// SetRect moves and resizes the box.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x, b.y, b.width, b.height = x, y, width, height
		b.innerX = -1
		b.MarkDirty()
	}
}

// IsDirty reports whether the box changed since it was last drawn.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty requests a redraw.
func (b *Box) MarkDirty() {
	b.dirty.Store(true)
}

// MarkClean clears the dirty flag.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// InputHandler ignores key events.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// PasteHandler ignores pasted text.
func (b *Box) PasteHandler(text string) Command {
	return nil
}

// MouseHandler focuses the box when it is pressed.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect reports whether the cell x, y lies inside the box.
func (b *Box) InRect(x, y int) bool {
	rectX, rectY, width, height := b.GetRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// InInnerRect reports whether the cell x, y lies inside the content area.
func (b *Box) InInnerRect(x, y int) bool {
	rectX, rectY, width, height := b.GetInnerRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// SetBackgroundColor sets the fill color. The frame follows it.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.borderStyle = b.borderStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

// GetBackgroundColor returns the fill color.
func (b *Box) GetBackgroundColor() tcell.Color {
	return b.backgroundColor
}

// SetDontClear sets whether the background is left untouched when drawing.
func (b *Box) SetDontClear(dontClear bool) *Box {
	b.dontClear = dontClear
	return b
}

// SetBorders selects the sides of the frame.
func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// GetBorders returns the sides of the frame.
func (b *Box) GetBorders() Borders {
	return b.borders
}

// SetBorderSet sets the characters used for the frame.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	if b.borderSet != borderSet {
		b.borderSet = borderSet
		b.MarkDirty()
	}
	return b
}

// SetBorderStyle sets the style of the frame.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	if b.borderStyle != style {
		b.borderStyle = style
		b.MarkDirty()
	}
	return b
}

// GetTitle returns the title.
func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the title shown in the top row.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetTitleAlignment aligns the title within the top row.
func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	if b.titleAlignment != alignment {
		b.titleAlignment = alignment
		b.MarkDirty()
	}
	return b
}

// Draw fills the box and draws its frame.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws the box for the widget p embedding it. The title is
// bold while p has focus.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	if !b.dontClear {
		fill(screen, b.x, b.y, b.width, b.height, tcell.StyleDefault.Background(b.backgroundColor))
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorder(screen)
	}

	if b.title != "" && b.width >= 4 {
		style := b.titleStyle
		if p.HasFocus() {
			style = style.Bold(true)
		}
		start, end, _ := printWithStyle(screen, b.title, b.x+1, b.y, b.width-2, b.titleAlignment, style, true)
		if printed := end - start; printed > 0 && printed < len(b.title) {
			xEllipsis := b.x + b.width - 2
			if b.titleAlignment == AlignmentRight {
				xEllipsis = b.x + 1
			}
			screen.Put(xEllipsis, b.y, SemigraphicsHorizontalEllipsis, style)
		}
	}

	b.innerX = -1
	b.innerX, b.innerY, b.innerWidth, b.innerHeight = b.GetInnerRect()
}

func (b *Box) drawBorder(screen tcell.Screen) {
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1
	set, style := b.borderSet, b.borderStyle

	for x := left + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			screen.Put(x, top, set.Top, style)
		}
		if b.borders.Has(BordersBottom) {
			screen.Put(x, bottom, set.Bottom, style)
		}
	}
	for y := top + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			screen.Put(left, y, set.Left, style)
		}
		if b.borders.Has(BordersRight) {
			screen.Put(right, y, set.Right, style)
		}
	}

	corners := []struct {
		sides Borders
		x, y  int
		char  string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, corner := range corners {
		if b.borders.Has(corner.sides) {
			screen.Put(corner.x, corner.y, corner.char, style)
		}
	}
}

// SetFocusFunc sets a function called whenever the box gains focus.
func (b *Box) SetFocusFunc(callback func()) *Box {
	b.focus = callback
	return b
}

// SetBlurFunc sets a function called whenever the box loses focus.
func (b *Box) SetBlurFunc(callback func()) *Box {
	b.blur = callback
	return b
}

// Focus marks the box focused.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
	if b.focus != nil {
		b.focus()
	}
}

// Blur marks the box unfocused.
func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
	if b.blur != nil {
		b.blur()
	}
}

// HasFocus reports whether the box is focused.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}
