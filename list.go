package tview

import "github.com/gdamore/tcell/v3"

// ListItem is a primitive which can be measured for a given width. Items report
// their own height so the list can lay out and scroll variable-height items.
type ListItem interface {
	Primitive
	Height(width int) int
}

// ListBuilder returns the item for the given index, highlighting it if it is
// the cursor item. It must return nil when the index is out of range.
type ListBuilder func(index int, cursor int) ListItem

// List displays a virtual list of primitives returned by a builder function.
// Items are built on demand for the visible rows only.
type List struct {
	*Box

	builder ListBuilder
	cursor  int
	scroll  listScroll
	changed func(index int)

	// The items of the last draw, used for hit testing.
	drawn []drawnListItem
}

type listScroll struct {
	// Index of the top item in the viewport.
	top int
	// Number of rows of the top item scrolled out of view.
	offset int
	// Pending scroll delta in rows, applied on the next draw.
	pending int
	// Bring the cursor into view on the next draw.
	wantsCursor bool
}

type drawnListItem struct {
	index  int
	row    int
	height int
}

// NewList returns a new, empty list.
func NewList() *List {
	return &List{
		Box:    NewBox(),
		cursor: -1,
	}
}

// SetBuilder sets the builder used to create list items on demand and scrolls
// back to the start.
func (l *List) SetBuilder(builder ListBuilder) *List {
	l.builder = builder
	l.scroll = listScroll{}
	l.drawn = nil
	l.MarkDirty()
	return l
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (l *List) SetChangedFunc(handler func(index int)) *List {
	l.changed = handler
	return l
}

// Cursor returns the current cursor index, or -1.
func (l *List) Cursor() int {
	return l.cursor
}

// SetCursor selects the item at index. Use -1 to clear the selection.
func (l *List) SetCursor(index int) *List {
	index = max(index, -1)
	if l.cursor == index {
		return l
	}
	l.cursor = index
	l.scroll.wantsCursor = index >= 0
	l.MarkDirty()
	if l.changed != nil {
		l.changed(index)
	}
	return l
}

// NextItem moves the cursor to the next item, if any.
func (l *List) NextItem() bool {
	if l.builder == nil || l.builder(l.cursor+1, l.cursor) == nil {
		return false
	}
	l.SetCursor(l.cursor + 1)
	return true
}

// PrevItem moves the cursor to the previous item, if any.
func (l *List) PrevItem() bool {
	if l.cursor <= 0 {
		return false
	}
	l.SetCursor(l.cursor - 1)
	return true
}

// ScrollBy scrolls the list by the given number of rows on the next draw.
// Positive numbers scroll down.
func (l *List) ScrollBy(rows int) *List {
	if rows != 0 {
		l.scroll.pending += rows
		l.MarkDirty()
	}
	return l
}

// ScrollToStart scrolls back to the first item without changing the cursor.
func (l *List) ScrollToStart() *List {
	l.scroll.top, l.scroll.offset, l.scroll.pending = 0, 0, 0
	l.scroll.wantsCursor = false
	l.MarkDirty()
	return l
}

// CanScrollUp reports whether the list is scrolled away from its first row.
func (l *List) CanScrollUp() bool {
	return l.scroll.top > 0 || l.scroll.offset > 0
}

// Draw draws this primitive onto the screen.
func (l *List) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	l.drawn = l.drawn[:0]
	if width <= 0 || height <= 0 || l.builder == nil {
		return
	}

	l.scrollRows(l.scroll.pending, width, height)
	l.scroll.pending = 0
	if l.scroll.wantsCursor {
		l.revealCursor(width, height)
	}

	clipped := NewClipScreen(screen, x, y, width, height)
	row := -l.scroll.offset
	for index := l.scroll.top; row < height; index++ {
		item := l.builder(index, l.cursor)
		if item == nil {
			break
		}
		itemHeight := l.itemHeight(item, width)
		item.SetRect(x, y+row, width, itemHeight)
		item.Draw(clipped)
		l.drawn = append(l.drawn, drawnListItem{index: index, row: row, height: itemHeight})
		row += itemHeight
	}
}

func (l *List) itemHeight(item ListItem, width int) int {
	if item == nil {
		return 0
	}
	return max(item.Height(width), 1)
}

// scrollRows moves the viewport by delta rows, never past either end.
func (l *List) scrollRows(delta, width, height int) {
	if delta == 0 {
		return
	}

	offset := l.scroll.offset + delta
	for offset < 0 {
		if l.scroll.top == 0 {
			offset = 0
			break
		}
		l.scroll.top--
		offset += l.itemHeight(l.builder(l.scroll.top, l.cursor), width)
	}
	for {
		item := l.builder(l.scroll.top, l.cursor)
		if item == nil || l.builder(l.scroll.top+1, l.cursor) == nil {
			break
		}
		itemHeight := l.itemHeight(item, width)
		if offset < itemHeight {
			break
		}
		offset -= itemHeight
		l.scroll.top++
	}
	l.scroll.offset = offset

	endTop, endOffset := l.endPosition(width, height)
	if l.scroll.top > endTop || (l.scroll.top == endTop && l.scroll.offset > endOffset) {
		l.scroll.top, l.scroll.offset = endTop, endOffset
	}
}

// endPosition returns the scroll position which shows the last rows of the
// list at the bottom of the viewport.
func (l *List) endPosition(width, height int) (top, offset int) {
	last := l.scroll.top
	for l.builder(last+1, l.cursor) != nil {
		last++
	}

	total := 0
	for index := last; index >= 0; index-- {
		itemHeight := l.itemHeight(l.builder(index, l.cursor), width)
		if total+itemHeight >= height {
			return index, total + itemHeight - height
		}
		total += itemHeight
	}
	return 0, 0
}

// revealCursor scrolls the least amount needed to show the cursor item.
func (l *List) revealCursor(width, height int) {
	l.scroll.wantsCursor = false
	if l.cursor < 0 {
		return
	}
	if l.cursor < l.scroll.top || (l.cursor == l.scroll.top && l.scroll.offset > 0) {
		l.scroll.top, l.scroll.offset = l.cursor, 0
		return
	}

	bottom := -l.scroll.offset
	for index := l.scroll.top; index <= l.cursor; index++ {
		item := l.builder(index, l.cursor)
		if item == nil {
			return
		}
		bottom += l.itemHeight(item, width)
	}
	if bottom > height {
		l.scrollRows(bottom-height, width, height)
	}
}

// InputHandler moves the cursor and pages through the list.
func (l *List) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := l.GetInnerRect()
	switch event.Key() {
	case tcell.KeyDown:
		l.NextItem()
	case tcell.KeyUp:
		l.PrevItem()
	case tcell.KeyPgDn:
		l.ScrollBy(max(height, 1))
	case tcell.KeyPgUp:
		l.ScrollBy(-max(height, 1))
	case tcell.KeyHome:
		l.ScrollToStart()
		if l.cursor >= 0 {
			l.SetCursor(0)
		}
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler selects clicked items and scrolls with the wheel.
func (l *List) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: l}
	case MouseLeftClick:
		if index := l.indexAtRow(y); index >= 0 {
			l.SetCursor(index)
		}
		return nil, RedrawCommand{}
	case MouseScrollUp:
		l.ScrollBy(-3)
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.ScrollBy(3)
		return nil, RedrawCommand{}
	}
	return nil, nil
}

// indexAtRow returns the index of the item drawn at screen row y, or -1.
func (l *List) indexAtRow(y int) int {
	_, innerY, _, _ := l.GetInnerRect()
	row := y - innerY
	for _, item := range l.drawn {
		if row >= item.row && row < item.row+item.height {
			return item.index
		}
	}
	return -1
}

var _ Primitive = &List{}
