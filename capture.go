package tview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type capturedCell struct {
	text  string
	style tcell.Style
	// wide marks the trailing columns of a wide grapheme.
	wide bool
}

// CaptureScreen is an in-memory screen of a fixed size. Primitives draw onto
// it like onto a terminal, which makes it useful for tests and for rendering
// snapshots without a terminal.
//
// Only the drawing methods are implemented. Calling terminal methods such as
// EventQ on a CaptureScreen panics.
type CaptureScreen struct {
	tcell.Screen

	width, height    int
	cells            []capturedCell
	style            tcell.Style
	cursorX, cursorY int
}

// NewCaptureScreen returns a blank screen of the given size.
func NewCaptureScreen(width, height int) *CaptureScreen {
	width, height = max(width, 0), max(height, 0)
	s := &CaptureScreen{
		width:   width,
		height:  height,
		cells:   make([]capturedCell, width*height),
		cursorX: -1,
		cursorY: -1,
	}
	s.Clear()
	return s
}

// Size returns the screen size.
func (s *CaptureScreen) Size() (int, int) {
	return s.width, s.height
}

// Clear blanks all cells.
func (s *CaptureScreen) Clear() {
	s.Fill(' ', s.style)
}

// Fill sets every cell to r.
func (s *CaptureScreen) Fill(r rune, style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = capturedCell{text: string(r), style: style}
	}
}

// SetStyle sets the style used by Clear and PutStr.
func (s *CaptureScreen) SetStyle(style tcell.Style) {
	s.style = style
}

// Get returns the grapheme, style and width of the cell at x, y.
func (s *CaptureScreen) Get(x, y int) (string, tcell.Style, int) {
	if !s.inBounds(x, y) {
		return "", tcell.StyleDefault, 1
	}
	c := s.cells[y*s.width+x]
	return c.text, c.style, max(uniseg.StringWidth(c.text), 1)
}

// Put writes the first grapheme of str at x, y and returns the remainder and
// the width written.
func (s *CaptureScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}
	cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if width <= 0 {
		return rest, 0
	}
	if !s.inBounds(x, y) {
		return rest, width
	}
	// A wide grapheme in the last column does not fit.
	if width > 1 && x+width > s.width {
		cluster, width = " ", 1
	}

	s.cells[y*s.width+x] = capturedCell{text: cluster, style: style}
	for i := 1; i < width; i++ {
		s.cells[y*s.width+x+i] = capturedCell{style: style, wide: true}
	}
	return rest, width
}

// PutStr writes str in the default style.
func (s *CaptureScreen) PutStr(x, y int, str string) {
	s.PutStrStyled(x, y, str, s.style)
}

// PutStrStyled writes str starting at x, y.
func (s *CaptureScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	for str != "" && x < s.width {
		rest, width := s.Put(x, y, str, style)
		if width <= 0 && rest == str {
			return
		}
		x += width
		str = rest
	}
}

// ShowCursor records the cursor position.
func (s *CaptureScreen) ShowCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
}

// HideCursor hides the cursor.
func (s *CaptureScreen) HideCursor() {
	s.cursorX, s.cursorY = -1, -1
}

// Cursor returns the cursor position, or -1, -1 if it is hidden.
func (s *CaptureScreen) Cursor() (int, int) {
	return s.cursorX, s.cursorY
}

// Show is a no-op.
func (s *CaptureScreen) Show() {}

// Sync is a no-op.
func (s *CaptureScreen) Sync() {}

// Style returns the style of the cell at x, y.
func (s *CaptureScreen) Style(x, y int) tcell.Style {
	_, style, _ := s.Get(x, y)
	return style
}

// Line returns the text of row y with trailing blanks removed.
func (s *CaptureScreen) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		if !c.wide {
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns the text of all rows.
func (s *CaptureScreen) Lines() []string {
	lines := make([]string, s.height)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return lines
}

// String returns the screen text, one line per row.
func (s *CaptureScreen) String() string {
	return strings.Join(s.Lines(), "\n")
}

func (s *CaptureScreen) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}
