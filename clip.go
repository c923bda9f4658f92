package tview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// ClipScreen restricts drawing to a rectangle of another screen. Writes
// outside the rectangle are dropped.
type ClipScreen struct {
	tcell.Screen
	x, y, width, height int
}

// NewClipScreen returns a screen that only draws into the given rectangle of
// screen.
func NewClipScreen(screen tcell.Screen, x, y, width, height int) *ClipScreen {
	return &ClipScreen{
		Screen: screen,
		x:      x,
		y:      y,
		width:  max(width, 0),
		height: max(height, 0),
	}
}

func (s *ClipScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *ClipScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if !s.inBounds(x, y) {
		_, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
		return rest, width
	}
	return s.Screen.Put(x, y, str, style)
}

func (s *ClipScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *ClipScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	if y < s.y || y >= s.y+s.height {
		return
	}

	gr := uniseg.NewGraphemes(str)
	for gr.Next() {
		if x >= s.x+s.width {
			return
		}
		cluster := gr.Str()
		width := max(uniseg.StringWidth(cluster), 1)
		if x >= s.x && x+width <= s.x+s.width {
			s.Screen.Put(x, y, cluster, style)
		}
		x += width
	}
}

func (s *ClipScreen) ShowCursor(x int, y int) {
	if !s.inBounds(x, y) {
		s.Screen.HideCursor()
		return
	}
	s.Screen.ShowCursor(x, y)
}
