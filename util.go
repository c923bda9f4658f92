package tview

import (
	"math"

	"github.com/gdamore/tcell/v3"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print prints text onto the screen into the given box at (x,y,maxWidth,1),
// not exceeding that box. The screen's background color will not be changed.
//
// Returns the number of bytes of the text printed and the width used for the
// printed graphemes.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	return PrintWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color))
}

// PrintWithStyle works like [Print] but takes a full style. A default
// background keeps whatever background is already on screen.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	keep := style.GetBackground() == tcell.ColorDefault
	start, end, width := printWithStyle(screen, text, x, y, maxWidth, alignment, style, keep)
	return end - start, width
}

// printWithStyle prints one line of text. It returns the start index, end
// index (exclusively), and screen width of the text actually printed. If
// maintainBackground is true, cells keep their existing background.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, maintainBackground bool) (start, end, printedWidth int) {
	totalWidth, totalHeight := screen.Size()
	if maxWidth <= 0 || len(text) == 0 || y < 0 || y >= totalHeight {
		return 0, 0, 0
	}

	textWidth := TaggedStringWidth(text)
	var state *stepState

	// Reduce all alignments to AlignmentLeft by chopping off leading
	// graphemes and moving x.
	switch alignment {
	case AlignmentRight:
		for len(text) > 0 && textWidth > maxWidth {
			_, text, state = step(text, state)
			textWidth -= state.Width()
			start += state.GrossLength()
		}
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		excess := (textWidth - maxWidth) / 2
		for len(text) > 0 && excess > 0 {
			_, text, state = step(text, state)
			excess -= state.Width()
			textWidth -= state.Width()
			start += state.GrossLength()
		}
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}

	end = start
	right := min(x+maxWidth, totalWidth)
	for len(text) > 0 && x < right {
		var cluster string
		cluster, text, state = step(text, state)
		width := state.Width()
		if cluster == "" || x+width > right {
			break
		}

		if width > 0 {
			cellStyle := style
			if maintainBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			screen.Put(x, y, cluster, cellStyle)
		}

		x += width
		end += state.GrossLength()
		printedWidth += width
	}

	return
}

// PrintSimple prints white text to the screen at the given position.
func PrintSimple(screen tcell.Screen, text string, x, y int) {
	Print(screen, text, x, y, math.MaxInt32, AlignmentLeft, Styles.PrimaryTextColor)
}

// fill paints the rectangle with blanks in the given style.
func fill(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for column := x; column < x+width; column++ {
			screen.Put(column, row, " ", style)
		}
	}
}
