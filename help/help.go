// Package help renders the key bindings of a KeyMap as a one-line or
// multi-column help view.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
	"github.com/xqrs/tview-pull/keybind"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

type Help struct {
	*tview.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            tview.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       "…",
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll enables or disables full help mode.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

// ShowAll returns whether full help mode is enabled.
func (h *Help) ShowAll() bool {
	return h.showAll
}

// SetShortSeparator sets the separator used in short help mode.
func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	return h
}

// SetEllipsis sets the marker appended when bindings are left out.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

// Height returns the number of rows needed for the current mode.
func (h *Help) Height(width int) int {
	if h.keyMap == nil {
		return 0
	}
	if !h.showAll {
		return 1
	}
	return len(h.fullLines(h.keyMap.FullHelp(), width))
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	var lines [][]segment
	if h.showAll {
		lines = h.fullLines(h.keyMap.FullHelp(), width)
	} else {
		lines = [][]segment{h.shortLine(h.keyMap.ShortHelp(), width)}
	}
	for row := 0; row < len(lines) && row < height; row++ {
		drawSegments(screen, x, y+row, width, lines[row])
	}
}

// Lines renders the current mode as plain text lines.
func (h *Help) Lines(width int) []string {
	if h.keyMap == nil {
		return nil
	}
	var styled [][]segment
	if h.showAll {
		styled = h.fullLines(h.keyMap.FullHelp(), width)
	} else {
		styled = [][]segment{h.shortLine(h.keyMap.ShortHelp(), width)}
	}
	lines := make([]string, 0, len(styled))
	for _, line := range styled {
		var b strings.Builder
		for _, s := range line {
			b.WriteString(s.text)
		}
		lines = append(lines, b.String())
	}
	return lines
}

type segment struct {
	text  string
	style tcell.Style
}

func (h *Help) shortLine(bindings []keybind.Keybind, maxWidth int) []segment {
	var out []segment
	separator := segment{text: h.shortSeparator, style: h.Styles.ShortSeparatorStyle}
	for _, kb := range bindings {
		item := itemSegments(kb, h.Styles.ShortKeyStyle, h.Styles.ShortDescStyle)
		if len(item) == 0 {
			continue
		}
		candidate := item
		if len(out) > 0 {
			candidate = append(append(cloneSegments(out), separator), item...)
		}
		if maxWidth > 0 && segmentsWidth(candidate) > maxWidth {
			return append(out, h.truncationTail(out, maxWidth)...)
		}
		out = candidate
	}
	return out
}

func (h *Help) fullLines(groups [][]keybind.Keybind, maxWidth int) [][]segment {
	type column struct {
		entries []keybind.Help
		keyW    int
		colW    int
	}

	var columns []column
	for _, group := range groups {
		var col column
		for _, kb := range group {
			if hp := kb.Help(); kb.Enabled() && (hp.Key != "" || hp.Desc != "") {
				col.entries = append(col.entries, hp)
				col.keyW = max(col.keyW, tview.TaggedStringWidth(hp.Key))
			}
		}
		for _, e := range col.entries {
			col.colW = max(col.colW, col.keyW+1+tview.TaggedStringWidth(e.Desc))
		}
		if len(col.entries) > 0 {
			columns = append(columns, col)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	// Include columns left to right while they fit.
	sepW := tview.TaggedStringWidth(h.fullSeparator)
	included, totalW, rows := 0, 0, 0
	for i, col := range columns {
		nextW := col.colW
		if i > 0 {
			nextW += sepW
		}
		if maxWidth > 0 && totalW+nextW > maxWidth {
			break
		}
		included++
		totalW += nextW
		rows = max(rows, len(col.entries))
	}
	if included == 0 {
		return [][]segment{{{text: h.ellipsis, style: h.Styles.EllipsisStyle}}}
	}

	lines := make([][]segment, rows)
	for row := range lines {
		for i, col := range columns[:included] {
			if i > 0 {
				lines[row] = append(lines[row], segment{text: h.fullSeparator, style: h.Styles.FullSeparatorStyle})
			}
			var cell []segment
			if row < len(col.entries) {
				e := col.entries[row]
				cell = []segment{
					{text: e.Key + strings.Repeat(" ", col.keyW-tview.TaggedStringWidth(e.Key)), style: h.Styles.FullKeyStyle},
					{text: " " + e.Desc, style: h.Styles.FullDescStyle},
				}
			}
			// Pad every column but the last so separators stay aligned.
			if pad := col.colW - segmentsWidth(cell); i < included-1 && pad > 0 {
				cell = append(cell, segment{text: strings.Repeat(" ", pad), style: h.Styles.FullDescStyle})
			}
			lines[row] = append(lines[row], cell...)
		}
	}

	if included < len(columns) {
		lines[0] = append(lines[0], h.truncationTail(lines[0], maxWidth)...)
	}
	return lines
}

// truncationTail returns the ellipsis if it fully fits after current.
func (h *Help) truncationTail(current []segment, maxWidth int) []segment {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	tail := []segment{{text: " " + h.ellipsis, style: h.Styles.EllipsisStyle}}
	if segmentsWidth(current)+segmentsWidth(tail) <= maxWidth {
		return tail
	}
	return nil
}

func drawSegments(screen tcell.Screen, x, y, width int, segments []segment) {
	for _, s := range segments {
		if width <= 0 {
			return
		}
		if s.text == "" {
			continue
		}
		_, printed := tview.PrintWithStyle(screen, s.text, x, y, width, tview.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

func itemSegments(kb keybind.Keybind, keyStyle, descStyle tcell.Style) []segment {
	if !kb.Enabled() {
		return nil
	}
	help := kb.Help()
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []segment{{text: help.Desc, style: descStyle}}
	case help.Desc == "":
		return []segment{{text: help.Key, style: keyStyle}}
	default:
		return []segment{{text: help.Key, style: keyStyle}, {text: " " + help.Desc, style: descStyle}}
	}
}

func segmentsWidth(segments []segment) int {
	width := 0
	for _, s := range segments {
		width += tview.TaggedStringWidth(s.text)
	}
	return width
}

func cloneSegments(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	return out
}
