package help

import (
	"github.com/gdamore/tcell/v3"
	tview "github.com/xqrs/tview-pull"
)

type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles derives the help styles from tview.Styles.
func DefaultStyles() Styles {
	key := tcell.StyleDefault.Foreground(tview.Styles.IndicatorColor).Bold(true)
	desc := tcell.StyleDefault.Foreground(tview.Styles.SecondaryTextColor)
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
