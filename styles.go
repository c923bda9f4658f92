package tview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	ContrastBackgroundColor  tcell.Color // Background color for contrasting elements.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. hints).
	InverseTextColor         tcell.Color // Text on primary-colored backgrounds.
	SelectedBackgroundColor  tcell.Color // Background of the selected list item.
	IndicatorColor           tcell.Color // Refresh indicators and spinners.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	ContrastBackgroundColor:  color.Blue,
	BorderColor:              color.White,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Silver,
	InverseTextColor:         color.Blue,
	SelectedBackgroundColor:  color.Navy,
	IndicatorColor:           color.Aqua,
}
