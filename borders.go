package tview

// Box drawing characters used by the border sets.
const (
	BoxDrawingsLightHorizontal      = "\u2500" // ─
	BoxDrawingsLightVertical        = "\u2502" // │
	BoxDrawingsLightDownAndRight    = "\u250c" // ┌
	BoxDrawingsLightDownAndLeft     = "\u2510" // ┐
	BoxDrawingsLightUpAndRight      = "\u2514" // └
	BoxDrawingsLightUpAndLeft       = "\u2518" // ┘
	BoxDrawingsLightArcDownAndRight = "\u256d" // ╭
	BoxDrawingsLightArcDownAndLeft  = "\u256e" // ╮
	BoxDrawingsLightArcUpAndLeft    = "\u256f" // ╯
	BoxDrawingsLightArcUpAndRight   = "\u2570" // ╰

	SemigraphicsHorizontalEllipsis = "\u2026" // …
)

// BorderSet defines the characters of a box frame.
type BorderSet struct {
	Top         string
	Bottom      string
	Left        string
	Right       string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsLightHorizontal,
		Bottom:      BoxDrawingsLightHorizontal,
		Left:        BoxDrawingsLightVertical,
		Right:       BoxDrawingsLightVertical,
		TopLeft:     BoxDrawingsLightDownAndRight,
		TopRight:    BoxDrawingsLightDownAndLeft,
		BottomLeft:  BoxDrawingsLightUpAndRight,
		BottomRight: BoxDrawingsLightUpAndLeft,
	}
}

func BorderSetRound() BorderSet {
	set := BorderSetPlain()
	set.TopLeft = BoxDrawingsLightArcDownAndRight
	set.TopRight = BoxDrawingsLightArcDownAndLeft
	set.BottomLeft = BoxDrawingsLightArcUpAndRight
	set.BottomRight = BoxDrawingsLightArcUpAndLeft
	return set
}

// Borders is a bit set of box sides.
type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

func (b Borders) Has(flag Borders) bool {
	return b&flag == flag
}
