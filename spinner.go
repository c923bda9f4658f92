package tview

import "github.com/gdamore/tcell/v3"

// SpinnerFrames are the default braille frames of a Spinner.
var SpinnerFrames = []string{"\u280b", "\u2819", "\u2839", "\u2838", "\u283c", "\u2834", "\u2826", "\u2827", "\u2807", "\u280f"}

// Spinner shows an animated frame followed by a label, centered in its box.
// It does not animate by itself; call Step for every frame.
type Spinner struct {
	*Box

	frames []string
	frame  int
	label  string
	style  tcell.Style
}

// NewSpinner returns a spinner with the given label.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		Box:    NewBox(),
		frames: SpinnerFrames,
		label:  label,
		style:  tcell.StyleDefault.Foreground(Styles.IndicatorColor),
	}
}

// SetFrames replaces the animation frames. An empty slice restores the
// defaults.
func (s *Spinner) SetFrames(frames []string) *Spinner {
	if len(frames) == 0 {
		frames = SpinnerFrames
	}
	s.frames = frames
	s.frame = 0
	s.MarkDirty()
	return s
}

// SetLabel sets the text shown next to the frame.
func (s *Spinner) SetLabel(label string) *Spinner {
	if s.label != label {
		s.label = label
		s.MarkDirty()
	}
	return s
}

// GetLabel returns the label.
func (s *Spinner) GetLabel() string {
	return s.label
}

// SetSpinnerStyle sets the style of the frame and label.
func (s *Spinner) SetSpinnerStyle(style tcell.Style) *Spinner {
	if s.style != style {
		s.style = style
		s.MarkDirty()
	}
	return s
}

// Step advances to the next frame.
func (s *Spinner) Step() *Spinner {
	s.frame = (s.frame + 1) % len(s.frames)
	s.MarkDirty()
	return s
}

// Reset goes back to the first frame.
func (s *Spinner) Reset() *Spinner {
	if s.frame != 0 {
		s.frame = 0
		s.MarkDirty()
	}
	return s
}

// Frame returns the current frame.
func (s *Spinner) Frame() string {
	return s.frames[s.frame]
}

// Draw draws this primitive onto the screen.
func (s *Spinner) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, width, height := s.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	text := s.Frame()
	if s.label != "" {
		text += " " + s.label
	}
	printWithStyle(screen, text, x, y+(height-1)/2, width, AlignmentCenter, s.style, s.style.GetBackground() == tcell.ColorDefault)
}
