package gesture

import "math"

// DragSample holds the values derived from one move event.
type DragSample struct {
	YDelta           float64
	ScrolledDistance float64
	DragFraction     float64
	BoundedFraction  float64
	Overscroll       float64
	// ResistanceFraction is the tension applied to the overscroll.
	ResistanceFraction float64
	ExtraMove          float64
	TargetOffset       int
}

// Valid reports whether the sample describes a downward pull. Samples with a
// negative drag fraction are ignored.
func (s DragSample) Valid() bool {
	return s.DragFraction >= 0
}

// Sample computes the content offset for a pointer that moved yDelta from
// where it was pressed. Past totalDragDistance the offset follows the
// slingshot curve: additional travel yields less and less movement.
func Sample(yDelta float64, totalDragDistance int) DragSample {
	total := float64(totalDragDistance)
	s := DragSample{
		YDelta:           yDelta,
		ScrolledDistance: yDelta * DragRate,
	}
	if total <= 0 {
		s.DragFraction = -1
		return s
	}
	s.DragFraction = s.ScrolledDistance / total
	if s.DragFraction < 0 {
		return s
	}

	s.BoundedFraction = math.Min(1, math.Abs(s.DragFraction))
	s.Overscroll = math.Max(0, math.Abs(s.ScrolledDistance)-total)
	s.ResistanceFraction = tension(s.Overscroll, total)
	s.ExtraMove = total * s.ResistanceFraction / 2
	s.TargetOffset = int(math.Round(total*s.BoundedFraction + s.ExtraMove))
	return s
}

// tension maps the overscroll onto the slingshot curve. It saturates once the
// overscroll reaches twice the slingshot distance.
func tension(overscroll, slingshot float64) float64 {
	percent := math.Max(0, math.Min(overscroll, slingshot*2)/slingshot)
	quarter := percent / 4
	return (quarter - quarter*quarter) * 2
}

// releaseOverscroll is the damped distance compared against the trigger
// distance when the pointer is released.
func releaseOverscroll(yDelta float64) float64 {
	return yDelta * DragRate
}
