package gesture

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// TargetKind is the rest position an animation settles to.
type TargetKind int

const (
	// StartPosition settles the content back to offset 0.
	StartPosition TargetKind = iota
	// CorrectPosition settles the content to the trigger distance, reserving
	// room for the indicator while refreshing.
	CorrectPosition
)

func (k TargetKind) String() string {
	if k == CorrectPosition {
		return "correct"
	}
	return "start"
}

// AnimationRun is one time-driven settle animation.
type AnimationRun struct {
	Kind         TargetKind
	FromOffset   int
	FromFraction float64
	Duration     time.Duration
	Started      time.Time
}

// progress returns the linear progress of the run at now, in [0, 1].
func (r AnimationRun) progress(now time.Time) float64 {
	if r.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(r.Started)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= r.Duration {
		return 1
	}
	return float64(elapsed) / float64(r.Duration)
}

// Interpolator maps linear animation progress in [0, 1] onto the curve
// applied to offsets and fractions. Implementations must return 0 for 0 and 1
// for 1; values in between may leave the range.
type Interpolator interface {
	Interpolate(t float64) float64
}

// InterpolatorFunc adapts a function to the Interpolator interface.
type InterpolatorFunc func(t float64) float64

// Interpolate calls f(t).
func (f InterpolatorFunc) Interpolate(t float64) float64 {
	return f(t)
}

// Linear does not ease.
var Linear = InterpolatorFunc(func(t float64) float64 { return t })

// Decelerate starts fast and slows down towards the end. A factor of 1
// yields the parabola 1-(1-t)^2; larger factors exaggerate the effect.
type Decelerate struct {
	Factor float64
}

// Interpolate implements Interpolator.
func (d Decelerate) Interpolate(t float64) float64 {
	if d.Factor == 1 || d.Factor <= 0 {
		return 1 - (1-t)*(1-t)
	}
	return 1 - math.Pow(1-t, 2*d.Factor)
}

// springSteps is the number of samples taken from the spring simulation.
const springSteps = 60

// Spring settles with a damped harmonic oscillator. Underdamped springs
// overshoot their rest position before coming to rest.
type Spring struct {
	samples []float64
}

// NewSpring simulates a spring with the given angular frequency and damping
// ratio over one normalized second. The final sample is pinned to 1 so the
// animation ends exactly at its rest position.
func NewSpring(frequency, damping float64) *Spring {
	spring := harmonica.NewSpring(harmonica.FPS(springSteps), frequency, damping)
	samples := make([]float64, springSteps+1)
	var pos, vel float64
	for i := 1; i <= springSteps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		samples[i] = pos
	}
	samples[springSteps] = 1
	return &Spring{samples: samples}
}

// Interpolate implements Interpolator.
func (s *Spring) Interpolate(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	position := t * springSteps
	index := int(position)
	weight := position - float64(index)
	return s.samples[index] + (s.samples[index+1]-s.samples[index])*weight
}
