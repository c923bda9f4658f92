// Package gesture implements the pull-to-refresh gesture: pointer
// arbitration between a container and its scrollable content, the slingshot
// resistance curve, and the two settle animations.
//
// The package does not draw anything. A host widget feeds a Machine with
// pointer events and animation ticks and exposes the content being pulled
// through the Target interface.
package gesture

import (
	"math"
	"time"
)

const (
	// DefaultDragDistanceDP is the default trigger distance in
	// density-independent units.
	DefaultDragDistanceDP = 120

	// DragRate damps finger travel into content travel.
	DragRate = 0.5

	// MaxAnimationDuration is the duration of a full settle animation.
	MaxAnimationDuration = 500 * time.Millisecond

	// InvalidPointer marks the absence of an active pointer.
	InvalidPointer = -1
)

// Padding is the inner spacing of the target content.
type Padding struct {
	Left, Top, Right, Bottom int
}

// Target is the scrollable content pulled by the gesture. The machine is its
// only positioning authority while it is wrapped.
type Target interface {
	// CanScrollUp reports whether the content can scroll further up, i.e. it
	// is not at its topmost position.
	CanScrollUp() bool
	// Top returns the current vertical offset of the content from its rest
	// position.
	Top() int
	// OffsetTop moves the content down by delta (up if negative).
	OffsetTop(delta int)
	// Padding returns the content's padding.
	Padding() Padding
	// SetPadding replaces the content's padding.
	SetPadding(padding Padding)
}

// Listener receives refresh state notifications.
//
// The hook names follow the observed wiring: OnLoadingStarted fires when the
// machine enters the refreshing state and OnRefreshRequested fires when it
// leaves it (and from the settle-to-correct-position animation when notify is
// set).
type Listener interface {
	OnRefreshRequested()
	OnLoadingStarted()
}

// ListenerFuncs adapts two functions to the Listener interface. Nil fields
// are ignored.
type ListenerFuncs struct {
	RefreshRequested func()
	LoadingStarted   func()
}

// OnRefreshRequested calls l.RefreshRequested.
func (l ListenerFuncs) OnRefreshRequested() {
	if l.RefreshRequested != nil {
		l.RefreshRequested()
	}
}

// OnLoadingStarted calls l.LoadingStarted.
func (l ListenerFuncs) OnLoadingStarted() {
	if l.LoadingStarted != nil {
		l.LoadingStarted()
	}
}

// DPToPixels converts density-independent units to pixels for the given
// density (pixels per unit).
func DPToPixels(dp int, density float64) int {
	return int(math.Round(float64(dp) * density))
}
