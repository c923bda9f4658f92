package pullrefresh

import (
	"time"

	tview "github.com/xqrs/tview-pull"
)

// Scheduler runs functions on the UI event loop. Widgets in this package only
// change state on the loop; a Scheduler is how they get back onto it from
// timers and background work.
type Scheduler interface {
	// Post runs f on the loop as soon as possible. It may be called from any
	// goroutine.
	Post(f func())
	// PostDelayed runs f on the loop after d. The returned function cancels
	// the call and reports whether it was still pending.
	PostDelayed(d time.Duration, f func()) (cancel func() bool)
	// Now returns the loop's notion of the current time.
	Now() time.Time
}

type appScheduler struct {
	app *tview.Application
}

// AppScheduler schedules onto the event loop of app and redraws after every
// call.
func AppScheduler(app *tview.Application) Scheduler {
	return appScheduler{app: app}
}

func (s appScheduler) Post(f func()) {
	// QueueUpdateDraw waits for the loop, which would deadlock on the loop
	// itself.
	go s.app.QueueUpdateDraw(f)
}

func (s appScheduler) PostDelayed(d time.Duration, f func()) func() bool {
	return s.app.QueueUpdateDrawAfter(d, f)
}

func (s appScheduler) Now() time.Time {
	return time.Now()
}

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing runs until
// Advance is called. It is meant for tests and for hosts that run their own
// loop. It is not safe for concurrent use.
type ManualScheduler struct {
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at   time.Time
	seq  int
	f    func()
	done bool
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the virtual time.
func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// Post runs f on the next Advance.
func (s *ManualScheduler) Post(f func()) {
	s.PostDelayed(0, f)
}

// PostDelayed runs f once the clock has advanced by d.
func (s *ManualScheduler) PostDelayed(d time.Duration, f func()) func() bool {
	s.seq++
	task := &manualTask{at: s.now.Add(d), seq: s.seq, f: f}
	s.tasks = append(s.tasks, task)
	return func() bool {
		if task.done {
			return false
		}
		task.done = true
		return true
	}
}

// Advance moves the clock forward by d, running due functions in time order.
// Functions posted while advancing run in the same call if they are due.
func (s *ManualScheduler) Advance(d time.Duration) {
	until := s.now.Add(d)
	for {
		task := s.next(until)
		if task == nil {
			break
		}
		task.done = true
		if task.at.After(s.now) {
			s.now = task.at
		}
		task.f()
	}
	s.now = until
}

// Pending returns the number of functions that have not run or been
// cancelled.
func (s *ManualScheduler) Pending() int {
	s.compact()
	return len(s.tasks)
}

// next returns the earliest pending task due at or before until.
func (s *ManualScheduler) next(until time.Time) *manualTask {
	s.compact()
	var next *manualTask
	for _, task := range s.tasks {
		if task.at.After(until) {
			continue
		}
		if next == nil || task.at.Before(next.at) || (task.at.Equal(next.at) && task.seq < next.seq) {
			next = task
		}
	}
	return next
}

func (s *ManualScheduler) compact() {
	pending := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.done {
			pending = append(pending, task)
		}
	}
	clear(s.tasks[len(pending):])
	s.tasks = pending
}
