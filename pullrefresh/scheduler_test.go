package pullrefresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualSchedulerOrder(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	s := NewManualScheduler(start)
	var got []string
	var at []time.Duration
	record := func(name string) func() {
		return func() {
			got = append(got, name)
			at = append(at, s.Now().Sub(start))
		}
	}

	s.PostDelayed(20*time.Millisecond, record("late"))
	s.PostDelayed(10*time.Millisecond, record("early"))
	s.Post(record("now"))
	s.PostDelayed(10*time.Millisecond, record("early2"))
	require.Equal(t, 4, s.Pending())

	s.Advance(15 * time.Millisecond)
	require.Equal(t, []string{"now", "early", "early2"}, got)
	require.Equal(t, []time.Duration{0, 10 * time.Millisecond, 10 * time.Millisecond}, at)
	require.Equal(t, start.Add(15*time.Millisecond), s.Now())
	require.Equal(t, 1, s.Pending())

	s.Advance(5 * time.Millisecond)
	require.Equal(t, []string{"now", "early", "early2", "late"}, got)
	require.Zero(t, s.Pending())
}

func TestManualSchedulerCancel(t *testing.T) {
	t.Parallel()

	s := NewManualScheduler(time.Unix(0, 0))
	ran := false
	cancel := s.PostDelayed(time.Second, func() { ran = true })
	require.True(t, cancel())
	require.False(t, cancel())
	require.Zero(t, s.Pending())

	s.Advance(2 * time.Second)
	require.False(t, ran)

	cancel = s.PostDelayed(0, func() {})
	s.Advance(0)
	require.False(t, cancel())
}

func TestManualSchedulerChainedTasks(t *testing.T) {
	t.Parallel()

	s := NewManualScheduler(time.Unix(0, 0))
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		s.PostDelayed(16*time.Millisecond, tick)
	}
	s.PostDelayed(16*time.Millisecond, tick)

	s.Advance(100 * time.Millisecond)
	require.Equal(t, 6, ticks)
	require.Equal(t, 1, s.Pending())
}
