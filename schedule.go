package slideshow

import (
	"slices"
	"time"
)

// ScheduleID identifies a scheduled action for Cancel.
type ScheduleID uint64

type scheduleEntry struct {
	id ScheduleID
	at time.Duration
	fn func()
}

// Schedule fires actions at fixed offsets from its start, in time order.
// Entries due at the same offset fire in the order they were added. Actions
// may schedule further entries; ones that are already due fire in the same
// call.
//
// A Schedule is driven either from a Clock (Start then Update every frame)
// or manually with Advance and AdvanceTo. It is not safe for concurrent use.
type Schedule struct {
	clock   Clock
	start   time.Time
	elapsed time.Duration
	entries []scheduleEntry // sorted by at, then insertion
	nextID  ScheduleID
}

// NewSchedule returns an empty schedule reading time from clock. A nil clock
// uses the system clock.
func NewSchedule(clock Clock) *Schedule {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Schedule{clock: clock}
}

// Start marks the clock's current time as offset zero.
func (s *Schedule) Start() {
	s.start = s.clock.Now()
	s.elapsed = 0
}

// Update fires everything due at the clock's current time. It returns the
// number of actions fired.
func (s *Schedule) Update() int {
	return s.AdvanceTo(s.clock.Now().Sub(s.start))
}

// At schedules fn at offset t from the start.
func (s *Schedule) At(t time.Duration, fn func()) ScheduleID {
	s.nextID++
	e := scheduleEntry{id: s.nextID, at: t, fn: fn}
	i, _ := slices.BinarySearchFunc(s.entries, t, func(e scheduleEntry, t time.Duration) int {
		if e.at <= t {
			return -1
		}
		return 1
	})
	s.entries = slices.Insert(s.entries, i, e)
	return e.id
}

// After schedules fn d after the current elapsed time.
func (s *Schedule) After(d time.Duration, fn func()) ScheduleID {
	return s.At(s.elapsed+d, fn)
}

// Cancel removes a pending entry and reports whether it was pending.
func (s *Schedule) Cancel(id ScheduleID) bool {
	i := slices.IndexFunc(s.entries, func(e scheduleEntry) bool { return e.id == id })
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Clear cancels every pending entry.
func (s *Schedule) Clear() {
	s.entries = s.entries[:0]
}

// Advance moves time forward by dt.
func (s *Schedule) Advance(dt time.Duration) int {
	return s.AdvanceTo(s.elapsed + dt)
}

// AdvanceTo moves time forward to offset t, firing due entries in order.
// Moving backwards is ignored.
func (s *Schedule) AdvanceTo(t time.Duration) int {
	if t < s.elapsed {
		return 0
	}
	fired := 0
	for len(s.entries) > 0 && s.entries[0].at <= t {
		e := s.entries[0]
		s.entries = slices.Delete(s.entries, 0, 1)
		if e.at > s.elapsed {
			s.elapsed = e.at
		}
		if e.fn != nil {
			e.fn()
		}
		fired++
	}
	s.elapsed = t
	return fired
}

// Elapsed returns the current offset from the start.
func (s *Schedule) Elapsed() time.Duration {
	return s.elapsed
}

// Pending returns the number of entries not yet fired.
func (s *Schedule) Pending() int {
	return len(s.entries)
}

// Done reports whether nothing is left to fire.
func (s *Schedule) Done() bool {
	return len(s.entries) == 0
}
