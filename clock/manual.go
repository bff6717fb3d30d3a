package clock

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Manual is a scheduler driven by hand, for tests.
	Manual struct {
		now     time.Duration
		streams []*manualStream
	}

	manualStream struct {
		id       uuid.UUID
		interval time.Duration
		next     time.Duration
		fn       func(at time.Duration)
	}
)

func NewManual() *Manual {
	return &Manual{}
}

// ScheduleRepeating adds a stream whose first tick is due after first.
func (m *Manual) ScheduleRepeating(first, interval time.Duration, fn func(at time.Duration)) uuid.UUID {
	if first < 0 {
		first = 0
	}
	s := &manualStream{
		id:       uuid.New(),
		interval: interval,
		next:     m.now + first,
		fn:       fn,
	}
	m.streams = append(m.streams, s)
	return s.id
}

func (m *Manual) Cancel(id uuid.UUID) {
	for i, s := range m.streams {
		if s.id == id {
			m.streams = append(m.streams[:i], m.streams[i+1:]...)
			return
		}
	}
}

// Step moves the clock to the earliest due tick and fires it. It returns false if nothing
// is scheduled.
func (m *Manual) Step() bool {
	if len(m.streams) == 0 {
		return false
	}
	next := m.streams[0]
	for _, s := range m.streams[1:] {
		if s.next < next.next {
			next = s
		}
	}
	m.now = next.next
	next.next += next.interval
	next.fn(m.now)
	return true
}

// Steps fires n ticks.
func (m *Manual) Steps(n int) {
	for i := 0; i < n && m.Step(); i++ {
	}
}

// Advance moves the clock forward by d, firing every tick due on the way.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		due := false
		for _, s := range m.streams {
			if s.next <= end {
				due = true
				break
			}
		}
		if !due || !m.Step() {
			break
		}
	}
	m.now = end
}

func (m *Manual) Now() time.Duration {
	return m.now
}

// Active returns the number of running streams.
func (m *Manual) Active() int {
	return len(m.streams)
}
