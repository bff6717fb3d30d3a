// Package clock provides tick schedulers for the transport.
package clock

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type (
	// TickMsg is posted to the Bubble Tea program each time a stream is due.
	// The program's Update hands it back to Program.Fire.
	TickMsg struct {
		ID uuid.UUID
		// Due time on the program clock, see Program.Now.
		At time.Duration
		// Wall clock time the tick was due.
		Due time.Time
	}

	// Program schedules repeating callbacks that run inside a Bubble Tea event loop.
	// Timer goroutines only post TickMsg; callbacks run on the goroutine calling Fire.
	Program struct {
		mu      sync.Mutex
		send    func(tea.Msg)
		streams map[uuid.UUID]*stream
		now     func() time.Time
		origin  time.Time
	}

	stream struct {
		fn   func(at time.Duration)
		done chan struct{}
	}
)

func NewProgram() *Program {
	now := time.Now
	return &Program{
		streams: make(map[uuid.UUID]*stream),
		now:     now,
		origin:  now(),
	}
}

// Now returns the time elapsed since the program was created.
func (p *Program) Now() time.Duration {
	return p.now().Sub(p.origin)
}

// Attach sets the function used to post ticks, usually (*tea.Program).Send.
func (p *Program) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = send
}

// ScheduleRepeating starts a stream. The first tick is due after first.
func (p *Program) ScheduleRepeating(first, interval time.Duration, fn func(at time.Duration)) uuid.UUID {
	if first < 0 {
		first = 0
	}
	id := uuid.New()
	s := &stream{fn: fn, done: make(chan struct{})}

	p.mu.Lock()
	p.streams[id] = s
	p.mu.Unlock()

	go p.run(id, first, interval, s.done)
	return id
}

// Cancel stops the stream. Ticks of the stream still queued in the program are dropped by Fire.
func (p *Program) Cancel(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.streams[id]; ok {
		close(s.done)
		delete(p.streams, id)
	}
}

// Fire runs the callback for a tick. It reports how late the tick ran and false if the
// stream was cancelled in the meantime.
func (p *Program) Fire(msg TickMsg) (time.Duration, bool) {
	p.mu.Lock()
	s, ok := p.streams[msg.ID]
	p.mu.Unlock()
	if !ok {
		return 0, false
	}
	late := p.now().Sub(msg.Due)
	s.fn(msg.At)
	return late, true
}

// Active returns the number of running streams.
func (p *Program) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.streams)
}

func (p *Program) run(id uuid.UUID, first, interval time.Duration, done chan struct{}) {
	start := p.now().Add(first)
	timer := time.NewTimer(first)
	defer timer.Stop()

	for n := 0; ; n++ {
		select {
		case <-done:
			return
		case <-timer.C:
		}

		due := start.Add(time.Duration(n) * interval)
		p.mu.Lock()
		send := p.send
		p.mu.Unlock()
		if send != nil {
			send(TickMsg{ID: id, At: due.Sub(p.origin), Due: due})
		}

		// Due times are absolute so a late tick does not delay the ones after it.
		timer.Reset(start.Add(time.Duration(n+1) * interval).Sub(p.now()))
	}
}
