// Package jitter tracks how late clock ticks are delivered.
package jitter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Size is the number of recent samples a Window keeps.
const Size = 64

type (
	// Window is a ring of the latest lateness samples. The zero value is empty.
	Window struct {
		samples [Size]time.Duration
		n       int
		next    int
	}

	Stats struct {
		Latest time.Duration
		// Rounded to the microsecond.
		Avg time.Duration
		Min time.Duration
		Max time.Duration
	}

	// StatsMsg reports the stats of a window.
	StatsMsg struct {
		Stats
	}
)

// Add records a sample, replacing the oldest once the window is full.
func (w Window) Add(late time.Duration) Window {
	w.samples[w.next] = late
	w.next = (w.next + 1) % Size
	if w.n < Size {
		w.n++
	}
	return w
}

func (w Window) Len() int {
	return w.n
}

func (w Window) Stats() Stats {
	if w.n == 0 {
		return Stats{}
	}
	s := Stats{
		Latest: w.samples[(w.next+Size-1)%Size],
		Min:    w.samples[0],
		Max:    w.samples[0],
	}
	var sum time.Duration
	for _, d := range w.samples[:w.n] {
		sum += d
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
	}
	s.Avg = (sum / time.Duration(w.n)).Round(time.Microsecond)
	return s
}

// Report computes the stats of w off the event loop.
func Report(w Window) tea.Cmd {
	return func() tea.Msg {
		return StatsMsg{w.Stats()}
	}
}
