// Package transport drives practice playback one beat at a time.
//
// State is a plain value. Every command and every tick takes a State and returns the next one,
// so playback can be stepped deterministically without a clock.
package transport

import (
	"github.com/rapidmidiex/leavestui/progression"
)

const (
	// CountInBeats is the number of clicks played before the first chord.
	CountInBeats = 4

	DefaultTempo = 80
	MinTempo     = 30
	MaxTempo     = 300
)

type (
	Status int

	MetronomeMode int

	DisplayMode int

	Loop struct {
		Enabled bool
		Start   int
		End     int
	}

	State struct {
		Status Status
		// Bar and beat of the next tick, 1-based.
		Bar  int
		Beat int
		// Clicks left before chords start.
		CountIn   int
		Loop      Loop
		Tempo     int
		Metronome MetronomeMode
		Display   DisplayMode
	}
)

const (
	Stopped Status = iota
	CountingIn
	Playing
	Paused
)

const (
	// MetronomeOn clicks every beat.
	MetronomeOn MetronomeMode = iota
	// MetronomeOffBeat clicks on beats 2 and 4.
	MetronomeOffBeat
)

const (
	DisplayNote DisplayMode = iota
	DisplayDegree
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case CountingIn:
		return "count-in"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "unknown"
}

func (m MetronomeMode) String() string {
	if m == MetronomeOffBeat {
		return "off-beat"
	}
	return "on"
}

// ParseMetronomeMode accepts "on" and "off-beat".
func ParseMetronomeMode(s string) (MetronomeMode, bool) {
	switch s {
	case "on":
		return MetronomeOn, true
	case "off-beat", "offbeat":
		return MetronomeOffBeat, true
	}
	return MetronomeOn, false
}

func (d DisplayMode) String() string {
	if d == DisplayDegree {
		return "degree"
	}
	return "note"
}

// ParseDisplayMode accepts "note" and "degree".
func ParseDisplayMode(s string) (DisplayMode, bool) {
	switch s {
	case "note":
		return DisplayNote, true
	case "degree":
		return DisplayDegree, true
	}
	return DisplayNote, false
}

// NewState returns the startup state: stopped at bar 1 beat 1, 80 bpm, loop off over the whole chart.
func NewState() State {
	return State{
		Status: Stopped,
		Bar:    1,
		Beat:   1,
		Loop:   Loop{Start: 1, End: progression.NumBars},
		Tempo:  DefaultTempo,
	}
}

// Running reports whether ticks should be scheduled.
func (s State) Running() bool {
	return s.Status == CountingIn || s.Status == Playing
}

// Start begins playback from Stopped with a count-in, or resumes from Paused.
// Starting while already running changes nothing.
func (s State) Start() State {
	switch s.Status {
	case Paused:
		s.Status = Playing
		if s.CountIn > 0 {
			s.Status = CountingIn
		}
	case Stopped:
		if s.Loop.Enabled {
			s.Bar = s.Loop.Start
		}
		s.Beat = 1
		s.CountIn = CountInBeats
		s.Status = CountingIn
	}
	return s
}

// Pause suspends playback keeping the position and any remaining count-in.
func (s State) Pause() State {
	if s.Running() {
		s.Status = Paused
	}
	return s
}

// Stop halts playback and rewinds to bar 1.
func (s State) Stop() State {
	s.Status = Stopped
	s.CountIn = 0
	s.Bar = 1
	s.Beat = 1
	return s
}

// Seek halts playback and moves to beat 1 of the bar, clamped to the chart.
// It does not resume playback.
func (s State) Seek(bar int) State {
	s.Status = Stopped
	s.CountIn = 0
	s.Bar = clamp(bar, 1, progression.NumBars)
	s.Beat = 1
	return s
}

func (s State) SetTempo(bpm int) State {
	s.Tempo = clamp(bpm, MinTempo, MaxTempo)
	return s
}

// SetLoopStart clamps the start to the chart and to at most the loop end.
func (s State) SetLoopStart(bar int) State {
	s.Loop.Start = clamp(bar, 1, s.Loop.End)
	return s
}

// SetLoopEnd clamps the end to the chart and to at least the loop start.
func (s State) SetLoopEnd(bar int) State {
	s.Loop.End = clamp(bar, s.Loop.Start, progression.NumBars)
	return s
}

// SetLoop replaces the loop settings. The start is applied first, against the new end
// clamped to the chart, so the range is never inverted.
func (s State) SetLoop(enabled bool, start, end int) State {
	s.Loop.Enabled = enabled
	s.Loop.End = clamp(end, 1, progression.NumBars)
	s = s.SetLoopStart(start)
	return s
}

func (s State) SetMetronome(m MetronomeMode) State {
	s.Metronome = m
	return s
}

func (s State) SetDisplay(d DisplayMode) State {
	s.Display = d
	return s
}

// InLoop reports whether the bar is inside an enabled loop.
func (s State) InLoop(bar int) bool {
	return s.Loop.Enabled && bar >= s.Loop.Start && bar <= s.Loop.End
}

// advance moves to the next beat, wrapping at the loop end or the end of the chart.
func (s State) advance() State {
	s.Beat++
	if s.Beat <= progression.BeatsPerBar {
		return s
	}
	s.Beat = 1
	s.Bar++
	if s.Loop.Enabled {
		if s.Bar > s.Loop.End {
			s.Bar = s.Loop.Start
		}
	} else if s.Bar > progression.NumBars {
		s.Bar = 1
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
