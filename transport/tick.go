package transport

import (
	"fmt"
	"time"

	"github.com/rapidmidiex/leavestui/progression"
)

type (
	// Length is a musical duration.
	Length int

	// ChordTrigger asks the audio collaborator to sound a chord.
	ChordTrigger struct {
		Symbol string
		Length Length
	}

	// Events are the side effects of one tick, in the order they must be dispatched:
	// click, chord, render.
	Events struct {
		// Position the tick played.
		Bar  int
		Beat int
		// Count-in number shown for this tick, 0 once chords play.
		CountIn int
		Click   bool
		Chord   *ChordTrigger
	}
)

const (
	Measure Length = iota
	Half
	Quarter
	ThirtySecond
)

func (l Length) String() string {
	switch l {
	case Measure:
		return "1m"
	case Half:
		return "2n"
	case Quarter:
		return "4n"
	case ThirtySecond:
		return "32n"
	}
	return fmt.Sprintf("Length(%d)", int(l))
}

// Beats returns the length in quarter note beats.
func (l Length) Beats() float64 {
	switch l {
	case Measure:
		return progression.BeatsPerBar
	case Half:
		return 2
	case Quarter:
		return 1
	case ThirtySecond:
		return 0.125
	}
	return 0
}

// Duration returns the length at the given tempo.
func (l Length) Duration(bpm int) time.Duration {
	if bpm <= 0 {
		return 0
	}
	return time.Duration(l.Beats() * float64(time.Minute) / float64(bpm))
}

// BeatInterval is the time between ticks at the given tempo.
func BeatInterval(bpm int) time.Duration {
	return Quarter.Duration(bpm)
}

// Tick plays one beat and returns the next state with what the beat produced.
// Ticks are ignored unless the state is counting in or playing.
func Tick(s State, table *progression.Table) (State, Events) {
	ev := Events{Bar: s.Bar, Beat: s.Beat}

	switch s.Status {
	case CountingIn:
		ev.Click = true
		ev.CountIn = s.CountIn
		s.CountIn--
		if s.CountIn <= 0 {
			s.CountIn = 0
			s.Status = Playing
		}
		return s, ev
	case Playing:
	default:
		return s, ev
	}

	switch s.Metronome {
	case MetronomeOffBeat:
		ev.Click = s.Beat == 2 || s.Beat == 4
	default:
		ev.Click = true
	}

	if bar, err := table.BarAt(s.Bar); err == nil {
		switch {
		case bar.Split() && s.Beat == 1:
			ev.Chord = &ChordTrigger{Symbol: bar.Chord, Length: Half}
		case bar.Split() && s.Beat == 3:
			ev.Chord = &ChordTrigger{Symbol: bar.Next, Length: Half}
		case !bar.Split() && s.Beat == 1:
			ev.Chord = &ChordTrigger{Symbol: bar.Chord, Length: Measure}
		}
	}

	return s.advance(), ev
}
