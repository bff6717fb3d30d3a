package transport

import (
	"fmt"

	"github.com/rapidmidiex/leavestui/fretboard"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/theory"
)

const countInNext = "Ready..."

type (
	// Frame is everything the display needs for one beat.
	Frame struct {
		// Highlighted bar. 0 during count-in.
		Bar  int
		Beat int
		// Count-in number, 0 when not counting in.
		CountIn int
		Chord   string
		Next    string
		// Third and seventh (or sixth) of Chord. Empty if Chord did not resolve.
		GuideTones []theory.Tone
		Markers    []fretboard.Marker
		Display    DisplayMode
	}
)

// Title is the text shown for the current chord.
func (f Frame) Title() string {
	if f.CountIn > 0 {
		return fmt.Sprintf("Count: %d", f.CountIn)
	}
	return f.Chord
}

// CountInFrame is shown on each count-in click.
func CountInFrame(count int, display DisplayMode) Frame {
	return Frame{CountIn: count, Next: countInNext, Display: display}
}

// BuildFrame resolves the chord sounding at bar and beat, the chord announced next and the
// fretboard positions of its guide tones. If the chord does not resolve, the returned frame
// still carries the position and chord names, along with the error.
func BuildFrame(table *progression.Table, bar, beat int, display DisplayMode) (Frame, error) {
	f := Frame{Bar: bar, Beat: beat, Display: display}

	var err error
	if f.Chord, err = table.ChordAt(bar, beat); err != nil {
		return f, err
	}
	if f.Next, err = table.NextChord(bar, beat); err != nil {
		return f, err
	}

	info, err := theory.Resolve(f.Chord)
	if err != nil {
		return f, fmt.Errorf("build frame: %w", err)
	}

	f.GuideTones = info.GuideTones()
	for i, tone := range f.GuideTones {
		kind := fretboard.Third
		if i > 0 {
			kind = fretboard.Seventh
		}
		label := tone.Note
		if display == DisplayDegree {
			label = tone.Degree
		}
		for _, pos := range fretboard.FindPositions(tone.Note) {
			f.Markers = append(f.Markers, fretboard.Marker{Position: pos, Label: label, Kind: kind})
		}
	}
	return f, nil
}
