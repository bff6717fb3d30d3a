// Package fretboard locates notes on a six string guitar in standard tuning.
package fretboard

import (
	"github.com/rapidmidiex/leavestui/theory"
)

const (
	NumStrings = 6
	// Highest fret reported. Open strings (fret 0) are never reported.
	NumFrets = 12
)

type (
	// Position is a fretted note with its placement on the diagram.
	Position struct {
		// String number, 1 (high E) to 6 (low E).
		String int
		Fret   int
		// Layout coordinates in percent of the diagram height/width.
		Top  float64
		Left float64
	}
)

// Open string spellings from string 1 (high E) to string 6 (low E).
var tuning = [NumStrings]string{"E", "B", "G", "D", "A", "E"}

// OpenString returns the open pitch class of a 1-based string number.
func OpenString(str int) theory.PitchClass {
	pc, _ := theory.ParseNote(tuning[str-1])
	return pc
}

// FindPositions returns every fretted position of the note, ordered by string then fret.
// An unknown spelling yields no positions.
func FindPositions(note string) []Position {
	target, ok := theory.ParseNote(note)
	if !ok {
		return nil
	}

	positions := make([]Position, 0, 6)
	for s := 0; s < NumStrings; s++ {
		open := OpenString(s + 1)
		for f := 1; f <= NumFrets; f++ {
			if open.Transpose(f) != target {
				continue
			}
			positions = append(positions, Position{
				String: s + 1,
				Fret:   f,
				Top:    10 + float64(s)*16,
				Left:   (float64(f) - 0.5) * 100 / NumFrets,
			})
		}
	}
	return positions
}
