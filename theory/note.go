// Package theory resolves chord symbols into spelled chord tones.
package theory

import (
	"fmt"
	"strconv"
)

type (
	// PitchClass is a semitone index from C (0) to B (11).
	PitchClass int

	octave int
)

const (
	Oct2 octave = iota + 2
	Oct3
	Oct4
	Oct5
)

// ChordOctave is the octave chord triggers are voiced in.
const ChordOctave = Oct3

var (
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

	// Accepted spellings. Lookups are case-sensitive.
	noteIndex = map[string]PitchClass{
		"C": 0, "C#": 1, "Db": 1,
		"D": 2, "D#": 3, "Eb": 3,
		"E": 4,
		"F": 5, "F#": 6, "Gb": 6,
		"G": 7, "G#": 8, "Ab": 8,
		"A": 9, "A#": 10, "Bb": 10,
		"B": 11,
	}
)

// Normalize folds any semitone offset into 0..11.
func Normalize(semitones int) PitchClass {
	return PitchClass((semitones%12 + 12) % 12)
}

// ParseNote returns the pitch class of a spelled note such as "Eb" or "F#".
func ParseNote(name string) (PitchClass, bool) {
	pc, ok := noteIndex[name]
	return pc, ok
}

// Transpose moves the pitch class up by the given number of semitones.
func (p PitchClass) Transpose(semitones int) PitchClass {
	return Normalize(int(p) + semitones)
}

// Flat spells the pitch class using flats. This is the spelling used for all chord tones.
func (p PitchClass) Flat() string {
	return flatNames[Normalize(int(p))]
}

func (p PitchClass) Sharp() string {
	return sharpNames[Normalize(int(p))]
}

func (p PitchClass) String() string {
	return p.Flat()
}

// NoteNumber returns the MIDI note number of a note name with octave, ie: "Eb3" -> 51.
// Based on C4=60.
func NoteNumber(note string) (int, error) {
	split := len(note)
	for split > 0 && (note[split-1] >= '0' && note[split-1] <= '9' || note[split-1] == '-') {
		split--
	}
	pc, ok := ParseNote(note[:split])
	if !ok || split == len(note) {
		return 0, fmt.Errorf("note number: invalid note %q", note)
	}
	oct, err := strconv.Atoi(note[split:])
	if err != nil {
		return 0, fmt.Errorf("note number: invalid octave %q: %w", note, err)
	}
	return 12*(oct+1) + int(pc), nil
}

// WithOctave appends the octave number to a note name, ie: "Eb" -> "Eb3".
func WithOctave(name string, oct octave) string {
	return name + strconv.Itoa(int(oct))
}
