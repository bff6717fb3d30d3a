// Package progression holds the 32 bar chord chart of "Autumn Leaves".
package progression

import (
	"errors"
	"fmt"
)

const (
	NumBars     = 32
	BeatsPerBar = 4
)

var ErrBarOutOfRange = errors.New("bar out of range")

type (
	// Bar is one measure of the chart.
	Bar struct {
		Number int
		// Chord held for the whole bar, or for beats 1-2 of a split bar.
		Chord string
		// Chord for beats 3-4 of a split bar. Empty for normal bars.
		Next string
		// Functional label, ie: "ii/Bb". Empty for split bars.
		Degree string
	}

	Section struct {
		Name  string
		Start int
		End   int
	}

	Table struct {
		bars     [NumBars]Bar
		sections []Section
	}
)

// AutumnLeaves returns the chart.
func AutumnLeaves() *Table {
	t := &Table{
		sections: []Section{
			{Name: "A", Start: 1, End: 8},
			{Name: "A", Start: 9, End: 16},
			{Name: "B", Start: 17, End: 24},
			{Name: "C", Start: 25, End: 32},
		},
	}

	a := []Bar{
		{Chord: "Cm7", Degree: "ii/Bb"},
		{Chord: "F7", Degree: "V/Bb"},
		{Chord: "Bbmaj7", Degree: "I/Bb"},
		{Chord: "Ebmaj7", Degree: "IV/Bb"},
		{Chord: "Am7(b5)", Degree: "ii/Gm"},
		{Chord: "D7", Degree: "V/Gm"},
		{Chord: "Gm6", Degree: "i/Gm"},
		{Chord: "Gm6", Degree: "i/Gm"},
	}
	bridge := append(append([]Bar{}, a[4:]...), a[:4]...)
	ending := []Bar{
		a[4],
		a[5],
		{Chord: "Gm7", Next: "C7"},
		{Chord: "Fm7", Next: "Bb7"},
		a[3],
		a[5],
		a[6],
		a[7],
	}

	all := make([]Bar, 0, NumBars)
	all = append(all, a...)
	all = append(all, a...)
	all = append(all, bridge...)
	all = append(all, ending...)
	for i, b := range all {
		b.Number = i + 1
		t.bars[i] = b
	}
	return t
}

// Split reports whether the bar holds two chords of two beats each.
func (b Bar) Split() bool {
	return b.Next != ""
}

// ChordAt returns the chord sounding on the given beat of the bar.
func (b Bar) ChordAt(beat int) string {
	if b.Split() && beat >= 3 {
		return b.Next
	}
	return b.Chord
}

// Label is the chord text shown on the chart, ie: "Gm7 / C7" for split bars.
func (b Bar) Label() string {
	if b.Split() {
		return b.Chord + " / " + b.Next
	}
	return b.Chord
}

// BarAt returns bar n, counted from 1.
func (t *Table) BarAt(n int) (Bar, error) {
	if n < 1 || n > NumBars {
		return Bar{}, fmt.Errorf("bar %d: %w", n, ErrBarOutOfRange)
	}
	return t.bars[n-1], nil
}

// Bars returns a copy of every bar in order.
func (t *Table) Bars() []Bar {
	out := make([]Bar, NumBars)
	copy(out, t.bars[:])
	return out
}

func (t *Table) Sections() []Section {
	return append([]Section(nil), t.sections...)
}

// ChordAt returns the chord sounding at the bar and beat.
func (t *Table) ChordAt(bar, beat int) (string, error) {
	b, err := t.BarAt(bar)
	if err != nil {
		return "", err
	}
	return b.ChordAt(beat), nil
}

// NextChord returns the chord to announce as "next" at the bar and beat: the second half of
// a split bar while in its first half, otherwise the first chord of the following bar.
// Bar 32 is followed by bar 1.
func (t *Table) NextChord(bar, beat int) (string, error) {
	b, err := t.BarAt(bar)
	if err != nil {
		return "", err
	}
	if b.Split() && beat <= 2 {
		return b.Next, nil
	}
	next := bar%NumBars + 1
	return t.bars[next-1].Chord, nil
}

// First returns the opening chord of the chart.
func (t *Table) First() string {
	return t.bars[0].Chord
}

// WithBar returns a copy of the table with bar b.Number replaced by b.
// Bars outside the chart are ignored.
func (t *Table) WithBar(b Bar) *Table {
	c := *t
	c.sections = t.Sections()
	if b.Number >= 1 && b.Number <= NumBars {
		c.bars[b.Number-1] = b
	}
	return &c
}
