package fretboard_test

import (
	"strings"
	"testing"

	"github.com/rapidmidiex/leavestui/fretboard"
	"github.com/rapidmidiex/leavestui/theory"
	"github.com/stretchr/testify/require"
)

func TestFindPositions(t *testing.T) {
	t.Run("finds C on the G and A strings", func(t *testing.T) {
		got := fretboard.FindPositions("C")
		require.Contains(t, frets(got), [2]int{3, 5})
		require.Contains(t, frets(got), [2]int{5, 3})
	})

	t.Run("only reports matching pitch classes, once per string and fret", func(t *testing.T) {
		for pc := 0; pc < 12; pc++ {
			note := theory.PitchClass(pc).Flat()
			target, _ := theory.ParseNote(note)

			seen := make(map[[2]int]bool)
			for _, pos := range fretboard.FindPositions(note) {
				require.Equal(t, target, fretboard.OpenString(pos.String).Transpose(pos.Fret))
				require.False(t, seen[[2]int{pos.String, pos.Fret}])
				seen[[2]int{pos.String, pos.Fret}] = true
			}

			// 12 frets cover every pitch class exactly once per string.
			require.Len(t, seen, fretboard.NumStrings, note)
		}
	})

	t.Run("orders by string then fret", func(t *testing.T) {
		got := fretboard.FindPositions("E")
		require.Equal(t, [][2]int{{1, 12}, {2, 5}, {3, 9}, {4, 2}, {5, 7}, {6, 12}}, frets(got))

		for i := 1; i < len(got); i++ {
			require.Greater(t, got[i].Top, got[i-1].Top)
		}
	})

	t.Run("places higher frets further right", func(t *testing.T) {
		got := fretboard.FindPositions("A")
		var onG []fretboard.Position
		for _, p := range got {
			if p.String == 3 {
				onG = append(onG, p)
			}
		}
		require.Len(t, onG, 1)
		require.Less(t, fretboard.FindPositions("G#")[0].Left, fretboard.FindPositions("A")[0].Left)
	})

	t.Run("returns nothing for an unknown spelling", func(t *testing.T) {
		require.Empty(t, fretboard.FindPositions("H"))
		require.Empty(t, fretboard.FindPositions("Cb"))
	})
}

func TestDiagram(t *testing.T) {
	markers := []fretboard.Marker{
		{Position: fretboard.Position{String: 3, Fret: 5}, Label: "Eb", Kind: fretboard.Third},
		{Position: fretboard.Position{String: 5, Fret: 1}, Label: "b7", Kind: fretboard.Seventh},
	}
	got := fretboard.Diagram(markers, func(k fretboard.Kind, label string) string {
		return "<" + k.String() + ">" + label
	})
	lines := strings.Split(got, "\n")

	require.Len(t, lines, fretboard.NumStrings+2)
	require.True(t, strings.HasPrefix(lines[1], "E |"))
	require.Contains(t, lines[3], "<3rd>Eb-")
	require.True(t, strings.HasPrefix(lines[5], "A |-<7th>b7--|"))
	require.NotContains(t, lines[1], "<")
}

func frets(ps []fretboard.Position) [][2]int {
	out := make([][2]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, [2]int{p.String, p.Fret})
	}
	return out
}
