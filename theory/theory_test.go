package theory_test

import (
	"errors"
	"testing"

	"github.com/rapidmidiex/leavestui/theory"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("spells a minor seventh chord", func(t *testing.T) {
		got, err := theory.Resolve("Cm7")
		require.NoError(t, err)
		require.Equal(t, "C", got.Root)
		require.Equal(t, "Eb", got.Third)
		require.Equal(t, "G", got.Fifth)
		require.Equal(t, "Bb", got.Seventh)
		require.Equal(t, []string{"R", "b3", "5", "b7"}, got.Degrees)
	})

	t.Run("spells a dominant seventh chord", func(t *testing.T) {
		got, err := theory.Resolve("F7")
		require.NoError(t, err)
		require.Equal(t, []string{"F", "A", "C", "Eb"}, got.Tones)
	})

	t.Run("parses two character roots", func(t *testing.T) {
		got, err := theory.Resolve("Bbmaj7")
		require.NoError(t, err)
		require.Equal(t, []string{"Bb", "D", "F", "A"}, got.Tones)

		got, err = theory.Resolve("F#m7(b5)")
		require.NoError(t, err)
		require.Equal(t, []string{"Gb", "A", "C", "E"}, got.Tones)
	})

	t.Run("treats sixths as the fourth tone", func(t *testing.T) {
		got, err := theory.Resolve("Gm6")
		require.NoError(t, err)
		require.Equal(t, "E", got.Seventh)
		require.Equal(t, []theory.Tone{{Note: "Bb", Degree: "b3"}, {Note: "E", Degree: "6"}}, got.GuideTones())
	})

	t.Run("falls back to a triad for unknown qualities", func(t *testing.T) {
		got, err := theory.Resolve("Dsus4")
		require.NoError(t, err)
		require.Equal(t, []string{"D", "Gb", "A"}, got.Tones)
		require.Equal(t, []string{"R", "3", "5"}, got.Degrees)
		require.Empty(t, got.Seventh)
		require.Len(t, got.GuideTones(), 1)
	})

	t.Run("fails on an unknown root", func(t *testing.T) {
		for _, symbol := range []string{"", "Hm7", "cm7", "Cbmaj7", "E#7"} {
			_, err := theory.Resolve(symbol)
			var rootErr theory.UnknownRootError
			require.Truef(t, errors.As(err, &rootErr), "symbol %q", symbol)
		}
	})
}

func TestIntervalsHoldForEveryRoot(t *testing.T) {
	qualities := []theory.Quality{
		theory.Triad,
		theory.Minor7,
		theory.Dominant7,
		theory.Major7,
		theory.HalfDiminished7,
		theory.Minor6,
		theory.Major6,
		theory.Diminished7,
	}

	for pc := 0; pc < 12; pc++ {
		root := theory.PitchClass(pc)
		for _, q := range qualities {
			symbol := root.Flat() + q.String()
			info, err := theory.Resolve(symbol)
			require.NoError(t, err)

			intervals := q.Intervals()
			require.Len(t, info.Tones, len(intervals), symbol)
			for i, tone := range info.Tones {
				tpc, ok := theory.ParseNote(tone)
				require.True(t, ok)
				require.Equalf(t, theory.Normalize(intervals[i]), theory.Normalize(int(tpc)-pc), "%s tone %d", symbol, i)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, theory.PitchClass(11), theory.Normalize(-1))
	require.Equal(t, theory.PitchClass(0), theory.Normalize(24))
	require.Equal(t, "Eb", theory.PitchClass(3).Flat())
	require.Equal(t, "D#", theory.PitchClass(3).Sharp())
}

func TestNoteNumber(t *testing.T) {
	got, err := theory.NoteNumber("Eb3")
	require.NoError(t, err)
	require.Equal(t, 51, got)

	got, err = theory.NoteNumber(theory.WithOctave("C", theory.Oct4))
	require.NoError(t, err)
	require.Equal(t, 60, got)

	_, err = theory.NoteNumber("Eb")
	require.Error(t, err)
	_, err = theory.NoteNumber("X3")
	require.Error(t, err)
}

func TestVoicing(t *testing.T) {
	info, err := theory.Resolve("Cm7")
	require.NoError(t, err)
	require.Equal(t, []string{"C3", "Eb3", "G3", "Bb3"}, info.Voicing(theory.ChordOctave))

	info, err = theory.Resolve("C")
	require.NoError(t, err)
	require.Equal(t, []string{"C3", "E3", "G3", "C3"}, info.Voicing(theory.ChordOctave))
}
