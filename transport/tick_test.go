package transport_test

import (
	"testing"
	"time"

	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/transport"
	"github.com/stretchr/testify/require"
)

func playingAt(bar, beat int) transport.State {
	s := transport.NewState()
	s.Status = transport.Playing
	s.Bar, s.Beat = bar, beat
	return s
}

func TestTickAdvance(t *testing.T) {
	table := progression.AutumnLeaves()

	t.Run("wraps to bar 1 after the last bar", func(t *testing.T) {
		got, _ := transport.Tick(playingAt(32, 4), table)
		require.Equal(t, 1, got.Bar)
		require.Equal(t, 1, got.Beat)
	})

	t.Run("wraps to the loop start after the loop end", func(t *testing.T) {
		s := playingAt(8, 4).SetLoop(true, 3, 8)
		got, _ := transport.Tick(s, table)
		require.Equal(t, 3, got.Bar)
		require.Equal(t, 1, got.Beat)
	})

	t.Run("moves through the beats of a bar", func(t *testing.T) {
		got, _ := transport.Tick(playingAt(4, 2), table)
		require.Equal(t, 4, got.Bar)
		require.Equal(t, 3, got.Beat)

		got, _ = transport.Tick(playingAt(4, 4), table)
		require.Equal(t, 5, got.Bar)
		require.Equal(t, 1, got.Beat)
	})

	t.Run("ignores ticks when not running", func(t *testing.T) {
		s := playingAt(4, 2).Pause()
		got, ev := transport.Tick(s, table)
		require.Equal(t, s, got)
		require.False(t, ev.Click)
		require.Nil(t, ev.Chord)
	})
}

func TestTickCountIn(t *testing.T) {
	table := progression.AutumnLeaves()
	s := transport.NewState().Start()

	for want := transport.CountInBeats; want > 0; want-- {
		require.Equal(t, transport.CountingIn, s.Status)
		var ev transport.Events
		s, ev = transport.Tick(s, table)
		require.True(t, ev.Click)
		require.Equal(t, want, ev.CountIn)
		require.Nil(t, ev.Chord)
		require.Equal(t, 1, s.Bar)
		require.Equal(t, 1, s.Beat)
	}
	require.Equal(t, transport.Playing, s.Status)

	_, ev := transport.Tick(s, table)
	require.Equal(t, 0, ev.CountIn)
	require.NotNil(t, ev.Chord)
	require.Equal(t, "Cm7", ev.Chord.Symbol)
}

func TestTickChords(t *testing.T) {
	table := progression.AutumnLeaves()

	t.Run("triggers a normal bar once for the whole bar", func(t *testing.T) {
		s := playingAt(2, 1)
		var triggers []transport.ChordTrigger
		for i := 0; i < progression.BeatsPerBar; i++ {
			var ev transport.Events
			s, ev = transport.Tick(s, table)
			if ev.Chord != nil {
				triggers = append(triggers, *ev.Chord)
			}
		}
		require.Equal(t, []transport.ChordTrigger{{Symbol: "F7", Length: transport.Measure}}, triggers)
	})

	t.Run("triggers both halves of a split bar", func(t *testing.T) {
		s := playingAt(27, 1)
		var triggers []transport.ChordTrigger
		for i := 0; i < progression.BeatsPerBar; i++ {
			var ev transport.Events
			s, ev = transport.Tick(s, table)
			if ev.Chord != nil {
				triggers = append(triggers, *ev.Chord)
			}
		}
		require.Equal(t, []transport.ChordTrigger{
			{Symbol: "Gm7", Length: transport.Half},
			{Symbol: "C7", Length: transport.Half},
		}, triggers)
	})
}

func TestTickMetronome(t *testing.T) {
	table := progression.AutumnLeaves()

	clicks := func(mode transport.MetronomeMode) []bool {
		s := playingAt(1, 1).SetMetronome(mode)
		var got []bool
		for i := 0; i < progression.BeatsPerBar; i++ {
			var ev transport.Events
			s, ev = transport.Tick(s, table)
			got = append(got, ev.Click)
		}
		return got
	}

	require.Equal(t, []bool{true, true, true, true}, clicks(transport.MetronomeOn))
	require.Equal(t, []bool{false, true, false, true}, clicks(transport.MetronomeOffBeat))
}

func TestLength(t *testing.T) {
	require.Equal(t, 750*time.Millisecond, transport.BeatInterval(80))
	require.Equal(t, 3*time.Second, transport.Measure.Duration(80))
	require.Equal(t, time.Second, transport.Half.Duration(120))
	require.Equal(t, "32n", transport.ThirtySecond.String())
	require.Equal(t, time.Duration(0), transport.Measure.Duration(0))
}
