package transport_test

import (
	"testing"

	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/transport"
	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	t.Run("starts with defaults", func(t *testing.T) {
		s := transport.NewState()
		require.Equal(t, transport.Stopped, s.Status)
		require.Equal(t, 1, s.Bar)
		require.Equal(t, 1, s.Beat)
		require.Equal(t, 80, s.Tempo)
		require.False(t, s.Loop.Enabled)
		require.Equal(t, transport.DisplayNote, s.Display)
	})

	t.Run("start arms the count-in", func(t *testing.T) {
		s := transport.NewState().Start()
		require.Equal(t, transport.CountingIn, s.Status)
		require.Equal(t, transport.CountInBeats, s.CountIn)
	})

	t.Run("start jumps to the loop start when looping", func(t *testing.T) {
		s := transport.NewState().SetLoop(true, 9, 16).Start()
		require.Equal(t, 9, s.Bar)
		require.Equal(t, 1, s.Beat)
	})

	t.Run("start while running changes nothing", func(t *testing.T) {
		s := transport.NewState().Start()
		require.Equal(t, s, s.Start())
	})

	t.Run("pause keeps the position and resume skips the count-in", func(t *testing.T) {
		s := transport.NewState()
		s.Status = transport.Playing
		s.Bar, s.Beat = 12, 3

		paused := s.Pause()
		require.Equal(t, transport.Paused, paused.Status)
		require.Equal(t, 12, paused.Bar)
		require.Equal(t, 3, paused.Beat)

		resumed := paused.Start()
		require.Equal(t, transport.Playing, resumed.Status)
		require.Equal(t, 0, resumed.CountIn)
		require.Equal(t, 12, resumed.Bar)
	})

	t.Run("pausing during the count-in resumes the count-in", func(t *testing.T) {
		s := transport.NewState().Start()
		s.CountIn = 2
		require.Equal(t, transport.CountingIn, s.Pause().Start().Status)
		require.Equal(t, 2, s.Pause().Start().CountIn)
	})

	t.Run("stop rewinds", func(t *testing.T) {
		s := transport.NewState().Start()
		s.Bar, s.Beat = 20, 2
		s = s.Stop()
		require.Equal(t, transport.Stopped, s.Status)
		require.Equal(t, 1, s.Bar)
		require.Equal(t, 1, s.Beat)
		require.Equal(t, 0, s.CountIn)
	})

	t.Run("seek halts playback and clamps", func(t *testing.T) {
		s := transport.NewState().Start().Seek(17)
		require.Equal(t, transport.Stopped, s.Status)
		require.Equal(t, 0, s.CountIn)
		require.Equal(t, 17, s.Bar)
		require.Equal(t, 1, s.Beat)

		require.Equal(t, progression.NumBars, s.Seek(99).Bar)
		require.Equal(t, 1, s.Seek(-3).Bar)
	})

	t.Run("clamps tempo", func(t *testing.T) {
		s := transport.NewState()
		require.Equal(t, transport.MinTempo, s.SetTempo(0).Tempo)
		require.Equal(t, transport.MaxTempo, s.SetTempo(1000).Tempo)
		require.Equal(t, 120, s.SetTempo(120).Tempo)
	})
}

func TestLoopBounds(t *testing.T) {
	s := transport.NewState().SetLoopEnd(5)

	t.Run("start is clamped down to the end", func(t *testing.T) {
		got := s.SetLoopStart(10)
		require.Equal(t, 5, got.Loop.Start)
		require.Equal(t, 5, got.Loop.End)
	})

	t.Run("end is clamped up to the start", func(t *testing.T) {
		got := s.SetLoopStart(4).SetLoopEnd(2)
		require.Equal(t, 4, got.Loop.End)
	})

	t.Run("bounds stay inside the chart", func(t *testing.T) {
		got := transport.NewState().SetLoopStart(0).SetLoopEnd(40)
		require.Equal(t, 1, got.Loop.Start)
		require.Equal(t, progression.NumBars, got.Loop.End)
	})

	t.Run("set loop never inverts the range", func(t *testing.T) {
		for _, tc := range [][2]int{{10, 5}, {-4, 50}, {33, 0}, {8, 8}} {
			got := transport.NewState().SetLoop(true, tc[0], tc[1])
			require.LessOrEqual(t, got.Loop.Start, got.Loop.End)
			require.GreaterOrEqual(t, got.Loop.Start, 1)
			require.LessOrEqual(t, got.Loop.End, progression.NumBars)
		}
	})
}

func TestParseModes(t *testing.T) {
	m, ok := transport.ParseMetronomeMode("off-beat")
	require.True(t, ok)
	require.Equal(t, transport.MetronomeOffBeat, m)
	_, ok = transport.ParseMetronomeMode("loud")
	require.False(t, ok)

	d, ok := transport.ParseDisplayMode("degree")
	require.True(t, ok)
	require.Equal(t, "degree", d.String())
}
