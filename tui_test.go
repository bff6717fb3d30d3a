package leavestui_test

import (
	"io"
	"testing"

	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapidmidiex/leavestui"
	"github.com/rapidmidiex/leavestui/lverr"
	"github.com/rapidmidiex/leavestui/practiceui"
	"github.com/rapidmidiex/leavestui/trace"
	"github.com/rapidmidiex/leavestui/transport"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *leavestui.Config)
		check  func(t *testing.T, c leavestui.Config)
	}{
		{
			name:   "defaults pass",
			modify: func(c *leavestui.Config) {},
			check: func(t *testing.T, c leavestui.Config) {
				require.Equal(t, leavestui.DefaultConfig(), c)
			},
		},
		{
			name:   "tempo clamped",
			modify: func(c *leavestui.Config) { c.Tempo = 1000 },
			check: func(t *testing.T, c leavestui.Config) {
				require.Equal(t, transport.MaxTempo, c.Tempo)
			},
		},
		{
			name:   "slow tempo clamped",
			modify: func(c *leavestui.Config) { c.Tempo = 5 },
			check: func(t *testing.T, c leavestui.Config) {
				require.Equal(t, transport.MinTempo, c.Tempo)
			},
		},
		{
			name:   "loop range never inverted",
			modify: func(c *leavestui.Config) { c.LoopStart, c.LoopEnd = 40, 3 },
			check: func(t *testing.T, c leavestui.Config) {
				require.Equal(t, 32, c.LoopStart)
				require.Equal(t, 32, c.LoopEnd)
			},
		},
		{
			name:   "volume clamped",
			modify: func(c *leavestui.Config) { c.VolumeDB = 20 },
			check: func(t *testing.T, c leavestui.Config) {
				require.Equal(t, 6.0, c.VolumeDB)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := leavestui.DefaultConfig()
			tt.modify(&c)
			got, err := c.Validate()
			require.NoError(t, err)
			tt.check(t, got)
		})
	}

	t.Run("unknown metronome mode", func(t *testing.T) {
		c := leavestui.DefaultConfig()
		c.Metronome = "swing"
		_, err := c.Validate()
		require.Error(t, err)
		require.Equal(t, `Metronome must be "on" or "off-beat"`, fmsg.GetIssue(err))
	})

	t.Run("non-positive tempo", func(t *testing.T) {
		c := leavestui.DefaultConfig()
		c.Tempo = 0
		_, err := c.Validate()
		require.Error(t, err)
		require.Equal(t, "Tempo must be a positive bpm", fmsg.GetIssue(err))
	})

	t.Run("unknown display mode", func(t *testing.T) {
		c := leavestui.DefaultConfig()
		c.Display = "tab"
		_, err := c.Validate()
		require.Error(t, err)
	})
}

func TestState(t *testing.T) {
	c := leavestui.DefaultConfig()
	c.Tempo = 120
	c.Metronome = "off-beat"
	c.Display = "degree"
	c.Loop = true
	c.LoopStart, c.LoopEnd = 25, 28

	s, err := c.State()
	require.NoError(t, err)
	require.Equal(t, transport.Stopped, s.Status)
	require.Equal(t, 120, s.Tempo)
	require.Equal(t, transport.MetronomeOffBeat, s.Metronome)
	require.Equal(t, transport.DisplayDegree, s.Display)
	require.Equal(t, transport.Loop{Enabled: true, Start: 25, End: 28}, s.Loop)
}

func TestModel(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	c := leavestui.DefaultConfig()
	c.Display = "degree"
	m, err := leavestui.NewModel(c, practiceui.Options{Log: log})
	require.NoError(t, err)

	view := m.View()
	require.Contains(t, view, "Autumn Leaves")
	require.Contains(t, view, "no soundfont")
	require.Contains(t, view, "b7")

	next, _ := m.Update(lverr.ErrMsg{Err: plainErr("trace file closed")})
	require.Contains(t, next.View(), "trace file closed")

	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}

func TestModelShowsTraceFailure(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	rec := trace.NewRecorder(failingWriter{})
	m, err := leavestui.NewModel(leavestui.DefaultConfig(), practiceui.Options{Log: log})
	require.NoError(t, err)
	m = m.WithErrors(rec.Errors())

	rec.Click(transport.ThirtySecond, 0)
	rec.Click(transport.ThirtySecond, 0)
	require.Error(t, rec.Err())

	var next tea.Model = m
	for _, msg := range collect(m.Init()) {
		if _, ok := msg.(lverr.ErrMsg); ok {
			next, _ = next.Update(msg)
		}
	}
	require.Contains(t, next.View(), "Trace file could not be written")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, plainErr("disk full") }

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, collect(c)...)
	}
	return msgs
}

type plainErr string

func (e plainErr) Error() string { return string(e) }
