package practiceui

import (
	"context"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapidmidiex/leavestui/clock"
	"github.com/rapidmidiex/leavestui/jitter"
	"github.com/rapidmidiex/leavestui/keymap"
	"github.com/rapidmidiex/leavestui/lverr"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/transport"
	"github.com/sirupsen/logrus"
)

const (
	volumeStep = 3.0
	// Time allowed for the audio output to come up.
	activateTimeout = 5 * time.Second
)

type (
	// Volume is the master volume of the audio output.
	Volume interface {
		SetVolume(db float64)
		VolumeDB() float64
	}

	Options struct {
		Table *progression.Table
		Clock *clock.Program
		Audio transport.Audio
		// Nil when there is no audio output to adjust.
		Volume Volume
		State  *transport.State
		Log    logrus.FieldLogger
	}

	// AudioReadyMsg is sent once the audio output was activated. Playback starts on it.
	AudioReadyMsg struct {
		Err error
	}

	Model struct {
		tr     *transport.Transport
		clock  *clock.Program
		volume Volume
		screen *screen

		// Audio output activated.
		activated bool
		// Activation requested, waiting for AudioReadyMsg.
		activating bool

		// Lateness of recent ticks.
		late  jitter.Window
		stats jitter.Stats

		events events
		help   help.Model
		keys   keymap.Mapping

		log logrus.FieldLogger
	}
)

func New(o Options) Model {
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	if o.Clock == nil {
		o.Clock = clock.NewProgram()
	}

	sc := &screen{}
	m := Model{
		clock:  o.Clock,
		volume: o.Volume,
		screen: sc,
		events: newEvents(),
		help:   help.New(),
		keys:   keymap.DefaultMapping,
		log:    o.Log,
	}
	m.tr = transport.New(transport.Options{
		Table:     o.Table,
		Scheduler: o.Clock,
		Audio:     o.Audio,
		Renderer:  sc,
		Log:       o.Log,
		State:     o.State,
	})
	m.tr.Refresh()
	m.events = m.events.sync(sc)
	return m
}

// Init is used to handle any initial I/O
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case AudioReadyMsg:
		m.activating = false
		m.activated = true
		if msg.Err != nil {
			// Keep going without sound: the chart still follows the tick stream.
			m.log.WithError(msg.Err).Error("audio activation failed")
			cmds = append(cmds, reportErr(msg.Err))
		}
		m.tr.Start()

	case clock.TickMsg:
		late, ok := m.clock.Fire(msg)
		if ok {
			m.late = m.late.Add(late)
			cmds = append(cmds, jitter.Report(m.late))
		}

	case jitter.StatsMsg:
		m.stats = msg.Stats
	}

	m.events = m.events.sync(m.screen)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.tr.State()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tr.Stop()
		return tea.Quit

	case key.Matches(msg, m.keys.Start):
		if !m.activated {
			if m.activating {
				return nil
			}
			m.activating = true
			return m.activate()
		}
		m.tr.Start()
	case key.Matches(msg, m.keys.Pause):
		m.tr.Pause()
	case key.Matches(msg, m.keys.Stop):
		m.tr.Stop()

	case key.Matches(msg, m.keys.SeekPrev):
		m.tr.Seek(m.currentBar() - 1)
	case key.Matches(msg, m.keys.SeekNext):
		m.tr.Seek(m.currentBar() + 1)

	case key.Matches(msg, m.keys.TempoUp):
		m.tr.SetTempo(s.Tempo + 1)
	case key.Matches(msg, m.keys.TempoDown):
		m.tr.SetTempo(s.Tempo - 1)

	case key.Matches(msg, m.keys.LoopToggle):
		m.tr.SetLoop(!s.Loop.Enabled, s.Loop.Start, s.Loop.End)
	case key.Matches(msg, m.keys.LoopStartDown):
		m.tr.SetLoopStart(s.Loop.Start - 1)
	case key.Matches(msg, m.keys.LoopStartUp):
		m.tr.SetLoopStart(s.Loop.Start + 1)
	case key.Matches(msg, m.keys.LoopEndDown):
		m.tr.SetLoopEnd(s.Loop.End - 1)
	case key.Matches(msg, m.keys.LoopEndUp):
		m.tr.SetLoopEnd(s.Loop.End + 1)

	case key.Matches(msg, m.keys.Metronome):
		if s.Metronome == transport.MetronomeOn {
			m.tr.SetMetronome(transport.MetronomeOffBeat)
		} else {
			m.tr.SetMetronome(transport.MetronomeOn)
		}
	case key.Matches(msg, m.keys.Display):
		if s.Display == transport.DisplayNote {
			m.tr.SetDisplay(transport.DisplayDegree)
		} else {
			m.tr.SetDisplay(transport.DisplayNote)
		}

	case key.Matches(msg, m.keys.VolumeDown):
		m.changeVolume(-volumeStep)
	case key.Matches(msg, m.keys.VolumeUp):
		m.changeVolume(volumeStep)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// activate brings up the audio output off the event loop.
func (m Model) activate() tea.Cmd {
	tr := m.tr
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), activateTimeout)
		defer cancel()
		if err := tr.Activate(ctx); err != nil {
			return AudioReadyMsg{Err: fault.Wrap(err, fmsg.With("activate audio"))}
		}
		return AudioReadyMsg{}
	}
}

func (m *Model) changeVolume(delta float64) {
	if m.volume == nil {
		return
	}
	m.volume.SetVolume(m.volume.VolumeDB() + delta)
	m.log.WithField("db", m.volume.VolumeDB()).Debug("volume changed")
}

// currentBar is the bar on screen, or the bar playback continues from during count-in.
func (m Model) currentBar() int {
	if f := m.screen.frame; f.CountIn == 0 && f.Bar > 0 {
		return f.Bar
	}
	return m.tr.State().Bar
}

func (m Model) State() transport.State {
	return m.tr.State()
}

// Frame returns the last frame rendered by the transport.
func (m Model) Frame() transport.Frame {
	return m.screen.frame
}

// reportErr hands err to the enclosing model for display.
func reportErr(err error) tea.Cmd {
	return func() tea.Msg {
		return lverr.ErrMsg{Err: err}
	}
}
