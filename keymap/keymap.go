package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Mapping struct {
	Start         key.Binding
	Pause         key.Binding
	Stop          key.Binding
	SeekPrev      key.Binding
	SeekNext      key.Binding
	TempoUp       key.Binding
	TempoDown     key.Binding
	LoopToggle    key.Binding
	LoopStartDown key.Binding
	LoopStartUp   key.Binding
	LoopEndDown   key.Binding
	LoopEndUp     key.Binding
	Metronome     key.Binding
	Display       key.Binding
	VolumeDown    key.Binding
	VolumeUp      key.Binding
	Help          key.Binding
	Quit          key.Binding
}

var DefaultMapping = Mapping{
	Start: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/resume"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	SeekPrev: key.NewBinding(
		key.WithKeys(tea.KeyLeft.String()),
		key.WithHelp("←", "prev bar"),
	),
	SeekNext: key.NewBinding(
		key.WithKeys(tea.KeyRight.String()),
		key.WithHelp("→", "next bar"),
	),
	TempoUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "tempo up"),
	),
	TempoDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "tempo down"),
	),
	LoopToggle: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "loop on/off"),
	),
	LoopStartDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "loop start -1"),
	),
	LoopStartUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "loop start +1"),
	),
	LoopEndDown: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "loop end -1"),
	),
	LoopEndUp: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "loop end +1"),
	),
	Metronome: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "metronome"),
	),
	Display: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "notes/degrees"),
	),
	VolumeDown: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "volume -"),
	),
	VolumeUp: key.NewBinding(
		key.WithKeys("V"),
		key.WithHelp("V", "volume +"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", tea.KeyCtrlC.String()),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (m Mapping) ShortHelp() []key.Binding {
	return []key.Binding{m.Start, m.Pause, m.Stop, m.LoopToggle, m.Display, m.Help, m.Quit}
}

// FullHelp implements help.KeyMap.
func (m Mapping) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Start, m.Pause, m.Stop, m.SeekPrev, m.SeekNext},
		{m.TempoUp, m.TempoDown, m.Metronome, m.VolumeDown, m.VolumeUp},
		{m.LoopToggle, m.LoopStartDown, m.LoopStartUp, m.LoopEndDown, m.LoopEndUp},
		{m.Display, m.Help, m.Quit},
	}
}
