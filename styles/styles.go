package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/leavestui/fretboard"
)

const (
	// Width of the chart and the fretboard panel. The detected terminal width is
	// only used to truncate.
	Width = 84
	// Width of one bar cell on the chord chart.
	BarWidth = 10
)

// https://github.com/inngest/inngest/blob/main/pkg/cli/styles.go
var (
	Color   = lipgloss.AdaptiveColor{Light: "#111222", Dark: "#FAFAFA"}
	Primary = lipgloss.Color("#4636f5")
	Green   = lipgloss.Color("#9dcc3a")
	Red     = lipgloss.Color("#ff0000")
	White   = lipgloss.Color("#ffffff")
	Black   = lipgloss.Color("#000000")
	Orange  = lipgloss.Color("#D3A347")
	Subtle  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}

	TextStyle = lipgloss.NewStyle().Foreground(Color)
	BoldStyle = TextStyle.Copy().Bold(true)

	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	// Chord chart.
	BarStyle = lipgloss.NewStyle().
			Width(BarWidth).
			Padding(0, 1).
			Foreground(Color)
	LoopBarStyle = BarStyle.Copy().
			Background(Subtle)
	ActiveBarStyle = BarStyle.Copy().
			Bold(true).
			Foreground(White).
			Background(Primary)
	SectionStyle = lipgloss.NewStyle().
			Width(3).
			Foreground(Orange).
			Bold(true)

	// Current chord panel.
	ChordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Color).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)
	NextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	// Fretboard markers.
	ThirdStyle   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	SeventhStyle = lipgloss.NewStyle().Foreground(Orange).Bold(true)

	// Status Bar.
	StatusNugget = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Padding(0, 1)
	JitterStyle = StatusNugget.Copy().
			Background(lipgloss.Color("#e783f2")).
			Align(lipgloss.Right)
	TempoStyle = StatusNugget.Copy().
			Background(lipgloss.Color("#6124DF"))

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"})

	StatusStyle = lipgloss.NewStyle().
			Inherit(StatusBarStyle).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#FF5F87")).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().Inherit(StatusBarStyle)

	MessageText = lipgloss.NewStyle().Align(lipgloss.Left)

	HelpMenu = lipgloss.NewStyle().Align(lipgloss.Center).PaddingTop(1)
	// Page
	DocStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)
)

// RenderError returns a formatted error string.
func RenderError(msg string) string {
	// Error applies styles to an error message
	err := lipgloss.NewStyle().Background(Red).Foreground(White).Bold(true).Padding(0, 1).Render("Error")
	content := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(msg)
	return err + content
}

// RenderMarker colours a fretboard label by the chord tone it marks.
func RenderMarker(kind fretboard.Kind, label string) string {
	if kind == fretboard.Third {
		return ThirdStyle.Render(label)
	}
	return SeventhStyle.Render(label)
}
