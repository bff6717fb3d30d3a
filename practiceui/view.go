package practiceui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/leavestui/fretboard"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/styles"
	"github.com/rapidmidiex/leavestui/transport"
	"golang.org/x/term"
)

var docStyle = styles.DocStyle

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}
	s := m.tr.State()
	f := m.screen.frame

	// Chord chart
	{
		doc.WriteString(renderChart(m.tr.Table(), s, f) + "\n\n")
	}

	// Current chord
	{
		title := styles.ChordStyle.Render(f.Title())
		next := styles.NextStyle.Render("next: " + f.Next)
		doc.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, title, next) + "\n")
		doc.WriteString(renderGuideTones(f) + "\n\n")
	}

	// Fretboard
	{
		doc.WriteString(fretboard.Diagram(f.Markers, styles.RenderMarker) + "\n\n")
	}

	// Recent chords
	{
		doc.WriteString(styles.BaseStyle.Width(styles.Width).Render(m.events.View()) + "\n")
	}

	// Status bar
	{
		doc.WriteString(m.statusBar(s) + "\n")
	}

	// Help menu
	{
		doc.WriteString(styles.HelpMenu.Render(m.help.View(m.keys)))
	}

	if physicalWidth > 0 {
		docStyle = styles.DocStyle.MaxWidth(physicalWidth)
	}
	return docStyle.Render(doc.String())
}

// renderChart draws one row of bars per section, with the loop range shaded and the
// current bar highlighted.
func renderChart(table *progression.Table, s transport.State, f transport.Frame) string {
	bars := table.Bars()
	rows := make([]string, 0, len(table.Sections()))
	for _, sec := range table.Sections() {
		cells := []string{styles.SectionStyle.Render(sec.Name)}
		for n := sec.Start; n <= sec.End; n++ {
			b := bars[n-1]
			style := styles.BarStyle
			switch {
			case f.CountIn == 0 && f.Bar == n:
				style = styles.ActiveBarStyle
			case s.Loop.Enabled && s.InLoop(n):
				style = styles.LoopBarStyle
			}
			cells = append(cells, style.Render(b.Label()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderGuideTones(f transport.Frame) string {
	if len(f.GuideTones) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.GuideTones))
	for i, tone := range f.GuideTones {
		kind := fretboard.Third
		if i > 0 {
			kind = fretboard.Seventh
		}
		label := tone.Note
		if f.Display == transport.DisplayDegree {
			label = tone.Degree
		}
		parts = append(parts, fmt.Sprintf("%s %s", kind, styles.RenderMarker(kind, label)))
	}
	return "guide tones: " + strings.Join(parts, "  ")
}

func (m Model) statusBar(s transport.State) string {
	w := lipgloss.Width

	status := styles.StatusStyle.Render(s.Status.String())
	tempo := styles.TempoStyle.Render(fmt.Sprintf("%d bpm", s.Tempo))
	jit := styles.JitterStyle.Render(fmt.Sprintf("late %s/%s", round(m.stats.Avg), round(m.stats.Max)))

	loop := "loop off"
	if s.Loop.Enabled {
		loop = fmt.Sprintf("loop %d-%d", s.Loop.Start, s.Loop.End)
	}
	vol := "no audio"
	if m.volume != nil {
		vol = fmt.Sprintf("vol %+.0fdB", m.volume.VolumeDB())
	}
	pos := fmt.Sprintf("%d.%d", m.screen.frame.Bar, m.screen.frame.Beat)
	text := strings.Join([]string{pos, loop, "click:" + s.Metronome.String(), s.Display.String(), vol}, " · ")

	val := styles.StatusText.Copy().
		Width(styles.Width - w(status) - w(tempo) - w(jit)).
		Render(text)

	bar := lipgloss.JoinHorizontal(lipgloss.Top, status, val, tempo, jit)
	return styles.StatusBarStyle.Width(styles.Width).Render(bar)
}

func round(d time.Duration) time.Duration {
	return d.Round(100 * time.Microsecond)
}
