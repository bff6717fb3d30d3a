package practiceui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/theory"
	"github.com/rapidmidiex/leavestui/transport"
)

// ChartTable lists every bar with its section, chords, functional label and guide tones.
func ChartTable(t *progression.Table, display transport.DisplayMode) (table.Model, error) {
	columns := []table.Column{
		{Title: "Bar", Width: 4},
		{Title: "Sec", Width: 4},
		{Title: "Chord", Width: 10},
		{Title: "Function", Width: 9},
		{Title: "Guide tones", Width: 20},
	}

	rows := make([]table.Row, 0, progression.NumBars)
	for _, sec := range t.Sections() {
		for n := sec.Start; n <= sec.End; n++ {
			b, err := t.BarAt(n)
			if err != nil {
				return table.Model{}, err
			}
			tones, err := guideTones(b, display)
			if err != nil {
				return table.Model{}, fmt.Errorf("bar %d: %w", n, err)
			}
			rows = append(rows, table.Row{fmt.Sprint(n), sec.Name, b.Label(), b.Degree, tones})
		}
	}

	tm := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	// Nothing is selected in a printed chart.
	s.Selected = lipgloss.NewStyle()
	tm.SetStyles(s)
	tm.SetWidth(chartWidth(columns))

	return tm, nil
}

func chartWidth(columns []table.Column) int {
	w := 0
	for _, c := range columns {
		// Cells are padded by one on each side.
		w += c.Width + 2
	}
	return w
}

func guideTones(b progression.Bar, display transport.DisplayMode) (string, error) {
	chords := []string{b.Chord}
	if b.Split() {
		chords = append(chords, b.Next)
	}

	parts := make([]string, 0, len(chords))
	for _, symbol := range chords {
		info, err := theory.Resolve(symbol)
		if err != nil {
			return "", err
		}
		var labels []string
		for _, tone := range info.GuideTones() {
			if display == transport.DisplayDegree {
				labels = append(labels, tone.Degree)
			} else {
				labels = append(labels, tone.Note)
			}
		}
		parts = append(parts, strings.Join(labels, " "))
	}
	return strings.Join(parts, " / "), nil
}
