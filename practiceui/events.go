package practiceui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rapidmidiex/leavestui/styles"
	"github.com/rapidmidiex/leavestui/transport"
)

// Number of chord changes kept in the history pane.
const historySize = 64

type (
	// screen is the transport's renderer. Frames arrive on the event loop, from Update.
	screen struct {
		frame   transport.Frame
		history []string
		// Total chord changes seen, including the ones dropped from history.
		changes int
	}

	// events shows the latest chord changes.
	events struct {
		viewport viewport.Model
		shown    int
	}
)

func (s *screen) Render(f transport.Frame) {
	prev := s.frame
	s.frame = f
	if f.CountIn > 0 || f.Bar == 0 {
		return
	}
	if prev.CountIn == 0 && prev.Bar == f.Bar && prev.Chord == f.Chord {
		return
	}

	line := fmt.Sprintf("%2d.%d  %-8s next %s", f.Bar, f.Beat, f.Chord, f.Next)
	s.history = append(s.history, line)
	if len(s.history) > historySize {
		s.history = s.history[len(s.history)-historySize:]
	}
	s.changes++
}

func newEvents() events {
	return events{viewport: viewport.New(styles.Width, 4)}
}

// sync scrolls to the newest chord change when there is one.
func (e events) sync(s *screen) events {
	if s.changes == e.shown {
		return e
	}
	e.shown = s.changes
	e.viewport.SetContent(strings.Join(s.history, "\n"))
	e.viewport.GotoBottom()
	return e
}

func (e events) View() string {
	return e.viewport.View()
}
