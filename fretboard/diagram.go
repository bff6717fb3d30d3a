package fretboard

import (
	"fmt"
	"strings"
)

type (
	Kind int

	// Marker is a labelled position to draw on the diagram.
	Marker struct {
		Position
		Label string
		Kind  Kind
	}

	// StyleFunc decorates a marker label before it is placed on the diagram.
	StyleFunc func(kind Kind, label string) string
)

const (
	Third Kind = iota
	Seventh
)

const cellWidth = 5

func (k Kind) String() string {
	switch k {
	case Third:
		return "3rd"
	case Seventh:
		return "7th"
	}
	return "unknown"
}

// Diagram draws the fretboard as text, high E on top, with the markers on their frets.
// When two markers share a position the later one wins.
func Diagram(markers []Marker, style StyleFunc) string {
	var cells [NumStrings][NumFrets]string
	for _, m := range markers {
		if m.String < 1 || m.String > NumStrings || m.Fret < 1 || m.Fret > NumFrets {
			continue
		}
		label := center(m.Label, cellWidth-2, "-")
		if style != nil {
			label = style(m.Kind, label)
		}
		cells[m.String-1][m.Fret-1] = "-" + label + "-"
	}

	b := strings.Builder{}
	b.WriteString("   ")
	for f := 1; f <= NumFrets; f++ {
		b.WriteString(center(fmt.Sprint(f), cellWidth, " ") + " ")
	}
	b.WriteString("\n")

	for s := 0; s < NumStrings; s++ {
		fmt.Fprintf(&b, "%-2s|", tuning[s])
		for f := 0; f < NumFrets; f++ {
			cell := cells[s][f]
			if cell == "" {
				cell = strings.Repeat("-", cellWidth)
			}
			b.WriteString(cell + "|")
		}
		b.WriteString("\n")
	}

	b.WriteString("   ")
	for f := 1; f <= NumFrets; f++ {
		dot := ""
		switch f {
		case 3, 5, 7, 9:
			dot = "o"
		case 12:
			dot = "oo"
		}
		b.WriteString(center(dot, cellWidth, " ") + " ")
	}
	return strings.TrimRight(b.String(), " ")
}

// center pads s with fill to width, truncating longer labels.
func center(s string, width int, fill string) string {
	if len(s) >= width {
		return s[:width]
	}
	pad := width - len(s)
	left := pad / 2
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, pad-left)
}
