package midi

import (
	"fmt"
	"io"
	"sort"

	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/theory"
	"github.com/rapidmidiex/leavestui/transport"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 480

type (
	ExportOpts struct {
		Tempo int
		// Times through the chart. Defaults to 1.
		Choruses  int
		Metronome transport.MetronomeMode
		// Prepend the count-in clicks.
		CountIn bool
		// Leave out the click track.
		NoClick bool
	}

	timedMsg struct {
		tick uint32
		msg  smf.Message
		off  bool
	}
)

// Export writes the chart as a Standard MIDI File: a conductor track with tempo, meter and a
// marker per chord, a chord track, and a click track on the percussion channel.
// Notes are placed by running the same ticks the transport plays.
func Export(w io.Writer, table *progression.Table, o ExportOpts) error {
	if o.Choruses < 1 {
		o.Choruses = 1
	}
	state := transport.NewState().SetTempo(o.Tempo).SetMetronome(o.Metronome).Start()
	if !o.CountIn {
		state.CountIn = 0
		state.Status = transport.Playing
	}

	var conductor, chords, clicks []timedMsg
	conductor = append(conductor,
		timedMsg{msg: smf.MetaTempo(float64(state.Tempo))},
		timedMsg{msg: smf.MetaMeter(progression.BeatsPerBar, 4)},
	)

	beats := state.CountIn + o.Choruses*progression.NumBars*progression.BeatsPerBar
	for i := 0; i < beats; i++ {
		at := uint32(i * ticksPerQuarter)

		var ev transport.Events
		state, ev = transport.Tick(state, table)

		if ev.Click && !o.NoClick {
			length := lengthTicks(transport.ThirtySecond)
			clicks = append(clicks,
				timedMsg{tick: at, msg: smf.Message(gomidi.NoteOn(clickChannel, clickKey, clickVelocity))},
				timedMsg{tick: at + length, msg: smf.Message(gomidi.NoteOff(clickChannel, clickKey)), off: true},
			)
		}
		if ev.Chord == nil {
			continue
		}

		info, err := theory.Resolve(ev.Chord.Symbol)
		if err != nil {
			return fmt.Errorf("export bar %d: %w", ev.Bar, err)
		}
		conductor = append(conductor, timedMsg{tick: at, msg: smf.MetaMarker(ev.Chord.Symbol)})

		length := lengthTicks(ev.Chord.Length)
		for _, n := range info.Voicing(theory.ChordOctave) {
			key, err := theory.NoteNumber(n)
			if err != nil {
				return fmt.Errorf("export bar %d: %w", ev.Bar, err)
			}
			chords = append(chords,
				timedMsg{tick: at, msg: smf.Message(gomidi.NoteOn(chordChannel, uint8(key), chordVelocity))},
				timedMsg{tick: at + length, msg: smf.Message(gomidi.NoteOff(chordChannel, uint8(key))), off: true},
			)
		}
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	for _, msgs := range [][]timedMsg{conductor, chords, clicks} {
		if err := s.Add(toTrack(msgs)); err != nil {
			return fmt.Errorf("export: add track: %w", err)
		}
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func lengthTicks(l transport.Length) uint32 {
	return uint32(l.Beats() * ticksPerQuarter)
}

// toTrack orders the messages by time, note offs first, and converts them to delta times.
func toTrack(msgs []timedMsg) smf.Track {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	var last uint32
	for _, m := range msgs {
		track.Add(m.tick-last, m.msg)
		last = m.tick
	}
	track.Close(0)
	return track
}
