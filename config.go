package leavestui

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/rapidmidiex/leavestui/midi"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/transport"
)

// Config holds the startup settings of a practice session.
type Config struct {
	Tempo     int
	Metronome string
	Display   string
	Loop      bool
	LoopStart int
	LoopEnd   int
	// SoundFont used for synthesis. Empty runs without sound.
	SoundFont string
	// Master volume in dB.
	VolumeDB float64
	// File receiving a JSON line per chord and click. Empty disables tracing.
	TracePath string
	LogFile   string
}

func DefaultConfig() Config {
	return Config{
		Tempo:     transport.DefaultTempo,
		Metronome: transport.MetronomeOn.String(),
		Display:   transport.DisplayNote.String(),
		LoopStart: 1,
		LoopEnd:   progression.NumBars,
		VolumeDB:  -12,
		LogFile:   "leaves.log",
	}
}

// Validate clamps numeric settings into range. Unknown modes and a non-positive tempo are
// rejected.
func (c Config) Validate() (Config, error) {
	if _, ok := transport.ParseMetronomeMode(c.Metronome); !ok {
		return c, fault.Wrap(fmt.Errorf("metronome mode %q", c.Metronome),
			fmsg.WithDesc("invalid config", "Metronome must be \"on\" or \"off-beat\""))
	}
	if _, ok := transport.ParseDisplayMode(c.Display); !ok {
		return c, fault.Wrap(fmt.Errorf("display mode %q", c.Display),
			fmsg.WithDesc("invalid config", "Display must be \"note\" or \"degree\""))
	}

	if c.Tempo <= 0 {
		return c, fault.Wrap(fmt.Errorf("tempo %d", c.Tempo),
			fmsg.WithDesc("invalid config", "Tempo must be a positive bpm"))
	}
	c.Tempo = clamp(c.Tempo, transport.MinTempo, transport.MaxTempo)
	c.LoopStart = clamp(c.LoopStart, 1, progression.NumBars)
	c.LoopEnd = clamp(c.LoopEnd, c.LoopStart, progression.NumBars)

	if c.VolumeDB < midi.MinVolumeDB {
		c.VolumeDB = midi.MinVolumeDB
	}
	if c.VolumeDB > midi.MaxVolumeDB {
		c.VolumeDB = midi.MaxVolumeDB
	}
	return c, nil
}

// State is the transport state a session starts from.
func (c Config) State() (transport.State, error) {
	c, err := c.Validate()
	if err != nil {
		return transport.State{}, err
	}
	metronome, _ := transport.ParseMetronomeMode(c.Metronome)
	display, _ := transport.ParseDisplayMode(c.Display)

	s := transport.NewState().
		SetTempo(c.Tempo).
		SetLoop(c.Loop, c.LoopStart, c.LoopEnd).
		SetMetronome(metronome).
		SetDisplay(display)
	return s, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
