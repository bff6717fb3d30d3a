package midi

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/rapidmidiex/leavestui/theory"
	"github.com/rapidmidiex/leavestui/transport"
	"github.com/sinshu/go-meltysynth/meltysynth"
	"github.com/sirupsen/logrus"
)

const (
	SampleRate = beep.SampleRate(44100)

	chordChannel = 0
	// General MIDI percussion channel.
	clickChannel = 9
	// Hi Wood Block in the General MIDI percussion map.
	clickKey = 76

	chordVelocity = 90
	clickVelocity = 110

	// Audio rendered after note off so the release is not cut.
	releaseTail = 600 * time.Millisecond

	// Triggers waiting for synthesis. More are dropped.
	renderBacklog = 16
)

type (
	// Player synthesizes chords and clicks with a SoundFont and plays them on the speaker.
	Player struct {
		mu         sync.Mutex
		synth      *meltysynth.Synthesizer
		sampleRate beep.SampleRate
		tempo      func() int

		activate sync.Once
		active   atomic.Bool
		actErr   error

		mixer  *beep.Mixer
		volume *effects.Volume
		queue  *renderQueue

		log logrus.FieldLogger
	}

	NewPlayerOpts struct {
		// Path of the .sf2 SoundFont used for synthesis.
		SoundFontPath string
		// Current tempo, used to turn note lengths into time.
		Tempo func() int
		// Master volume in dB.
		VolumeDB float64
		Log      logrus.FieldLogger
	}
)

func NewPlayer(o NewPlayerOpts) (*Player, error) {
	sf2, err := os.Open(o.SoundFontPath)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.WithDesc("open soundfont",
			fmt.Sprintf("Could not open SoundFont %q", o.SoundFontPath)))
	}
	defer sf2.Close()

	soundFont, err := meltysynth.NewSoundFont(sf2)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.WithDesc("parse soundfont",
			fmt.Sprintf("%q is not a valid SoundFont", o.SoundFontPath)))
	}

	settings := meltysynth.NewSynthesizerSettings(int32(SampleRate))
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.With("create synthesizer"))
	}

	p := &Player{
		synth:      synth,
		sampleRate: SampleRate,
		tempo:      o.Tempo,
		mixer:      &beep.Mixer{},
		log:        o.Log,
	}
	if p.tempo == nil {
		p.tempo = func() int { return transport.DefaultTempo }
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	p.volume = &effects.Volume{Streamer: p.mixer, Base: 2}
	p.setVolume(o.VolumeDB)
	p.queue = newRenderQueue(renderBacklog, func(j renderJob) *Clip {
		return p.Render(j.channel, j.keys, j.velocity, j.hold)
	}, p.play)
	return p, nil
}

// Activate opens the speaker and starts the mixer. Calls after the first return its result.
func (p *Player) Activate(ctx context.Context) error {
	p.activate.Do(func() {
		if err := ctx.Err(); err != nil {
			p.actErr = err
			return
		}
		// Bigger buffer -> less CPU, slower response.
		if err := speaker.Init(p.sampleRate, p.sampleRate.N(50*time.Millisecond)); err != nil {
			p.actErr = fault.Wrap(err, fmsg.WithDesc("init speaker", "No audio output available"))
			return
		}
		speaker.Play(p.volume)
		p.active.Store(true)
	})
	return p.actErr
}

// TriggerChord implements transport.Audio. Synthesis runs on the player's own goroutine and
// the clip starts as soon as it is rendered. at is not used: the trigger arrives on its tick.
func (p *Player) TriggerChord(notes []string, length transport.Length, at time.Duration) {
	if !p.active.Load() {
		return
	}
	keys := make([]int32, 0, len(notes))
	for _, n := range notes {
		num, err := theory.NoteNumber(n)
		if err != nil {
			p.log.WithError(err).Error("chord note skipped")
			continue
		}
		keys = append(keys, int32(num))
	}
	p.enqueue(renderJob{chordChannel, keys, chordVelocity, length.Duration(p.tempo())})
}

// Click implements transport.Audio, the same way as TriggerChord.
func (p *Player) Click(length transport.Length, at time.Duration) {
	if !p.active.Load() {
		return
	}
	p.enqueue(renderJob{clickChannel, []int32{clickKey}, clickVelocity, length.Duration(p.tempo())})
}

// Close stops synthesis once the queued triggers are rendered.
func (p *Player) Close() {
	p.queue.close()
}

func (p *Player) enqueue(j renderJob) {
	if !p.queue.push(j) {
		p.log.Warn("synthesis behind, trigger dropped")
	}
}

// Render synthesizes the keys held for hold and released, into a new clip.
func (p *Player) Render(channel int32, keys []int32, velocity int32, hold time.Duration) *Clip {
	p.mu.Lock()
	defer p.mu.Unlock()

	holdN := p.sampleRate.N(hold)
	clip := NewClip(holdN + p.sampleRate.N(releaseTail))

	p.synth.NoteOffAll(true)
	for _, k := range keys {
		p.synth.NoteOn(channel, k, velocity)
	}
	p.synth.Render(clip.left[:holdN], clip.right[:holdN])
	for _, k := range keys {
		p.synth.NoteOff(channel, k)
	}
	p.synth.Render(clip.left[holdN:], clip.right[holdN:])
	return clip
}

// SetVolume sets the master volume in dB.
func (p *Player) SetVolume(db float64) {
	if p.active.Load() {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.setVolume(db)
}

// VolumeDB returns the master volume in dB.
func (p *Player) VolumeDB() float64 {
	if p.volume.Silent {
		return MinVolumeDB
	}
	return p.volume.Volume * dbPerDoubling
}

func (p *Player) play(clip *Clip) {
	if !p.active.Load() {
		p.log.Debug("audio not active, clip dropped")
		return
	}
	speaker.Lock()
	p.mixer.Add(clip)
	speaker.Unlock()
}

func (p *Player) setVolume(db float64) {
	switch {
	case db <= MinVolumeDB:
		p.volume.Silent = true
		p.volume.Volume = MinVolumeDB / dbPerDoubling
	case db > MaxVolumeDB:
		p.volume.Silent = false
		p.volume.Volume = MaxVolumeDB / dbPerDoubling
	default:
		p.volume.Silent = false
		p.volume.Volume = db / dbPerDoubling
	}
}
