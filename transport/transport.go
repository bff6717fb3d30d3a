package transport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rapidmidiex/leavestui/progression"
	"github.com/rapidmidiex/leavestui/theory"
	"github.com/sirupsen/logrus"
)

type (
	// Scheduler calls fn after first and then every interval until cancelled. at is the time
	// the call was due, on the clock returned by Now.
	Scheduler interface {
		ScheduleRepeating(first, interval time.Duration, fn func(at time.Duration)) uuid.UUID
		Cancel(id uuid.UUID)
		Now() time.Duration
	}

	// Audio sounds chords and metronome clicks. Notes carry their octave, ie: "Eb3".
	Audio interface {
		TriggerChord(notes []string, length Length, at time.Duration)
		Click(length Length, at time.Duration)
	}

	// Activator is implemented by audio backends that need to be started before use.
	Activator interface {
		Activate(ctx context.Context) error
	}

	Renderer interface {
		Render(f Frame)
	}

	RendererFunc func(f Frame)

	Options struct {
		Table     *progression.Table
		Scheduler Scheduler
		Audio     Audio
		Renderer  Renderer
		Log       logrus.FieldLogger
		// Initial state. Defaults to NewState().
		State *State
	}

	// Transport owns the playback state and the tick stream. It is not safe for concurrent
	// use: commands and ticks must be delivered from one goroutine.
	Transport struct {
		state  State
		table  *progression.Table
		sched  Scheduler
		audio  Audio
		render Renderer
		log    logrus.FieldLogger

		// Active tick stream, uuid.Nil when none.
		stream uuid.UUID
		// Due time of the last tick played since start. Keeps the beat phase across tempo
		// changes and pauses.
		lastTick time.Duration
		ticked   bool
		// Delay before the first tick after a resume.
		resumeIn time.Duration
		// Position of the last rendered frame.
		shownBar, shownBeat int
	}

	silence struct{}
)

func (fn RendererFunc) Render(f Frame) { fn(f) }

func (silence) TriggerChord([]string, Length, time.Duration) {}
func (silence) Click(Length, time.Duration)                  {}

func New(o Options) *Transport {
	t := &Transport{
		state:  NewState(),
		table:  o.Table,
		sched:  o.Scheduler,
		audio:  o.Audio,
		render: o.Renderer,
		log:    o.Log,
	}
	if o.State != nil {
		t.state = *o.State
	}
	if t.table == nil {
		t.table = progression.AutumnLeaves()
	}
	if t.audio == nil {
		t.audio = silence{}
	}
	if t.render == nil {
		t.render = RendererFunc(func(Frame) {})
	}
	if t.log == nil {
		t.log = logrus.StandardLogger()
	}
	t.shownBar, t.shownBeat = t.state.Bar, t.state.Beat
	return t
}

func (t *Transport) State() State {
	return t.state
}

func (t *Transport) Table() *progression.Table {
	return t.table
}

// Activate starts the audio backend if it needs it. It does not touch the playback state
// and may be called from another goroutine before Start.
func (t *Transport) Activate(ctx context.Context) error {
	if a, ok := t.audio.(Activator); ok {
		return a.Activate(ctx)
	}
	return nil
}

// Start begins playback with a count-in, or resumes after a pause.
func (t *Transport) Start() {
	if t.state.Running() {
		return
	}
	from := t.state.Status
	t.state = t.state.Start()
	first := time.Duration(0)
	if from == Paused {
		first = t.resumeIn
	} else {
		t.resetPhase()
	}
	if from == Stopped && t.state.Loop.Enabled {
		t.refreshAt(t.state.Bar, t.state.Beat)
	}
	t.schedule(first)
	t.log.WithFields(logrus.Fields{
		"from":  from,
		"bar":   t.state.Bar,
		"tempo": t.state.Tempo,
	}).Info("transport started")
}

func (t *Transport) Pause() {
	if !t.state.Running() {
		return
	}
	t.resumeIn = t.untilNextBeat(BeatInterval(t.state.Tempo))
	t.cancel()
	t.state = t.state.Pause()
	t.log.WithFields(logrus.Fields{"bar": t.state.Bar, "beat": t.state.Beat}).Info("transport paused")
}

// Stop halts playback and shows bar 1 again.
func (t *Transport) Stop() {
	t.cancel()
	t.resetPhase()
	t.state = t.state.Stop()
	t.refreshAt(t.state.Bar, t.state.Beat)
	t.log.Info("transport stopped")
}

// Seek halts playback if needed and shows beat 1 of the bar. Playback is not resumed.
func (t *Transport) Seek(bar int) {
	t.cancel()
	t.resetPhase()
	t.state = t.state.Seek(bar)
	t.refreshAt(t.state.Bar, t.state.Beat)
	t.log.WithField("bar", t.state.Bar).Debug("seek")
}

// SetTempo changes the tempo. A running tick stream is replaced at the new interval, its
// first tick one new beat after the last one played.
func (t *Transport) SetTempo(bpm int) {
	t.state = t.state.SetTempo(bpm)
	interval := BeatInterval(t.state.Tempo)
	switch {
	case t.state.Running():
		t.schedule(t.untilNextBeat(interval))
	case t.resumeIn > interval:
		t.resumeIn = interval
	}
}

func (t *Transport) SetLoop(enabled bool, start, end int) {
	t.state = t.state.SetLoop(enabled, start, end)
}

func (t *Transport) SetLoopStart(bar int) {
	t.state = t.state.SetLoopStart(bar)
}

func (t *Transport) SetLoopEnd(bar int) {
	t.state = t.state.SetLoopEnd(bar)
}

func (t *Transport) SetMetronome(m MetronomeMode) {
	t.state = t.state.SetMetronome(m)
}

// SetDisplay switches between note names and degrees and redraws the current chord.
func (t *Transport) SetDisplay(d DisplayMode) {
	t.state = t.state.SetDisplay(d)
	if t.state.Status != CountingIn {
		t.Refresh()
	}
}

// Refresh renders the last shown position again.
func (t *Transport) Refresh() {
	t.refreshAt(t.shownBar, t.shownBeat)
}

// Tick plays one beat. It is the callback of the scheduled tick stream.
func (t *Transport) Tick(at time.Duration) {
	if !t.state.Running() {
		return
	}

	t.lastTick, t.ticked = at, true

	var ev Events
	t.state, ev = Tick(t.state, t.table)

	if ev.Click {
		t.audio.Click(ThirtySecond, at)
	}
	if ev.CountIn > 0 {
		t.render.Render(CountInFrame(ev.CountIn, t.state.Display))
		return
	}
	if ev.Chord != nil {
		t.trigger(*ev.Chord, at)
	}
	t.refreshAt(ev.Bar, ev.Beat)
}

func (t *Transport) trigger(c ChordTrigger, at time.Duration) {
	info, err := theory.Resolve(c.Symbol)
	if err != nil {
		t.log.WithError(err).WithField("chord", c.Symbol).Error("chord not triggered")
		return
	}
	t.audio.TriggerChord(info.Voicing(theory.ChordOctave), c.Length, at)
}

func (t *Transport) refreshAt(bar, beat int) {
	t.shownBar, t.shownBeat = bar, beat
	f, err := BuildFrame(t.table, bar, beat, t.state.Display)
	if err != nil {
		t.log.WithError(err).WithFields(logrus.Fields{"bar": bar, "beat": beat}).Error("chord not resolved")
	}
	t.render.Render(f)
}

// schedule replaces any running tick stream with a new one at the current tempo.
func (t *Transport) schedule(first time.Duration) {
	t.cancel()
	if t.sched == nil {
		return
	}
	t.stream = t.sched.ScheduleRepeating(first, BeatInterval(t.state.Tempo), t.Tick)
}

// untilNextBeat is the time left until one interval after the last tick, never negative.
func (t *Transport) untilNextBeat(interval time.Duration) time.Duration {
	if !t.ticked || t.sched == nil {
		return 0
	}
	d := t.lastTick + interval - t.sched.Now()
	if d < 0 {
		return 0
	}
	return d
}

func (t *Transport) resetPhase() {
	t.lastTick, t.ticked, t.resumeIn = 0, false, 0
}

func (t *Transport) cancel() {
	if t.stream == uuid.Nil {
		return
	}
	if t.sched != nil {
		t.sched.Cancel(t.stream)
	}
	t.stream = uuid.Nil
}
