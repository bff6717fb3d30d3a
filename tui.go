package leavestui

import (
	"fmt"
	"io"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/rapidmidiex/leavestui/clock"
	"github.com/rapidmidiex/leavestui/lverr"
	"github.com/rapidmidiex/leavestui/midi"
	"github.com/rapidmidiex/leavestui/practiceui"
	"github.com/rapidmidiex/leavestui/styles"
	"github.com/rapidmidiex/leavestui/trace"
)

type (
	mainModel struct {
		practice practiceui.Model
		// Shown in the header.
		soundFont string
		curError  string
		// Failures of background outputs, ie: the trace file.
		errs <-chan error
	}
)

const title = "Autumn Leaves"

func NewModel(cfg Config, o practiceui.Options) (mainModel, error) {
	state, err := cfg.State()
	if err != nil {
		return mainModel{}, err
	}
	o.State = &state

	sf := cfg.SoundFont
	if sf == "" {
		sf = "no soundfont"
	}
	return mainModel{
		practice:  practiceui.New(o),
		soundFont: sf,
	}, nil
}

// WithErrors shows errors received on errs while the session runs.
func (m mainModel) WithErrors(errs <-chan error) mainModel {
	m.errs = errs
	return m
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(m.practice.Init(), m.listenErrors())
}

// listenErrors waits for a background failure. Outputs report at most one.
func (m mainModel) listenErrors() tea.Cmd {
	if m.errs == nil {
		return nil
	}
	errs := m.errs
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return lverr.ErrMsg{Err: fault.Wrap(err, fmsg.WithDesc("trace", "Trace file could not be written, tracing stopped"))}
	}
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle incoming messages from I/O
	switch msg := msg.(type) {
	case lverr.ErrMsg:
		m.curError = msg.Issue()
		return m, nil
	}

	next, cmd := m.practice.Update(msg)
	m.practice = next.(practiceui.Model)
	return m, cmd
}

func (m mainModel) View() string {
	header := styles.BoldStyle.Render(title) + styles.NextStyle.Render(m.soundFont)
	view := header + "\n" + m.practice.View()
	if m.curError != "" {
		view += "\n" + styles.RenderError(m.curError)
	}
	return view
}

// Run starts a practice session and blocks until the user quits.
func Run(cfg Config) error {
	cfg, err := cfg.Validate()
	if err != nil {
		return err
	}

	log, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var (
		m      mainModel
		audio  trace.Fanout
		volume practiceui.Volume
	)

	if cfg.SoundFont != "" {
		player, err := midi.NewPlayer(midi.NewPlayerOpts{
			SoundFontPath: cfg.SoundFont,
			// Called from ticks, on the event loop.
			Tempo:    func() int { return m.practice.State().Tempo },
			VolumeDB: cfg.VolumeDB,
			Log:      log,
		})
		if err != nil {
			return err
		}
		defer player.Close()
		audio = append(audio, player)
		volume = player
	}

	var rec *trace.Recorder
	if cfg.TracePath != "" {
		f, err := os.Create(cfg.TracePath)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		rec = trace.NewRecorder(f)
		audio = append(audio, rec)
	}

	clk := clock.NewProgram()
	o := practiceui.Options{
		Clock:  clk,
		Volume: volume,
		Log:    log,
	}
	if len(audio) > 0 {
		o.Audio = audio
	}

	m, err = NewModel(cfg, o)
	if err != nil {
		return err
	}
	if rec != nil {
		m = m.WithErrors(rec.Errors())
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	clk.Attach(p.Send)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}

	if rec != nil {
		if err := rec.Err(); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	if fm, ok := final.(mainModel); ok {
		log.WithField("tempo", fm.practice.State().Tempo).Info("session ended")
	}
	return nil
}

// openLog sends logs to path. The terminal belongs to the UI, so an empty path discards them.
func openLog(path string) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetLevel(logrus.DebugLevel)

	if path == "" {
		log.SetOutput(io.Discard)
		return log, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return log, func() { f.Close() }, nil
}
