// Package trace records audio triggers as JSON lines.
package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rapidmidiex/leavestui/transport"
)

type (
	MsgType int

	Envelope struct {
		// Event identifier
		ID uuid.UUID `json:"id"`
		// ChordMsg | ClickMsg
		Typ MsgType `json:"type"`
		// Transport time of the event in milliseconds.
		AtMS int64 `json:"atMs"`
		// Actual event data.
		Payload json.RawMessage `json:"payload"`
	}

	ChordMsg struct {
		Notes  []string `json:"notes"`
		Length string   `json:"length"`
	}

	ClickMsg struct {
		Length string `json:"length"`
	}

	// Recorder implements transport.Audio by writing one Envelope per line.
	Recorder struct {
		mu  sync.Mutex
		enc *json.Encoder
		err error
		// Receives the first write error.
		errc chan error
	}

	// Fanout sends every trigger to each of its outputs in order.
	Fanout []transport.Audio
)

const (
	CHORD MsgType = iota
	CLICK
)

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: json.NewEncoder(w), errc: make(chan error, 1)}
}

func (r *Recorder) TriggerChord(notes []string, length transport.Length, at time.Duration) {
	r.write(CHORD, at, ChordMsg{Notes: notes, Length: length.String()})
}

func (r *Recorder) Click(length transport.Length, at time.Duration) {
	r.write(CLICK, at, ClickMsg{Length: length.String()})
}

// Errors delivers the first write error, once.
func (r *Recorder) Errors() <-chan error {
	return r.errc
}

// Err returns the first write error. Events after it are dropped.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) write(typ MsgType, at time.Duration, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}

	envelope := Envelope{
		ID:   uuid.New(),
		Typ:  typ,
		AtMS: at.Milliseconds(),
	}
	if err := envelope.SetPayload(payload); err != nil {
		r.fail(fmt.Errorf("marshal: %w", err))
		return
	}
	if err := r.enc.Encode(&envelope); err != nil {
		r.fail(fmt.Errorf("encode: %w", err))
	}
}

func (r *Recorder) fail(err error) {
	r.err = err
	r.errc <- err
}

func (e *Envelope) SetPayload(payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.Payload = p
	return nil
}

func (e *Envelope) Unwrap(msg any) error {
	return json.Unmarshal(e.Payload, msg)
}

func (t *MsgType) UnmarshalJSON(data []byte) error {
	var rawType string
	err := json.Unmarshal(data, &rawType)
	if err != nil {
		return err
	}

	switch rawType {
	case "chord":
		*t = CHORD
	case "click":
		*t = CLICK
	default:
		return fmt.Errorf("unknown type: %s", rawType)
	}
	return nil
}

func (t MsgType) MarshalJSON() ([]byte, error) {
	switch t {
	case CHORD:
		return []byte(`"chord"`), nil
	case CLICK:
		return []byte(`"click"`), nil
	}
	return []byte{}, fmt.Errorf("unknown MsgType value: %d", t)
}

func (f Fanout) TriggerChord(notes []string, length transport.Length, at time.Duration) {
	for _, a := range f {
		a.TriggerChord(notes, length, at)
	}
}

func (f Fanout) Click(length transport.Length, at time.Duration) {
	for _, a := range f {
		a.Click(length, at)
	}
}

// Activate starts every output that needs it.
func (f Fanout) Activate(ctx context.Context) error {
	for _, a := range f {
		if act, ok := a.(transport.Activator); ok {
			if err := act.Activate(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
