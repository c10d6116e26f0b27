package events

import (
	"fmt"
	"io"
	"sync"

	"depman/pkg/logging"
)

// Sink receives notifications as they are produced. Each event corresponds to
// one complete output line.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// WriterSink renders events through a MessageTemplateEngine and writes one
// line per event, prefixed with an indent.
type WriterSink struct {
	w         io.Writer
	templates *MessageTemplateEngine
	indent    string
}

// NewWriterSink creates a sink writing to w. A nil engine uses the default templates.
func NewWriterSink(w io.Writer, templates *MessageTemplateEngine, indent string) *WriterSink {
	if templates == nil {
		templates = NewMessageTemplateEngine()
	}
	return &WriterSink{w: w, templates: templates, indent: indent}
}

// Emit renders and writes the event.
func (s *WriterSink) Emit(e Event) {
	message := s.templates.Render(e.Reason, e.Data)

	logging.Debug("events", "Emitting event: reason=%s, type=%s, message=%s",
		string(e.Reason), string(e.Type()), message)

	if _, err := fmt.Fprintln(s.w, s.indent+message); err != nil {
		logging.Warn("events", "Failed to write notification %q: %v", message, err)
	}
}

// Fanout forwards every event to each of its sinks in order.
type Fanout []Sink

// Emit forwards e.
func (f Fanout) Emit(e Event) {
	for _, s := range f {
		if s != nil {
			s.Emit(e)
		}
	}
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Lines renders the recorded events with the default templates. Overrides
// configured on a WriterSink next to the recorder are not applied; use
// LinesWith to render through the same engine.
func (r *Recorder) Lines() []string {
	return r.LinesWith(nil)
}

// LinesWith renders the recorded events with engine. A nil engine uses the
// default templates.
func (r *Recorder) LinesWith(engine *MessageTemplateEngine) []string {
	if engine == nil {
		engine = NewMessageTemplateEngine()
	}
	events := r.Events()
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, engine.Render(e.Reason, e.Data))
	}
	return lines
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
