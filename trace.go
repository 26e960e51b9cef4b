package columnio

import (
	"io"
	"os"
	"sync"

	"github.com/segmentio/columnio-go/internal/debug"
	"github.com/segmentio/encoding/json"
)

// The Tracer interface is implemented by observers of the event stream and
// state transitions of a MessageWriter.
//
// Tracers are invoked synchronously from the writer's event handlers; the
// writer never calls a tracer when none was installed, so tracing has no
// cost by default.
type Tracer interface {
	// Event is called once per event received by the writer, with the depth
	// at which the event applied and a human-readable description of it.
	Event(depth int, op string)

	// State is called after each state transition with the depth, the field
	// path of the node the writer is positioned on, and the repetition and
	// definition levels in effect at that position.
	State(depth int, path []string, repetitionLevel, definitionLevel int8)
}

// DebugTracer is a Tracer writing trace records as JSON lines.
//
// Records are only emitted while debug mode is on (see COLUMNIO_DEBUG);
// installing a DebugTracer on a writer is otherwise inert, which lets
// programs wire tracing unconditionally and flip it at runtime.
type DebugTracer struct {
	// Output defaults to stderr.
	Output io.Writer

	mutex sync.Mutex
}

type traceRecord struct {
	Depth           int      `json:"depth"`
	Op              string   `json:"op,omitempty"`
	Path            []string `json:"path,omitempty"`
	RepetitionLevel int8     `json:"r"`
	DefinitionLevel int8     `json:"d"`
}

// Event implements the Tracer interface.
func (t *DebugTracer) Event(depth int, op string) {
	debug.Do(func() {
		t.emit(traceRecord{Depth: depth, Op: op})
	})
}

// State implements the Tracer interface.
func (t *DebugTracer) State(depth int, path []string, repetitionLevel, definitionLevel int8) {
	debug.Do(func() {
		t.emit(traceRecord{
			Depth:           depth,
			Path:            path,
			RepetitionLevel: repetitionLevel,
			DefinitionLevel: definitionLevel,
		})
	})
}

func (t *DebugTracer) emit(r traceRecord) {
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	b = append(b, '\n')
	t.mutex.Lock()
	defer t.mutex.Unlock()
	w := t.Output
	if w == nil {
		w = os.Stderr
	}
	w.Write(b)
}

var _ Tracer = (*DebugTracer)(nil)
