package columnio_test

import (
	"bytes"
	"testing"

	"github.com/segmentio/encoding/json"

	columnio "github.com/segmentio/columnio-go"
	"github.com/segmentio/columnio-go/internal/debug"
)

func TestDebugTracer(t *testing.T) {
	debug.Toggle(true)
	defer debug.Toggle(false)

	output := new(bytes.Buffer)
	schema := simpleSchema()
	buffer := columnio.NewBuffer(schema)
	writer := columnio.NewMessageWriter(schema, buffer,
		columnio.WithTracer(&columnio.DebugTracer{Output: output}))
	e := &testEvents{t: t, w: writer, s: schema}

	e.ok(writer.StartMessage())
	e.ok(writer.StartField("a", 0))
	e.ok(writer.AddInt32(1))
	e.ok(writer.EndField("a", 0))
	e.ok(writer.EndMessage())

	lines := bytes.Split(bytes.TrimSpace(output.Bytes()), []byte("\n"))
	if len(lines) < 5 {
		t.Fatalf("tracer wrote %d lines, want at least 5", len(lines))
	}
	for _, line := range lines {
		record := struct {
			Depth int      `json:"depth"`
			Op    string   `json:"op"`
			Path  []string `json:"path"`
			R     int8     `json:"r"`
			D     int8     `json:"d"`
		}{}
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("tracer wrote a line that is not valid JSON: %q", line)
		}
	}
}

func TestDebugTracerDisabled(t *testing.T) {
	debug.Toggle(false)

	output := new(bytes.Buffer)
	schema := simpleSchema()
	buffer := columnio.NewBuffer(schema)
	writer := columnio.NewMessageWriter(schema, buffer,
		columnio.WithTracer(&columnio.DebugTracer{Output: output}))
	e := &testEvents{t: t, w: writer, s: schema}

	e.ok(writer.StartMessage())
	e.ok(writer.StartField("a", 0))
	e.ok(writer.AddInt32(1))
	e.ok(writer.EndField("a", 0))
	e.ok(writer.EndMessage())

	if output.Len() != 0 {
		t.Errorf("tracer wrote %d bytes while debug mode is off", output.Len())
	}
}
