package columnio_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	columnio "github.com/segmentio/columnio-go"
)

func assertSameText(t *testing.T, want, got string) {
	t.Helper()
	if want != got {
		edits := myers.ComputeEdits(span.URIFromPath("schema"), want, got)
		diff := fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
		t.Errorf("schema mismatch:\n%s", diff)
	}
}

func TestPrintSchema(t *testing.T) {
	tests := []struct {
		node  columnio.Node
		print string
	}{
		{
			node: columnio.Group{"on": columnio.Leaf(columnio.BooleanType)},
			print: `message Test {
	required boolean on;
}`,
		},

		{
			node: columnio.Group{"name": columnio.Optional(columnio.Leaf(columnio.ByteArrayType))},
			print: `message Test {
	optional binary name;
}`,
		},

		{
			node: columnio.Group{
				"ratio": columnio.Leaf(columnio.DoubleType),
				"bias":  columnio.Leaf(columnio.FloatType),
			},
			print: `message Test {
	required float bias;
	required double ratio;
}`,
		},

		{
			node: columnio.Group{
				"id": columnio.Leaf(columnio.Int64Type),
				"tags": columnio.Repeated(columnio.Group{
					"key":   columnio.Leaf(columnio.ByteArrayType),
					"value": columnio.Optional(columnio.Leaf(columnio.Int32Type)),
				}),
			},
			print: `message Test {
	required int64 id;
	repeated group tags {
		required binary key;
		optional int32 value;
	}
}`,
		},
	}

	for _, test := range tests {
		b := new(strings.Builder)
		if err := columnio.Print(b, "Test", test.node); err != nil {
			t.Fatal(err)
		}
		assertSameText(t, test.print, b.String())
	}
}

func TestPrintDocumentSchema(t *testing.T) {
	want := `message Document {
	required int64 DocId;
	optional group Links {
		repeated int64 Backward;
		repeated int64 Forward;
	}
	repeated group Name {
		repeated group Language {
			required binary Code;
			optional binary Country;
		}
		optional binary Url;
	}
}`
	assertSameText(t, want, documentSchema().String())
}

func TestDumpColumns(t *testing.T) {
	schema := simpleSchema()
	buffer := columnio.NewBuffer(schema)
	writer := columnio.NewMessageWriter(schema, buffer)
	e := &testEvents{t: t, w: writer, s: schema}

	e.ok(writer.StartMessage())
	e.ok(writer.StartField("a", 0))
	e.ok(writer.AddInt32(1))
	e.ok(writer.EndField("a", 0))
	e.ok(writer.EndMessage())

	b := new(bytes.Buffer)
	columnio.DumpColumns(b, buffer)
	out := b.String()
	for _, want := range []string{"a", "g.b", "INT32", "COLUMN"} {
		if !strings.Contains(out, want) {
			t.Errorf("column dump does not mention %q:\n%s", want, out)
		}
	}
}
