package columnio_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	columnio "github.com/segmentio/columnio-go"
	"github.com/segmentio/columnio-go/compress"
)

// TestWritePages flushes a buffer through every codec and decodes the pages
// by hand, checking that levels and values survive the round trip.
func TestWritePages(t *testing.T) {
	schema := simpleSchema()
	buffer := columnio.NewBuffer(schema)
	writer := columnio.NewMessageWriter(schema, buffer)
	e := &testEvents{t: t, w: writer, s: schema}

	e.ok(writer.StartMessage())
	e.ok(writer.StartField("a", 0))
	e.ok(writer.AddInt32(7))
	e.ok(writer.EndField("a", 0))
	e.ok(writer.StartField("g", 1))
	e.ok(writer.StartGroup())
	e.ok(writer.StartField("b", 0))
	e.ok(writer.AddInt32(3))
	e.ok(writer.AddInt32(4))
	e.ok(writer.EndField("b", 0))
	e.ok(writer.EndGroup())
	e.ok(writer.EndField("g", 1))
	e.ok(writer.EndMessage())

	codecs := []compress.Codec{
		columnio.Uncompressed,
		columnio.Snappy,
		columnio.Gzip,
		columnio.Brotli,
		columnio.Zstd,
		columnio.Lz4,
	}

	for _, codec := range codecs {
		t.Run(codec.String(), func(t *testing.T) {
			output := new(bytes.Buffer)
			n, err := buffer.WritePages(output, codec)
			if err != nil {
				t.Fatal(err)
			}
			if n != int64(output.Len()) {
				t.Errorf("WritePages reported %d bytes, wrote %d", n, output.Len())
			}

			data := output.Bytes()
			for i := 0; i < buffer.NumColumns(); i++ {
				if len(data) < 17 {
					t.Fatalf("truncated page header for column %d", i)
				}
				columnIndex := binary.LittleEndian.Uint32(data[0:])
				numValues := int(binary.LittleEndian.Uint32(data[4:]))
				numNulls := int(binary.LittleEndian.Uint32(data[8:]))
				code := compress.Code(data[12])
				size := int(binary.LittleEndian.Uint32(data[13:]))
				data = data[17:]

				if int(columnIndex) != i {
					t.Fatalf("page %d has column index %d", i, columnIndex)
				}
				col := buffer.ColumnBuffer(i)
				if numValues != col.NumValues() || numNulls != col.NumNulls() {
					t.Errorf("column %d: header counts (%d,%d), want (%d,%d)",
						i, numValues, numNulls, col.NumValues(), col.NumNulls())
				}

				decoder := columnio.LookupCompressionCodec(code)
				if decoder == nil {
					t.Fatalf("column %d: unknown codec code %d", i, code)
				}
				payload, err := decoder.Decode(nil, data[:size])
				if err != nil {
					t.Fatal(err)
				}
				data = data[size:]

				repetitionLevels, definitionLevels := col.Levels()
				for j := 0; j < numValues; j++ {
					if int8(payload[j]) != repetitionLevels[j] {
						t.Errorf("column %d: repetition level %d corrupted", i, j)
					}
					if int8(payload[numValues+j]) != definitionLevels[j] {
						t.Errorf("column %d: definition level %d corrupted", i, j)
					}
				}

				values := payload[2*numValues:]
				want := 4 * (numValues - numNulls) // int32 columns only in this schema
				if len(values) != want {
					t.Errorf("column %d: %d bytes of values, want %d", i, len(values), want)
				}
			}
			if len(data) != 0 {
				t.Errorf("%d trailing bytes after the last page", len(data))
			}
		})
	}
}
