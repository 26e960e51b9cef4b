// Package columnio implements the write side of a columnar record-shredding
// engine following the Dremel column-striping model.
//
// The package converts a stream of nested record-construction events into
// flat per-leaf-column value streams, each value carrying a repetition level
// and a definition level. The event stream is produced by the caller, the
// flat value streams are consumed by column sinks implementing the
// ColumnWriter interface.
//
// A typical use binds a MessageWriter to a compiled Schema and a store of
// column sinks, then replays one record per StartMessage/EndMessage pair:
//
//	schema := columnio.NewSchema("Document", columnio.Group{
//		"id":   columnio.Leaf(columnio.Int64Type),
//		"name": columnio.Optional(columnio.Leaf(columnio.ByteArrayType)),
//	})
//
//	buffer := columnio.NewBuffer(schema)
//	writer := columnio.NewMessageWriter(schema, buffer)
//
//	writer.StartMessage()
//	writer.StartField("id", 0)
//	writer.AddInt64(42)
//	writer.EndField("id", 0)
//	writer.EndMessage()
//
// MessageWriter values are not safe to use concurrently from multiple
// goroutines; programs needing parallel write throughput must use one
// writer and one set of sinks per goroutine.
package columnio

// Kind is an enumeration of the physical types that values of leaf columns
// can take.
type Kind int8

const (
	Boolean Kind = iota
	Int32
	Int64
	Float
	Double
	ByteArray
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	default:
		return "<?>"
	}
}
