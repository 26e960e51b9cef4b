package columnio

// Buffer is an in-memory ColumnWriterStore holding one typed column buffer
// per leaf column of a schema.
//
// Buffers are reusable: after flushing their content (for example with
// WritePages), Reset clears all columns so the next batch of records can be
// written without reallocating.
//
// Buffer values are not safe to use concurrently from multiple goroutines.
type Buffer struct {
	schema  *Schema
	columns []ColumnBuffer
}

// NewBuffer constructs a buffer with one column buffer per leaf column of
// the given schema.
func NewBuffer(schema *Schema) *Buffer {
	columns := make([]ColumnBuffer, schema.NumColumns())
	for i, leaf := range schema.Columns() {
		switch leaf.Type().Kind() {
		case Boolean:
			columns[i] = newBooleanColumnBuffer(leaf)
		case Int32:
			columns[i] = newInt32ColumnBuffer(leaf)
		case Int64:
			columns[i] = newInt64ColumnBuffer(leaf)
		case Float:
			columns[i] = newFloatColumnBuffer(leaf)
		case Double:
			columns[i] = newDoubleColumnBuffer(leaf)
		case ByteArray:
			columns[i] = newByteArrayColumnBuffer(leaf)
		default:
			panic("cannot buffer values of kind " + leaf.Type().Kind().String())
		}
	}
	return &Buffer{schema: schema, columns: columns}
}

// Schema returns the schema the buffer was constructed for.
func (buf *Buffer) Schema() *Schema { return buf.schema }

// ColumnWriter implements the ColumnWriterStore interface.
func (buf *Buffer) ColumnWriter(columnIndex int) ColumnWriter {
	return buf.columns[columnIndex]
}

// ColumnBuffer returns the buffer of the column at the given index.
func (buf *Buffer) ColumnBuffer(columnIndex int) ColumnBuffer {
	return buf.columns[columnIndex]
}

// NumColumns returns the number of columns of the buffer.
func (buf *Buffer) NumColumns() int { return len(buf.columns) }

// Size returns the size of the buffered data in bytes, all columns included.
func (buf *Buffer) Size() int64 {
	size := int64(0)
	for _, col := range buf.columns {
		size += col.Size()
	}
	return size
}

// Reset clears all column buffers, retaining their storage.
func (buf *Buffer) Reset() {
	for _, col := range buf.columns {
		col.Reset()
	}
}

var _ ColumnWriterStore = (*Buffer)(nil)
