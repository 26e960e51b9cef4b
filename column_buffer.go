package columnio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ColumnWriter is the contract between the shredding engine and the sink of
// one leaf column: values and nulls arrive in record order, each tagged with
// its repetition and definition levels.
//
// Implementations are append-only; the engine never reads back from a sink.
type ColumnWriter interface {
	// WriteValue appends one value, carrying its levels, to the column.
	WriteValue(value Value) error

	// WriteNull appends one null with the given levels to the column.
	WriteNull(repetitionLevel, definitionLevel int8) error
}

// ColumnWriterStore is the set of column sinks a MessageWriter shreds
// records into, one per leaf column, selected by column index.
type ColumnWriterStore interface {
	ColumnWriter(columnIndex int) ColumnWriter
}

// ColumnBuffer is an in-memory column sink accumulating the values and
// levels of one leaf column.
type ColumnBuffer interface {
	ColumnWriter

	// Returns the leaf column the buffer accumulates values for.
	Column() *Column

	// Returns the number of values written to the buffer, including nulls.
	NumValues() int

	// Returns the number of nulls written to the buffer.
	NumNulls() int

	// Returns the size of the buffered data in bytes.
	Size() int64

	// Clears all values written to the buffer.
	Reset()

	// Returns the repetition and definition level sequences of the column.
	//
	// The returned slices are the buffer's own storage; they are invalidated
	// by the next write or reset.
	Levels() (repetitionLevels, definitionLevels []int8)

	// Returns the sequence of values written to the buffer, including nulls,
	// with their levels set.
	Values() []Value

	// Appends the plain encoding of the non-null values to dst.
	appendPlain(dst []byte) []byte
}

// columnLevels carries the bookkeeping shared by all typed column buffers:
// the level sequences and the null count.
type columnLevels struct {
	column           *Column
	repetitionLevels []int8
	definitionLevels []int8
	nulls            int
}

func (col *columnLevels) Column() *Column { return col.column }

func (col *columnLevels) NumValues() int { return len(col.definitionLevels) }

func (col *columnLevels) NumNulls() int { return col.nulls }

func (col *columnLevels) Levels() ([]int8, []int8) {
	return col.repetitionLevels, col.definitionLevels
}

func (col *columnLevels) WriteNull(repetitionLevel, definitionLevel int8) error {
	if err := col.checkLevels(repetitionLevel, definitionLevel); err != nil {
		return err
	}
	if definitionLevel == col.column.MaxDefinitionLevel() {
		return fmt.Errorf("columnio: writing null to column %s at its definition level %d, which marks a value as present",
			col.column, definitionLevel)
	}
	col.writeLevels(repetitionLevel, definitionLevel)
	col.nulls++
	return nil
}

func (col *columnLevels) writeLevels(repetitionLevel, definitionLevel int8) {
	col.repetitionLevels = append(col.repetitionLevels, repetitionLevel)
	col.definitionLevels = append(col.definitionLevels, definitionLevel)
}

func (col *columnLevels) checkLevels(repetitionLevel, definitionLevel int8) error {
	if repetitionLevel < 0 || repetitionLevel > col.column.MaxRepetitionLevel() ||
		definitionLevel < 0 || definitionLevel > col.column.MaxDefinitionLevel() {
		return fmt.Errorf("columnio: levels (%d,%d) of column %s are out of the schema declared bounds",
			repetitionLevel, definitionLevel, col.column)
	}
	return nil
}

func (col *columnLevels) checkValue(v Value) error {
	if kind := col.column.Type().Kind(); v.Kind() != kind {
		return fmt.Errorf("columnio: writing %s value to %s column %s", v.Kind(), kind, col.column)
	}
	if err := col.checkLevels(v.RepetitionLevel(), v.DefinitionLevel()); err != nil {
		return err
	}
	if d := v.DefinitionLevel(); d != col.column.MaxDefinitionLevel() {
		return fmt.Errorf("columnio: writing value to column %s at definition level %d, values must be fully defined",
			col.column, d)
	}
	return nil
}

func (col *columnLevels) resetLevels() {
	col.repetitionLevels = col.repetitionLevels[:0]
	col.definitionLevels = col.definitionLevels[:0]
	col.nulls = 0
}

func (col *columnLevels) sizeOfLevels() int64 {
	return int64(len(col.repetitionLevels)) + int64(len(col.definitionLevels))
}

// materialize rebuilds the value sequence of the column, nulls included,
// from the level sequences and the given lookup of non-null values.
func (col *columnLevels) materialize(valueAt func(int) Value) []Value {
	values := make([]Value, len(col.definitionLevels))
	maxDefinitionLevel := col.column.MaxDefinitionLevel()
	next := 0
	for i, d := range col.definitionLevels {
		if d == maxDefinitionLevel {
			values[i] = valueAt(next).Level(col.repetitionLevels[i], d)
			next++
		} else {
			values[i] = Value{}.Level(col.repetitionLevels[i], d)
		}
	}
	return values
}

type booleanColumnBuffer struct {
	columnLevels
	values []bool
}

func newBooleanColumnBuffer(column *Column) *booleanColumnBuffer {
	return &booleanColumnBuffer{columnLevels: columnLevels{column: column}}
}

func (col *booleanColumnBuffer) WriteValue(v Value) error {
	if err := col.checkValue(v); err != nil {
		return err
	}
	col.values = append(col.values, v.Boolean())
	col.writeLevels(v.RepetitionLevel(), v.DefinitionLevel())
	return nil
}

func (col *booleanColumnBuffer) Values() []Value {
	return col.materialize(func(i int) Value { return makeValueBoolean(col.values[i]) })
}

func (col *booleanColumnBuffer) Size() int64 { return int64(len(col.values)) + col.sizeOfLevels() }

func (col *booleanColumnBuffer) Reset() { col.values = col.values[:0]; col.resetLevels() }

func (col *booleanColumnBuffer) appendPlain(dst []byte) []byte {
	for _, v := range col.values {
		if v {
			dst = append(dst, 1)
		} else {
			dst = append(dst, 0)
		}
	}
	return dst
}

type int32ColumnBuffer struct {
	columnLevels
	values []int32
}

func newInt32ColumnBuffer(column *Column) *int32ColumnBuffer {
	return &int32ColumnBuffer{columnLevels: columnLevels{column: column}}
}

func (col *int32ColumnBuffer) WriteValue(v Value) error {
	if err := col.checkValue(v); err != nil {
		return err
	}
	col.values = append(col.values, v.Int32())
	col.writeLevels(v.RepetitionLevel(), v.DefinitionLevel())
	return nil
}

func (col *int32ColumnBuffer) Values() []Value {
	return col.materialize(func(i int) Value { return makeValueInt32(col.values[i]) })
}

func (col *int32ColumnBuffer) Size() int64 { return 4*int64(len(col.values)) + col.sizeOfLevels() }

func (col *int32ColumnBuffer) Reset() { col.values = col.values[:0]; col.resetLevels() }

func (col *int32ColumnBuffer) appendPlain(dst []byte) []byte {
	for _, v := range col.values {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

type int64ColumnBuffer struct {
	columnLevels
	values []int64
}

func newInt64ColumnBuffer(column *Column) *int64ColumnBuffer {
	return &int64ColumnBuffer{columnLevels: columnLevels{column: column}}
}

func (col *int64ColumnBuffer) WriteValue(v Value) error {
	if err := col.checkValue(v); err != nil {
		return err
	}
	col.values = append(col.values, v.Int64())
	col.writeLevels(v.RepetitionLevel(), v.DefinitionLevel())
	return nil
}

func (col *int64ColumnBuffer) Values() []Value {
	return col.materialize(func(i int) Value { return makeValueInt64(col.values[i]) })
}

func (col *int64ColumnBuffer) Size() int64 { return 8*int64(len(col.values)) + col.sizeOfLevels() }

func (col *int64ColumnBuffer) Reset() { col.values = col.values[:0]; col.resetLevels() }

func (col *int64ColumnBuffer) appendPlain(dst []byte) []byte {
	for _, v := range col.values {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
	}
	return dst
}

type floatColumnBuffer struct {
	columnLevels
	values []float32
}

func newFloatColumnBuffer(column *Column) *floatColumnBuffer {
	return &floatColumnBuffer{columnLevels: columnLevels{column: column}}
}

func (col *floatColumnBuffer) WriteValue(v Value) error {
	if err := col.checkValue(v); err != nil {
		return err
	}
	col.values = append(col.values, v.Float())
	col.writeLevels(v.RepetitionLevel(), v.DefinitionLevel())
	return nil
}

func (col *floatColumnBuffer) Values() []Value {
	return col.materialize(func(i int) Value { return makeValueFloat(col.values[i]) })
}

func (col *floatColumnBuffer) Size() int64 { return 4*int64(len(col.values)) + col.sizeOfLevels() }

func (col *floatColumnBuffer) Reset() { col.values = col.values[:0]; col.resetLevels() }

func (col *floatColumnBuffer) appendPlain(dst []byte) []byte {
	for _, v := range col.values {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

type doubleColumnBuffer struct {
	columnLevels
	values []float64
}

func newDoubleColumnBuffer(column *Column) *doubleColumnBuffer {
	return &doubleColumnBuffer{columnLevels: columnLevels{column: column}}
}

func (col *doubleColumnBuffer) WriteValue(v Value) error {
	if err := col.checkValue(v); err != nil {
		return err
	}
	col.values = append(col.values, v.Double())
	col.writeLevels(v.RepetitionLevel(), v.DefinitionLevel())
	return nil
}

func (col *doubleColumnBuffer) Values() []Value {
	return col.materialize(func(i int) Value { return makeValueDouble(col.values[i]) })
}

func (col *doubleColumnBuffer) Size() int64 { return 8*int64(len(col.values)) + col.sizeOfLevels() }

func (col *doubleColumnBuffer) Reset() { col.values = col.values[:0]; col.resetLevels() }

func (col *doubleColumnBuffer) appendPlain(dst []byte) []byte {
	for _, v := range col.values {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}

// byteArrayColumnBuffer stores the byte sequences contiguously, with one
// offset per value delimiting them; values passed to WriteValue are copied.
type byteArrayColumnBuffer struct {
	columnLevels
	values  []byte
	offsets []uint32
}

func newByteArrayColumnBuffer(column *Column) *byteArrayColumnBuffer {
	return &byteArrayColumnBuffer{
		columnLevels: columnLevels{column: column},
		offsets:      []uint32{0},
	}
}

func (col *byteArrayColumnBuffer) WriteValue(v Value) error {
	if err := col.checkValue(v); err != nil {
		return err
	}
	col.values = append(col.values, v.ByteArray()...)
	col.offsets = append(col.offsets, uint32(len(col.values)))
	col.writeLevels(v.RepetitionLevel(), v.DefinitionLevel())
	return nil
}

func (col *byteArrayColumnBuffer) Values() []Value {
	return col.materialize(func(i int) Value {
		return makeValueBytes(col.values[col.offsets[i]:col.offsets[i+1]])
	})
}

func (col *byteArrayColumnBuffer) Size() int64 {
	return int64(len(col.values)) + 4*int64(len(col.offsets)) + col.sizeOfLevels()
}

func (col *byteArrayColumnBuffer) Reset() {
	col.values = col.values[:0]
	col.offsets = append(col.offsets[:0], 0)
	col.resetLevels()
}

func (col *byteArrayColumnBuffer) appendPlain(dst []byte) []byte {
	for i := 0; i+1 < len(col.offsets); i++ {
		v := col.values[col.offsets[i]:col.offsets[i+1]]
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(v)))
		dst = append(dst, v...)
	}
	return dst
}
