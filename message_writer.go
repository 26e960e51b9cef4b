package columnio

import (
	"fmt"
	"strings"
)

// MessageWriter is the state machine shredding one record at a time into the
// per-leaf column sinks of a store.
//
// The caller drives the writer with a strictly nested event sequence:
// StartMessage, then for every field present in the record a
// StartField/EndField pair enclosing either one or more Add* calls for leaf
// values or one or more StartGroup/EndGroup pairs for subgroups, then
// EndMessage. Fields that are absent from the record must be omitted
// entirely; the writer synthesizes a null for every column beneath them when
// the enclosing group closes.
//
// Every event either completes, or fails with an error wrapping ErrStructure
// when the sequence is malformed, in which case the record is invalid and
// must be discarded. Errors returned by column sinks are propagated
// unchanged.
//
// MessageWriter values are bound to one schema and one set of sinks, hold
// one record worth of state, and are not safe to use concurrently from
// multiple goroutines.
type MessageWriter struct {
	schema  *Schema
	columns []ColumnWriter
	tracer  Tracer

	current      *Column
	currentLevel int
	levels       levelTracker
	emptyField   bool
}

// MessageWriterOption configures a MessageWriter.
type MessageWriterOption func(*MessageWriter)

// WithTracer installs a tracer observing the events and state transitions
// of the writer.
func WithTracer(tracer Tracer) MessageWriterOption {
	return func(w *MessageWriter) { w.tracer = tracer }
}

// NewMessageWriter constructs a writer shredding records of the given schema
// into the column sinks of the given store.
//
// The store is queried once per leaf column at construction time; the
// mapping from column indexes to sinks does not change afterwards.
func NewMessageWriter(schema *Schema, store ColumnWriterStore, options ...MessageWriterOption) *MessageWriter {
	columns := make([]ColumnWriter, schema.NumColumns())
	for i := range columns {
		columns[i] = store.ColumnWriter(i)
	}
	w := &MessageWriter{
		schema:     schema,
		columns:    columns,
		levels:     makeLevelTracker(schema.MaxDepth()),
		emptyField: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// StartMessage begins a new record, positioning the writer at the root of
// the schema with a repetition level of zero.
func (w *MessageWriter) StartMessage() error {
	w.current = w.schema.Root()
	w.currentLevel = 0
	w.levels.setRepetitionLevel(0, 0)
	w.levels.enter(0, w.current.NumChildren())
	w.traceEvent("< MESSAGE START >")
	return w.check()
}

// EndMessage completes the current record, synthesizing nulls for every
// root field that was not written.
func (w *MessageWriter) EndMessage() error {
	if w.current == nil {
		return structuralError("endMessage: no message is being written")
	}
	if w.current != w.schema.Root() || w.currentLevel != 0 {
		return structuralError("endMessage at %s: unbalanced fields or groups", w.path())
	}
	if err := w.writeNullsForMissingFields(); err != nil {
		return err
	}
	w.traceEvent("< MESSAGE END >")
	return w.check()
}

// StartField positions the writer on the indexed child of the current group.
//
// The index is authoritative, the name is only used in errors and traces.
func (w *MessageWriter) StartField(name string, index int) error {
	if w.current == nil {
		return structuralError("startField(%s, %d): no message is being written", name, index)
	}
	child := w.current.Child(index)
	if child == nil {
		return structuralError("error starting field %s at %d in %s", name, index, w.path())
	}
	w.current = child
	w.emptyField = true
	if w.tracer != nil {
		w.tracer.Event(w.currentLevel, fmt.Sprintf("startField(%s, %d)", name, index))
	}
	return w.check()
}

// EndField closes the field opened by the matching StartField, marking it
// written at the current depth.
//
// EndField fails with ErrEmptyField if no value or subgroup was added since
// the matching StartField: an absent field must be omitted entirely rather
// than opened and closed empty.
func (w *MessageWriter) EndField(name string, index int) error {
	if w.current == nil || w.current.Parent() == nil {
		return structuralError("endField(%s, %d): no field is being written", name, index)
	}
	if w.tracer != nil {
		w.tracer.Event(w.currentLevel, fmt.Sprintf("endField(%s, %d)", name, index))
	}
	w.current = w.current.Parent()
	if w.emptyField {
		return fmt.Errorf("columnio: error ending field %s at %d: %w", name, index, ErrEmptyField)
	}
	if index < 0 || index >= w.current.NumChildren() {
		return structuralError("error ending field %s at %d in %s", name, index, w.path())
	}
	w.levels.markWritten(w.currentLevel, index)
	if w.currentLevel == 0 {
		w.levels.setRepetitionLevel(0, 0)
	} else {
		w.levels.setRepetitionLevel(w.currentLevel, w.levels.repetitionLevel(w.currentLevel-1))
	}
	return w.check()
}

// StartGroup opens a group instance of the current field. The new depth
// inherits the repetition level in effect at the parent depth.
func (w *MessageWriter) StartGroup() error {
	if w.current == nil || w.current.Leaf() {
		return structuralError("startGroup at %s: not positioned on a group", w.path())
	}
	if w.currentLevel+1 >= len(w.levels.repetitionLevels) {
		return structuralError("startGroup at %s: schema depth exceeded", w.path())
	}
	w.traceEvent("startGroup()")
	w.currentLevel++
	w.levels.setRepetitionLevel(w.currentLevel, w.levels.repetitionLevel(w.currentLevel-1))
	w.levels.enter(w.currentLevel, w.current.NumChildren())
	return w.check()
}

// EndGroup closes the group instance opened by the matching StartGroup,
// synthesizing nulls for every field of the group that was not written, and
// arms the parent depth with the group's own repetition level so that a
// following instance of the same repeated group is recorded as a repetition.
func (w *MessageWriter) EndGroup() error {
	if w.current == nil || w.current.Leaf() || w.currentLevel == 0 {
		return structuralError("endGroup at %s: no group is being written", w.path())
	}
	w.traceEvent("endGroup()")
	w.emptyField = false
	if err := w.writeNullsForMissingFields(); err != nil {
		return err
	}
	w.currentLevel--
	w.levels.setRepetitionLevel(w.currentLevel, w.current.MaxRepetitionLevel())
	return w.check()
}

// AddBoolean writes a boolean value to the current leaf column.
func (w *MessageWriter) AddBoolean(value bool) error { return w.add(makeValueBoolean(value)) }

// AddInt32 writes a 32-bit integer value to the current leaf column.
func (w *MessageWriter) AddInt32(value int32) error { return w.add(makeValueInt32(value)) }

// AddInt64 writes a 64-bit integer value to the current leaf column.
func (w *MessageWriter) AddInt64(value int64) error { return w.add(makeValueInt64(value)) }

// AddFloat writes a single-precision value to the current leaf column.
func (w *MessageWriter) AddFloat(value float32) error { return w.add(makeValueFloat(value)) }

// AddDouble writes a double-precision value to the current leaf column.
func (w *MessageWriter) AddDouble(value float64) error { return w.add(makeValueDouble(value)) }

// AddByteArray writes a byte sequence to the current leaf column. The slice
// is not copied; sinks retaining values beyond the call must clone it.
func (w *MessageWriter) AddByteArray(value []byte) error { return w.add(makeValueBytes(value)) }

// AddValue writes a value of any physical type to the current leaf column;
// the levels of the given value are ignored and recomputed.
func (w *MessageWriter) AddValue(value Value) error {
	if value.IsNull() {
		return structuralError("cannot add a null value at %s", w.path())
	}
	return w.add(value)
}

func (w *MessageWriter) add(v Value) error {
	leaf := w.current
	if leaf == nil || !leaf.Leaf() {
		return structuralError("cannot add a %s value at %s: not positioned on a leaf column", v.Kind(), w.path())
	}
	w.emptyField = false
	if w.tracer != nil {
		w.tracer.Event(w.currentLevel, fmt.Sprintf("add(%s)", v))
	}
	r := w.levels.repetitionLevel(w.currentLevel)
	if err := w.columns[leaf.Index()].WriteValue(v.Level(r, leaf.MaxDefinitionLevel())); err != nil {
		return err
	}
	// A second value for the same field in the same scope repeats at the
	// leaf's own level, not at the level the scope was entered with.
	w.levels.setRepetitionLevel(w.currentLevel, leaf.MaxRepetitionLevel())
	return w.check()
}

// writeNullsForMissingFields synthesizes nulls for every field of the group
// being closed that was not written in the current scope. The definition
// level is the one of the closing group: ancestors up to it are present,
// everything below is missing.
func (w *MessageWriter) writeNullsForMissingFields() error {
	group := w.current
	r := w.levels.repetitionLevel(w.currentLevel)
	d := group.MaxDefinitionLevel()
	for i, n := 0, group.NumChildren(); i < n; i++ {
		if w.levels.isWritten(w.currentLevel, i) {
			continue
		}
		if err := w.writeNull(group.Child(i), r, d); err != nil {
			return err
		}
	}
	return nil
}

// writeNull emits one null per leaf beneath the given column, depth-first in
// schema order: a missing group implies every descendant is missing.
func (w *MessageWriter) writeNull(col *Column, r, d int8) error {
	if col.Leaf() {
		if w.tracer != nil {
			w.tracer.Event(w.currentLevel, fmt.Sprintf("%s.writeNull(%d, %d)", strings.Join(col.Path(), "."), r, d))
		}
		return w.columns[col.Index()].WriteNull(r, d)
	}
	for _, child := range col.children {
		if err := w.writeNull(child, r, d); err != nil {
			return err
		}
	}
	return nil
}

// check verifies that the repetition level in effect never exceeds the level
// declared by the schema at the current position.
func (w *MessageWriter) check() error {
	r := w.levels.repetitionLevel(w.currentLevel)
	if w.tracer != nil {
		w.tracer.State(w.currentLevel, w.current.Path(), r, w.current.MaxDefinitionLevel())
	}
	if r > w.current.MaxRepetitionLevel() {
		return fmt.Errorf("columnio: %d(r) > %d (schema r) at %s: %w", r, w.current.MaxRepetitionLevel(), w.path(), ErrLevelBound)
	}
	return nil
}

func (w *MessageWriter) path() string {
	if w.current == nil || len(w.current.Path()) == 0 {
		return "<root>"
	}
	return strings.Join(w.current.Path(), ".")
}

func (w *MessageWriter) traceEvent(op string) {
	if w.tracer != nil {
		w.tracer.Event(w.currentLevel, op)
	}
}
