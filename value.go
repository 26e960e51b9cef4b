package columnio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"unsafe"

	"github.com/google/uuid"
)

// Value represents a single value of a leaf column, along with the
// repetition and definition levels that position it in its record.
//
// The zero value of the type is a null with levels zero.
type Value struct {
	// data
	ptr *byte
	u64 uint64
	u32 uint32
	// type
	kind int16 // XOR(Kind) so the zero-value is <null>
	// levels
	definitionLevel int8
	repetitionLevel int8
}

// ValueOf constructs a Value from a Go value.
//
// The function panics when it is given a Go value that cannot be represented
// by any of the physical types.
func ValueOf(v interface{}) Value {
	switch value := v.(type) {
	case nil:
		return Value{}
	case bool:
		return makeValueBoolean(value)
	case int8:
		return makeValueInt32(int32(value))
	case int16:
		return makeValueInt32(int32(value))
	case int32:
		return makeValueInt32(value)
	case int64:
		return makeValueInt64(value)
	case int:
		return makeValueInt64(int64(value))
	case float32:
		return makeValueFloat(value)
	case float64:
		return makeValueDouble(value)
	case string:
		return makeValueString(value)
	case []byte:
		return makeValueBytes(value)
	case uuid.UUID:
		return makeValueBytes(value[:])
	}
	panic(fmt.Sprintf("cannot create value from go value of type %T", v))
}

func makeValueBoolean(value bool) Value {
	v := Value{kind: ^int16(Boolean)}
	if value {
		v.u32 = 1
	}
	return v
}

func makeValueInt32(value int32) Value {
	return Value{
		kind: ^int16(Int32),
		u32:  uint32(value),
	}
}

func makeValueInt64(value int64) Value {
	return Value{
		kind: ^int16(Int64),
		u64:  uint64(value),
	}
}

func makeValueFloat(value float32) Value {
	return Value{
		kind: ^int16(Float),
		u32:  math.Float32bits(value),
	}
}

func makeValueDouble(value float64) Value {
	return Value{
		kind: ^int16(Double),
		u64:  math.Float64bits(value),
	}
}

func makeValueBytes(value []byte) Value {
	return makeValueByteArray(*(**byte)(unsafe.Pointer(&value)), len(value))
}

func makeValueString(value string) Value {
	return makeValueByteArray(*(**byte)(unsafe.Pointer(&value)), len(value))
}

func makeValueByteArray(data *byte, size int) Value {
	return Value{
		kind: ^int16(ByteArray),
		ptr:  data,
		u64:  uint64(size),
	}
}

// Kind returns the kind of v, or -1 if v is null.
func (v Value) Kind() Kind { return ^Kind(v.kind) }

// IsNull returns true if v is the null value.
func (v Value) IsNull() bool { return v.kind == 0 }

func (v Value) Boolean() bool { return v.u32 != 0 }

func (v Value) Int32() int32 { return int32(v.u32) }

func (v Value) Int64() int64 { return int64(v.u64) }

func (v Value) Float() float32 { return math.Float32frombits(v.u32) }

func (v Value) Double() float64 { return math.Float64frombits(v.u64) }

func (v Value) ByteArray() []byte { return unsafe.Slice(v.ptr, int(v.u64)) }

// DefinitionLevel returns the definition level of v.
func (v Value) DefinitionLevel() int8 { return v.definitionLevel }

// RepetitionLevel returns the repetition level of v.
func (v Value) RepetitionLevel() int8 { return v.repetitionLevel }

// Level returns a copy of v with the given repetition and definition levels.
func (v Value) Level(repetitionLevel, definitionLevel int8) Value {
	v.repetitionLevel = repetitionLevel
	v.definitionLevel = definitionLevel
	return v
}

// Clone returns a copy of v which does not share any pointer with it.
func (v Value) Clone() Value {
	switch v.Kind() {
	case ByteArray:
		b := makeValueBytes(append([]byte{}, v.ByteArray()...))
		return b.Level(v.repetitionLevel, v.definitionLevel)
	default:
		return v
	}
}

// Format outputs a human-readable representation of v to w.
//
// The following verbs are supported: 's' and 'q' print the value, 'r' and
// 'd' print the repetition and definition levels, 'v' prints the value, and
// with the '+' flag all three components.
func (v Value) Format(w fmt.State, r rune) {
	switch r {
	case 'd':
		if w.Flag('+') {
			io.WriteString(w, "D:")
		}
		fmt.Fprint(w, v.definitionLevel)

	case 'r':
		if w.Flag('+') {
			io.WriteString(w, "R:")
		}
		fmt.Fprint(w, v.repetitionLevel)

	case 'q':
		if w.Flag('+') {
			io.WriteString(w, "V:")
		}
		switch v.Kind() {
		case ByteArray:
			fmt.Fprintf(w, "%q", v.ByteArray())
		default:
			fmt.Fprintf(w, `"%s"`, v)
		}

	case 's':
		if w.Flag('+') {
			io.WriteString(w, "V:")
		}
		switch v.Kind() {
		case Boolean:
			fmt.Fprint(w, v.Boolean())
		case Int32:
			fmt.Fprint(w, v.Int32())
		case Int64:
			fmt.Fprint(w, v.Int64())
		case Float:
			fmt.Fprint(w, v.Float())
		case Double:
			fmt.Fprint(w, v.Double())
		case ByteArray:
			w.Write(v.ByteArray())
		default:
			io.WriteString(w, "<null>")
		}

	case 'v':
		switch {
		case w.Flag('+'):
			fmt.Fprintf(w, "%+[1]d %+[1]r %+[1]s", v)
		case w.Flag('#'):
			fmt.Fprintf(w, "columnio.Value{%+[1]d,%+[1]r,%+[1]s}", v)
		default:
			v.Format(w, 's')
		}
	}
}

func (v Value) String() string {
	return fmt.Sprint(v)
}

// Equal returns true if v1 and v2 hold the same value, ignoring levels.
func Equal(v1, v2 Value) bool {
	if v1.kind != v2.kind {
		return false
	}
	switch v1.Kind() {
	case Boolean:
		return v1.Boolean() == v2.Boolean()
	case Int32:
		return v1.Int32() == v2.Int32()
	case Int64:
		return v1.Int64() == v2.Int64()
	case Float:
		return v1.Float() == v2.Float()
	case Double:
		return v1.Double() == v2.Double()
	case ByteArray:
		return bytes.Equal(v1.ByteArray(), v2.ByteArray())
	case -1: // null
		return true
	default:
		return false
	}
}

var (
	_ fmt.Formatter = Value{}
	_ fmt.Stringer  = Value{}
)
