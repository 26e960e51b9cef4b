package columnio

// The Type interface represents the physical type of leaf columns.
//
// Type values are immutable and safe to use concurrently from multiple
// goroutines.
type Type interface {
	// Returns a human-readable representation of the type.
	String() string

	// Returns the kind of values of the type.
	Kind() Kind
}

// Leaf types exposed by the package, one per physical type carried by the
// event protocol.
var (
	BooleanType   Type = primitiveType{kind: Boolean, name: "boolean"}
	Int32Type     Type = primitiveType{kind: Int32, name: "int32"}
	Int64Type     Type = primitiveType{kind: Int64, name: "int64"}
	FloatType     Type = primitiveType{kind: Float, name: "float"}
	DoubleType    Type = primitiveType{kind: Double, name: "double"}
	ByteArrayType Type = primitiveType{kind: ByteArray, name: "binary"}
)

type primitiveType struct {
	kind Kind
	name string
}

func (t primitiveType) String() string { return t.name }

func (t primitiveType) Kind() Kind { return t.kind }
