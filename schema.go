package columnio

import (
	"fmt"
	"strings"
)

// MaxColumnDepth is the maximum nesting depth of a schema supported by the
// engine; levels are stored in 8 bits.
const MaxColumnDepth = 127

// Schema is the compiled form of a Node tree, annotated with the repetition
// and definition levels that the shredding engine needs at every node.
//
// Schema values are immutable after construction and safe to use
// concurrently from multiple goroutines.
type Schema struct {
	name     string
	root     *Column
	columns  []*Column
	maxDepth int
}

// NewSchema compiles the node tree rooted at the given group into a Schema.
//
// The repetition and definition levels of every node are computed once here
// and never change: entering a repeated field increments both levels,
// entering an optional field increments the definition level only. Leaf
// columns are assigned indexes in depth-first order over the sorted child
// names.
//
// The function panics if root is a leaf, if a group has no children, or if
// the tree is deeper than MaxColumnDepth; those are programming errors, not
// data errors.
func NewSchema(name string, root Node) *Schema {
	if root.NumChildren() == 0 {
		panic("columnio: the root node of a schema must be a group with at least one field")
	}
	s := &Schema{name: name}
	s.root = s.compile(root, nil, "", 0, 0)
	return s
}

func (s *Schema) compile(node Node, parent *Column, name string, repetitionLevel, definitionLevel int8) *Column {
	col := &Column{
		node:            node,
		name:            name,
		parent:          parent,
		repetitionLevel: repetitionLevel,
		definitionLevel: definitionLevel,
		index:           -1,
	}
	if parent != nil {
		col.path = appendPath(parent.path, name)
	}

	if node.NumChildren() == 0 {
		col.index = int32(len(s.columns))
		s.columns = append(s.columns, col)
		if depth := len(col.path); depth > s.maxDepth {
			s.maxDepth = depth
		}
		return col
	}

	names := node.ChildNames()
	col.children = make([]*Column, len(names))
	for i, childName := range names {
		child := node.ChildByName(childName)
		r, d := repetitionLevel, definitionLevel
		switch {
		case child.Repeated():
			r++
			d++
		case child.Optional():
			d++
		}
		if int(d) > MaxColumnDepth || int(r) > MaxColumnDepth {
			panic("columnio: schema deeper than MaxColumnDepth")
		}
		col.children[i] = s.compile(child, col, childName, r, d)
	}
	return col
}

func appendPath(path []string, name string) []string {
	return append(path[:len(path):len(path)], name)
}

// Name returns the name the schema was compiled with.
func (s *Schema) Name() string { return s.name }

// Root returns the root column of the schema.
func (s *Schema) Root() *Column { return s.root }

// Columns returns the list of leaf columns in column index order.
//
// The method returns the same slice across calls, the program must treat it
// as a read-only value.
func (s *Schema) Columns() []*Column { return s.columns }

// NumColumns returns the number of leaf columns of the schema.
func (s *Schema) NumColumns() int { return len(s.columns) }

// MaxDepth returns the length of the longest field path of the schema, which
// is the number of depth frames the shredding engine needs.
func (s *Schema) MaxDepth() int { return s.maxDepth }

// Lookup returns the column at the given field path, or nil if the path does
// not exist in the schema.
func (s *Schema) Lookup(path ...string) *Column {
	col := s.root
	for _, name := range path {
		if col = col.Child(col.ChildIndex(name)); col == nil {
			return nil
		}
	}
	return col
}

// String returns the text representation of the schema.
func (s *Schema) String() string {
	b := new(strings.Builder)
	Print(b, s.name, s.root.node)
	return b.String()
}

// Column is a node of a compiled schema.
type Column struct {
	node            Node
	name            string
	path            []string
	parent          *Column
	children        []*Column
	repetitionLevel int8
	definitionLevel int8
	index           int32
}

// Name returns the field name of the column, which is empty for the root.
func (c *Column) Name() string { return c.name }

// Path returns the field path of the column from the root of the schema.
//
// The method returns the same slice across calls, the program must treat it
// as a read-only value.
func (c *Column) Path() []string { return c.path }

// Parent returns the parent of the column, or nil for the root.
func (c *Column) Parent() *Column { return c.parent }

// Leaf returns true if the column is a leaf.
func (c *Column) Leaf() bool { return len(c.children) == 0 }

// Type returns the physical type of a leaf column.
//
// Calling this method on a group column will panic.
func (c *Column) Type() Type { return c.node.Type() }

// Optional returns true if the column is optional.
func (c *Column) Optional() bool { return c.node.Optional() }

// Repeated returns true if the column may repeat.
func (c *Column) Repeated() bool { return c.node.Repeated() }

// Required returns true if the column is required.
func (c *Column) Required() bool { return c.node.Required() }

// NumChildren returns the number of child columns, zero for leaves.
func (c *Column) NumChildren() int { return len(c.children) }

// Child returns the child column at the given index, or nil if the index is
// out of range.
func (c *Column) Child(index int) *Column {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	return c.children[index]
}

// ChildIndex returns the index of the child column with the given name, or
// -1 if the name does not exist.
func (c *Column) ChildIndex(name string) int {
	for i, child := range c.children {
		if child.name == name {
			return i
		}
	}
	return -1
}

// Index returns the column index of a leaf column, and -1 for groups.
func (c *Column) Index() int { return int(c.index) }

// MaxRepetitionLevel returns the repetition level of values of the column.
func (c *Column) MaxRepetitionLevel() int8 { return c.repetitionLevel }

// MaxDefinitionLevel returns the definition level of values of the column.
func (c *Column) MaxDefinitionLevel() int8 { return c.definitionLevel }

// String returns a human-readable representation of the column.
func (c *Column) String() string {
	return fmt.Sprintf("%s{R=%d,D=%d}", strings.Join(c.path, "."), c.repetitionLevel, c.definitionLevel)
}
