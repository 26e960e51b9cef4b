package columnio

import "sort"

// Node values represent nodes of a column schema.
//
// Nodes with one or more children represent groups and therefore do not have
// a physical type; leaf nodes carry the type of the values of one output
// column.
//
// Nodes are immutable values and therefore safe to use concurrently from
// multiple goroutines.
type Node interface {
	// For leaf nodes, returns the type of values of the column.
	//
	// Calling this method on group nodes will panic.
	Type() Type

	// Returns whether the field described by the node is optional.
	Optional() bool

	// Returns whether the field described by the node may repeat.
	Repeated() bool

	// Returns whether the field described by the node is required.
	Required() bool

	// Returns the number of child nodes.
	//
	// The method returns zero on leaf nodes.
	NumChildren() int

	// Returns the sorted list of child node names.
	//
	// The method returns an empty slice on leaf nodes.
	//
	// As an optimization, the returned slice may be the same across calls to
	// this method. Applications should treat the return value as immutable.
	ChildNames() []string

	// Returns the child node associated with the given name.
	//
	// The method panics if it is called on a leaf node, or if the name does
	// not exist.
	ChildByName(name string) Node
}

// Optional wraps the given node to make it optional.
func Optional(node Node) Node { return &optionalNode{node} }

type optionalNode struct{ Node }

func (opt *optionalNode) Optional() bool { return true }
func (opt *optionalNode) Repeated() bool { return false }
func (opt *optionalNode) Required() bool { return false }

// Repeated wraps the given node to make it repeated.
func Repeated(node Node) Node { return &repeatedNode{node} }

type repeatedNode struct{ Node }

func (rep *repeatedNode) Optional() bool { return false }
func (rep *repeatedNode) Repeated() bool { return true }
func (rep *repeatedNode) Required() bool { return false }

// Required wraps the given node to make it required.
//
// Nodes are required by default, the function is useful to undo the effect
// of Optional or Repeated on a shared node value.
func Required(node Node) Node { return &requiredNode{node} }

type requiredNode struct{ Node }

func (req *requiredNode) Optional() bool { return false }
func (req *requiredNode) Repeated() bool { return false }
func (req *requiredNode) Required() bool { return true }

// Leaf returns a leaf node of the given type.
func Leaf(typ Type) Node {
	return &leafNode{typ: typ}
}

type leafNode struct{ typ Type }

func (n *leafNode) Type() Type { return n.typ }

func (n *leafNode) Optional() bool { return false }

func (n *leafNode) Repeated() bool { return false }

func (n *leafNode) Required() bool { return true }

func (n *leafNode) NumChildren() int { return 0 }

func (n *leafNode) ChildNames() []string { return nil }

func (n *leafNode) ChildByName(string) Node {
	panic("cannot lookup child of a leaf node")
}

// Group nodes are mappings of field names to child nodes.
//
// The child order seen by the engine is the sorted order of the field names,
// which makes column indexes deterministic for a given set of names.
type Group map[string]Node

func (g Group) Type() Type { panic("cannot call Type on a group node") }

func (g Group) Optional() bool { return false }

func (g Group) Repeated() bool { return false }

func (g Group) Required() bool { return true }

func (g Group) NumChildren() int { return len(g) }

func (g Group) ChildNames() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g Group) ChildByName(name string) Node {
	n, ok := g[name]
	if ok {
		return n
	}
	panic("column not found in group: " + name)
}
