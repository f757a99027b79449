// Package book implements the hierarchical record model: named forests of
// nodes with scoped property resolution, boolean flags, attached formulas,
// and copy-on-write branching via LinkedBook.
package book

import (
	"github.com/google/uuid"
)

// Formula declares a derived property: evaluating Expression over the named
// Operands stores the result under Name. Evaluation itself lives in
// pkg/formula; this type only carries the declaration.
type Formula struct {
	// Name is the property key the result is written to
	Name string
	// Expression is the arithmetic/comparison text referencing operand names
	Expression string
	// Operands are the property keys the expression may reference
	Operands []string
}

// Node is a single record in a book's forest. Identity is the ID, not
// structural value: two nodes are the same node only if their IDs match.
type Node struct {
	// ID is opaque, unique across the owning forest, and never reassigned
	ID string
	// Name is the display label
	Name string
	// Children are exclusively owned; a node has at most one parent
	Children []*Node
	// Properties holds node-local property values
	Properties map[string]any
	// Flags holds named boolean markers
	Flags map[string]bool
	// Formulas are evaluated in declared order
	Formulas []Formula
	// Script is an opaque code hook run by an external Executor
	Script string
	// Prompt is an opaque text hook consumed by an external Generator
	Prompt string
}

// NewNode creates a node with a generated id.
func NewNode(name string) *Node {
	return NewNodeWithID(uuid.New().String(), name)
}

// NewNodeWithID creates a node with a caller-supplied id. The hierarchy
// builder uses this to carry record ids into the forest; the caller is
// responsible for uniqueness (NewBook verifies it).
func NewNodeWithID(id, name string) *Node {
	return &Node{
		ID:         id,
		Name:       name,
		Properties: make(map[string]any),
		Flags:      make(map[string]bool),
	}
}

// AddChild appends child to n's children, preserving insertion order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// RemoveChild detaches the child with the given id and returns it.
// Removal from its parent is the only way a node leaves a forest.
func (n *Node) RemoveChild(id string) (*Node, error) {
	for i, c := range n.Children {
		if c.ID == id {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return c, nil
		}
	}
	return nil, &NodeNotFoundError{ID: id}
}

// AddProperty sets key on the node. It fails if the key already exists;
// callers must use UpdateProperty to change an existing value.
func (n *Node) AddProperty(key string, value any) error {
	if _, exists := n.Properties[key]; exists {
		return &DuplicateKeyError{NodeID: n.ID, Key: key}
	}
	n.Properties[key] = value
	return nil
}

// UpdateProperty changes an existing property. It fails if the key is absent.
func (n *Node) UpdateProperty(key string, value any) error {
	if _, exists := n.Properties[key]; !exists {
		return &NotFoundError{NodeID: n.ID, Key: key}
	}
	n.Properties[key] = value
	return nil
}

// RemoveProperty deletes a property. It fails if the key is absent.
func (n *Node) RemoveProperty(key string) error {
	if _, exists := n.Properties[key]; !exists {
		return &NotFoundError{NodeID: n.ID, Key: key}
	}
	delete(n.Properties, key)
	return nil
}

// SetFlag sets a named boolean marker.
func (n *Node) SetFlag(name string, value bool) {
	n.Flags[name] = value
}

// Flag reads a named boolean marker; absent flags read as false.
func (n *Node) Flag(name string) bool {
	return n.Flags[name]
}

// Walk visits n and every descendant in pre-order. Returning false from fn
// stops the walk early.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id in n's subtree, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// DeepCopy clones the subtree rooted at n. Node ids are preserved; property
// and flag maps are copied one level deep, which is sufficient for the
// scalar values the model stores.
func (n *Node) DeepCopy() *Node {
	cp := &Node{
		ID:         n.ID,
		Name:       n.Name,
		Properties: make(map[string]any, len(n.Properties)),
		Flags:      make(map[string]bool, len(n.Flags)),
		Formulas:   make([]Formula, len(n.Formulas)),
		Script:     n.Script,
		Prompt:     n.Prompt,
	}
	for k, v := range n.Properties {
		cp.Properties[k] = v
	}
	for k, v := range n.Flags {
		cp.Flags[k] = v
	}
	for i, f := range n.Formulas {
		f.Operands = append([]string(nil), f.Operands...)
		cp.Formulas[i] = f
	}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, c.DeepCopy())
	}
	return cp
}
