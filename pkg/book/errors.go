package book

import "fmt"

// DuplicateIDError indicates two nodes in one book share the same id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate node id %q", e.ID)
}

// DuplicateKeyError indicates an attempt to add a property that already exists.
type DuplicateKeyError struct {
	NodeID string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("property %q already exists on node %q", e.Key, e.NodeID)
}

// NotFoundError indicates an update or removal of a property that does not exist.
type NotFoundError struct {
	NodeID string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("property %q not found on node %q", e.Key, e.NodeID)
}

// PropertyNotFoundError indicates a key that resolves neither locally nor
// through the book's global properties.
type PropertyNotFoundError struct {
	NodeID string
	Key    string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q not resolvable for node %q (checked local then global scope)", e.Key, e.NodeID)
}

// NodeNotFoundError indicates a node id that does not exist in the book's forest.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.ID)
}
