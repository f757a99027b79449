// Package hierarchy converts flat parent/child relations into node forests
// and provides sibling ordering over resolved property values.
package hierarchy

import (
	"github.com/leapstack-labs/leapbook/pkg/book"
)

// Options designates the structural columns of a flat relation. Every other
// column becomes an initial node property.
type Options struct {
	// ParentCol holds the parent record's id; empty/absent marks a root
	ParentCol string
	// ChildCol holds the record's own id
	ChildCol string
	// NameCol holds the display name; falls back to the id when absent
	NameCol string
}

// FromRecords builds a node forest from a flat relation. Record order does
// not matter: an id index is built in one pass before any attachment, so
// children may precede their parents in the input. Records with an empty
// parent reference become roots. Structural failures (duplicate id,
// dangling parent reference, parent cycle) abort the whole call.
func FromRecords(records []map[string]string, opt Options) ([]*book.Node, error) {
	index := make(map[string]*book.Node, len(records))
	parentOf := make(map[string]string, len(records))
	order := make([]string, 0, len(records))

	// Pass 1: create and index every node.
	for i, rec := range records {
		id, ok := rec[opt.ChildCol]
		if !ok || id == "" {
			return nil, &MissingColumnError{Column: opt.ChildCol, Row: i}
		}
		if _, exists := index[id]; exists {
			return nil, &DuplicateIDError{ID: id}
		}

		name := rec[opt.NameCol]
		if name == "" {
			name = id
		}
		n := book.NewNodeWithID(id, name)
		for col, val := range rec {
			if col == opt.ChildCol || col == opt.ParentCol || col == opt.NameCol {
				continue
			}
			n.Properties[col] = val
		}
		index[id] = n
		parentOf[id] = rec[opt.ParentCol]
		order = append(order, id)
	}

	// Reject parent cycles before attaching anything.
	if err := detectCycles(parentOf); err != nil {
		return nil, err
	}

	// Pass 2: attach children, collect roots, in input order.
	var roots []*book.Node
	for _, id := range order {
		n := index[id]
		parentID := parentOf[id]
		if parentID == "" {
			roots = append(roots, n)
			continue
		}
		parent, ok := index[parentID]
		if !ok {
			return nil, &DanglingParentError{ID: id, Parent: parentID}
		}
		parent.AddChild(n)
	}

	return roots, nil
}

// detectCycles follows parent references from every record. A chain that
// revisits a node within the same walk is a cycle; chains that reach a root
// or an already-verified node are safe.
func detectCycles(parentOf map[string]string) error {
	safe := make(map[string]bool, len(parentOf))
	for start := range parentOf {
		walked := make(map[string]bool)
		id := start
		for id != "" && !safe[id] {
			if walked[id] {
				return &CycleError{ID: id}
			}
			walked[id] = true
			next, ok := parentOf[id]
			if !ok {
				break // dangling parent, reported during attachment
			}
			id = next
		}
		for w := range walked {
			safe[w] = true
		}
	}
	return nil
}
