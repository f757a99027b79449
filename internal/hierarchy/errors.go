package hierarchy

import "fmt"

// DuplicateIDError indicates two input records share the same child-column value.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate record id %q", e.ID)
}

// DanglingParentError indicates a record whose parent reference matches no
// known id. The record is never silently promoted to a root.
type DanglingParentError struct {
	ID     string
	Parent string
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("record %q references unknown parent %q", e.ID, e.Parent)
}

// CycleError indicates that following parent references from a record
// returns to itself.
type CycleError struct {
	ID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected through record %q", e.ID)
}

// MissingColumnError indicates a record without the required child column.
type MissingColumnError struct {
	Column string
	Row    int
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("record %d is missing required column %q", e.Row, e.Column)
}
