package index

import "fmt"

// CollectionNotFoundError indicates a collection name that was never created.
type CollectionNotFoundError struct {
	Name string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection %q not found", e.Name)
}

// CollectionExistsError indicates an attempt to create a collection that
// already exists.
type CollectionExistsError struct {
	Name string
}

func (e *CollectionExistsError) Error() string {
	return fmt.Sprintf("collection %q already exists", e.Name)
}
