package book

// Book is a named forest of nodes plus a global fallback property scope.
type Book struct {
	// Name is the book's display name
	Name string
	// Roots are the owned top-level nodes, in insertion order
	Roots []*Node
	// Metadata holds free-form book-level annotations
	Metadata map[string]any
	// Globals is the book-wide fallback scope for property resolution
	Globals map[string]any
}

// NewBook creates a book owning the given roots. Construction fails with
// DuplicateIDError if any two nodes across the forest share an id.
func NewBook(name string, roots ...*Node) (*Book, error) {
	b := &Book{
		Name:     name,
		Roots:    roots,
		Metadata: make(map[string]any),
		Globals:  make(map[string]any),
	}
	seen := make(map[string]struct{})
	for _, root := range roots {
		var dup *DuplicateIDError
		root.Walk(func(n *Node) bool {
			if _, ok := seen[n.ID]; ok {
				dup = &DuplicateIDError{ID: n.ID}
				return false
			}
			seen[n.ID] = struct{}{}
			return true
		})
		if dup != nil {
			return nil, dup
		}
	}
	return b, nil
}

// AddRoot appends a root node. It fails if any id in the new subtree
// collides with an id already in the forest.
func (b *Book) AddRoot(root *Node) error {
	seen := make(map[string]struct{})
	b.Walk(func(n *Node) bool {
		seen[n.ID] = struct{}{}
		return true
	})
	var dup *DuplicateIDError
	root.Walk(func(n *Node) bool {
		if _, ok := seen[n.ID]; ok {
			dup = &DuplicateIDError{ID: n.ID}
			return false
		}
		return true
	})
	if dup != nil {
		return dup
	}
	b.Roots = append(b.Roots, root)
	return nil
}

// Walk visits every node in the forest in pre-order, root by root.
func (b *Book) Walk(fn func(*Node) bool) {
	for _, root := range b.Roots {
		if !root.Walk(fn) {
			return
		}
	}
}

// FindNode returns the node with the given id, or a NodeNotFoundError.
func (b *Book) FindNode(id string) (*Node, error) {
	for _, root := range b.Roots {
		if n := root.Find(id); n != nil {
			return n, nil
		}
	}
	return nil, &NodeNotFoundError{ID: id}
}

// Len reports the number of nodes in the forest.
func (b *Book) Len() int {
	count := 0
	b.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Resolve returns the property value for key on node n, checking the
// node-local scope first and the book's globals second. The precedence is
// fixed: a local value always wins over a global one. Missing in both
// scopes is a PropertyNotFoundError, never a silent zero value.
func (b *Book) Resolve(n *Node, key string) (any, error) {
	if v, ok := n.Properties[key]; ok {
		return v, nil
	}
	if v, ok := b.Globals[key]; ok {
		return v, nil
	}
	return nil, &PropertyNotFoundError{NodeID: n.ID, Key: key}
}

// ResolveByID resolves key for the node with the given id.
func (b *Book) ResolveByID(id, key string) (any, error) {
	n, err := b.FindNode(id)
	if err != nil {
		return nil, err
	}
	return b.Resolve(n, key)
}

// DeepCopy clones the book, its metadata and globals, and the entire forest.
// Node ids are preserved; the copy shares no mutable state with the source.
func (b *Book) DeepCopy(name string) *Book {
	cp := &Book{
		Name:     name,
		Metadata: make(map[string]any, len(b.Metadata)),
		Globals:  make(map[string]any, len(b.Globals)),
	}
	for k, v := range b.Metadata {
		cp.Metadata[k] = v
	}
	for k, v := range b.Globals {
		cp.Globals[k] = v
	}
	for _, root := range b.Roots {
		cp.Roots = append(cp.Roots, root.DeepCopy())
	}
	return cp
}
