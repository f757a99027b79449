package book

// Delta is a single recorded property override. Position in the delta log
// is the only timestamp: later entries for the same (node id, key) pair win.
type Delta struct {
	NodeID string
	Key    string
	Value  any
}

// LinkedBook is a copy-on-write branch over a base book, expressed as an
// append-only delta log. The base book is referenced, not owned, and is
// never mutated through a LinkedBook; callers must keep it alive for the
// branch's lifetime.
type LinkedBook struct {
	base   *Book
	deltas []Delta
}

// NewLinkedBook creates an empty branch over base.
func NewLinkedBook(base *Book) *LinkedBook {
	return &LinkedBook{base: base}
}

// Base returns the underlying book.
func (lb *LinkedBook) Base() *Book {
	return lb.base
}

// Deltas returns a copy of the delta log in append order.
func (lb *LinkedBook) Deltas() []Delta {
	return append([]Delta(nil), lb.deltas...)
}

// AddChange appends a property override. The node id is not validated at
// append time; validation is deferred to reads and materialization.
func (lb *LinkedBook) AddChange(nodeID, key string, value any) {
	lb.deltas = append(lb.deltas, Delta{NodeID: nodeID, Key: key, Value: value})
}

// Resolve returns the branch's view of a property: the most recent matching
// delta if any, else the base book's resolved value (local then global).
func (lb *LinkedBook) Resolve(nodeID, key string) (any, error) {
	for i := len(lb.deltas) - 1; i >= 0; i-- {
		d := lb.deltas[i]
		if d.NodeID == nodeID && d.Key == key {
			return d.Value, nil
		}
	}
	return lb.base.ResolveByID(nodeID, key)
}

// ToBook materializes the branch: a deep copy of the entire base forest
// (ids and structure preserved) with all deltas replayed in append order,
// so the last write for any (node id, key) pair wins. Deltas naming node
// ids that do not exist in the base forest are dropped. The returned book
// is fully independent of the base.
func (lb *LinkedBook) ToBook(name string) *Book {
	out := lb.base.DeepCopy(name)
	index := make(map[string]*Node, out.Len())
	out.Walk(func(n *Node) bool {
		index[n.ID] = n
		return true
	})
	for _, d := range lb.deltas {
		if n, ok := index[d.NodeID]; ok {
			n.Properties[d.Key] = d.Value
		}
	}
	return out
}
