// Package graph is the persistence codec for books: it converts a node
// forest to and from a directed graph, serializes that graph through DOT
// interchange files, and stores it in a two-table embedded SQLite layout.
package graph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/simple"
)

// propPrefix marks vertex attributes that carry node properties, keeping
// them separate from structural attributes like name.
const propPrefix = "p:"

// Vertex is a graph node carrying a book node's id, name, and flattened
// properties as DOT attributes.
type Vertex struct {
	graph.Node

	// BookID is the book node id; it doubles as the DOT vertex id
	BookID string
	// Name is the node's display label
	Name string
	// Props holds the property values already encoded per the package's
	// value convention (see EncodeValue), so serialization never fails.
	Props map[string]string
}

// DOTID returns the DOT vertex identifier.
func (v *Vertex) DOTID() string {
	return v.BookID
}

// SetDOTID sets the vertex identifier during DOT unmarshaling.
func (v *Vertex) SetDOTID(id string) {
	v.BookID = id
}

// Attributes encodes name and properties for DOT marshaling. Every value
// is emitted through strconv.Quote: the DOT writer passes a value that is
// already a quoted string through verbatim, and the DOT reader strips one
// quoting layer on load, so without the explicit layer any JSON-encoded
// string (itself quoted text) would come back with its quotes stripped
// and no longer decode. Quoting unconditionally keeps write and read
// symmetric for every value.
func (v *Vertex) Attributes() []encoding.Attribute {
	attrs := make([]encoding.Attribute, 0, len(v.Props)+1)
	attrs = append(attrs, encoding.Attribute{Key: "name", Value: strconv.Quote(v.Name)})
	for _, key := range sortedKeys(v.Props) {
		attrs = append(attrs, encoding.Attribute{Key: propPrefix + key, Value: strconv.Quote(v.Props[key])})
	}
	return attrs
}

// SetAttribute restores name and properties during DOT unmarshaling. The
// DOT reader has already removed the quoting layer added by Attributes,
// so property values arrive as encoded text and are validated here.
func (v *Vertex) SetAttribute(attr encoding.Attribute) error {
	if v.Props == nil {
		v.Props = make(map[string]string)
	}
	switch {
	case attr.Key == "name":
		v.Name = attr.Value
		return nil
	case strings.HasPrefix(attr.Key, propPrefix):
		if _, err := DecodeValue(attr.Value); err != nil {
			return fmt.Errorf("vertex %q attribute %q: %w", v.BookID, attr.Key, err)
		}
		v.Props[strings.TrimPrefix(attr.Key, propPrefix)] = attr.Value
		return nil
	default:
		return fmt.Errorf("vertex %q: unknown attribute %q", v.BookID, attr.Key)
	}
}

// Edge is a containment edge from parent to child. Order records the
// child's position among its siblings so child ordering survives the
// round trip through formats that do not preserve edge order.
type Edge struct {
	F, T  graph.Node
	Order int
}

// From returns the parent vertex.
func (e *Edge) From() graph.Node { return e.F }

// To returns the child vertex.
func (e *Edge) To() graph.Node { return e.T }

// ReversedEdge returns the edge with its endpoints swapped.
func (e *Edge) ReversedEdge() graph.Edge {
	return &Edge{F: e.T, T: e.F, Order: e.Order}
}

// Attributes encodes the sibling position for DOT marshaling.
func (e *Edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "order", Value: strconv.Itoa(e.Order)}}
}

// SetAttribute restores the sibling position during DOT unmarshaling.
func (e *Edge) SetAttribute(attr encoding.Attribute) error {
	if attr.Key != "order" {
		return fmt.Errorf("edge: unknown attribute %q", attr.Key)
	}
	order, err := strconv.Atoi(attr.Value)
	if err != nil {
		return fmt.Errorf("edge: invalid order %q: %w", attr.Value, err)
	}
	e.Order = order
	return nil
}

// Graph is a directed graph of book vertices. It satisfies the builder
// interfaces the DOT decoder requires, producing Vertex and Edge values.
type Graph struct {
	*simple.DirectedGraph
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{DirectedGraph: simple.NewDirectedGraph()}
}

// NewNode returns a fresh vertex with a unique internal id. The vertex is
// not added until AddNode is called.
func (g *Graph) NewNode() graph.Node {
	return &Vertex{Node: g.DirectedGraph.NewNode(), Props: make(map[string]string)}
}

// NewEdge returns a containment edge between two vertices.
func (g *Graph) NewEdge(from, to graph.Node) graph.Edge {
	return &Edge{F: from, T: to}
}

// Vertices returns all vertices ordered by internal id, which reflects
// insertion order for graphs built by this package.
func (g *Graph) Vertices() []*Vertex {
	it := g.Nodes()
	out := make([]*Vertex, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node().(*Vertex))
	}
	sortVerticesByID(out)
	return out
}

// VertexByBookID returns the vertex carrying the given book node id, or nil.
func (g *Graph) VertexByBookID(id string) *Vertex {
	it := g.Nodes()
	for it.Next() {
		v := it.Node().(*Vertex)
		if v.BookID == id {
			return v
		}
	}
	return nil
}

func sortVerticesByID(vs []*Vertex) {
	sort.Slice(vs, func(i, j int) bool { return vs[i].ID() < vs[j].ID() })
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
