package graph

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

// FromBook converts a book's forest into a directed graph: one vertex per
// node keyed by node id, one parent-to-child edge per containment link.
// A book with several roots maps to a graph with one weakly-connected
// component per root. Unrepresentable property values fail the conversion.
func FromBook(b *book.Book) (*Graph, error) {
	g := NewGraph()
	byID := make(map[string]*Vertex, b.Len())

	var convErr error
	b.Walk(func(n *book.Node) bool {
		v := g.NewNode().(*Vertex)
		v.BookID = n.ID
		v.Name = n.Name
		for key, val := range n.Properties {
			encoded, err := EncodeValue(val)
			if err != nil {
				convErr = fmt.Errorf("node %q property %q: %w", n.ID, key, err)
				return false
			}
			v.Props[key] = encoded
		}
		g.AddNode(v)
		byID[n.ID] = v
		return true
	})
	if convErr != nil {
		return nil, convErr
	}

	b.Walk(func(n *book.Node) bool {
		parent := byID[n.ID]
		for i, c := range n.Children {
			e := g.NewEdge(parent, byID[c.ID]).(*Edge)
			e.Order = i
			g.SetEdge(e)
		}
		return true
	})

	return g, nil
}

// ToBook reconstructs a book from a graph: vertices become nodes, edges
// reconnect children ordered by their recorded sibling position, and the
// vertices with zero incoming edges become the roots. A graph whose
// containment edges do not form a forest fails with a structural error
// rather than dropping vertices.
func ToBook(g *Graph, name string) (*book.Book, error) {
	vertices := g.Vertices()
	nodes := make(map[int64]*book.Node, len(vertices))

	var roots []*book.Node
	var rootIDs []int64
	for _, v := range vertices {
		if v.BookID == "" {
			return nil, fmt.Errorf("graph vertex %d has no id", v.ID())
		}
		n := book.NewNodeWithID(v.BookID, v.Name)
		for key, encoded := range v.Props {
			val, err := DecodeValue(encoded)
			if err != nil {
				return nil, fmt.Errorf("vertex %q property %q: %w", v.BookID, key, err)
			}
			n.Properties[key] = val
		}
		nodes[v.ID()] = n

		switch in := g.To(v.ID()).Len(); {
		case in == 0:
			roots = append(roots, n)
			rootIDs = append(rootIDs, v.ID())
		case in > 1:
			return nil, fmt.Errorf("vertex %q has %d parents; containment must form a forest", v.BookID, in)
		}
	}

	if len(roots) == 0 && len(vertices) > 0 {
		return nil, fmt.Errorf("graph has no root vertices; containment must be acyclic")
	}
	// A vertex inside a cycle never has zero in-degree, so a cyclic
	// component alongside healthy trees would otherwise vanish silently.
	if reached := countReachable(g, rootIDs); reached != len(vertices) {
		return nil, fmt.Errorf("only %d of %d vertices are reachable from the roots; containment must be acyclic", reached, len(vertices))
	}

	for _, v := range vertices {
		parent := nodes[v.ID()]
		it := g.From(v.ID())
		type childEdge struct {
			node  *book.Node
			order int
		}
		children := make([]childEdge, 0, it.Len())
		for it.Next() {
			child := it.Node().(*Vertex)
			e := g.Edge(v.ID(), child.ID()).(*Edge)
			children = append(children, childEdge{node: nodes[child.ID()], order: e.Order})
		}
		sort.Slice(children, func(i, j int) bool { return children[i].order < children[j].order })
		for _, c := range children {
			parent.AddChild(c.node)
		}
	}

	return book.NewBook(name, roots...)
}

// countReachable walks containment edges breadth-first from the given
// vertices and returns how many distinct vertices it visits.
func countReachable(g *Graph, from []int64) int {
	seen := make(map[int64]bool, len(from))
	queue := append([]int64(nil), from...)
	for _, id := range from {
		seen[id] = true
	}
	reached := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		reached++
		it := g.From(id)
		for it.Next() {
			cid := it.Node().ID()
			if !seen[cid] {
				seen[cid] = true
				queue = append(queue, cid)
			}
		}
	}
	return reached
}
