package graph

import (
	"testing"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

// codecTestBook builds:
//
//	assets
//	├── vehicles
//	│   ├── truck
//	│   └── van
//	└── buildings
//	hq (second root)
func codecTestBook(t *testing.T) *book.Book {
	t.Helper()

	assets := book.NewNodeWithID("assets", "Assets")
	vehicles := book.NewNodeWithID("vehicles", "Vehicles")
	truck := book.NewNodeWithID("truck", "Truck 42")
	van := book.NewNodeWithID("van", "Van 7")
	buildings := book.NewNodeWithID("buildings", "Buildings")
	hq := book.NewNodeWithID("hq", "Headquarters")

	truck.Properties["amount"] = int64(500000)
	truck.Properties["currency"] = "USD"
	van.Properties["amount"] = int64(120000)
	van.Properties["label"] = "heavy vehicle: 10t"
	buildings.Properties["code"] = "100"
	hq.Properties["floors"] = int64(12)
	hq.Properties["note"] = ""

	assets.AddChild(vehicles)
	assets.AddChild(buildings)
	vehicles.AddChild(truck)
	vehicles.AddChild(van)

	b, err := book.NewBook("registry", assets, hq)
	if err != nil {
		t.Fatalf("failed to build book: %v", err)
	}
	return b
}

func assertCodecBook(t *testing.T, got *book.Book) {
	t.Helper()

	if len(got.Roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(got.Roots))
	}
	if got.Roots[0].ID != "assets" || got.Roots[1].ID != "hq" {
		t.Fatalf("roots out of order: %q, %q", got.Roots[0].ID, got.Roots[1].ID)
	}

	assets := got.Roots[0]
	if len(assets.Children) != 2 || assets.Children[0].ID != "vehicles" || assets.Children[1].ID != "buildings" {
		t.Fatalf("assets children out of order: %v", assets.Children)
	}
	vehicles := assets.Children[0]
	if len(vehicles.Children) != 2 || vehicles.Children[0].ID != "truck" || vehicles.Children[1].ID != "van" {
		t.Fatalf("vehicles children out of order: %v", vehicles.Children)
	}

	truck := vehicles.Children[0]
	if truck.Name != "Truck 42" {
		t.Fatalf("unexpected name %q", truck.Name)
	}
	if truck.Properties["amount"] != int64(500000) || truck.Properties["currency"] != "USD" {
		t.Fatalf("unexpected truck properties %v", truck.Properties)
	}
	van := vehicles.Children[1]
	if van.Properties["label"] != "heavy vehicle: 10t" {
		t.Fatalf("unexpected van properties %v", van.Properties)
	}
	// A numeric-looking string must come back as a string, not a number.
	if code, ok := assets.Children[1].Properties["code"].(string); !ok || code != "100" {
		t.Fatalf("unexpected buildings properties %v", assets.Children[1].Properties)
	}
	if got.Roots[1].Properties["floors"] != int64(12) {
		t.Fatalf("unexpected hq properties %v", got.Roots[1].Properties)
	}
	if note, ok := got.Roots[1].Properties["note"].(string); !ok || note != "" {
		t.Fatalf("unexpected hq properties %v", got.Roots[1].Properties)
	}
}

func TestBookGraphRoundTrip(t *testing.T) {
	src := codecTestBook(t)

	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}
	if len(g.Vertices()) != src.Len() {
		t.Fatalf("expected %d vertices, got %d", src.Len(), len(g.Vertices()))
	}

	got, err := ToBook(g, "registry")
	if err != nil {
		t.Fatalf("ToBook failed: %v", err)
	}
	assertCodecBook(t, got)
}

func TestFromBook_UnrepresentableProperty(t *testing.T) {
	n := book.NewNodeWithID("bad", "Bad")
	n.Properties["ch"] = make(chan int)
	b, err := book.NewBook("broken", n)
	if err != nil {
		t.Fatalf("failed to build book: %v", err)
	}

	if _, err := FromBook(b); err == nil {
		t.Fatal("expected error for unrepresentable property value")
	}
}

func TestToBook_EmptyGraph(t *testing.T) {
	b, err := ToBook(NewGraph(), "empty")
	if err != nil {
		t.Fatalf("ToBook failed: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected empty book, got %d nodes", b.Len())
	}
}

// rawGraph builds a graph from explicit vertices and edges, bypassing
// FromBook so malformed shapes can be constructed.
func rawGraph(t *testing.T, vertexIDs []string, edges [][2]string) *Graph {
	t.Helper()

	g := NewGraph()
	byID := make(map[string]*Vertex, len(vertexIDs))
	for _, id := range vertexIDs {
		v := g.NewNode().(*Vertex)
		v.BookID = id
		v.Name = id
		g.AddNode(v)
		byID[id] = v
	}
	for i, pair := range edges {
		e := g.NewEdge(byID[pair[0]], byID[pair[1]]).(*Edge)
		e.Order = i
		g.SetEdge(e)
	}
	return g
}

func TestToBook_AllCyclicFails(t *testing.T) {
	g := rawGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	if _, err := ToBook(g, "corrupt"); err == nil {
		t.Fatal("expected error for fully cyclic graph")
	}
}

func TestToBook_CycleAlongsideTreeFails(t *testing.T) {
	// The cycle has no zero in-degree vertex, so it yields no root; it
	// must fail the load instead of vanishing from the book.
	g := rawGraph(t,
		[]string{"root", "child", "a", "b"},
		[][2]string{{"root", "child"}, {"a", "b"}, {"b", "a"}},
	)
	if _, err := ToBook(g, "corrupt"); err == nil {
		t.Fatal("expected error for cyclic component alongside a healthy tree")
	}
}

func TestToBook_MultiParentFails(t *testing.T) {
	g := rawGraph(t,
		[]string{"r1", "r2", "shared"},
		[][2]string{{"r1", "shared"}, {"r2", "shared"}},
	)
	if _, err := ToBook(g, "corrupt"); err == nil {
		t.Fatal("expected error for vertex with two parents")
	}
}

func TestDOTRoundTrip(t *testing.T) {
	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}

	data, err := MarshalDOT(g, "registry")
	if err != nil {
		t.Fatalf("MarshalDOT failed: %v", err)
	}

	loaded, err := UnmarshalDOT(data)
	if err != nil {
		t.Fatalf("UnmarshalDOT failed: %v", err)
	}
	got, err := ToBook(loaded, "registry")
	if err != nil {
		t.Fatalf("ToBook failed: %v", err)
	}
	assertCodecBook(t, got)
}

func TestDOTFileRoundTrip(t *testing.T) {
	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}

	path := t.TempDir() + "/book.dot"
	if err := SaveDOT(g, "registry", path); err != nil {
		t.Fatalf("SaveDOT failed: %v", err)
	}

	loaded, err := LoadDOT(path)
	if err != nil {
		t.Fatalf("LoadDOT failed: %v", err)
	}
	got, err := ToBook(loaded, "registry")
	if err != nil {
		t.Fatalf("ToBook failed: %v", err)
	}
	assertCodecBook(t, got)
}
