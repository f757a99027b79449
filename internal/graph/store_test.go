package graph

import (
	"testing"

	"github.com/leapstack-labs/leapbook/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(testutil.NewTestLogger(t))
	if err := s.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}

	if err := s.SaveGraph(g); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.LoadGraph()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got, err := ToBook(loaded, "registry")
	if err != nil {
		t.Fatalf("ToBook failed: %v", err)
	}
	assertCodecBook(t, got)
}

func TestStore_SaveIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.SaveGraph(g); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	if n := countRows(t, s, "graph_nodes"); n != src.Len() {
		t.Fatalf("expected %d vertex rows, got %d", src.Len(), n)
	}
	// One edge per containment link: 5 non-root nodes minus hq root = 4.
	if n := countRows(t, s, "graph_edges"); n != 4 {
		t.Fatalf("expected 4 edge rows, got %d", n)
	}
}

func TestStore_SaveRemovesStaleRows(t *testing.T) {
	s := newTestStore(t)
	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}
	if err := s.SaveGraph(g); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Shrink the book and save again: removed nodes must leave no rows.
	vehicles, err := src.FindNode("vehicles")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if _, err := vehicles.RemoveChild("van"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	smaller, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}
	if err := s.SaveGraph(smaller); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if n := countRows(t, s, "graph_nodes"); n != src.Len() {
		t.Fatalf("expected %d vertex rows after shrink, got %d", src.Len(), n)
	}
	loaded, err := s.LoadGraph()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v := loaded.VertexByBookID("van"); v != nil {
		t.Fatal("removed node survived the save")
	}
}

func TestStore_SaveEmptyGraphClears(t *testing.T) {
	s := newTestStore(t)
	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}
	if err := s.SaveGraph(g); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.SaveGraph(NewGraph()); err != nil {
		t.Fatalf("empty save failed: %v", err)
	}
	if n := countRows(t, s, "graph_nodes"); n != 0 {
		t.Fatalf("expected no vertex rows, got %d", n)
	}
	if n := countRows(t, s, "graph_edges"); n != 0 {
		t.Fatalf("expected no edge rows, got %d", n)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newTestStore(t)
	g, err := s.LoadGraph()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(g.Vertices()) != 0 {
		t.Fatal("expected empty graph from fresh store")
	}
}

func TestStore_UnopenedFails(t *testing.T) {
	s := NewStore(nil)
	if err := s.SaveGraph(NewGraph()); err == nil {
		t.Fatal("expected error saving through unopened store")
	}
	if _, err := s.LoadGraph(); err == nil {
		t.Fatal("expected error loading through unopened store")
	}
}

func TestStore_FileBacked(t *testing.T) {
	path := t.TempDir() + "/book.db"

	s := NewStore(testutil.NewTestLogger(t))
	if err := s.Open(path); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	src := codecTestBook(t)
	g, err := FromBook(src)
	if err != nil {
		t.Fatalf("FromBook failed: %v", err)
	}
	if err := s.SaveGraph(g); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Reopen and verify the contents survived the connection.
	s2 := NewStore(testutil.NewTestLogger(t))
	if err := s2.Open(path); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s2.Close()
	if err := s2.Migrate(); err != nil {
		t.Fatalf("failed to migrate reopened store: %v", err)
	}

	loaded, err := s2.LoadGraph()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got, err := ToBook(loaded, "registry")
	if err != nil {
		t.Fatalf("ToBook failed: %v", err)
	}
	assertCodecBook(t, got)
}
