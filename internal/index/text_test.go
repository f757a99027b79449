package index

import (
	"testing"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

func TestTextRepresentation(t *testing.T) {
	n := book.NewNodeWithID("truck", "Truck 42")
	n.Properties["amount"] = 500000
	n.Properties["currency"] = "EUR"

	b, err := book.NewBook("registry", n)
	if err != nil {
		t.Fatalf("failed to build book: %v", err)
	}
	b.Globals["currency"] = "USD"
	b.Globals["region"] = "west"

	got := TextRepresentation(n, b)
	want := "name: Truck 42\n" +
		"amount: 500000\n" +
		"currency: EUR\n" +
		"region: west\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextRepresentation_Deterministic(t *testing.T) {
	n := book.NewNodeWithID("n", "Node")
	for _, k := range []string{"zeta", "alpha", "mid", "beta"} {
		n.Properties[k] = k
	}
	b, err := book.NewBook("registry", n)
	if err != nil {
		t.Fatalf("failed to build book: %v", err)
	}

	first := TextRepresentation(n, b)
	for i := 0; i < 10; i++ {
		if got := TextRepresentation(n, b); got != first {
			t.Fatalf("representation is not stable:\n%q\n%q", first, got)
		}
	}
}

func TestTextRepresentation_BareNode(t *testing.T) {
	n := book.NewNodeWithID("bare", "Bare")
	b, err := book.NewBook("registry", n)
	if err != nil {
		t.Fatalf("failed to build book: %v", err)
	}
	if got := TextRepresentation(n, b); got != "name: Bare\n" {
		t.Fatalf("got %q", got)
	}
}
