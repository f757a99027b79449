// Package index provides embedding-backed similarity search over book
// content: a deterministic text projection per node, named vector
// collections with upsert semantics, and cosine top-k queries.
package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

// TextRepresentation builds the canonical text blob embedded for a node:
// the name line first, then one "key: value" line per resolved property in
// sorted key order. Resolution follows the book's precedence, so a local
// value shadows a global one and unshadowed globals are included. The
// output is deterministic for a given node and book state.
func TextRepresentation(n *book.Node, b *book.Book) string {
	keys := make(map[string]struct{}, len(n.Properties)+len(b.Globals))
	for k := range b.Globals {
		keys[k] = struct{}{}
	}
	for k := range n.Properties {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var sb strings.Builder
	fmt.Fprintf(&sb, "name: %s\n", n.Name)
	for _, k := range sorted {
		v, err := b.Resolve(n, k)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "%s: %v\n", k, v)
	}
	return sb.String()
}
