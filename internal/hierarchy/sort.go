package hierarchy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

// SortNodes stably sorts a sibling list in place by the resolved value of
// key (node-local then book-global). Compared values are coerced to numbers
// first; if either side does not coerce, both are compared as strings.
// Nodes for which the key does not resolve at all order after those where
// it does. Ties keep their original relative order.
func SortNodes(b *book.Book, siblings []*book.Node, key string, reverse bool) {
	sort.SliceStable(siblings, func(i, j int) bool {
		less := compareNodes(b, siblings[i], siblings[j], key)
		if reverse {
			return less > 0
		}
		return less < 0
	})
}

// compareNodes returns -1, 0, or 1 ordering a before b.
func compareNodes(bk *book.Book, a, b *book.Node, key string) int {
	av, aerr := bk.Resolve(a, key)
	bv, berr := bk.Resolve(b, key)

	// Unresolvable values sort last.
	switch {
	case aerr != nil && berr != nil:
		return 0
	case aerr != nil:
		return 1
	case berr != nil:
		return -1
	}

	if an, aok := coerce(av); aok {
		if bn, bok := coerce(bv); bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(av), fmt.Sprint(bv))
}

// coerce attempts numeric conversion of a property value.
func coerce(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
