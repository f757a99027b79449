package index

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	blas "gonum.org/v1/gonum/blas/gonum"

	"github.com/leapstack-labs/leapbook/pkg/book"
	"github.com/leapstack-labs/leapbook/pkg/embeddings"
)

// embedConcurrency bounds in-flight embedding requests per AddBook call.
const embedConcurrency = 8

var blasEngine = blas.Implementation{}

// entry is one stored vector with its source text, keyed by node id.
type entry struct {
	vector []float32
	text   string
}

// collection is a named set of node vectors.
type collection struct {
	entries map[string]entry
}

// Result is a single similarity hit.
type Result struct {
	// NodeID is the stored node's id
	NodeID string
	// Text is the stored text representation
	Text string
	// Score is cosine similarity in [-1, 1], higher is closer
	Score float64
}

// Store manages named vector collections over an Embedder. It is an
// explicit, caller-owned resource: create it with NewStore, drop it when
// done. All vectors live in memory.
type Store struct {
	embedder embeddings.Embedder
	logger   *slog.Logger

	mu          sync.RWMutex
	collections map[string]*collection
}

// NewStore creates an empty collection store. A nil logger discards output.
func NewStore(embedder embeddings.Embedder, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		embedder:    embedder,
		logger:      logger,
		collections: make(map[string]*collection),
	}
}

// CreateCollection creates a named vector collection. Creating a name that
// already exists is an error; collections are never silently replaced.
func (s *Store) CreateCollection(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return &CollectionExistsError{Name: name}
	}
	s.collections[name] = &collection{entries: make(map[string]entry)}
	return nil
}

// DropCollection removes a collection and its vectors.
func (s *Store) DropCollection(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; !ok {
		return &CollectionNotFoundError{Name: name}
	}
	delete(s.collections, name)
	return nil
}

// AddBook embeds the text representation of every node in b and upserts
// the vectors into the named collection keyed by node id. Re-adding a node
// replaces its prior vector, so retries after a partial failure never
// duplicate state. Embedding requests run concurrently but bounded.
func (s *Store) AddBook(ctx context.Context, name string, b *book.Book) error {
	s.mu.RLock()
	col, ok := s.collections[name]
	s.mu.RUnlock()
	if !ok {
		return &CollectionNotFoundError{Name: name}
	}

	var nodes []*book.Node
	b.Walk(func(n *book.Node) bool {
		nodes = append(nodes, n)
		return true
	})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for _, n := range nodes {
		g.Go(func() error {
			text := TextRepresentation(n, b)
			vec, err := s.embedder.Embed(ctx, text)
			if err != nil {
				return fmt.Errorf("failed to embed node %q: %w", n.ID, err)
			}
			s.mu.Lock()
			col.entries[n.ID] = entry{vector: vec, text: text}
			s.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Debug("indexed book", "collection", name, "book", b.Name, "nodes", len(nodes))
	return nil
}

// Query embeds queryText and returns the n nearest stored representations
// by cosine similarity, best first.
func (s *Store) Query(ctx context.Context, name, queryText string, n int) ([]Result, error) {
	s.mu.RLock()
	col, ok := s.collections[name]
	s.mu.RUnlock()
	if !ok {
		return nil, &CollectionNotFoundError{Name: name}
	}

	queryVec, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	s.mu.RLock()
	results := make([]Result, 0, len(col.entries))
	for id, e := range col.entries {
		score, err := cosineSimilarity(queryVec, e.vector)
		if err != nil {
			s.mu.RUnlock()
			return nil, fmt.Errorf("node %q: %w", id, err)
		}
		results = append(results, Result{NodeID: id, Text: e.text, Score: score})
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].NodeID < results[j].NodeID
	})
	if n > 0 && len(results) > n {
		results = results[:n]
	}
	return results, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors
// using BLAS dot products.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty vectors")
	}
	dot := blasEngine.Sdot(len(a), a, 1, b, 1)
	na := blasEngine.Snrm2(len(a), a, 1)
	nb := blasEngine.Snrm2(len(b), b, 1)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return float64(dot) / (float64(na) * float64(nb)), nil
}
