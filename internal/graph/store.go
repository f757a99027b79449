package graph

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Store persists a graph in an embedded SQLite database using two record
// collections: one row per vertex and one row per containment edge. Rows
// are keyed by vertex id, so individual nodes can be appended or replaced
// without rewriting the whole file, and re-saving the same graph is
// idempotent.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewStore creates an unopened store. A nil logger discards log output.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGraph writes the graph. Vertices and edges are upserted by key and
// rows no longer present in the graph are removed, so saving the same
// graph twice leaves exactly one row per vertex and per edge. The write is
// transactional: a failure leaves the previous contents intact.
func (s *Store) SaveGraph(g *Graph) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	vertices := g.Vertices()
	s.logger.Debug("saving graph", "path", s.path, "vertices", len(vertices))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(vertices))
	for pos, v := range vertices {
		// Vertex properties are stored pre-encoded, so the column is
		// assembled from raw fragments into one JSON object per vertex.
		raw := make(map[string]json.RawMessage, len(v.Props))
		for k, encoded := range v.Props {
			raw[k] = json.RawMessage(encoded)
		}
		props, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("vertex %q: %w", v.BookID, err)
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO graph_nodes (id, name, properties, position) VALUES (?, ?, ?, ?)`,
			v.BookID, v.Name, string(props), pos,
		); err != nil {
			return fmt.Errorf("failed to save vertex %q: %w", v.BookID, err)
		}
		ids = append(ids, v.BookID)
	}

	if err := deleteStale(tx, ids); err != nil {
		return err
	}

	// Edges are few enough to rewrite wholesale within the transaction.
	if _, err := tx.Exec(`DELETE FROM graph_edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	for _, v := range vertices {
		it := g.From(v.ID())
		for it.Next() {
			child := it.Node().(*Vertex)
			e := g.Edge(v.ID(), child.ID()).(*Edge)
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO graph_edges (parent_id, child_id, position) VALUES (?, ?, ?)`,
				v.BookID, child.BookID, e.Order,
			); err != nil {
				return fmt.Errorf("failed to save edge %q -> %q: %w", v.BookID, child.BookID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit graph save: %w", err)
	}
	return nil
}

// deleteStale removes vertex rows whose ids are not in keep.
func deleteStale(tx *sql.Tx, keep []string) error {
	if len(keep) == 0 {
		if _, err := tx.Exec(`DELETE FROM graph_nodes`); err != nil {
			return fmt.Errorf("failed to clear vertices: %w", err)
		}
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",")
	args := make([]any, len(keep))
	for i, id := range keep {
		args[i] = id
	}
	if _, err := tx.Exec(
		`DELETE FROM graph_nodes WHERE id NOT IN (`+placeholders+`)`, args...,
	); err != nil {
		return fmt.Errorf("failed to remove stale vertices: %w", err)
	}
	return nil
}

// LoadGraph reads the stored graph. Vertices are recreated in their saved
// positions so the caller sees the same ordering that was saved.
func (s *Store) LoadGraph() (*Graph, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	g := NewGraph()
	byBookID := make(map[string]*Vertex)

	rows, err := s.db.Query(`SELECT id, name, properties FROM graph_nodes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vertices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, props string
		if err := rows.Scan(&id, &name, &props); err != nil {
			return nil, fmt.Errorf("failed to scan vertex: %w", err)
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(props), &raw); err != nil {
			return nil, fmt.Errorf("vertex %q: properties column is not an object: %w", id, err)
		}

		v := g.NewNode().(*Vertex)
		v.BookID = id
		v.Name = name
		for k, fragment := range raw {
			v.Props[k] = string(fragment)
		}
		g.AddNode(v)
		byBookID[id] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vertices: %w", err)
	}

	edgeRows, err := s.db.Query(`SELECT parent_id, child_id, position FROM graph_edges`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var parentID, childID string
		var position int
		if err := edgeRows.Scan(&parentID, &childID, &position); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		parent, ok := byBookID[parentID]
		if !ok {
			return nil, fmt.Errorf("edge references unknown parent %q", parentID)
		}
		child, ok := byBookID[childID]
		if !ok {
			return nil, fmt.Errorf("edge references unknown child %q", childID)
		}
		e := g.NewEdge(parent, child).(*Edge)
		e.Order = position
		g.SetEdge(e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	s.logger.Debug("loaded graph", "path", s.path, "vertices", len(byBookID))
	return g, nil
}
