package graph

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/graph/encoding/dot"
)

// MarshalDOT serializes the graph to DOT interchange text.
func MarshalDOT(g *Graph, name string) ([]byte, error) {
	data, err := dot.Marshal(g, name, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return data, nil
}

// UnmarshalDOT parses DOT interchange text into a graph.
func UnmarshalDOT(data []byte) (*Graph, error) {
	g := NewGraph()
	if err := dot.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}
	return g, nil
}

// SaveDOT writes the graph to a DOT file as a single whole-file write.
func SaveDOT(g *Graph, name, path string) error {
	data, err := MarshalDOT(g, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadDOT reads a graph from a DOT file.
func LoadDOT(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return UnmarshalDOT(data)
}
