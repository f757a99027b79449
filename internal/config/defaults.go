// Package config provides shared configuration defaults for LeapBook.
// This package is decoupled from CLI concerns so library consumers and
// tests can use the same defaults the CLI applies.
package config

// Default configuration values.
const (
	// DefaultStateFile is where the graph store lives relative to the
	// project root.
	DefaultStateFile = ".leapbook/book.db"
	// DefaultOutput selects renderer auto-detection.
	DefaultOutput = "auto"

	// Embedding backend defaults.
	DefaultEmbeddingsProvider = "ollama"
	DefaultOllamaURL          = "http://localhost:11434/api/embeddings"
	DefaultOllamaModel        = "nomic-embed-text"
	DefaultOpenAIModel        = "text-embedding-3-small"

	// DefaultCollection is the vector collection the index/query commands
	// use when none is named.
	DefaultCollection = "book"
)
