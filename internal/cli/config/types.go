// Package config provides configuration management for the LeapBook CLI:
// a koanf-backed load chain of defaults, the leapbook.yaml project file,
// LEAPBOOK_-prefixed environment variables, and command-line flags.
package config

// EmbeddingsConfig selects and parameterizes the embedding backend used by
// the similarity index.
type EmbeddingsConfig struct {
	// Provider is "ollama" or "openai"
	Provider string `koanf:"provider"`
	// Model is the embedding model name
	Model string `koanf:"model"`
	// URL overrides the backend endpoint (Ollama endpoint or OpenAI base URL)
	URL string `koanf:"url"`
	// APIKey authenticates against OpenAI; supports ${VAR} expansion
	APIKey string `koanf:"api_key"`
}

// Config holds all CLI configuration options.
type Config struct {
	// StatePath is the SQLite graph store location
	StatePath string `koanf:"state_path"`
	// Verbose enables debug logging
	Verbose bool `koanf:"verbose"`
	// OutputFormat selects the renderer mode (auto|text|markdown|json)
	OutputFormat string `koanf:"output"`
	// Embeddings configures the similarity-index backend
	Embeddings EmbeddingsConfig `koanf:"embeddings"`

	// ProjectRoot is the resolved project directory (not a config key)
	ProjectRoot string `koanf:"-"`
}
