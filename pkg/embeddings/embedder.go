// Package embeddings defines the text-to-vector contract used by the
// similarity index and provides Ollama and OpenAI implementations.
package embeddings

import "context"

// Embedder converts text into a vector representation. Calls are boundary
// I/O: potentially slow, and safe to retry since index writes are upserts.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
