// Package commands implements the LeapBook CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapbook/internal/cli/config"
	"github.com/leapstack-labs/leapbook/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapbook/internal/config"
	"github.com/leapstack-labs/leapbook/internal/graph"
	"github.com/leapstack-labs/leapbook/pkg/book"
	"github.com/leapstack-labs/leapbook/pkg/embeddings"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *graph.Store
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an opened, migrated graph
// store. Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cc.Cfg, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	cc.Store = store

	cleanup := func() {
		_ = store.Close()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without opening the
// graph store. Useful for commands that don't touch persisted state.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to environment
// variables when LoadConfig has not run (e.g. direct command invocation in
// tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		StatePath:    getEnvOrDefault("LEAPBOOK_STATE_PATH", intconfig.DefaultStateFile),
		Verbose:      os.Getenv("LEAPBOOK_VERBOSE") == "true",
		OutputFormat: os.Getenv("LEAPBOOK_OUTPUT"),
		Embeddings: config.EmbeddingsConfig{
			Provider: getEnvOrDefault("LEAPBOOK_EMBEDDINGS_PROVIDER", intconfig.DefaultEmbeddingsProvider),
			Model:    os.Getenv("LEAPBOOK_EMBEDDINGS_MODEL"),
			URL:      os.Getenv("LEAPBOOK_EMBEDDINGS_URL"),
			APIKey:   os.Getenv("LEAPBOOK_EMBEDDINGS_API_KEY"),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens and migrates the graph store at the configured path.
func openStore(cfg *config.Config, logger *slog.Logger) (*graph.Store, error) {
	if cfg.StatePath != ":memory:" {
		stateDir := filepath.Dir(cfg.StatePath)
		if stateDir != "." && stateDir != "" {
			if err := os.MkdirAll(stateDir, 0o750); err != nil {
				return nil, err
			}
		}
	}

	store := graph.NewStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// newEmbedder builds the configured embedding backend.
func newEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	e := cfg.Embeddings
	switch e.Provider {
	case "ollama", "":
		url := e.URL
		if url == "" {
			url = intconfig.DefaultOllamaURL
		}
		model := e.Model
		if model == "" {
			model = intconfig.DefaultOllamaModel
		}
		return embeddings.NewOllamaEmbedder(url, model, 0), nil
	case "openai":
		if e.APIKey == "" {
			return nil, fmt.Errorf("embeddings provider %q requires an api key", e.Provider)
		}
		model := e.Model
		if model == "" {
			model = intconfig.DefaultOpenAIModel
		}
		return embeddings.NewOpenAIEmbedder(e.APIKey, model, e.URL), nil
	default:
		return nil, fmt.Errorf("unknown embeddings provider %q", e.Provider)
	}
}

// loadBook loads the stored graph and reconstructs it as a book.
func loadBook(store *graph.Store, name string) (*book.Book, error) {
	g, err := store.LoadGraph()
	if err != nil {
		return nil, err
	}
	b, err := graph.ToBook(g, name)
	if err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("no book has been imported yet (run: leapbook import)")
	}
	return b, nil
}
