package book

import "context"

// Executor runs a node's opaque script hook against the node. Implementations
// live outside the core (sandboxed runners, RPC bridges); the model only
// carries the script text.
type Executor interface {
	Execute(ctx context.Context, script string, node *Node) error
}

// Generator evaluates a node's prompt hook into generated text. Like
// Executor, implementations are injected by callers.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RunScript invokes ex on n's script hook. Nodes without a script are a no-op.
func RunScript(ctx context.Context, ex Executor, n *Node) error {
	if n.Script == "" {
		return nil
	}
	return ex.Execute(ctx, n.Script, n)
}

// GenerateFromPrompt invokes gen on n's prompt hook. Nodes without a prompt
// return an empty string.
func GenerateFromPrompt(ctx context.Context, gen Generator, n *Node) (string, error) {
	if n.Prompt == "" {
		return "", nil
	}
	return gen.Generate(ctx, n.Prompt)
}
