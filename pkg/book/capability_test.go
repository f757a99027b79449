package book

import (
	"context"
	"testing"
)

type recordingExecutor struct {
	scripts []string
}

func (r *recordingExecutor) Execute(_ context.Context, script string, n *Node) error {
	r.scripts = append(r.scripts, script)
	n.SetFlag("executed", true)
	return nil
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

func TestRunScript(t *testing.T) {
	ex := &recordingExecutor{}
	ctx := context.Background()

	bare := NewNode("bare")
	if err := RunScript(ctx, ex, bare); err != nil {
		t.Fatalf("scriptless node should be a no-op: %v", err)
	}
	if len(ex.scripts) != 0 {
		t.Fatal("executor was invoked for a scriptless node")
	}

	scripted := NewNode("scripted")
	scripted.Script = "recalculate()"
	if err := RunScript(ctx, ex, scripted); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(ex.scripts) != 1 || ex.scripts[0] != "recalculate()" {
		t.Fatalf("unexpected executor calls: %v", ex.scripts)
	}
	if !scripted.Flag("executed") {
		t.Fatal("executor should have seen the node")
	}
}

func TestGenerateFromPrompt(t *testing.T) {
	ctx := context.Background()

	bare := NewNode("bare")
	out, err := GenerateFromPrompt(ctx, echoGenerator{}, bare)
	if err != nil || out != "" {
		t.Fatalf("promptless node should yield empty output, got %q (err %v)", out, err)
	}

	prompted := NewNode("prompted")
	prompted.Prompt = "summarize"
	out, err = GenerateFromPrompt(ctx, echoGenerator{}, prompted)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if out != "echo: summarize" {
		t.Fatalf("unexpected output %q", out)
	}
}
