package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/colign/pkg/chunk"
	"github.com/matzehuels/colign/pkg/options"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

// run executes the root command with the given args.
func run(t *testing.T, args ...string) error {
	t.Helper()
	root := newTestCLI().RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeTestDoc(t *testing.T, aligned bool) string {
	t.Helper()
	col := 3
	if aligned {
		col = 8
	}
	d := chunk.NewDocument()
	d.Add(&chunk.Token{OrigLine: 1, Column: col, Len: 1, Text: "=", Kind: chunk.KindAssign})
	d.Add(&chunk.Token{OrigLine: 2, Column: 8, Len: 1, Text: "=", Kind: chunk.KindAssign})

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := chunk.WriteDocumentFile(d, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandStructure(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"align", "check", "options", "cache", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestAlignCommandWritesOutput(t *testing.T) {
	in := writeTestDoc(t, false)
	out := filepath.Join(t.TempDir(), "out.json")

	if err := run(t, "align", in, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("align: %v", err)
	}

	doc, err := chunk.ReadDocumentFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := doc.Line(1)[0].Column; got != 8 {
		t.Errorf("aligned column = %d, want 8", got)
	}
}

func TestAlignCommandTextFormat(t *testing.T) {
	in := writeTestDoc(t, false)
	out := filepath.Join(t.TempDir(), "out.txt")

	if err := run(t, "align", in, "-o", out, "--format", "text", "--no-cache"); err != nil {
		t.Fatalf("align: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// Text output places tokens at their columns, no JSON envelope.
	if !strings.Contains(string(data), "=") || strings.Contains(string(data), "\"tokens\"") {
		t.Errorf("unexpected text output: %q", data)
	}
}

func TestAlignCommandRejectsBadFormat(t *testing.T) {
	in := writeTestDoc(t, false)
	err := run(t, "align", in, "--format", "yaml", "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "format") {
		t.Errorf("err = %v, want format error", err)
	}
}

func TestAlignCommandMissingFile(t *testing.T) {
	if err := run(t, "align", filepath.Join(t.TempDir(), "nope.json"), "--no-cache"); err == nil {
		t.Error("expected error for missing document")
	}
}

func TestCheckCommandFailsWhenMisaligned(t *testing.T) {
	in := writeTestDoc(t, false)
	err := run(t, "check", in)
	if err == nil {
		t.Fatal("check must fail for a misaligned document")
	}
	if !strings.Contains(err.Error(), "out of alignment") {
		t.Errorf("err = %v, want alignment failure", err)
	}
}

func TestCheckCommandPassesWhenAligned(t *testing.T) {
	in := writeTestDoc(t, true)
	if err := run(t, "check", in); err != nil {
		t.Errorf("check on aligned document: %v", err)
	}
}

func TestOptionsInitRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "colign.toml")
	if err := run(t, "options", "init", "-o", out); err != nil {
		t.Fatalf("options init: %v", err)
	}

	opts, err := options.Load(out)
	if err != nil {
		t.Fatalf("generated file does not parse: %v", err)
	}
	if opts.Assign.Span != options.Default().Assign.Span {
		t.Errorf("generated defaults differ: %+v", opts.Assign)
	}

	// Second init without --force refuses to overwrite.
	if err := run(t, "options", "init", "-o", out); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
	if err := run(t, "options", "init", "-o", out, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestLoadOptionsExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.toml")
	data := []byte("[assign]\nspan = 4\nthresh = 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := loadOptions(path)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if opts.Assign.Span != 4 || opts.Assign.Thresh != 2 {
		t.Errorf("assign = %+v, want span 4 thresh 2", opts.Assign)
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := loadOptions("")
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if opts.Assign.Span != options.Default().Assign.Span {
		t.Errorf("expected built-in defaults, got %+v", opts.Assign)
	}
}
