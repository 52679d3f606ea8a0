// ABOUTME: End-to-end CLI tests for ingest, documents, and stats
// ABOUTME: Runs against a temporary vector store directory
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestIngestAndListRoundTrip(t *testing.T) {
	t.Setenv("DOCUMIND_VECTOR_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	docPath := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(docPath, []byte("Gophers are small burrowing rodents."), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "ingest", docPath)
	if err != nil {
		t.Fatalf("ingest error = %v, output:\n%s", err, out)
	}
	if !strings.Contains(out, "notes.txt") || !strings.Contains(out, "1 chunks") {
		t.Errorf("ingest output = %q, want file name and chunk count", out)
	}

	out, err = runCLI(t, "documents", "list")
	if err != nil {
		t.Fatalf("documents list error = %v", err)
	}
	if !strings.Contains(out, "notes.txt") {
		t.Errorf("list output missing notes.txt:\n%s", out)
	}

	out, err = runCLI(t, "stats")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	if !strings.Contains(out, "Chunks: 1") {
		t.Errorf("stats output = %q, want 1 chunk", out)
	}

	out, err = runCLI(t, "documents", "delete", "notes.txt")
	if err != nil {
		t.Fatalf("documents delete error = %v, output:\n%s", err, out)
	}

	if _, err = runCLI(t, "documents", "delete", "notes.txt"); err == nil {
		t.Error("deleting an already-deleted document should error")
	}
}

func TestIngest_UnsupportedFile(t *testing.T) {
	t.Setenv("DOCUMIND_VECTOR_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	docPath := filepath.Join(t.TempDir(), "image.png")
	if err := os.WriteFile(docPath, []byte{0x89}, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "ingest", docPath)
	if err == nil {
		t.Errorf("ingest should fail for unsupported type, output:\n%s", out)
	}
}
