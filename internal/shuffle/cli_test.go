package shuffle

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr.String(), "Usage: shuffle <input_file>") {
		t.Fatalf("expected usage text, got %q", stderr.String())
	}
}

func TestRunMissingInputFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.json")
	code := Run([]string{path}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "not found") {
		t.Fatalf("expected not found message, got %q", stderr.String())
	}
}

func TestRunInvalidSeed(t *testing.T) {
	in := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(in, []byte(sampleQuiz), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := Run([]string{in, "", "abc"}, &stdout, &stderr); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quiz.json")
	out := filepath.Join(dir, "shuffled.json")
	if err := os.WriteFile(in, []byte(sampleQuiz), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := Run([]string{in, out, "42"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Shuffled 4 questions") || !strings.Contains(stdout.String(), "Saved to: "+out) {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestRunStructureErrorExitsNonZero(t *testing.T) {
	in := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(in, []byte(`[{"question":"q"}]`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := Run([]string{in}, &stdout, &stderr); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "missing options") {
		t.Fatalf("expected structure message, got %q", stderr.String())
	}
}
