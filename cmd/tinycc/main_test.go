package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.c")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture source: %v", err)
	}
	return path
}

func TestHandlerCompilesSuccessfully(t *testing.T) {
	input := writeSource(t, "int max(int a, int b) { if (a < b) { return b; } return a; }")

	status := Handler([]string{input}, nil)
	if status != 0 {
		t.Fatalf("Unexpected exit status code: expected 0 got: %d", status)
	}

	output, err := os.ReadFile(strings.TrimSuffix(input, ".c") + ".s")
	if err != nil {
		t.Fatalf("reading generated assembly: %v", err)
	}

	asm := string(output)
	if !strings.Contains(asm, ".globl\tmax\n") || !strings.Contains(asm, "max:\n") {
		t.Errorf("expected a max label in the generated assembly, got:\n%s", asm)
	}
}

func TestHandlerReportsSyntaxError(t *testing.T) {
	input := writeSource(t, "int f( { return 0; }")

	status := Handler([]string{input}, nil)
	if status == 0 {
		t.Fatalf("Unexpected exit status code: expected non-zero got: %d", status)
	}

	if _, err := os.Stat(strings.TrimSuffix(input, ".c") + ".s"); err == nil {
		t.Errorf("no assembly output should be produced for a syntax error")
	}
}

// TestHandlerReportsRegisterExhaustion uses a perfectly balanced 8-leaf
// expression tree (Sethi-Ullman rank 4), the same shape
// internal/regalloc's own exhaustion test uses, to drive Handler's
// register-allocation failure path end to end.
func TestHandlerReportsRegisterExhaustion(t *testing.T) {
	input := writeSource(t, `int f() {
		int a, b, c, d, e, g, h, i;
		return ((a + b) + (c + d)) + ((e + g) + (h + i));
	}`)

	status := Handler([]string{input}, nil)
	if status == 0 {
		t.Fatalf("Unexpected exit status code: expected non-zero got: %d", status)
	}

	if _, err := os.Stat(strings.TrimSuffix(input, ".c") + ".s"); err == nil {
		t.Errorf("no assembly output should be produced when register allocation fails")
	}
}

func TestHandlerReportsMissingInputFile(t *testing.T) {
	status := Handler([]string{filepath.Join(t.TempDir(), "does-not-exist.c")}, nil)
	if status == 0 {
		t.Fatalf("Unexpected exit status code: expected non-zero got: %d", status)
	}
}
