package diag_test

import (
	"strings"
	"testing"

	"tinycc.dev/compiler/internal/diag"
)

func TestAddfFormatsMessage(t *testing.T) {
	var bag diag.Bag
	bag.Addf(diag.Semantic, 7, "undeclared variable %q", "x")

	if bag.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", bag.Count())
	}
	got := bag.Entries()[0].Error()
	want := `line 7: undeclared variable "x"`
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAddfWithoutLineOmitsPrefix(t *testing.T) {
	var bag diag.Bag
	bag.Addf(diag.Fatal, 0, "out of memory")

	got := bag.Entries()[0].Error()
	if got != "out of memory" {
		t.Errorf("Error() = %q, want %q", got, "out of memory")
	}
}

// TestAddSyntaxNumbersOnlySyntaxDiagnostics checks that the 1-based ordinal
// in "[error N] line L: ..." counts only Syntax-kind entries, skipping any
// Semantic diagnostics interleaved ahead of it.
func TestAddSyntaxNumbersOnlySyntaxDiagnostics(t *testing.T) {
	var bag diag.Bag
	bag.AddSyntax(3, "unexpected token %q", "}")
	bag.Addf(diag.Semantic, 4, "duplicate variable declaration")
	bag.AddSyntax(5, "missing semicolon")

	strs := bag.Strings()
	if !strings.HasPrefix(strs[0], "[error 1] line 3: ") {
		t.Errorf("first syntax message = %q, want prefix %q", strs[0], "[error 1] line 3: ")
	}
	if !strings.HasPrefix(strs[2], "[error 2] line 5: ") {
		t.Errorf("second syntax message = %q, want prefix %q", strs[2], "[error 2] line 5: ")
	}
}

func TestKindString(t *testing.T) {
	cases := map[diag.Kind]string{
		diag.Syntax:   "syntax",
		diag.Semantic: "semantic",
		diag.Fatal:    "fatal",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
