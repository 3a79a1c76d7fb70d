package backend_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/backend"
	"tinycc.dev/compiler/internal/symtab"
)

func TestX64Name(t *testing.T) {
	if backend.NewX64().Name() != backend.X64Name {
		t.Errorf("Name() = %q, want %q", backend.NewX64().Name(), backend.X64Name)
	}
}

// TestX64RelTable checks every relational operator emits its inverted jump,
// and that a non-relational condition falls back to a zero-compare.
func TestX64RelTable(t *testing.T) {
	x := backend.NewX64()
	cases := []struct {
		op   ast.BinaryOp
		want string
	}{
		{ast.Lt, "\tjge\tL1\n"},
		{ast.Gt, "\tjle\tL1\n"},
		{ast.Le, "\tjg\tL1\n"},
		{ast.Ge, "\tjl\tL1\n"},
		{ast.Eq, "\tjne\tL1\n"},
		{ast.Ne, "\tje\tL1\n"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		x.Rel(&buf, c.op, true, "L1", 0)
		if buf.String() != c.want {
			t.Errorf("Rel(%v) = %q, want %q", c.op, buf.String(), c.want)
		}
	}

	var buf bytes.Buffer
	x.Rel(&buf, ast.Add, false, "L1", 1)
	want := "\tcmpl\t$0,%r10d\n\tje\tL1\n"
	if buf.String() != want {
		t.Errorf("Rel(non-relational) = %q, want %q", buf.String(), want)
	}
}

// TestX64CallEpilogueUsesRegisterIdentity checks the copy is gated on
// reg != 0, not on usedAsValue: the original's divergent test from ARM64.
func TestX64CallEpilogueUsesRegisterIdentity(t *testing.T) {
	x := backend.NewX64()

	var buf bytes.Buffer
	x.CallEpilogue(&buf, "f", 0, true, 0, 12)
	if bytes.Contains(buf.Bytes(), []byte("movl\t%eax, %eax")) {
		t.Errorf("reg 0 should never copy into itself: %q", buf.String())
	}

	buf.Reset()
	x.CallEpilogue(&buf, "f", 1, false, 0, 12)
	if !bytes.Contains(buf.Bytes(), []byte("movl\t%eax, %r10d")) {
		t.Errorf("reg 1 should copy from %%eax regardless of usedAsValue: %q", buf.String())
	}
}

func TestX64CallPrologueArithmetic(t *testing.T) {
	x := backend.NewX64()
	var buf bytes.Buffer
	sparams, psize, fsize := x.CallPrologue(&buf, 0, 8)
	if sparams != 2 {
		t.Errorf("sparams = %d, want 2", sparams)
	}
	if psize != 16 {
		t.Errorf("psize = %d, want 16", psize)
	}
	if fsize != 32 {
		// pad = 4-(2*2+3)%4 = 4-3 = 1; pad*=4 -> 4; fsize = 4+16+12 = 32
		t.Errorf("fsize = %d, want 32", fsize)
	}
}

func TestX64FuncHeaderSnapshot(t *testing.T) {
	x := backend.NewX64()
	params := []*symtab.Symbol{
		{Name: "a", Kind: symtab.Parameter, ParamOrdinal: 1, Offset: -4},
		{Name: "b", Kind: symtab.Parameter, ParamOrdinal: 2, Offset: -8},
	}
	var buf bytes.Buffer
	x.FuncHeader(&buf, "f", 8, params)
	snaps.MatchSnapshot(t, "x64_func_header", buf.String())
}

func TestX64PutIntSnapshot(t *testing.T) {
	x := backend.NewX64()
	var buf bytes.Buffer
	x.PutInt(&buf)
	snaps.MatchSnapshot(t, "x64_put_int", buf.String())
}
