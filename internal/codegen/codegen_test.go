package codegen_test

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/backend"
	"tinycc.dev/compiler/internal/codegen"
	"tinycc.dev/compiler/internal/frame"
	"tinycc.dev/compiler/internal/regalloc"
	"tinycc.dev/compiler/internal/symtab"
)

// buildMaxFunc builds `int max(int a, int b) { if (a < b) { return b; }
// return a; }` against table, with every Meta().Parent wired exactly as
// internal/parser would: a relational condition directly under its
// IfStmt, so genRelational never materializes it as a 0/1 value.
func buildMaxFunc(table *symtab.Table) *ast.Function {
	aSym, _ := table.Append(symtab.Parameter, "a")
	bSym, _ := table.Append(symtab.Parameter, "b")
	table.Commit(1)

	a := ast.NewIdent("a", 1)
	a.Symbol = aSym
	b := ast.NewIdent("b", 1)
	b.Symbol = bSym
	cond := ast.NewBinary(ast.Lt, a, b, 1)
	a.Meta().Parent = cond
	b.Meta().Parent = cond

	bRet := ast.NewIdent("b", 1)
	bRet.Symbol = bSym
	thenRet := &ast.ReturnStmt{Expr: bRet}
	bRet.Meta().Parent = thenRet
	then := &ast.Block{Stmts: []ast.Statement{thenRet}}

	ifStmt := &ast.IfStmt{Cond: cond, Then: then}
	cond.Meta().Parent = ifStmt

	aRet := ast.NewIdent("a", 1)
	aRet.Symbol = aSym
	finalRet := &ast.ReturnStmt{Expr: aRet}
	aRet.Meta().Parent = finalRet

	body := &ast.Block{Stmts: []ast.Statement{ifStmt, finalRet}}
	return &ast.Function{Name: "max", ID: 1, Body: body}
}

func generate(t *testing.T, target backend.Target, frameTarget frame.Target) string {
	t.Helper()
	table := symtab.New()
	fn := buildMaxFunc(table)

	if err := regalloc.Allocate(fn); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	var buf bytes.Buffer
	gen := codegen.New(target, frameTarget, table, &buf)
	if err := gen.Generate(&ast.Program{Functions: []*ast.Function{fn}}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return buf.String()
}

func TestGenerateMaxX64Snapshot(t *testing.T) {
	out := generate(t, backend.NewX64(), frame.X64)
	snaps.MatchSnapshot(t, "codegen_max_x64", out)
}

func TestGenerateMaxARM64Snapshot(t *testing.T) {
	out := generate(t, backend.NewARM64(), frame.ARM64)
	snaps.MatchSnapshot(t, "codegen_max_arm64", out)
}

// TestRelationalConditionSkipsCondSet checks that a relational expression
// used directly as an if/while/for/do-while condition never gets a CondSet
// emitted: only the comparison and the inverted branch.
func TestRelationalConditionSkipsCondSet(t *testing.T) {
	out := generate(t, backend.NewX64(), frame.X64)
	if bytes.Contains([]byte(out), []byte("setl")) || bytes.Contains([]byte(out), []byte("movzbl")) {
		t.Errorf("relational condition should not materialize a 0/1 value: %s", out)
	}
	if !bytes.Contains([]byte(out), []byte("cmpl")) {
		t.Errorf("expected a cmpl instruction in %s", out)
	}
}

// TestRelationalValueGetsCondSet checks that the same comparison, used as
// an ordinary expression value rather than a control condition, does get
// materialized.
func TestRelationalValueGetsCondSet(t *testing.T) {
	table := symtab.New()
	aSym, _ := table.Append(symtab.Parameter, "a")
	bSym, _ := table.Append(symtab.Parameter, "b")
	table.Commit(1)

	a := ast.NewIdent("a", 1)
	a.Symbol = aSym
	b := ast.NewIdent("b", 1)
	b.Symbol = bSym
	cmp := ast.NewBinary(ast.Lt, a, b, 1)
	a.Meta().Parent = cmp
	b.Meta().Parent = cmp

	ret := &ast.ReturnStmt{Expr: cmp}
	cmp.Meta().Parent = ret

	body := &ast.Block{Stmts: []ast.Statement{ret}}
	fn := &ast.Function{Name: "lt", ID: 1, Body: body}

	if err := regalloc.Allocate(fn); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	var buf bytes.Buffer
	gen := codegen.New(backend.NewX64(), frame.X64, table, &buf)
	if err := gen.Generate(&ast.Program{Functions: []*ast.Function{fn}}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("setl")) {
		t.Errorf("relational value should materialize via setl/movzbl: %s", buf.String())
	}
}

// TestDivisionRejected checks that the Non-goal on integer division is
// enforced at code-generation time, not silently miscompiled.
func TestDivisionRejected(t *testing.T) {
	table := symtab.New()
	aSym, _ := table.Append(symtab.Parameter, "a")
	bSym, _ := table.Append(symtab.Parameter, "b")
	table.Commit(1)

	a := ast.NewIdent("a", 1)
	a.Symbol = aSym
	b := ast.NewIdent("b", 1)
	b.Symbol = bSym
	div := ast.NewBinary(ast.Div, a, b, 1)
	ret := &ast.ReturnStmt{Expr: div}
	div.Meta().Parent = ret

	body := &ast.Block{Stmts: []ast.Statement{ret}}
	fn := &ast.Function{Name: "divf", ID: 1, Body: body}

	if err := regalloc.Allocate(fn); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	var buf bytes.Buffer
	gen := codegen.New(backend.NewX64(), frame.X64, table, &buf)
	if err := gen.Generate(&ast.Program{Functions: []*ast.Function{fn}}); err == nil {
		t.Fatalf("expected an error for integer division, got nil")
	}
}
