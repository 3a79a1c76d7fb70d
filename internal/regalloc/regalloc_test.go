package regalloc_test

import (
	"testing"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/regalloc"
	"tinycc.dev/compiler/internal/symtab"
)

func ident(name string) *ast.Ident {
	return ast.NewIdent(name, 1)
}

func exprStmt(e ast.Expression) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: e}
}

func fn(body ...ast.Statement) *ast.Function {
	return &ast.Function{Name: "f", Body: &ast.Block{Stmts: body}}
}

// TestSimpleLeafGetsLowestRegister checks that a bare identifier takes
// register 0, the lowest-numbered free slot in a fresh pool.
func TestSimpleLeafGetsLowestRegister(t *testing.T) {
	x := ident("x")
	if err := regalloc.Allocate(fn(exprStmt(x))); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if x.Meta().Rank != 1 {
		t.Errorf("rank = %d, want 1", x.Meta().Rank)
	}
	if x.Meta().Reg != 0 {
		t.Errorf("reg = %d, want 0", x.Meta().Reg)
	}
}

// TestHigherRankChildVisitedFirst checks that a deeper left subtree is
// assigned before a shallower right subtree, and that the parent inherits
// its left child's register.
func TestHigherRankChildVisitedFirst(t *testing.T) {
	// (a + b) * c : left has rank 2, right (c) has rank 1.
	left := ast.NewBinary(ast.Add, ident("a"), ident("b"), 1)
	c := ident("c")
	root := ast.NewBinary(ast.Mul, left, c, 1)

	if err := regalloc.Allocate(fn(exprStmt(root))); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if left.Meta().Rank != 2 || root.Meta().Rank != 3 {
		t.Errorf("ranks: left=%d root=%d, want 2 and 3", left.Meta().Rank, root.Meta().Rank)
	}
	if root.Meta().Reg != left.Meta().Reg {
		t.Errorf("root should inherit left child's register: root=%d left=%d", root.Meta().Reg, left.Meta().Reg)
	}
	// Left first: a=0, b=1, (a+b) keeps 0 and frees 1, so c then takes 1.
	// Had c been visited first it would have taken 0.
	if left.Meta().Reg != 0 || c.Meta().Reg != 1 {
		t.Errorf("regs: left=%d c=%d, want 0 and 1 (left subtree assigned first)", left.Meta().Reg, c.Meta().Reg)
	}
}

// TestCallArgsGetIndependentPools checks that each call argument is
// assigned against its own fresh register pool, so two arguments can
// legitimately receive the same register index.
func TestCallArgsGetIndependentPools(t *testing.T) {
	arg1 := ident("a")
	arg2 := ident("b")
	call := ast.NewCall("f", []ast.Expression{arg1, arg2}, 1)

	if err := regalloc.Allocate(fn(exprStmt(call))); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	// A root-level call never gets its own register assigned (matches
	// the original's assign_ast_call, which only walks arguments).
	if call.Meta().Reg != 0 {
		t.Errorf("root call reg = %d, want 0 (never assigned)", call.Meta().Reg)
	}
	if arg1.Meta().Reg != 0 || arg2.Meta().Reg != 0 {
		t.Errorf("each argument should win register 0 from its own fresh pool, got %d and %d", arg1.Meta().Reg, arg2.Meta().Reg)
	}
}

// TestRegisterExhaustionFails checks that a perfectly balanced 8-leaf
// expression tree (Sethi-Ullman rank 4) is rejected, since it genuinely
// needs one more register than NumRegisters provides.
func TestRegisterExhaustionFails(t *testing.T) {
	pair := func(l, r ast.Expression) ast.Expression { return ast.NewBinary(ast.Add, l, r, 1) }
	leaves := make([]ast.Expression, 8)
	for i := range leaves {
		leaves[i] = ident(string(rune('a' + i)))
	}
	level1 := []ast.Expression{
		pair(leaves[0], leaves[1]), pair(leaves[2], leaves[3]),
		pair(leaves[4], leaves[5]), pair(leaves[6], leaves[7]),
	}
	level2 := []ast.Expression{pair(level1[0], level1[1]), pair(level1[2], level1[3])}
	root := pair(level2[0], level2[1])

	err := regalloc.Allocate(fn(exprStmt(root)))
	if err == nil {
		t.Fatalf("expected register exhaustion error, got nil")
	}
}

// TestDeclStmtHasNoExpressions checks that a DeclStmt never reaches rank
// or assign (it carries no expressions to process).
func TestDeclStmtHasNoExpressions(t *testing.T) {
	decl := &ast.DeclStmt{Symbols: []*symtab.Symbol{{Name: "v", Kind: symtab.AutoVariable}}}
	if err := regalloc.Allocate(fn(decl)); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
}
