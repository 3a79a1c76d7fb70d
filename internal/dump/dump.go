// Package dump renders a parsed program's AST and committed symbol tables
// as plain text, the way the original compiler unconditionally prints both
// to stderr right after parsing, before code generation ever runs. It is
// never gated behind a flag.
package dump

import (
	"fmt"
	"io"
	"strings"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/symtab"
)

// Program writes one AST trace followed by one symbol-table trace per
// function in prog, in source order.
func Program(w io.Writer, prog *ast.Program, table *symtab.Table) {
	for _, fn := range prog.Functions {
		dumpFunc(w, fn, table)
	}
}

func dumpFunc(w io.Writer, fn *ast.Function, table *symtab.Table) {
	fmt.Fprintf(w, "function %s\n", fn.Name)
	for _, p := range fn.Params {
		fmt.Fprintf(w, "  param %s\n", p.Name)
	}
	dumpStatement(w, fn.Body, 1)

	fmt.Fprintf(w, "symtab %s\n", fn.Name)
	for _, s := range table.Committed(fn.ID) {
		fmt.Fprintf(w, "  %s %s offset=%d param=%d\n", s.Kind, s.Name, s.Offset, s.ParamOrdinal)
	}
}

func dumpStatement(w io.Writer, s ast.Statement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := s.(type) {
	case *ast.Block:
		fmt.Fprintf(w, "%sblock\n", indent)
		for _, inner := range s.Stmts {
			dumpStatement(w, inner, depth+1)
		}
	case *ast.DeclStmt:
		names := make([]string, len(s.Symbols))
		for i, sym := range s.Symbols {
			names[i] = sym.Name
		}
		fmt.Fprintf(w, "%sdecl %s\n", indent, strings.Join(names, ", "))
	case *ast.ExprStmt:
		fmt.Fprintf(w, "%sexpr_stmt\n", indent)
		dumpExpr(w, s.Expr, depth+1)
	case *ast.IfStmt:
		fmt.Fprintf(w, "%sif\n", indent)
		dumpExpr(w, s.Cond, depth+1)
		dumpStatement(w, s.Then, depth+1)
		if s.Else != nil {
			dumpStatement(w, s.Else, depth+1)
		}
	case *ast.WhileStmt:
		fmt.Fprintf(w, "%swhile\n", indent)
		dumpExpr(w, s.Cond, depth+1)
		dumpStatement(w, s.Body, depth+1)
	case *ast.ForStmt:
		fmt.Fprintf(w, "%sfor\n", indent)
		dumpExpr(w, s.Init, depth+1)
		dumpExpr(w, s.Cond, depth+1)
		dumpExpr(w, s.Step, depth+1)
		dumpStatement(w, s.Body, depth+1)
	case *ast.DoWhileStmt:
		fmt.Fprintf(w, "%sdo_while\n", indent)
		dumpStatement(w, s.Body, depth+1)
		dumpExpr(w, s.Cond, depth+1)
	case *ast.ReturnStmt:
		fmt.Fprintf(w, "%sreturn\n", indent)
		dumpExpr(w, s.Expr, depth+1)
	}
}

func dumpExpr(w io.Writer, e ast.Expression, depth int) {
	if e == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch e := e.(type) {
	case *ast.Ident:
		fmt.Fprintf(w, "%sident %s\n", indent, e.Name)
	case *ast.IntLit:
		fmt.Fprintf(w, "%sconst %d\n", indent, e.Value)
	case *ast.Unary:
		fmt.Fprintf(w, "%sunary %s\n", indent, e.Op)
		dumpExpr(w, e.X, depth+1)
	case *ast.Binary:
		fmt.Fprintf(w, "%sbinary %s\n", indent, e.Op)
		dumpExpr(w, e.L, depth+1)
		dumpExpr(w, e.R, depth+1)
	case *ast.Assign:
		fmt.Fprintf(w, "%sassign\n", indent)
		dumpExpr(w, e.Lhs, depth+1)
		dumpExpr(w, e.Rhs, depth+1)
	case *ast.Call:
		fmt.Fprintf(w, "%scall %s\n", indent, e.Callee)
		for _, arg := range e.Args {
			dumpExpr(w, arg, depth+1)
		}
	}
}
