// Package codegen walks a decorated, register-allocated function body and
// drives a backend.Target through it: the target-agnostic half of code
// generation, ported from cg.c's gen_stm_*/gen_exp_* family. Every target-
// specific instruction shape lives in internal/backend; this package only
// ever decides *which* primitive to call and in *what order*, never how to
// render it as text.
package codegen

import (
	"fmt"
	"io"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/backend"
	"tinycc.dev/compiler/internal/frame"
	"tinycc.dev/compiler/internal/symtab"
)

// Generator emits one translation unit's assembly to w, for one target.
type Generator struct {
	target      backend.Target
	frameTarget frame.Target
	table       *symtab.Table
	w           io.Writer

	labelSeq     int
	funcEndLabel string
}

// New returns a Generator that emits target's assembly dialect, laying out
// stack frames per frameTarget and resolving a function's committed scope
// through table.
func New(target backend.Target, frameTarget frame.Target, table *symtab.Table, w io.Writer) *Generator {
	return &Generator{target: target, frameTarget: frameTarget, table: table, w: w}
}

// Generate emits the whole program: the leading section directive, every
// function definition in source order, then the put_int runtime helper,
// the same three-step shape as gen_code.
func (g *Generator) Generate(prog *ast.Program) error {
	g.target.Header(g.w)
	for _, fn := range prog.Functions {
		if err := g.genFunc(fn); err != nil {
			return fmt.Errorf("error generating code for function %s: %w", fn.Name, err)
		}
	}
	g.target.PutInt(g.w)
	return nil
}

// genFunc is gen_func: assign this function's stack frame, emit its
// prologue (spilling register-passed parameters), walk its body, then emit
// its epilogue at the function's own end-label.
func (g *Generator) genFunc(fn *ast.Function) error {
	scope := g.table.Committed(fn.ID)
	layout := frame.Assign(g.frameTarget, scope)

	var params []*symtab.Symbol
	for _, s := range scope {
		if s.Kind == symtab.Parameter {
			params = append(params, s)
		}
	}

	g.funcEndLabel = "_END_" + fn.Name
	padded := g.target.FuncHeader(g.w, fn.Name, layout.FrameSize, params)
	if err := g.genStatement(fn.Body); err != nil {
		return err
	}
	g.target.FuncFooter(g.w, g.funcEndLabel, padded)
	return nil
}

func (g *Generator) newLabel() string {
	id := g.labelSeq
	g.labelSeq++
	return fmt.Sprintf(".L%d", id)
}

// ----------------------------------------------------------------------------
// Statements

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			if err := g.genStatement(inner); err != nil {
				return err
			}
		}
	case *ast.DeclStmt:
		// declaration alone has no code-generation effect
	case *ast.ExprStmt:
		return g.genExpr(s.Expr)
	case *ast.IfStmt:
		return g.genIfStmt(s)
	case *ast.WhileStmt:
		return g.genWhileStmt(s)
	case *ast.ForStmt:
		return g.genForStmt(s)
	case *ast.DoWhileStmt:
		return g.genDoWhileStmt(s)
	case *ast.ReturnStmt:
		return g.genReturnStmt(s)
	default:
		return fmt.Errorf("codegen: unhandled statement %T", stmt)
	}
	return nil
}

// genCondBranch evaluates cond and emits a branch to label taken when cond
// is false: gen_stm_rel, called right after gen_exp(cond) by every control
// statement regardless of whether cond is itself relational. A
// non-relational cond (a plain variable, an arithmetic expression, a call
// result) gets compared against zero by the Target itself.
func (g *Generator) genCondBranch(cond ast.Expression, label string) error {
	if err := g.genExpr(cond); err != nil {
		return err
	}
	op, isRel := relOp(cond)
	g.target.Rel(g.w, op, isRel, label, cond.Meta().Reg)
	return nil
}

func relOp(e ast.Expression) (ast.BinaryOp, bool) {
	if b, ok := e.(*ast.Binary); ok && b.Op.IsRelational() {
		return b.Op, true
	}
	return 0, false
}

func (g *Generator) genIfStmt(s *ast.IfStmt) error {
	lEnd := g.newLabel()
	lCmp := lEnd
	lElse := ""
	if s.Else != nil {
		lElse = g.newLabel()
		lCmp = lElse
	}

	if err := g.genCondBranch(s.Cond, lCmp); err != nil {
		return err
	}
	if err := g.genStatement(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		g.target.Jmp(g.w, lEnd)
		g.target.Label(g.w, lElse)
		if err := g.genStatement(s.Else); err != nil {
			return err
		}
	}
	g.target.Label(g.w, lEnd)
	return nil
}

func (g *Generator) genWhileStmt(s *ast.WhileStmt) error {
	lBegin, lExit := g.newLabel(), g.newLabel()

	g.target.Label(g.w, lBegin)
	if err := g.genCondBranch(s.Cond, lExit); err != nil {
		return err
	}
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	g.target.Jmp(g.w, lBegin)
	g.target.Label(g.w, lExit)
	return nil
}

// genForStmt is gen_stm_for. Unlike the original (whose parser always
// supplies all three clauses), Init/Cond/Step may each be nil here. An
// omitted Cond is treated as always-true (the conventional `for(;;)`
// reading) rather than dereferencing a clause that was never parsed.
func (g *Generator) genForStmt(s *ast.ForStmt) error {
	lBegin, lExit := g.newLabel(), g.newLabel()

	if err := g.genExpr(s.Init); err != nil {
		return err
	}
	g.target.Label(g.w, lBegin)
	if s.Cond != nil {
		if err := g.genCondBranch(s.Cond, lExit); err != nil {
			return err
		}
	}
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	if err := g.genExpr(s.Step); err != nil {
		return err
	}
	g.target.Jmp(g.w, lBegin)
	g.target.Label(g.w, lExit)
	return nil
}

func (g *Generator) genDoWhileStmt(s *ast.DoWhileStmt) error {
	lBegin, lExit := g.newLabel(), g.newLabel()

	g.target.Label(g.w, lBegin)
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	if err := g.genCondBranch(s.Cond, lExit); err != nil {
		return err
	}
	g.target.Jmp(g.w, lBegin)
	g.target.Label(g.w, lExit)
	return nil
}

// genReturnStmt is gen_stm_return. A bare `return;` skips RetAssign
// entirely rather than copying whatever happens to be in an uninitialized
// scratch register; see DESIGN.md for why this departs from the
// original's unconditional gen_insn_ret_asgn call.
func (g *Generator) genReturnStmt(s *ast.ReturnStmt) error {
	if s.Expr != nil {
		if err := g.genExpr(s.Expr); err != nil {
			return err
		}
		g.target.RetAssign(g.w, s.Expr.Meta().Reg)
	}
	g.target.Jmp(g.w, g.funcEndLabel)
	return nil
}

// ----------------------------------------------------------------------------
// Expressions

func (g *Generator) genExpr(e ast.Expression) error {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *ast.Assign:
		return g.genAssign(e)
	case *ast.Ident:
		g.target.LoadIdent(g.w, e.Meta().Reg, e.Symbol.Offset)
		return nil
	case *ast.IntLit:
		g.target.LoadConst(g.w, e.Meta().Reg, e.Value)
		return nil
	case *ast.Call:
		return g.genCall(e)
	case *ast.Unary:
		return g.genUnary(e)
	case *ast.Binary:
		return g.genBinary(e)
	default:
		return fmt.Errorf("codegen: unhandled expression %T", e)
	}
}

// genAssign is gen_exp_asgn: only the right-hand side is ever evaluated and
// stored; the assignment expression's own register is never read by
// anything (see DESIGN.md and internal/parser's grammar restriction that
// keeps this path from ever being exercised as a nested value).
func (g *Generator) genAssign(a *ast.Assign) error {
	if err := g.genExpr(a.Rhs); err != nil {
		return err
	}
	g.target.StoreLvar(g.w, a.Rhs.Meta().Reg, a.Lhs.Symbol.Offset)
	return nil
}

// genUnary is gen_exp_n2's AST_EXP_UNARY_PLUS/AST_EXP_UNARY_MINUS cases:
// unary plus passes its operand through untouched, unary minus negates in
// place (dst and src are always the same register here).
func (g *Generator) genUnary(u *ast.Unary) error {
	if err := g.genExpr(u.X); err != nil {
		return err
	}
	if u.Op == ast.UnaryMinus {
		g.target.Neg(g.w, u.Meta().Reg, u.Meta().Reg)
	}
	return nil
}

// genBinary is gen_exp_n2 for two-child nodes: it descends into whichever
// operand has the higher rank first (ties favor L), exactly mirroring
// regalloc's assignment order, then applies the operator with L's register
// as both destination and first source.
func (g *Generator) genBinary(b *ast.Binary) error {
	first, second := b.L, b.R
	if b.R.Meta().Rank > b.L.Meta().Rank {
		first, second = b.R, b.L
	}
	if err := g.genExpr(first); err != nil {
		return err
	}
	if err := g.genExpr(second); err != nil {
		return err
	}

	dst := b.Meta().Reg
	src := b.R.Meta().Reg
	switch b.Op {
	case ast.Add:
		g.target.Add(g.w, dst, dst, src)
	case ast.Sub:
		g.target.Sub(g.w, dst, dst, src)
	case ast.Mul:
		g.target.Mul(g.w, dst, dst, src)
	case ast.Div:
		return fmt.Errorf("division is not supported")
	default:
		return g.genRelational(b)
	}
	return nil
}

// genRelational is gen_exp_rel: compare the two operands, then, only when
// this comparison is not itself the direct condition of an if/while/for/
// do-while (ast.IsControlCondition), materialize its truth value as 0/1
// into its own register, since some later consumer needs an actual value
// rather than just the flags.
func (g *Generator) genRelational(b *ast.Binary) error {
	g.target.Cmp(g.w, b.L.Meta().Reg, b.R.Meta().Reg)
	if !ast.IsControlCondition(b.Meta().Parent) {
		g.target.CondSet(g.w, b.Meta().Reg, b.Op)
	}
	return nil
}

// genCall is gen_exp_call/gen_exp_call_param: save the scratch registers a
// call clobbers, evaluate each argument into its parameter slot in order,
// call, then restore. usedAsValue distinguishes a call whose result feeds a
// larger expression from one used purely for its side effect (see the
// x64/arm64 divergence documented on backend.Target.CallEpilogue).
func (g *Generator) genCall(call *ast.Call) error {
	_, isExprParent := call.Meta().Parent.(ast.Expression)

	reg := call.Meta().Reg
	sparams, padsize, framesize := g.target.CallPrologue(g.w, reg, len(call.Args))
	for i, arg := range call.Args {
		if err := g.genExpr(arg); err != nil {
			return err
		}
		g.target.CallSetParam(g.w, arg.Meta().Reg, i+1, sparams)
	}
	g.target.CallEpilogue(g.w, call.Callee, reg, isExprParent, padsize, framesize)
	return nil
}
