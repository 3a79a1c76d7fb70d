// Package regalloc implements a two-pass Sethi-Ullman register allocator:
// a ranking pass that labels every expression node with the minimum
// register count a perfect allocation would need below it, and an
// assignment pass that uses those ranks to decide, at every binary node,
// which child to materialize first so the 3-register scratch pool never
// runs dry before it has to. Both passes are a direct port of cg.c's
// ranking_ast_exp/assign_ast_exp/assign_ast_exp_body/assign_ast_call.
package regalloc

import (
	"fmt"

	"tinycc.dev/compiler/internal/ast"
)

// NumRegisters is the size of the scratch-register pool both target back
// ends expose (MAX_REG_NUM in the original).
const NumRegisters = 3

// Allocate runs both passes over fn's body, stamping Rank and Reg into
// every expression's Meta in place. It returns an error only when an
// expression's rank genuinely cannot be satisfied by NumRegisters scratch
// registers, the allocator's one unrecoverable condition.
func Allocate(fn *ast.Function) error {
	rankStatement(fn.Body)
	return assignStatement(fn.Body)
}

// ----------------------------------------------------------------------------
// Pass 1: ranking

func rankStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			rankStatement(inner)
		}
	case *ast.DeclStmt:
		// no expressions
	case *ast.ExprStmt:
		if s.Expr != nil {
			rank(s.Expr)
		}
	case *ast.IfStmt:
		rank(s.Cond)
		rankStatement(s.Then)
		if s.Else != nil {
			rankStatement(s.Else)
		}
	case *ast.WhileStmt:
		rank(s.Cond)
		rankStatement(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			rank(s.Init)
		}
		if s.Cond != nil {
			rank(s.Cond)
		}
		if s.Step != nil {
			rank(s.Step)
		}
		rankStatement(s.Body)
	case *ast.DoWhileStmt:
		rankStatement(s.Body)
		rank(s.Cond)
	case *ast.ReturnStmt:
		if s.Expr != nil {
			rank(s.Expr)
		}
	}
}

// rank is ranking_ast_exp: a call's arguments are ranked independently (and
// do not feed the call's own rank, which is always 1, mirroring how a call
// node has neither child ranked in the original); every other node's rank
// is one more than the larger of its children's ranks, 1 at a leaf.
func rank(e ast.Expression) int {
	left, right := operands(e)

	if call, ok := e.(*ast.Call); ok {
		for _, arg := range call.Args {
			rank(arg)
		}
	}

	r0, r1 := 0, 0
	if left != nil {
		r0 = rank(left)
	}
	if right != nil {
		r1 = rank(right)
	}

	maxr := r0
	if r1 > maxr {
		maxr = r1
	}
	e.Meta().Rank = maxr + 1
	return e.Meta().Rank
}

// operands returns e's up-to-two direct child expressions, in the same
// child[0]/child[1] positions the original AST_Node used. It returns nil
// for a leaf (Ident, IntLit) or a Call, whose only children are its
// independently ranked/assigned argument list.
func operands(e ast.Expression) (left, right ast.Expression) {
	switch e := e.(type) {
	case *ast.Unary:
		return e.X, nil
	case *ast.Binary:
		return e.L, e.R
	case *ast.Assign:
		return e.Lhs, e.Rhs
	default:
		return nil, nil
	}
}

// ----------------------------------------------------------------------------
// Pass 2: assignment

func assignStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			if err := assignStatement(inner); err != nil {
				return err
			}
		}
	case *ast.DeclStmt:
		// no expressions
	case *ast.ExprStmt:
		if s.Expr != nil {
			return assignRoot(s.Expr)
		}
	case *ast.IfStmt:
		if err := assignRoot(s.Cond); err != nil {
			return err
		}
		if err := assignStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return assignStatement(s.Else)
		}
	case *ast.WhileStmt:
		if err := assignRoot(s.Cond); err != nil {
			return err
		}
		return assignStatement(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			if err := assignRoot(s.Init); err != nil {
				return err
			}
		}
		if s.Cond != nil {
			if err := assignRoot(s.Cond); err != nil {
				return err
			}
		}
		if s.Step != nil {
			if err := assignRoot(s.Step); err != nil {
				return err
			}
		}
		return assignStatement(s.Body)
	case *ast.DoWhileStmt:
		if err := assignStatement(s.Body); err != nil {
			return err
		}
		return assignRoot(s.Cond)
	case *ast.ReturnStmt:
		if s.Expr != nil {
			return assignRoot(s.Expr)
		}
	}
	return nil
}

// assignRoot is assign_ast_exp: a call gets its arguments each assigned
// against their own fresh register pool (assign_ast_call), since every
// register is free again by the time a call returns; anything else
// descends with a single fresh pool shared across the whole tree.
func assignRoot(e ast.Expression) error {
	if call, ok := e.(*ast.Call); ok {
		return assignCallArgs(call)
	}
	var pool [NumRegisters]bool
	return assignBody(e, &pool)
}

func assignCallArgs(call *ast.Call) error {
	for _, arg := range call.Args {
		if err := assignRoot(arg); err != nil {
			return err
		}
	}
	return nil
}

// assignBody is assign_ast_exp_body. A leaf (no children) takes the
// lowest-numbered free register in pool. A node with children descends
// into whichever child has the higher rank first (ties favor the left
// child, matching the original's `r0 >= r1` test), then the other; it
// inherits its own register from child[0] and releases child[1]'s register
// once both sides are materialized.
//
// A Call encountered here (as an ordinary operand of a larger expression,
// not the root of its own statement) is treated as a leaf for the purpose
// of allocating its own result register, since it has no child[0]/child[1],
// but its arguments are still walked with their own fresh pools, unlike
// the original, which leaves a nested call's arguments entirely
// unassigned. See DESIGN.md for why that gap isn't reproduced here.
func assignBody(e ast.Expression, pool *[NumRegisters]bool) error {
	left, right := operands(e)

	r0, r1 := 0, 0
	if left != nil {
		r0 = left.Meta().Rank
	}
	if right != nil {
		r1 = right.Meta().Rank
	}

	if r0 == 0 && r1 == 0 {
		reg, err := firstFree(pool)
		if err != nil {
			return fmt.Errorf("error handling register allocation for %T: %w", e, err)
		}
		e.Meta().Reg = reg
		pool[reg] = true

		if call, ok := e.(*ast.Call); ok {
			if err := assignCallArgs(call); err != nil {
				return err
			}
		}
		return nil
	}

	first, second := left, right
	if r1 > r0 {
		first, second = right, left
	}
	if first != nil {
		if err := assignBody(first, pool); err != nil {
			return err
		}
	}
	if second != nil {
		if err := assignBody(second, pool); err != nil {
			return err
		}
	}
	if left != nil {
		e.Meta().Reg = left.Meta().Reg
	}
	if right != nil {
		pool[right.Meta().Reg] = false
	}
	return nil
}

func firstFree(pool *[NumRegisters]bool) (int, error) {
	for i, used := range pool {
		if !used {
			return i, nil
		}
	}
	return 0, fmt.Errorf("number of registers is not sufficient")
}
