// Package parser turns a tinycc source file into a decorated
// internal/ast.Program, registering every declaration into an
// internal/symtab.Table and resolving every identifier use against it
// along the way.
//
// The grammar itself is built with github.com/prataprc/goparsec: a tree of
// named And/OrdChoice/Kleene/Maybe combinators is compiled once at package
// init, then the Parser's handle* methods walk the resulting parse tree and
// turn it into ast nodes, the same combinator-then-FromAST shape used elsewhere in this
// module's ancestry for front ends built on this library.
package parser

import (
	"fmt"
	"io"
	"strconv"

	pc "github.com/prataprc/goparsec"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/diag"
	"tinycc.dev/compiler/internal/symtab"
)

// gram is the goparsec AST builder every combinator below registers
// against (named `gram`, not `ast`, since this package already imports
// tinycc.dev/compiler/internal/ast under that name).
var gram = pc.NewAST("tinycc", 100)

// ----------------------------------------------------------------------------
// Tokens

var (
	pIdent  = pc.Token(`[A-Za-z_][0-9A-Za-z_]*`, "IDENT")
	pIntLit = pc.Token(`[0-9]+`, "INT")

	pLParen = pc.Atom("(", "(")
	pRParen = pc.Atom(")", ")")
	pLBrace = pc.Atom("{", "{")
	pRBrace = pc.Atom("}", "}")
	pSemi   = pc.Atom(";", ";")
	pComma  = pc.Atom(",", ",")
	pAssign = pc.Atom("=", "=")

	pKwInt    = pc.Atom("int", "INT_KW")
	pKwIf     = pc.Atom("if", "IF")
	pKwElse   = pc.Atom("else", "ELSE")
	pKwWhile  = pc.Atom("while", "WHILE")
	pKwFor    = pc.Atom("for", "FOR")
	pKwDo     = pc.Atom("do", "DO")
	pKwReturn = pc.Atom("return", "RETURN")
)

// Operators are ordered longest-match-first, the same convention
// pkg/asm/parsing.go calls out explicitly for its D/A/M instruction
// mnemonics: a shorter prefix tried first would win before the scanner
// ever gets a chance at the longer token.
var (
	pEqOp  = gram.OrdChoice("eq_op", nil, pc.Atom("==", "=="), pc.Atom("!=", "!="))
	pRelOp = gram.OrdChoice("rel_op", nil, pc.Atom("<=", "<="), pc.Atom(">=", ">="), pc.Atom("<", "<"), pc.Atom(">", ">"))
	pAddOp = gram.OrdChoice("add_op", nil, pc.Atom("+", "+"), pc.Atom("-", "-"))
	pMulOp = gram.OrdChoice("mul_op", nil, pc.Atom("*", "*"), pc.Atom("/", "/"))
	pSign  = gram.OrdChoice("sign", nil, pc.Atom("+", "+"), pc.Atom("-", "-"))
)

// ----------------------------------------------------------------------------
// Expressions, precedence-climbing from assignment (lowest) to primary
// (highest). Assignment and unary are directly recursive, so each gets a
// package-level var plus a plain forwarding function: the function, not
// the var, is what the rest of the grammar closes over, which sidesteps
// the initialization-cycle Go would otherwise reject.

var pAssignExpr pc.Parser

func pAssignExprFwd(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pAssignExpr(s) }

var pUnary pc.Parser

func pUnaryFwd(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pUnary(s) }

// Call arguments and parenthesized sub-expressions bottom out at pEquality,
// not assignment: code generation only ever reads the stored value of an
// assignment off its right-hand side, never off the assignment's own
// register, so an assignment used as a nested value (a call argument, a
// parenthesized operand) would silently carry forward whatever register
// its identifier happened to occupy instead of the value it stored.
// Keeping assignment reachable only at statement-level positions
// (expression statements, return, loop/if conditions, and its own
// right-recursive chain for `a = b = 5`) sidesteps that trap.
var (
	pCallExpr  = gram.And("call", nil, pIdent, pLParen, gram.Kleene("args", nil, pEquality, pComma), pRParen)
	pParenExpr = gram.And("paren", nil, pLParen, pEquality, pRParen)
	pPrimary   = gram.OrdChoice("primary", nil, pCallExpr, pIdent, pIntLit, pParenExpr)

	pMultiplicative = gram.And("multiplicative", nil, pUnaryFwd,
		gram.Kleene("mul_rest", nil, gram.And("mul_term", nil, pMulOp, pUnaryFwd)))
	pAdditive = gram.And("additive", nil, pMultiplicative,
		gram.Kleene("add_rest", nil, gram.And("add_term", nil, pAddOp, pMultiplicative)))
	pRelational = gram.And("relational", nil, pAdditive,
		gram.Kleene("rel_rest", nil, gram.And("rel_term", nil, pRelOp, pAdditive)))
	pEquality = gram.And("equality", nil, pRelational,
		gram.Kleene("eq_rest", nil, gram.And("eq_term", nil, pEqOp, pRelational)))

	pAssignStmt = gram.And("assign", nil, pIdent, pAssign, pAssignExprFwd)
)

func init() {
	pUnary = gram.OrdChoice("unary", nil, gram.And("unary_op", nil, pSign, pUnaryFwd), pPrimary)
	pAssignExpr = gram.OrdChoice("assign_expr", nil, pAssignStmt, pEquality)
}

// ----------------------------------------------------------------------------
// Statements

var pStatement pc.Parser

func pStatementFwd(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pStatement(s) }

var (
	pDecl = gram.And("decl", nil, pKwInt, gram.Many("names", nil, pIdent, pComma), pSemi)

	pExprStmtExpr = gram.Maybe("stmt_expr_opt", nil, gram.And("stmt_expr", nil, pAssignExprFwd))
	pExprStmt     = gram.And("expr_stmt", nil, pExprStmtExpr, pSemi)

	pReturnExprOpt = gram.Maybe("return_expr_opt", nil, gram.And("return_expr", nil, pAssignExprFwd))
	pReturnStmt    = gram.And("return_stmt", nil, pKwReturn, pReturnExprOpt, pSemi)

	pElseOpt = gram.Maybe("else_opt", nil, gram.And("else_branch", nil, pKwElse, pStatementFwd))
	pIfStmt  = gram.And("if_stmt", nil, pKwIf, pLParen, pAssignExprFwd, pRParen, pStatementFwd, pElseOpt)

	pWhileStmt = gram.And("while_stmt", nil, pKwWhile, pLParen, pAssignExprFwd, pRParen, pStatementFwd)

	pForInitOpt = gram.Maybe("for_init_opt", nil, gram.And("for_init", nil, pAssignExprFwd))
	pForCondOpt = gram.Maybe("for_cond_opt", nil, gram.And("for_cond", nil, pAssignExprFwd))
	pForStepOpt = gram.Maybe("for_step_opt", nil, gram.And("for_step", nil, pAssignExprFwd))
	pForStmt    = gram.And("for_stmt", nil, pKwFor, pLParen, pForInitOpt, pSemi, pForCondOpt, pSemi, pForStepOpt, pRParen, pStatementFwd)

	pDoWhileStmt = gram.And("do_while_stmt", nil, pKwDo, pStatementFwd, pKwWhile, pLParen, pAssignExprFwd, pRParen, pSemi)

	pBlockItem = gram.OrdChoice("block_item", nil, pDecl, pStatementFwd)
	pCompound  = gram.And("compound", nil, pLBrace, gram.Kleene("block_items", nil, pBlockItem), pRBrace)
)

func init() {
	pStatement = gram.OrdChoice("statement", nil, pCompound, pIfStmt, pWhileStmt, pForStmt, pDoWhileStmt, pReturnStmt, pExprStmt)
}

// ----------------------------------------------------------------------------
// Top level

var (
	pParam   = gram.And("param", nil, pKwInt, pIdent)
	pParams  = gram.Kleene("params", nil, pParam, pComma)
	pFuncDef = gram.And("function_def", nil, pKwInt, pIdent, pLParen, pParams, pRParen, pCompound)
	pProgram = gram.ManyUntil("program", nil, pFuncDef, pc.End())
)

// ----------------------------------------------------------------------------
// Parser

// Parser turns source text into a Program, accumulating diagnostics into a
// Bag and declarations into a symtab.Table as it goes. A Parser is good
// for exactly one compilation unit.
type Parser struct {
	bag        *diag.Bag
	table      *symtab.Table
	nextFuncID int
}

// New returns a Parser ready to parse a single source file.
func New() *Parser {
	return &Parser{bag: &diag.Bag{}, table: symtab.New()}
}

// Bag returns the diagnostics accumulated so far.
func (p *Parser) Bag() *diag.Bag { return p.bag }

// Symbols returns the symbol table populated while parsing.
func (p *Parser) Symbols() *symtab.Table { return p.table }

// Parse reads r in full, parses it against the grammar and returns the
// resulting Program. A non-nil error means the input could not be parsed
// into a well-formed program at all (syntax-level failure, recorded in the
// Bag too); semantic problems (duplicate or undeclared names) never fail
// Parse outright, they only grow the Bag. Callers check Bag().Count()
// before handing the Program to code generation.
func (p *Parser) Parse(r io.Reader) (*ast.Program, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error handling source read: %w", err)
	}

	root, _ := gram.Parsewith(pProgram, pc.NewScanner(content))
	if root == nil || root.GetName() != "program" {
		p.bag.AddSyntax(0, "failed to parse a well-formed program from input")
		return nil, fmt.Errorf("error handling parse: input is not a well-formed program")
	}

	prog := &ast.Program{}
	for _, child := range root.GetChildren() {
		if child.GetName() != "function_def" {
			p.bag.AddSyntax(0, "unrecognized top-level construct %q", child.GetName())
			continue
		}
		fn, err := p.handleFunctionDef(child)
		if err != nil {
			return nil, fmt.Errorf("error handling function definition: %w", err)
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func (p *Parser) handleFunctionDef(node pc.Queryable) (*ast.Function, error) {
	children := node.GetChildren()
	if len(children) != 6 {
		return nil, fmt.Errorf("malformed function definition node (%d children)", len(children))
	}
	name := children[1].GetValue()
	p.table.Append(symtab.Function, name) // duplicates are not reported, matching the original compiler

	var params []*ast.Param
	for _, pnode := range children[3].GetChildren() {
		pchildren := pnode.GetChildren()
		if len(pchildren) != 2 {
			return nil, fmt.Errorf("malformed parameter node (%d children)", len(pchildren))
		}
		pname := pchildren[1].GetValue()
		sym, ok := p.table.Append(symtab.Parameter, pname)
		if !ok {
			p.bag.Addf(diag.Semantic, 0, "Duplicate argument declaration: %s", pname)
		}
		params = append(params, &ast.Param{Name: pname, Symbol: sym})
	}

	body, err := p.handleCompound(children[5])
	if err != nil {
		return nil, err
	}

	p.resolveStatement(body)

	p.nextFuncID++
	id := p.nextFuncID
	p.table.Commit(id)

	return &ast.Function{Name: name, Params: params, Body: body, ID: id}, nil
}

func (p *Parser) handleCompound(node pc.Queryable) (*ast.Block, error) {
	children := node.GetChildren()
	if len(children) != 3 {
		return nil, fmt.Errorf("malformed compound statement node (%d children)", len(children))
	}

	block := &ast.Block{}
	for _, item := range children[1].GetChildren() {
		var (
			stmt ast.Statement
			err  error
		)
		if item.GetName() == "decl" {
			stmt, err = p.handleDecl(item)
		} else {
			stmt, err = p.handleStatement(item)
		}
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func (p *Parser) handleDecl(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 3 {
		return nil, fmt.Errorf("malformed declaration node (%d children)", len(children))
	}

	decl := &ast.DeclStmt{}
	for _, nameNode := range children[1].GetChildren() {
		name := nameNode.GetValue()
		sym, ok := p.table.Append(symtab.AutoVariable, name)
		if !ok {
			p.bag.Addf(diag.Semantic, 0, "Duplicate variable declaration: %s", name)
		}
		decl.Symbols = append(decl.Symbols, sym)
	}
	return decl, nil
}

func (p *Parser) handleStatement(node pc.Queryable) (ast.Statement, error) {
	switch node.GetName() {
	case "compound":
		return p.handleCompound(node)
	case "if_stmt":
		return p.handleIfStmt(node)
	case "while_stmt":
		return p.handleWhileStmt(node)
	case "for_stmt":
		return p.handleForStmt(node)
	case "do_while_stmt":
		return p.handleDoWhileStmt(node)
	case "return_stmt":
		return p.handleReturnStmt(node)
	case "expr_stmt":
		return p.handleExprStmt(node)
	default:
		return nil, fmt.Errorf("unrecognized statement node %q", node.GetName())
	}
}

func (p *Parser) handleIfStmt(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 6 {
		return nil, fmt.Errorf("malformed if statement node (%d children)", len(children))
	}
	cond, err := p.handleExpr(children[2])
	if err != nil {
		return nil, err
	}
	then, err := p.handleStatement(children[4])
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if elseNode := children[5]; elseNode.GetName() == "else_branch" {
		elseChildren := elseNode.GetChildren()
		if len(elseChildren) != 2 {
			return nil, fmt.Errorf("malformed else branch node (%d children)", len(elseChildren))
		}
		elseStmt, err := p.handleStatement(elseChildren[1])
		if err != nil {
			return nil, err
		}
		stmt.Else = elseStmt
	}
	cond.Meta().Parent = stmt
	return stmt, nil
}

func (p *Parser) handleWhileStmt(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 5 {
		return nil, fmt.Errorf("malformed while statement node (%d children)", len(children))
	}
	cond, err := p.handleExpr(children[2])
	if err != nil {
		return nil, err
	}
	body, err := p.handleStatement(children[4])
	if err != nil {
		return nil, err
	}
	stmt := &ast.WhileStmt{Cond: cond, Body: body}
	cond.Meta().Parent = stmt
	return stmt, nil
}

func (p *Parser) handleForStmt(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 9 {
		return nil, fmt.Errorf("malformed for statement node (%d children)", len(children))
	}

	stmt := &ast.ForStmt{}
	if init := children[2]; init.GetName() == "for_init" {
		expr, err := p.handleExpr(init.GetChildren()[0])
		if err != nil {
			return nil, err
		}
		stmt.Init = expr
	}
	if cond := children[4]; cond.GetName() == "for_cond" {
		expr, err := p.handleExpr(cond.GetChildren()[0])
		if err != nil {
			return nil, err
		}
		stmt.Cond = expr
	}
	if step := children[6]; step.GetName() == "for_step" {
		expr, err := p.handleExpr(step.GetChildren()[0])
		if err != nil {
			return nil, err
		}
		stmt.Step = expr
	}
	body, err := p.handleStatement(children[8])
	if err != nil {
		return nil, err
	}
	stmt.Body = body

	// Parented uniformly to the loop statement, matching the original
	// compiler's act_for_stm: init/cond/step all point at the same
	// AST_STM_FOR node, so a bare relational expression used as init or
	// step (never seen in practice) skips materialization exactly like
	// the condition does.
	if stmt.Init != nil {
		stmt.Init.Meta().Parent = stmt
	}
	if stmt.Cond != nil {
		stmt.Cond.Meta().Parent = stmt
	}
	if stmt.Step != nil {
		stmt.Step.Meta().Parent = stmt
	}
	return stmt, nil
}

func (p *Parser) handleDoWhileStmt(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 7 {
		return nil, fmt.Errorf("malformed do-while statement node (%d children)", len(children))
	}
	body, err := p.handleStatement(children[1])
	if err != nil {
		return nil, err
	}
	cond, err := p.handleExpr(children[4])
	if err != nil {
		return nil, err
	}
	stmt := &ast.DoWhileStmt{Body: body, Cond: cond}
	cond.Meta().Parent = stmt
	return stmt, nil
}

func (p *Parser) handleReturnStmt(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 3 {
		return nil, fmt.Errorf("malformed return statement node (%d children)", len(children))
	}
	stmt := &ast.ReturnStmt{}
	if retExpr := children[1]; retExpr.GetName() == "return_expr" {
		expr, err := p.handleExpr(retExpr.GetChildren()[0])
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
		expr.Meta().Parent = stmt
	}
	return stmt, nil
}

func (p *Parser) handleExprStmt(node pc.Queryable) (ast.Statement, error) {
	children := node.GetChildren()
	if len(children) != 2 {
		return nil, fmt.Errorf("malformed expression statement node (%d children)", len(children))
	}
	stmt := &ast.ExprStmt{}
	if inner := children[0]; inner.GetName() == "stmt_expr" {
		expr, err := p.handleExpr(inner.GetChildren()[0])
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
		expr.Meta().Parent = stmt
	}
	return stmt, nil
}

// ----------------------------------------------------------------------------
// Expressions

func (p *Parser) handleExpr(node pc.Queryable) (ast.Expression, error) {
	switch node.GetName() {
	case "assign":
		return p.handleAssign(node)
	case "equality":
		return p.handleBinaryChain(node, "eq_rest")
	case "relational":
		return p.handleBinaryChain(node, "rel_rest")
	case "additive":
		return p.handleBinaryChain(node, "add_rest")
	case "multiplicative":
		return p.handleBinaryChain(node, "mul_rest")
	case "unary_op":
		return p.handleUnary(node)
	case "call":
		return p.handleCall(node)
	case "IDENT":
		return ast.NewIdent(node.GetValue(), 0), nil
	case "INT":
		return p.handleIntLit(node)
	case "paren":
		return p.handleExpr(node.GetChildren()[1])
	default:
		return nil, fmt.Errorf("unrecognized expression node %q", node.GetName())
	}
}

func (p *Parser) handleAssign(node pc.Queryable) (ast.Expression, error) {
	children := node.GetChildren()
	if len(children) != 3 {
		return nil, fmt.Errorf("malformed assignment node (%d children)", len(children))
	}
	lhs := ast.NewIdent(children[0].GetValue(), 0)
	rhs, err := p.handleExpr(children[2])
	if err != nil {
		return nil, err
	}
	a := ast.NewAssign(lhs, rhs, 0)
	lhs.Meta().Parent = a
	rhs.Meta().Parent = a
	return a, nil
}

// handleBinaryChain folds a (operand, Kleene(op operand)...) node into a
// left-associative chain of Binary expressions; restName is the Kleene
// child's node name ("eq_rest", "rel_rest", "add_rest" or "mul_rest").
func (p *Parser) handleBinaryChain(node pc.Queryable, restName string) (ast.Expression, error) {
	children := node.GetChildren()
	if len(children) != 2 {
		return nil, fmt.Errorf("malformed %q chain node (%d children)", node.GetName(), len(children))
	}

	left, err := p.handleExpr(children[0])
	if err != nil {
		return nil, err
	}

	for _, term := range children[1].GetChildren() {
		termChildren := term.GetChildren()
		if len(termChildren) != 2 {
			return nil, fmt.Errorf("malformed %q term node (%d children)", restName, len(termChildren))
		}
		op, err := binaryOpFor(termChildren[0].GetValue())
		if err != nil {
			return nil, err
		}
		right, err := p.handleExpr(termChildren[1])
		if err != nil {
			return nil, err
		}
		b := ast.NewBinary(op, left, right, 0)
		left.Meta().Parent = b
		right.Meta().Parent = b
		left = b
	}
	return left, nil
}

func binaryOpFor(token string) (ast.BinaryOp, error) {
	switch token {
	case "+":
		return ast.Add, nil
	case "-":
		return ast.Sub, nil
	case "*":
		return ast.Mul, nil
	case "/":
		return ast.Div, nil
	case "<":
		return ast.Lt, nil
	case ">":
		return ast.Gt, nil
	case "<=":
		return ast.Le, nil
	case ">=":
		return ast.Ge, nil
	case "==":
		return ast.Eq, nil
	case "!=":
		return ast.Ne, nil
	default:
		return 0, fmt.Errorf("unrecognized binary operator token %q", token)
	}
}

func (p *Parser) handleUnary(node pc.Queryable) (ast.Expression, error) {
	children := node.GetChildren()
	if len(children) != 2 {
		return nil, fmt.Errorf("malformed unary node (%d children)", len(children))
	}
	op := ast.UnaryPlus
	if children[0].GetValue() == "-" {
		op = ast.UnaryMinus
	}
	x, err := p.handleExpr(children[1])
	if err != nil {
		return nil, err
	}
	u := ast.NewUnary(op, x, 0)
	x.Meta().Parent = u
	return u, nil
}

func (p *Parser) handleCall(node pc.Queryable) (ast.Expression, error) {
	children := node.GetChildren()
	if len(children) != 4 {
		return nil, fmt.Errorf("malformed call node (%d children)", len(children))
	}
	callee := children[0].GetValue()

	var args []ast.Expression
	for _, argNode := range children[2].GetChildren() {
		arg, err := p.handleExpr(argNode)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	c := ast.NewCall(callee, args, 0)
	for _, arg := range args {
		arg.Meta().Parent = c
	}
	return c, nil
}

func (p *Parser) handleIntLit(node pc.Queryable) (ast.Expression, error) {
	n, err := strconv.ParseInt(node.GetValue(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("error handling integer literal %q: %w", node.GetValue(), err)
	}
	return ast.NewIntLit(int32(n), 0), nil
}

// ----------------------------------------------------------------------------
// Declaration checking: a single pass over the whole function (its params
// already registered, its declarations registered while the body was being
// built) resolves every identifier use against the function's scope, which
// is still the scope under construction (it is committed right after). This
// runs once over the complete function after every declaration has already
// been registered, so a variable declared after its first use within the
// same function still resolves.

func (p *Parser) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			p.resolveStatement(inner)
		}
	case *ast.DeclStmt:
		// nothing to resolve: declared names are not expressions
	case *ast.ExprStmt:
		if s.Expr != nil {
			p.resolveExpr(s.Expr)
		}
	case *ast.IfStmt:
		p.resolveExpr(s.Cond)
		p.resolveStatement(s.Then)
		if s.Else != nil {
			p.resolveStatement(s.Else)
		}
	case *ast.WhileStmt:
		p.resolveExpr(s.Cond)
		p.resolveStatement(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			p.resolveExpr(s.Init)
		}
		if s.Cond != nil {
			p.resolveExpr(s.Cond)
		}
		if s.Step != nil {
			p.resolveExpr(s.Step)
		}
		p.resolveStatement(s.Body)
	case *ast.DoWhileStmt:
		p.resolveStatement(s.Body)
		p.resolveExpr(s.Cond)
	case *ast.ReturnStmt:
		if s.Expr != nil {
			p.resolveExpr(s.Expr)
		}
	}
}

func (p *Parser) resolveExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Ident:
		sym := p.table.Lookup(0, symtab.VariableLookupKey, e.Name)
		if sym == nil {
			p.bag.Addf(diag.Semantic, 0, "Undeclared variable: %s", e.Name)
		}
		e.Symbol = sym
	case *ast.IntLit:
		// leaf, nothing to resolve
	case *ast.Unary:
		p.resolveExpr(e.X)
	case *ast.Binary:
		p.resolveExpr(e.L)
		p.resolveExpr(e.R)
	case *ast.Assign:
		p.resolveExpr(e.Lhs)
		p.resolveExpr(e.Rhs)
	case *ast.Call:
		// Callee is a function name, not a variable, so only the
		// arguments need resolving here.
		for _, arg := range e.Args {
			p.resolveExpr(arg)
		}
	}
}
