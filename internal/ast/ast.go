// Package ast defines the decorated abstract syntax tree produced by
// internal/parser and consumed by internal/frame, internal/regalloc and
// internal/codegen.
//
// Each construct gets its own Go type, so dispatch is an ordinary type
// switch rather than a runtime default branch over a shared kind tag.
// Every expression node still carries the mutable Reg/Rank decorations
// the register allocator stamps in place, via the embedded Meta.
package ast

import "tinycc.dev/compiler/internal/symtab"

// Program is the whole translation unit: one Function per top-level
// definition, in source order.
type Program struct {
	Functions []*Function
}

// Function is a top-level definition: a name, its formal parameters and a
// compound-statement body. ID is the function id assigned when its scope
// is committed (see symtab.Table.Commit) and is what cmd/tinycc and
// codegen use to look the function's symbols back up.
type Function struct {
	Name   string
	Line   int
	Params []*Param
	Body   *Block
	ID     int
}

// Param is one formal parameter declaration; Symbol is the entry registered
// for it in the function's scope when the parameter is parsed (nil when the
// name duplicates an earlier parameter).
type Param struct {
	Name   string
	Line   int
	Symbol *symtab.Symbol
}

// ----------------------------------------------------------------------------
// Statements

// Statement is implemented by every statement-level construct. It carries
// no shared mutable state (unlike Expression), so it stays a plain marker
// interface.
type Statement interface{ isStatement() }

// Block is a compound statement: an ordered list of statements executed in
// sequence. A function body and every braced `{ ... }` are a Block.
type Block struct {
	Line  int
	Stmts []Statement
}

// DeclStmt declares one or more auto variables (`int a, b;`); it has no
// code-generation effect of its own but keeps the resolved Symbols around
// for the AST dump.
type DeclStmt struct {
	Line    int
	Symbols []*symtab.Symbol
}

// ExprStmt evaluates an expression purely for side effect (an assignment or
// a bare call) and discards its value.
type ExprStmt struct {
	Line int
	Expr Expression // nil for the empty statement `;`
}

// IfStmt is `if (Cond) Then [else Else]`; Else is nil when there is no else
// branch.
type IfStmt struct {
	Line int
	Cond Expression
	Then Statement
	Else Statement
}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Line int
	Cond Expression
	Body Statement
}

// ForStmt is `for (Init; Cond; Step) Body`; any of Init, Cond, Step may be
// nil when the corresponding clause was omitted.
type ForStmt struct {
	Line             int
	Init, Cond, Step Expression
	Body             Statement
}

// DoWhileStmt is `do Body while (Cond);`.
type DoWhileStmt struct {
	Line int
	Body Statement
	Cond Expression
}

// ReturnStmt is `return [Expr];`; Expr is nil for a bare `return;`.
type ReturnStmt struct {
	Line int
	Expr Expression
}

func (*Block) isStatement()       {}
func (*DeclStmt) isStatement()    {}
func (*ExprStmt) isStatement()    {}
func (*IfStmt) isStatement()      {}
func (*WhileStmt) isStatement()   {}
func (*ForStmt) isStatement()     {}
func (*DoWhileStmt) isStatement() {}
func (*ReturnStmt) isStatement()  {}

// ----------------------------------------------------------------------------
// Expressions

// Meta holds the fields the register allocator and code generator stamp
// onto every expression node in place: the line it was parsed on, its
// Sethi-Ullman Rank (pass 1) and its assigned scratch-register index
// (pass 2). Parent is set by the parser to whatever immediately contains
// this expression: either the enclosing Statement (for an if/while/for/
// do-while condition, a return value, an expression statement) or the
// enclosing Expression (for an operand of a Binary/Unary/Assign/Call). This
// lets the code generator tell "am I the direct condition of a control
// statement" from "am I a sub-expression that must materialize" without a
// separate traversal stack.
type Meta struct {
	Line   int
	Rank   int
	Reg    int
	Parent any
}

// IsControlCondition reports whether parent is one of the four statement
// kinds whose Cond field a relational Expression can be the direct child
// of: the case that lets the code generator consume it as a branch instead
// of materializing a 0/1 value.
func IsControlCondition(parent any) bool {
	switch parent.(type) {
	case *IfStmt, *WhileStmt, *ForStmt, *DoWhileStmt:
		return true
	default:
		return false
	}
}

// Expression is implemented by every expression-level construct. Meta
// returns the mutable decoration block so callers (regalloc, codegen) can
// read/write Rank, Reg and Parent without a type switch of their own.
type Expression interface {
	isExpression()
	Meta() *Meta
}

// Ident reads (or, as the left-hand side of an Assign, writes) a variable.
// Symbol is resolved by the declaration checker; it stays nil when the name
// is undeclared. A call's callee is the plain Callee string on Call, not an
// Ident, so it is never looked up as a variable.
type Ident struct {
	meta   Meta
	Name   string
	Symbol *symtab.Symbol
}

// IntLit is an integer-literal leaf.
type IntLit struct {
	meta  Meta
	Value int32
}

// UnaryOp enumerates the unary operators the grammar allows.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

func (op UnaryOp) String() string {
	if op == UnaryMinus {
		return "-"
	}
	return "+"
}

// Unary applies UnaryPlus ("no-op, the value passes through unchanged") or
// UnaryMinus (arithmetic negation) to X.
type Unary struct {
	meta Meta
	Op   UnaryOp
	X    Expression
}

// BinaryOp enumerates every two-operand operator: additive, multiplicative
// (Div is parsed but rejected at code-gen time), relational and equality.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
)

// IsRelational reports whether op is one of the six comparison operators
// that can be consumed as a branch instead of materialized as a 0/1 value.
func (op BinaryOp) IsRelational() bool {
	switch op {
	case Lt, Gt, Le, Ge, Eq, Ne:
		return true
	default:
		return false
	}
}

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	case Eq:
		return "=="
	case Ne:
		return "!="
	default:
		return "?"
	}
}

// Binary combines L and R with Op.
type Binary struct {
	meta Meta
	Op   BinaryOp
	L, R Expression
}

// Assign is the right-associative assignment expression `Lhs = Rhs`; the
// grammar requires Lhs to already be an identifier.
type Assign struct {
	meta Meta
	Lhs  *Ident
	Rhs  Expression
}

// Call is `Callee(Args...)`; Args is ranked and allocated independently
// from the rest of the tree.
type Call struct {
	meta   Meta
	Callee string
	Args   []Expression
}

func (e *Ident) isExpression()  {}
func (e *IntLit) isExpression() {}
func (e *Unary) isExpression()  {}
func (e *Binary) isExpression() {}
func (e *Assign) isExpression() {}
func (e *Call) isExpression()   {}

func (e *Ident) Meta() *Meta  { return &e.meta }
func (e *IntLit) Meta() *Meta { return &e.meta }
func (e *Unary) Meta() *Meta  { return &e.meta }
func (e *Binary) Meta() *Meta { return &e.meta }
func (e *Assign) Meta() *Meta { return &e.meta }
func (e *Call) Meta() *Meta   { return &e.meta }

// ----------------------------------------------------------------------------
// Constructors
//
// Centralizing construction here (rather than having the parser populate
// struct literals ad hoc) is what lets every Expression start with a
// well-formed, zeroed Meta: the rank/register fields the allocator will
// stamp in later, and a Parent the parser fills in once the enclosing
// construct is known.

// NewIdent builds an identifier leaf. Symbol binding happens later, when
// the declaration checker resolves the name against the scope.
func NewIdent(name string, line int) *Ident {
	return &Ident{meta: Meta{Line: line}, Name: name}
}

// NewIntLit builds an integer-literal leaf.
func NewIntLit(value int32, line int) *IntLit {
	return &IntLit{meta: Meta{Line: line}, Value: value}
}

// NewUnary builds a unary expression and has no side effect on x beyond
// what the caller already did; parent-linking is the caller's
// responsibility once the enclosing statement exists.
func NewUnary(op UnaryOp, x Expression, line int) *Unary {
	return &Unary{meta: Meta{Line: line}, Op: op, X: x}
}

// NewBinary builds a binary expression combining l and r with op.
func NewBinary(op BinaryOp, l, r Expression, line int) *Binary {
	return &Binary{meta: Meta{Line: line}, Op: op, L: l, R: r}
}

// NewAssign builds an assignment expression; lhs must already be an
// *Ident. The parser enforces this at the grammar level by only ever
// producing an Ident on the left of `=`.
func NewAssign(lhs *Ident, rhs Expression, line int) *Assign {
	return &Assign{meta: Meta{Line: line}, Lhs: lhs, Rhs: rhs}
}

// NewCall builds a call expression; args is a copy of the caller's slice
// header (ownership transfers, but the backing array is the caller's).
func NewCall(callee string, args []Expression, line int) *Call {
	return &Call{meta: Meta{Line: line}, Callee: callee, Args: args}
}
