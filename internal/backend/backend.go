// Package backend emits gas-syntax assembly text for one of two targets.
// Every method here corresponds 1:1 to a single gen_insn_*/gen_call_*/
// gen_func_* function in the two original back ends: x86-64's and ARM64's
// instruction shapes differ enough (two-operand vs three-operand ALU ops,
// register-relative loads, wide-immediate splitting, the asymmetric
// call-result-copy test) that sharing one emitter would just reintroduce
// the switches this split is meant to avoid. internal/codegen drives a
// Target without caring which one it got.
package backend

import (
	"io"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/symtab"
)

// NumRegisters is the size of the scratch-register pool every Target
// exposes; it matches regalloc.NumRegisters by construction, kept as its
// own constant here so this package never has to import internal/regalloc
// just for a number.
const NumRegisters = 3

// Target emits one function's worth of assembly for a specific ISA.
// Registers are always the abstract indices 0..NumRegisters-1 that
// internal/regalloc assigned; a Target maps them to its own register
// names (reg_name in the original).
type Target interface {
	// Name identifies the target; it is the internal/target.Name value
	// (set at build time) that selects it.
	Name() string

	// Header emits the translation unit's leading directives
	// (gen_header: the .text section directive).
	Header(w io.Writer)
	// PutInt emits the built-in put_int runtime helper appended after
	// every user function (gen_put_int).
	PutInt(w io.Writer)

	// FuncHeader emits a function's label, prologue and stack-frame
	// reservation, and spills every register-passed parameter to its
	// stack slot (gen_func_header + gen_store_params); x86-64 spills
	// before reserving the frame, ARM64 after. It returns the
	// padded total frame size FuncFooter needs to unwind the frame, so
	// ARM64's footer can use it without relying on hidden shared state.
	FuncHeader(w io.Writer, name string, frameSize int, params []*symtab.Symbol) (paddedFrameSize int)
	// FuncFooter emits the end-of-function label and epilogue
	// (gen_func_footer).
	FuncFooter(w io.Writer, endLabel string, paddedFrameSize int)

	// Label emits a bare label definition (gen_label_stm).
	Label(w io.Writer, label string)
	// Jmp emits an unconditional jump (gen_insn_jmp).
	Jmp(w io.Writer, label string)

	// LoadConst materializes an integer literal into reg (gen_exp_cnst).
	LoadConst(w io.Writer, reg int, val int32)
	// LoadIdent loads a variable's stack slot into reg (gen_exp_ident).
	LoadIdent(w io.Writer, reg int, offset int)
	// StoreLvar stores reg into a variable's stack slot
	// (gen_insn_store_lvar).
	StoreLvar(w io.Writer, reg int, offset int)

	// Neg, Add, Sub and Mul apply the named operator in place
	// (gen_insn_neg/add/sub/mul). dst and src1 are always the same
	// register, which the allocator guarantees; callers still pass both
	// to mirror the original signatures.
	Neg(w io.Writer, dst, src int)
	Add(w io.Writer, dst, src1, src2 int)
	Sub(w io.Writer, dst, src1, src2 int)
	Mul(w io.Writer, dst, src1, src2 int)

	// RetAssign copies src into the ABI return register, skipped when
	// it is already there (gen_insn_ret_asgn).
	RetAssign(w io.Writer, src int)

	// Cmp compares two registers, setting the flags a following Rel or
	// CondSet reads (gen_insn_cmp).
	Cmp(w io.Writer, src1, src2 int)
	// Rel emits the inverted conditional branch for op. It is "inverted"
	// because it jumps to l_cmp when the condition is *false*, letting
	// the fallthrough be the true branch (gen_insn_rel). When op is not
	// one of the six relational operators (a plain value used as an
	// if/while/for/do-while condition), Rel compares reg against zero
	// itself before branching, matching the default case of the
	// original switch.
	Rel(w io.Writer, op ast.BinaryOp, isRelational bool, l_cmp string, reg int)
	// CondSet materializes op's truth value as 0/1 into dst
	// (gen_insn_cond_set), used when a relational expression is consumed
	// as a value rather than a branch.
	CondSet(w io.Writer, dst int, op ast.BinaryOp)

	// CallPrologue saves the scratch registers a call would otherwise
	// clobber, returning the bookkeeping CallSetParam/CallEpilogue need
	// (gen_call_prologue). On x86-64 the stack adjustment also reserves
	// space for the stack-passed arguments; on ARM64 it covers only the
	// pad and the saved registers, and CallSetParam stores stack-passed
	// arguments below sp. reg is the call expression's own assigned
	// register (never saved/restored, since it is about to receive the
	// result); nArgs is the number of actual arguments.
	CallPrologue(w io.Writer, reg, nArgs int) (sparams, padsize, framesize int)
	// CallSetParam moves one already-evaluated argument (in reg) into
	// its parameter-passing slot, 1-indexed by nump (gen_call_set_param).
	CallSetParam(w io.Writer, reg, nump, sparams int)
	// CallEpilogue emits the call instruction itself, copies the return
	// value into the call's assigned register when that copy is
	// actually needed, and restores the saved scratch registers
	// (gen_call_epilogue). usedAsValue is the call's Meta().Parent
	// classification. x86-64 and ARM64 disagree on which test decides
	// whether the copy is needed (see DESIGN.md), so both reg and
	// usedAsValue are passed and each Target picks its own original test.
	CallEpilogue(w io.Writer, callee string, reg int, usedAsValue bool, padsize, framesize int)
}

// New returns the Target for name: internal/target.Name's value ("linux"
// or "raspi"), matching the original's TARGET_LINUX/TARGET_RASPI build
// macros. Any value other than ARM64Name resolves to the x86-64 Linux
// target, the module's default.
func New(name string) Target {
	if name == ARM64Name {
		return NewARM64()
	}
	return NewX64()
}
