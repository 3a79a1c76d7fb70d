package backend

import (
	"fmt"
	"io"

	"tinycc.dev/compiler/internal/ast"
	"tinycc.dev/compiler/internal/symtab"
)

// X64Name is the target name accepted by New and reported by Name: the
// module's default, matching the original's TARGET_LINUX.
const X64Name = "linux"

var x64RegName = [NumRegisters]string{"%eax", "%r10d", "%r11d"}

// x64ParamRegName is param_reg_name for TARGET_LINUX/TARGET_MAC (the
// Cygwin ordering in the original is not carried; see DESIGN.md).
// Index 0 is unused, matching the original's 1-based nump.
var x64ParamRegName = [7]string{"NULL", "%edi", "%esi", "%edx", "%ecx", "%r8d", "%r9d"}

// x64 emits System V AMD64 (Linux) gas-syntax assembly, grounded on
// arch_x64.c.
type x64 struct{}

// NewX64 returns the x86-64 Target.
func NewX64() Target { return x64{} }

func (x64) Name() string { return X64Name }

func (x64) Header(w io.Writer) {
	fmt.Fprint(w, "\t.text\n")
}

func (x64) PutInt(w io.Writer) {
	fmt.Fprint(w, putIntX64)
}

// putIntX64 is the put_int runtime helper, gas syntax for Linux/ELF
// (PUTINT_CODE under TARGET_LINUX in arch_x64.c).
const putIntX64 = "" +
	"\t.section\t.rodata\n" +
	".LC0:\n" +
	"\t.string \"%d\\n\"\n" +
	"\t.text\n" +
	"put_int:\n" +
	"\tpushq\t%rbp\n" +
	"\tmovq\t%rsp, %rbp\n" +
	"\tsubq\t$16,%rsp\n" +
	"\tmovl\t%edi, -4(%rbp)\n" +
	"\tmovl\t-4(%rbp), %esi\n" +
	"\tleaq\t.LC0(%rip), %rdi\n" +
	"\tmovl\t$0, %eax\n" +
	"\tcall\tprintf@PLT\n" +
	"\tleave\n" +
	"\tret\n"

func (x64) FuncHeader(w io.Writer, name string, frameSize int, params []*symtab.Symbol) int {
	pad := 16 - frameSize%16
	if pad == 16 {
		pad = 0
	}
	fmt.Fprintf(w, "\t.globl\t%s\n%s:\n", name, name)
	fmt.Fprint(w, "\tpushq\t%rbp\n\tmovq\t%rsp, %rbp\n")
	for _, p := range params {
		if p.ParamOrdinal < 7 {
			fmt.Fprintf(w, "\tmovl\t%s, %d(%%rbp)\n", x64ParamRegName[p.ParamOrdinal], p.Offset)
		}
	}
	if frameSize+pad > 0 {
		fmt.Fprintf(w, "\tsubq\t$%d, %%rsp\n", frameSize+pad)
	}
	return frameSize + pad
}

func (x64) FuncFooter(w io.Writer, endLabel string, _ int) {
	fmt.Fprintf(w, "%s:\n\tleave\n\tret\n\n", endLabel)
}

func (x64) Label(w io.Writer, label string) {
	fmt.Fprintf(w, "%s:\n", label)
}

func (x64) Jmp(w io.Writer, label string) {
	fmt.Fprintf(w, "\tjmp\t%s\n", label)
}

func (x64) LoadConst(w io.Writer, reg int, val int32) {
	fmt.Fprintf(w, "\tmovl\t$%d, %s\n", val, x64RegName[reg])
}

func (x64) LoadIdent(w io.Writer, reg int, offset int) {
	fmt.Fprintf(w, "\tmovl\t%d(%%rbp), %s\n", offset, x64RegName[reg])
}

func (x64) StoreLvar(w io.Writer, reg int, offset int) {
	fmt.Fprintf(w, "\tmovl\t%s, %d(%%rbp)\n", x64RegName[reg], offset)
}

func (x64) Neg(w io.Writer, dst, src int) {
	fmt.Fprintf(w, "\tnegl\t%s\n", x64RegName[dst])
}

func (x64) Add(w io.Writer, dst, src1, src2 int) {
	fmt.Fprintf(w, "\taddl\t%s, %s\n", x64RegName[src2], x64RegName[dst])
}

func (x64) Sub(w io.Writer, dst, src1, src2 int) {
	fmt.Fprintf(w, "\tsubl\t%s, %s\n", x64RegName[src2], x64RegName[dst])
}

func (x64) Mul(w io.Writer, dst, src1, src2 int) {
	fmt.Fprintf(w, "\timull\t%s, %s\n", x64RegName[src2], x64RegName[dst])
}

func (x64) RetAssign(w io.Writer, src int) {
	if src != 0 {
		fmt.Fprintf(w, "\tmovl\t%s, %s\n", x64RegName[src], x64RegName[0])
	}
}

func (x64) Cmp(w io.Writer, src1, src2 int) {
	fmt.Fprintf(w, "\tcmpl\t%s, %s\n", x64RegName[src2], x64RegName[src1])
}

func (x64) Rel(w io.Writer, op ast.BinaryOp, isRelational bool, l_cmp string, reg int) {
	if !isRelational {
		fmt.Fprintf(w, "\tcmpl\t$0,%s\n", x64RegName[reg])
		fmt.Fprintf(w, "\tje\t%s\n", l_cmp)
		return
	}
	switch op {
	case ast.Lt:
		fmt.Fprintf(w, "\tjge\t%s\n", l_cmp)
	case ast.Gt:
		fmt.Fprintf(w, "\tjle\t%s\n", l_cmp)
	case ast.Le:
		fmt.Fprintf(w, "\tjg\t%s\n", l_cmp)
	case ast.Ge:
		fmt.Fprintf(w, "\tjl\t%s\n", l_cmp)
	case ast.Eq:
		fmt.Fprintf(w, "\tjne\t%s\n", l_cmp)
	case ast.Ne:
		fmt.Fprintf(w, "\tje\t%s\n", l_cmp)
	}
}

func (x64) CondSet(w io.Writer, dst int, op ast.BinaryOp) {
	switch op {
	case ast.Lt:
		fmt.Fprint(w, "\tsetl\t%al\n")
	case ast.Gt:
		fmt.Fprint(w, "\tsetg\t%al\n")
	case ast.Le:
		fmt.Fprint(w, "\tsetle\t%al\n")
	case ast.Ge:
		fmt.Fprint(w, "\tsetge\t%al\n")
	case ast.Eq:
		fmt.Fprint(w, "\tsete\t%al\n")
	case ast.Ne:
		fmt.Fprint(w, "\tsetne\t%al\n")
	}
	fmt.Fprintf(w, "\tmovzbl\t%%al, %s\n", x64RegName[dst])
}

// CallPrologue stashes every scratch register but the call's own before
// evaluating arguments, and reserves stack space for any argument past
// the 6th (gen_call_prologue).
func (x64) CallPrologue(w io.Writer, reg, nArgs int) (sparams, padsize, framesize int) {
	sparams = nArgs
	if sparams > 6 {
		sparams -= 6
	} else {
		sparams = 0
	}
	pad := 4 - (sparams*2+3)%4
	if pad == 4 {
		pad = 0
	}
	pad *= 4
	psize := sparams * 8
	fsize := pad + psize + 3*4

	fmt.Fprintf(w, "\tsubq\t$%d, %%rsp\n", fsize)
	for i := 0; i < NumRegisters; i++ {
		if reg != i {
			fmt.Fprintf(w, "\tmovl\t%s, %d(%%rsp)\n", x64RegName[i], psize+12-4*(i+1))
		}
	}
	return sparams, psize, fsize
}

func (x64) CallSetParam(w io.Writer, reg, nump, sparams int) {
	if nump < 7 {
		fmt.Fprintf(w, "\tmovl\t%s, %s\n", x64RegName[reg], x64ParamRegName[nump])
	} else {
		fmt.Fprintf(w, "\tmovl\t%s, %d(%%rsp)\n", x64RegName[reg], (nump-7)*8)
	}
}

// CallEpilogue copies the return value only when the call's own register
// isn't already the ABI return register: the original's `e->reg != 0`
// test (gen_call_epilogue), not a context check. ARM64 uses the opposite
// kind of test (see arm64.go), and both are kept faithfully distinct.
func (x64) CallEpilogue(w io.Writer, callee string, reg int, usedAsValue bool, padsize, framesize int) {
	fmt.Fprintf(w, "\tcall\t%s\n", callee)
	if reg != 0 {
		fmt.Fprintf(w, "\tmovl\t%s, %s\n", x64RegName[0], x64RegName[reg])
	}
	for i := 0; i < NumRegisters; i++ {
		if reg != i {
			fmt.Fprintf(w, "\tmovl\t%d(%%rsp), %s\n", padsize+12-4*(i+1), x64RegName[i])
		}
	}
	fmt.Fprintf(w, "\taddq\t$%d, %%rsp\n", framesize)
}
