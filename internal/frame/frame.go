// Package frame assigns every parameter and auto variable of a function its
// stack-frame offset, and derives the frame size from the result: the two
// operations arch_assign_memory and get_frame_size perform together in the
// original compiler (symtab.c, arch_x64.c, arch_arm64.c), kept here as one
// small package so neither target back end has to duplicate the "what does
// a frame size even mean" arithmetic.
package frame

import "tinycc.dev/compiler/internal/symtab"

// Target names the stack layout convention to assign offsets under.
type Target int

const (
	X64 Target = iota
	ARM64
)

// Layout is the result of assigning one function's committed scope: every
// symtab.Symbol in the scope has its Offset stamped in place, and FrameSize
// holds the frame's byte count before any ABI alignment padding. The
// prologue emitted by internal/backend adds that padding itself, exactly as
// arch_x64.c/arch_arm64.c's gen_func_header compute `pad` locally rather
// than folding it into the stored frame size.
type Layout struct {
	Target    Target
	FrameSize int
}

// Assign stamps an Offset onto every symbol in scope according to target's
// stack layout convention, then returns the resulting Layout. scope is the
// symtab.Table's committed scope for one function (symtab.Table.Committed).
func Assign(target Target, scope []*symtab.Symbol) *Layout {
	switch target {
	case ARM64:
		assignARM64(scope)
	default:
		assignX64(scope)
	}
	return &Layout{Target: target, FrameSize: frameSize(scope)}
}

// frameSize is symtab.c's get_frame_size: the largest magnitude among every
// negative offset in scope. Positive offsets (x86-64's 7th-and-later stack
// parameters, which live in the caller's frame) never grow it.
func frameSize(scope []*symtab.Symbol) int {
	max := 0
	for _, s := range scope {
		if s.Offset < 0 && -s.Offset > max {
			max = -s.Offset
		}
	}
	return max
}

// assignX64 is arch_x64.c's arch_assign_memory: auto variables are packed
// densely at -4, -8, ...; the first 6 parameters sit just below them in the
// same negative range (register-passed, but still spilled to the stack by
// gen_store_params); the 7th parameter and beyond live in the caller's
// frame at positive offsets above the saved return address and rbp.
func assignX64(scope []*symtab.Symbol) {
	const wordSize = 4

	nAuto := 0
	for _, s := range scope {
		if s.Kind == symtab.AutoVariable {
			nAuto++
			s.Offset = -wordSize * nAuto
		}
	}
	for _, s := range scope {
		if s.Kind != symtab.Parameter {
			continue
		}
		if s.ParamOrdinal <= 6 {
			s.Offset = -wordSize * (nAuto + s.ParamOrdinal)
		} else {
			s.Offset = 16 + (s.ParamOrdinal-7)*8
		}
	}
}

// assignARM64 is arch_arm64.c's arch_assign_memory: the first 8 parameters
// (register-passed) and every auto variable are packed below the new frame
// pointer, auto variables nearest it; the 9th parameter and beyond are spilled
// by the caller above a padding gap also expressed as a negative offset
// from x29 (see the worked example in arch_arm64.c's header comment).
func assignARM64(scope []*symtab.Symbol) {
	const wordSize = 4

	nArg, nAuto := 0, 0
	for _, s := range scope {
		switch s.Kind {
		case symtab.Parameter:
			nArg++
		case symtab.AutoVariable:
			nAuto++
		}
	}

	poffset := 0
	if nArg > 8 {
		poffset = (nArg - 8) * -8
	}
	voffset := 0
	if nAuto > 0 {
		voffset = nAuto * -wordSize
	}

	autoIndex := 0
	for _, s := range scope {
		if s.Kind != symtab.AutoVariable {
			continue
		}
		autoIndex++
		// Declaration order is reversed: the most recently declared
		// auto variable sits closest to the frame pointer.
		s.Offset = poffset + (nAuto-autoIndex+1)*-wordSize
	}
	for _, s := range scope {
		if s.Kind != symtab.Parameter {
			continue
		}
		if s.ParamOrdinal < 9 {
			s.Offset = poffset + voffset + s.ParamOrdinal*-wordSize
		} else {
			s.Offset = (nArg - s.ParamOrdinal + 1) * -8
		}
	}
}
