// Package x64 implements instruction selection, the Jcc/SetCC
// inversion tables, and the assembly printer for the x86-64/SystemV/
// Linux target (spec §4.8). It is grounded on the reference pipeline's
// own ISA-specific backend packages (pkg/asm for the printer's GNU-as
// output conventions, pkg/selection for the per-opcode dispatch shape,
// pkg/stacking/calleesave.go for the callee-saved register set), ported
// from ARM64 to the x86-64/SystemV register file and instruction
// mnemonics this spec targets.
package x64

import "github.com/statim-lang/statimc/internal/machine"

// General-purpose physical registers (spec §4.8). Ids are assigned in
// the machine package's physical namespace, [1, 2^31).
const (
	RAX machine.Register = iota + 1
	RBX
	RCX
	RDX
	RDI
	RSI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	RIP
)

// Floating-point physical registers.
const (
	XMM0 machine.Register = iota + 100
	XMM1
	XMM2
	XMM3
	XMM4
	XMM5
	XMM6
	XMM7
	XMM8
	XMM9
	XMM10
	XMM11
	XMM12
	XMM13
	XMM14
	XMM15
)

// GeneralPurposeRegisters lists every general-purpose physical register
// in the class spec §4.8 defines.
var GeneralPurposeRegisters = []machine.Register{
	RAX, RBX, RCX, RDX, RDI, RSI, RBP, RSP, R8, R9, R10, R11, R12, R13, R14, R15, RIP,
}

// FloatingPointRegisters lists every XMM physical register.
var FloatingPointRegisters = []machine.Register{
	XMM0, XMM1, XMM2, XMM3, XMM4, XMM5, XMM6, XMM7,
	XMM8, XMM9, XMM10, XMM11, XMM12, XMM13, XMM14, XMM15,
}

// CalleeSaved is the SystemV convention callee-saved set (Open Question
// resolved, see DESIGN.md): RBX, R12-R15, RSP, and RBP survive a call
// because a callee that modifies them restores them before returning.
var CalleeSaved = map[machine.Register]bool{
	RBX: true, R12: true, R13: true, R14: true, R15: true, RSP: true, RBP: true,
}

// IsCalleeSaved reports whether reg is callee-saved under the SystemV
// convention.
func IsCalleeSaved(reg machine.Register) bool { return CalleeSaved[reg] }

// IsCallerSaved reports whether reg is caller-saved: every
// general-purpose register other than RIP, and every floating-point
// register, that is not in CalleeSaved.
func IsCallerSaved(reg machine.Register) bool {
	for _, r := range GeneralPurposeRegisters {
		if r == reg {
			return !CalleeSaved[reg] && reg != RIP
		}
	}
	for _, r := range FloatingPointRegisters {
		if r == reg {
			return true
		}
	}
	return false
}

// gpSubregNames gives the width-specific mnemonic for each
// general-purpose register family (RAX's RAX/EAX/AX/AL, per the
// glossary's "Subregister" entry).
var gpSubregNames = map[machine.Register]map[uint8]string{
	RAX: {8: "al", 16: "ax", 32: "eax", 64: "rax"},
	RBX: {8: "bl", 16: "bx", 32: "ebx", 64: "rbx"},
	RCX: {8: "cl", 16: "cx", 32: "ecx", 64: "rcx"},
	RDX: {8: "dl", 16: "dx", 32: "edx", 64: "rdx"},
	RDI: {8: "dil", 16: "di", 32: "edi", 64: "rdi"},
	RSI: {8: "sil", 16: "si", 32: "esi", 64: "rsi"},
	RBP: {8: "bpl", 16: "bp", 32: "ebp", 64: "rbp"},
	RSP: {8: "spl", 16: "sp", 32: "esp", 64: "rsp"},
	R8:  {8: "r8b", 16: "r8w", 32: "r8d", 64: "r8"},
	R9:  {8: "r9b", 16: "r9w", 32: "r9d", 64: "r9"},
	R10: {8: "r10b", 16: "r10w", 32: "r10d", 64: "r10"},
	R11: {8: "r11b", 16: "r11w", 32: "r11d", 64: "r11"},
	R12: {8: "r12b", 16: "r12w", 32: "r12d", 64: "r12"},
	R13: {8: "r13b", 16: "r13w", 32: "r13d", 64: "r13"},
	R14: {8: "r14b", 16: "r14w", 32: "r14d", 64: "r14"},
	R15: {8: "r15b", 16: "r15w", 32: "r15d", 64: "r15"},
	RIP: {64: "rip"},
}

var xmmNames = map[machine.Register]string{
	XMM0: "xmm0", XMM1: "xmm1", XMM2: "xmm2", XMM3: "xmm3",
	XMM4: "xmm4", XMM5: "xmm5", XMM6: "xmm6", XMM7: "xmm7",
	XMM8: "xmm8", XMM9: "xmm9", XMM10: "xmm10", XMM11: "xmm11",
	XMM12: "xmm12", XMM13: "xmm13", XMM14: "xmm14", XMM15: "xmm15",
}

// RegisterName returns the printer-facing mnemonic for a physical
// register at the given subregister width (8/16/32/64 bits). Width is
// ignored for XMM registers, which have no subregister forms here.
func RegisterName(reg machine.Register, subregBits uint8) string {
	if name, ok := xmmNames[reg]; ok {
		return name
	}
	if family, ok := gpSubregNames[reg]; ok {
		if name, ok := family[subregBits]; ok {
			return name
		}
		return family[64]
	}
	return "?"
}
