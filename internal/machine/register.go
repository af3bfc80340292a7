// Package machine implements the target-parametric machine layer of
// spec §3.7, §4.8: a near-assembly IR built from MachineOperand,
// MachineInst, MachineBasicBlock, and MachineFunction. It mirrors the
// reference pipeline's last pre-assembly stage (pkg/mach) and its
// register/condition vocabulary (pkg/asm, pkg/selection), but keeps
// SIIR's own container shape (doubly-linked blocks/instructions)
// instead of the reference's flat per-function instruction slice,
// since §3.7 describes MachineBasicBlock as "doubly-linked" the same
// way BasicBlock is.
package machine

import "fmt"

// RegisterClass groups registers by the kind of value they hold (spec
// §3.7).
type RegisterClass int

const (
	GeneralPurpose RegisterClass = iota
	FloatingPoint
	Vector
)

func (c RegisterClass) String() string {
	switch c {
	case GeneralPurpose:
		return "GeneralPurpose"
	case FloatingPoint:
		return "FloatingPoint"
	case Vector:
		return "Vector"
	}
	return "?"
}

// Register is a single u32 id partitioned into three namespaces (spec
// §3.7): 0 means "no register", [1, 2^31) are physical registers
// assigned by an ISA package (e.g. internal/machine/isa/x64), and
// [2^31, 2^32) are virtual registers minted per IR result id during
// instruction selection.
type Register uint32

const virtualBase Register = 1 << 31

// NoRegister is the zero value, used for unpopulated operand slots.
const NoRegister Register = 0

// IsPhysical reports whether r names a physical register.
func (r Register) IsPhysical() bool { return r != NoRegister && r < virtualBase }

// IsVirtual reports whether r names a virtual register.
func (r Register) IsVirtual() bool { return r >= virtualBase }

// VirtualRegister constructs the virtual register identified by a
// 0-based sequence number (distinct from the physical register space).
func VirtualRegister(seq uint32) Register {
	return virtualBase + Register(seq)
}

// VirtualIndex returns r's 0-based sequence number. Panics if r is not
// virtual.
func (r Register) VirtualIndex() uint32 {
	if !r.IsVirtual() {
		panic("machine: VirtualIndex called on a non-virtual register")
	}
	return uint32(r - virtualBase)
}

func (r Register) String() string {
	if r == NoRegister {
		return "<none>"
	}
	if r.IsVirtual() {
		return fmt.Sprintf("v%d", r.VirtualIndex())
	}
	return fmt.Sprintf("p%d", r)
}
