package machine

// Opcode names a machine instruction's operation. The machine layer
// itself is target-agnostic (spec §3.7); concrete operation codes come
// from an ISA package such as internal/machine/isa/x64, whose Opcode
// type need only implement String() to supply the printer's mnemonic.
type Opcode interface {
	String() string
}

// MachineInst is an opcode bound to an operand vector and a parent
// block (spec §3.7), doubly-linked within its block the same way
// siir.Instruction is linked within a BasicBlock.
type MachineInst struct {
	opcode   Opcode
	operands []Operand

	prev, next *MachineInst
	parent     *MachineBasicBlock
}

// NewInst builds a detached instruction; callers attach it to a block
// via MachineBasicBlock.PushBack/PushFront.
func NewInst(op Opcode, operands ...Operand) *MachineInst {
	return &MachineInst{opcode: op, operands: operands}
}

func (i *MachineInst) Opcode() Opcode       { return i.opcode }
func (i *MachineInst) Operands() []Operand  { return i.operands }
func (i *MachineInst) Parent() *MachineBasicBlock { return i.parent }
func (i *MachineInst) Prev() *MachineInst   { return i.prev }
func (i *MachineInst) Next() *MachineInst   { return i.next }

// NumDefs returns the number of register-def operands.
func (i *MachineInst) NumDefs() int { return i.countReg(true) }

// NumUses returns the number of register-use operands.
func (i *MachineInst) NumUses() int { return i.countReg(false) }

// NumExplicit returns the number of operands that are not implicit
// (register operands only; memory/immediate/block/symbol operands are
// always explicit).
func (i *MachineInst) NumExplicit() int {
	n := 0
	for _, o := range i.operands {
		if o.kind != OperandRegister || !o.isImplicit {
			n++
		}
	}
	return n
}

// NumImplicit returns the number of implicit register operands (e.g. a
// flags-register read a Jcc carries without it appearing in source
// form).
func (i *MachineInst) NumImplicit() int {
	n := 0
	for _, o := range i.operands {
		if o.kind == OperandRegister && o.isImplicit {
			n++
		}
	}
	return n
}

func (i *MachineInst) countReg(wantDef bool) int {
	n := 0
	for _, o := range i.operands {
		if o.kind == OperandRegister && o.isDef == wantDef {
			n++
		}
	}
	return n
}
