package siir

import "github.com/statim-lang/statimc/internal/types"

// PhiOperand pairs an incoming value with the predecessor block it
// flows from (spec §3.3: "PHI operands appear only at the head of a
// block and reference predecessor blocks that actually point here").
type PhiOperand struct {
	use  *Use
	pred *BasicBlock
}

// Value returns the incoming value for this edge of the PHI.
func (p PhiOperand) Value() Value { return p.use.Value() }

// Pred returns the predecessor block this value arrives from.
func (p PhiOperand) Pred() *BasicBlock { return p.pred }

// Instruction is a User bound to one BasicBlock parent (spec §3.3). It
// is a flat struct keyed by Opcode rather than the source's class per
// opcode family; operand meaning is defined by the opcode (see the
// per-opcode shape table in spec §4.4).
type Instruction struct {
	valueBase

	opcode   Opcode
	resultID uint32
	typ      *types.Type

	operands []*Use
	blocks   []*BasicBlock // JUMP: [target]; BRANCH_IF: [trueBlock, falseBlock]
	phis     []PhiOperand

	data uint16 // e.g. LOAD/STORE alignment in bytes

	constInt     int64
	constFloat   float64
	constIsFloat bool
	constStr     string

	callSymbol string // set instead of a callee operand for a direct/external call

	prev, next *Instruction
	parent     *BasicBlock
}

var (
	_ Value = (*Instruction)(nil)
	_ User  = (*Instruction)(nil)
)

// Opcode returns the instruction's opcode.
func (i *Instruction) Opcode() Opcode { return i.opcode }

// ResultID returns the positive id this instruction defines, or 0 if it
// defines no value (spec §3.3, §"Result id" glossary entry).
func (i *Instruction) ResultID() uint32 { return i.resultID }

// ValueType implements Value.
func (i *Instruction) ValueType() *types.Type { return i.typ }

// ReplaceAllUsesWith implements Value.
func (i *Instruction) ReplaceAllUsesWith(other Value) {
	if other == Value(i) {
		return
	}
	replaceAllUsesWith(i, other)
}

// Operands implements User: the live use edges in semantic operand
// order (PHI's incoming-value edges are not included here; use
// PhiOperands for those).
func (i *Instruction) Operands() []*Use { return i.operands }

// Operand returns the value at operand index idx, or nil if that slot
// was never populated (e.g. an optional RETURN value).
func (i *Instruction) Operand(idx int) Value {
	if idx < 0 || idx >= len(i.operands) {
		return nil
	}
	return i.operands[idx].Value()
}

// NumOperands returns the number of semantic operand slots.
func (i *Instruction) NumOperands() int { return len(i.operands) }

// Blocks returns the instruction's block operands (JUMP target; BRANCH_IF's
// [true, false] targets). Empty for every other opcode.
func (i *Instruction) Blocks() []*BasicBlock { return i.blocks }

// Data returns the 16-bit data word (e.g. LOAD/STORE alignment).
func (i *Instruction) Data() uint16 { return i.data }

// SetData sets the 16-bit data word.
func (i *Instruction) SetData(d uint16) { i.data = d }

// ConstInt returns the integer payload of a CONSTANT instruction.
func (i *Instruction) ConstInt() int64 { return i.constInt }

// ConstFloat returns the float payload of a CONSTANT instruction.
func (i *Instruction) ConstFloat() float64 { return i.constFloat }

// ConstIsFloat reports whether a CONSTANT instruction carries a float
// payload (ConstFloat) rather than an integer one (ConstInt).
func (i *Instruction) ConstIsFloat() bool { return i.constIsFloat }

// ConstString returns the payload of a STRING instruction.
func (i *Instruction) ConstString() string { return i.constStr }

// CallSymbol returns the external symbol name for a direct CALL, or ""
// if the callee is a regular operand (operand 0).
func (i *Instruction) CallSymbol() string { return i.callSymbol }

// PhiOperands returns a PHI instruction's incoming (value, pred) pairs.
func (i *Instruction) PhiOperands() []PhiOperand { return i.phis }

// Parent returns the owning basic block, or nil if detached.
func (i *Instruction) Parent() *BasicBlock { return i.parent }

// Prev returns the previous instruction in list order, or nil.
func (i *Instruction) Prev() *Instruction { return i.prev }

// Next returns the next instruction in list order, or nil.
func (i *Instruction) Next() *Instruction { return i.next }

// IsTriviallyDead reports whether this instruction is a candidate for
// trivial-DCE: it has no uses and its opcode is side-effect free (spec
// §4.4).
func (i *Instruction) IsTriviallyDead() bool {
	return i.resultID != 0 && i.NumUses() == 0 && i.opcode.isSideEffectFree()
}

// destroy detaches every operand (and PHI incoming-value) use edge this
// instruction owns. The caller must already have unlinked i from its
// block's list and ensured i.NumUses() == 0 (spec §3.2: "a value's
// death with non-empty use list is a bug").
func (i *Instruction) destroy() {
	for _, u := range i.operands {
		u.Detach()
	}
	for _, p := range i.phis {
		p.use.Detach()
	}
	i.operands = nil
	i.phis = nil
}

func newInst(opcode Opcode) *Instruction {
	return &Instruction{opcode: opcode}
}

func (i *Instruction) addOperand(v Value) *Use {
	u := NewUse(v, i)
	i.operands = append(i.operands, u)
	return u
}

func (i *Instruction) addPhiOperand(v Value, pred *BasicBlock) {
	u := NewUse(v, i)
	i.phis = append(i.phis, PhiOperand{use: u, pred: pred})
}
