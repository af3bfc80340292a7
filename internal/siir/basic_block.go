package siir

// BasicBlock owns its instruction list (a doubly-linked, intrusively
// parented list per spec §9's "linked lists of blocks/instructions"
// note) and carries predecessor/successor vectors plus prev/next links
// within its parent Function (spec §3.4).
type BasicBlock struct {
	name  string
	head, tail *Instruction

	preds []*BasicBlock
	succs []*BasicBlock

	prev, next *BasicBlock
	parent     *Function
}

func newBasicBlock(name string) *BasicBlock {
	return &BasicBlock{name: name}
}

// Name returns the block's label (e.g. "bb0").
func (b *BasicBlock) Name() string { return b.name }

// Parent returns the owning function, or nil if detached.
func (b *BasicBlock) Parent() *Function { return b.parent }

// Prev returns the previous block in the function's block list, or nil.
func (b *BasicBlock) Prev() *BasicBlock { return b.prev }

// Next returns the next block in the function's block list, or nil.
func (b *BasicBlock) Next() *BasicBlock { return b.next }

// IsEntry reports whether this is the first block in its function.
func (b *BasicBlock) IsEntry() bool {
	return b.parent != nil && b.parent.head == b
}

// Number returns the block's zero-based position, found by walking
// backward through prev links (spec §4.5: get_number()).
func (b *BasicBlock) Number() int {
	n := 0
	for p := b.prev; p != nil; p = p.prev {
		n++
	}
	return n
}

// Preds returns the predecessor blocks wired by the CFG.
func (b *BasicBlock) Preds() []*BasicBlock { return b.preds }

// Succs returns the successor blocks wired by the CFG.
func (b *BasicBlock) Succs() []*BasicBlock { return b.succs }

// AddSucc wires b -> succ and registers b as one of succ's predecessors.
func (b *BasicBlock) AddSucc(succ *BasicBlock) {
	b.succs = append(b.succs, succ)
	succ.preds = append(succ.preds, b)
}

// First returns the first instruction in the block, or nil if empty.
func (b *BasicBlock) First() *Instruction { return b.head }

// Last returns the last instruction in the block, or nil if empty.
func (b *BasicBlock) Last() *Instruction { return b.tail }

// Instructions returns the block's instructions in list order. Callers
// that mutate the list while iterating should snapshot this slice
// first (e.g. trivial-DCE).
func (b *BasicBlock) Instructions() []*Instruction {
	out := make([]*Instruction, 0)
	for i := b.head; i != nil; i = i.next {
		out = append(out, i)
	}
	return out
}

// Terminator returns the block's terminating instruction, or nil if the
// block has none yet (legal while under construction, spec §4.5).
func (b *BasicBlock) Terminator() *Instruction {
	if b.tail != nil && b.tail.opcode.IsTerminator() {
		return b.tail
	}
	return nil
}

// Terminators returns every terminator instruction found in the block.
// A well-formed, sealed block has exactly one, as its last instruction
// (spec §4.5); this is a diagnostic helper used by the verifier to
// detect violations, not the steady-state accessor (use Terminator).
func (b *BasicBlock) Terminators() []*Instruction {
	var out []*Instruction
	for i := b.head; i != nil; i = i.next {
		if i.opcode.IsTerminator() {
			out = append(out, i)
		}
	}
	return out
}

// PushBack appends inst to the end of the block's instruction list.
func (b *BasicBlock) PushBack(inst *Instruction) {
	inst.parent = b
	inst.prev = b.tail
	inst.next = nil
	if b.tail != nil {
		b.tail.next = inst
	} else {
		b.head = inst
	}
	b.tail = inst
}

// PushFront prepends inst to the start of the block's instruction list
// (used for PHI instructions, which must sit at the block head).
func (b *BasicBlock) PushFront(inst *Instruction) {
	inst.parent = b
	inst.next = b.head
	inst.prev = nil
	if b.head != nil {
		b.head.prev = inst
	} else {
		b.tail = inst
	}
	b.head = inst
}

// InsertBefore splices inst immediately before mark, which must already
// belong to b.
func (b *BasicBlock) InsertBefore(mark, inst *Instruction) {
	if mark.parent != b {
		panic("siir: InsertBefore mark does not belong to this block")
	}
	inst.parent = b
	inst.prev = mark.prev
	inst.next = mark
	if mark.prev != nil {
		mark.prev.next = inst
	} else {
		b.head = inst
	}
	mark.prev = inst
}

// InsertAfter splices inst immediately after mark, which must already
// belong to b.
func (b *BasicBlock) InsertAfter(mark, inst *Instruction) {
	if mark.parent != b {
		panic("siir: InsertAfter mark does not belong to this block")
	}
	inst.parent = b
	inst.next = mark.next
	inst.prev = mark
	if mark.next != nil {
		mark.next.prev = inst
	} else {
		b.tail = inst
	}
	mark.next = inst
}

// Remove splices inst out of the list, relinking its neighbors, and
// clears inst's own links. It does not destroy inst's operand use
// edges or check that inst has no uses - callers that want to delete an
// instruction outright should call DetachAndDestroy.
func (b *BasicBlock) Remove(inst *Instruction) {
	if inst.parent != b {
		panic("siir: Remove called with an instruction that is not in this block")
	}
	if inst.prev != nil {
		inst.prev.next = inst.next
	} else {
		b.head = inst.next
	}
	if inst.next != nil {
		inst.next.prev = inst.prev
	} else {
		b.tail = inst.prev
	}
	inst.prev, inst.next, inst.parent = nil, nil, nil
}

// DetachAndDestroy removes inst from the block and destroys its operand
// use edges. The caller is responsible for ensuring inst.NumUses() == 0
// first (spec §3.2); used by trivial-DCE.
func (b *BasicBlock) DetachAndDestroy(inst *Instruction) {
	b.Remove(inst)
	inst.destroy()
}

// destroy detaches every instruction in the block (cascading per spec
// §3.4: "destroying a block destroys all instructions it owns").
func (b *BasicBlock) destroy() {
	for i := b.head; i != nil; {
		next := i.next
		i.destroy()
		i.prev, i.next, i.parent = nil, nil, nil
		i = next
	}
	b.head, b.tail = nil, nil
}
