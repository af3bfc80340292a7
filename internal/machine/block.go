package machine

import "github.com/statim-lang/statimc/internal/siir"

// MachineBasicBlock owns a doubly-linked MachineInst list and tracks
// the siir.BasicBlock it was selected from (spec §3.7: "tracks
// bytecode block origin"), which InstSelection uses to resolve
// BRANCH_IF/JUMP block operands to their already-created machine
// counterpart and the printer uses for nothing beyond that
// traceability — block labels print by machine layout position
// (`.LBB<n>`), not by the origin's own number.
type MachineBasicBlock struct {
	origin *siir.BasicBlock

	head, tail *MachineInst
	preds, succs []*MachineBasicBlock

	prev, next *MachineBasicBlock
	parent     *MachineFunction
}

func newMachineBasicBlock(origin *siir.BasicBlock) *MachineBasicBlock {
	return &MachineBasicBlock{origin: origin}
}

// Origin returns the siir.BasicBlock this machine block was selected
// from.
func (b *MachineBasicBlock) Origin() *siir.BasicBlock { return b.origin }

// Parent returns the owning function, or nil if detached.
func (b *MachineBasicBlock) Parent() *MachineFunction { return b.parent }

func (b *MachineBasicBlock) Prev() *MachineBasicBlock { return b.prev }
func (b *MachineBasicBlock) Next() *MachineBasicBlock { return b.next }

// Number returns the block's zero-based position in its function's
// layout order (the `.LBB<n>` printer label), found by walking
// backward through prev links (mirrors siir.BasicBlock.Number).
func (b *MachineBasicBlock) Number() int {
	n := 0
	for p := b.prev; p != nil; p = p.prev {
		n++
	}
	return n
}

func (b *MachineBasicBlock) Preds() []*MachineBasicBlock { return b.preds }
func (b *MachineBasicBlock) Succs() []*MachineBasicBlock { return b.succs }

// AddSucc wires b -> succ and registers b as one of succ's predecessors.
func (b *MachineBasicBlock) AddSucc(succ *MachineBasicBlock) {
	b.succs = append(b.succs, succ)
	succ.preds = append(succ.preds, b)
}

// First returns the first instruction in the block, or nil if empty.
func (b *MachineBasicBlock) First() *MachineInst { return b.head }

// Last returns the last instruction in the block, or nil if empty.
func (b *MachineBasicBlock) Last() *MachineInst { return b.tail }

// Instructions returns the block's instructions in list order.
func (b *MachineBasicBlock) Instructions() []*MachineInst {
	out := make([]*MachineInst, 0)
	for i := b.head; i != nil; i = i.next {
		out = append(out, i)
	}
	return out
}

// PushBack appends inst to the end of the block's instruction list.
func (b *MachineBasicBlock) PushBack(inst *MachineInst) {
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

// PushFront prepends inst to the start of the block's instruction list.
func (b *MachineBasicBlock) PushFront(inst *MachineInst) {
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
